package frontier

import (
	"sync"
	"sync/atomic"

	"webrank/internal/urlutil"
)

// Frontier is the crawl work queue: a FIFO of pending URLs plus the set of
// every URL ever admitted. One mutex guards both so an admission check and
// the enqueue it implies are a single critical section. queueSize mirrors
// len(queue) atomically for lock-free progress reads; it is updated at the
// end of each mutating call, so it and the real length agree at quiescence.
type Frontier struct {
	mu      sync.Mutex
	queue   []string
	visited map[string]struct{}

	queueSize atomic.Int64
	done      atomic.Bool
}

// New returns a frontier seeded with a single URL. The seed counts as
// visited immediately.
func New(seed string) *Frontier {
	f := &Frontier{
		queue:   []string{seed},
		visited: map[string]struct{}{seed: {}},
	}
	f.queueSize.Store(1)
	return f
}

// TryDequeue removes and returns the head of the queue. The second result is
// false when the queue is empty; it never blocks.
func (f *Frontier) TryDequeue() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	u := f.queue[0]
	f.queue = f.queue[1:]
	f.queueSize.Store(int64(len(f.queue)))
	return u, true
}

// AddIfNew admits a URL exactly once. Empty or oversized URLs are rejected
// before taking the lock. Returns true only when the URL was appended.
func (f *Frontier) AddIfNew(u string) bool {
	if u == "" || len(u) > urlutil.MaxURLLen {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, seen := f.visited[u]; seen {
		return false
	}
	f.visited[u] = struct{}{}
	f.queue = append(f.queue, u)
	f.queueSize.Store(int64(len(f.queue)))
	return true
}

// BatchEnqueue applies AddIfNew to each URL and returns how many were
// admitted.
func (f *Frontier) BatchEnqueue(urls []string) int {
	added := 0
	for _, u := range urls {
		if f.AddIfNew(u) {
			added++
		}
	}
	return added
}

// QueueSize returns the eventually-consistent queue length without locking.
func (f *Frontier) QueueSize() int {
	return int(f.queueSize.Load())
}

// VisitedCount returns how many URLs have ever been admitted.
func (f *Frontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}

// MarkDone sets the terminal flag. Workers poll Done to exit once the
// coordinator decides no more work can arrive.
func (f *Frontier) MarkDone() {
	f.done.Store(true)
}

// Done reports whether MarkDone has been called.
func (f *Frontier) Done() bool {
	return f.done.Load()
}
