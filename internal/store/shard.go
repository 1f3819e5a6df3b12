// internal/store/shard.go
package store

import "webrank/internal/urlutil"

// shard is one worker's private buffer. No locks: during the crawl exactly
// one worker writes it, and the coordinator only reads it after joining all
// workers.
type shard struct {
	graph   map[string][]string
	visits  map[string]int
	domains map[string]struct{}
}

// ShardStore holds one shard per worker. Index i belongs to worker i for
// the whole crawl.
type ShardStore struct {
	shards []shard
}

// NewShardStore allocates n empty shards.
func NewShardStore(n int) *ShardStore {
	s := &ShardStore{shards: make([]shard, n)}
	for i := range s.shards {
		s.shards[i] = shard{
			graph:   make(map[string][]string),
			visits:  make(map[string]int),
			domains: make(map[string]struct{}),
		}
	}
	return s
}

// AddPage records one successfully crawled page in worker i's shard: the
// source domain's adjacency list is overwritten with the domains of the
// outgoing links (last write within a shard wins), its visit count is
// incremented, and the domain is remembered as touched.
func (s *ShardStore) AddPage(i int, sourceDomain string, links []string) {
	sh := &s.shards[i]

	outbound := make([]string, 0, len(links))
	for _, link := range links {
		if d := urlutil.Domain(link); d != "" {
			outbound = append(outbound, d)
		}
	}

	sh.graph[sourceDomain] = outbound
	sh.visits[sourceDomain]++
	sh.domains[sourceDomain] = struct{}{}
}

// ShardCount returns how many shards were allocated.
func (s *ShardStore) ShardCount() int {
	return len(s.shards)
}
