package crawler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"webrank/internal/fetch"
	"webrank/internal/frontier"
	"webrank/internal/metrics"
	"webrank/internal/parser"
	"webrank/internal/storage"
	"webrank/internal/store"
	"webrank/internal/urlutil"
)

const (
	initialBackoff = 10 * time.Millisecond
	maxBackoff     = 500 * time.Millisecond
)

// crawler is the shared state of one run: the frontier, the shard store,
// and the atomics coordinating budget and quiescence across workers.
type crawler struct {
	frontier *frontier.Frontier
	shards   *store.ShardStore
	fetcher  fetch.Fetcher
	archive  *storage.Archive

	budget       int64
	pagesCrawled atomic.Int64
	idle         []atomic.Bool
}

// worker runs the fetch/parse/record/enqueue loop for one thread id.
// It exits when the page budget is reached or the frontier is marked done.
// The budget check is a plain atomic read, so the pool as a whole may
// overshoot by up to workers-1 pages; that slack is accepted in exchange
// for keeping the hot loop free of a reservation scheme.
func (c *crawler) worker(id int) {
	backoff := initialBackoff

	for {
		if c.pagesCrawled.Load() >= c.budget {
			logrus.Debugf("[worker %d] budget reached, exiting", id)
			return
		}
		if c.frontier.Done() {
			logrus.Debugf("[worker %d] frontier done, exiting", id)
			return
		}

		if url, ok := c.frontier.TryDequeue(); ok {
			backoff = initialBackoff
			c.crawlOne(id, url)
			continue
		}

		if c.frontier.QueueSize() == 0 {
			c.idle[id].Store(true)
			time.Sleep(backoff)
			c.idle[id].Store(false)
			if backoff < maxBackoff {
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
			}
		}
	}
}

// crawlOne processes a single dequeued URL. Fetch failures are skipped
// silently: the page is not counted and its domain not recorded.
func (c *crawler) crawlOne(id int, url string) {
	body := c.fetcher.Fetch(url)
	if len(body) == 0 {
		metrics.PagesFailed.Inc()
		logrus.Debugf("[worker %d] fetch failed: %s", id, url)
		return
	}

	domain := urlutil.Domain(url)
	links := parser.ExtractLinks(body, url)

	c.shards.AddPage(id, domain, links)

	added := c.frontier.BatchEnqueue(links)
	metrics.URLsEnqueued.Add(float64(added))

	if c.archive.Enabled() {
		c.archive.Insert(context.Background(), parser.ParseHTML(url, body))
	}

	crawled := c.pagesCrawled.Add(1)
	logrus.Debugf("[worker %d] crawled %s: %d links, %d new (%d/%d pages)",
		id, domain, len(links), added, crawled, c.budget)
}

// allIdle reports whether every worker is currently parked in backoff.
func (c *crawler) allIdle() bool {
	for i := range c.idle {
		if !c.idle[i].Load() {
			return false
		}
	}
	return true
}
