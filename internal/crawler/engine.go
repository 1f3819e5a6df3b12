// internal/crawler/engine.go
package crawler

import (
	"context"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"webrank/internal/config"
	"webrank/internal/fetch"
	"webrank/internal/frontier"
	"webrank/internal/rank"
	"webrank/internal/storage"
	"webrank/internal/store"
)

// quiescence detection: the frontier must be empty and every worker parked
// for longer than the deepest backoff before the run is declared drained.
const (
	quiescenceSample = 50 * time.Millisecond
	quiescenceAfter  = maxBackoff + 100*time.Millisecond
)

// Result is everything a finished run produces.
type Result struct {
	PagesCrawled int
	VisitedURLs  int
	Graph        *store.Graph
	Ranks        map[string]float64

	CrawlDuration time.Duration
	MergeDuration time.Duration
	RankDuration  time.Duration
}

// Run executes a complete crawl: pool start, budget-or-quiescence
// termination, worker join, merge, rank. Merge happens strictly after the
// join, so shard ownership passes to the coordinator without locks.
func Run(opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	_ = godotenv.Load()

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.NewHTTP(time.Duration(cfg.FetchTimeoutMs)*time.Millisecond, cfg.UserAgent)
	}

	ctx := context.Background()
	archive := opts.Archive
	if archive == nil {
		var err error
		archive, err = storage.NewArchive(ctx, os.Getenv("MONGODB_URI"))
		if err != nil {
			return nil, err
		}
		defer archive.Close(ctx)
	}

	if opts.ServeMetrics {
		go serveMetrics(cfg.MetricsAddr)
	}

	front := frontier.New(opts.Seed)
	c := &crawler{
		frontier: front,
		shards:   store.NewShardStore(opts.Workers),
		fetcher:  fetcher,
		archive:  archive,
		budget:   int64(opts.MaxPages),
		idle:     make([]atomic.Bool, opts.Workers),
	}

	logrus.Infof("crawl starting: seed=%s budget=%d workers=%d", opts.Seed, opts.MaxPages, opts.Workers)

	stop := make(chan struct{})
	go c.logProgress(stop, time.Duration(cfg.ProgressInterval)*time.Millisecond)
	go c.watchQuiescence(stop)

	crawlStart := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c.worker(id)
		}(i)
	}
	wg.Wait()
	front.MarkDone()
	close(stop)
	crawlDur := time.Since(crawlStart)

	pages := int(c.pagesCrawled.Load())
	logrus.Infof("crawl complete: %d pages in %v", pages, crawlDur.Round(time.Millisecond))

	mergeStart := time.Now()
	graph := c.shards.Merge()
	mergeDur := time.Since(mergeStart)
	logrus.Infof("merge complete in %v", mergeDur.Round(time.Millisecond))

	rankStart := time.Now()
	ranks := rank.Compute(graph, cfg.RankIterations)
	rankDur := time.Since(rankStart)
	logrus.Infof("pagerank complete in %v", rankDur.Round(time.Millisecond))

	return &Result{
		PagesCrawled:  pages,
		VisitedURLs:   front.VisitedCount(),
		Graph:         graph,
		Ranks:         ranks,
		CrawlDuration: crawlDur,
		MergeDuration: mergeDur,
		RankDuration:  rankDur,
	}, nil
}

// logProgress prints a crawl status line at a fixed interval until the run
// ends.
func (c *crawler) logProgress(stop <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			logrus.Infof("progress: pages=%d/%d queue=%d visited=%d",
				c.pagesCrawled.Load(), c.budget, c.frontier.QueueSize(), c.frontier.VisitedCount())
		}
	}
}

// watchQuiescence releases the pool when the crawl starves before the
// budget is met: once the queue stays empty with every worker parked for a
// full backoff interval, no new work can ever arrive, so the frontier is
// marked done and the workers exit instead of backing off forever.
func (c *crawler) watchQuiescence(stop <-chan struct{}) {
	ticker := time.NewTicker(quiescenceSample)
	defer ticker.Stop()

	var quietFor time.Duration
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if c.frontier.QueueSize() == 0 && c.allIdle() {
				quietFor += quiescenceSample
				if quietFor >= quiescenceAfter {
					logrus.Info("frontier drained with all workers idle, stopping crawl")
					c.frontier.MarkDone()
					return
				}
			} else {
				quietFor = 0
			}
		}
	}
}

// serveMetrics exposes the prometheus registry for the duration of the run.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logrus.Warnf("metrics server: %v", err)
	}
}
