package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"webrank/internal/config"
	"webrank/internal/crawler"
	"webrank/internal/export"
	"webrank/internal/metrics"
	"webrank/internal/storage"
	"webrank/internal/urlutil"
)

// CLI is the invocation surface: three positional arguments plus ambient
// flags.
type CLI struct {
	SeedURL    string `arg:"" name:"seed-url" help:"Starting URL (e.g. https://example.com)."`
	MaxPages   int    `arg:"" name:"max-pages" help:"Stop after this many pages."`
	NumThreads int    `arg:"" name:"num-threads" help:"Number of worker threads (1-64)."`

	Config  string `help:"Path to the JSON config file." default:"config.json"`
	Verbose bool   `short:"v" help:"Enable debug logging."`
}

// Validate runs inside kong.Parse so bad arguments print usage and exit
// non-zero.
func (c *CLI) Validate() error {
	if !urlutil.IsValid(c.SeedURL) {
		return fmt.Errorf("seed URL must start with http:// or https:// and contain a domain")
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("max-pages must be positive")
	}
	if c.NumThreads < 1 || c.NumThreads > crawler.MaxWorkers {
		return fmt.Errorf("num-threads must be between 1 and %d", crawler.MaxWorkers)
	}
	return nil
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("webrank"),
		kong.Description("Concurrent web crawler that builds an inter-domain link graph and ranks it with PageRank."),
		kong.UsageOnError(),
	)

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cli.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	res, err := crawler.Run(crawler.Options{
		Seed:         cli.SeedURL,
		MaxPages:     cli.MaxPages,
		Workers:      cli.NumThreads,
		Config:       cfg,
		ServeMetrics: true,
	})
	if err != nil {
		logrus.Fatalf("crawl failed: %v", err)
	}

	// Export failures are logged and skipped so one bad path never loses
	// the remaining outputs.
	if err := export.WritePagesReport(cfg.PagesReportPath, res.Graph); err != nil {
		logrus.Errorf("pages report: %v", err)
	}
	if err := export.WriteRankReport(cfg.RankReportPath, res.Ranks); err != nil {
		logrus.Errorf("rank report: %v", err)
	}

	if cfg.SnapshotPath != "" {
		saveSnapshot(cfg.SnapshotPath, res)
	}

	if err := metrics.AppendRunRow(cfg.MetricsPath, metrics.RunRow{
		SeedURL:      cli.SeedURL,
		MaxPages:     cli.MaxPages,
		NumThreads:   cli.NumThreads,
		TotalMs:      res.CrawlDuration.Milliseconds(),
		PagesCrawled: res.PagesCrawled,
	}); err != nil {
		logrus.Errorf("metrics append: %v", err)
	} else {
		logrus.Infof("metrics appended to %s", cfg.MetricsPath)
	}

	logrus.Infof("done: %d pages crawled, %d domains, %d ranked nodes (crawl %v, merge %v, rank %v)",
		res.PagesCrawled, len(res.Graph.Adjacency), len(res.Ranks),
		res.CrawlDuration.Round(time.Millisecond), res.MergeDuration.Round(time.Millisecond), res.RankDuration.Round(time.Millisecond))
	if top, score := topRanked(res.Ranks); top != "" {
		logrus.Infof("top domain: %s (%.6f)", top, score)
	}
	logrus.Infof("reports: %s, %s", cfg.PagesReportPath, cfg.RankReportPath)
}

func saveSnapshot(path string, res *crawler.Result) {
	snap, err := storage.NewSnapshot(path)
	if err != nil {
		logrus.Errorf("snapshot open: %v", err)
		return
	}
	defer snap.Close()
	if err := snap.Save(res.Graph, res.Ranks); err != nil {
		logrus.Errorf("snapshot save: %v", err)
	}
}

func topRanked(ranks map[string]float64) (string, float64) {
	best, bestScore := "", -1.0
	for domain, score := range ranks {
		if score > bestScore || (score == bestScore && domain < best) {
			best, bestScore = domain, score
		}
	}
	if best == "" {
		return "", 0
	}
	return best, bestScore
}
