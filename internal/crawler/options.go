package crawler

import (
	"fmt"

	"webrank/internal/config"
	"webrank/internal/fetch"
	"webrank/internal/storage"
	"webrank/internal/urlutil"
)

// MaxWorkers bounds the worker pool size.
const MaxWorkers = 64

// Options parameterise one crawl run. Seed, MaxPages and Workers are the
// user-facing crawl parameters; the rest are wiring points with working
// defaults (tests inject a stub Fetcher, production leaves it nil).
type Options struct {
	Seed     string
	MaxPages int
	Workers  int

	Config  *config.Config
	Fetcher fetch.Fetcher    // nil: HTTP fetcher built from Config
	Archive *storage.Archive // nil: built from MONGODB_URI

	ServeMetrics bool // expose prometheus /metrics on Config.MetricsAddr
}

func (o *Options) validate() error {
	if !urlutil.IsValid(o.Seed) {
		return fmt.Errorf("seed URL %q is not a valid http(s) URL", o.Seed)
	}
	if o.MaxPages < 1 {
		return fmt.Errorf("max pages must be positive, got %d", o.MaxPages)
	}
	if o.Workers < 1 || o.Workers > MaxWorkers {
		return fmt.Errorf("workers must be in 1..%d, got %d", MaxWorkers, o.Workers)
	}
	return nil
}
