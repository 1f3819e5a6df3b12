package metrics

import (
	"fmt"
	"os"
)

// RunRow is one line of the shared metrics file, one per crawl run.
type RunRow struct {
	SeedURL      string
	MaxPages     int
	NumThreads   int
	TotalMs      int64
	PagesCrawled int
}

// Throughput returns pages per second over the run, 0 for instant runs.
func (r RunRow) Throughput() float64 {
	if r.TotalMs <= 0 {
		return 0
	}
	return float64(r.PagesCrawled) * 1000.0 / float64(r.TotalMs)
}

const runHeader = "seed_url,max_pages,num_threads,total_ms,pages_crawled,throughput\n"

// AppendRunRow appends one row to the shared metrics file, writing the
// header first when the file is empty or did not exist.
func AppendRunRow(path string, row RunRow) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open metrics file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat metrics file: %w", err)
	}
	if info.Size() == 0 {
		if _, err := f.WriteString(runHeader); err != nil {
			return fmt.Errorf("write metrics header: %w", err)
		}
	}

	line := fmt.Sprintf("%s,%d,%d,%d,%d,%.2f\n",
		row.SeedURL, row.MaxPages, row.NumThreads, row.TotalMs, row.PagesCrawled, row.Throughput())
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write metrics row: %w", err)
	}
	return nil
}
