package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendRunRowWritesHeaderOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metrics.csv")
	row := RunRow{
		SeedURL:      "https://a.test",
		MaxPages:     100,
		NumThreads:   4,
		TotalMs:      2000,
		PagesCrawled: 50,
	}

	if err := AppendRunRow(path, row); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := AppendRunRow(path, row); err != nil {
		t.Fatalf("second append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), data)
	}
	if lines[0] != "seed_url,max_pages,num_threads,total_ms,pages_crawled,throughput" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "https://a.test,100,4,2000,50,25.00" {
		t.Fatalf("unexpected row %q", lines[1])
	}
	if strings.Count(string(data), "seed_url") != 1 {
		t.Fatal("header written more than once")
	}
}

func TestThroughputZeroForInstantRun(t *testing.T) {
	t.Parallel()

	if got := (RunRow{TotalMs: 0, PagesCrawled: 10}).Throughput(); got != 0 {
		t.Fatalf("Throughput = %v, want 0", got)
	}
}
