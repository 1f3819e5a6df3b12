package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"webrank/internal/store"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWritePagesReport(t *testing.T) {
	t.Parallel()

	g := &store.Graph{
		Adjacency: map[string][]string{
			"a.test": {"b.test", "c.test", "b.test"},
			"b.test": {},
		},
		Visits: map[string]int{"a.test": 2, "b.test": 1},
	}

	path := filepath.Join(t.TempDir(), "crawled_pages.csv")
	require.NoError(t, WritePagesReport(path, g))

	rows := readRows(t, path)
	require.Equal(t, []string{"domain", "outgoing_links", "visit_count"}, rows[0])

	// Row order is unspecified; compare as a set.
	got := map[string][]string{}
	for _, r := range rows[1:] {
		got[r[0]] = r[1:]
	}
	require.Equal(t, map[string][]string{
		"a.test": {"3", "2"},
		"b.test": {"0", "1"},
	}, got)
}

func TestWriteRankReportFormatsSixDecimals(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pagerank_results.csv")
	require.NoError(t, WriteRankReport(path, map[string]float64{
		"a.test": 0.25,
		"b.test": 0.7512345678,
	}))

	rows := readRows(t, path)
	require.Equal(t, []string{"domain", "pagerank_score"}, rows[0])

	got := map[string]string{}
	for _, r := range rows[1:] {
		got[r[0]] = r[1]
	}
	require.Equal(t, map[string]string{
		"a.test": "0.250000",
		"b.test": "0.751235",
	}, got)
}

func TestWriteRankReportEmptyRanks(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pagerank_results.csv")
	require.NoError(t, WriteRankReport(path, map[string]float64{}))

	rows := readRows(t, path)
	require.Len(t, rows, 1, "empty ranks still produce the header")
}

func TestWriteFailureSurfacesError(t *testing.T) {
	t.Parallel()

	err := WritePagesReport(filepath.Join(t.TempDir(), "missing", "out.csv"), &store.Graph{
		Adjacency: map[string][]string{},
		Visits:    map[string]int{},
	})
	require.Error(t, err)
}
