package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"webrank/internal/store"
)

// WritePagesReport writes one row per crawled domain:
// domain,outgoing_links,visit_count. Row order follows map iteration and is
// not part of the contract.
func WritePagesReport(path string, g *store.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pages report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"domain", "outgoing_links", "visit_count"}); err != nil {
		return fmt.Errorf("write pages header: %w", err)
	}
	for domain, links := range g.Adjacency {
		row := []string{domain, strconv.Itoa(len(links)), strconv.Itoa(g.VisitCount(domain))}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write pages row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush pages report: %w", err)
	}

	logrus.Infof("exported %d crawled domains to %s", len(g.Adjacency), path)
	return nil
}

// WriteRankReport writes one row per ranked domain:
// domain,pagerank_score with scores at six decimal places.
func WriteRankReport(path string, ranks map[string]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create rank report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"domain", "pagerank_score"}); err != nil {
		return fmt.Errorf("write rank header: %w", err)
	}
	for domain, score := range ranks {
		if err := w.Write([]string{domain, strconv.FormatFloat(score, 'f', 6, 64)}); err != nil {
			return fmt.Errorf("write rank row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush rank report: %w", err)
	}

	logrus.Infof("exported %d ranked domains to %s", len(ranks), path)
	return nil
}
