package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"webrank/internal/store"
)

// Snapshot persists a finished crawl (merged graph, visit counts, ranks)
// into a sqlite database so results outlive the CSV reports and can be
// queried across runs.
type Snapshot struct {
	db *sql.DB
}

// NewSnapshot opens (or creates) the snapshot database and its schema.
func NewSnapshot(path string) (*Snapshot, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to snapshot database: %w", err)
	}

	s := &Snapshot{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize snapshot schema: %w", err)
	}
	return s, nil
}

func (s *Snapshot) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS nodes (
		domain TEXT PRIMARY KEY,
		visit_count INTEGER NOT NULL DEFAULT 0,
		pagerank REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS edges (
		from_domain TEXT NOT NULL,
		to_domain TEXT NOT NULL,
		weight INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (from_domain, to_domain)
	);

	CREATE INDEX IF NOT EXISTS idx_edges_to ON edges(to_domain);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save writes the merged graph and ranks in one transaction. Parallel edges
// collapse into a single row with their multiplicity as weight.
func (s *Snapshot) Save(g *store.Graph, ranks map[string]float64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	upsertNode, err := tx.Prepare(`
		INSERT INTO nodes (domain, visit_count, pagerank) VALUES (?, ?, ?)
		ON CONFLICT(domain) DO UPDATE SET
			visit_count = excluded.visit_count,
			pagerank = excluded.pagerank
	`)
	if err != nil {
		return fmt.Errorf("prepare node upsert: %w", err)
	}
	defer upsertNode.Close()

	for domain, score := range ranks {
		if _, err := upsertNode.Exec(domain, g.VisitCount(domain), score); err != nil {
			return fmt.Errorf("upsert node %s: %w", domain, err)
		}
	}

	upsertEdge, err := tx.Prepare(`
		INSERT INTO edges (from_domain, to_domain, weight) VALUES (?, ?, ?)
		ON CONFLICT(from_domain, to_domain) DO UPDATE SET
			weight = excluded.weight
	`)
	if err != nil {
		return fmt.Errorf("prepare edge upsert: %w", err)
	}
	defer upsertEdge.Close()

	for from, dsts := range g.Adjacency {
		weights := make(map[string]int, len(dsts))
		for _, to := range dsts {
			weights[to]++
		}
		for to, weight := range weights {
			if _, err := upsertEdge.Exec(from, to, weight); err != nil {
				return fmt.Errorf("upsert edge %s -> %s: %w", from, to, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	logrus.Infof("snapshot saved: %d nodes", len(ranks))
	return nil
}

// TopDomains returns up to limit domains ordered by descending rank.
func (s *Snapshot) TopDomains(limit int) ([]RankedDomain, error) {
	rows, err := s.db.Query(`
		SELECT domain, visit_count, pagerank FROM nodes
		ORDER BY pagerank DESC, domain ASC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top domains: %w", err)
	}
	defer rows.Close()

	var out []RankedDomain
	for rows.Next() {
		var d RankedDomain
		if err := rows.Scan(&d.Domain, &d.VisitCount, &d.PageRank); err != nil {
			return nil, fmt.Errorf("scan domain row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate domain rows: %w", err)
	}
	return out, nil
}

// RankedDomain is one row of the snapshot's nodes table.
type RankedDomain struct {
	Domain     string
	VisitCount int
	PageRank   float64
}

// Close closes the underlying database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}
