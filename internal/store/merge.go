package store

import "github.com/sirupsen/logrus"

// Graph is the merged, post-crawl view: adjacency lists keyed by source
// domain and visit counts per crawled domain. Domains that only ever appear
// as destinations have no adjacency key and an implicit visit count of 0.
type Graph struct {
	Adjacency map[string][]string
	Visits    map[string]int
}

// Merge unions all shard buffers into one graph. Shards are walked in
// ascending index order: adjacency lists overwrite, so the list a domain
// ends up with is the one from the highest-indexed shard that crawled it;
// visit counts sum across shards. Call only after every worker has been
// joined.
func (s *ShardStore) Merge() *Graph {
	g := &Graph{
		Adjacency: make(map[string][]string),
		Visits:    make(map[string]int),
	}

	for i := range s.shards {
		sh := &s.shards[i]
		for domain, links := range sh.graph {
			g.Adjacency[domain] = links
		}
		for domain, count := range sh.visits {
			g.Visits[domain] += count
		}
	}

	logrus.Infof("merged %d shards into %d unique domains", len(s.shards), len(g.Adjacency))
	return g
}

// TotalVisits sums visit counts over all crawled domains. At quiescence it
// equals the number of successfully crawled pages.
func (g *Graph) TotalVisits() int {
	total := 0
	for _, c := range g.Visits {
		total += c
	}
	return total
}

// VisitCount returns how many pages of a domain were crawled, 0 for
// destination-only domains.
func (g *Graph) VisitCount(domain string) int {
	return g.Visits[domain]
}
