// internal/rank/pagerank.go
package rank

import (
	"github.com/sirupsen/logrus"

	"webrank/internal/store"
)

const (
	// DefaultIterations is enough for convergence on inter-domain graphs of
	// the size a single crawl produces.
	DefaultIterations = 30

	// Damping is the probability a random surfer follows a link rather than
	// teleporting.
	Damping = 0.85
)

// Compute runs iterative PageRank over the merged graph. The node set is
// the union of adjacency keys and every destination domain, so rank flowing
// into pages we never crawled is kept rather than lost. Dangling mass
// (nodes with no outgoing edges, including every destination-only node) is
// redistributed uniformly each iteration, and the vector is renormalised to
// sum to exactly 1 to stop floating-point drift accumulating over
// iterations. Multi-edges contribute once per occurrence.
//
// Returns an empty map for an empty graph.
func Compute(g *store.Graph, iterations int) map[string]float64 {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	nodes := nodeSet(g)
	n := len(nodes)
	if n == 0 {
		logrus.Warn("pagerank: no nodes to rank")
		return map[string]float64{}
	}
	logrus.Infof("pagerank: %d nodes (including destination-only), %d iterations", n, iterations)

	ranks := make(map[string]float64, n)
	initial := 1.0 / float64(n)
	for node := range nodes {
		ranks[node] = initial
	}

	teleport := (1.0 - Damping) / float64(n)

	for iter := 0; iter < iterations; iter++ {
		next := make(map[string]float64, n)
		for node := range nodes {
			next[node] = teleport
		}

		// Mass parked on nodes with no outgoing edges.
		danglingMass := 0.0
		for node := range nodes {
			if len(g.Adjacency[node]) == 0 {
				danglingMass += ranks[node]
			}
		}

		// Edge contributions, one per occurrence in the adjacency list.
		for node := range nodes {
			outgoing := g.Adjacency[node]
			if len(outgoing) == 0 {
				continue
			}
			contribution := Damping * ranks[node] / float64(len(outgoing))
			for _, dst := range outgoing {
				next[dst] += contribution
			}
		}

		// Recycle dangling mass uniformly.
		danglingShare := Damping * danglingMass / float64(n)
		for node := range next {
			next[node] += danglingShare
		}

		// Renormalise so the sum-to-one invariant holds exactly.
		sum := 0.0
		for _, v := range next {
			sum += v
		}
		if sum > 0 {
			inv := 1.0 / sum
			for node := range next {
				next[node] *= inv
			}
		}

		ranks = next
	}

	return ranks
}

// nodeSet unions graph keys with every destination appearing in any
// adjacency list.
func nodeSet(g *store.Graph) map[string]struct{} {
	nodes := make(map[string]struct{}, len(g.Adjacency)*2)
	for src, dsts := range g.Adjacency {
		nodes[src] = struct{}{}
		for _, d := range dsts {
			nodes[d] = struct{}{}
		}
	}
	return nodes
}
