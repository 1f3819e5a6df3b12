package rank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"webrank/internal/store"
)

func graphOf(adj map[string][]string) *store.Graph {
	return &store.Graph{Adjacency: adj, Visits: map[string]int{}}
}

func rankSum(ranks map[string]float64) float64 {
	s := 0.0
	for _, v := range ranks {
		s += v
	}
	return s
}

func TestEmptyGraphYieldsEmptyRank(t *testing.T) {
	t.Parallel()

	ranks := Compute(graphOf(map[string][]string{}), DefaultIterations)
	require.Empty(t, ranks)
}

func TestSingleIsolatedNode(t *testing.T) {
	t.Parallel()

	ranks := Compute(graphOf(map[string][]string{"a.test": {}}), DefaultIterations)
	require.Len(t, ranks, 1)
	require.InDelta(t, 1.0, ranks["a.test"], 1e-12)
}

func TestTwoNodeChainFavoursDestination(t *testing.T) {
	t.Parallel()

	ranks := Compute(graphOf(map[string][]string{
		"a.test": {"b.test"},
		"b.test": {},
	}), DefaultIterations)

	require.Len(t, ranks, 2)
	require.Greater(t, ranks["b.test"], ranks["a.test"],
		"the node receiving a link must outrank the one only giving it")
	require.InDelta(t, 1.0, rankSum(ranks), 1e-9)
}

func TestDestinationOnlyNodesAreRanked(t *testing.T) {
	t.Parallel()

	ranks := Compute(graphOf(map[string][]string{
		"a.test": {"b.test", "c.test"},
	}), DefaultIterations)

	require.Contains(t, ranks, "a.test")
	require.Contains(t, ranks, "b.test")
	require.Contains(t, ranks, "c.test")
	require.InDelta(t, 1.0, rankSum(ranks), 1e-9)
}

// Multi-edges contribute once per occurrence: ten parallel edges to x.test
// must deliver the full damped rank of the source, not a tenth of it.
func TestMultiEdgeContributions(t *testing.T) {
	t.Parallel()

	multi := make([]string, 10)
	for i := range multi {
		multi[i] = "x.test"
	}

	// One iteration so the contribution is directly checkable.
	ranks := Compute(graphOf(map[string][]string{"seed.test": multi}), 1)

	n := 2.0
	teleport := (1.0 - Damping) / n
	// seed starts at 1/2; all ten edge shares land on x.test.
	wantX := teleport + Damping*0.5
	// x.test is dangling with rank 1/2; its mass comes back to both nodes.
	dangling := Damping * 0.5 / n
	wantX += dangling
	wantSeed := teleport + dangling
	sum := wantX + wantSeed

	require.InDelta(t, wantX/sum, ranks["x.test"], 1e-12)
	require.InDelta(t, wantSeed/sum, ranks["seed.test"], 1e-12)
}

// Sum-to-one must hold after every iteration count, not just at the end.
func TestRankSumInvariantEachIteration(t *testing.T) {
	t.Parallel()

	g := graphOf(map[string][]string{
		"a.test": {"b.test", "c.test", "b.test"},
		"b.test": {"a.test"},
		"c.test": {}, // dangling
		"d.test": {"a.test", "e.test"},
	})

	for iters := 1; iters <= 40; iters++ {
		ranks := Compute(g, iters)
		require.InDeltaf(t, 1.0, rankSum(ranks), 1e-9, "after %d iterations", iters)
		for node, r := range ranks {
			require.GreaterOrEqualf(t, r, 0.0, "negative rank for %s after %d iterations", node, iters)
		}
	}
}

func TestDanglingMassIsRecycled(t *testing.T) {
	t.Parallel()

	// b.test hoards nothing: its inbound rank must flow back out through
	// the dangling redistribution instead of leaking.
	ranks := Compute(graphOf(map[string][]string{
		"a.test": {"b.test"},
		"c.test": {"b.test"},
	}), DefaultIterations)

	require.InDelta(t, 1.0, rankSum(ranks), 1e-9)
	require.Greater(t, ranks["b.test"], ranks["a.test"])
	require.InDelta(t, ranks["a.test"], ranks["c.test"], 1e-12,
		"symmetric sources must rank identically")
}

func TestSymmetricCycleIsUniform(t *testing.T) {
	t.Parallel()

	ranks := Compute(graphOf(map[string][]string{
		"a.test": {"b.test"},
		"b.test": {"c.test"},
		"c.test": {"a.test"},
	}), DefaultIterations)

	for _, node := range []string{"a.test", "b.test", "c.test"} {
		require.InDelta(t, 1.0/3.0, ranks[node], 1e-9)
	}
}

func TestZeroIterationsFallsBackToDefault(t *testing.T) {
	t.Parallel()

	g := graphOf(map[string][]string{"a.test": {"b.test"}, "b.test": {}})
	got := Compute(g, 0)
	want := Compute(g, DefaultIterations)
	for node := range want {
		require.True(t, math.Abs(got[node]-want[node]) < 1e-12)
	}
}
