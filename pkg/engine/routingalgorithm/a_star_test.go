package routingalgorithm_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/brafiq/bearmaps/pkg/engine/routingalgorithm"
	"github.com/brafiq/bearmaps/pkg/roadnet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weightedGraph is a Graph with hand-picked edge weights, for cases where
// the geometry must not dictate the costs. Distance reports the table weight
// for stored pairs and 0 otherwise, so the heuristic stays a lower bound.
type weightedGraph struct {
	adj    map[int64][]int64
	weight map[[2]int64]float64
}

func newWeightedGraph() *weightedGraph {
	return &weightedGraph{
		adj:    make(map[int64][]int64),
		weight: make(map[[2]int64]float64),
	}
}

func (g *weightedGraph) addEdge(a, b int64, w float64) {
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
	g.weight[pairKey(a, b)] = w
}

func pairKey(a, b int64) [2]int64 {
	if a > b {
		a, b = b, a
	}
	return [2]int64{a, b}
}

func (g *weightedGraph) Closest(lon, lat float64) int64 { return 0 }

func (g *weightedGraph) Adjacent(id int64) []int64 { return g.adj[id] }

func (g *weightedGraph) Distance(from, to int64) float64 {
	if w, ok := g.weight[pairKey(from, to)]; ok {
		return w
	}
	return 0
}

func (g *weightedGraph) Lon(id int64) float64 { return 0 }
func (g *weightedGraph) Lat(id int64) float64 { return 0 }

// southside Berkeley street grid, 3x3 plus an eastern spur, plus a
// two-node island disconnected from everything else
func buildBerkeleyNetwork() *roadnet.RoadNetwork {
	rn := roadnet.NewRoadNetwork()
	rn.AddNode(1, 37.8600, -122.2700)
	rn.AddNode(2, 37.8600, -122.2650)
	rn.AddNode(3, 37.8600, -122.2600)
	rn.AddNode(4, 37.8650, -122.2700)
	rn.AddNode(5, 37.8650, -122.2650)
	rn.AddNode(6, 37.8650, -122.2600)
	rn.AddNode(7, 37.8700, -122.2700)
	rn.AddNode(8, 37.8700, -122.2650)
	rn.AddNode(9, 37.8700, -122.2600)
	rn.AddNode(10, 37.8650, -122.2550)
	rn.AddNode(11, 37.9000, -122.2000)
	rn.AddNode(12, 37.9005, -122.2000)

	rn.AddEdge(1, 2, "Dwight Way")
	rn.AddEdge(2, 3, "Dwight Way")
	rn.AddEdge(4, 5, "Channing Way")
	rn.AddEdge(5, 6, "Channing Way")
	rn.AddEdge(7, 8, "Durant Ave")
	rn.AddEdge(8, 9, "Durant Ave")
	rn.AddEdge(1, 4, "Fulton St")
	rn.AddEdge(4, 7, "Fulton St")
	rn.AddEdge(2, 5, "Ellsworth St")
	rn.AddEdge(5, 8, "Ellsworth St")
	rn.AddEdge(3, 6, "Dana St")
	rn.AddEdge(6, 9, "Dana St")
	rn.AddEdge(6, 10, "Haste St")
	rn.AddEdge(11, 12, "Island Rd")
	rn.Freeze()
	return rn
}

func pathCost(g routingalgorithm.Graph, path []int64) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += g.Distance(path[i], path[i+1])
	}
	return total
}

func assertContiguous(t *testing.T, g routingalgorithm.Graph, path []int64) {
	t.Helper()
	for i := 0; i+1 < len(path); i++ {
		assert.Contains(t, g.Adjacent(path[i]), path[i+1],
			"path hops from %d to %d without an edge", path[i], path[i+1])
	}
}

// A cheap direct edge must not keep the search from finding the cheaper
// detour: A-B=1, B-C=1, A-C=3, C-D=1. The A->D optimum is A,B,C,D at cost 3,
// which requires discarding C's stale fringe entry from the direct edge.
func TestShortestPathPrefersDetourOverDirectEdge(t *testing.T) {
	g := newWeightedGraph()
	const a, b, c, d = 1, 2, 3, 4
	g.addEdge(a, b, 1)
	g.addEdge(b, c, 1)
	g.addEdge(a, c, 3)
	g.addEdge(c, d, 1)

	rt := routingalgorithm.NewRouteAlgorithm(g)
	route, err := rt.ShortestPathBetween(context.Background(), a, d)

	require.NoError(t, err)
	require.True(t, route.Found)
	assert.Equal(t, []int64{a, b, c, d}, route.Path)
	assert.InDelta(t, 3.0, route.Dist, 1e-12)
	assert.Equal(t, 3, route.Expanded)

	t.Run("same route without the heuristic", func(t *testing.T) {
		dij := routingalgorithm.NewRouteAlgorithm(g, routingalgorithm.WithoutHeuristic())
		route, err := dij.ShortestPathBetween(context.Background(), a, d)
		require.NoError(t, err)
		require.True(t, route.Found)
		assert.Equal(t, []int64{a, b, c, d}, route.Path)
		assert.InDelta(t, 3.0, route.Dist, 1e-12)
	})
}

func TestShortestPathStartEqualsEnd(t *testing.T) {
	rn := buildBerkeleyNetwork()
	rt := routingalgorithm.NewRouteAlgorithm(rn)

	route, err := rt.ShortestPathBetween(context.Background(), 5, 5)

	require.NoError(t, err)
	assert.True(t, route.Found)
	assert.Equal(t, []int64{5}, route.Path)
	assert.Zero(t, route.Dist)
	assert.Zero(t, route.Expanded)
}

func TestShortestPathUnreachable(t *testing.T) {
	rn := buildBerkeleyNetwork()
	rt := routingalgorithm.NewRouteAlgorithm(rn)

	route, err := rt.ShortestPathBetween(context.Background(), 1, 11)

	require.NoError(t, err)
	assert.False(t, route.Found)
	assert.Empty(t, route.Path)
	assert.Zero(t, route.Dist)
	assert.Positive(t, route.Expanded)
}

// Every pair's cost must match Floyd-Warshall, with and without the
// heuristic, and every returned path must be contiguous with a hop sum equal
// to the reported distance.
func TestShortestPathMatchesFloydWarshall(t *testing.T) {
	rn := buildBerkeleyNetwork()
	want := floydWarshall(rn)

	algorithms := map[string]*routingalgorithm.RouteAlgorithm{
		"astar":    routingalgorithm.NewRouteAlgorithm(rn),
		"dijkstra": routingalgorithm.NewRouteAlgorithm(rn, routingalgorithm.WithoutHeuristic()),
	}

	for name, rt := range algorithms {
		t.Run(name, func(t *testing.T) {
			for _, from := range rn.Vertices() {
				for _, to := range rn.Vertices() {
					route, err := rt.ShortestPathBetween(context.Background(), from, to)
					require.NoError(t, err)

					expected := want[[2]int64{from, to}]
					if math.IsInf(expected, 1) {
						assert.False(t, route.Found, "%d->%d should be unreachable", from, to)
						continue
					}

					require.True(t, route.Found, "%d->%d should be reachable", from, to)
					assert.InDelta(t, expected, route.Dist, 1e-9, "%d->%d", from, to)
					assert.Equal(t, from, route.Path[0])
					assert.Equal(t, to, route.Path[len(route.Path)-1])
					assertContiguous(t, rn, route.Path)
					assert.InDelta(t, route.Dist, pathCost(rn, route.Path), 1e-9)
				}
			}
		})
	}
}

func floydWarshall(rn *roadnet.RoadNetwork) map[[2]int64]float64 {
	ids := rn.Vertices()
	n := len(ids)
	pos := make(map[int64]int, n)
	for i, id := range ids {
		pos[id] = i
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = math.Inf(1)
			}
		}
	}
	for _, a := range ids {
		for _, b := range rn.Adjacent(a) {
			if w := rn.Distance(a, b); w < dist[pos[a]][pos[b]] {
				dist[pos[a]][pos[b]] = w
			}
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if dist[i][k]+dist[k][j] < dist[i][j] {
					dist[i][j] = dist[i][k] + dist[k][j]
				}
			}
		}
	}

	out := make(map[[2]int64]float64, n*n)
	for i, a := range ids {
		for j, b := range ids {
			out[[2]int64{a, b}] = dist[i][j]
		}
	}
	return out
}

func TestShortestPathSnapsCoordinates(t *testing.T) {
	rn := buildBerkeleyNetwork()
	rt := routingalgorithm.NewRouteAlgorithm(rn)

	// just outside the southwest and northeast corners
	route, err := rt.ShortestPath(context.Background(), -122.2702, 37.8598, -122.2598, 37.8702)

	require.NoError(t, err)
	require.True(t, route.Found)
	assert.Equal(t, int64(1), route.Path[0])
	assert.Equal(t, int64(9), route.Path[len(route.Path)-1])
	assertContiguous(t, rn, route.Path)
}

func TestShortestPathCancellation(t *testing.T) {
	rn := buildBerkeleyNetwork()
	rt := routingalgorithm.NewRouteAlgorithm(rn)

	t.Run("cancelled before the first pop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		route, err := rt.ShortestPathBetween(ctx, 1, 9)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, route.Found)
		assert.Empty(t, route.Path)
	})

	t.Run("expired deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 0)
		defer cancel()

		_, err := rt.ShortestPathBetween(ctx, 1, 9)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestShortestPathIdempotent(t *testing.T) {
	rn := buildBerkeleyNetwork()
	rt := routingalgorithm.NewRouteAlgorithm(rn)

	first, err := rt.ShortestPathBetween(context.Background(), 1, 10)
	require.NoError(t, err)
	require.True(t, first.Found)

	t.Run("sequential repeats", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			again, err := rt.ShortestPathBetween(context.Background(), 1, 10)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("concurrent queries share nothing", func(t *testing.T) {
		results := make([]routingalgorithm.Route, 16)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func(slot int) {
				defer wg.Done()
				route, err := rt.ShortestPathBetween(context.Background(), 1, 10)
				assert.NoError(t, err)
				results[slot] = route
			}(i)
		}
		wg.Wait()

		for _, route := range results {
			assert.Equal(t, first, route)
		}
	})
}
