package routingalgorithm

import (
	"context"

	"github.com/brafiq/bearmaps/pkg/datastructure"
	"github.com/brafiq/bearmaps/pkg/util"
)

// Graph is the road network view the search needs. Implementations must stay
// immutable while a search runs. Distance doubles as the edge weight for
// adjacent vertices and as the straight-line estimate between any two
// vertices; the heuristic is only admissible when the two agree, see
// WithoutHeuristic for graphs where they do not.
type Graph interface {
	Closest(lon, lat float64) int64
	Adjacent(id int64) []int64
	Distance(from, to int64) float64
	Lon(id int64) float64
	Lat(id int64) float64
}

// Route is the outcome of one shortest-path query. An unreachable
// destination is not an error: Found is false and Path empty. Expanded
// counts settled vertices, for instrumentation.
type Route struct {
	Path     []int64
	Dist     float64
	Found    bool
	Expanded int
}

type RouteAlgorithm struct {
	g              Graph
	heuristicScale float64
}

type Option func(*RouteAlgorithm)

// WithoutHeuristic drops the straight-line estimate, degrading the search to
// plain Dijkstra. Use it when edge weights are not great-circle distances
// and the estimate could overshoot.
func WithoutHeuristic() Option {
	return func(rt *RouteAlgorithm) {
		rt.heuristicScale = 0
	}
}

func NewRouteAlgorithm(g Graph, opts ...Option) *RouteAlgorithm {
	rt := &RouteAlgorithm{g: g, heuristicScale: 1}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// searchNode is one fringe entry. parent indexes the arena, -1 marks the
// start entry. g is the cost from the start to id along the parent chain.
type searchNode struct {
	id     int64
	parent int32
	g      float64
}

// searchContext carries all mutable state of a single query, so concurrent
// queries on the same RouteAlgorithm never share anything.
type searchContext struct {
	arena    []searchNode
	bestDist map[int64]float64
	settled  map[int64]struct{}
	fringe   *datastructure.MinHeap[int32]
}

func newSearchContext() *searchContext {
	return &searchContext{
		arena:    make([]searchNode, 0, 64),
		bestDist: make(map[int64]float64),
		settled:  make(map[int64]struct{}),
		fringe:   datastructure.NewMinHeap[int32](),
	}
}

func (sc *searchContext) push(id int64, parent int32, g, rank float64) {
	sc.arena = append(sc.arena, searchNode{id: id, parent: parent, g: g})
	sc.fringe.Insert(datastructure.PriorityQueueNode[int32]{Rank: rank, Item: int32(len(sc.arena) - 1)})
}

func (sc *searchContext) pathTo(index int32) []int64 {
	path := make([]int64, 0, 16)
	for i := index; i != -1; i = sc.arena[i].parent {
		path = append(path, sc.arena[i].id)
	}
	return util.ReverseG(path)
}

// ShortestPath snaps both coordinates to their closest vertices and routes
// between them.
func (rt *RouteAlgorithm) ShortestPath(ctx context.Context, fromLon, fromLat, toLon, toLat float64) (Route, error) {
	from := rt.g.Closest(fromLon, fromLat)
	to := rt.g.Closest(toLon, toLat)
	return rt.ShortestPathBetween(ctx, from, to)
}

// ShortestPathBetween runs best-first search from one vertex to another.
// Improved distances push a fresh fringe entry instead of reordering the old
// one; stale entries are discarded on pop via the settled set. The context
// is checked between pops, and cancellation surfaces as (empty route,
// ctx.Err()).
func (rt *RouteAlgorithm) ShortestPathBetween(ctx context.Context, from, to int64) (Route, error) {
	sc := newSearchContext()
	sc.bestDist[from] = 0
	sc.push(from, -1, 0, 0)

	expanded := 0
	for sc.fringe.Size() > 0 {
		if err := ctx.Err(); err != nil {
			return Route{Expanded: expanded}, err
		}

		min, _ := sc.fringe.ExtractMin()
		index := min.Item
		v := sc.arena[index]

		if v.id == to {
			return Route{
				Path:     sc.pathTo(index),
				Dist:     sc.bestDist[to],
				Found:    true,
				Expanded: expanded,
			}, nil
		}
		if _, done := sc.settled[v.id]; done {
			// stale entry superseded by a later, cheaper push
			continue
		}
		sc.settled[v.id] = struct{}{}
		expanded++

		for _, w := range rt.g.Adjacent(v.id) {
			candidate := sc.bestDist[v.id] + rt.g.Distance(v.id, w)
			if best, ok := sc.bestDist[w]; !ok || candidate < best {
				sc.bestDist[w] = candidate
				sc.push(w, index, candidate, candidate+rt.heuristic(w, to))
			}
		}
	}

	return Route{Expanded: expanded}, nil
}

func (rt *RouteAlgorithm) heuristic(from, to int64) float64 {
	if rt.heuristicScale == 0 {
		return 0
	}
	return rt.heuristicScale * rt.g.Distance(from, to)
}
