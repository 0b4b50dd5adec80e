package roadnet

import (
	"fmt"

	"github.com/brafiq/bearmaps/pkg/datastructure"
	"github.com/brafiq/bearmaps/pkg/geo"
	"github.com/dhconnelly/rtreego"
	"golang.org/x/exp/slices"
)

var tol = 0.0001

// nodePoint is the rtree entry for one vertex: a rectangle with side
// lengths 2*tol centered at the vertex location.
type nodePoint struct {
	location rtreego.Point // [lat, lon]
	id       int64
}

func (p *nodePoint) Bounds() rtreego.Rect {
	return p.location.ToRect(tol)
}

type node struct {
	id       int64
	lat, lon float64
	out      []int64
}

// RoadNetwork is an in-memory road graph: vertices with coordinates,
// undirected adjacency, a street name per segment, and an rtree over the
// vertices for snapping raw query coordinates. Build it with AddNode/AddEdge,
// then Freeze it; a frozen network is immutable and safe for concurrent
// readers.
type RoadNetwork struct {
	nodes   map[int64]*node
	streets map[[2]int64]string
	frozen  bool
	tree    *rtreego.Rtree
}

func NewRoadNetwork() *RoadNetwork {
	return &RoadNetwork{
		nodes:   make(map[int64]*node),
		streets: make(map[[2]int64]string),
	}
}

func (rn *RoadNetwork) AddNode(id int64, lat, lon float64) {
	rn.mustMutable()
	if _, ok := rn.nodes[id]; ok {
		panic(fmt.Sprintf("roadnet: duplicate node %d", id))
	}
	rn.nodes[id] = &node{id: id, lat: lat, lon: lon}
}

// AddEdge connects a and b in both directions. The edge weight is the
// great-circle distance between the endpoints, so the straight-line heuristic
// used on top of this graph is always a lower bound. Unknown endpoints are a
// data error and panic. Re-adding an existing segment is a no-op.
func (rn *RoadNetwork) AddEdge(a, b int64, streetName string) {
	rn.mustMutable()
	na := rn.mustNode(a)
	nb := rn.mustNode(b)

	key := edgeKey(a, b)
	if _, ok := rn.streets[key]; ok {
		return
	}
	rn.streets[key] = streetName
	na.out = append(na.out, b)
	nb.out = append(nb.out, a)
}

// Freeze seals the network and builds the rtree index. Mutations after
// Freeze panic. Freezing twice is a no-op.
func (rn *RoadNetwork) Freeze() {
	if rn.frozen {
		return
	}
	tree := rtreego.NewTree(2, 25, 50)
	for _, id := range rn.Vertices() {
		n := rn.nodes[id]
		tree.Insert(&nodePoint{location: rtreego.Point{n.lat, n.lon}, id: id})
	}
	rn.tree = tree
	rn.frozen = true
}

// Vertices returns every node id in ascending order.
func (rn *RoadNetwork) Vertices() []int64 {
	ids := make([]int64, 0, len(rn.nodes))
	for id := range rn.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Closest returns the id of the vertex nearest to the given coordinate.
// The network must be frozen and non-empty.
func (rn *RoadNetwork) Closest(lon, lat float64) int64 {
	if !rn.frozen {
		panic("roadnet: Freeze the network before querying")
	}
	if len(rn.nodes) == 0 {
		panic("roadnet: Closest on an empty network")
	}
	nearest := rn.tree.NearestNeighbor(rtreego.Point{lat, lon})
	return nearest.(*nodePoint).id
}

// Adjacent returns the neighbor ids of id. Callers must not modify the
// returned slice.
func (rn *RoadNetwork) Adjacent(id int64) []int64 {
	return rn.mustNode(id).out
}

// Distance returns the great-circle distance between two vertices in
// kilometers. For adjacent vertices this is exactly the edge weight, for any
// pair it is a lower bound on the length of a path between them.
func (rn *RoadNetwork) Distance(a, b int64) float64 {
	na := rn.mustNode(a)
	nb := rn.mustNode(b)
	return geo.HaversineDistance(
		geo.NewLocation(na.lat, na.lon),
		geo.NewLocation(nb.lat, nb.lon),
	)
}

func (rn *RoadNetwork) Lat(id int64) float64 {
	return rn.mustNode(id).lat
}

func (rn *RoadNetwork) Lon(id int64) float64 {
	return rn.mustNode(id).lon
}

// StreetName returns the name of the segment (a,b). Unnamed segments report
// false, same as missing ones.
func (rn *RoadNetwork) StreetName(a, b int64) (string, bool) {
	name, ok := rn.streets[edgeKey(a, b)]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// WayBuckets flattens every segment into the record the way store indexes:
// segment midpoint, endpoint ids, street name. Order is deterministic.
func (rn *RoadNetwork) WayBuckets() []datastructure.WayBucket {
	keys := rn.sortedEdgeKeys()
	buckets := make([]datastructure.WayBucket, 0, len(keys))
	for _, key := range keys {
		a := rn.nodes[key[0]]
		b := rn.nodes[key[1]]
		centerLat, centerLon := geo.MidPoint(a.lat, a.lon, b.lat, b.lon)
		buckets = append(buckets, datastructure.WayBucket{
			CenterLat: centerLat,
			CenterLon: centerLon,
			NodeIDs:   []int64{key[0], key[1]},
			Street:    rn.streets[key],
		})
	}
	return buckets
}

func (rn *RoadNetwork) sortedEdgeKeys() [][2]int64 {
	keys := make([][2]int64, 0, len(rn.streets))
	for key := range rn.streets {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(x, y [2]int64) int {
		if x[0] != y[0] {
			if x[0] < y[0] {
				return -1
			}
			return 1
		}
		switch {
		case x[1] < y[1]:
			return -1
		case x[1] > y[1]:
			return 1
		}
		return 0
	})
	return keys
}

func edgeKey(a, b int64) [2]int64 {
	if a > b {
		a, b = b, a
	}
	return [2]int64{a, b}
}

func (rn *RoadNetwork) mustNode(id int64) *node {
	n, ok := rn.nodes[id]
	if !ok {
		panic(fmt.Sprintf("roadnet: unknown node %d", id))
	}
	return n
}

func (rn *RoadNetwork) mustMutable() {
	if rn.frozen {
		panic("roadnet: network is frozen")
	}
}
