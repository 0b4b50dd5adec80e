package roadnet

import (
	"fmt"
	"os"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

type snapshotNode struct {
	ID  int64
	Lat float64
	Lon float64
}

type snapshotEdge struct {
	From   int64
	To     int64
	Street string
}

type snapshot struct {
	Nodes []snapshotNode
	Edges []snapshotEdge
}

// SaveToFile writes the network as a zstd-compressed binary snapshot so later
// runs can skip graph construction entirely.
func (rn *RoadNetwork) SaveToFile(path string) error {
	snap := snapshot{
		Nodes: make([]snapshotNode, 0, len(rn.nodes)),
		Edges: make([]snapshotEdge, 0, len(rn.streets)),
	}
	for _, id := range rn.Vertices() {
		n := rn.nodes[id]
		snap.Nodes = append(snap.Nodes, snapshotNode{ID: n.id, Lat: n.lat, Lon: n.lon})
	}
	for _, key := range rn.sortedEdgeKeys() {
		snap.Edges = append(snap.Edges, snapshotEdge{From: key[0], To: key[1], Street: rn.streets[key]})
	}

	encoded, err := binary.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("encode road network: %w", err)
	}
	compressed, err := zstd.Compress(nil, encoded)
	if err != nil {
		return fmt.Errorf("compress road network: %w", err)
	}
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return fmt.Errorf("write road network snapshot: %w", err)
	}
	return nil
}

// LoadFromFile reads a snapshot written by SaveToFile and returns the
// network already frozen.
func LoadFromFile(path string) (*RoadNetwork, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read road network snapshot: %w", err)
	}
	decompressed, err := zstd.Decompress(nil, raw)
	if err != nil {
		return nil, fmt.Errorf("decompress road network snapshot: %w", err)
	}
	var snap snapshot
	if err := binary.Unmarshal(decompressed, &snap); err != nil {
		return nil, fmt.Errorf("decode road network snapshot: %w", err)
	}

	rn := NewRoadNetwork()
	for _, n := range snap.Nodes {
		rn.AddNode(n.ID, n.Lat, n.Lon)
	}
	for _, e := range snap.Edges {
		rn.AddEdge(e.From, e.To, e.Street)
	}
	rn.Freeze()
	return rn, nil
}
