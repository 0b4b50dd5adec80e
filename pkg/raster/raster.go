package raster

import (
	"fmt"
	"math"
)

// Config fixes the tiled coverage area: the bounding box of the depth-0 tile,
// the tile edge length in pixels, and the deepest zoom level available.
type Config struct {
	RootUlLon float64
	RootUlLat float64
	RootLrLon float64
	RootLrLat float64
	TileSize  int
	MaxDepth  int
}

// DefaultConfig covers the Berkeley dataset the tile pyramid was cut from.
func DefaultConfig() Config {
	return Config{
		RootUlLon: -122.2998046875,
		RootUlLat: 37.892195547244356,
		RootLrLon: -122.2119140625,
		RootLrLat: 37.82280243352756,
		TileSize:  256,
		MaxDepth:  7,
	}
}

// Query is the viewport the front end wants rastered: a bounding box plus
// the viewport size in pixels. Height is accepted for symmetry but only the
// width drives resolution selection.
type Query struct {
	UlLon  float64
	UlLat  float64
	LrLon  float64
	LrLat  float64
	Width  float64
	Height float64
}

// Result is the tile grid answering a query. RenderGrid is row-major,
// north to south and west to east; the bounds are the outline of the
// returned tiles, not of the query box. A failed query has Success false
// and nothing else set.
type Result struct {
	RenderGrid [][]string
	UlLon      float64
	UlLat      float64
	LrLon      float64
	LrLat      float64
	Depth      int
	Success    bool
}

type Rasterer struct {
	cfg Config
}

func NewRasterer(cfg Config) *Rasterer {
	return &Rasterer{cfg: cfg}
}

// Raster picks the shallowest depth whose tiles pack at least the query's
// longitudinal resolution, then collects every tile of that depth
// intersecting the query box. Query boxes entirely outside the coverage
// area, or with inverted corners, fail.
func (r *Rasterer) Raster(q Query) Result {
	if q.LrLon < r.cfg.RootUlLon || q.UlLon > r.cfg.RootLrLon ||
		q.UlLat < r.cfg.RootLrLat || q.LrLat > r.cfg.RootUlLat ||
		q.UlLon > q.LrLon || q.UlLat < q.LrLat {
		return Result{}
	}

	depth := r.findDepth(q)
	tiles := 1 << depth
	lonWidth := (r.cfg.RootLrLon - r.cfg.RootUlLon) / float64(tiles)
	latWidth := (r.cfg.RootUlLat - r.cfg.RootLrLat) / float64(tiles)

	// A tile belongs in the grid iff its box overlaps the query box. A query
	// edge exactly on a tile boundary therefore excludes the tile it only
	// touches. Indices clamp so boxes sticking out of coverage still raster
	// the covered part.
	firstX := clampIndex(int(math.Floor((q.UlLon-r.cfg.RootUlLon)/lonWidth)), tiles)
	lastX := clampIndex(int(math.Ceil((q.LrLon-r.cfg.RootUlLon)/lonWidth))-1, tiles)
	firstY := clampIndex(int(math.Floor((r.cfg.RootUlLat-q.UlLat)/latWidth)), tiles)
	lastY := clampIndex(int(math.Ceil((r.cfg.RootUlLat-q.LrLat)/latWidth))-1, tiles)

	grid := make([][]string, 0, lastY-firstY+1)
	for y := firstY; y <= lastY; y++ {
		row := make([]string, 0, lastX-firstX+1)
		for x := firstX; x <= lastX; x++ {
			row = append(row, fmt.Sprintf("d%d_x%d_y%d.png", depth, x, y))
		}
		grid = append(grid, row)
	}

	return Result{
		RenderGrid: grid,
		UlLon:      r.cfg.RootUlLon + float64(firstX)*lonWidth,
		UlLat:      r.cfg.RootUlLat - float64(firstY)*latWidth,
		LrLon:      r.cfg.RootUlLon + float64(lastX+1)*lonWidth,
		LrLat:      r.cfg.RootUlLat - float64(lastY+1)*latWidth,
		Depth:      depth,
		Success:    true,
	}
}

// findDepth returns the first depth whose tile LonDPP does not exceed the
// query's, or MaxDepth when even the deepest tiles are too coarse.
func (r *Rasterer) findDepth(q Query) int {
	userLonDPP := (q.LrLon - q.UlLon) / q.Width
	lonDPP := (r.cfg.RootLrLon - r.cfg.RootUlLon) / float64(r.cfg.TileSize)
	for depth := 0; depth <= r.cfg.MaxDepth; depth++ {
		if lonDPP <= userLonDPP {
			return depth
		}
		lonDPP /= 2
	}
	return r.cfg.MaxDepth
}

func clampIndex(i, tiles int) int {
	if i < 0 {
		return 0
	}
	if i > tiles-1 {
		return tiles - 1
	}
	return i
}
