package kv

import (
	"errors"
	"fmt"
	"math"

	"github.com/brafiq/bearmaps/pkg/concurrent"
	"github.com/brafiq/bearmaps/pkg/datastructure"
	"github.com/cockroachdb/pebble"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/uber/h3-go/v4"
)

const (
	// indexResolution is the H3 resolution way buckets are keyed by. Res 9
	// cells are ~0.1 km2, small enough that a lookup disk stays cheap.
	indexResolution = 9

	// snapRadiusKm bounds the close-in disk scanned on every lookup.
	snapRadiusKm = 0.7

	// maxWidenLevel caps the fallback ring search when the close-in disk is
	// empty (query far from any indexed way, e.g. open water).
	maxWidenLevel = 10
)

// KVDB persists way buckets in pebble, keyed by the H3 cell of each
// bucket's midpoint.
type KVDB struct {
	db *pebble.DB
}

func NewKVDB(db *pebble.DB) *KVDB {
	return &KVDB{db}
}

func (k *KVDB) Close() error {
	return k.db.Close()
}

// BuildWayIndex groups ways by the H3 cell of their midpoint and writes one
// record per cell. Buckets without node IDs carry nothing snappable and are
// skipped.
func (k *KVDB) BuildWayIndex(ways []datastructure.WayBucket) error {
	bar := progressbar.NewOptions(len(ways),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/2][reset] grouping ways into h3 cells..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	grouped := make(map[string][]datastructure.WayBucket)
	for _, w := range ways {
		if len(w.NodeIDs) == 0 {
			continue
		}
		cell := h3.LatLngToCell(h3.NewLatLng(w.CenterLat, w.CenterLon), indexResolution)
		grouped[cell.String()] = append(grouped[cell.String()], w)
		bar.Add(1)
	}

	fmt.Println("")
	bar = progressbar.NewOptions(len(grouped),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][2/2][reset] writing way buckets to pebble..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	workers := concurrent.NewWorkerPool[saveBucketsJob, error](4, len(grouped))
	for key, buckets := range grouped {
		workers.AddJob(saveBucketsJob{Key: key, Buckets: buckets})
		bar.Add(1)
	}
	workers.Close()

	workers.Start(k.saveBuckets)
	workers.Wait()
	for err := range workers.CollectResults() {
		if err != nil {
			return err
		}
	}
	return nil
}

type saveBucketsJob struct {
	Key     string
	Buckets []datastructure.WayBucket
}

func (k *KVDB) saveBuckets(job saveBucketsJob) error {
	val, err := EncodeWayBuckets(job.Buckets)
	if err != nil {
		return err
	}
	return k.db.Set([]byte(job.Key), val, pebble.Sync)
}

// NearestWaysFromPoint returns the way buckets indexed around lat,lon. It
// scans the cell disk covering snapRadiusKm first, then widens ring by ring
// until something turns up or maxWidenLevel is exhausted.
func (k *KVDB) NearestWaysFromPoint(lat, lon float64) ([]datastructure.WayBucket, error) {
	home := h3.LatLngToCell(h3.NewLatLng(lat, lon), indexResolution)

	ways, err := k.cellBuckets(home)
	if err != nil {
		return nil, err
	}
	for _, cell := range kRingIndexesArea(lat, lon, snapRadiusKm) {
		if cell == home {
			continue
		}
		buckets, err := k.cellBuckets(cell)
		if err != nil {
			return nil, err
		}
		ways = append(ways, buckets...)
	}

	for lev := 1; lev <= maxWidenLevel && len(ways) == 0; lev++ {
		for _, cell := range h3.GridDisk(home, lev) {
			if cell == home {
				continue
			}
			buckets, err := k.cellBuckets(cell)
			if err != nil {
				return nil, err
			}
			ways = append(ways, buckets...)
		}
	}

	if len(ways) == 0 {
		return nil, fmt.Errorf("no ways indexed near (%.6f, %.6f)", lat, lon)
	}
	return ways, nil
}

func (k *KVDB) cellBuckets(cell h3.Cell) ([]datastructure.WayBucket, error) {
	val, closer, err := k.db.Get([]byte(cell.String()))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	defer closer.Close()
	return DecodeWayBuckets(val)
}

// kRingIndexesArea returns the disk of cells around lat,lon whose combined
// area covers a circle of searchRadiusKm.
// https://observablehq.com/@nrabinowitz/h3-radius-lookup
func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	origin := h3.LatLngToCell(h3.NewLatLng(lat, lon), indexResolution)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea
	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	return h3.GridDisk(origin, radius)
}
