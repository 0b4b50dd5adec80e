package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brafiq/bearmaps/pkg/engine/routingalgorithm"
	"github.com/brafiq/bearmaps/pkg/kv"
	"github.com/brafiq/bearmaps/pkg/metrics"
	"github.com/brafiq/bearmaps/pkg/roadnet"
	"github.com/brafiq/bearmaps/service"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	graphFile   = flag.String("graph", "berkeley.graph", "road network snapshot to load")
	dbDir       = flag.String("db", "bearmapsDB", "pebble directory holding the way index")
	metricsAddr = flag.String("metricsaddr", "", "prometheus listen address, empty disables the listener")
	preprocess  = flag.Bool("preprocess", false, "rebuild the way index from the graph before querying")
	fromArg     = flag.String("from", "", "route start as lat,lon")
	toArg       = flag.String("to", "", "route end as lat,lon")
	timeout     = flag.Duration("timeout", 10*time.Second, "route query deadline")
)

func main() {
	flag.Parse()

	rn, err := roadnet.LoadFromFile(*graphFile)
	if err != nil {
		log.Fatal(err)
	}

	db, err := pebble.Open(*dbDir, &pebble.Options{})
	if err != nil {
		log.Fatal(err)
	}
	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	if *preprocess {
		if err := kvDB.BuildWayIndex(rn.WayBuckets()); err != nil {
			log.Fatal(err)
		}
	}

	var m *metrics.RouteMetrics
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		m = metrics.NewRouteMetrics(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.Fatal(http.ListenAndServe(*metricsAddr, mux))
		}()
	}

	if *fromArg == "" || *toArg == "" {
		if *preprocess {
			return
		}
		flag.Usage()
		log.Fatal("need -from and -to to run a route query")
	}

	fromLat, fromLon, err := parseLatLon(*fromArg)
	if err != nil {
		log.Fatal(err)
	}
	toLat, toLon, err := parseLatLon(*toArg)
	if err != nil {
		log.Fatal(err)
	}

	svc := service.NewNavigationService(rn, routingalgorithm.NewRouteAlgorithm(rn), kvDB, m)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := svc.ShortestPath(ctx, service.RouteQuery{
		FromLat: fromLat, FromLon: fromLon,
		ToLat: toLat, ToLon: toLon,
	})
	if err != nil {
		log.Fatal(err)
	}
	if !res.Found {
		fmt.Println("no route connects the given points")
		return
	}

	fmt.Printf("distance: %.3f km\n", res.Dist)
	fmt.Printf("path: %s\n", res.Path)
	for _, maneuver := range res.Directions {
		fmt.Println(maneuver)
	}
}

func parseLatLon(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad latitude in %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad longitude in %q: %w", s, err)
	}
	return lat, lon, nil
}
