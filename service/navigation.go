package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brafiq/bearmaps/pkg/datastructure"
	"github.com/brafiq/bearmaps/pkg/domain"
	"github.com/brafiq/bearmaps/pkg/engine/routingalgorithm"
	"github.com/brafiq/bearmaps/pkg/geo"
	"github.com/brafiq/bearmaps/pkg/guidance"
	"github.com/brafiq/bearmaps/pkg/metrics"
	"github.com/brafiq/bearmaps/pkg/util"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type Graph interface {
	Closest(lon, lat float64) int64
	Lat(id int64) float64
	Lon(id int64) float64
	Distance(a, b int64) float64
	StreetName(a, b int64) (string, bool)
}

type Router interface {
	ShortestPathBetween(ctx context.Context, from, to int64) (routingalgorithm.Route, error)
}

type WayStore interface {
	NearestWaysFromPoint(lat, lon float64) ([]datastructure.WayBucket, error)
}

// RouteQuery is one shortest path request. Coordinates are degrees; the
// bounds reject the poles, the antimeridian and NaN.
type RouteQuery struct {
	FromLat float64 `json:"from_lat" validate:"lt=90,gt=-90"`
	FromLon float64 `json:"from_lon" validate:"lt=180,gt=-180"`
	ToLat   float64 `json:"to_lat" validate:"lt=90,gt=-90"`
	ToLon   float64 `json:"to_lon" validate:"lt=180,gt=-180"`
}

// RouteResult is the answer to a RouteQuery. Found false with a nil error
// means both endpoints snapped fine but no road connects them.
type RouteResult struct {
	Path       string                     `json:"path"`
	Route      []datastructure.Coordinate `json:"route,omitempty"`
	Dist       float64                    `json:"distance"`
	Directions []guidance.Maneuver        `json:"directions,omitempty"`
	Found      bool                       `json:"found"`
}

type NavigationService struct {
	graph        Graph
	router       Router
	ways         WayStore
	promeMetrics *metrics.RouteMetrics

	validate *validator.Validate
	trans    ut.Translator
}

// NewNavigationService wires the route use case. ways and promeMetrics may be
// nil; street names then come from the graph alone and nothing is observed.
func NewNavigationService(graph Graph, router Router, ways WayStore, promeMetrics *metrics.RouteMetrics) *NavigationService {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &NavigationService{
		graph:        graph,
		router:       router,
		ways:         ways,
		promeMetrics: promeMetrics,
		validate:     validate,
		trans:        trans,
	}
}

// ShortestPath snaps both query endpoints to the road network, runs the
// route search and narrates the result.
func (uc *NavigationService) ShortestPath(ctx context.Context, q RouteQuery) (RouteResult, error) {
	start := time.Now()

	if err := uc.validate.Struct(q); err != nil {
		uc.promeMetrics.ObserveQuery(metrics.StatusInvalid, time.Since(start).Seconds(), 0)
		return RouteResult{}, domain.WrapErrorf(err, domain.ErrBadParamInput,
			"invalid route query: %s", translateError(err, uc.trans))
	}

	fromLat := util.TruncateFloat64(q.FromLat, 6)
	fromLon := util.TruncateFloat64(q.FromLon, 6)
	toLat := util.TruncateFloat64(q.ToLat, 6)
	toLon := util.TruncateFloat64(q.ToLon, 6)

	from := uc.graph.Closest(fromLon, fromLat)
	to := uc.graph.Closest(toLon, toLat)

	route, err := uc.router.ShortestPathBetween(ctx, from, to)
	if err != nil {
		// the router only fails when the context is done
		uc.promeMetrics.ObserveQuery(metrics.StatusCancelled, time.Since(start).Seconds(), route.Expanded)
		return RouteResult{}, domain.WrapErrorf(err, domain.ErrInternalServerError, "route query aborted")
	}
	if !route.Found {
		uc.promeMetrics.ObserveQuery(metrics.StatusNoRoute, time.Since(start).Seconds(), route.Expanded)
		return RouteResult{}, nil
	}

	coords := make([]datastructure.Coordinate, 0, len(route.Path))
	for _, id := range route.Path {
		coords = append(coords, datastructure.NewCoordinate(uc.graph.Lat(id), uc.graph.Lon(id)))
	}

	res := RouteResult{
		Path:       datastructure.RenderPath(coords),
		Route:      coords,
		Dist:       route.Dist,
		Directions: guidance.RouteDirections(wayNameSource{uc.graph, uc.ways}, route.Path),
		Found:      true,
	}
	uc.promeMetrics.ObserveQuery(metrics.StatusFound, time.Since(start).Seconds(), route.Expanded)
	return res, nil
}

// wayNameSource narrates over the frozen graph, falling back to the way
// index for edges whose street name did not survive graph construction.
type wayNameSource struct {
	graph Graph
	ways  WayStore
}

func (w wayNameSource) Lat(id int64) float64 {
	return w.graph.Lat(id)
}

func (w wayNameSource) Lon(id int64) float64 {
	return w.graph.Lon(id)
}

func (w wayNameSource) Distance(a, b int64) float64 {
	return w.graph.Distance(a, b)
}

func (w wayNameSource) StreetName(a, b int64) (string, bool) {
	if name, ok := w.graph.StreetName(a, b); ok {
		return name, true
	}
	if w.ways == nil {
		return "", false
	}

	midLat, midLon := geo.MidPoint(w.graph.Lat(a), w.graph.Lon(a), w.graph.Lat(b), w.graph.Lon(b))
	buckets, err := w.ways.NearestWaysFromPoint(midLat, midLon)
	if err != nil {
		return "", false
	}
	for _, bucket := range buckets {
		if bucket.Street == "" {
			continue
		}
		if containsNode(bucket.NodeIDs, a) && containsNode(bucket.NodeIDs, b) {
			return bucket.Street, true
		}
	}
	return "", false
}

func containsNode(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func translateError(err error, trans ut.Translator) string {
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		msgs = append(msgs, e.Translate(trans))
	}
	return strings.Join(msgs, "; ")
}
