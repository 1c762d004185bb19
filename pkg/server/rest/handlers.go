package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lintang/cityroute/pkg/datastructure"
	"lintang/cityroute/pkg/server"
	"lintang/cityroute/pkg/server/rest/service"
	"lintang/cityroute/pkg/spatial"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type NavigationService interface {
	ShortestPath(ctx context.Context, start, goal string) (service.RouteResult, error)
	BatchShortestPath(ctx context.Context, pairs []datastructure.RouteQuery) (string, []service.BatchItem, error)
	NearestLocations(ctx context.Context, coord datastructure.Coordinate, k int) []spatial.Nearby
	Locations(ctx context.Context) service.LocationsResult
	Location(ctx context.Context, name string) (service.LocationDetail, error)
}

type NavigationHandler struct {
	svc          NavigationService
	promeMetrics *metrics
	validate     *validator.Validate
	trans        ut.Translator
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, m *metrics) {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &NavigationHandler{svc, m, validate, trans}

	r.Group(func(r chi.Router) {
		r.Route("/api/routes", func(r chi.Router) {
			r.Post("/shortest-path", handler.shortestPath)
			r.Post("/batch", handler.batchShortestPath)
			r.Post("/nearest", handler.nearestLocations)
		})
		r.Route("/api/locations", func(r chi.Router) {
			r.Get("/", handler.locations)
			r.Get("/{name}", handler.location)
		})
	})
}

// validateRequest nil kalau request valid, selain itu renderer error validasi yang sudah di translate.
func (h *NavigationHandler) validateRequest(data interface{}) render.Renderer {
	if err := h.validate.Struct(data); err != nil {
		vv := translateError(err, h.trans)
		return ErrValidation(err, vv)
	}
	return nil
}

// ShortestPathRequest model info
//
//	@Description	request body untuk shortest path query antara 2 location di map
type ShortestPathRequest struct {
	Start string `json:"start" validate:"required,max=64"`
	Goal  string `json:"goal" validate:"required,max=64"`
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	s.Start = strings.TrimSpace(s.Start)
	s.Goal = strings.TrimSpace(s.Goal)
	if s.Start == "" || s.Goal == "" {
		return errors.New("invalid request")
	}
	return nil
}

// ShortestPathResponse	model info
//
//	@Description	response body untuk shortest path query antara 2 location di map
type ShortestPathResponse struct {
	Path       []datastructure.PathNode `json:"path"`
	TotalCost  int                      `json:"total_cost"`
	Found      bool                     `json:"found"`
	Iterations int                      `json:"iterations"`
	Polyline   string                   `json:"polyline,omitempty"`
	Cached     bool                     `json:"cached"`
}

func NewShortestPathResponse(res service.RouteResult) *ShortestPathResponse {
	path := res.Path
	if path == nil {
		path = []datastructure.PathNode{}
	}
	return &ShortestPathResponse{
		Path:       path,
		TotalCost:  res.TotalCost,
		Found:      res.Found,
		Iterations: res.Iterations,
		Polyline:   res.Polyline,
		Cached:     res.Cached,
	}
}

// shortestPath
//
//	@Summary		shortest path query antara 2 location di map pakai A*.
//	@Description	shortest path query antara 2 location di map pakai A*. Kalau tidak ada jalan antara keduanya, found = false.
//	@Tags			routes
//	@Param			body	body	ShortestPathRequest	true	"request body query shortest path antara 2 location"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/routes/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		422	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) shortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := h.validateRequest(*data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	res, err := h.svc.ShortestPath(r.Context(), data.Start, data.Goal)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.observeQuery(res)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewShortestPathResponse(res))
}

func (h *NavigationHandler) observeQuery(res service.RouteResult) {
	h.promeMetrics.SPQueryCount.WithLabelValues(fmt.Sprint(res.Found)).Inc()
	if res.Found && !res.Cached {
		h.promeMetrics.SPIterations.Observe(float64(res.Iterations))
	}
}

// BatchShortestPathRequest model info
//
//	@Description	request body untuk banyak shortest path query sekaligus
type BatchShortestPathRequest struct {
	Pairs []ShortestPathRequest `json:"pairs" validate:"required,min=1,max=100,dive"`
}

func (s *BatchShortestPathRequest) Bind(r *http.Request) error {
	if len(s.Pairs) == 0 {
		return errors.New("invalid request")
	}
	for i := range s.Pairs {
		if err := s.Pairs[i].Bind(r); err != nil {
			return fmt.Errorf("pair %d: %w", i, err)
		}
	}
	return nil
}

// BatchResult model info
//
//	@Description	hasil satu pasangan start-goal di batch query
type BatchResult struct {
	Start string `json:"start"`
	Goal  string `json:"goal"`
	ShortestPathResponse
	Error string `json:"error,omitempty"`
}

// BatchShortestPathResponse model info
//
//	@Description	response body untuk batch shortest path query
type BatchShortestPathResponse struct {
	BatchID string        `json:"batch_id"`
	Results []BatchResult `json:"results"`
}

func NewBatchShortestPathResponse(batchID string, items []service.BatchItem) *BatchShortestPathResponse {
	results := make([]BatchResult, 0, len(items))
	for _, it := range items {
		br := BatchResult{
			Start:                it.Start,
			Goal:                 it.Goal,
			ShortestPathResponse: *NewShortestPathResponse(it.Result),
		}
		if it.Err != nil {
			br.Error = errorMessage(it.Err)
		}
		results = append(results, br)
	}
	return &BatchShortestPathResponse{BatchID: batchID, Results: results}
}

// batchShortestPath
//
//	@Summary		banyak shortest path query sekaligus, dihitung paralel di worker pool.
//	@Description	banyak shortest path query sekaligus. Error per pasangan ada di field error, tidak menggagalkan seluruh batch.
//	@Tags			routes
//	@Param			body	body	BatchShortestPathRequest	true	"request body batch shortest path"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/routes/batch [post]
//	@Success		200	{object}	BatchShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) batchShortestPath(w http.ResponseWriter, r *http.Request) {
	data := &BatchShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := h.validateRequest(*data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	pairs := make([]datastructure.RouteQuery, len(data.Pairs))
	for i, p := range data.Pairs {
		pairs[i] = datastructure.RouteQuery{Start: p.Start, Goal: p.Goal}
	}
	batchID, items, err := h.svc.BatchShortestPath(r.Context(), pairs)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	for _, it := range items {
		if it.Err == nil {
			h.observeQuery(it.Result)
		}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewBatchShortestPathResponse(batchID, items))
}

// NearestRequest model info
//
//	@Description	request body untuk query k location terdekat dari suatu posisi
type NearestRequest struct {
	Lon int `json:"lon"`
	Lat int `json:"lat"`
	K   int `json:"k" validate:"required,gte=1,lte=100"`
}

func (s *NearestRequest) Bind(r *http.Request) error {
	if s.K == 0 {
		s.K = 1
	}
	return nil
}

// NearestResponse model info
//
//	@Description	response body untuk query location terdekat
type NearestResponse struct {
	Locations []spatial.Nearby `json:"locations"`
}

// nearestLocations
//
//	@Summary		k location terdekat dari posisi (lon, lat) dalam unit map.
//	@Description	k location terdekat dari posisi (lon, lat) dalam unit map, pakai rtree.
//	@Tags			routes
//	@Param			body	body	NearestRequest	true	"request body nearest location"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/routes/nearest [post]
//	@Success		200	{object}	NearestResponse
//	@Failure		400	{object}	ErrResponse
func (h *NavigationHandler) nearestLocations(w http.ResponseWriter, r *http.Request) {
	data := &NearestRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if errRend := h.validateRequest(*data); errRend != nil {
		render.Render(w, r, errRend)
		return
	}

	near := h.svc.NearestLocations(r.Context(), datastructure.NewCoordinate(data.Lon, data.Lat), data.K)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &NearestResponse{Locations: near})
}

// Bounds model info
//
//	@Description	bounding box semua location
type Bounds struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// LocationsResponse model info
//
//	@Description	response body list semua location
type LocationsResponse struct {
	Count  int      `json:"count"`
	Names  []string `json:"names"`
	Bounds Bounds   `json:"bounds"`
}

// locations
//
//	@Summary		list semua location di map.
//	@Description	list semua nama location (urut) dan bounding box map.
//	@Tags			locations
//	@Produce		application/json
//	@Router			/locations [get]
//	@Success		200	{object}	LocationsResponse
func (h *NavigationHandler) locations(w http.ResponseWriter, r *http.Request) {
	res := h.svc.Locations(r.Context())
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &LocationsResponse{
		Count:  len(res.Names),
		Names:  res.Names,
		Bounds: Bounds{MinLon: res.MinLon, MinLat: res.MinLat, MaxLon: res.MaxLon, MaxLat: res.MaxLat},
	})
}

// LocationResponse model info
//
//	@Description	response body satu location beserta road keluarnya
type LocationResponse struct {
	Name       string                   `json:"name"`
	Lon        int                      `json:"lon"`
	Lat        int                      `json:"lat"`
	Neighbours []service.NeighborDetail `json:"neighbours"`
}

// location
//
//	@Summary		detail satu location.
//	@Description	posisi location dan semua road keluar dari location itu.
//	@Tags			locations
//	@Param			name	path	string	true	"nama location"
//	@Produce		application/json
//	@Router			/locations/{name} [get]
//	@Success		200	{object}	LocationResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) location(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	detail, err := h.svc.Location(r.Context(), name)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &LocationResponse{
		Name:       detail.Name,
		Lon:        detail.Lon,
		Lat:        detail.Lat,
		Neighbours: detail.Neighbours,
	})
}

// ErrResponse model info
//
//	@Description	model untuk error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	statusText := ""
	switch getStatusCode(err) {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusUnprocessableEntity:
		statusText = "Unprocessable request."
	case http.StatusBadRequest:
		statusText = "Bad request."
	default:
		statusText = "Error."
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: getStatusCode(err),
		StatusText:     statusText,
		ErrorText:      errorMessage(err),
	}
}

// errorMessage pesan server.Error tanpa detail internal. Error lain disembunyikan.
func errorMessage(err error) string {
	var ierr *server.Error
	if !errors.As(err, &ierr) {
		return server.MessageInternalServerError
	}
	if ierr.Code() == server.ErrInternalServerError {
		return server.MessageInternalServerError
	}
	return ierr.Error()
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ierr *server.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	} else {
		switch ierr.Code() {
		case server.ErrInternalServerError:
			return http.StatusInternalServerError
		case server.ErrNotFound:
			return http.StatusNotFound
		case server.ErrUnprocessableEntity:
			return http.StatusUnprocessableEntity
		case server.ErrBadParamInput:
			return http.StatusBadRequest
		default:
			return http.StatusInternalServerError
		}
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := errors.New(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
