package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/render"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
)

type WeatherHandler struct {
	WeatherService service.WeatherServiceInterface
	validate       *validator.Validate
	logger         *zap.SugaredLogger
}

func NewWeatherHandler(svc service.WeatherServiceInterface, logger *zap.SugaredLogger) *WeatherHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &WeatherHandler{
		WeatherService: svc,
		validate:       validator.New(),
		logger:         logger,
	}
}

type weatherQuery struct {
	City string `validate:"omitempty,max=100"`
	Lat  string `validate:"omitempty,latitude"`
	Lon  string `validate:"omitempty,longitude"`
	Unit string `validate:"omitempty,oneof=metric imperial"`
}

var (
	errMissingLocation = errors.New("Missing 'city' or 'lat'/'lon' query parameters")
	errInvalidLocation = errors.New("Invalid 'lat'/'lon' query parameters")
)

// location turns a validated query into a lookup. A city wins over coordinates.
func (q weatherQuery) location() (model.LocationQuery, error) {
	switch {
	case q.City != "":
		return model.ByCityName(q.City), nil
	case q.Lat != "" && q.Lon != "":
		lat, err := strconv.ParseFloat(q.Lat, 64)
		if err != nil {
			return model.LocationQuery{}, errInvalidLocation
		}
		lon, err := strconv.ParseFloat(q.Lon, 64)
		if err != nil {
			return model.LocationQuery{}, errInvalidLocation
		}
		return model.ByCoordinates(lat, lon), nil
	default:
		return model.LocationQuery{}, errMissingLocation
	}
}

type unitRequest struct {
	Unit string `json:"unit" validate:"required,oneof=metric imperial"`
}

type favoriteRequest struct {
	City string `json:"city" validate:"required,max=100"`
}

// dashboardView is the rendered dashboard. Current and Forecast are omitted
// when there is nothing to show.
type dashboardView struct {
	Query     string              `json:"query,omitempty"`
	Unit      model.Unit          `json:"unit"`
	Current   *render.CurrentView `json:"current,omitempty"`
	Forecast  []render.DayCard    `json:"forecast,omitempty"`
	Favorites []string            `json:"favorites"`
}

func newDashboardView(d *service.Dashboard) dashboardView {
	view := dashboardView{
		Query:     d.Query,
		Unit:      d.Unit,
		Favorites: d.Preferences.Favorites,
	}
	if d.Current != nil {
		cur := render.Current(*d.Current, d.Unit, d.IsFavorite)
		view.Current = &cur
		view.Forecast = render.DayCards(d.Days, d.Unit)
	}
	return view
}

func (h *WeatherHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Errorw("could not encode json", "error", err)
	}
}

func (h *WeatherHandler) writeError(w http.ResponseWriter, statusCode int, errMsg string) {
	h.writeJSONResponse(w, statusCode, model.Response{
		Error:   &errMsg,
		Message: "Error",
	})
}

// writeLookupError reports a failed lookup. No dashboard data is sent, so a
// client never keeps showing content that belongs to another request.
func (h *WeatherHandler) writeLookupError(w http.ResponseWriter, err error, byCoordinates bool) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, repository.ErrConfiguration):
		status = http.StatusInternalServerError
	case errors.Is(err, repository.ErrInvalidQuery), errors.Is(err, service.ErrEmptyCity):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrStaleResponse):
		status = http.StatusConflict
	}
	h.writeError(w, status, service.UserMessage(err, byCoordinates))
}

// HandleWeather looks up ?city= or ?lat=&lon=, with an optional ?unit=.
func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	q := weatherQuery{
		City: strings.TrimSpace(r.URL.Query().Get("city")),
		Lat:  r.URL.Query().Get("lat"),
		Lon:  r.URL.Query().Get("lon"),
		Unit: r.URL.Query().Get("unit"),
	}
	if err := h.validate.Struct(q); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	query, err := q.location()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dashboard, err := h.WeatherService.Lookup(r.Context(), query, model.Unit(q.Unit))
	if err != nil {
		_, _, byCoords := query.Coordinates()
		h.writeLookupError(w, err, byCoords)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    newDashboardView(dashboard),
		Message: "Success",
	})
}

// HandleDashboard restores the last viewed city.
func (h *WeatherHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.WeatherService.Restore(r.Context())
	if err != nil {
		h.writeLookupError(w, err, false)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    newDashboardView(dashboard),
		Message: "Success",
	})
}

func (h *WeatherHandler) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    h.WeatherService.Preferences(r.Context()),
		Message: "Success",
	})
}

// HandleSetUnit stores the unit and re-renders the last city in it.
func (h *WeatherHandler) HandleSetUnit(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Unit must be 'metric' or 'imperial'")
		return
	}

	dashboard, err := h.WeatherService.SetUnit(r.Context(), model.Unit(req.Unit))
	if err != nil {
		h.writeLookupError(w, err, false)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    newDashboardView(dashboard),
		Message: "Success",
	})
}

func (h *WeatherHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Missing 'city'")
		return
	}

	favorites, err := h.WeatherService.ToggleFavorite(r.Context(), req.City)
	if err != nil {
		h.writeLookupError(w, err, false)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    map[string][]string{"favorites": favorites},
		Message: "Success",
	})
}

func (h *WeatherHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, model.Response{Message: "ok"})
}
