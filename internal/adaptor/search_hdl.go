package adaptor

import (
	"net/http"
	"strconv"
	"strings"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SearchHandler serves the public schedule catalogue.
type SearchHandler struct {
	base
	service  usecase.SearchService
	bookings usecase.BookingService
}

func NewSearchHandler(service usecase.SearchService, bookings usecase.BookingService, log *zap.Logger) *SearchHandler {
	return &SearchHandler{
		base:     newBase(log, "search"),
		service:  service,
		bookings: bookings,
	}
}

// Search handles GET /api/schedules/search?from=&to=&date=&passengers=
// Optional: busType, minPrice, maxPrice, departFrom, departTo, amenities=wifi,ac, company
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := request.SearchScheduleRequest{
		From:       query.Get("from"),
		To:         query.Get("to"),
		Date:       query.Get("date"),
		Passengers: utils.ParseInt(query.Get("passengers"), 1),
		BusType:    query.Get("busType"),
		DepartFrom: query.Get("departFrom"),
		DepartTo:   query.Get("departTo"),
		Company:    query.Get("company"),
	}

	var err error
	if req.MinPrice, err = parsePrice(query.Get("minPrice")); err != nil {
		utils.ResponseBadRequest(w, "minPrice must be a number", nil)
		return
	}
	if req.MaxPrice, err = parsePrice(query.Get("maxPrice")); err != nil {
		utils.ResponseBadRequest(w, "maxPrice must be a number", nil)
		return
	}
	for _, a := range strings.Split(query.Get("amenities"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			req.Amenities = append(req.Amenities, a)
		}
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	results, err := h.service.Search(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "search schedules")
		return
	}

	utils.ResponseSuccess(w, "success", results)
}

// GetSchedule handles GET /api/schedules/{id}
func (h *SearchHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.GetSchedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get schedule")
		return
	}

	utils.ResponseSuccess(w, "success", schedule)
}

// SeatMap handles GET /api/schedules/{id}/seats
func (h *SearchHandler) SeatMap(w http.ResponseWriter, r *http.Request) {
	seats, err := h.bookings.SeatMap(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

func parsePrice(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
