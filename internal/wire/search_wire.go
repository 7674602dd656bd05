package wire

import (
	"bus-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSearch(r chi.Router, searchHandler *adaptor.SearchHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/schedules/search", searchHandler.Search)
	r.Get("/api/schedules/{id}", searchHandler.GetSchedule)
	r.Get("/api/schedules/{id}/seats", searchHandler.SeatMap)
}
