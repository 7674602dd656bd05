package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFleet(
	r chi.Router,
	fleetHandler *adaptor.FleetHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Apply middleware chain: AuthSession → RequireRole → RequireCompany
	r.Route("/api/admin/buses", func(r chi.Router) {
		r.Use(companyAdmin(repo, config, log)...)

		r.Get("/", fleetHandler.ListBuses)
		r.Post("/", fleetHandler.CreateBus)
		r.Put("/{id}", fleetHandler.UpdateBus)
		r.Delete("/{id}", fleetHandler.DeleteBus) // soft delete
	})

	r.Route("/api/admin/routes", func(r chi.Router) {
		r.Use(companyAdmin(repo, config, log)...)

		r.Get("/", fleetHandler.ListRoutes)
		r.Post("/", fleetHandler.CreateRoute)
		r.Put("/{id}", fleetHandler.UpdateRoute)
		r.Delete("/{id}", fleetHandler.DeleteRoute) // soft delete
	})

	r.Route("/api/admin/schedules", func(r chi.Router) {
		r.Use(companyAdmin(repo, config, log)...)

		r.Get("/", fleetHandler.ListSchedules)
		r.Post("/", fleetHandler.CreateSchedule)
		r.Put("/{id}", fleetHandler.UpdateSchedule)
		r.Delete("/{id}", fleetHandler.DeleteSchedule) // rejected while bookings are active
	})
}
