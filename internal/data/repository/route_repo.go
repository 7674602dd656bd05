package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RouteRepository interface {
	Create(ctx context.Context, route *entity.Route) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Route, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Route, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	Update(ctx context.Context, route *entity.Route) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type routeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRouteRepository(db database.PgxIface, log *zap.Logger) RouteRepository {
	return &routeRepository{
		db:  db,
		log: log.With(zap.String("repository", "route")),
	}
}

const routeColumns = `id, company_id, origin, destination, distance, duration, stops, is_active, created_at, updated_at`

func scanRoute(row pgx.Row) (*entity.Route, error) {
	var rt entity.Route
	err := row.Scan(
		&rt.ID,
		&rt.CompanyID,
		&rt.Origin,
		&rt.Destination,
		&rt.Distance,
		&rt.Duration,
		&rt.Stops,
		&rt.IsActive,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *routeRepository) Create(ctx context.Context, route *entity.Route) error {
	query := `
		INSERT INTO routes (id, company_id, origin, destination, distance, duration, stops,
		                    is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		route.ID,
		route.CompanyID,
		route.Origin,
		route.Destination,
		route.Distance,
		route.Duration,
		route.Stops,
		route.IsActive,
		route.CreatedAt,
		route.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create route",
			zap.Error(err),
			zap.String("company_id", route.CompanyID.String()),
		)
		return fmt.Errorf("create route %s-%s: %w", route.Origin, route.Destination, err)
	}

	return nil
}

func (r *routeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	route, err := scanRoute(r.db.QueryRow(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find route by ID", zap.Error(err), zap.String("route_id", id.String()))
		return nil, fmt.Errorf("find route by ID %s: %w", id, err)
	}

	return route, nil
}

func (r *routeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Route, error) {
	out := make(map[uuid.UUID]*entity.Route, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = ANY($1)`, ids)
	if err != nil {
		r.log.Error("Failed to find routes", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find routes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			r.log.Error("Failed to scan route row", zap.Error(err))
			return nil, fmt.Errorf("scan route row: %w", err)
		}
		out[route.ID] = route
	}

	return out, rows.Err()
}

func (r *routeRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Route, error) {
	query := `
		SELECT ` + routeColumns + `
		FROM routes
		WHERE company_id = $1
		ORDER BY is_active DESC, origin, destination
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find routes by company",
			zap.Error(err),
			zap.String("company_id", companyID.String()),
		)
		return nil, fmt.Errorf("find routes of company %s: %w", companyID, err)
	}
	defer rows.Close()

	var routes []*entity.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			r.log.Error("Failed to scan route row", zap.Error(err))
			return nil, fmt.Errorf("scan route row: %w", err)
		}
		routes = append(routes, route)
	}

	return routes, rows.Err()
}

func (r *routeRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM routes WHERE company_id = $1`, companyID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count routes", zap.Error(err), zap.String("company_id", companyID.String()))
		return 0, fmt.Errorf("count routes of company %s: %w", companyID, err)
	}
	return count, nil
}

func (r *routeRepository) Update(ctx context.Context, route *entity.Route) error {
	query := `
		UPDATE routes
		SET origin = $2, destination = $3, distance = $4, duration = $5, stops = $6,
		    is_active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		route.ID,
		route.Origin,
		route.Destination,
		route.Distance,
		route.Duration,
		route.Stops,
		route.IsActive,
		route.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update route", zap.Error(err), zap.String("route_id", route.ID.String()))
		return fmt.Errorf("update route %s: %w", route.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("route %s not found", route.ID)
	}

	return nil
}

func (r *routeRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `UPDATE routes SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to deactivate route", zap.Error(err), zap.String("route_id", id.String()))
		return fmt.Errorf("deactivate route %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("route %s not found", id)
	}

	r.log.Info("Route deactivated", zap.String("route_id", id.String()))
	return nil
}
