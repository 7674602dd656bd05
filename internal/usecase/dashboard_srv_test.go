package usecase

import (
	"context"
	"testing"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/authz"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboard_StatCards(t *testing.T) {
	repos, repo := newMockRepos()
	companyID := uuid.New()
	svc := NewDashboardService(repo, &utils.Config{Ticket: utils.TicketConfig{Currency: "MWK"}}, zap.NewNop())

	repos.booking.On("RevenueByCompany", mock.Anything, companyID).Return(15000.0, nil)
	repos.booking.On("CountByCompany", mock.Anything, companyID).Return(int64(4), nil)
	repos.schedule.On("CountActiveByCompany", mock.Anything, companyID).Return(int64(3), nil)
	repos.bus.On("CountByCompany", mock.Anything, companyID).Return(int64(2), nil)

	p := &authz.Principal{UserID: uuid.New(), Role: entity.RoleCompanyAdmin, CompanyID: &companyID}
	resp, err := svc.Dashboard(context.Background(), p)
	require.NoError(t, err)

	require.Len(t, resp.Cards, 4)
	assert.Equal(t, "MWK 15000.00", resp.Cards[0].Value)
	assert.Equal(t, "DollarSign", resp.Cards[0].Icon)
	assert.Equal(t, "green", resp.Cards[0].Color)
	assert.Equal(t, "4", resp.Cards[1].Value)
	assert.Equal(t, "Users", resp.Cards[1].Icon)
	assert.Equal(t, "Active Schedules", resp.Cards[2].Title)
	assert.Equal(t, "Truck", resp.Cards[3].Icon)
	assert.Equal(t, "2", resp.Cards[3].Value)
}

func TestDashboard_RequiresCompany(t *testing.T) {
	_, repo := newMockRepos()
	svc := NewDashboardService(repo, &utils.Config{}, zap.NewNop())

	_, err := svc.Dashboard(context.Background(), &authz.Principal{UserID: uuid.New(), Role: entity.RoleCompanyAdmin})
	assert.ErrorIs(t, err, ErrForbidden)
}
