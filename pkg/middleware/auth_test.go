package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type stubSessions struct {
	sessions map[string]*entity.Session
	err      error
}

func (s *stubSessions) Create(ctx context.Context, session *entity.Session) error { return nil }

func (s *stubSessions) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sessions[token], nil
}

func (s *stubSessions) Revoke(ctx context.Context, token string) error { return nil }

func (s *stubSessions) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error { return nil }

func (s *stubSessions) CleanExpiredSessions(ctx context.Context, retention time.Duration) (int64, error) {
	return 0, nil
}

type stubUsers struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUsers) Create(ctx context.Context, user *entity.User) error { return nil }

func (s *stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUsers) Update(ctx context.Context, user *entity.User) error { return nil }

type authFixture struct {
	sessions *stubSessions
	users    *stubUsers
	user     *entity.User
	token    string
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	companyID := uuid.New()
	user := &entity.User{
		Base:      entity.Base{ID: uuid.New()},
		FirstName: "Chikondi",
		Email:     "chikondi@example.com",
		Role:      entity.RoleCompanyAdmin,
		CompanyID: &companyID,
		IsActive:  true,
	}
	sessionID := uuid.New()

	token, err := utils.GenerateToken(testSecret, user.ID, string(user.Role), sessionID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	return &authFixture{
		sessions: &stubSessions{sessions: map[string]*entity.Session{
			sessionID.String(): {UserID: user.ID, Token: sessionID, ExpiresAt: time.Now().Add(time.Hour)},
		}},
		users: &stubUsers{users: map[uuid.UUID]*entity.User{user.ID: user}},
		user:  user,
		token: token,
	}
}

func (f *authFixture) serve(header string, chain ...func(http.Handler) http.Handler) (*httptest.ResponseRecorder, *http.Request) {
	var seen *http.Request
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusNoContent)
	})
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	h = AuthSession(f.sessions, f.users, testSecret, zap.NewNop())(h)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/buses", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthSession(t *testing.T) {
	t.Run("valid session loads the caller", func(t *testing.T) {
		f := newAuthFixture(t)
		rec, seen := f.serve("Bearer " + f.token)

		require.Equal(t, http.StatusNoContent, rec.Code)
		userID, ok := utils.GetUserIDFromContext(seen.Context())
		require.True(t, ok)
		assert.Equal(t, f.user.ID, userID)
		companyID, ok := utils.GetCompanyIDFromContext(seen.Context())
		require.True(t, ok)
		assert.Equal(t, *f.user.CompanyID, companyID)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		f := newAuthFixture(t)
		rec, _ := f.serve("bearer " + f.token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		f := newAuthFixture(t)
		rec, seen := f.serve("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("malformed header", func(t *testing.T) {
		f := newAuthFixture(t)
		rec, _ := f.serve(f.token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signature", func(t *testing.T) {
		f := newAuthFixture(t)
		forged, err := utils.GenerateToken("other-secret", f.user.ID, "company_admin", uuid.New(), time.Now().Add(time.Hour))
		require.NoError(t, err)
		rec, _ := f.serve("Bearer " + forged)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revoked session", func(t *testing.T) {
		f := newAuthFixture(t)
		f.sessions.sessions = map[string]*entity.Session{}
		rec, _ := f.serve("Bearer " + f.token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deactivated account", func(t *testing.T) {
		f := newAuthFixture(t)
		f.user.IsActive = false
		rec, _ := f.serve("Bearer " + f.token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("session lookup failure", func(t *testing.T) {
		f := newAuthFixture(t)
		f.sessions.err = errors.New("connection refused")
		rec, _ := f.serve("Bearer " + f.token)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRequireRoleAndCompany(t *testing.T) {
	log := zap.NewNop()

	t.Run("company admin with company", func(t *testing.T) {
		f := newAuthFixture(t)
		rec, _ := f.serve("Bearer "+f.token, RequireRole(log, entity.RoleCompanyAdmin), RequireCompany(log))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		f := newAuthFixture(t)
		f.user.Role = entity.RoleCustomer
		rec, _ := f.serve("Bearer "+f.token, RequireRole(log, entity.RoleCompanyAdmin))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin without company", func(t *testing.T) {
		f := newAuthFixture(t)
		f.user.CompanyID = nil
		rec, _ := f.serve("Bearer "+f.token, RequireRole(log, entity.RoleCompanyAdmin), RequireCompany(log))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("role check without authentication", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireRole(log, entity.RoleCustomer)(http.NotFoundHandler()).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRecover(t *testing.T) {
	rec := httptest.NewRecorder()
	Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
