package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/reservation-service/internal/domain"
)

type stubProfileRepo struct {
	profiles map[string]*domain.UserProfile
}

func (s *stubProfileRepo) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	return nil
}

func (s *stubProfileRepo) GetBySubjectID(ctx context.Context, subjectID string) (*domain.UserProfile, error) {
	profile, ok := s.profiles[subjectID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return profile, nil
}

func (s *stubProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubProfileRepo) PromoteRole(ctx context.Context, subjectID string, from, to domain.Role) (bool, error) {
	return false, nil
}

func (s *stubProfileRepo) UpdatePasswordHash(ctx context.Context, subjectID, hash string) error {
	return nil
}

func buildTestApp(t *testing.T, tm *TokenManager, repo *stubProfileRepo, guards ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	mw := NewMiddleware(tm, repo)

	chain := append([]fiber.Handler{mw.Handle}, guards...)
	chain = append(chain, func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"role": principal.Profile.Role})
	})
	app.Get("/protected", chain...)
	return app
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	app := buildTestApp(t, tm, &stubProfileRepo{profiles: map[string]*domain.UserProfile{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode) // no error middleware installed; DomainError bubbles

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareLoadsPrincipal(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	repo := &stubProfileRepo{profiles: map[string]*domain.UserProfile{
		"sub-1": {SubjectID: "sub-1", Role: domain.RoleMember},
	}}
	app := buildTestApp(t, tm, repo)

	token, _, err := tm.GenerateToken("sub-1", domain.RoleMember)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleEnforcesAllowedSet(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	repo := &stubProfileRepo{profiles: map[string]*domain.UserProfile{
		"sub-1": {SubjectID: "sub-1", Role: domain.RoleMember},
	}}
	app := buildTestApp(t, tm, repo, RequireRole(domain.RoleManager, domain.RoleAdmin))

	token, _, err := tm.GenerateToken("sub-1", domain.RoleMember)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
