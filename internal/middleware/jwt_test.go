package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/middleware"
)

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func newJWTApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/me", middleware.JWTProtected(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("user_role"),
		})
	})

	return app
}

func TestJWTProtectedAcceptsValidToken(t *testing.T) {
	app := newJWTApp("secret")

	token := signTestToken(t, "secret", jwt.MapClaims{
		"sub":  float64(7),
		"role": "student",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJWTProtectedRejectsMissingHeader(t *testing.T) {
	app := newJWTApp("secret")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsWrongSecret(t *testing.T) {
	app := newJWTApp("secret")

	token := signTestToken(t, "other-secret", jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsExpiredToken(t *testing.T) {
	app := newJWTApp("secret")

	token := signTestToken(t, "secret", jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleAllowsListedRoles(t *testing.T) {
	app := fiber.New()
	app.Get("/staff",
		func(c *fiber.Ctx) error {
			c.Locals("user_role", c.Get("X-Role"))
			return c.Next()
		},
		middleware.RequireRole("teacher", "admin"),
		func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusOK)
		},
	)

	cases := []struct {
		role string
		want int
	}{
		{"teacher", http.StatusOK},
		{"admin", http.StatusOK},
		{"Admin", http.StatusOK},
		{"student", http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		if tc.role != "" {
			req.Header.Set("X-Role", tc.role)
		}

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, tc.want, resp.StatusCode, "role %q", tc.role)
	}
}
