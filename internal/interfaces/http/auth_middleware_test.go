package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-POS/internal/domain/entity"
	apphttp "github.com/jhoicas/Tienda-POS/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Tienda-POS/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "tienda-pos-test"
	testExpMin    = 60
)

// rbacApp monta GET /protected detrás de AuthMiddleware + RequireRole(allowed...).
func rbacApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func getProtected(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		role    string
		status  int
		code    string
	}{
		{"admin en ruta admin", []string{entity.RoleAdmin}, entity.RoleAdmin, http.StatusOK, ""},
		{"bodeguero en ruta de inventario", []string{entity.RoleAdmin, entity.RoleBodeguero}, entity.RoleBodeguero, http.StatusOK, ""},
		{"vendedor en ruta de caja", []string{entity.RoleAdmin, entity.RoleVendedor}, entity.RoleVendedor, http.StatusOK, ""},
		{"vendedor en ruta admin", []string{entity.RoleAdmin}, entity.RoleVendedor, http.StatusForbidden, "FORBIDDEN"},
		{"bodeguero en ruta de caja", []string{entity.RoleAdmin, entity.RoleVendedor}, entity.RoleBodeguero, http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{entity.RoleAdmin}, "", http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := getProtected(t, rbacApp(tc.allowed...), tokenForRole(t, tc.role))
			assert.Equal(t, tc.status, status)
			if tc.code != "" {
				assert.Contains(t, body, tc.code)
			}
		})
	}
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	app := rbacApp(entity.RoleAdmin)
	otherSecret, err := pkgjwt.Generate("otro-secret", testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		code   string
	}{
		"sin header":     {"", "MISSING_TOKEN"},
		"sin Bearer":     {"Token abc", "INVALID_TOKEN"},
		"malformado":     {"Bearer token.invalido.aqui", "INVALID_TOKEN"},
		"otra firma":     {"Bearer " + otherSecret, "INVALID_TOKEN"},
		"token expirado": {"Bearer " + expired, "INVALID_TOKEN"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := getProtected(t, app, tc.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Contains(t, body, tc.code)
		})
	}
}

func TestAuthMiddleware_LoadsClaims(t *testing.T) {
	status, body := getProtected(t, rbacApp(entity.RoleBodeguero), tokenForRole(t, entity.RoleBodeguero))
	require.Equal(t, http.StatusOK, status)

	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, testUserID, out["user_id"])
	assert.Equal(t, entity.RoleBodeguero, out["role"])
}

func TestJWT_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleVendedor, testIssuer, testExpMin)
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, entity.RoleVendedor, role)

	_, err = pkgjwt.Generate("", testUserID, entity.RoleVendedor, testIssuer, testExpMin)
	assert.Error(t, err, "secret vacío")
}
