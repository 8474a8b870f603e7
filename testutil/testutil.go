// Package testutil wires an in-memory application instance for handler and
// ledger tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arena-app/config"
	"arena-app/database"
	"arena-app/middleware"
	"arena-app/models"
	authRoutes "arena-app/routers/authRoutes"
	roomRoutes "arena-app/routers/roomRoutes"
	teamRoutes "arena-app/routers/teamRoutes"
	tournamentRoutes "arena-app/routers/tournamentRoutes"
	walletRoutes "arena-app/routers/walletRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupApp returns a Fiber app backed by a per-test in-memory database with
// all routes registered.
func SetupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.LoadConfig()

	// Use a per-test database name to avoid cross-test interference
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.ConnectTestDb(name)
	require.NoError(t, err)

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	walletRoutes.SetupWalletRoutes(app)
	roomRoutes.SetupRoomRoutes(app)
	teamRoutes.SetupTeamRoutes(app)
	tournamentRoutes.SetupTournamentRoutes(app)

	return app, db
}

// CreateUser inserts a user and returns it with a valid bearer token.
func CreateUser(t *testing.T, db *gorm.DB, name, email, role string, balance int64) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    email,
		Role:     role,
		Password: "hashed-password",
		Balance:  balance,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

// DoJSON performs a JSON request against the app and decodes the response
// envelope.
func DoJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	return resp.StatusCode, envelope
}

// Data unwraps the data field of a response envelope as a map
func Data(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "response data is not an object: %v", envelope)
	return data
}
