package routes

import (
	"net/url"
	"testing"

	"recipebox/db"
	"recipebox/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUserAndSignsIn(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doForm(t, app, fiber.MethodPost, "/register", url.Values{
		"name":     {"Carol"},
		"email":    {"carol@example.com"},
		"password": {"a-long-password"},
	}, "")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/recipe", resp.Header.Get("Location"))

	var user models.User
	require.NoError(t, db.DB.Where("email = ?", "carol@example.com").First(&user).Error)
	assert.Equal(t, "Carol", user.Name)
	assert.NotEqual(t, "a-long-password", user.PasswordHash)

	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			cookie = c.Name + "=" + c.Value
		}
	}
	require.NotEmpty(t, cookie, "register should start a session")

	// The fresh session is usable right away.
	page := doForm(t, app, fiber.MethodGet, "/recipe/create", nil, cookie)
	assert.Equal(t, fiber.StatusOK, page.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doForm(t, app, fiber.MethodPost, "/register", url.Values{
		"name":     {"Carol"},
		"email":    {"not-an-email"},
		"password": {"short"},
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := bodyOf(t, resp)
	assert.Contains(t, body, "Must be a valid email address")
	assert.Contains(t, body, "Too short")

	var count int64
	require.NoError(t, db.DB.Model(&models.User{}).Where("name = ?", "Carol").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, data := newTestApp(t)

	resp := doForm(t, app, fiber.MethodPost, "/register", url.Values{
		"name":     {"Impostor"},
		"email":    {data.alice.Email},
		"password": {"a-long-password"},
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "already registered")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, data := newTestApp(t)

	resp := doForm(t, app, fiber.MethodPost, "/login", url.Values{
		"email":    {data.alice.Email},
		"password": {"wrong-password"},
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "Invalid email or password")
}

func TestLogoutEndsSession(t *testing.T) {
	app, data := newTestApp(t)
	cookie := loginAs(t, app, data.alice.Email)

	resp := doForm(t, app, fiber.MethodPost, "/logout", nil, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	// The old cookie no longer carries an identity: create now redirects to
	// the login page.
	page := doForm(t, app, fiber.MethodGet, "/recipe/create", nil, cookie)
	require.Equal(t, fiber.StatusFound, page.StatusCode)
	assert.Equal(t, "/login", page.Header.Get("Location"))
}
