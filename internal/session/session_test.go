package session

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakoso/catalog-manager-be/internal/storage"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := SignToken(testSecret, "sess-1", time.Hour)
	require.NoError(t, err)

	id, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := SignToken(testSecret, "sess-1", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := SignToken(testSecret, "sess-1", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(storage.NewMemorySlot(), time.Hour)

	t.Run("materialize is idempotent per id", func(t *testing.T) {
		a := reg.Materialize("sess-1")
		b := reg.Materialize("sess-1")
		assert.Same(t, a, b)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("new sessions get distinct ids and catalogs", func(t *testing.T) {
		a := reg.New()
		b := reg.New()
		assert.NotEqual(t, a.ID, b.ID)
		assert.NotSame(t, a.Catalog, b.Catalog)
	})

	t.Run("sweep tears down idle sessions", func(t *testing.T) {
		sess := reg.Materialize("sess-idle")
		sess.LastSeen = time.Now().Add(-2 * time.Hour)

		before := reg.Len()
		reg.Sweep(time.Now())
		assert.Equal(t, before-1, reg.Len())
	})

	t.Run("expired session keeps its storage slot", func(t *testing.T) {
		ctx := context.Background()
		slot := storage.NewMemorySlot()
		reg := NewRegistry(slot, time.Hour)

		sess := reg.Materialize("sess-2")
		require.NoError(t, slot.Save(ctx, SlotKey(sess.ID), []byte(`[{"id":"p1","variants":[]}]`)))

		sess.LastSeen = time.Now().Add(-2 * time.Hour)
		reg.Sweep(time.Now())
		assert.Equal(t, 0, reg.Len())

		// returning client gets its catalog back
		revived := reg.Materialize("sess-2")
		assert.Len(t, revived.Catalog.Products(ctx), 1)
	})
}

func TestAttachMiddleware(t *testing.T) {
	reg := NewRegistry(storage.NewMemorySlot(), time.Hour)

	app := fiber.New()
	app.Use(Attach(reg, testSecret, time.Hour))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(FromCtx(c).ID)
	})

	t.Run("first request mints a session cookie", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var found bool
		for _, c := range resp.Cookies() {
			if c.Name == CookieName {
				found = true
				id, err := ParseToken(testSecret, c.Value)
				require.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		}
		assert.True(t, found, "session cookie not set")
	})

	t.Run("cookie holders keep their session", func(t *testing.T) {
		first, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
		require.NoError(t, err)

		var token string
		for _, c := range first.Cookies() {
			if c.Name == CookieName {
				token = c.Value
			}
		}
		require.NotEmpty(t, token)

		id, err := ParseToken(testSecret, token)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		second, err := app.Test(req)
		require.NoError(t, err)

		body, err := io.ReadAll(second.Body)
		require.NoError(t, err)
		assert.Equal(t, id, string(body))
	})
}
