package flash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/customer-records/internal/session"
)

func TestMemoryStorePushPop(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	require.NoError(t, store.Push(ctx, "s1", KindInfo, "first"))
	require.NoError(t, store.Push(ctx, "s1", KindInfo, "second"))
	require.NoError(t, store.Push(ctx, "s1", KindError, "failure"))
	require.NoError(t, store.Push(ctx, "s2", KindInfo, "other session"))

	t.Log("messages are returned in order and removed")
	{
		texts, err := store.Pop(ctx, "s1", KindInfo)
		require.NoError(t, err)
		require.Equal(t, []string{"first", "second"}, texts)

		texts, err = store.Pop(ctx, "s1", KindInfo)
		require.NoError(t, err)
		require.Empty(t, texts, "messages must be drained after pop")
	}

	t.Log("kinds and sessions are isolated")
	{
		texts, err := store.Pop(ctx, "s1", KindError)
		require.NoError(t, err)
		require.Equal(t, []string{"failure"}, texts)

		texts, err = store.Pop(ctx, "s2", KindInfo)
		require.NoError(t, err)
		require.Equal(t, []string{"other session"}, texts)
	}
}

func TestMemoryStoreExpiration(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	now := time.Date(2022, 8, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Push(ctx, "s1", KindInfo, "stale"))

	now = now.Add(2 * time.Minute)
	texts, err := store.Pop(ctx, "s1", KindInfo)
	require.NoError(t, err)
	require.Empty(t, texts, "expired messages must not be returned")
}

func TestFlasherUsesRequestSession(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	flasher := NewFlasher(store)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	h := session.Middleware(session.Cfg{CookieName: "sid", TimeToLive: time.Hour})(func(c echo.Context) error {
		if err := flasher.Add(c, KindInfo, "hello"); err != nil {
			return err
		}

		texts, err := store.Pop(c.Request().Context(), session.ID(c), KindInfo)
		require.NoError(t, err)
		require.Equal(t, []string{"hello"}, texts, "message must be stored for request session")
		return nil
	})

	require.NoError(t, h(c))
}
