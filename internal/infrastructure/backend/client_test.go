package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUnauthorizedRunsHookWithSession(t *testing.T) {
	srv := newServer(t, http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`)
	var ended string
	c := NewClient(srv.URL, time.Second, nil, WithUnauthorizedHandler(func(ctx context.Context) {
		ended = SessionIDFrom(ctx)
	}))

	ctx := WithSessionID(WithToken(context.Background(), "tok"), "s-1")
	err := c.Get(ctx, "/auth/me", nil, nil)

	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorized(err))
	assert.Equal(t, "Could not validate credentials", apperror.GetAppError(err).Message)
	assert.Equal(t, "s-1", ended)
}

func TestUnauthorizedWithoutTokenSkipsHook(t *testing.T) {
	srv := newServer(t, http.StatusUnauthorized, `{}`)
	called := false
	c := NewClient(srv.URL, time.Second, nil, WithUnauthorizedHandler(func(context.Context) { called = true }))

	err := c.Post(context.Background(), "/auth/login", nil, map[string]string{"phone": "1"}, nil)
	require.Error(t, err)
	assert.False(t, called)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		code    int
		message string
		fields  int
	}{
		{"detail string", 400, `{"detail":"Insufficient stock for Rice"}`, 400, "Insufficient stock for Rice", 0},
		{"status text", 404, `{}`, 404, "The requested resource was not found", 0},
		{"server error", 500, `oops`, 502, "Server error, please try again later", 0},
		{"validation list", 422, `{"detail":[{"loc":["body","price"],"msg":"must be positive"}]}`, 422, "must be positive", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newServer(t, tc.status, tc.body)
			err := NewClient(srv.URL, time.Second, nil).Get(context.Background(), "/x", nil, nil)

			appErr := apperror.GetAppError(err)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.message, appErr.Message)
			assert.Len(t, appErr.Errors, tc.fields)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url, time.Second, nil).Get(context.Background(), "/products/", nil, nil)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
	assert.Equal(t, "Failed to connect to the server", appErr.Message)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, 20*time.Millisecond, nil).Get(context.Background(), "/slow", nil, nil)
	assert.Equal(t, http.StatusGatewayTimeout, apperror.GetAppError(err).Code)
}

func TestUnexpectedBody(t *testing.T) {
	srv := newServer(t, http.StatusOK, `not json`)
	var out map[string]any
	err := NewClient(srv.URL, time.Second, nil).Get(context.Background(), "/x", nil, &out)
	assert.Equal(t, http.StatusBadGateway, apperror.GetAppError(err).Code)
}
