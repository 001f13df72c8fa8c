package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revumeapp/revume-cli/internal/client/models"
	"github.com/revumeapp/revume-cli/internal/logging"
)

// fakeBackend is a minimal in-memory stand-in for the Revume REST service.
type fakeBackend struct {
	mu      sync.Mutex
	token   string
	reviews map[string]models.Review
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{token: "tok-" + uuid.NewString(), reviews: map[string]models.Review{}}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid email or password"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(models.AuthResult{
			Token: b.token,
			User:  models.User{ID: uuid.NewString(), Email: req.Email},
		})
	})

	mux.HandleFunc("GET /api/reviews", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.token {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid or expired token"}`))
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		list := make([]models.Review, 0, len(b.reviews))
		for _, rv := range b.reviews {
			list = append(list, rv)
		}
		_ = json.NewEncoder(w).Encode(list)
	})

	mux.HandleFunc("POST /api/reviews", func(w http.ResponseWriter, r *http.Request) {
		var rv models.Review
		_ = json.NewDecoder(r.Body).Decode(&rv)
		rv.ID = uuid.NewString()
		b.mu.Lock()
		b.reviews[rv.ID] = rv
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(rv)
	})

	mux.HandleFunc("PUT /api/reviews/{id}", func(w http.ResponseWriter, r *http.Request) {
		var rv models.Review
		_ = json.NewDecoder(r.Body).Decode(&rv)
		rv.ID = r.PathValue("id")
		b.mu.Lock()
		b.reviews[rv.ID] = rv
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(rv)
	})

	mux.HandleFunc("DELETE /api/reviews/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		delete(b.reviews, r.PathValue("id"))
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"deleted": r.PathValue("id")})
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	return mux
}

func newTestClient(t *testing.T, h http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second, logging.NewDefault()), srv
}

func TestHTTPClient_AttachesBearerAndContentType(t *testing.T) {
	var gotAuth, gotType, gotReqID string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotReqID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`{"token":"t","user":{"id":"u1","email":"a@b.c"}}`))
	}))
	c.SetTokenSource(func() string { return "abc123" })

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.NotEmpty(t, gotReqID)
}

func TestHTTPClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := c.ListReviews(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestHTTPClient_NonSuccessBecomesRequestError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Title is required"}`))
	}))

	_, err := c.CreateReview(context.Background(), models.Review{})
	require.Error(t, err)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 400, re.Status)
	assert.Equal(t, "Bad Request", re.StatusText)
	assert.JSONEq(t, `{"detail":"Title is required"}`, re.Body)
	assert.Equal(t, `HTTP 400 Bad Request - {"detail":"Title is required"}`, re.Error())
}

func TestHTTPClient_Ready(t *testing.T) {
	ok, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	ok.SetTokenSource(func() string { return "should-not-be-sent" })
	assert.True(t, ok.Ready(context.Background()))

	down, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	assert.False(t, down.Ready(context.Background()))

	// Transport failure also maps to false.
	srv.Close()
	assert.False(t, down.Ready(context.Background()))
}

func TestHTTPClient_ReviewRoundTrip(t *testing.T) {
	backend := newFakeBackend()
	c, _ := newTestClient(t, backend.handler())
	c.SetTokenSource(func() string { return backend.token })
	ctx := context.Background()

	created, err := c.CreateReview(ctx, models.Review{
		Title: "Cafe X", Type: models.TypeFood, Rating: 4, Category: "coffee, brunch",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Cafe X", created.Title)
	assert.Equal(t, 4, created.Rating)

	list, err := c.ListReviews(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "coffee, brunch", list[0].Category)

	created.Rating = 5
	updated, err := c.UpdateReview(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	require.NoError(t, c.DeleteReview(ctx, created.ID))
	list, err = c.ListReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClassification(t *testing.T) {
	assert.True(t, IsUnauthorized(&RequestError{Status: 401}))
	assert.False(t, IsUnauthorized(&RequestError{Status: 403}))
	assert.False(t, IsUnauthorized(nil))

	for _, status := range []int{502, 503, 504, 522, 524} {
		assert.True(t, IsUnavailable(&RequestError{Status: status}), "status %d", status)
	}
	assert.False(t, IsUnavailable(&RequestError{Status: 500}))
	assert.False(t, IsUnavailable(&RequestError{Status: 401}))
}

func TestClassification_TransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewHTTPClient(srv.URL, time.Second, logging.NewDefault())
	srv.Close() // connection refused from here on

	_, err := c.ListReviews(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
	assert.False(t, IsUnauthorized(err))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "json detail string",
			err:  &RequestError{Status: 400, StatusText: "Bad Request", Body: `{"detail":"Email already registered"}`},
			want: "Email already registered",
		},
		{
			name: "json detail msg array",
			err:  &RequestError{Status: 422, StatusText: "Unprocessable Entity", Body: `{"detail":[{"msg":"Invalid email address","loc":["body","email"]}]}`},
			want: "Invalid email address",
		},
		{
			name: "plain body stripped of prefix",
			err:  &RequestError{Status: 500, StatusText: "Internal Server Error", Body: "boom"},
			want: "boom",
		},
		{
			name: "empty body falls back to status text",
			err:  &RequestError{Status: 503, StatusText: "Service Unavailable"},
			want: "Service Unavailable",
		},
		{
			name: "non-request error",
			err:  context.DeadlineExceeded,
			want: context.DeadlineExceeded.Error(),
		},
		{
			name: "nil",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
