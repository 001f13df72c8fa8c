// Package api implements the HTTP client for the Revume REST backend.
//
// All remote operations go through a single request helper that injects the
// bearer token and normalizes failures into *RequestError, so callers can
// classify outcomes with IsUnauthorized / IsUnavailable and render them with
// UserMessage.
package api

import (
	"context"

	"github.com/revumeapp/revume-cli/internal/client/models"
)

// Client is the remote store surface consumed by the session, collection and
// editor layers. Implementations must be safe for concurrent use.
type Client interface {
	Register(ctx context.Context, email, password string) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Logout(ctx context.Context) error

	ListReviews(ctx context.Context) ([]models.Review, error)
	CreateReview(ctx context.Context, r models.Review) (*models.Review, error)
	UpdateReview(ctx context.Context, r models.Review) (*models.Review, error)
	DeleteReview(ctx context.Context, id string) error

	// Ready probes /health without auth. It never returns an error; any
	// failure maps to false.
	Ready(ctx context.Context) bool
}
