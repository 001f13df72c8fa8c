// Package editor manages the local create/update form lifecycle for a
// review. A draft lives entirely in memory until submitted; cancelling is
// simply dropping it.
package editor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/revumeapp/revume-cli/internal/client/api"
	"github.com/revumeapp/revume-cli/internal/client/models"
)

const (
	defaultType   = models.TypePlace
	defaultRating = 3
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrInvalidType   = errors.New("unknown review type")
)

// Seams for tests.
var (
	nowFn    = time.Now
	readFile = os.ReadFile
)

// Draft is the editable working copy of a review.
type Draft struct {
	Review models.Review
}

// NewDraft returns an empty template: type "place", rating 3.
func NewDraft() *Draft {
	return &Draft{Review: models.Review{Type: defaultType, Rating: defaultRating}}
}

// FromReview seeds a draft from an existing review; submitting it will issue
// a full-record replace.
func FromReview(r models.Review) *Draft {
	return &Draft{Review: r}
}

// IsNew reports whether submitting will create rather than update.
func (d *Draft) IsNew() bool {
	return d.Review.ID == ""
}

// AttachPhoto reads the image at path into an inline data URL on the draft.
// Only the file read blocks; every other field stays editable around it.
func (d *Draft) AttachPhoto(path string) error {
	data, err := readFile(path)
	if err != nil {
		return fmt.Errorf("read photo: %w", err)
	}
	mime := http.DetectContentType(data)
	d.Review.PhotoDataURL = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	return nil
}

// RemovePhoto clears the attached image.
func (d *Draft) RemovePhoto() {
	d.Review.PhotoDataURL = ""
}

// Validate checks the fields the backend would reject.
func (d *Draft) Validate() error {
	if d.Review.Title == "" {
		return ErrTitleRequired
	}
	if d.Review.Rating < 1 || d.Review.Rating > 5 {
		return ErrInvalidRating
	}
	if !models.ValidReviewType(string(d.Review.Type)) {
		return ErrInvalidType
	}
	return nil
}

// Submit stamps the timestamps and persists the draft: an update (full
// replace) when it carries an id, a create otherwise. The saved review as
// returned by the server is handed back so the caller can refresh and close.
func (d *Draft) Submit(ctx context.Context, client api.Client) (*models.Review, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	stamp := nowFn().UTC().Format(time.RFC3339)
	r := d.Review
	r.Updated = stamp

	if d.IsNew() {
		r.Created = stamp
		return client.CreateReview(ctx, r)
	}
	return client.UpdateReview(ctx, r)
}
