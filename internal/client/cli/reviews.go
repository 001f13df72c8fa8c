package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/revumeapp/revume-cli/internal/client/api"
	"github.com/revumeapp/revume-cli/internal/client/collection"
	"github.com/revumeapp/revume-cli/internal/client/models"
)

// List prints the filtered, sorted view of the collection.
func (a *App) List(ctx context.Context) error {
	view := a.engine.View()
	cr := a.engine.Criteria()

	if summary := criteriaSummary(cr); summary != "" {
		fmt.Fprintln(a.out, summary)
	}
	if len(view) == 0 {
		printlnFn("No reviews match.")
		return nil
	}

	for i, r := range view {
		fmt.Fprintf(a.out, "%3d. %-30s %-8s %-5s %s\n",
			i+1, r.Title, r.Type, strings.Repeat("*", r.Rating), r.Category)
	}
	return nil
}

func criteriaSummary(cr collection.Criteria) string {
	var parts []string
	if cr.SearchTerm != "" {
		parts = append(parts, "search="+cr.SearchTerm)
	}
	if cr.TypeFilter != "" {
		parts = append(parts, "type="+cr.TypeFilter)
	}
	if cr.CategoryFilter != "" {
		parts = append(parts, "category="+cr.CategoryFilter)
	}
	if cr.SortKey != "" && cr.SortKey != collection.SortUpdated {
		parts = append(parts, "sort="+string(cr.SortKey))
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// resolve maps a command argument (a 1-based index into the current view, or
// a raw id) onto a review from the collection.
func (a *App) resolve(args []string) (*models.Review, error) {
	if len(args) == 0 {
		return nil, errors.New("usage: <index|id>")
	}
	key := args[0]

	view := a.engine.View()
	if n, err := strconv.Atoi(key); err == nil {
		if n < 1 || n > len(view) {
			return nil, fmt.Errorf("no review at position %d", n)
		}
		r := view[n-1]
		return &r, nil
	}
	for _, r := range a.engine.Reviews() {
		if r.ID == key {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("no review with id %s", key)
}

// Show opens the single-item detail view.
func (a *App) Show(ctx context.Context, args []string) error {
	r, err := a.resolve(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	a.setDetail(r.ID)
	a.renderReview(*r)
	return nil
}

func (a *App) renderReview(r models.Review) {
	fmt.Fprintf(a.out, "%s (%s)\n", r.Title, r.Type)
	fmt.Fprintf(a.out, "  rating:   %s\n", strings.Repeat("*", r.Rating))
	if r.Category != "" {
		fmt.Fprintf(a.out, "  category: %s\n", r.Category)
	}
	if r.Address != "" {
		fmt.Fprintf(a.out, "  address:  %s\n", r.Address)
	}
	if r.Website != "" {
		fmt.Fprintf(a.out, "  website:  %s\n", r.Website)
	}
	if r.Date != "" {
		fmt.Fprintf(a.out, "  date:     %s\n", r.Date)
	}
	if r.Notes != "" {
		fmt.Fprintf(a.out, "  notes:    %s\n", r.Notes)
	}
	if r.PhotoDataURL != "" {
		fmt.Fprintf(a.out, "  photo:    attached (%d bytes inline)\n", len(r.PhotoDataURL))
	}
	if r.Created != "" {
		fmt.Fprintf(a.out, "  created:  %s\n", r.Created)
	}
	if r.Updated != "" {
		fmt.Fprintf(a.out, "  updated:  %s\n", r.Updated)
	}
	fmt.Fprintf(a.out, "  id:       %s\n", r.ID)
}

// Delete asks for confirmation, removes the review and refreshes. The detail
// view is closed when it pointed at the deleted id.
func (a *App) Delete(ctx context.Context, args []string) error {
	r, err := a.resolve(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %q?", r.Title), a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Kept.")
		return nil
	}

	err = a.engine.Delete(ctx, r.ID)
	switch {
	case err == nil:
		if a.detail() == r.ID {
			a.setDetail("")
		}
		printlnFn("Deleted.")
		return nil
	case errors.Is(err, collection.ErrServiceWaking):
		printlnFn(err.Error())
		return err
	case api.IsUnauthorized(err):
		a.setDetail("")
		printlnFn("Your session has expired, please sign in again.")
		return err
	default:
		printlnFn("Delete failed:", api.UserMessage(err))
		return err
	}
}
