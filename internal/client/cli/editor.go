package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/revumeapp/revume-cli/internal/client/api"
	"github.com/revumeapp/revume-cli/internal/client/editor"
	"github.com/revumeapp/revume-cli/internal/client/models"
)

// Add walks the user through a fresh draft and creates the review.
func (a *App) Add(ctx context.Context) error {
	return a.editDraft(ctx, editor.NewDraft())
}

// Edit seeds a draft from an existing review and issues a full-record update.
func (a *App) Edit(ctx context.Context, args []string) error {
	r, err := a.resolve(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	return a.editDraft(ctx, editor.FromReview(*r))
}

// editDraft prompts for every field, confirms, submits, then refreshes. A
// declined confirmation drops the draft with no side effects.
func (a *App) editDraft(ctx context.Context, d *editor.Draft) error {
	if err := a.promptDraft(d); err != nil {
		return err
	}

	if err := d.Validate(); err != nil {
		printlnFn("Not saved:", err.Error())
		return err
	}

	ok, err := Confirm(a.reader, "Save?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Discarded.")
		return nil
	}

	saved, err := d.Submit(ctx, a.client)
	switch {
	case err == nil:
		printlnFn("Saved", saved.Title)
		a.setDetail(saved.ID)
		return a.Refresh(ctx)
	case api.IsUnauthorized(err):
		a.handleUnauthorized(ctx)
		return err
	case api.IsUnavailable(err):
		printlnFn("The service looks asleep; saving once it wakes...")
		a.retryWhenReady(func() {
			ctx := context.Background()
			saved, err := d.Submit(ctx, a.client)
			if err != nil {
				printlnFn("Save failed:", api.UserMessage(err))
				return
			}
			printlnFn("Saved", saved.Title)
			a.setDetail(saved.ID)
			_ = a.engine.Refresh(ctx)
		})
		return nil
	default:
		printlnFn("Save failed:", api.UserMessage(err))
		return err
	}
}

func reviewTypeChoices() string {
	names := make([]string, len(models.ReviewTypes))
	for i, t := range models.ReviewTypes {
		names[i] = string(t)
	}
	return strings.Join(names, "/")
}

func (a *App) promptDraft(d *editor.Draft) error {
	r := &d.Review

	title, err := GetFieldText(a.reader, "Title", r.Title, a.out)
	if err != nil {
		return err
	}
	r.Title = title

	typ, err := GetFieldText(a.reader,
		fmt.Sprintf("Type (%s)", reviewTypeChoices()),
		string(r.Type), a.out)
	if err != nil {
		return err
	}
	if !models.ValidReviewType(typ) {
		printlnFn("Unknown type, keeping", string(r.Type))
	} else {
		r.Type = models.ReviewType(typ)
	}

	rating, err := GetFieldText(a.reader, "Rating (1-5)", strconv.Itoa(r.Rating), a.out)
	if err != nil {
		return err
	}
	if n, convErr := strconv.Atoi(rating); convErr == nil && n >= 1 && n <= 5 {
		r.Rating = n
	} else {
		printlnFn("Rating must be 1-5, keeping", strconv.Itoa(r.Rating))
	}

	if r.Category, err = GetFieldText(a.reader, "Category (comma separated)", r.Category, a.out); err != nil {
		return err
	}
	if r.Address, err = GetFieldText(a.reader, "Address", r.Address, a.out); err != nil {
		return err
	}
	if r.Website, err = GetFieldText(a.reader, "Website", r.Website, a.out); err != nil {
		return err
	}
	if r.Date, err = GetFieldText(a.reader, "Date (YYYY-MM-DD)", r.Date, a.out); err != nil {
		return err
	}

	notes, err := GetMultiline(a.reader, "Notes", a.out)
	if err != nil {
		return err
	}
	if notes != "" {
		r.Notes = notes
	}

	return a.promptPhoto(d)
}

func (a *App) promptPhoto(d *editor.Draft) error {
	label := "Photo path (empty to skip)"
	if d.Review.PhotoDataURL != "" {
		label = "Photo path (empty keeps current, '-' removes)"
	}
	path, err := GetSimpleText(a.reader, label, a.out)
	if err != nil {
		return err
	}
	switch path {
	case "":
		return nil
	case "-":
		d.RemovePhoto()
		return nil
	}
	if err := d.AttachPhoto(path); err != nil {
		printlnFn("Could not attach photo:", err.Error())
	}
	return nil
}
