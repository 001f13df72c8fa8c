package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/revumeapp/revume-cli/internal/client/collection"
	"github.com/revumeapp/revume-cli/internal/client/models"
)

// Search sets or clears the free-text search term and re-renders the list.
func (a *App) Search(ctx context.Context, args []string) error {
	a.engine.SetSearchTerm(strings.Join(args, " "))
	return a.List(ctx)
}

// FilterType sets the exact-match type filter; no argument clears it.
func (a *App) FilterType(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.engine.SetTypeFilter("")
		return a.List(ctx)
	}
	t := args[0]
	if !models.ValidReviewType(t) {
		printlnFn("Unknown type", t+";", "valid:", reviewTypeChoices())
		return fmt.Errorf("unknown review type %q", t)
	}
	a.engine.SetTypeFilter(t)
	return a.List(ctx)
}

// FilterCategory sets the category tag filter; no argument clears it.
func (a *App) FilterCategory(ctx context.Context, args []string) error {
	a.engine.SetCategoryFilter(strings.Join(args, " "))
	return a.List(ctx)
}

// Sort changes the ordering of the list view.
func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("usage: sort <" + sortKeyChoices() + ">")
		return nil
	}
	k := args[0]
	if !collection.ValidSortKey(k) {
		printlnFn("Unknown sort key", k+";", "valid:", sortKeyChoices())
		return fmt.Errorf("unknown sort key %q", k)
	}
	a.engine.SetSortKey(collection.SortKey(k))
	return a.List(ctx)
}

// Categories prints the distinct tags across the whole collection, ignoring
// any active filters.
func (a *App) Categories(ctx context.Context) error {
	cats := a.engine.Categories()
	if len(cats) == 0 {
		printlnFn("No categories yet.")
		return nil
	}
	printlnFn(strings.Join(cats, ", "))
	return nil
}

func sortKeyChoices() string {
	names := make([]string, len(collection.SortKeys))
	for i, k := range collection.SortKeys {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}
