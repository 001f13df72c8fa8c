package cli

import (
	"context"

	"github.com/revumeapp/revume-cli/internal/client/session"
)

// Theme shows the effective theme, or persists a new preference. The stored
// value survives restarts; without one the terminal's COLORFGBG hint decides.
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Theme:", a.session.Theme(ctx))
		return nil
	}
	if err := a.session.SetTheme(ctx, args[0]); err != nil {
		printlnFn("usage: theme [" + session.ThemeLight + "|" + session.ThemeDark + "]")
		return err
	}
	printlnFn("Theme set to", args[0])
	return nil
}
