package session

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/revumeapp/revume-cli/internal/client/prefs"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme returns the persisted theme preference, falling back to the system
// default when nothing was stored.
func (m *Manager) Theme(ctx context.Context) string {
	v, err := m.store.Get(ctx, prefs.KeyTheme)
	if err == nil && (v == ThemeLight || v == ThemeDark) {
		return v
	}
	return systemTheme()
}

func (m *Manager) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return m.store.Set(ctx, prefs.KeyTheme, theme)
}

// systemTheme guesses the terminal theme from the COLORFGBG convention
// ("<fg>;<bg>", background 0–6 and 8 meaning dark). Defaults to light.
func systemTheme() string {
	parts := strings.Split(os.Getenv("COLORFGBG"), ";")
	if len(parts) < 2 {
		return ThemeLight
	}
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return ThemeLight
	}
	if bg <= 6 || bg == 8 {
		return ThemeDark
	}
	return ThemeLight
}
