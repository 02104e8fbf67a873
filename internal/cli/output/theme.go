package output

import (
	"sync/atomic"

	"github.com/fatih/color"
)

// Theme holds the colors used for headers, status cells and messages.
type Theme struct {
	Name    string
	Header  *color.Color
	Good    *color.Color
	Warn    *color.Color
	Bad     *color.Color
	Muted   *color.Color
	Message *color.Color
}

// LightTheme suits terminals with a light background.
func LightTheme() *Theme {
	return &Theme{
		Name:    "light",
		Header:  color.New(color.Bold, color.FgBlue),
		Good:    color.New(color.FgGreen),
		Warn:    color.New(color.FgYellow),
		Bad:     color.New(color.FgRed),
		Muted:   color.New(color.FgHiBlack),
		Message: color.New(color.FgBlack),
	}
}

// DarkTheme suits terminals with a dark background.
func DarkTheme() *Theme {
	return &Theme{
		Name:    "dark",
		Header:  color.New(color.Bold, color.FgHiCyan),
		Good:    color.New(color.FgHiGreen),
		Warn:    color.New(color.FgHiYellow),
		Bad:     color.New(color.FgHiRed),
		Muted:   color.New(color.FgWhite),
		Message: color.New(color.FgHiWhite),
	}
}

var currentTheme atomic.Pointer[Theme]

func init() {
	currentTheme.Store(LightTheme())
}

// ApplyDarkMode switches the process-wide theme. Tables rendered after the
// call use the new colors.
func ApplyDarkMode(dark bool) {
	if dark {
		currentTheme.Store(DarkTheme())
		return
	}
	currentTheme.Store(LightTheme())
}

// CurrentTheme returns the active theme.
func CurrentTheme() *Theme {
	return currentTheme.Load()
}

// SetColorEnabled turns ANSI colors on or off for every theme.
func SetColorEnabled(enabled bool) {
	color.NoColor = !enabled
}

// Status colors a status value by its meaning.
func (t *Theme) Status(s string) string {
	switch s {
	case "confirmed", "completed", "resolved", "active", "available", "published", "true":
		return t.Good.Sprint(s)
	case "pending", "new", "contacted", "on-tour", "in-use", "suspended":
		return t.Warn.Sprint(s)
	case "cancelled", "failed", "blocked", "maintenance":
		return t.Bad.Sprint(s)
	default:
		return s
	}
}
