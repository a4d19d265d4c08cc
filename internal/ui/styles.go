package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA unless configured): aliases, entry names, references
// - Muted (gray): timestamps, tags, hints
// - No colored success/error/warning - use unicode symbols only

const (
	defaultAccent = "#A78BFA"
	mutedColor    = "#6C7086"
)

var (
	// Accent style for entry names, aliases, references
	Accent lipgloss.Style

	// Muted style for secondary info, hints, timestamps
	Muted lipgloss.Style

	// Bold style for emphasis
	Bold lipgloss.Style

	// AccentBold combines accent color with bold
	AccentBold lipgloss.Style

	// accentColor is the user-configured accent, or "" for the default palette.
	accentColor string

	colorEnabled = true
)

func init() {
	applyStyles()
}

// ConfigureTheme sets the accent color from user configuration. Values that
// are not an ANSI code (0-255) or a hex color fall back to the default palette.
func ConfigureTheme(accent string) {
	if c, ok := normalizeAccentColor(accent); ok {
		accentColor = c
	} else {
		accentColor = ""
	}
	applyStyles()
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// SetColorEnabled turns all styling on or off. With styling off every style
// renders its input unchanged.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
	applyStyles()
}

func applyStyles() {
	if !colorEnabled {
		Accent = lipgloss.NewStyle()
		Muted = lipgloss.NewStyle()
		Bold = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle()
		return
	}

	accent := defaultAccent
	if accentColor != "" {
		accent = accentColor
	}
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))
	Bold = lipgloss.NewStyle().Bold(true)
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true)
}

func normalizeAccentColor(raw string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		return "#" + hex, true
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}
