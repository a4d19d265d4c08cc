package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aidanlsb/jrnl/internal/atomicfile"
)

const defaultConfigFile = `# jrnl configuration

# Directory holding journal entries. "~" is expanded.
# Can be overridden with $JRNL_DIR or --dir.
journal_dir = "~/journal"

# Regular expressions for filenames to ignore, matched from the start of
# the name.
exclude = ['.*\.swp$', '^\.git$']

# Editor for "open" and "new" (defaults to $VISUAL, then $EDITOR, then vim).
# editor = "nvim"

# Extension given to entries created with "new".
extension = ".md"

# Prompt shown before each command.
prompt = ">> "

# One of debug, info, warn, error.
log_level = "warn"

# Optional accent color for aliases, references and headings.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

// CreateDefault writes the commented default config to path unless a file
// already exists there. It reports whether a file was written.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, []byte(defaultConfigFile), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return true, nil
}
