// Package cli implements the jrnl command line: flag and config resolution,
// the interactive loop, and the editor hand-off after it.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/jrnl/internal/buildinfo"
	"github.com/aidanlsb/jrnl/internal/commands"
	"github.com/aidanlsb/jrnl/internal/config"
	"github.com/aidanlsb/jrnl/internal/editor"
	"github.com/aidanlsb/jrnl/internal/journal"
	"github.com/aidanlsb/jrnl/internal/repl"
	"github.com/aidanlsb/jrnl/internal/ui"
)

var (
	// Global flags
	configPath   string
	dirFlag      string
	excludeFlags []string
	editorFlag   string
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jrnl",
	Short: "jrnl - a journal kept in plain files",
	Long: `jrnl is an interactive prompt over a directory of journal entries.

Each entry is a file named <name>~<YYYY-MM-DD_HH-MM-SS>~<tag,tag><.ext>.
List and search entries, refer back to listed results with @N or @N-M,
and open or start entries in your editor.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	Version:      buildinfo.String(),
	RunE:         runJournal,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/jrnl/config.toml)")
	rootCmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Journal directory (overrides $JRNL_DIR and config)")
	rootCmd.Flags().StringArrayVarP(&excludeFlags, "exclude", "x", nil, "Extra filename pattern to ignore (repeatable)")
	rootCmd.Flags().StringVar(&editorFlag, "editor", "", "Editor command for open and new")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Log debug diagnostics to stderr")
}

// settings is the configuration after flags and environment are applied.
type settings struct {
	cfg        *config.Config
	configPath string
	journalDir string
}

// resolveSettings layers flags over environment over the config file over
// defaults, then validates the result.
func resolveSettings() (*settings, error) {
	path := config.ResolveConfigPath(configPath)
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if d := strings.TrimSpace(dirFlag); d != "" {
		cfg.JournalDir = d
	}
	cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	if e := strings.TrimSpace(editorFlag); e != "" {
		cfg.Editor = e
	}
	if verbose {
		cfg.LogLevel = config.LevelDebug
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	dir, err := cfg.ExpandedJournalDir()
	if err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, configPath: path, journalDir: dir}, nil
}

func runJournal(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	in, out, errOut := cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()

	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: s.cfg.Level()}))
	logger.Debug("config resolved", slog.String("path", s.configPath), slog.String("journal_dir", s.journalDir))

	ui.SetColorEnabled(isTerminal(out))
	ui.ConfigureTheme(s.cfg.UI.Accent)

	store, err := journal.Load(s.journalDir, journal.Options{Exclude: s.cfg.Exclude, Logger: logger})
	if err != nil {
		return err
	}

	width := ui.DefaultTermWidth
	if f, ok := out.(*os.File); ok {
		width = ui.NewDisplayContext(f).AvailableWidth(2)
	}

	router := repl.NewRouter(out, errOut, logger)
	err = commands.Register(router, commands.Deps{
		Store:     store,
		Editor:    s.cfg.GetEditor(),
		Extension: s.cfg.Extension,
		Width:     width,
	})
	if err != nil {
		return err
	}

	interrupts, stop := notifyInterrupt()
	defer stop()

	sess := &session{
		router:      router,
		in:          in,
		out:         out,
		prompt:      s.cfg.Prompt,
		interactive: isTerminal(in),
		interrupts:  interrupts,
	}
	argv, err := sess.run()
	if err != nil {
		return err
	}
	if len(argv) == 0 {
		return nil
	}

	logger.Debug("running editor", slog.Any("argv", argv))
	if err := editor.Run(argv, in, out, errOut); err != nil {
		return fmt.Errorf("%s: %w", editor.Name(s.cfg.GetEditor()), err)
	}
	return nil
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
