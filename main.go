package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/cj3636/gblame/internal/config"
	"github.com/cj3636/gblame/internal/export"
	"github.com/cj3636/gblame/internal/gitx"
	"github.com/cj3636/gblame/internal/runner"
	"github.com/cj3636/gblame/internal/tui"
)

var (
	showVersion  bool
	help         bool
	rev          string
	themeName    string
	highContrast bool
	noSync       bool
	configPath   string
	logFile      string
	exportFormat string
	exportFile   string
	exportCopy   bool
)

func init() {
	flag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flag.StringVarP(&rev, "rev", "r", "", "Open the blame pinned to the state before this revision")
	flag.StringVar(&themeName, "theme", "", "Color theme: default, solarized, or dracula")
	flag.BoolVar(&highContrast, "high-contrast", false, "Brighten the active theme")
	flag.BoolVar(&noSync, "no-sync", false, "Start with cursor synchronization disabled")
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flag.StringVar(&logFile, "log", "", "Write diagnostics to this file")
	flag.StringVar(&exportFormat, "export-format", "", "Export the blame as html, markdown, or ansi without launching the TUI")
	flag.StringVar(&exportFile, "export-file", "", "Write the exported blame to the provided file path")
	flag.BoolVar(&exportCopy, "export-copy", false, "Copy the exported blame to your clipboard")
	flag.BoolVarP(&help, "help", "h", false, "Show help information")
	flag.Usage = usage
}

func usage() {
	fmt.Println("gblame - A terminal git blame viewer built with Charm libraries")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  gblame [options] <tracked file>")
	fmt.Println("")
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  gblame main.go")
	fmt.Println("  gblame --rev a1b2c3d main.go           # Blame as of the state before a1b2c3d")
	fmt.Println("  gblame --export-format markdown main.go # Export without TUI")
	fmt.Println("")
	fmt.Println("Keyboard shortcuts:")
	fmt.Println("  j/↓    Cursor down")
	fmt.Println("  k/↑    Cursor up")
	fmt.Println("  d      Half page down")
	fmt.Println("  u      Half page up")
	fmt.Println("  g      Go to top")
	fmt.Println("  G      Go to bottom")
	fmt.Println("  enter  Time-travel to the parent of the line's revision")
	fmt.Println("  o      Show commit detail for the line's revision")
	fmt.Println("  s      Toggle cursor synchronization")
	fmt.Println("  tab    Switch pane focus")
	fmt.Println("  y      Copy the line's revision id")
	fmt.Println("  q/esc  Close pane (close detail first if open)")
	fmt.Println("  ?/h    Toggle help panel")
	fmt.Println("  Q      Quit")
}

func parseExportFormat(raw string) (export.Format, error) {
	switch strings.ToLower(raw) {
	case "", string(export.FormatMarkdown), "md":
		return export.FormatMarkdown, nil
	case string(export.FormatHTML), "htm":
		return export.FormatHTML, nil
	case string(export.FormatANSI), "text":
		return export.FormatANSI, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", raw)
	}
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	// Flags override the file.
	if themeName != "" {
		preset := config.ThemePreset(themeName)
		switch preset {
		case config.PresetDefault, config.PresetSolarize, config.PresetDracula:
			cfg.ThemePreset = preset
		default:
			return nil, fmt.Errorf("unknown theme: %s", themeName)
		}
	}
	if highContrast {
		cfg.HighContrast = true
	}
	cfg.Theme = config.ThemeForPreset(cfg.ThemePreset, cfg.HighContrast)
	if noSync {
		cfg.SyncEnabled = false
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	if cfg.LogFile == "" {
		log.SetOutput(io.Discard)
		return log, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return log, nil
}

// validate checks every precondition before any view exists: the file must
// be on disk, git must be available, and the file must live in a repository
// and be tracked there.
func validate(target string) (repoRoot, relPath string, err error) {
	if _, statErr := os.Stat(target); statErr != nil {
		return "", "", fmt.Errorf("file '%s' does not exist", target)
	}
	if err := gitx.Available(); err != nil {
		return "", "", err
	}
	repoRoot, err = gitx.RepoRoot(target)
	if err != nil {
		return "", "", err
	}
	relPath, err = gitx.RelPath(repoRoot, target)
	if err != nil {
		return "", "", err
	}
	if err := gitx.IsTracked(repoRoot, relPath); err != nil {
		return "", "", err
	}
	return repoRoot, relPath, nil
}

func readFileLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return gitx.SplitOutput(string(data)), nil
}

// exportBlame runs the blame synchronously and renders it without the TUI.
func exportBlame(cfg *config.Config, repoRoot, relPath string) error {
	format, err := parseExportFormat(exportFormat)
	if err != nil {
		return err
	}

	run := runner.New(cfg.JobTimeout)
	res := run.Start("git", gitx.BlameArgs(cfg.BlameFlags, rev, relPath), repoRoot).Wait()
	if !res.Ok() {
		return fmt.Errorf("git blame failed (exit %d): %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	listing := &export.Listing{
		FilePath: relPath,
		Rev:      rev,
		Lines:    gitx.SplitOutput(res.Stdout),
	}
	rendered, err := export.Render(listing, format, export.Options{ShowLineNumbers: true})
	if err != nil {
		return err
	}

	if exportFile != "" {
		if err := os.WriteFile(exportFile, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Printf("Blame saved to %s\n", exportFile)
	}

	if exportCopy {
		if err := export.CopyToClipboard(rendered, os.Stdout); err != nil {
			return fmt.Errorf("copying blame to clipboard: %w", err)
		}
		fmt.Println("Blame copied to clipboard.")
	}

	if exportFile == "" && !exportCopy {
		fmt.Println(rendered)
	}
	return nil
}

func main() {
	flag.Parse()

	if help {
		usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Println("gblame version 0.1.0")
		fmt.Println("A terminal git blame viewer built with Charm libraries")
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	target := args[0]

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	repoRoot, relPath, err := validate(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if exportFormat != "" || exportFile != "" || exportCopy {
		if err := exportBlame(cfg, repoRoot, relPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fileLines, err := readFileLines(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", target, err)
		os.Exit(1)
	}

	run := tui.ExecRunner{R: runner.New(cfg.JobTimeout)}
	model := tui.NewModel(cfg, log, run, repoRoot, target, relPath, fileLines, rev)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
