package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/dropwatch/rod"
	"github.com/fwojciec/dropwatch/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// EnvFiles are dotenv files loaded before parsing. Missing files are skipped.
	EnvFiles []string

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// OpenBrowser starts the browser used for listing, probing and form
	// submission. Defaults to launching headless Chrome.
	OpenBrowser BrowserFunc

	// SQLite database holding deliveries and run history.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFiles:    []string{".env"},
		Getenv:      os.Getenv,
		OpenBrowser: launchBrowser,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	for _, path := range m.EnvFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dropwatch"),
		kong.Description("Collect file-host links from monitored sources, keep the live ones"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := os.MkdirAll(filepath.Dir(cli.DB), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DROPWATCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	openBrowser := m.OpenBrowser
	if openBrowser == nil {
		openBrowser = launchBrowser
	}

	deps := &Dependencies{
		Ctx:         ctx,
		Stdout:      stdout,
		Stderr:      stderr,
		Logger:      logger,
		Verbose:     cli.Verbose,
		Getenv:      getenv,
		OpenBrowser: openBrowser,
		Deliveries:  sqlite.NewDeliveryService(m.DB),
		Runs:        sqlite.NewRunService(m.DB),
	}

	return kongCtx.Run(deps)
}

// Browser opens the pages a run browses with.
type Browser interface {
	OpenPage() (rod.Page, error)
	Close() error
}

// BrowserFunc starts a Browser.
type BrowserFunc func(opts ...rod.BrowserOption) (Browser, error)

// launchBrowser starts headless Chrome.
func launchBrowser(opts ...rod.BrowserOption) (Browser, error) {
	b, err := rod.NewBrowser(opts...)
	if err != nil {
		return nil, err
	}
	return &chromeBrowser{Browser: b}, nil
}

type chromeBrowser struct {
	*rod.Browser
}

func (b *chromeBrowser) OpenPage() (rod.Page, error) {
	s, err := b.NewSession()
	if err != nil {
		return nil, err
	}
	return s, nil
}
