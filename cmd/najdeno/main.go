package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/codec"
	"github.com/erazemk/najdeno/internal/config"
	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/geo"
	"github.com/erazemk/najdeno/internal/storage"
	"github.com/erazemk/najdeno/internal/store"
	"github.com/erazemk/najdeno/internal/sweep"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: najdeno <serve|export|import>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "export":
		cmdExport(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: najdeno <serve|export|import>\n", os.Args[1])
		os.Exit(1)
	}
}

func setup(dbPath, logLevel string) (*store.Store, *storage.Gateway, zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	database, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, logger, nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, nil, logger, nil, fmt.Errorf("ensuring database schema: %w", err)
	}

	gw := storage.New(database, logger)
	s := store.New(context.Background(), gw, logger)
	return s, gw, logger, func() { database.Close() }, nil
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s, gw, logger, closeDB, err := setup(cfg.DB.Path, cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeDB()

	logger.Info().Str("path", cfg.DB.Path).Msg("database ready")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Auto-delete runs in the background for as long as the server does.
	sweeper := sweep.New(s, gw, cfg.Sweep.Interval, logger)
	go sweeper.Run(ctx)

	handler := api.LoggingMiddleware(logger)(api.NewRouter(s, gw, geo.New(gw, logger)))

	server := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server forced to shutdown")
		}
	}()

	logger.Info().Str("addr", cfg.App.Addr).Msg("server started")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("server error")
		os.Exit(1)
	}

	logger.Info().Msg("server stopped, closing database")
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath := fs.String("db", "najdeno.db", "path to SQLite database file")
	out := fs.String("out", "", "output file (format from extension; - or empty for stdout JSON)")
	formatName := fs.String("format", "", "export format: csv, json, xml or litems (overrides extension)")
	fs.Parse(args)

	s, _, _, closeDB, err := setup(*dbPath, "warn")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeDB()

	format := codec.FormatJSON
	if *formatName != "" {
		format, err = codec.ParseFormat(*formatName)
	} else if *out != "" && *out != "-" {
		format, err = codec.DetectFormat(*out)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := codec.Export(s.Items(), format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *out == "" || *out == "-" {
		fmt.Print(data)
		return
	}
	if err := os.WriteFile(*out, []byte(data), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d items to %s\n", len(s.Items()), *out)
}

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dbPath := fs.String("db", "najdeno.db", "path to SQLite database file")
	formatName := fs.String("format", "", "import format: csv, json, xml or litems (overrides extension)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: najdeno import [flags] <file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	var format codec.Format
	var err error
	if *formatName != "" {
		format, err = codec.ParseFormat(*formatName)
	} else {
		format, err = codec.DetectFormat(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	items, err := codec.Import(string(data), format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s, _, _, closeDB, err := setup(*dbPath, "warn")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeDB()

	added := s.ImportItems(context.Background(), items)
	skipped := len(items) - added
	fmt.Printf("Imported %d items from %s", added, path)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}
