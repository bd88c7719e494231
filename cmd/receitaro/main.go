// Package main is the Receitaro CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/receitaro/receitaro/internal/config"
	"github.com/receitaro/receitaro/internal/importer"
	"github.com/receitaro/receitaro/internal/search"
	"github.com/receitaro/receitaro/internal/server"
	"github.com/receitaro/receitaro/internal/storage"
	"github.com/receitaro/receitaro/internal/watcher"
	"github.com/receitaro/receitaro/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/receitaro/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used instead.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "import":
		runImport()
	case "version", "--version", "-v":
		fmt.Printf("receitaro version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.Close()

	cache := search.NewResultCache()
	searcher := search.NewSearcher(cache,
		search.WithTTL(time.Duration(cfg.Search.CacheTTLSeconds)*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Watch.Directory != "" {
		imp := importer.NewImporter(store, logger)
		w := watcher.NewWatcher(cfg.Watch.Directory, cfg.Watch.Extensions, func(path string) {
			if _, err := imp.Import(ctx, path); err != nil {
				logger.Warn("watch import failed", zap.String("path", path), zap.Error(err))
				return
			}
			cache.Clear()
		}, logger)
		if err := w.Start(ctx); err != nil {
			logger.Fatal("failed to start watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	srv := server.NewServer(searcher, store, cfg, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Stop(shutdownCtx)
		cancel()
	}()

	if err := srv.Start(); err != nil {
		logger.Info("server stopped", zap.Error(err))
	}
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	limit := fs.Int("limit", 10, "maximum results")
	jsonOut := fs.Bool("json", false, "output JSON")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: receitaro search [flags] <query>")
		os.Exit(1)
	}
	rawQuery := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	candidates, err := store.ListRecipes(context.Background())
	if err != nil {
		fmt.Printf("Failed to list recipes: %v\n", err)
		os.Exit(1)
	}

	searcher := search.NewSearcher(nil)
	query, results := searcher.Search(rawQuery, candidates, search.Options{
		MaxResults: *limit,
		MinScore:   cfg.Search.MinScore,
	})

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(results)
		return
	}

	fmt.Printf("\nFound %d results for %q\n\n", len(results), rawQuery)
	for _, r := range results {
		fmt.Printf("%2d. %s (score %.2f)\n", r.Rank, r.Recipe.Title, r.Score)
		if len(r.MatchedFields) > 0 {
			fmt.Printf("    matched: %v\n", r.MatchedFields)
		}
	}
	if len(query.Suggestions) > 0 {
		fmt.Printf("\nTry also: %v\n", query.Suggestions)
	}
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: receitaro import [flags] <file.json|file.xlsx>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	imp := importer.NewImporter(store, logger)
	count, err := imp.Import(context.Background(), path)
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d recipes from %s\n", count, path)
}

func printUsage() {
	fmt.Println(`Receitaro - recipe catalog with relevance-ranked search

Usage:
  receitaro server [-config path] [-debug]     Start the HTTP API server
  receitaro search [-limit n] [-json] <query>  Search recipes from the CLI
  receitaro import <file.json|file.xlsx>       Bulk-import recipes
  receitaro version                            Print version`)
}
