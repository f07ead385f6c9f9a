// File cabinet: an interactive shell over person records.
//
// Records live in memory or in a fixed-slot binary data file. The shell
// supports create/edit/insert/update/delete/select plus CSV and XML
// import/export, and can serve the same records over a JSON REST API.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"filecabinet/cmd/web"
	"filecabinet/config"
	"filecabinet/database"
	"filecabinet/decorator"
	"filecabinet/executor"
	"filecabinet/storage"
	"filecabinet/validation"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	storage    string
	rules      string
	stopwatch  bool
	logCalls   bool
	httpAddr   string
}

func parseFlags(args []string, stderr io.Writer) (flags, map[string]bool, error) {
	var f flags
	fs := flag.NewFlagSet("filecabinet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&f.storage, "storage", "", "record store: memory or file")
	fs.StringVar(&f.storage, "s", "", "shorthand for -storage")
	fs.StringVar(&f.rules, "validation-rules", "", "validation policy: default or custom")
	fs.StringVar(&f.rules, "v", "", "shorthand for -validation-rules")
	fs.BoolVar(&f.stopwatch, "use-stopwatch", false, "print the duration of every store call")
	fs.BoolVar(&f.logCalls, "use-logger", false, "log every store call")
	fs.StringVar(&f.httpAddr, "http-addr", "", "serve the REST API on this address")
	if err := fs.Parse(args); err != nil {
		return f, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set, nil
}

// applyFlags lays explicitly set flags over the loaded config
func applyFlags(cfg *config.Config, f flags, set map[string]bool) {
	if set["storage"] || set["s"] {
		cfg.Storage.Kind = f.storage
	}
	if set["validation-rules"] || set["v"] {
		cfg.Validation.Policy = f.rules
	}
	if f.stopwatch {
		cfg.Metrics.Stopwatch = true
	}
	if f.logCalls {
		cfg.Log.Calls = true
		if cfg.Log.Level != "debug" {
			cfg.Log.Level = "info"
		}
	}
	if set["http-addr"] {
		cfg.HTTP.Addr = f.httpAddr
	}
}

// openStore builds the configured store and the function that releases it
func openStore(cfg config.Config, v validation.Validator, logger *zap.Logger) (storage.Store, func() error, error) {
	if cfg.Storage.Kind == config.StorageFile {
		fs, err := storage.OpenFileStore(cfg.Storage.Path, v, storage.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return fs, fs.Close, nil
	}
	return storage.NewMemoryStore(v, storage.WithLogger(logger)), func() error { return nil }, nil
}

// decorate wraps the store in the configured timing and logging layers
func decorate(store storage.Store, cfg config.Config, logger *zap.Logger, stdout io.Writer) storage.Store {
	if cfg.Metrics.Enabled || cfg.Metrics.Stopwatch {
		var opts []decorator.TimedOption
		if cfg.Metrics.Stopwatch {
			opts = append(opts, decorator.WithReport(stdout))
		}
		store = decorator.NewTimed(store, opts...)
	}
	if cfg.Log.Calls {
		store = decorator.NewLogged(store, logger)
	}
	return store
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	f, set, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, f, set)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}
	defer logger.Sync()

	validator, err := cfg.Validator()
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg, validator, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("failed to close store", zap.Error(err))
		}
	}()

	db := database.New(decorate(store, cfg, logger, stdout), database.WithLogger(logger))

	if cfg.HTTP.Addr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := web.RunServer(ctx, db, cfg.HTTP.Addr, logger); err != nil {
				logger.Error("HTTP server stopped", zap.Error(err))
			}
		}()
		defer func() {
			cancel()
			<-done
		}()
	}

	fmt.Fprintln(stdout, "File cabinet application. Type 'help' for the list of commands.")
	fmt.Fprintf(stdout, "Using %s validation rules.\n", cfg.Validation.Policy)
	fmt.Fprintf(stdout, "Using %s storage.\n", cfg.Storage.Kind)

	opts := []executor.Option{executor.WithInput(stdin), executor.WithOutput(stdout)}
	if cfg.Storage.Kind == config.StorageFile {
		opts = append(opts, executor.WithFileStore())
	}
	return executor.New(db, opts...).Run()
}
