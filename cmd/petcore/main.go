// Petcore is a terminal virtual pet that chats, plays and grows.
// Usage: petcore [--version] [--plain] [--trace] [--script <file>] [--content <dir>] [--store <kind>] [--seed <n>]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nathoo/petcore/cli"
	"github.com/nathoo/petcore/config"
	"github.com/nathoo/petcore/content"
	"github.com/nathoo/petcore/engine"
	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/host"
	"github.com/nathoo/petcore/loader"
	"github.com/nathoo/petcore/logging"
	"github.com/nathoo/petcore/store"
	"github.com/nathoo/petcore/tui"
	"github.com/nathoo/petcore/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: petcore [--version] [--plain] [--trace] [--script <file>] [--content <dir>] [--store <kind>] [--seed <n>]"

// flags are the command-line overrides applied on top of the environment.
type flags struct {
	plain      bool
	trace      bool
	scriptFile string
	contentDir string
	storeKind  string
	seed       string
}

func main() {
	var f flags

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("petcore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			f.plain = true
		case "--trace":
			f.trace = true
		case "--script", "--content", "--store", "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				os.Exit(1)
			}
			i++
			switch args[i-1] {
			case "--script":
				f.scriptFile = args[i]
			case "--content":
				f.contentDir = args[i]
			case "--store":
				f.storeKind = args[i]
			case "--seed":
				f.seed = args[i]
			}
		default:
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	if f.contentDir != "" {
		cfg.ContentDir = f.contentDir
	}
	if f.storeKind != "" {
		cfg.StoreKind = f.storeKind
	}
	if f.seed != "" {
		n, err := strconv.ParseInt(f.seed, 10, 64)
		if err != nil {
			return fmt.Errorf("--seed: %w", err)
		}
		cfg.Seed = n
	}
	if f.plain {
		cfg.Plain = true
	}

	log, logCloser, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	defer logCloser.Close()

	st, err := store.Open(ctx, store.Options{
		Kind:         store.Kind(cfg.StoreKind),
		Path:         cfg.StorePath,
		SaveInterval: cfg.StoreSaveInterval,
		RedisAddr:    cfg.RedisAddr,
		RedisPrefix:  cfg.RedisPrefix,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.StoreKind, err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("closing store")
		}
	}()

	// Lua content: a directory override or the embedded pack.
	var defs *state.Defs
	if cfg.ContentDir != "" {
		defs, err = loader.Load(cfg.ContentDir, loader.WithLogger(log))
	} else {
		defs, err = content.Default(loader.WithLogger(log))
	}
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		return err
	}

	opts := []engine.Option{
		engine.WithStore(st),
		engine.WithLogger(log),
		engine.WithTuning(tuning),
	}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithSeed(cfg.Seed))
	}
	eng := engine.New(defs, opts...)

	greeting, err := eng.Start(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Str("store", cfg.StoreKind).
		Str("pet", eng.State.Pet.Name).
		Int("level", eng.State.Pet.Level).
		Msg("session started")

	h := host.New(eng)
	h.Trace = f.trace

	// Script mode: open file, force plain, echo input, no pacing.
	if f.scriptFile != "" {
		file, err := os.Open(f.scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer file.Close()
		return runCLI(ctx, h, greeting, file, 0, true)
	}

	// Use plain CLI if requested or stdout is not a terminal.
	if cfg.Plain || !isTerminal() {
		return runCLI(ctx, h, greeting, os.Stdin, tuning.ReplyDelay, false)
	}

	if err := tui.Run(h, greeting, tuning.ReplyDelay); err != nil {
		return err
	}
	return eng.Save(context.Background())
}

func runCLI(ctx context.Context, h *host.Host, greeting types.Result, in io.Reader, delay time.Duration, echo bool) error {
	c := cli.New(h, delay)
	c.In = in
	c.EchoInput = echo
	if err := c.Run(ctx, greeting); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return h.Engine.Save(context.Background())
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
