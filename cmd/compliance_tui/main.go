package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"compliance_tui/pkg/archive"
	"compliance_tui/pkg/commands"
	"compliance_tui/pkg/config"
	"compliance_tui/pkg/conversation"
	"compliance_tui/pkg/dispatch"
	_ "compliance_tui/pkg/dispatch/providers"
	"compliance_tui/pkg/export"
	"compliance_tui/pkg/logging"
	"compliance_tui/pkg/reveal"
	"compliance_tui/pkg/ui"
	"compliance_tui/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	query       string
	asJSON      bool
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("compliance_tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", config.GetConfigPath(), "path to the config file")
	fs.StringVar(&opts.query, "query", "", "run a single query and print the response")
	fs.BoolVar(&opts.asJSON, "json", false, "print the one-shot response as JSON instead of Markdown")
	fs.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 && opts.query == "" {
		opts.query = strings.Join(fs.Args(), " ")
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Banner())
		return 0
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	logger, err := logging.Init(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	}
	logger.Info("startup", "version", version.Summary(), "config_path", opts.configPath, "responder", cfg.Responder)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	responder, err := dispatch.NewFromConfig(cfg, logger)
	if err != nil {
		logger.Error("responder_init_failed", "error", err)
		fmt.Fprintf(stderr, "Error creating responder: %v\n", err)
		return 1
	}

	storeOpts := []conversation.Option{conversation.WithLogger(logger)}
	var history commands.History
	if cfg.ArchiveDir != "" {
		arch, err := archive.Open(cfg.ArchiveDir, logger)
		if err != nil {
			logger.Error("archive_open_failed", "dir", cfg.ArchiveDir, "error", err)
			fmt.Fprintf(stderr, "Error opening archive: %v\n", err)
			return 1
		}
		defer func() {
			if err := arch.Close(); err != nil {
				logger.Warn("archive_close_failed", "error", err)
			}
		}()
		storeOpts = append(storeOpts, conversation.WithArchive(arch))
		history = arch
	}
	store := conversation.New(responder, storeOpts...)

	if opts.query != "" || !isTerminal(stdout) {
		query := opts.query
		if query == "" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				fmt.Fprintf(stderr, "Error reading query: %v\n", err)
				return 1
			}
			query = string(data)
		}
		var typing time.Duration
		if !opts.asJSON && isTerminal(stdout) {
			typing = reveal.SpeedFromMillis(cfg.Reveal.SummaryMs)
		}
		if err := runOnce(ctx, store, query, opts.asJSON, typing, stdout); err != nil {
			logger.Error("one_shot_failed", "error", err)
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	return runInteractive(ctx, cfg, store, responder.Name(), history, logger, stderr)
}

func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg, ".env"); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// runOnce dispatches a single query and prints the response. A non-zero
// typing speed types out the summary heading before the rest is printed.
func runOnce(ctx context.Context, store *conversation.Store, query string, asJSON bool, typing time.Duration, w io.Writer) error {
	msg, err := store.Send(ctx, query)
	if err != nil {
		return err
	}
	if msg.Data == nil {
		return fmt.Errorf("response carried no payload")
	}

	if asJSON {
		data, err := json.MarshalIndent(*msg.Data, "", "  ")
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	md, err := export.Markdown(*msg.Data, msg.Timestamp)
	if err != nil {
		return err
	}
	if typing > 0 {
		heading, rest, _ := strings.Cut(md, "\n")
		if err := typeOut(ctx, w, heading, typing); err != nil {
			return err
		}
		md = "\n" + rest
	}
	_, err = fmt.Fprint(w, md)
	return err
}

// typeOut writes text to w one rune per tick. When ctx ends early the
// remainder is written at once so the output is never cut short.
func typeOut(ctx context.Context, w io.Writer, text string, speed time.Duration) error {
	r := reveal.NewRevealer(nil)
	written := 0
	var writeErr error
	r.Start(ctx, text, speed, reveal.Callbacks{
		OnUpdate: func(displayed string) {
			if writeErr != nil {
				return
			}
			_, writeErr = io.WriteString(w, displayed[written:])
			written = len(displayed)
			if writeErr != nil {
				r.Cancel()
			}
		},
	})
	<-r.Done()

	if writeErr != nil {
		return writeErr
	}
	if written < len(text) {
		_, writeErr = io.WriteString(w, text[written:])
	}
	return writeErr
}

func runInteractive(ctx context.Context, cfg config.Config, store *conversation.Store, name string, history commands.History, logger *slog.Logger, stderr io.Writer) int {
	model := ui.NewModel(ui.Options{
		Context:       ctx,
		Store:         store,
		ResponderName: name,
		History:       history,
		SummarySpeed:  reveal.SpeedFromMillis(cfg.Reveal.SummaryMs),
		BodySpeed:     reveal.SpeedFromMillis(cfg.Reveal.BodyMs),
		ChatSpeed:     reveal.SpeedFromMillis(cfg.Reveal.ChatMs),
		Logger:        logger,
	})

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("program_failed", "error", err)
		fmt.Fprintf(stderr, "Error running program: %v\n", err)
		return 1
	}
	logger.Info("shutdown")
	return 0
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
