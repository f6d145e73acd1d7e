// Command chat is a terminal chat client for Google Gemini with tool use.
//
// Usage:
//
//	GEMINI_API_KEY=... chat [flags]
//
// Without an API key chat runs in an offline demo mode.
//
// Flags:
//
//	-model string          Model ID (default gemini-3-flash-preview)
//	-config string         Path to config file (default ~/.config/chat/config.toml)
//	-api-key string        API key (overrides GEMINI_API_KEY)
//	-base-url string       API base URL
//	-debug-log string      Write debug logs to this file
//	-system-prompt string  System prompt for the session
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fwojciec/chat"
	bt "github.com/fwojciec/chat/bubbletea"
	"github.com/fwojciec/chat/builtin"
	"github.com/fwojciec/chat/chroma"
	"github.com/fwojciec/chat/config"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultSystemPrompt = "You are a helpful assistant running in a terminal. " +
	"You can run shell commands, create, append to and delete files, and search the web with the provided tools."

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath   = flag.String("config", config.DefaultPath(), "Path to config file")
		model        = flag.String("model", "", "Model ID")
		apiKey       = flag.String("api-key", "", "API key (overrides GEMINI_API_KEY)")
		baseURL      = flag.String("base-url", "", "API base URL")
		debugLog     = flag.String("debug-log", "", "Write debug logs to this file")
		systemPrompt = flag.String("system-prompt", "", "System prompt for the session")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Resolve(*configPath, os.Getenv, config.Overrides{
		Model:        *model,
		APIKey:       *apiKey,
		BaseURL:      *baseURL,
		DebugLog:     *debugLog,
		SystemPrompt: *systemPrompt,
	})
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogger(cfg.DebugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	session := newSession(cfg.SystemPrompt)
	log := logger.WithField("session", session.ID)
	log.WithField("config", cfg.Source).Info("starting")

	p := resolveProvider(cfg, log)
	exec := builtin.NewExecutor(builtin.WithLogger(log.WithField("component", "builtin")))
	tools := builtin.Tools()
	loop := chat.NewLoop(p.provider, exec)

	loopLog := log.WithField("component", "loop")
	agentFn := func(ctx context.Context, s *chat.Session, onEvent func(chat.Event)) error {
		start := time.Now()
		loopLog.WithField("entries", len(s.Entries)).Debug("turn started")
		err := loop.Run(ctx, s, tools, chat.WithEventHandler(onEvent), chat.WithModel(cfg.Model))
		loopLog.WithField("duration", time.Since(start)).WithError(err).Debug("turn finished")
		return err
	}

	welcome := []string{"Welcome to the AI Chat TUI!"}
	if p.demo {
		welcome = append(welcome, "Set GEMINI_API_KEY env var for real AI.")
	}
	tuiModel := bt.New(agentFn, session, cfg.Theme.Resolve(chat.DefaultTheme()),
		bt.WithHighlighter(chroma.New(chroma.DefaultStyle)),
		bt.WithModelName(p.name),
		bt.WithWelcome(welcome...),
	)

	if err := bt.Run(ctx, tuiModel); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	log.Info("exiting")
	return nil
}

func newSession(systemPrompt string) *chat.Session {
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}
	now := time.Now()
	return &chat.Session{
		ID:           uuid.NewString(),
		SystemPrompt: systemPrompt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// setupLogger returns a logger writing to path at debug level, or one that
// discards everything when path is empty. The TUI owns the terminal, so
// logs never go to stderr.
func setupLogger(path string) (*logrus.Logger, func(), error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	if path == "" {
		l.SetOutput(io.Discard)
		return l, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	l.SetOutput(f)
	l.SetLevel(logrus.DebugLevel)
	return l, func() { _ = f.Close() }, nil
}
