package main

import (
	"github.com/fwojciec/chat"
	"github.com/fwojciec/chat/config"
	"github.com/fwojciec/chat/demo"
	"github.com/fwojciec/chat/gemini"
	"github.com/sirupsen/logrus"
)

type resolved struct {
	provider chat.Provider
	name     string
	demo     bool
}

// resolveProvider returns the Gemini client when an API key is configured
// and the offline demo provider otherwise.
func resolveProvider(cfg config.Config, log *logrus.Entry) resolved {
	if cfg.APIKey == "" {
		return resolved{provider: demo.New(), name: "demo (offline)", demo: true}
	}

	opts := []gemini.Option{gemini.WithLogger(log.WithField("component", "gemini"))}
	if cfg.BaseURL != "" {
		opts = append(opts, gemini.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, gemini.WithModel(cfg.Model))
	}
	client := gemini.New(cfg.APIKey, opts...)
	return resolved{provider: client, name: client.Model()}
}
