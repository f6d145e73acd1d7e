package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/chat/config"
	"github.com/fwojciec/chat/demo"
	"github.com/fwojciec/chat/gemini"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLog() *logrus.Entry {
	l, _, _ := setupLogger("")
	return logrus.NewEntry(l)
}

func TestResolveProvider_NoKeyUsesDemo(t *testing.T) {
	t.Parallel()
	r := resolveProvider(config.Config{}, testLog())
	assert.True(t, r.demo)
	assert.IsType(t, &demo.Provider{}, r.provider)
}

func TestResolveProvider_KeyUsesGemini(t *testing.T) {
	t.Parallel()
	r := resolveProvider(config.Config{APIKey: "k"}, testLog())
	assert.False(t, r.demo)
	assert.IsType(t, &gemini.Client{}, r.provider)
	assert.Equal(t, "gemini-3-flash-preview", r.name)
}

func TestResolveProvider_ModelOverride(t *testing.T) {
	t.Parallel()
	r := resolveProvider(config.Config{APIKey: "k", Model: "gemini-2.5-pro"}, testLog())
	assert.Equal(t, "gemini-2.5-pro", r.name)
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	s := newSession("")
	assert.Equal(t, defaultSystemPrompt, s.SystemPrompt)
	assert.Len(t, s.ID, 36)
	assert.NotEqual(t, s.ID, newSession("").ID)
	assert.Equal(t, "custom", newSession("custom").SystemPrompt)
}

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "debug.log")
	l, closeLog, err := setupLogger(path)
	require.NoError(t, err)
	l.WithField("component", "test").Debug("hello")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "component=test")
}
