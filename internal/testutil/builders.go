package testutil

import (
	"log/slog"
	"testing"

	"github.com/junioryono/beans"
	"github.com/stretchr/testify/require"
)

// ContextBuilder provides a fluent interface for building test contexts
type ContextBuilder struct {
	t    *testing.T
	defs []beans.Definition
	opts []beans.Option
}

// NewContextBuilder creates a new ContextBuilder
func NewContextBuilder(t *testing.T) *ContextBuilder {
	return &ContextBuilder{t: t}
}

// WithBeans adds definitions to the builder
func (b *ContextBuilder) WithBeans(defs ...beans.Definition) *ContextBuilder {
	b.defs = append(b.defs, defs...)
	return b
}

// WithLogger routes context logs through the test log
func (b *ContextBuilder) WithLogger() *ContextBuilder {
	b.opts = append(b.opts, beans.WithLogger(slog.New(slog.NewTextHandler(testWriter{b.t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))))
	return b
}

// WithOptions adds context options
func (b *ContextBuilder) WithOptions(opts ...beans.Option) *ContextBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Build creates the Context without starting it
func (b *ContextBuilder) Build() (*beans.Context, error) {
	return beans.New(beans.List(b.defs...), b.opts...)
}

// MustBuild creates the Context and fails the test if there's an error
func (b *ContextBuilder) MustBuild() *beans.Context {
	ctx, err := b.Build()
	require.NoError(b.t, err, "failed to create context")
	return ctx
}

// MustStart creates and starts the Context and fails the test if either step fails
func (b *ContextBuilder) MustStart() *beans.Context {
	ctx := b.MustBuild()
	require.NoError(b.t, ctx.Start(), "failed to start context")
	return ctx
}

// testWriter adapts t.Log to an io.Writer
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
