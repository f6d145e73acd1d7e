// Package mock provides test doubles for chat interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/chat"
)

// Interface compliance check.
var _ chat.Provider = (*Provider)(nil)

// Provider is a test double for chat.Provider.
// Set StreamFn before calling Stream.
type Provider struct {
	StreamFn func(ctx context.Context, req chat.Request) (chat.Stream, error)
}

// Stream delegates to StreamFn.
func (p *Provider) Stream(ctx context.Context, req chat.Request) (chat.Stream, error) {
	return p.StreamFn(ctx, req)
}
