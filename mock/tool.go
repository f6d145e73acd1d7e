package mock

import (
	"context"

	"github.com/fwojciec/chat"
)

// Interface compliance check.
var _ chat.ToolExecutor = (*ToolExecutor)(nil)

// ToolExecutor is a test double for chat.ToolExecutor.
// Set ExecuteFn before calling Execute.
type ToolExecutor struct {
	ExecuteFn func(ctx context.Context, name, args string) string
}

// Execute delegates to ExecuteFn.
func (e *ToolExecutor) Execute(ctx context.Context, name, args string) string {
	return e.ExecuteFn(ctx, name, args)
}
