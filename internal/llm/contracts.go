package llm

import "context"

// Completer is the single opaque generative-text capability the core
// depends on: prompt in, free-form text out. Implementations must honor
// ctx cancellation; every call site treats a failure as a degraded,
// conservative default rather than a pipeline error.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
