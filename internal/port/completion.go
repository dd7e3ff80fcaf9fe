package port

import "context"

// CompletionProvider abstracts the text-completion backend. One
// implementation per backend, plus a deterministic in-process stub for
// tests, so prompt building and response parsing are testable without a
// live network dependency.
type CompletionProvider interface {
	// Complete sends the system instruction and user prompt and returns the
	// raw completion text. Transport, auth, and provider-side failures
	// surface as *domain.ProviderError; the call is never retried.
	Complete(ctx context.Context, system, prompt string) (string, error)

	// Ping issues a minimal connectivity probe and returns the backend's
	// response text.
	Ping(ctx context.Context) (string, error)

	// Model reports the model identifier Complete will use.
	Model() string
}
