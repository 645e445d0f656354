package llm

import "context"

// Model is a chat completion provider.
type Model interface {
	// Complete sends the request and returns the model's reply.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider model identifier.
	Name() string
}
