package contracts

import "context"

// ReasoningClient invokes the reasoning model with a system instruction and
// an assembled evidence context, returning the raw unstructured response
// text. Transient-failure retry is the client's responsibility; callers never
// retry on their own.
type ReasoningClient interface {
	Invoke(ctx context.Context, systemInstruction, contextText string) (string, error)
}
