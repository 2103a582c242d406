package responses

// ReasoningResult is the reasoning service's raw completion. The completion
// text is parsed downstream; it is never trusted to be well-formed JSON.
type ReasoningResult struct {
	Completion string `json:"completion"`
}
