package requests

// ReasoningInvoke is the body posted to the reasoning service. System carries
// the adjudication instruction; Messages carries the assembled evidence
// context as a single user turn.
type ReasoningInvoke struct {
	ModelID  string             `json:"model_id"`
	System   string             `json:"system"`
	Messages []ReasoningMessage `json:"messages"`
}

type ReasoningMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
