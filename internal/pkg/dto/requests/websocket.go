package requests

type WebSocketCommand struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}
