package dto

// MessageResponse is the uniform error/confirmation payload; messages
// are short literal strings meant for direct display.
type MessageResponse struct {
	Message string `json:"message"`
}
