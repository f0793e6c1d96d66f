package models

import "time"

// ChatRequest is one user message to the assistant.
type ChatRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
}

// ChatEntity is an extracted entity as the API reports it.
type ChatEntity struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// ChatResponse is the assistant's answer to one message. SessionID echoes
// the request or carries the freshly minted id for a new conversation.
type ChatResponse struct {
	SessionID      string                 `json:"sessionId"`
	Intent         string                 `json:"intent"`
	Confidence     float64                `json:"confidence"`
	Entities       []ChatEntity           `json:"entities"`
	Text           string                 `json:"text"`
	Suggestions    []string               `json:"suggestions,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
	RulesetVersion string                 `json:"rulesetVersion"`
	Timestamp      time.Time              `json:"timestamp"`
}
