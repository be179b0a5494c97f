package api

import "time"

// ConversationSummary is one entry in the conversation list view. Name,
// avatar and role are display-only enrichment; participants and the last
// message come straight from the message store.
type ConversationSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LastMessage  string    `json:"lastMessage"`
	LastAt       time.Time `json:"lastAt"`
	Participants []string  `json:"participants"`
	OtherRole    string    `json:"otherRole,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	Img          string    `json:"img"`
}

// ConversationListResponse wraps the aggregated conversations for a caller.
type ConversationListResponse struct {
	Conversations []*ConversationSummary `json:"conversations"`
}

// ErrorResponse is the body every failed request resolves to.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse acknowledges mutations that return no entity.
type OKResponse struct {
	OK bool `json:"ok"`
}
