package models

import "strings"

const (
	RoleUser  = "user"
	RoleModel = "model"

	DefaultChatTitle = "New Chat"
)

// Part is one text fragment of a turn.
type Part struct {
	Text string `json:"text"`
}

// Turn is a single role-tagged message. The shape matches the generateContent
// "contents" entries so a transcript can be forwarded as-is.
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

func NewTurn(role, text string) Turn {
	return Turn{Role: role, Parts: []Part{{Text: text}}}
}

// Text joins all part texts of the turn.
func (t Turn) Text() string {
	if len(t.Parts) == 1 {
		return t.Parts[0].Text
	}
	var b strings.Builder
	for _, p := range t.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// ChatSession is one persisted conversation.
type ChatSession struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	History []Turn `json:"history"`
}

// ChatSummary is what the chat list exposes; transcripts are left out.
type ChatSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (c ChatSession) Summary() ChatSummary {
	return ChatSummary{ID: c.ID, Title: c.Title}
}
