// Package notify carries user-facing notifications and confirmation prompts
// from screen logic to whatever renders them.
package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

type Notification struct {
	Level Level  `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Recorder keeps notifications in emission order so a request handler can
// return them with the response.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(ctx context.Context, n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()

	event := zerolog.Ctx(ctx).Debug()
	if n.Level == LevelError {
		event = zerolog.Ctx(ctx).Info()
	}
	event.Str("level", string(n.Level)).Str("title", n.Title).Msg("notification")
}

func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

func Success(ctx context.Context, n Notifier, title string, text string) {
	n.Notify(ctx, Notification{Level: LevelSuccess, Title: title, Text: text})
}

func Error(ctx context.Context, n Notifier, title string, text string) {
	n.Notify(ctx, Notification{Level: LevelError, Title: title, Text: text})
}

// Prompt is the question shown before a destructive action.
type Prompt struct {
	Title         string `json:"title"`
	Text          string `json:"text"`
	ConfirmButton string `json:"confirmButtonText"`
	CancelButton  string `json:"cancelButtonText"`
}

type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) bool
}

// Answer is a Confirmer whose decision is known up front, as with an HTTP
// request carrying confirm=true. It remembers the last prompt it answered.
type Answer struct {
	Yes    bool
	Prompt *Prompt
}

func (a *Answer) Confirm(_ context.Context, p Prompt) bool {
	a.Prompt = &p
	return a.Yes
}
