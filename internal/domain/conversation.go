package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Speaker identifies who wrote a conversation message.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Message is one entry in a ConversationLog.
type Message struct {
	ID      string    `json:"id"`
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	SentAt  time.Time `json:"sent_at"`
}

// ConversationLog is an append-only, ordered sequence of messages.
// There is no edit or delete.
type ConversationLog struct {
	mu       sync.RWMutex
	messages []Message
}

// Append adds a message to the end of the log and returns it.
func (l *ConversationLog) Append(speaker Speaker, text string) Message {
	m := Message{
		ID:      uuid.NewString(),
		Speaker: speaker,
		Text:    text,
		SentAt:  clock.Now().UTC(),
	}

	l.mu.Lock()
	l.messages = append(l.messages, m)
	l.mu.Unlock()
	return m
}

// Messages returns a copy of the log in append order.
func (l *ConversationLog) Messages() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages appended so far.
func (l *ConversationLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
