package core

import (
	"time"

	"github.com/google/uuid"
)

// Message is the record of a single agent turn. After creation it should be
// treated as immutable. SequenceIndex matches the agent's position in the
// pipeline, so messages are ordered by construction.
type Message struct {
	ID            string    `json:"id"`
	Author        string    `json:"author"`
	Content       string    `json:"content"`
	SequenceIndex int       `json:"sequence_index"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewMessage creates a message authored by an agent at the given pipeline
// position with a high precision UTC timestamp.
func NewMessage(author, content string, sequenceIndex int) Message {
	return Message{
		ID:            NewID(),
		Author:        author,
		Content:       content,
		SequenceIndex: sequenceIndex,
		Timestamp:     time.Now().UTC(),
	}
}

// NewID generates a new unique identifier for messages and runs.
func NewID() string { return uuid.NewString() }

// Transcript is the conversation an agent sees when invoked: the original
// user prompt followed by every message produced by earlier agents, in
// production order. The zero value with a Prompt set is a valid transcript
// for the first agent.
type Transcript struct {
	Prompt   string    `json:"prompt"`
	Messages []Message `json:"messages"`
}

// NewTranscript creates a transcript containing only the user prompt.
func NewTranscript(prompt string) Transcript {
	return Transcript{Prompt: prompt}
}

// Append returns a copy of the transcript with the message added. The
// receiver is left untouched so earlier snapshots stay valid.
func (t Transcript) Append(msg Message) Transcript {
	messages := make([]Message, 0, len(t.Messages)+1)
	messages = append(messages, t.Messages...)
	messages = append(messages, msg)
	return Transcript{Prompt: t.Prompt, Messages: messages}
}

// Len returns the number of agent messages in the transcript. The prompt is
// not counted; it doubles as the next message's sequence index.
func (t Transcript) Len() int { return len(t.Messages) }

// Run records a single pipeline invocation: the prompt that entered the
// pipeline and the ordered messages produced by its agents. A run is
// append-only while in flight and read-only once the last agent has
// produced output.
type Run struct {
	ID       string    `json:"id"`
	Prompt   string    `json:"prompt"`
	Messages []Message `json:"messages"`
}

// NewRun creates an empty run for the given prompt.
func NewRun(prompt string) *Run {
	return &Run{ID: NewID(), Prompt: prompt}
}

// Append records a completed turn.
func (r *Run) Append(msg Message) { r.Messages = append(r.Messages, msg) }

// Final returns the last produced message. The boolean is false when no
// agent has produced output yet.
func (r *Run) Final() (Message, bool) {
	if len(r.Messages) == 0 {
		return Message{}, false
	}
	return r.Messages[len(r.Messages)-1], true
}
