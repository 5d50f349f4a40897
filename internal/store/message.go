package store

import (
	"sync"
	"time"
)

// NoSubject is substituted when a message is posted with an empty subject.
const NoSubject = "(no subject)"

// Message is a single post on the message board.
type Message struct {
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	From    string    `json:"from"`
	Created time.Time `json:"ts"`
}

// Messages persists the board as an ordered JSON snapshot, oldest first.
// Display positions are 1-based and recomputed from the current snapshot on
// every call; they are not stable identifiers across concurrent posts.
type Messages struct {
	mu   sync.Mutex
	path string
}

// NewMessages opens the message store, creating an empty one if the backing
// file does not exist.
func NewMessages(path string) (*Messages, error) {
	if err := ensureSnapshot(path, []Message{}); err != nil {
		return nil, err
	}
	return &Messages{path: path}, nil
}

// List returns all messages in insertion order.
func (s *Messages) List() ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var msgs []Message
	if err := readSnapshot(s.path, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Post appends a new message and persists. An empty subject becomes
// NoSubject; the body is stored verbatim, newlines included.
func (s *Messages) Post(subject, body, author string) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var msgs []Message
	if err := readSnapshot(s.path, &msgs); err != nil {
		return Message{}, err
	}

	if subject == "" {
		subject = NoSubject
	}
	m := Message{
		Subject: subject,
		Body:    body,
		From:    author,
		Created: time.Now().UTC(),
	}
	msgs = append(msgs, m)
	if err := writeSnapshot(s.path, msgs); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Read returns the message at the given 1-based position, or ErrOutOfRange
// when the position is outside [1, len] at the time of the call.
func (s *Messages) Read(pos int) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var msgs []Message
	if err := readSnapshot(s.path, &msgs); err != nil {
		return Message{}, err
	}
	if pos < 1 || pos > len(msgs) {
		return Message{}, ErrOutOfRange
	}
	return msgs[pos-1], nil
}
