package conversation

import (
	"strings"
	"sync"
)

// Role identifies the author of a message as rendered in the UI.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "ai"
)

// Wire roles are the only two values the chat endpoint accepts in history pairs.
const (
	WireRoleHuman = "human"
	WireRoleAI    = "ai"
)

// WelcomeText seeds every fresh conversation.
const WelcomeText = "Hello! I've read your document. Ask me anything."

// WindowSize bounds the history sent with each question to keep the remote
// context small.
const WindowSize = 6

// Message is one turn in the conversation. Messages are never mutated after
// they are appended; Seq is the insertion order and the sole ordering key.
type Message struct {
	Role    Role
	Content string
	Seq     int
}

// Turn is a (role, text) pair in the wire vocabulary, oldest-first.
type Turn [2]string

// Ask captures everything needed to issue one question to the remote service:
// the trimmed question and the history window as it stood before the user
// message was appended.
type Ask struct {
	Question string
	History  []Turn
}

// Log is the append-only message log for the active document. Appends can
// originate from independent jobs (an ingest announcement racing a chat
// answer), so every mutation holds the lock.
type Log struct {
	mu       sync.Mutex
	messages []Message
	nextSeq  int
	awaiting bool
}

func NewLog() *Log {
	return &Log{}
}

// Seed resets the log to exactly one assistant welcome message. Called once
// per new document.
func (l *Log) Seed() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = l.messages[:0]
	l.nextSeq = 0
	l.awaiting = false
	l.appendLocked(RoleAssistant, WelcomeText)
}

// AppendAssistant records an assistant-authored message that did not come from
// an ask cycle, such as an ingestion announcement.
func (l *Log) AppendAssistant(content string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.appendLocked(RoleAssistant, content)
}

// BeginAsk validates the question, appends the user message optimistically,
// and marks the log as awaiting an answer. It returns false when the question
// is empty after trimming or another ask is already in flight; in both cases
// the log is untouched. The returned history window reflects the log as it
// stood before the user message was appended.
func (l *Log) BeginAsk(question string) (Ask, bool) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Ask{}, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.awaiting {
		return Ask{}, false
	}
	window := l.windowLocked()
	l.appendLocked(RoleUser, question)
	l.awaiting = true
	return Ask{Question: question, History: window}, true
}

// FinishAsk appends the answer and clears the awaiting state.
func (l *Log) FinishAsk(answer string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.appendLocked(RoleAssistant, answer)
	l.awaiting = false
}

// FailAsk appends an assistant-authored error description and clears the
// awaiting state. The user message that triggered the failed call stays in
// the log; failures are additive, not corrective.
func (l *Log) FailAsk(description string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.appendLocked(RoleAssistant, description)
	l.awaiting = false
}

// Awaiting reports whether an ask is in flight.
func (l *Log) Awaiting() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.awaiting
}

// Messages returns a snapshot of the log in insertion order.
func (l *Log) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len reports the number of messages in the log.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

// Window returns the bounded history window for the current log contents:
// the last WindowSize messages, oldest-first, with roles reduced to the
// two-value wire vocabulary.
func (l *Log) Window() []Turn {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.windowLocked()
}

func (l *Log) windowLocked() []Turn {
	start := len(l.messages) - WindowSize
	if start < 0 {
		start = 0
	}
	window := make([]Turn, 0, len(l.messages)-start)
	for _, msg := range l.messages[start:] {
		window = append(window, Turn{wireRole(msg.Role), msg.Content})
	}
	return window
}

func (l *Log) appendLocked(role Role, content string) {
	l.messages = append(l.messages, Message{Role: role, Content: content, Seq: l.nextSeq})
	l.nextSeq++
}

func wireRole(role Role) string {
	if role == RoleUser {
		return WireRoleHuman
	}
	return WireRoleAI
}
