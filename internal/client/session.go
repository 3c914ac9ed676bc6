package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"flashmind/internal/flashcard"
)

var (
	// ErrNothingToSubmit is returned by Submit when neither text nor a PDF is set.
	ErrNothingToSubmit = errors.New("nothing to submit")
	// ErrBusy is returned by Submit while another request is in flight.
	ErrBusy = errors.New("a generation is already in progress")
)

// NoticeTTL is how long a notice stays visible.
const NoticeTTL = 4 * time.Second

const (
	msgNothingToSubmit = "Add a PDF or paste some notes before generating."
	msgNoCards         = "No flashcards generated. Provide more information in your notes or try a different PDF."
	msgGenericFailure  = "Something went wrong while generating flashcards."
	msgCleared         = "Workspace cleared."
)

// State is the lifecycle of a session.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// NoticeKind is the tone of a notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient message shown to the user.
type Notice struct {
	Kind    NoticeKind
	Message string
	Expires time.Time
}

// Card is a flashcard with its local reveal state.
type Card struct {
	flashcard.Flashcard
	Revealed bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// Session holds the input, result and notice of one user workspace. It
// allows a single request in flight. Safe for concurrent use.
type Session struct {
	gen Generator
	now func() time.Time

	mu     sync.Mutex
	state  State
	input  Input
	cards  []Card
	notice *Notice
	// epoch changes on Clear so a response that lands afterwards is dropped.
	epoch uint64
}

// NewSession creates an idle session backed by gen.
func NewSession(gen Generator, opts ...SessionOption) *Session {
	s := &Session{
		gen: gen,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetText replaces the pasted notes.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input.Text = text
}

// SetFile attaches a PDF. Passing nil data detaches it.
func (s *Session) SetFile(filename string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input.Filename = filename
	s.input.PDF = data
}

// Submit sends the current input and blocks until the server answers. Blank
// input fails with ErrNothingToSubmit before any request is made.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.input.Blank() {
		s.showLocked(NoticeError, msgNothingToSubmit)
		s.mu.Unlock()
		return ErrNothingToSubmit
	}
	in := s.input
	epoch := s.epoch
	s.state = StateSubmitting
	s.notice = nil
	s.mu.Unlock()

	cards, err := s.gen.Generate(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// Cleared while in flight: the result is dropped and the session
		// only now becomes free for another request.
		s.state = StateIdle
		return err
	}
	if err != nil {
		s.state = StateError
		s.showLocked(NoticeError, failureMessage(err))
		return err
	}

	s.state = StateSuccess
	s.cards = make([]Card, len(cards))
	for i, c := range cards {
		s.cards[i] = Card{Flashcard: c}
	}
	if len(cards) == 0 {
		s.showLocked(NoticeError, msgNoCards)
	} else {
		s.showLocked(NoticeSuccess, fmt.Sprintf("Generated %d flashcards.", len(cards)))
	}
	return nil
}

// Clear drops input, cards and any pending result. An idle session stays
// idle; a session with a request in flight keeps rejecting Submit until that
// request returns.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	if s.state != StateSubmitting {
		s.state = StateIdle
	}
	s.input = Input{}
	s.cards = nil
	s.showLocked(NoticeInfo, msgCleared)
}

// Toggle flips the answer visibility of card i.
func (s *Session) Toggle(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.cards) {
		return fmt.Errorf("card %d out of range (have %d)", i, len(s.cards))
	}
	s.cards[i].Revealed = !s.cards[i].Revealed
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cards returns a copy of the current cards.
func (s *Session) Cards() []Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Notice returns the current notice, if one is still visible.
func (s *Session) Notice() (Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil {
		return Notice{}, false
	}
	if !s.now().Before(s.notice.Expires) {
		s.notice = nil
		return Notice{}, false
	}
	return *s.notice, true
}

// Transcript renders every card as a "Card N / Q / A" block for copying.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	blocks := make([]string, 0, len(s.cards))
	for i, c := range s.cards {
		blocks = append(blocks, fmt.Sprintf("Card %d\nQ: %s\nA: %s", i+1, c.Question, c.Answer))
	}
	return strings.Join(blocks, "\n\n")
}

func (s *Session) showLocked(kind NoticeKind, message string) {
	s.notice = &Notice{Kind: kind, Message: message, Expires: s.now().Add(NoticeTTL)}
}

func failureMessage(err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.Error()
	case errors.Is(err, ErrUnexpectedResponse):
		return "Unexpected response format from backend."
	case err != nil && err.Error() != "":
		return err.Error()
	default:
		return msgGenericFailure
	}
}
