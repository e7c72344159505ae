package service

import (
	"sync"

	"github.com/bloggify-frontend/internal/debounce"
)

// SearchBox separates the typed buffer from the committed query that drives fetches.
// Every action bumps a sequence number; a commit whose sequence is no longer current is
// dropped, so nothing cancelled by a later keystroke, submit or escape can land after it.
type SearchBox struct {
	debouncer *debounce.Debouncer
	onCommit  func(query string)
	held      func(query string) bool

	// commitMu orders commits so fetches are issued in commit order
	commitMu sync.Mutex

	mu     sync.Mutex
	buffer string
	query  string
	seq    uint64
}

// NewSearchBox creates a search box. onCommit runs whenever the committed query changes,
// and again for an unchanged query when held reports its results are not in place.
// A nil held treats every committed query as in place.
func NewSearchBox(d *debounce.Debouncer, onCommit func(query string), held func(query string) bool) *SearchBox {
	return &SearchBox{debouncer: d, onCommit: onCommit, held: held}
}

// Input records a keystroke and schedules a commit after the quiet period
func (s *SearchBox) Input(value string) {
	seq := s.update(value)
	s.debouncer.Trigger(func() { s.commit(seq, value) })
}

// Submit cancels any pending commit and commits the buffer now
func (s *SearchBox) Submit() {
	s.debouncer.Cancel()

	s.mu.Lock()
	s.seq++
	seq, value := s.seq, s.buffer
	s.mu.Unlock()

	s.commit(seq, value)
}

// SubmitValue replaces the buffer and commits it now
func (s *SearchBox) SubmitValue(value string) {
	s.debouncer.Cancel()
	s.commit(s.update(value), value)
}

// Escape clears the buffer and the committed query now
func (s *SearchBox) Escape() {
	s.debouncer.Cancel()
	s.commit(s.update(""), "")
}

// Cancel drops a pending commit without touching the buffer
func (s *SearchBox) Cancel() {
	s.debouncer.Cancel()

	s.mu.Lock()
	s.seq++
	s.mu.Unlock()
}

// Buffer returns the value being typed
func (s *SearchBox) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// Query returns the committed query
func (s *SearchBox) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// WithQuery runs fn with the committed query while no commit can start
func (s *SearchBox) WithQuery(fn func(query string)) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	fn(s.Query())
}

// Pending reports whether a debounced commit is scheduled
func (s *SearchBox) Pending() bool {
	return s.debouncer.Pending()
}

func (s *SearchBox) update(value string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buffer = value
	s.seq++
	return s.seq
}

func (s *SearchBox) commit(seq uint64, value string) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return
	}
	unchanged := value == s.query
	s.query = value
	s.mu.Unlock()

	if unchanged && (s.held == nil || s.held(value)) {
		return
	}

	if s.onCommit != nil {
		s.onCommit(value)
	}
}
