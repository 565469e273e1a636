package toolbox

import (
	"context"
	"sync"
)

// MergeSession owns one MergeState and serializes access to it.
// Reads return snapshots. A merge runs without holding the lock, so files
// can still be added or reordered while it is in flight; the merge works on
// the list as it was when it started.
type MergeSession struct {
	mu     sync.Mutex
	merger *PDFMerger
	state  MergeState
}

// NewMergeSession returns a session with an empty list.
func NewMergeSession(m *PDFMerger) *MergeSession {
	return &MergeSession{merger: m}
}

// State returns a snapshot of the current state.
func (s *MergeSession) State() MergeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// update applies fn to the current state under the lock.
func (s *MergeSession) update(fn func(MergeState) MergeState) MergeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}

// Add validates a batch and appends the accepted files.
// Validation runs outside the lock; the accepted files are appended to
// whatever the list holds when validation finishes.
func (s *MergeSession) Add(ctx context.Context, candidates []Candidate) MergeState {
	records, err := s.merger.validate(ctx, candidates)
	return s.update(func(st MergeState) MergeState {
		if err != nil {
			st.Notice = warning(MsgSkippedFiles)
			return st
		}
		return s.merger.appendAccepted(st, records, len(candidates))
	})
}

// Move swaps the file at i with its neighbour in direction d.
func (s *MergeSession) Move(i int, d Direction) MergeState {
	return s.update(func(st MergeState) MergeState {
		return s.merger.Move(st, i, d)
	})
}

// Remove drops the file at i.
func (s *MergeSession) Remove(i int) MergeState {
	return s.update(func(st MergeState) MergeState {
		return s.merger.Remove(st, i)
	})
}

// Clear empties the list and clears the notice.
func (s *MergeSession) Clear() MergeState {
	return s.update(s.merger.Clear)
}

// Merge runs a merge over the current list. It returns ErrMergeInProgress,
// without touching the state, if another merge has not finished yet.
// The fewer-than-two-files checks are applied before the processing flag is
// raised, so they never block a concurrent merge.
func (s *MergeSession) Merge(ctx context.Context) (MergeState, *Download, error) {
	s.mu.Lock()
	if s.state.Processing {
		st := s.state
		s.mu.Unlock()
		return st, nil, ErrMergeInProgress
	}
	if s.state.Files.Len() < 2 {
		s.state, _ = s.merger.Merge(ctx, s.state)
		st := s.state
		s.mu.Unlock()
		return st, nil, nil
	}
	s.state.Processing = true
	s.state.Notice = Notice{}
	snapshot := s.state
	s.mu.Unlock()

	result, dl := s.merger.Merge(ctx, snapshot)

	st := s.update(func(st MergeState) MergeState {
		st.Processing = false
		st.Notice = result.Notice
		return st
	})
	return st, dl, nil
}
