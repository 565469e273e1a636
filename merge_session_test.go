package toolbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestMergeSession - Locked state over PDFMerger
// ---------------------------------------------------------------------------

func TestMergeSession_Transitions(t *testing.T) {
	t.Parallel()

	s := NewMergeSession(NewPDFMerger(WithEngine(&mockEngine{})))

	st := s.Add(context.Background(), []Candidate{pdfCandidate("a"), pdfCandidate("b"), pdfCandidate("c")})
	if !equalNames(names(st.Files), []string{"a", "b", "c"}) {
		t.Fatalf("Add() = %v", names(st.Files))
	}

	st = s.Move(0, Down)
	if !equalNames(names(st.Files), []string{"b", "a", "c"}) {
		t.Errorf("Move() = %v", names(st.Files))
	}

	st = s.Remove(2)
	if !equalNames(names(st.Files), []string{"b", "a"}) {
		t.Errorf("Remove() = %v", names(st.Files))
	}

	st = s.Add(context.Background(), []Candidate{{Name: "x", ContentType: "text/plain"}})
	if st.Notice.Text != MsgSkippedFiles || st.Files.Len() != 2 {
		t.Errorf("Add(invalid) = %d files, notice %q", st.Files.Len(), st.Notice.Text)
	}

	st = s.Clear()
	if st.Files.Len() != 0 || !st.Notice.IsZero() {
		t.Errorf("Clear() = %+v", st)
	}
	if got := s.State(); got.Files.Len() != 0 {
		t.Errorf("State() after Clear = %d files", got.Files.Len())
	}
}

func TestMergeSession_StateIsSnapshot(t *testing.T) {
	t.Parallel()

	s := NewMergeSession(NewPDFMerger(WithEngine(&mockEngine{})))
	s.Add(context.Background(), []Candidate{pdfCandidate("a"), pdfCandidate("b")})

	snap := s.State()
	s.Move(0, Down)
	s.Remove(0)

	if !equalNames(names(snap.Files), []string{"a", "b"}) {
		t.Errorf("snapshot changed to %v", names(snap.Files))
	}
}

func TestMergeSession_Merge(t *testing.T) {
	t.Parallel()

	t.Run("too few files", func(t *testing.T) {
		t.Parallel()

		engine := &mockEngine{}
		s := NewMergeSession(NewPDFMerger(WithEngine(engine)))
		s.Add(context.Background(), []Candidate{pdfCandidate("a")})

		st, dl, err := s.Merge(context.Background())
		if err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
		if dl != nil || st.Notice.Text != MsgOneFile {
			t.Errorf("Merge() = %v, notice %q", dl, st.Notice.Text)
		}
		if engine.mergeCalls.Load() != 0 {
			t.Error("engine must not be invoked")
		}
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		s := NewMergeSession(NewPDFMerger(WithEngine(&mockEngine{mergeResult: []byte("%PDF-out")})))
		s.Add(context.Background(), []Candidate{pdfCandidate("a"), pdfCandidate("b")})

		st, dl, err := s.Merge(context.Background())
		if err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
		if dl == nil || string(dl.Data) != "%PDF-out" {
			t.Fatalf("download = %v", dl)
		}
		if st.Processing || s.State().Processing {
			t.Error("Processing still set after merge")
		}
	})
}

func TestMergeSession_MergeInProgress(t *testing.T) {
	t.Parallel()

	engine := &mockEngine{mergeResult: []byte("%PDF-out"), block: make(chan struct{})}
	s := NewMergeSession(NewPDFMerger(WithEngine(engine)))
	s.Add(context.Background(), []Candidate{pdfCandidate("a"), pdfCandidate("b")})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstDL *Download
	go func() {
		defer wg.Done()
		_, firstDL, _ = s.Merge(context.Background())
	}()

	// Wait for the first merge to raise the flag.
	deadline := time.Now().Add(5 * time.Second)
	for !s.State().Processing {
		if time.Now().After(deadline) {
			t.Fatal("first merge never started")
		}
		time.Sleep(time.Millisecond)
	}

	st, dl, err := s.Merge(context.Background())
	if !errors.Is(err, ErrMergeInProgress) {
		t.Errorf("second Merge() error = %v, want ErrMergeInProgress", err)
	}
	if dl != nil || !st.Processing {
		t.Error("second merge should report the running state without a download")
	}

	// Adds are still accepted while the merge runs.
	st = s.Add(context.Background(), []Candidate{pdfCandidate("c")})
	if st.Files.Len() != 3 {
		t.Errorf("Add during merge = %d files, want 3", st.Files.Len())
	}

	close(engine.block)
	wg.Wait()

	if firstDL == nil {
		t.Fatal("first merge produced no download")
	}
	if len(engine.mergedDocs) != 2 {
		t.Errorf("merged %d docs, want the 2 present when the merge started", len(engine.mergedDocs))
	}
	final := s.State()
	if final.Processing || final.Files.Len() != 3 {
		t.Errorf("final state = processing %v, %d files", final.Processing, final.Files.Len())
	}
}
