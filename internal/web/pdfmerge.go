package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alnah/go-toolbox"
	"github.com/alnah/go-toolbox/internal/fileutil"
)

// filesField is the multipart field carrying uploaded PDFs.
const filesField = "files"

// fileView is one row of the file list.
type fileView struct {
	Index int
	Name  string
	Size  string
	First bool
	Last  bool
}

// noticeView is the banner above the list. Kind is a CSS class.
type noticeView struct {
	Kind string
	Text string
}

// mergeView is the PDF merge page's data.
type mergeView struct {
	Notice     noticeView
	Files      []fileView
	Count      int
	CanMerge   bool
	Processing bool
}

func newMergeView(st toolbox.MergeState) mergeView {
	records := st.Files.Records()
	files := make([]fileView, len(records))
	for i, rec := range records {
		files[i] = fileView{
			Index: i,
			Name:  rec.Name,
			Size:  toolbox.FormatSize(rec.Size),
			First: i == 0,
			Last:  i == len(records)-1,
		}
	}

	v := mergeView{
		Files:      files,
		Count:      len(records),
		CanMerge:   !st.Processing && len(records) >= 2,
		Processing: st.Processing,
	}
	if !st.Notice.IsZero() {
		v.Notice = noticeView{Kind: st.Notice.Kind.String(), Text: st.Notice.Text}
	}
	return v
}

func (s *Server) mergePage(w http.ResponseWriter, r *http.Request) {
	s.showMerge(w, r, http.StatusOK, sessionFrom(r).Merge().State())
}

func (s *Server) showMerge(w http.ResponseWriter, r *http.Request, status int, st toolbox.MergeState) {
	s.render(w, r, status, pagePDFMerge, "PDF Merger", newMergeView(st))
}

func (s *Server) backToMerge(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.url("/tools/pdf-merge"), http.StatusSeeOther)
}

// mergeUpload reads every part of the "files" field as one batch.
// Each part's own Content-Type header is its declared type.
func (s *Server) mergeUpload(w http.ResponseWriter, r *http.Request) {
	candidates, err := readCandidates(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	st := sessionFrom(r).Merge().Add(r.Context(), candidates)
	s.logger.Debug("files added", "batch", len(candidates), "files", st.Files.Len())
	s.backToMerge(w, r)
}

func readCandidates(r *http.Request) ([]toolbox.Candidate, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	var candidates []toolbox.Candidate
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return candidates, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading upload: %w", err)
		}

		if part.FormName() != filesField || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", part.FileName(), err)
		}

		candidates = append(candidates, toolbox.Candidate{
			Name:        fileutil.SafeBaseName(part.FileName()),
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		})
	}
}

// mergeFileAction handles up, down and remove on one row.
func (s *Server) mergeFileAction(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ms := sessionFrom(r).Merge()
	switch op := chi.URLParam(r, "op"); op {
	case "remove":
		ms.Remove(index)
	default:
		d, err := toolbox.ParseDirection(op)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		ms.Move(index, d)
	}
	s.backToMerge(w, r)
}

func (s *Server) mergeClear(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Merge().Clear()
	s.backToMerge(w, r)
}

// mergeRun streams the merged file, or goes back to the list when the
// merge produced a notice instead. The merge outlives a dropped connection
// so the session never keeps a half-finished Processing state.
func (s *Server) mergeRun(w http.ResponseWriter, r *http.Request) {
	st, dl, err := sessionFrom(r).Merge().Merge(context.WithoutCancel(r.Context()))
	if errors.Is(err, toolbox.ErrMergeInProgress) {
		st.Notice = toolbox.Notice{Kind: toolbox.NoticeWarning, Text: toolbox.MsgMergeInFlight}
		s.showMerge(w, r, http.StatusConflict, st)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if dl == nil {
		s.backToMerge(w, r)
		return
	}
	s.logger.Info("files merged", "files", st.Files.Len(), "bytes", len(dl.Data))
	sendDownload(w, *dl)
}
