package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/alnah/go-toolbox"
)

// markdownField is the form field holding the editor text.
const markdownField = "markdown"

// markdownView is the markdown page's data.
type markdownView struct {
	Markdown  string
	Preview   template.HTML
	PDFExport bool
}

func (s *Server) markdownPage(w http.ResponseWriter, r *http.Request) {
	s.showMarkdown(w, r, sessionFrom(r).Markdown())
}

func (s *Server) showMarkdown(w http.ResponseWriter, r *http.Request, buf toolbox.MarkdownBuffer) {
	rendered, err := s.markdown.Render(r.Context(), buf)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, pageMarkdown, "Markdown Renderer", markdownView{
		Markdown:  buf.String(),
		Preview:   rendered.HTML(),
		PDFExport: s.markdown.PDFEnabled(),
	})
}

// saveMarkdown stores the submitted text in the session. A form without
// the field leaves the buffer as it was.
func (s *Server) saveMarkdown(w http.ResponseWriter, r *http.Request) (toolbox.MarkdownBuffer, bool) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, err)
		return toolbox.MarkdownBuffer{}, false
	}
	sess := sessionFrom(r)
	if _, ok := r.PostForm[markdownField]; !ok {
		return sess.Markdown(), true
	}
	return sess.EditMarkdown(r.PostFormValue(markdownField)), true
}

func (s *Server) markdownSave(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.saveMarkdown(w, r); !ok {
		return
	}
	http.Redirect(w, r, s.url("/tools/markdown"), http.StatusSeeOther)
}

// markdownPreview answers the live preview script with the bare fragment.
func (s *Server) markdownPreview(w http.ResponseWriter, r *http.Request) {
	buf, ok := s.saveMarkdown(w, r)
	if !ok {
		return
	}
	rendered, err := s.markdown.Render(r.Context(), buf)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", toolbox.ContentTypeHTML)
	_, _ = w.Write([]byte(rendered))
}

func (s *Server) markdownExport(w http.ResponseWriter, r *http.Request) {
	buf, ok := s.saveMarkdown(w, r)
	if !ok {
		return
	}
	rendered, err := s.markdown.Render(r.Context(), buf)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	standalone, _ := strconv.ParseBool(r.URL.Query().Get("standalone"))
	dl, err := s.markdown.ExportHTML(rendered, standalone)
	if errors.Is(err, toolbox.ErrNothingToExport) {
		http.Redirect(w, r, s.url("/tools/markdown"), http.StatusSeeOther)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	sendDownload(w, dl)
}

func (s *Server) markdownExportPDF(w http.ResponseWriter, r *http.Request) {
	if !s.markdown.PDFEnabled() {
		http.NotFound(w, r)
		return
	}
	buf, ok := s.saveMarkdown(w, r)
	if !ok {
		return
	}
	rendered, err := s.markdown.Render(r.Context(), buf)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	dl, err := s.markdown.ExportPDF(r.Context(), rendered)
	switch {
	case errors.Is(err, toolbox.ErrNothingToExport):
		http.Redirect(w, r, s.url("/tools/markdown"), http.StatusSeeOther)
	case errors.Is(err, context.Canceled):
		// client went away
	case err != nil:
		s.serverError(w, r, err)
	default:
		sendDownload(w, dl)
	}
}

// sendDownload writes dl as an attachment.
func sendDownload(w http.ResponseWriter, dl toolbox.Download) {
	h := w.Header()
	h.Set("Content-Type", dl.ContentType)
	h.Set("Content-Disposition", `attachment; filename="`+dl.Filename+`"`)
	h.Set("Content-Length", strconv.Itoa(len(dl.Data)))
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(dl.Data)
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.logger.Info("request body too large", "path", r.URL.Path, "limit", tooLarge.Limit)
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
		return
	}
	s.logger.Info("bad request", "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
}
