package api

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/dgallion1/billdigest/internal/bill"
	"github.com/dgallion1/billdigest/internal/pipeline"
	"github.com/dgallion1/billdigest/internal/render"
	"github.com/go-chi/chi/v5"
)

type previewResponse struct {
	Period   bill.Period       `json:"period"`
	Lines    []string          `json:"lines"`
	Renames  []pipeline.Rename `json:"renames"`
	Pending  int               `json:"pending_renames"`
	Skipped  []string          `json:"skipped,omitempty"`
	Markdown string            `json:"summary_markdown"`
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	target, ok := s.target(w, r)
	if !ok {
		return
	}
	start := time.Now()
	s.folderMu.RLock()
	batch, summary, err := s.runner.Preview(r.Context(), target)
	s.folderMu.RUnlock()
	s.metrics.observe("preview", start, err)
	if err != nil {
		s.batchError(w, target, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{
		Period:   target,
		Lines:    summary.Lines,
		Renames:  batch.Renames.Entries(),
		Pending:  len(batch.Renames.Pending()),
		Skipped:  batch.Skipped,
		Markdown: summary.Markdown(),
	})
}

// handleSummary renders the summary as HTML without touching the folder.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	target, ok := s.target(w, r)
	if !ok {
		return
	}
	start := time.Now()
	s.folderMu.RLock()
	_, summary, err := s.runner.Preview(r.Context(), target)
	s.folderMu.RUnlock()
	s.metrics.observe("summary", start, err)
	if err != nil {
		s.batchError(w, target, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := (&render.HTML{}).Render(w, summary); err != nil {
		s.log.Error("render summary failed", "target", target.String(), "error", err)
	}
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	target, ok := s.target(w, r)
	if !ok {
		return
	}
	send := false
	if v := r.URL.Query().Get("send"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			jsonError(w, "send must be a boolean", http.StatusBadRequest)
			return
		}
		send = b
	}
	if send && s.cfg.ResendAPIKey == "" {
		jsonError(w, "mail delivery is not configured", http.StatusServiceUnavailable)
		return
	}

	s.folderMu.Lock()
	defer s.folderMu.Unlock()

	start := time.Now()
	report, err := s.runner.Run(r.Context(), target, pipeline.RunOptions{Send: send})
	s.metrics.observe("finalize", start, err)
	if err != nil {
		s.batchError(w, target, err)
		return
	}
	for _, rn := range report.Renames {
		if !rn.NoOp() {
			s.metrics.renamed.Inc()
		}
	}
	if report.MessageID != "" {
		s.metrics.sent.Inc()
	}
	s.log.Info("batch finalized", "target", target.String(), "summary", report.SummaryFile, "sent", report.MessageID != "")
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) target(w http.ResponseWriter, r *http.Request) (bill.Period, bool) {
	target, err := bill.ParseTarget(chi.URLParam(r, "period"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return bill.Period{}, false
	}
	return target, true
}

// batchError maps pipeline failures to HTTP statuses.
func (s *Server) batchError(w http.ResponseWriter, target bill.Period, err error) {
	var de *bill.DocumentError
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, bill.ErrNoDocumentsFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &de):
		s.log.Warn("batch rejected", "target", target.String(), "file", de.Filename, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": err.Error(),
			"file":  de.Filename,
		})
	default:
		s.log.Error("batch failed", "target", target.String(), "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
