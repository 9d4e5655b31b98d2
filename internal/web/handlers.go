package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffcast/internal/core"
	"staffcast/internal/csvio"
	"staffcast/internal/engine"
	"staffcast/internal/export"
	"staffcast/internal/logging"
	"staffcast/internal/web/templates"
)

// handleDashboard renders the main page with the configured form defaults.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	form := templates.FormDefaults{
		Area:      s.cfg.Form.Area,
		Footfall:  s.cfg.Form.Footfall,
		RoundRule: s.cfg.Form.RoundRule,
		MinStaff:  s.cfg.Form.MinStaff,
		MaxStaff:  s.cfg.Form.MaxStaff,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Dashboard(form).Render(r.Context(), w)
}

// handleStatus reports liveness and the number of active batch sessions.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":         "ok",
		"activeSessions": s.service.ActiveSessions(),
	})
}

// recommendRequest is the JSON body accepted by the recommend endpoint.
// All values are strings so the JSON and form paths share one parser.
type recommendRequest struct {
	Area      string `json:"area"`
	Footfall  string `json:"footfall"`
	RoundRule string `json:"roundRule"`
	MinStaff  string `json:"minStaff"`
	MaxStaff  string `json:"maxStaff"`
}

// handleRecommend runs the single-record interactive path.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRecommendRequest(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	params := engine.Params{
		Area:     parseNumber(req.Area),
		Footfall: parseNumber(req.Footfall),
		Rule:     engine.ParseRoundRule(req.RoundRule),
		MinStaff: parseStaff(req.MinStaff),
		MaxStaff: parseOptionalStaff(req.MaxStaff),
	}

	result, err := s.service.Recommend(params)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	logging.FromContext(r.Context()).Debug("recommendation computed",
		"area", params.Area,
		"footfall", params.Footfall,
		"recommended", result.Recommended,
	)

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		continuous := strconv.FormatFloat(result.Continuous, 'f', 4, 64)
		templates.RecommendResult(continuous, result.Recommended).Render(r.Context(), w)
		return
	}
	writeJSON(w, result)
}

// handleBatchUpload accepts a multipart CSV upload and opens a batch session.
func (s *Server) handleBatchUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		s.respondError(w, r, fmt.Errorf("file too large or invalid form: %w", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, core.ErrNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("read upload: %w", err), http.StatusInternalServerError)
		return
	}

	summary, err := s.service.CreateSession(header.Filename, string(data))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	logging.FromContext(r.Context()).Info("batch session created",
		"session", summary.Session,
		"file", summary.FileName,
		"rows", summary.RowCount,
	)

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.BatchUploaded(summary.Session, summary.FileName, summary.RowCount).Render(r.Context(), w)
		return
	}
	writeJSON(w, summary)
}

// processRequest is the JSON body accepted by the process endpoint.
type processRequest struct {
	Session   string `json:"session"`
	RoundRule string `json:"roundRule"`
	MinStaff  string `json:"minStaff"`
	MaxStaff  string `json:"maxStaff"`
}

// handleBatchProcess runs the engine over every row of an uploaded session.
func (s *Server) handleBatchProcess(w http.ResponseWriter, r *http.Request) {
	req, err := decodeProcessRequest(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	opts := core.BatchOptions{
		Rule:     engine.ParseRoundRule(req.RoundRule),
		MinStaff: parseStaff(req.MinStaff),
		MaxStaff: parseOptionalStaff(req.MaxStaff),
	}

	summary, err := s.service.Process(req.Session, opts)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(r.Context()).Info("batch processed",
		"session", summary.Session,
		"rows", summary.RowCount,
		"flagged", summary.Flagged,
	)

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.BatchProcessed(summary.Session, summary.RowCount, summary.Flagged).Render(r.Context(), w)
		return
	}
	writeJSON(w, summary)
}

// handleBatchDownload serves the processed results as CSV (default) or XLSX.
func (s *Server) handleBatchDownload(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")

	results, err := s.service.Results(session)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		data, err := export.XLSX(results.Headers, results.Rows)
		if err != nil {
			s.respondError(w, r, fmt.Errorf("build xlsx: %w", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.XLSXFileName))
		w.Write(data)
		return
	}

	text := csvio.Write(results.Headers, results.Rows)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, core.DownloadFileName))
	io.WriteString(w, text)
}

// decodeRecommendRequest reads the recommend inputs from a JSON body or a
// form post, so both the API and the HTMX form hit the same path.
func decodeRecommendRequest(r *http.Request) (recommendRequest, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req recommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return recommendRequest{}, fmt.Errorf("decode request: %w", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return recommendRequest{}, fmt.Errorf("parse form: %w", err)
	}
	return recommendRequest{
		Area:      r.PostFormValue("area"),
		Footfall:  r.PostFormValue("footfall"),
		RoundRule: r.PostFormValue("roundRule"),
		MinStaff:  r.PostFormValue("minStaff"),
		MaxStaff:  r.PostFormValue("maxStaff"),
	}, nil
}

// decodeProcessRequest reads the process inputs from JSON or form data.
func decodeProcessRequest(r *http.Request) (processRequest, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req processRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return processRequest{}, fmt.Errorf("decode request: %w", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return processRequest{}, fmt.Errorf("parse form: %w", err)
	}
	return processRequest{
		Session:   r.PostFormValue("session"),
		RoundRule: r.PostFormValue("roundRule"),
		MinStaff:  r.PostFormValue("minStaff"),
		MaxStaff:  r.PostFormValue("maxStaff"),
	}, nil
}

// parseNumber converts a form value to float64, yielding NaN for anything
// unparsable so engine validation rejects it with the right message.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseStaff converts the min-staff value, treating anything unparsable as
// zero; the engine clamps zero up to one.
func parseStaff(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// parseOptionalStaff converts the max-staff value; empty or unparsable
// means unbounded.
func parseOptionalStaff(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// statusFor maps workflow errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrEmptyBatch), errors.Is(err, core.ErrNoResults):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are out the door; nothing left to do but record it.
		slog.Error("json encode error", "error", err)
	}
}
