package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	fserrors "github.com/wexinc/fightsongs/internal/errors"
	"github.com/wexinc/fightsongs/internal/report"
)

type errorResponse struct {
	Error      string            `json:"error"`
	Suggestion string            `json:"suggestion,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Available bool   `json:"available"`
	Rows      int    `json:"rows"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

// writeError maps err to a status code. Invalid parameters are the only
// client errors; domain states never reach here.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, fserrors.ErrInvalidParameter) {
		code = http.StatusBadRequest
	}
	resp := errorResponse{Error: err.Error()}
	if de, ok := fserrors.As(err); ok {
		resp.Error = de.Message
		resp.Suggestion = de.Suggestion
		resp.Details = de.Details
	}
	s.logger.Debug("request failed", "path", r.URL.Path, "code", code, "error", err)
	s.writeJSON(w, code, resp)
}

// params reads the selection parameters shared by the API endpoints.
func params(q url.Values) (report.Params, error) {
	var p report.Params
	var err error
	if p.MinDecade, err = intParam(q, "min_decade"); err != nil {
		return p, err
	}
	if p.TopK, err = intParam(q, "top_k"); err != nil {
		return p, err
	}
	p.Series = listParam(q, "series")
	p.Conferences = listParam(q, "conferences")
	p.Dimensions = listParam(q, "dims")
	p.Variant = q.Get("variant")
	return p, nil
}

func intParam(q url.Values, name string) (int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fserrors.InvalidParameter(name, v, "must be an integer")
	}
	return n, nil
}

// listParam accepts both repeated parameters and comma-separated values.
func listParam(q url.Values, name string) []string {
	var out []string
	for _, v := range q[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *Server) handleDecades(w http.ResponseWriter, r *http.Request) {
	p, err := params(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := p.State(s.opts.Selection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report.Decades(s.source.Dataset(), s.cache, st))
}

func (s *Server) handleConferences(w http.ResponseWriter, r *http.Request) {
	p, err := params(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := p.State(s.opts.Selection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	topK := p.TopK
	if topK == 0 {
		topK = s.opts.TopK
	}
	s.writeJSON(w, http.StatusOK, report.Conferences(s.source.Dataset(), s.cache, st, topK))
}

func (s *Server) handleAuthorship(w http.ResponseWriter, r *http.Request) {
	p, err := params(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := p.State(s.opts.Selection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report.Authorship(s.source.Dataset(), s.cache, st))
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSuffix(r.PathValue("decade"), "s")
	decade, err := strconv.Atoi(raw)
	if err != nil || decade < 0 {
		s.writeError(w, r, fserrors.InvalidParameter("decade", r.PathValue("decade"), "must be a year such as 1920"))
		return
	}
	s.writeJSON(w, http.StatusOK, report.Context(decade))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds := s.source.Dataset()
	resp := healthResponse{
		Status:    "ok",
		Available: ds.Available(),
		Rows:      ds.Len(),
		Version:   ds.Version(),
	}
	if err := s.source.Err(); err != nil {
		resp.Error = err.Error()
	}
	s.writeJSON(w, http.StatusOK, resp)
}
