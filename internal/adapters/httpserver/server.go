// Package httpserver exposes the exercise registry over HTTP.
package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/linqsamples/internal/domain"
	"github.com/phenrril/linqsamples/internal/report/xlsx"
	"github.com/phenrril/linqsamples/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	exercises *usecase.ExerciseUC
}

func New(uc *usecase.ExerciseUC) http.Handler {
	s := &Server{exercises: uc, mux: http.NewServeMux()}
	s.routes()
	return Chain(s.mux,
		Recovery,
		Logging,
		RequestID,
	)
}

func (s *Server) routes() {
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /api/exercises", s.apiExercises)
	s.mux.HandleFunc("GET /api/exercises/{id}", s.apiRunExercise)
	s.mux.HandleFunc("GET /api/exercises/{id}/xlsx", s.apiExerciseWorkbook)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.exercises == nil || s.exercises.Dataset == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "no dataset"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "counts": s.exercises.Dataset.Counts()})
}

func (s *Server) apiExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.exercises.List())
}

type runResponse struct {
	usecase.Exercise
	Lines []string `json:"lines"`
}

func (s *Server) apiRunExercise(w http.ResponseWriter, r *http.Request) {
	e, lines, ok := s.run(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, runResponse{Exercise: e, Lines: lines})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	for _, l := range lines {
		_, _ = w.Write([]byte(l + "\n"))
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) apiExerciseWorkbook(w http.ResponseWriter, r *http.Request) {
	e, lines, ok := s.run(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := xlsx.Write(&buf, []xlsx.Sheet{{ID: e.ID, Title: e.Title, Lines: lines}}); err != nil {
		log.Error().Err(err).Str("exercise", e.ID).Msg("xlsx export")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="task-`+e.ID+`.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// run resolves the {id} path value and renders the exercise. It writes the
// error response itself and reports ok=false.
func (s *Server) run(w http.ResponseWriter, r *http.Request) (usecase.Exercise, []string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	e, err := s.exercises.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown exercise "+id)
		return usecase.Exercise{}, nil, false
	}
	lines, err := s.exercises.Run(r.Context(), id)
	switch {
	case err == nil:
		return e, lines, true
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown exercise "+id)
	default:
		log.Error().Err(err).Str("request_id", RequestIDFrom(r.Context())).Str("exercise", id).Msg("run exercise")
		writeError(w, http.StatusInternalServerError, "run failed")
	}
	return usecase.Exercise{}, nil, false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
