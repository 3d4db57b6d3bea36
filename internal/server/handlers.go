package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/geldfluss/sankey/internal/amount"
	"github.com/geldfluss/sankey/internal/domain"
	"github.com/geldfluss/sankey/internal/engine"
	"github.com/geldfluss/sankey/internal/finanzguru"
	"github.com/geldfluss/sankey/internal/frame"
	"github.com/geldfluss/sankey/internal/scanner"
	"github.com/geldfluss/sankey/internal/state"
	"github.com/geldfluss/sankey/internal/validate"
)

// sankeyResponse is the payload of GET /api/sankey.
type sankeyResponse struct {
	RunID       string        `json:"runId"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Year        int           `json:"year"`
	Month       int           `json:"month"`
	IssueDepth  int           `json:"issueDepth"`
	Graph       *domain.Graph `json:"graph"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSankey generates the flow graph for ?year=&month=&depth=. Missing
// parameters fall back to the stored last-used values; successful runs
// store their parameters back.
func (s *Server) handleSankey(w http.ResponseWriter, r *http.Request) {
	params, err := s.resolveParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	inputPath := s.cfg.InputFile
	if info, statErr := os.Stat(inputPath); statErr == nil && info.IsDir() {
		latest, err := scanner.New(inputPath).FindLatest()
		if err != nil {
			s.logger.Error("no export found", "dir", inputPath, "err", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "no transaction export found"})
			return
		}
		inputPath = latest.Path
	}

	table, err := finanzguru.ReadFile(inputPath)
	if err != nil {
		s.logger.Error("reading CSV export failed", "path", inputPath, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read transaction export"})
		return
	}

	root, err := s.eng.Parse(table, params.Year, params.Month, params.IssueDepth)
	if err != nil {
		status := http.StatusInternalServerError
		var cfgErr *engine.ConfigurationError
		var fmtErr *amount.FormatError
		switch {
		case errors.As(err, &cfgErr):
			status = http.StatusBadRequest
		case errors.As(err, &fmtErr):
			status = http.StatusUnprocessableEntity
		}
		s.logger.Warn("parse failed", "year", params.Year, "month", params.Month, "depth", params.IssueDepth, "err", err)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	if s.store != nil {
		if err := s.store.Save(params); err != nil {
			// Persisting the settings is best-effort; the graph is still valid.
			s.logger.Warn("saving last-used settings failed", "err", err)
		}
	}

	runID := uuid.NewString()
	graph := domain.BuildGraph(root, domain.DiagramTitle(params.Year, params.Month))

	result := validate.ValidateGraph(graph)
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			s.logger.Error("graph validation error", "run_id", runID, "entity", e.Entity, "id", e.ID, "msg", e.Message)
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "generated graph failed validation"})
		return
	}
	for _, warn := range result.Warnings {
		s.logger.Warn("graph validation warning", "run_id", runID, "entity", warn.Entity, "id", warn.ID, "msg", warn.Message)
	}

	s.logger.Info("graph generated",
		"run_id", runID,
		"year", params.Year,
		"month", params.Month,
		"depth", params.IssueDepth,
		"income", root.IncomeAmount(),
		"issues", root.IssuesAmount())

	writeJSON(w, http.StatusOK, sankeyResponse{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Year:        params.Year,
		Month:       params.Month,
		IssueDepth:  params.IssueDepth,
		Graph:       graph,
	})
}

// resolveParams merges query parameters with the stored last-used values.
func (s *Server) resolveParams(r *http.Request) (state.LastUsed, error) {
	var stored state.LastUsed
	var haveStored bool
	if s.store != nil {
		var err error
		stored, haveStored, err = s.store.Load()
		if err != nil {
			return state.LastUsed{}, err
		}
	}

	params := state.LastUsed{Month: frame.WholeYear, IssueDepth: 1}
	if haveStored {
		params = stored
	}

	q := r.URL.Query()
	if err := overrideInt(q.Get("year"), "year", &params.Year); err != nil {
		return state.LastUsed{}, err
	}
	if err := overrideInt(q.Get("month"), "month", &params.Month); err != nil {
		return state.LastUsed{}, err
	}
	if err := overrideInt(q.Get("depth"), "depth", &params.IssueDepth); err != nil {
		return state.LastUsed{}, err
	}

	if params.Year == 0 {
		return state.LastUsed{}, errors.New("year is required (no stored value to fall back to)")
	}
	return params, nil
}

func overrideInt(raw, name string, target *int) error {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return errors.New(name + " must be an integer")
	}
	*target = v
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
