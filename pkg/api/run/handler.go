// Package run exposes the generation pipeline over HTTP: submit a dataset,
// get the full run bundle back, and browse the Postgres archive.
package run

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"three_statements/pkg/core/config"
	"three_statements/pkg/core/fixes"
	"three_statements/pkg/core/pipeline"
	"three_statements/pkg/core/sample"
	"three_statements/pkg/core/store"
	"three_statements/pkg/models"
)

// Handler holds dependencies for run endpoints. Repo is nil when no
// database is configured; archive endpoints then answer 503.
type Handler struct {
	Cfg  config.Config
	Repo store.RunRepository
	Log  zerolog.Logger
}

// NewHandler creates a new run handler.
func NewHandler(cfg config.Config, repo store.RunRepository, log zerolog.Logger) *Handler {
	return &Handler{Cfg: cfg, Repo: repo, Log: log}
}

// Request is the run submission body. Records arrive pre-normalized; file
// ingestion stays with the CLI, which owns format detection.
type Request struct {
	TrialBalance  []models.LedgerRecord `json:"trial_balance"`
	GeneralLedger []models.LedgerRecord `json:"general_ledger,omitempty"`
	Fixes         []string              `json:"fixes,omitempty"`
	Reassign      []ReassignSpec        `json:"reassign,omitempty"`
	Archive       bool                  `json:"archive,omitempty"`
}

// ReassignSpec pins one account number to a category for this run.
type ReassignSpec struct {
	AccountNumber int    `json:"account_number"`
	Category      string `json:"category"`
}

// HandleRun accepts a TB/GL dataset and runs the full pipeline over it.
// A blocked run still answers 200: the findings are the payload.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.TrialBalance) == 0 {
		http.Error(w, "trial_balance is required", http.StatusBadRequest)
		return
	}

	ops, err := buildOps(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	engine := pipeline.New(h.Cfg)
	engine.SetLogger(h.Log)
	result, err := engine.Run(r.Context(), req.TrialBalance, req.GeneralLedger, ops)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if req.Archive {
		if h.Repo == nil {
			http.Error(w, "archive requested but no database configured", http.StatusServiceUnavailable)
			return
		}
		if err := h.Repo.Save(r.Context(), result); err != nil {
			h.Log.Error().Err(err).Str("run_id", result.RunID).Msg("archive failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, result)
}

// HandleDemo runs the pipeline over the built-in consistent dataset.
// Useful as a smoke check that the engine and its checks all pass.
func (h *Handler) HandleDemo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	year := 2020
	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = y
	}

	tb, gl := sample.Dataset(year, 3)
	engine := pipeline.New(h.Cfg)
	engine.SetLogger(h.Log)
	result, err := engine.Run(r.Context(), tb, gl, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// HandleGet returns one archived run by id.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if h.Repo == nil {
		http.Error(w, "no database configured", http.StatusServiceUnavailable)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	result, err := h.Repo.Load(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, result)
}

// HandleRecent lists archived run headers, newest first.
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if h.Repo == nil {
		http.Error(w, "no database configured", http.StatusServiceUnavailable)
		return
	}
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	headers, err := h.Repo.Recent(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, headers)
}

func buildOps(req Request) ([]fixes.Op, error) {
	var ops []fixes.Op
	for _, name := range req.Fixes {
		op, ok := fixes.FromHint(models.FixHint(name))
		if !ok {
			return nil, fmt.Errorf("unknown fix %q", name)
		}
		ops = append(ops, op)
	}
	for _, spec := range req.Reassign {
		cat := models.AccountCategory(spec.Category)
		if !validCategory(cat) {
			return nil, fmt.Errorf("unknown category %q", spec.Category)
		}
		ops = append(ops, fixes.ReassignCategory{AccountNumber: spec.AccountNumber, Category: cat})
	}
	return ops, nil
}

func validCategory(cat models.AccountCategory) bool {
	if cat == models.CatUnclassified {
		return true
	}
	for _, c := range models.AllCategories() {
		if c == cat {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
