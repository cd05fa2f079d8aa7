package run

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"three_statements/pkg/core/config"
	"three_statements/pkg/core/sample"
	"three_statements/pkg/logger"
	"three_statements/pkg/models"
)

func newTestHandler() *Handler {
	return NewHandler(config.Default(), nil, logger.Nop())
}

func TestHandleRunReconcilesDemoData(t *testing.T) {
	tb, gl := sample.Dataset(2020, 3)
	body, err := json.Marshal(Request{TrialBalance: tb, GeneralLedger: gl})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/run", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	newTestHandler().HandleRun(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var result models.RunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.State != models.StateReconciled {
		t.Errorf("state = %s, want %s", result.State, models.StateReconciled)
	}
	if result.RunID == "" {
		t.Error("missing run id")
	}
}

func TestHandleRunRequiresTrialBalance(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/run", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	newTestHandler().HandleRun(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestHandleRunRejectsUnknownFix(t *testing.T) {
	tb, _ := sample.Dataset(2020, 3)
	body, _ := json.Marshal(Request{TrialBalance: tb, Fixes: []string{"delete_everything"}})

	req := httptest.NewRequest("POST", "/api/run", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	newTestHandler().HandleRun(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestHandleRunReassignOverride(t *testing.T) {
	tb, gl := sample.Dataset(2020, 3)
	body, _ := json.Marshal(Request{
		TrialBalance:  tb,
		GeneralLedger: gl,
		Reassign:      []ReassignSpec{{AccountNumber: 1500, Category: "other_current_assets"}},
	})

	req := httptest.NewRequest("POST", "/api/run", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	newTestHandler().HandleRun(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var result models.RunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	for _, res := range result.Resolutions {
		if res.Account.Number == 1500 {
			if res.Category != models.CatOtherCurrentAssets || res.Pass != "override" {
				t.Errorf("account 1500 resolved %s via %s", res.Category, res.Pass)
			}
			return
		}
	}
	t.Error("account 1500 missing from resolutions")
}

func TestHandleDemo(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/run/demo?year=2019", nil)
	rec := httptest.NewRecorder()
	newTestHandler().HandleDemo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var result models.RunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Window == nil || result.Window.BaselineYear != 2019 {
		t.Errorf("window = %+v", result.Window)
	}
}

func TestArchiveEndpointsWithoutDatabase(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.HandleRecent(rec, httptest.NewRequest("GET", "/api/runs", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("recent status %d, want 503", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleGet(rec, httptest.NewRequest("GET", "/api/runs/get?id=x", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("get status %d, want 503", rec.Code)
	}
}
