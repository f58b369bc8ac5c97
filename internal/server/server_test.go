package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mgerber/venue-forecast/internal/engine"
	"github.com/mgerber/venue-forecast/internal/scenario"
	"github.com/mgerber/venue-forecast/internal/store"
	"github.com/mgerber/venue-forecast/pkg/constants"
)

func newTestHandler(t *testing.T) (http.Handler, *store.FileStore) {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	handler := NewHandler(zap.NewNop(), fs, constants.DefaultMaxBodySizeBytes, "test",
		WithCurrentWeekFunc(func() int { return 27 }))
	return handler, fs
}

func performJSON(t *testing.T, handler http.Handler, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeScenario(t *testing.T, rr *httptest.ResponseRecorder) scenario.Scenario {
	t.Helper()
	var s scenario.Scenario
	if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
		t.Fatalf("failed to decode scenario: %v", err)
	}
	return s
}

func TestCreateAndGetScenario(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodPost, "/api/scenarios", map[string]interface{}{
		"name": "baseline",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	created := decodeScenario(t, rr)
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.Metrics.BaseWeeklyRevenueGross <= 0 {
		t.Errorf("default scenario should have positive revenue, got %.2f", created.Metrics.BaseWeeklyRevenueGross)
	}

	rr = performJSON(t, handler, http.MethodGet, "/api/scenarios/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	fetched := decodeScenario(t, rr)
	if fetched.ID != created.ID || fetched.Name != "baseline" {
		t.Errorf("fetched %s/%s, expected %s/baseline", fetched.ID, fetched.Name, created.ID)
	}
}

func TestCreateEmptyScenario(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodPost, "/api/scenarios", map[string]interface{}{
		"name":  "blank",
		"empty": true,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	created := decodeScenario(t, rr)
	if created.Inputs != (engine.Inputs{}) {
		t.Errorf("empty scenario has non-zero inputs: %+v", created.Inputs)
	}
	if created.Metrics != (engine.Metrics{}) {
		t.Errorf("empty scenario has non-zero metrics: %+v", created.Metrics)
	}
}

func TestCreateScenarioMergesPartialInputs(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodPost, "/api/scenarios", map[string]interface{}{
		"name":   "partial",
		"inputs": map[string]float64{"ticketPrice": 20},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	created := decodeScenario(t, rr)
	if created.Inputs.TicketPrice != 20 {
		t.Errorf("TicketPrice = %v, expected request value 20", created.Inputs.TicketPrice)
	}
	// Omitted fields carry the defaults record, not zeros.
	defaults := scenario.DefaultInputs()
	if created.Inputs.TicketsPerWeek != defaults.TicketsPerWeek {
		t.Errorf("TicketsPerWeek = %v, expected default %v", created.Inputs.TicketsPerWeek, defaults.TicketsPerWeek)
	}
	if created.Inputs.Salaries != defaults.Salaries {
		t.Errorf("Salaries = %v, expected default %v", created.Inputs.Salaries, defaults.Salaries)
	}

	expected := defaults
	expected.TicketPrice = 20
	if created.Inputs != expected {
		t.Errorf("merged inputs diverged from defaults overlaid with the request:\ngot  %+v\nwant %+v", created.Inputs, expected)
	}
}

func TestCreateEmptyScenarioWithPartialInputs(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodPost, "/api/scenarios", map[string]interface{}{
		"name":   "sparse",
		"empty":  true,
		"inputs": map[string]float64{"rent": 3000},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	created := decodeScenario(t, rr)
	expected := engine.Inputs{Rent: 3000}
	if created.Inputs != expected {
		t.Errorf("empty base with partial inputs = %+v, expected only rent set", created.Inputs)
	}
}

func TestCreateScenarioRequiresName(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodPost, "/api/scenarios", map[string]interface{}{
		"name": "   ",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestUpdateScenarioRecomputesMetrics(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodPost, "/api/scenarios", map[string]interface{}{"name": "editable"})
	created := decodeScenario(t, rr)

	inputs := created.Inputs
	inputs.TicketPrice = 25

	rr = performJSON(t, handler, http.MethodPut, "/api/scenarios/"+created.ID, map[string]interface{}{
		"name":   "edited",
		"inputs": inputs,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	updated := decodeScenario(t, rr)
	if updated.Name != "edited" {
		t.Errorf("Name = %s, expected edited", updated.Name)
	}
	if updated.Inputs.TicketPrice != 25 {
		t.Errorf("TicketPrice = %v, expected 25", updated.Inputs.TicketPrice)
	}
	expected := engine.ComputeMetrics(inputs)
	if updated.Metrics != expected {
		t.Errorf("metrics were not recomputed from the updated inputs")
	}
}

func TestDeleteScenario(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodPost, "/api/scenarios", map[string]interface{}{"name": "doomed"})
	created := decodeScenario(t, rr)

	rr = performJSON(t, handler, http.MethodDelete, "/api/scenarios/"+created.ID, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}

	rr = performJSON(t, handler, http.MethodGet, "/api/scenarios/"+created.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rr.Code)
	}
}

func TestScenarioNotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodGet, "/api/scenarios/no-such-id", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp["error"] == "" {
		t.Errorf("expected error message in response")
	}
}

func TestListScenariosSorted(t *testing.T) {
	handler, _ := newTestHandler(t)

	for _, name := range []string{"first", "second"} {
		rr := performJSON(t, handler, http.MethodPost, "/api/scenarios", map[string]interface{}{"name": name})
		if rr.Code != http.StatusCreated {
			t.Fatalf("failed to create scenario %s: %d", name, rr.Code)
		}
	}

	rr := performJSON(t, handler, http.MethodGet, "/api/scenarios", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var scenarios []scenario.Scenario
	if err := json.Unmarshal(rr.Body.Bytes(), &scenarios); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(scenarios))
	}
}

func TestComputeEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	mult := make([]float64, 52)
	for i := range mult {
		mult[i] = 1.0
	}

	rr := performJSON(t, handler, http.MethodPost, "/api/compute", map[string]interface{}{
		"inputs": map[string]float64{
			"ticketPrice":    15,
			"ticketsPerWeek": 60,
		},
		"revenueMultipliers": mult,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp computeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.CurrentWeek != 27 {
		t.Errorf("CurrentWeek = %d, expected handler default 27", resp.CurrentWeek)
	}
	if resp.Metrics.TicketRevenuePerWeek != 900 {
		t.Errorf("TicketRevenuePerWeek = %v, expected 900", resp.Metrics.TicketRevenuePerWeek)
	}
	// Week 27 splits the year; both partitions carry revenue.
	if resp.Metrics.HistoricalRevenue <= 0 || resp.Metrics.ProjectedRevenue <= 0 {
		t.Errorf("expected both partitions populated, got historical %.2f projected %.2f",
			resp.Metrics.HistoricalRevenue, resp.Metrics.ProjectedRevenue)
	}
	if resp.Duration == "" {
		t.Errorf("expected duration in response")
	}
}

func TestComputeEndpointCurrentWeekOverride(t *testing.T) {
	handler, _ := newTestHandler(t)

	week := 3
	rr := performJSON(t, handler, http.MethodPost, "/api/compute", map[string]interface{}{
		"inputs":      map[string]float64{"ticketPrice": 10, "ticketsPerWeek": 10},
		"currentWeek": week,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp computeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CurrentWeek != week {
		t.Errorf("CurrentWeek = %d, expected request override %d", resp.CurrentWeek, week)
	}
}

func TestComputeEndpointRejectsBadJSON(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/compute", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestScenarioReportEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodPost, "/api/scenarios", map[string]interface{}{"name": "reportable"})
	created := decodeScenario(t, rr)

	rr = performJSON(t, handler, http.MethodGet, "/api/scenarios/"+created.ID+"/report", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Scenario reportable") {
		t.Errorf("report is missing the scenario name:\n%s", body)
	}
	if !strings.Contains(body, "Total revenue (net)") {
		t.Errorf("report is missing annual totals:\n%s", body)
	}
}

func TestScenarioExportEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodPost, "/api/scenarios", map[string]interface{}{"name": "exportable"})
	created := decodeScenario(t, rr)

	rr = performJSON(t, handler, http.MethodGet, "/api/scenarios/"+created.ID+"/export", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp["scenarioYaml"], "name: exportable") {
		t.Errorf("export YAML is missing the scenario name:\n%s", resp["scenarioYaml"])
	}
}

func TestVersionEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodGet, "/api/version", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "test" {
		t.Errorf("version = %s, expected test", resp["version"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := performJSON(t, handler, http.MethodPatch, "/api/scenarios", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}
