package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SCENARIO ENDPOINT TESTS
// =============================================================================

func TestScenarios_List(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	scenarios := decodeBody[[]map[string]any](t, resp)
	require.Len(t, scenarios, 3)
	ids := make([]string, len(scenarios))
	for i, s := range scenarios {
		ids[i] = s["id"].(string)
	}
	assert.ElementsMatch(t, []string{"small-office", "merge-chains", "mixed-types"}, ids)
}

func TestScenarios_LoadMergeChains_CollapsesToOneRecord(t *testing.T) {
	// GIVEN: The merge-chains scenario issues three touching paid requests
	// WHEN: Loading it
	// THEN: The store holds exactly one record spanning the whole run

	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/scenarios/load",
		map[string]string{"scenario_id": "merge-chains"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/vacations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	vacations := decodeBody[[]vacationBody](t, resp)
	require.Len(t, vacations, 1)
	assert.Equal(t, "2027-06-02", vacations[0].StartDate)
	assert.Equal(t, "2027-06-13", vacations[0].EndDate)
	assert.Equal(t, 8, vacations[0].TotalWorkDays)
}

func TestScenarios_LoadMixedTypes_TwoRecordsSurvive(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/scenarios/load",
		map[string]string{"scenario_id": "mixed-types"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/vacations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	vacations := decodeBody[[]vacationBody](t, resp)
	require.Len(t, vacations, 2)
	assert.NotEqual(t, vacations[0].Type, vacations[1].Type)
}

func TestScenarios_LoadTracksCurrent(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/scenarios/load",
		map[string]string{"scenario_id": "small-office"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/scenarios/current", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	current := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "small-office", current["id"])
}

func TestScenarios_LoadUnknown_BadRequest(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/scenarios/load",
		map[string]string{"scenario_id": "nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScenarios_Reset_ClearsEverything(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t)

	resp := ts.do(t, http.MethodPost, "/api/scenarios/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]map[string]any](t, resp))
}
