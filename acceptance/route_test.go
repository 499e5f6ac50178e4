package acceptance

import (
	"encoding/json"
	"net/http"
	"reflect"
	"testing"
)

// Test POST /routes

func TestCreateRoute_RoundTripsStopCodes(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.POST("/routes", map[string]interface{}{
		"campus":     "Tesano",
		"name":       "Campus Loop",
		"stop_codes": []string{"TSN-01", "TSN-02", "TSN-03"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	w = ts.GET("/routes")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp []routeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if len(resp) != 1 {
		t.Fatalf("expected 1 route, got %d", len(resp))
	}
	want := []string{"TSN-01", "TSN-02", "TSN-03"}
	if !reflect.DeepEqual(resp[0].StopCodes, want) {
		t.Errorf("expected stop_codes %v in order, got %v", want, resp[0].StopCodes)
	}
}

func TestCreateRoute_RequiresStopCodes(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.POST("/routes", map[string]interface{}{
		"campus":     "Tesano",
		"name":       "Campus Loop",
		"stop_codes": []string{},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["code"] != "INVALID_REQUEST" {
		t.Errorf("expected code INVALID_REQUEST, got %s", resp["code"])
	}
}

// Test GET /routes

func TestGetRoutes_FiltersByCampus(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	ts.CreateTestRoute(t, "Tesano", "Campus Loop", []string{"TSN-01", "TSN-02"})
	ts.CreateTestRoute(t, "Abokobi", "Abokobi Shuttle Line", []string{"ABK-01", "ABK-02"})

	w := ts.GET("/routes?campus=Abokobi")

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp []routeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if len(resp) != 1 {
		t.Fatalf("expected 1 route, got %d", len(resp))
	}
	if resp[0].Name != "Abokobi Shuttle Line" {
		t.Errorf("expected Abokobi Shuttle Line, got %s", resp[0].Name)
	}
}
