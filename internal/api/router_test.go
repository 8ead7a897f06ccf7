package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
	"github.com/intellitrack/tracking-simulator/internal/core/service"
	"github.com/intellitrack/tracking-simulator/internal/core/simulation"
	"github.com/intellitrack/tracking-simulator/internal/infrastructure/db/memory"
	"github.com/intellitrack/tracking-simulator/internal/infrastructure/db/seed"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	store := memory.NewShipmentStore()
	if _, err := seed.Load(context.Background(), store); err != nil {
		t.Fatal(err)
	}
	engine := simulation.NewEngine(simulation.WithJitter(simulation.NewRandomJitter(7)))
	svc := service.NewShipmentService(service.Deps{
		Shipments:     store,
		Events:        memory.NewEventLog(),
		Notifications: memory.NewNotificationStore(),
		Locker:        memory.NewLocker(),
		Watchlist:     memory.NewWatchlist(),
		Engine:        engine,
	}, zerolog.Nop())

	reg := prometheus.NewRegistry()
	return NewRouter(RouterDeps{
		Service:    svc,
		Cities:     engine.Cities(),
		Logger:     zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRouter_ErrorMapping(t *testing.T) {
	e := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{"unknown shipment", http.MethodGet, "/v1/shipments/IT000000000", http.StatusNotFound},
		{"advance unknown", http.MethodPost, "/v1/shipments/IT000000000/advance", http.StatusNotFound},
		{"watch delivered", http.MethodPut, "/v1/shipments/IT987654321/watch", http.StatusConflict},
		{"unknown route", http.MethodGet, "/v2/nothing", http.StatusNotFound},
		{"bad stage filter", http.MethodGet, "/v1/shipments?stage=teleported", http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, tc.method, tc.target, "")
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, rec.Code, rec.Body.String())
			}
			if _, ok := decodeBody(t, rec)["error"]; !ok {
				t.Error("expected error envelope")
			}
		})
	}
}

func TestRouter_AdvanceToDelivered(t *testing.T) {
	e := newTestRouter(t)

	var lastTs time.Time
	for i := 0; i < 10; i++ {
		rec := do(e, http.MethodPost, "/v1/shipments/it123456789/advance", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("advance %d: status %d (%s)", i, rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["advanced"] == false {
			break
		}
		ev := body["event"].(map[string]any)
		ts, err := time.Parse(time.RFC3339, ev["timestamp"].(string))
		if err != nil {
			t.Fatal(err)
		}
		if !lastTs.IsZero() && !ts.After(lastTs) {
			t.Fatalf("event time went backwards: %v after %v", ts, lastTs)
		}
		lastTs = ts
	}

	rec := do(e, http.MethodGet, "/v1/shipments/IT123456789", "")
	body := decodeBody(t, rec)
	if body["stage"] != domain.StageDelivered.String() || body["delivered"] != true {
		t.Fatalf("expected delivered shipment, got stage %v", body["stage"])
	}

	rec = do(e, http.MethodGet, "/v1/shipments/IT123456789/journey", "")
	cities := decodeBody(t, rec)["cities"].([]any)
	if len(cities) < 2 || cities[0].(map[string]any)["name"] != "Shanghai" {
		t.Errorf("unexpected journey %v", cities)
	}

	rec = do(e, http.MethodGet, "/v1/shipments/IT123456789/notifications", "")
	if n := len(decodeBody(t, rec)["data"].([]any)); n == 0 {
		t.Error("expected status notifications")
	}
}

func TestRouter_CreateAndWatch(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, http.MethodPost, "/v1/shipments", `{
		"origin": {"name":"John Smith","street":"789 Broadway","city_state_zip":"New York, NY 10003","country":"USA"},
		"destination": {"name":"Emily White","street":"10 Downing St","city_state_zip":"London SW1A 2AA","country":"United Kingdom"},
		"weight": "0.8 kg"
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d (%s)", rec.Code, rec.Body.String())
	}
	id := decodeBody(t, rec)["id"].(string)

	if rec := do(e, http.MethodPut, "/v1/shipments/"+id+"/watch", ""); rec.Code != http.StatusOK {
		t.Fatalf("watch: status %d", rec.Code)
	}
	if rec := do(e, http.MethodDelete, "/v1/shipments/"+id+"/watch", ""); rec.Code != http.StatusOK {
		t.Fatalf("unwatch: status %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/v1/shipments?limit=2", "")
	pagination := decodeBody(t, rec)["pagination"].(map[string]any)
	if pagination["total"].(float64) != 4 || pagination["total_pages"].(float64) != 2 {
		t.Errorf("unexpected pagination %v", pagination)
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	e := newTestRouter(t)

	for _, target := range []string{"/health", "/health/ready", "/v1/cities"} {
		if rec := do(e, http.MethodGet, target, ""); rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", target, rec.Code)
		}
	}

	// Generate a request so the HTTP metrics have a sample.
	do(e, http.MethodGet, "/health", "")
	rec := do(e, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Errorf("metrics endpoint missing http metrics: %d", rec.Code)
	}
}
