package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseStage(t *testing.T) {
	cases := []struct {
		status string
		want   Stage
	}{
		// Labels the engine produces.
		{"Shipment Created", StageCreated},
		{"Package picked up", StagePickedUp},
		{"Departed from Origin Facility", StageDepartedOrigin},
		{"In Transit to Next Facility", StageInTransit},
		{"Arrived at International Hub", StageArrivedHub},
		{"International shipment release - Import", StageCustomsRelease},
		{"Tendered to delivery partner", StageTenderedLocal},
		{"Out for delivery", StageOutForDelivery},
		{"Delivered", StageDelivered},
		// Free-text seed statuses.
		{"Arrived at hub", StageArrivedHub},
		{"Departed from facility", StageDepartedOrigin},
		{"Package processed", StagePickedUp},
		{"Arrived at local facility", StageTenderedLocal},
		{"Departed from hub", StageDepartedOrigin},
		{"OUT FOR DELIVERY", StageOutForDelivery},
		{"  delivered  ", StageDelivered},
		{"Label printed", StageCreated},
		{"Customs hold", StageCustomsRelease},
		{"", StageUnknown},
		{"Weather delay", StageUnknown},
	}

	for _, tc := range cases {
		if got := ParseStage(tc.status); got != tc.want {
			t.Errorf("ParseStage(%q) = %s, want %s", tc.status, got, tc.want)
		}
	}
}

func TestStage_LabelsRoundTripThroughParse(t *testing.T) {
	for s := StageCreated; s <= StageDelivered; s++ {
		if got := ParseStage(s.Label()); got != s {
			t.Errorf("ParseStage(%q) = %s, want %s", s.Label(), got, s)
		}
	}
}

func TestStage_JSON(t *testing.T) {
	b, err := json.Marshal(StageOutForDelivery)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"out_for_delivery"` {
		t.Fatalf("unexpected json: %s", b)
	}

	var s Stage
	if err := json.Unmarshal([]byte(`"arrived_hub"`), &s); err != nil {
		t.Fatal(err)
	}
	if s != StageArrivedHub {
		t.Fatalf("expected arrived_hub, got %s", s)
	}

	if err := json.Unmarshal([]byte(`"teleported"`), &s); err == nil {
		t.Fatal("expected error for unknown stage name")
	}
}

func TestStage_Predicates(t *testing.T) {
	if !StageDelivered.Terminal() || StageOutForDelivery.Terminal() {
		t.Error("only delivered is terminal")
	}
	for _, s := range []Stage{StageTenderedLocal, StageOutForDelivery, StageDelivered} {
		if !s.LastMile() {
			t.Errorf("%s should be last mile", s)
		}
	}
	if StageArrivedHub.LastMile() {
		t.Error("arrived hub is not last mile")
	}
}

func TestShipmentRecord_Normalize(t *testing.T) {
	now := time.Now().UTC()
	rec := &ShipmentRecord{
		ID:     "IT1",
		Status: "In Transit",
		History: []TrackingEvent{
			{Timestamp: now, Status: "Arrived at hub"},
			{Timestamp: now.Add(-time.Hour), Status: "Package picked up"},
		},
	}
	rec.Normalize()

	if rec.Status != "Arrived at hub" {
		t.Errorf("status must mirror newest event, got %q", rec.Status)
	}
	if rec.Stage != StageArrivedHub {
		t.Errorf("expected stage arrived_hub, got %s", rec.Stage)
	}
	if rec.History[1].Stage != StagePickedUp {
		t.Errorf("older events must be normalized too, got %s", rec.History[1].Stage)
	}
}

func TestShipmentRecord_LatestEmpty(t *testing.T) {
	rec := &ShipmentRecord{ID: "IT1"}
	if _, err := rec.Latest(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestShipmentRecord_CloneIsDeep(t *testing.T) {
	rec := &ShipmentRecord{
		ID:              "IT1",
		History:         []TrackingEvent{{Status: "Shipment Created"}},
		SpecialHandling: []string{"Fragile"},
	}
	c := rec.Clone()
	c.History[0].Status = "changed"
	c.SpecialHandling[0] = "changed"

	if rec.History[0].Status != "Shipment Created" || rec.SpecialHandling[0] != "Fragile" {
		t.Fatal("clone shares backing arrays with the original")
	}
}

func TestNormalizeTrackingID(t *testing.T) {
	if got := NormalizeTrackingID("  it123456789 "); got != "IT123456789" {
		t.Fatalf("unexpected id %q", got)
	}
}
