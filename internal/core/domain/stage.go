package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Stage is one canonical step of the logistics progression. The numeric
// order of the constants is the order a shipment moves through them.
type Stage int

const (
	StageUnknown Stage = iota
	StageCreated
	StagePickedUp
	StageDepartedOrigin
	StageInTransit
	StageArrivedHub
	StageCustomsRelease
	StageTenderedLocal
	StageOutForDelivery
	StageDelivered
)

var stageNames = map[Stage]string{
	StageUnknown:        "unknown",
	StageCreated:        "created",
	StagePickedUp:       "picked_up",
	StageDepartedOrigin: "departed_origin",
	StageInTransit:      "in_transit",
	StageArrivedHub:     "arrived_hub",
	StageCustomsRelease: "customs_release",
	StageTenderedLocal:  "tendered_local",
	StageOutForDelivery: "out_for_delivery",
	StageDelivered:      "delivered",
}

var stageLabels = map[Stage]string{
	StageUnknown:        "Unknown",
	StageCreated:        "Shipment Created",
	StagePickedUp:       "Package picked up",
	StageDepartedOrigin: "Departed from Origin Facility",
	StageInTransit:      "In Transit to Next Facility",
	StageArrivedHub:     "Arrived at International Hub",
	StageCustomsRelease: "International shipment release - Import",
	StageTenderedLocal:  "Tendered to delivery partner",
	StageOutForDelivery: "Out for delivery",
	StageDelivered:      "Delivered",
}

// String returns the machine name used in JSON, metrics and query filters.
func (s Stage) String() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return stageNames[StageUnknown]
}

// Label returns the human-readable status text shown in tracking history.
func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return stageLabels[StageUnknown]
}

// Terminal reports whether no further events may follow this stage.
func (s Stage) Terminal() bool {
	return s == StageDelivered
}

// LastMile reports whether the stage happens at the destination address.
func (s Stage) LastMile() bool {
	return s == StageTenderedLocal || s == StageOutForDelivery || s == StageDelivered
}

// ParseStageName is the inverse of String. It is strict: only machine names
// are accepted.
func ParseStageName(name string) (Stage, error) {
	for s, n := range stageNames {
		if n == name {
			return s, nil
		}
	}
	return StageUnknown, fmt.Errorf("unknown stage %q", name)
}

func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Stage) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	parsed, err := ParseStageName(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// stageRule maps status keywords onto a stage. Rules are evaluated in order
// and the first rule with a matching keyword wins, so "out for delivery" must
// be checked before "delivered" and "arrived at local facility" before
// "arrived".
type stageRule struct {
	stage    Stage
	keywords []string
}

var stageRules = []stageRule{
	{StageOutForDelivery, []string{"out for delivery"}},
	{StageDelivered, []string{"delivered"}},
	{StageTenderedLocal, []string{"tendered", "local facility", "delivery partner"}},
	{StageCustomsRelease, []string{"release", "customs", "clearance"}},
	{StageArrivedHub, []string{"arrived"}},
	{StageDepartedOrigin, []string{"departed"}},
	{StageInTransit, []string{"transit"}},
	{StagePickedUp, []string{"picked up", "processed"}},
	{StageCreated, []string{"created", "label"}},
}

// ParseStage normalizes a free-text status (seed data, carrier feeds) onto a
// canonical stage. Matching is case-insensitive and keyword based; text that
// matches nothing yields StageUnknown.
func ParseStage(status string) Stage {
	text := strings.ToLower(strings.TrimSpace(status))
	if text == "" {
		return StageUnknown
	}
	for _, rule := range stageRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.stage
			}
		}
	}
	return StageUnknown
}
