package service

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
	"github.com/intellitrack/tracking-simulator/internal/core/ports"
	"github.com/intellitrack/tracking-simulator/internal/core/simulation"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubShipmentRepo struct {
	mu         sync.Mutex
	byID       map[string]*domain.ShipmentRecord
	createErr  error // if set, Create returns this error
	appendErr  error // if set, AppendEvent returns this error
	dupCreates int   // number of Create calls that report a duplicate id
	lastFilter ports.ListShipmentsFilter
}

func newStubShipmentRepo() *stubShipmentRepo {
	return &stubShipmentRepo{byID: make(map[string]*domain.ShipmentRecord)}
}

func (r *stubShipmentRepo) Create(_ context.Context, s *domain.ShipmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if r.dupCreates > 0 {
		r.dupCreates--
		return domain.ErrDuplicateShipment
	}
	r.byID[s.ID] = s.Clone()
	return nil
}

func (r *stubShipmentRepo) FindByID(_ context.Context, id string) (*domain.ShipmentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[domain.NormalizeTrackingID(id)]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	return s.Clone(), nil
}

func (r *stubShipmentRepo) AppendEvent(_ context.Context, id string, expectedLen int, ev domain.TrackingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	s, ok := r.byID[id]
	if !ok {
		return domain.ErrShipmentNotFound
	}
	if len(s.History) != expectedLen {
		return domain.ErrConcurrentUpdate
	}
	s.History = append([]domain.TrackingEvent{ev}, s.History...)
	s.Status, s.Stage = ev.Status, ev.Stage
	return nil
}

func (r *stubShipmentRepo) List(_ context.Context, f ports.ListShipmentsFilter) ([]*domain.ShipmentRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f
	out := make([]*domain.ShipmentRecord, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s.Clone())
	}
	return out, int64(len(out)), nil
}

type stubEventRepo struct {
	insertErr error
	inserted  []domain.TrackingEvent
}

func (r *stubEventRepo) InsertEvent(_ context.Context, _ string, e domain.TrackingEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

type stubNotificationRepo struct {
	addErr error
	items  []domain.Notification
}

func (r *stubNotificationRepo) Add(_ context.Context, n domain.Notification) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.items = append(r.items, n)
	return nil
}

func (r *stubNotificationRepo) ListByTrackingID(_ context.Context, id string) ([]domain.Notification, error) {
	var out []domain.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].TrackingID == id {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

type stubLocker struct {
	err      error
	acquired int
	released int
	keys     []string // ids passed to Acquire
}

func (l *stubLocker) Acquire(_ context.Context, id string) (func(), error) {
	l.keys = append(l.keys, id)
	if l.err != nil {
		return nil, l.err
	}
	l.acquired++
	return func() { l.released++ }, nil
}

type stubWatchlist struct {
	ids map[string]bool
}

func newStubWatchlist() *stubWatchlist { return &stubWatchlist{ids: make(map[string]bool)} }

func (w *stubWatchlist) Add(_ context.Context, id string) error    { w.ids[id] = true; return nil }
func (w *stubWatchlist) Remove(_ context.Context, id string) error { delete(w.ids, id); return nil }
func (w *stubWatchlist) Contains(_ context.Context, id string) (bool, error) {
	return w.ids[id], nil
}
func (w *stubWatchlist) Members(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(w.ids))
	for id := range w.ids {
		out = append(out, id)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2024, 8, 14, 9, 30, 0, 0, time.UTC) // Wednesday

type fixture struct {
	svc           *ShipmentService
	repo          *stubShipmentRepo
	events        *stubEventRepo
	notifications *stubNotificationRepo
	locker        *stubLocker
	watchlist     *stubWatchlist
}

func newFixture() *fixture {
	f := &fixture{
		repo:          newStubShipmentRepo(),
		events:        &stubEventRepo{},
		notifications: &stubNotificationRepo{},
		locker:        &stubLocker{},
		watchlist:     newStubWatchlist(),
	}
	f.svc = NewShipmentService(Deps{
		Shipments:     f.repo,
		Events:        f.events,
		Notifications: f.notifications,
		Locker:        f.locker,
		Watchlist:     f.watchlist,
		Engine:        simulation.NewEngine(simulation.WithJitter(simulation.FixedJitter(6 * time.Hour))),
		Clock:         func() time.Time { return fixedNow },
	}, zerolog.Nop())
	return f
}

func (f *fixture) seed(id, status string) *domain.ShipmentRecord {
	rec := &domain.ShipmentRecord{
		ID:          id,
		Origin:      domain.Address{Name: "Global Tech Inc.", CityStateZip: "Shanghai 200000", Country: "China"},
		Destination: domain.Address{Name: "Jane Doe", CityStateZip: "New York, NY 10001", Country: "USA"},
		History: []domain.TrackingEvent{
			{ID: "seed", Timestamp: fixedNow.Add(-24 * time.Hour), Status: status, Location: "Shanghai, China"},
		},
	}
	rec.Normalize()
	f.repo.byID[id] = rec
	return rec
}

func validInput() ports.CreateShipmentInput {
	return ports.CreateShipmentInput{
		Origin:      domain.Address{Name: "Global Tech Inc.", Street: "123 Innovation Dr", CityStateZip: "Shanghai 200000", Country: "China"},
		Destination: domain.Address{Name: "Jane Doe", Street: "456 Market St", CityStateZip: "New York, NY 10001", Country: "USA"},
		Service:     domain.ServiceExpress,
		Weight:      "2.5 kg",
	}
}

// ---------------------------------------------------------------------------
// CreateShipment
// ---------------------------------------------------------------------------

var trackingIDPattern = regexp.MustCompile(`^IT\d{9}$`)

func TestCreateShipment_Success(t *testing.T) {
	f := newFixture()

	rec, err := f.svc.CreateShipment(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !trackingIDPattern.MatchString(rec.ID) {
		t.Errorf("unexpected tracking id format %q", rec.ID)
	}
	if len(rec.History) != 1 {
		t.Fatalf("expected 1 seed event, got %d", len(rec.History))
	}
	if rec.Stage != domain.StageCreated || rec.Status != "Shipment Created" {
		t.Errorf("unexpected initial status %q/%s", rec.Status, rec.Stage)
	}
	if rec.History[0].Location != "Shanghai 200000, China" {
		t.Errorf("unexpected seed location %q", rec.History[0].Location)
	}
	want := time.Date(2024, 8, 16, 18, 0, 0, 0, time.UTC)
	if !rec.EstimatedDelivery.Equal(want) {
		t.Errorf("express delivery: expected %v, got %v", want, rec.EstimatedDelivery)
	}
	if _, ok := f.repo.byID[rec.ID]; !ok {
		t.Error("shipment was not persisted")
	}
	if len(f.notifications.items) != 1 || f.notifications.items[0].Title != "Shipment Created!" {
		t.Errorf("expected a creation notification, got %+v", f.notifications.items)
	}
}

func TestCreateShipment_DefaultsToStandard(t *testing.T) {
	f := newFixture()
	in := validInput()
	in.Service = ""

	rec, err := f.svc.CreateShipment(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Service != domain.ServiceStandard {
		t.Errorf("expected Standard service, got %q", rec.Service)
	}
}

func TestCreateShipment_RetriesDuplicateID(t *testing.T) {
	f := newFixture()
	f.repo.dupCreates = 2

	if _, err := f.svc.CreateShipment(context.Background(), validInput()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestCreateShipment_RepoError(t *testing.T) {
	f := newFixture()
	f.repo.createErr = errors.New("db down")

	if _, err := f.svc.CreateShipment(context.Background(), validInput()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(f.notifications.items) != 0 {
		t.Error("no notification expected on failure")
	}
}

func TestEstimatedDelivery(t *testing.T) {
	wed := fixedNow
	sat := time.Date(2024, 8, 17, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		service domain.ServiceOption
		from    time.Time
		want    time.Time
	}{
		{"same day", domain.ServiceSameDay, wed, time.Date(2024, 8, 14, 18, 0, 0, 0, time.UTC)},
		{"overnight", domain.ServiceOvernight, wed, time.Date(2024, 8, 15, 18, 0, 0, 0, time.UTC)},
		{"express", domain.ServiceExpress, wed, time.Date(2024, 8, 16, 18, 0, 0, 0, time.UTC)},
		{"standard", domain.ServiceStandard, wed, time.Date(2024, 8, 19, 18, 0, 0, 0, time.UTC)},
		{"weekend from wednesday", domain.ServiceWeekend, wed, time.Date(2024, 8, 17, 18, 0, 0, 0, time.UTC)},
		{"weekend from saturday", domain.ServiceWeekend, sat, time.Date(2024, 8, 24, 18, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := estimatedDelivery(tc.service, tc.from); !got.Equal(tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// GetShipment / ListShipments
// ---------------------------------------------------------------------------

func TestGetShipment_CaseInsensitive(t *testing.T) {
	f := newFixture()
	f.seed("IT123456789", "Package picked up")

	rec, err := f.svc.GetShipment(context.Background(), " it123456789 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "IT123456789" {
		t.Errorf("unexpected id %q", rec.ID)
	}
}

func TestGetShipment_NotFound(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.GetShipment(context.Background(), "IT000000000"); !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
}

func TestListShipments_Pagination(t *testing.T) {
	f := newFixture()
	for _, id := range []string{"IT1", "IT2", "IT3"} {
		f.seed(id, "Package picked up")
	}

	res, err := f.svc.ListShipments(context.Background(), ports.ListShipmentsInput{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 3 || res.TotalPages != 2 || res.Page != 1 {
		t.Errorf("unexpected paging %+v", res)
	}
}

func TestListShipments_ClampsLimit(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.ListShipments(context.Background(), ports.ListShipmentsInput{Limit: 1000}); err != nil {
		t.Fatal(err)
	}
	if f.repo.lastFilter.Limit != maxPageSize {
		t.Errorf("expected limit clamped to %d, got %d", maxPageSize, f.repo.lastFilter.Limit)
	}

	if _, err := f.svc.ListShipments(context.Background(), ports.ListShipmentsInput{}); err != nil {
		t.Fatal(err)
	}
	if f.repo.lastFilter.Limit != defaultPageSize || f.repo.lastFilter.Page != 1 {
		t.Errorf("expected defaults, got %+v", f.repo.lastFilter)
	}
}

// ---------------------------------------------------------------------------
// JourneyPath / Notifications
// ---------------------------------------------------------------------------

func TestJourneyPath_OldestFirstWithoutRepeats(t *testing.T) {
	f := newFixture()
	rec := f.seed("IT1", "Package picked up")
	rec.History = []domain.TrackingEvent{
		{Status: "Out for delivery", Location: "New York, NY 10001"},
		{Status: "Arrived at International Hub", Location: "Dubai, UAE"},
		{Status: "Departed from Origin Facility", Location: "Shanghai, China"},
		{Status: "Package picked up", Location: "Shanghai, China"},
		{Status: "Shipment Created", Location: "Somewhere 123, Nowhere"},
	}

	path, err := f.svc.JourneyPath(context.Background(), "IT1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Shanghai", "Dubai", "New York"}
	if len(path) != len(want) {
		t.Fatalf("expected %d cities, got %+v", len(want), path)
	}
	for i, name := range want {
		if path[i].Name != name {
			t.Errorf("path[%d]: expected %s, got %s", i, name, path[i].Name)
		}
	}
}

func TestNotifications_NotFound(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Notifications(context.Background(), "nope"); !errors.Is(err, domain.ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
}
