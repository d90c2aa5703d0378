package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubReservationBackend struct {
	slots     map[string][]string         // date → times
	tables    map[string][]int            // date+time → tables
	created   []ports.ReservationInput
	createErr error
	slotsErr  error
	mine      []domain.Reservation
	cancelled []int
}

func newStubReservationBackend() *stubReservationBackend {
	return &stubReservationBackend{
		slots:  map[string][]string{},
		tables: map[string][]int{},
	}
}

func (b *stubReservationBackend) TimeSlots(_ context.Context, date string) ([]string, error) {
	if b.slotsErr != nil {
		return nil, b.slotsErr
	}
	return b.slots[date], nil
}

func (b *stubReservationBackend) AvailableTables(_ context.Context, date, timeOfDay string) ([]int, error) {
	return b.tables[date+" "+timeOfDay], nil
}

func (b *stubReservationBackend) CreateReservation(_ context.Context, in ports.ReservationInput) (domain.Reservation, error) {
	if b.createErr != nil {
		return domain.Reservation{}, b.createErr
	}
	b.created = append(b.created, in)
	return domain.Reservation{
		ReservationID:       900,
		ReservationDateTime: in.ReservationDateTime,
		NumPeople:           in.NumPeople,
		TableNumber:         in.TableNumber,
		Status:              "Booked",
	}, nil
}

func (b *stubReservationBackend) MyReservations(_ context.Context) ([]domain.Reservation, error) {
	return b.mine, nil
}

func (b *stubReservationBackend) CancelReservation(_ context.Context, id int) error {
	b.cancelled = append(b.cancelled, id)
	return nil
}

type stubWizardStore struct {
	drafts map[string]*domain.ReservationDraft
}

func newStubWizardStore() *stubWizardStore {
	return &stubWizardStore{drafts: map[string]*domain.ReservationDraft{}}
}

func (s *stubWizardStore) Get(_ context.Context, sid string) (*domain.ReservationDraft, error) {
	if d, ok := s.drafts[sid]; ok {
		clone := *d
		return &clone, nil
	}
	return domain.NewReservationDraft(), nil
}

func (s *stubWizardStore) Set(_ context.Context, sid string, d *domain.ReservationDraft) error {
	clone := *d
	s.drafts[sid] = &clone
	return nil
}

func (s *stubWizardStore) Clear(_ context.Context, sid string) error {
	delete(s.drafts, sid)
	return nil
}

func newTestReservation(b *stubReservationBackend) (*ReservationService, *stubWizardStore) {
	store := newStubWizardStore()
	return NewReservationService(b, store, zerolog.Nop()), store
}

const sid = "sid-1"

// walkToConfirm drives a draft to the confirm step.
func walkToConfirm(t *testing.T, s *ReservationService) {
	t.Helper()
	ctx := context.Background()
	if _, err := s.SelectDate(ctx, sid, "2026-09-01"); err != nil {
		t.Fatalf("date: %v", err)
	}
	if _, err := s.SelectTime(ctx, sid, "19:00"); err != nil {
		t.Fatalf("time: %v", err)
	}
	if _, err := s.Next(ctx, sid); err != nil {
		t.Fatalf("next to table: %v", err)
	}
	if _, err := s.SelectTable(ctx, sid, 5); err != nil {
		t.Fatalf("table: %v", err)
	}
	if _, err := s.Next(ctx, sid); err != nil {
		t.Fatalf("next to confirm: %v", err)
	}
}

func seededBackend() *stubReservationBackend {
	b := newStubReservationBackend()
	b.slots["2026-09-01"] = []string{"18:00", "19:00", "20:00"}
	b.slots["2026-09-02"] = []string{"12:00"}
	b.tables["2026-09-01 19:00"] = []int{3, 5, 8}
	b.tables["2026-09-01 20:00"] = []int{1}
	return b
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestWizard_StartsAtStepOne(t *testing.T) {
	s, _ := newTestReservation(seededBackend())
	d, err := s.Draft(context.Background(), sid)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if d.Step != domain.StepDateTime || d.NumPeople != 2 {
		t.Fatalf("fresh draft: %+v", d)
	}
}

func TestWizard_DateChangeResetsTimeAndTable(t *testing.T) {
	s, _ := newTestReservation(seededBackend())
	ctx := context.Background()

	if _, err := s.SelectDate(ctx, sid, "2026-09-01"); err != nil {
		t.Fatalf("date: %v", err)
	}
	if _, err := s.SelectTime(ctx, sid, "19:00"); err != nil {
		t.Fatalf("time: %v", err)
	}
	if _, err := s.SelectTable(ctx, sid, 5); err != nil {
		t.Fatalf("table: %v", err)
	}

	d, err := s.SelectDate(ctx, sid, "2026-09-02")
	if err != nil {
		t.Fatalf("second date: %v", err)
	}
	if d.Time != "" || d.TableNumber != 0 || d.Tables != nil {
		t.Fatalf("dependent selections survived a date change: %+v", d)
	}
	if len(d.TimeSlots) != 1 || d.TimeSlots[0] != "12:00" {
		t.Fatalf("new date's slots not fetched: %v", d.TimeSlots)
	}
}

func TestWizard_TimeChangeResetsTable(t *testing.T) {
	s, _ := newTestReservation(seededBackend())
	ctx := context.Background()

	_, _ = s.SelectDate(ctx, sid, "2026-09-01")
	_, _ = s.SelectTime(ctx, sid, "19:00")
	_, _ = s.SelectTable(ctx, sid, 5)

	d, err := s.SelectTime(ctx, sid, "20:00")
	if err != nil {
		t.Fatalf("time: %v", err)
	}
	if d.TableNumber != 0 {
		t.Fatalf("table survived a time change: %+v", d)
	}
	if len(d.Tables) != 1 || d.Tables[0] != 1 {
		t.Fatalf("new tables not fetched: %v", d.Tables)
	}
}

func TestWizard_NextGating(t *testing.T) {
	s, _ := newTestReservation(seededBackend())
	ctx := context.Background()

	// No date or time yet.
	if _, err := s.Next(ctx, sid); !errors.Is(err, domain.ErrInvalidStep) {
		t.Fatalf("advanced without selections: %v", err)
	}

	_, _ = s.SelectDate(ctx, sid, "2026-09-01")
	_, _ = s.SelectTime(ctx, sid, "19:00")

	// Out-of-range party size blocks.
	if _, err := s.SetPartySize(ctx, sid, 21); err != nil {
		t.Fatalf("party: %v", err)
	}
	if _, err := s.Next(ctx, sid); !errors.Is(err, domain.ErrInvalidStep) {
		t.Fatalf("advanced with party of 21: %v", err)
	}

	if _, err := s.SetPartySize(ctx, sid, 4); err != nil {
		t.Fatalf("party: %v", err)
	}
	d, err := s.Next(ctx, sid)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if d.Step != domain.StepTable {
		t.Fatalf("step: %v", d.Step)
	}

	// No table chosen yet.
	if _, err := s.Next(ctx, sid); !errors.Is(err, domain.ErrInvalidStep) {
		t.Fatalf("advanced without table: %v", err)
	}
}

func TestWizard_BackKeepsLaterSelections(t *testing.T) {
	s, _ := newTestReservation(seededBackend())
	ctx := context.Background()
	walkToConfirm(t, s)

	d, err := s.Back(ctx, sid)
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	if d.Step != domain.StepTable {
		t.Fatalf("step: %v", d.Step)
	}
	if d.TableNumber != 5 || d.Time != "19:00" {
		t.Fatalf("back discarded selections: %+v", d)
	}

	// Back from step one stays at step one.
	_, _ = s.Back(ctx, sid)
	d, _ = s.Back(ctx, sid)
	if d.Step != domain.StepDateTime {
		t.Fatalf("stepped past the first step: %v", d.Step)
	}
}

func TestWizard_ConfirmSubmitsAndClears(t *testing.T) {
	b := seededBackend()
	s, store := newTestReservation(b)
	walkToConfirm(t, s)

	res, err := s.Confirm(context.Background(), sid, 42)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if res.ReservationID != 900 {
		t.Fatalf("reservation: %+v", res)
	}

	in := b.created[0]
	if in.ReservationDateTime != "2026-09-01T19:00:00" {
		t.Fatalf("datetime: %s", in.ReservationDateTime)
	}
	if in.CustomerID != 42 || in.TableNumber != 5 || in.NumPeople != 2 {
		t.Fatalf("input: %+v", in)
	}

	if _, ok := store.drafts[sid]; ok {
		t.Fatalf("draft survived confirm")
	}
}

func TestWizard_ConfirmUnreachableEarly(t *testing.T) {
	s, _ := newTestReservation(seededBackend())
	if _, err := s.Confirm(context.Background(), sid, 42); !errors.Is(err, domain.ErrInvalidStep) {
		t.Fatalf("confirmed from step one: %v", err)
	}
}

func TestWizard_SlotFetchFailureKeepsDate(t *testing.T) {
	b := seededBackend()
	b.slotsErr = errors.New("backend down")
	s, _ := newTestReservation(b)

	d, err := s.SelectDate(context.Background(), sid, "2026-09-01")
	if err == nil {
		t.Fatalf("expected error")
	}
	if d == nil || d.Date != "2026-09-01" {
		t.Fatalf("draft lost on fetch failure: %+v", d)
	}
}

func TestWizard_CancelDelegates(t *testing.T) {
	b := seededBackend()
	s, _ := newTestReservation(b)
	if err := s.Cancel(context.Background(), 77); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if len(b.cancelled) != 1 || b.cancelled[0] != 77 {
		t.Fatalf("cancelled: %v", b.cancelled)
	}
}
