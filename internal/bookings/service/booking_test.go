package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	bookingserrors "reservations/internal/bookings/errors"
	"reservations/internal/bookings/events"
	"reservations/internal/bookings/metrics"
	"reservations/internal/bookings/repository"
	"reservations/internal/bookings/validator"
	"reservations/pkg/config"
	apperrors "reservations/pkg/errors"
	"reservations/pkg/logger"
	"reservations/pkg/model"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// ────────────────────────────────────────────────
// Test doubles
// ────────────────────────────────────────────────

type recordingPublisher struct {
	mu          sync.Mutex
	events      []events.Event
	publishFunc func(ctx context.Context, event events.Event) error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
	if p.publishFunc != nil {
		return p.publishFunc(ctx, event)
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// failingRepository wraps a repository and injects errors per method.
type failingRepository struct {
	repository.BookingRepository
	findAllFunc func(ctx context.Context) ([]*model.Booking, error)
	createFunc  func(ctx context.Context, booking *model.Booking) error
}

func (r *failingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	if r.findAllFunc != nil {
		return r.findAllFunc(ctx)
	}
	return r.BookingRepository.FindAll(ctx)
}

func (r *failingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if r.createFunc != nil {
		return r.createFunc(ctx, booking)
	}
	return r.BookingRepository.Create(ctx, booking)
}

type fixture struct {
	svc       BookingService
	repo      repository.BookingRepository
	publisher *recordingPublisher
	metrics   *metrics.Metrics
}

func newFixture(t *testing.T, opts ...func(*config.Config)) *fixture {
	t.Helper()

	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:       log,
		MaxGuests: config.DefaultMaxGuests,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	f := &fixture{
		repo:      repository.NewMemoryBookingRepository(),
		publisher: &recordingPublisher{},
		metrics:   metrics.New(nil),
	}
	f.svc = NewBookingService(f.repo, validator.NewBookingValidator(log, validator.Limits{Strict: cfg.StrictValidation, MaxGuests: cfg.MaxGuests}), f.publisher, f.metrics, cfg)
	return f
}

func booking(id int64, name, date, slot string, guests int) *model.Booking {
	return &model.Booking{
		ID:     id,
		Name:   name,
		Date:   model.MustParseDate(date),
		Time:   slot,
		Guests: guests,
	}
}

func update(date, slot string, guests int) *model.BookingUpdate {
	return &model.BookingUpdate{
		Date:   model.MustParseDate(date),
		Time:   slot,
		Guests: guests,
	}
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != want {
		t.Fatalf("expected status %d, got %d (%v)", want, appErr.StatusCode(), err)
	}
}

func assertSlotsDistinct(t *testing.T, svc BookingService) {
	t.Helper()
	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	seen := make(map[model.Slot]int64)
	for _, b := range all {
		if other, ok := seen[b.Slot()]; ok {
			t.Fatalf("slot %s held by bookings %d and %d", b.Slot(), other, b.ID)
		}
		seen[b.Slot()] = b.ID
	}
}

// ────────────────────────────────────────────────
// Scenario
// ────────────────────────────────────────────────

func TestBookingLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, booking(1, "Ann", "2024-06-01", "19:00", 2)); err != nil {
		t.Fatalf("create Ann: %v", err)
	}

	_, err := f.svc.Create(ctx, booking(2, "Bo", "2024-06-01", "19:00", 4))
	if !errors.Is(err, bookingserrors.ErrSlotConflict) {
		t.Fatalf("expected slot conflict for Bo, got %v", err)
	}
	assertStatus(t, err, http.StatusBadRequest)

	moved, err := f.svc.Update(ctx, 1, update("2024-06-01", "20:00", 2))
	if err != nil {
		t.Fatalf("update Ann: %v", err)
	}
	if moved.Time != "20:00" || moved.Name != "Ann" {
		t.Errorf("unexpected updated booking %+v", moved)
	}

	if _, err := f.svc.Create(ctx, booking(2, "Bo", "2024-06-01", "19:00", 4)); err != nil {
		t.Fatalf("create Bo after move: %v", err)
	}

	confirmation, err := f.svc.Delete(ctx, 1)
	if err != nil {
		t.Fatalf("delete Ann: %v", err)
	}
	if confirmation.ID != 1 || confirmation.Message != "Booking 1 deleted successfully" {
		t.Errorf("unexpected confirmation %+v", confirmation)
	}

	_, err = f.svc.GetByID(ctx, 1)
	if !errors.Is(err, bookingserrors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	assertStatus(t, err, http.StatusNotFound)

	all, _ := f.svc.List(ctx)
	if len(all) != 1 || all[0].Name != "Bo" {
		t.Errorf("expected only Bo to remain, got %+v", all)
	}

	want := []string{events.TypeBookingCreated, events.TypeBookingUpdated, events.TypeBookingCreated, events.TypeBookingDeleted}
	got := f.publisher.types()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected events %v, got %v", want, got)
	}
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_ThenGetReturnsBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := booking(5, "  Carla   Rossi ", "2024-07-10", " 12:30 ", 3)
	want := *in

	stored, err := f.svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *stored != want {
		t.Errorf("expected booking stored as submitted %+v, got %+v", want, *stored)
	}
	if *in != want {
		t.Errorf("caller's booking was modified: %+v", *in)
	}

	got, err := f.svc.GetByID(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != want {
		t.Errorf("expected %+v, got %+v", want, *got)
	}
}

func TestCreate_NormalizeNamesOptIn(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) { cfg.NormalizeNames = true })
	ctx := context.Background()

	in := booking(5, "  Carla   Rossi ", "2024-07-10", " 12:30 ", 3)
	stored, err := f.svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Name != "Carla Rossi" {
		t.Errorf("expected normalised name, got %q", stored.Name)
	}
	if stored.Time != " 12:30 " {
		t.Errorf("time must be stored verbatim, got %q", stored.Time)
	}
	if in.Name != "  Carla   Rossi " {
		t.Errorf("caller's booking was modified: %q", in.Name)
	}
}

func TestCreate_TimeTokensComparedVerbatim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i, slot := range []string{"19:00", " 19:00", "19:00 "} {
		if _, err := f.svc.Create(ctx, booking(int64(i+1), "Guest", "2024-06-01", slot, 2)); err != nil {
			t.Fatalf("create %q: %v", slot, err)
		}
	}

	all, _ := f.svc.List(ctx)
	if len(all) != 3 || all[1].Time != " 19:00" {
		t.Errorf("expected three distinct slots stored verbatim, got %+v", all)
	}
	assertSlotsDistinct(t, f.svc)
}

func TestCreate_BoundsOnlyWhenStrict(t *testing.T) {
	inputs := []struct {
		name string
		in   *model.Booking
	}{
		{"zero id", booking(0, "Ann", "2024-06-01", "18:00", 2)},
		{"zero guests", booking(1, "Ann", "2024-06-01", "19:00", 0)},
		{"empty name", booking(2, "", "2024-06-01", "20:00", 2)},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if _, err := f.svc.Create(context.Background(), tt.in.Clone()); err != nil {
				t.Errorf("expected booking accepted by default, got %v", err)
			}

			strict := newFixture(t, func(cfg *config.Config) { cfg.StrictValidation = true })
			_, err := strict.svc.Create(context.Background(), tt.in.Clone())
			assertStatus(t, err, http.StatusUnprocessableEntity)
		})
	}
}

func TestCreate_SlotConflictLeavesStoreUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Create(ctx, booking(1, "Ann", "2024-06-01", "19:00", 2))
	before, _ := f.svc.List(ctx)

	_, err := f.svc.Create(ctx, booking(9, "Zed", "2024-06-01", "19:00", 1))
	if !errors.Is(err, bookingserrors.ErrSlotConflict) {
		t.Fatalf("expected slot conflict, got %v", err)
	}

	after, _ := f.svc.List(ctx)
	if len(after) != len(before) || *after[0] != *before[0] {
		t.Errorf("store changed: before %+v after %+v", before, after)
	}
	if n := len(f.publisher.types()); n != 1 {
		t.Errorf("rejected create must not publish, got %d events", n)
	}
}

func TestCreate_DistinctSlotsSucceed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []*model.Booking{
		booking(1, "Ann", "2024-06-01", "19:00", 2),
		booking(2, "Bo", "2024-06-02", "19:00", 2),
		booking(3, "Cy", "2024-06-01", "19:30", 2),
		booking(4, "Di", "2024-06-01", "7pm", 2),
	}
	for _, b := range tests {
		if _, err := f.svc.Create(ctx, b); err != nil {
			t.Fatalf("create %d: %v", b.ID, err)
		}
	}
	assertSlotsDistinct(t, f.svc)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), &model.Booking{ID: 1, Name: "Ann", Time: "19:00", Guests: 2})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	appErr := apperrors.AsAppError(err)
	if _, ok := appErr.Details["Date"]; !ok {
		t.Errorf("expected Date in details, got %v", appErr.Details)
	}
}

func TestCreate_DuplicateID(t *testing.T) {
	tests := []struct {
		name       string
		unique     bool
		wantStatus int
		wantCount  int
	}{
		{name: "allowed by default", unique: false, wantCount: 2},
		{name: "rejected when guarded", unique: true, wantStatus: http.StatusConflict, wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(cfg *config.Config) { cfg.UniqueBookingIDs = tt.unique })
			ctx := context.Background()

			_, _ = f.svc.Create(ctx, booking(1, "Ann", "2024-06-01", "19:00", 2))
			_, err := f.svc.Create(ctx, booking(1, "Ann again", "2024-06-02", "19:00", 2))

			if tt.wantStatus == 0 && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantStatus != 0 {
				assertStatus(t, err, tt.wantStatus)
				if !errors.Is(err, bookingserrors.ErrDuplicateID) {
					t.Errorf("expected ErrDuplicateID, got %v", err)
				}
			}

			all, _ := f.svc.List(ctx)
			if len(all) != tt.wantCount {
				t.Errorf("expected %d stored bookings, got %d", tt.wantCount, len(all))
			}
		})
	}
}

func TestCreate_DuplicateIDActsOnFirstMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Create(ctx, booking(1, "First", "2024-06-01", "19:00", 2))
	_, _ = f.svc.Create(ctx, booking(1, "Second", "2024-06-02", "19:00", 2))

	got, _ := f.svc.GetByID(ctx, 1)
	if got.Name != "First" {
		t.Errorf("expected first record, got %q", got.Name)
	}

	_, _ = f.svc.Delete(ctx, 1)
	got, err := f.svc.GetByID(ctx, 1)
	if err != nil || got.Name != "Second" {
		t.Errorf("expected only the first record deleted, got %+v, %v", got, err)
	}
}

func TestCreate_BackendFailure(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("disk on fire")
	repo := &failingRepository{
		BookingRepository: f.repo,
		createFunc:        func(ctx context.Context, b *model.Booking) error { return boom },
	}
	log := logger.Discard()
	svc := NewBookingService(repo, validator.NewBookingValidator(log, validator.Limits{}), nil, nil, &config.Config{Log: log})

	_, err := svc.Create(context.Background(), booking(1, "Ann", "2024-06-01", "19:00", 2))
	assertStatus(t, err, http.StatusInternalServerError)
	if !errors.Is(err, boom) {
		t.Errorf("expected cause to be kept, got %v", err)
	}
}

// ────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────

func TestUpdate(t *testing.T) {
	tests := []struct {
		name       string
		id         int64
		update     *model.BookingUpdate
		wantErr    error
		wantStatus int
	}{
		{name: "move to free slot", id: 1, update: update("2024-06-01", "21:00", 2)},
		{name: "keep own slot, change guests", id: 1, update: update("2024-06-01", "19:00", 6)},
		{name: "onto other booking's slot", id: 1, update: update("2024-06-01", "20:00", 2), wantErr: bookingserrors.ErrSlotConflict, wantStatus: http.StatusBadRequest},
		{name: "unknown id", id: 42, update: update("2024-06-05", "19:00", 2), wantErr: bookingserrors.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid update", id: 1, update: update("2024-06-01", "", 2), wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			_, _ = f.svc.Create(ctx, booking(1, "Ann", "2024-06-01", "19:00", 2))
			_, _ = f.svc.Create(ctx, booking(2, "Bo", "2024-06-01", "20:00", 4))
			before, _ := f.svc.List(ctx)

			got, err := f.svc.Update(ctx, tt.id, tt.update)

			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.ID != tt.id || got.Name != "Ann" || got.Slot() != tt.update.Slot() || got.Guests != tt.update.Guests {
					t.Errorf("unexpected result %+v", got)
				}
				assertSlotsDistinct(t, f.svc)
				return
			}

			assertStatus(t, err, tt.wantStatus)
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			after, _ := f.svc.List(ctx)
			for i := range before {
				if *before[i] != *after[i] {
					t.Errorf("booking %d changed on failed update: %+v -> %+v", before[i].ID, before[i], after[i])
				}
			}
		})
	}
}

func TestUpdate_UnknownIDIsNotFoundBeforeValidation(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config) { cfg.StrictValidation = true })
	ctx := context.Background()

	_, err := f.svc.Update(ctx, 99, update("2024-06-01", "", 0))
	if !errors.Is(err, bookingserrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	assertStatus(t, err, http.StatusNotFound)
}

func TestUpdate_RecordsSharingIDDoNotBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Create(ctx, booking(1, "First", "2024-06-01", "18:00", 2))
	_, _ = f.svc.Create(ctx, booking(1, "Second", "2024-06-01", "19:00", 2))
	_, _ = f.svc.Create(ctx, booking(2, "Other", "2024-06-01", "20:00", 2))

	moved, err := f.svc.Update(ctx, 1, update("2024-06-01", "19:00", 3))
	if err != nil {
		t.Fatalf("slot held by a record with the same id must not conflict, got %v", err)
	}
	if moved.Name != "First" || moved.Time != "19:00" {
		t.Errorf("expected the first record moved, got %+v", moved)
	}

	_, err = f.svc.Update(ctx, 1, update("2024-06-01", "20:00", 3))
	if !errors.Is(err, bookingserrors.ErrSlotConflict) {
		t.Errorf("slot held by another id must still conflict, got %v", err)
	}
}

// ────────────────────────────────────────────────
// Delete / Get / List
// ────────────────────────────────────────────────

func TestDelete_UnknownID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.svc.Create(ctx, booking(1, "Ann", "2024-06-01", "19:00", 2))

	_, err := f.svc.Delete(ctx, 2)
	assertStatus(t, err, http.StatusNotFound)

	all, _ := f.svc.List(ctx)
	if len(all) != 1 {
		t.Errorf("expected store unchanged, got %d bookings", len(all))
	}
}

func TestDelete_FreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.svc.Create(ctx, booking(1, "Ann", "2024-06-01", "19:00", 2))
	_, _ = f.svc.Delete(ctx, 1)

	if _, err := f.svc.Create(ctx, booking(2, "Bo", "2024-06-01", "19:00", 2)); err != nil {
		t.Errorf("expected slot to be free after delete, got %v", err)
	}
}

func TestList_InsertionOrderAndIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i, slot := range []string{"21:00", "19:00", "20:00"} {
		_, _ = f.svc.Create(ctx, booking(int64(10-i), "Guest", "2024-06-01", slot, 1))
	}

	first, _ := f.svc.List(ctx)
	second, _ := f.svc.List(ctx)

	wantIDs := []int64{10, 9, 8}
	for i, b := range first {
		if b.ID != wantIDs[i] {
			t.Errorf("position %d: expected id %d, got %d", i, wantIDs[i], b.ID)
		}
		if *b != *second[i] {
			t.Errorf("list not idempotent at %d", i)
		}
	}
}

func TestList_ReturnsCopies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.svc.Create(ctx, booking(1, "Ann", "2024-06-01", "19:00", 2))

	all, _ := f.svc.List(ctx)
	all[0].Time = "23:00"

	got, _ := f.svc.GetByID(ctx, 1)
	if got.Time != "19:00" {
		t.Errorf("caller mutation leaked into store: %+v", got)
	}
}

func TestList_BackendFailure(t *testing.T) {
	f := newFixture(t)
	repo := &failingRepository{
		BookingRepository: f.repo,
		findAllFunc: func(ctx context.Context) ([]*model.Booking, error) {
			return nil, errors.New("connection reset")
		},
	}
	log := logger.Discard()
	svc := NewBookingService(repo, validator.NewBookingValidator(log, validator.Limits{}), nil, nil, &config.Config{Log: log})

	_, err := svc.List(context.Background())
	assertStatus(t, err, http.StatusInternalServerError)
}

// ────────────────────────────────────────────────
// Events and metrics
// ────────────────────────────────────────────────

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.publisher.publishFunc = func(ctx context.Context, event events.Event) error {
		return errors.New("broker down")
	}

	if _, err := f.svc.Create(context.Background(), booking(1, "Ann", "2024-06-01", "19:00", 2)); err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
}

func TestCreate_SlowPublisherDoesNotDelayResponse(t *testing.T) {
	release := make(chan struct{})
	slow := &recordingPublisher{publishFunc: func(ctx context.Context, event events.Event) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return ctx.Err()
	}}
	publisher := events.NewAsyncPublisher(slow, 50*time.Millisecond, logger.Discard())

	log := logger.Discard()
	repo := repository.NewMemoryBookingRepository()
	svc := NewBookingService(repo, validator.NewBookingValidator(log, validator.Limits{}), publisher, nil, &config.Config{Log: log})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Create(ctx, booking(1, "Ann", "2024-06-01", "19:00", 2))
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected create to succeed, got %v", err)
		}
	case <-ctx.Done():
		t.Fatal("create waited on the broker past the request deadline")
	}

	close(release)
	if err := publisher.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if got := slow.types(); len(got) != 1 || got[0] != events.TypeBookingCreated {
		t.Errorf("expected one created event, got %v", got)
	}
}

func TestMetrics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Create(ctx, booking(1, "Ann", "2024-06-01", "19:00", 2))
	_, _ = f.svc.Create(ctx, booking(2, "Bo", "2024-06-01", "19:00", 2))
	_, _ = f.svc.GetByID(ctx, 3)

	ops := f.metrics.Operations()
	checks := []struct {
		op, result string
		want       float64
	}{
		{metrics.OpCreate, metrics.ResultSuccess, 1},
		{metrics.OpCreate, metrics.ResultConflict, 1},
		{metrics.OpGet, metrics.ResultNotFound, 1},
	}
	for _, c := range checks {
		if got := testutil.ToFloat64(ops.WithLabelValues(c.op, c.result)); got != c.want {
			t.Errorf("%s/%s: expected %v, got %v", c.op, c.result, c.want, got)
		}
	}
	if got := testutil.ToFloat64(f.metrics.Stored()); got != 1 {
		t.Errorf("expected 1 stored booking, got %v", got)
	}
}

// ────────────────────────────────────────────────
// Concurrency
// ────────────────────────────────────────────────

func TestCreate_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := f.svc.Create(ctx, booking(id, "Racer", "2024-06-01", "19:00", 1))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else if !errors.Is(err, bookingserrors.ErrSlotConflict) {
				t.Errorf("unexpected error: %v", err)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	if succeeded != 1 {
		t.Errorf("expected exactly one winner, got %d", succeeded)
	}
	assertSlotsDistinct(t, f.svc)
}

func TestMixedOperations_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	slots := []string{"18:00", "19:00", "20:00", "21:00"}
	for i, slot := range slots {
		_, _ = f.svc.Create(ctx, booking(int64(i+1), "Seed", "2024-06-01", slot, 2))
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			_, _ = f.svc.Update(ctx, int64(i%4+1), update("2024-06-01", slots[(i+1)%4], 3))
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = f.svc.Create(ctx, booking(int64(100+i), "New", "2024-06-0"+fmt.Sprint(i%3+1), slots[i%4], 2))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = f.svc.List(ctx)
		}()
	}
	wg.Wait()

	assertSlotsDistinct(t, f.svc)
}
