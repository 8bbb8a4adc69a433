package appointment

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/dental-scheduler/internal/lock"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
	"github.com/BruksfildServices01/dental-scheduler/internal/scheduling"
)

type fixture struct {
	store      *repository.MemoryStore
	scheduler  *scheduling.Scheduler
	create     *CreateAppointment
	reschedule *RescheduleAppointment
	status     *ChangeStatus
	remove     *DeleteAppointment
	list       *ListAppointments
	slots      *GetSlots
	patientID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repository.NewMemoryStore()
	sched := scheduling.New(scheduling.DefaultHours(), store)
	locker := lock.NewLocal()

	p := &models.Patient{FirstName: "Nadia", LastName: "Berrada"}
	if err := store.CreatePatient(context.Background(), 2024, p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}

	return &fixture{
		store:      store,
		scheduler:  sched,
		create:     NewCreateAppointment(store, sched, locker, nil, nil),
		reschedule: NewRescheduleAppointment(store, sched, locker, nil, nil),
		status:     NewChangeStatus(store, sched, locker, nil, nil),
		remove:     NewDeleteAppointment(store, nil),
		list:       NewListAppointments(store),
		slots:      NewGetSlots(sched, nil),
		patientID:  p.ID,
	}
}

func (f *fixture) book(t *testing.T, date, clock, room string, duration int) *models.Appointment {
	t.Helper()
	ap, err := f.create.Execute(context.Background(), CreateAppointmentInput{
		PatientID: f.patientID,
		Type:      "Consultation",
		Date:      date,
		Time:      clock,
		Room:      room,
		Duration:  duration,
	})
	if err != nil {
		t.Fatalf("book %s %s room %s: %v", date, clock, room, err)
	}
	return ap
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func TestCreateAppointment_Success(t *testing.T) {
	f := newFixture(t)

	ap := f.book(t, "2024-06-01", "09:00", "1", 60)

	if ap.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}
	if ap.Status != string(domain.StatusConfirmed) {
		t.Fatalf("status = %q, want Confirmé", ap.Status)
	}
	if ap.PatientName != "Nadia Berrada" {
		t.Fatalf("patient name = %q", ap.PatientName)
	}
}

func TestCreateAppointment_OverlapRejected(t *testing.T) {
	f := newFixture(t)
	f.book(t, "2024-06-01", "09:00", "1", 60)

	_, err := f.create.Execute(context.Background(), CreateAppointmentInput{
		PatientID: f.patientID, Date: "2024-06-01", Time: "09:30", Room: "1", Duration: 30,
	})
	if !errors.Is(err, domain.ErrTimeConflict) {
		t.Fatalf("err = %v, want time_conflict", err)
	}

	// back-to-back and the other room are fine
	f.book(t, "2024-06-01", "10:00", "1", 30)
	f.book(t, "2024-06-01", "09:30", "2", 30)
}

func TestCreateAppointment_RechecksBeforeCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	listing, err := f.slots.Execute(ctx, domain.SlotQuery{Date: "2024-06-01", Room: "1", Duration: 30})
	if err != nil {
		t.Fatalf("GetSlots: %v", err)
	}
	if !listing.Slots[2].Available || listing.Slots[2].Time != "09:00" {
		t.Fatalf("09:00 should be listed available, got %+v", listing.Slots[2])
	}

	// someone else takes the slot after the list was rendered
	f.book(t, "2024-06-01", "09:00", "1", 30)

	_, err = f.create.Execute(ctx, CreateAppointmentInput{
		PatientID: f.patientID, Date: "2024-06-01", Time: "09:00", Room: "1", Duration: 30,
	})
	if !errors.Is(err, domain.ErrTimeConflict) {
		t.Fatalf("stale listing must not allow double booking, err = %v", err)
	}
}

func TestCreateAppointment_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	success, conflicts := 0, 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.create.Execute(context.Background(), CreateAppointmentInput{
				PatientID: f.patientID, Date: "2024-06-01", Time: "11:00", Room: "2", Duration: 30,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, domain.ErrTimeConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if success != 1 || conflicts != 9 {
		t.Fatalf("success=%d conflicts=%d, want 1 and 9", success, conflicts)
	}
}

func TestCreateAppointment_Validation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		in   CreateAppointmentInput
		want error
	}{
		{"unknown patient", CreateAppointmentInput{PatientID: "99/2024", Date: "2024-06-01", Time: "09:00", Room: "1", Duration: 30}, domain.ErrPatientNotFound},
		{"unknown room", CreateAppointmentInput{PatientID: f.patientID, Date: "2024-06-01", Time: "09:00", Room: "3", Duration: 30}, domain.ErrInvalidRoom},
		{"off grid", CreateAppointmentInput{PatientID: f.patientID, Date: "2024-06-01", Time: "09:15", Room: "1", Duration: 30}, domain.ErrInvalidSlot},
		{"before opening", CreateAppointmentInput{PatientID: f.patientID, Date: "2024-06-01", Time: "07:30", Room: "1", Duration: 30}, domain.ErrInvalidSlot},
		{"bad date", CreateAppointmentInput{PatientID: f.patientID, Date: "01/06/2024", Time: "09:00", Room: "1", Duration: 30}, domain.ErrInvalidSlot},
		{"no duration", CreateAppointmentInput{PatientID: f.patientID, Date: "2024-06-01", Time: "09:00", Room: "1"}, domain.ErrInvalidSlot},
	}
	for _, tc := range cases {
		_, err := f.create.Execute(context.Background(), tc.in)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestCreateAppointment_DurationPastMidnightRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booked := f.book(t, "2024-06-01", "10:00", "1", 30)

	_, err := f.create.Execute(ctx, CreateAppointmentInput{
		PatientID: f.patientID, Date: "2024-06-01", Time: "09:00", Room: "1", Duration: math.MaxInt,
	})
	if !errors.Is(err, domain.ErrInvalidSlot) {
		t.Fatalf("err = %v, want invalid_slot", err)
	}

	_, err = f.reschedule.Execute(ctx, booked.ID, RescheduleAppointmentInput{Duration: math.MaxInt})
	if !errors.Is(err, domain.ErrInvalidSlot) {
		t.Fatalf("reschedule err = %v, want invalid_slot", err)
	}

	all, err := f.list.Execute(ctx, domain.Filter{Date: "2024-06-01"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].Duration != 30 {
		t.Fatalf("store changed: %+v", all)
	}

	ok, err := f.scheduler.IsAvailable(ctx, "2024-06-01", "10:00", "1", 30, 0)
	if err != nil || ok {
		t.Fatalf("10:00 must stay taken, ok=%v err=%v", ok, err)
	}
}

// --------------------------------------------------
// Reschedule
// --------------------------------------------------

func TestReschedule_SelfExclusion(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "2024-06-01", "10:00", "1", 30)

	notes := "bring x-rays"
	got, err := f.reschedule.Execute(context.Background(), ap.ID, RescheduleAppointmentInput{Notes: &notes})
	if err != nil {
		t.Fatalf("editing in place must not conflict with itself: %v", err)
	}
	if got.Notes != notes || got.Time != "10:00" {
		t.Fatalf("unexpected result %+v", got)
	}

	// extending over its own previous interval is also fine
	got, err = f.reschedule.Execute(context.Background(), ap.ID, RescheduleAppointmentInput{Time: "09:30", Duration: 60})
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if got.Time != "09:30" || got.Duration != 60 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestReschedule_Conflict(t *testing.T) {
	f := newFixture(t)
	f.book(t, "2024-06-01", "09:00", "1", 60)
	ap := f.book(t, "2024-06-01", "09:00", "2", 30)

	_, err := f.reschedule.Execute(context.Background(), ap.ID, RescheduleAppointmentInput{Room: "1", Time: "09:30"})
	if !errors.Is(err, domain.ErrTimeConflict) {
		t.Fatalf("err = %v, want time_conflict", err)
	}

	stored, _ := f.store.GetAppointment(context.Background(), ap.ID)
	if stored.Room != "2" || stored.Time != "09:00" {
		t.Fatalf("failed reschedule must not change the row: %+v", stored)
	}
}

func TestReschedule_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.reschedule.Execute(context.Background(), 404, RescheduleAppointmentInput{Time: "09:00"})
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("err = %v", err)
	}
}

// --------------------------------------------------
// Status
// --------------------------------------------------

func TestChangeStatus_CancelFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.book(t, "2024-06-01", "11:00", "1", 30)

	got, err := f.status.Execute(ctx, ap.ID, "Annulé", "  patient sick ")
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if got.Status != "Annulé" || got.StatusReason != "patient sick" {
		t.Fatalf("unexpected %+v", got)
	}
	if got.Time != "11:00" || got.Duration != 30 {
		t.Fatalf("status change touched the interval: %+v", got)
	}

	f.book(t, "2024-06-01", "11:00", "1", 30)
}

func TestChangeStatus_ReasonOnlyForCancelledAndAbsent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.book(t, "2024-06-01", "14:00", "2", 30)

	got, err := f.status.Execute(ctx, ap.ID, "Absent", "no show")
	if err != nil || got.StatusReason != "no show" {
		t.Fatalf("Absent: %+v, %v", got, err)
	}

	got, err = f.status.Execute(ctx, ap.ID, "Terminé", "ignored")
	if err != nil {
		t.Fatalf("Terminé: %v", err)
	}
	if got.StatusReason != "" {
		t.Fatalf("reason must be cleared, got %q", got.StatusReason)
	}

	if _, err := f.status.Execute(ctx, ap.ID, "Reporté", ""); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("err = %v, want invalid_status", err)
	}
}

func TestChangeStatus_ReactivationRechecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cancelled := f.book(t, "2024-06-01", "15:00", "1", 30)
	if _, err := f.status.Execute(ctx, cancelled.ID, "Annulé", ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	f.book(t, "2024-06-01", "15:00", "1", 30)

	if _, err := f.status.Execute(ctx, cancelled.ID, "Confirmé", ""); !errors.Is(err, domain.ErrTimeConflict) {
		t.Fatalf("err = %v, want time_conflict", err)
	}

	other := f.book(t, "2024-06-01", "16:00", "1", 30)
	if _, err := f.status.Execute(ctx, other.ID, "Annulé", ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.status.Execute(ctx, other.ID, "Confirmé", ""); err != nil {
		t.Fatalf("reactivating a free slot: %v", err)
	}
}

// interleavingStore runs before once, right after the first unlocked read,
// and hands the caller the copy taken before it ran.
type interleavingStore struct {
	*repository.MemoryStore
	before func()
}

func (s *interleavingStore) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, err := s.MemoryStore.GetAppointment(ctx, id)
	if err != nil || s.before == nil {
		return ap, err
	}
	run := s.before
	s.before = nil
	run()
	return ap, nil
}

func assertNoOverlap(t *testing.T, f *fixture, date, room string) {
	t.Helper()
	apps, err := f.store.ListByDateAndRoom(context.Background(), date, room)
	if err != nil {
		t.Fatalf("ListByDateAndRoom: %v", err)
	}
	for i, ap := range apps {
		start := scheduling.MustParseClock(ap.Time)
		if !scheduling.IsFree(scheduling.NewInterval(start, ap.Duration), apps[i+1:], 0) {
			t.Fatalf("overlapping active appointments in room %s: %+v", room, apps)
		}
	}
}

func TestChangeStatus_KeepsConcurrentReschedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "2024-06-01", "09:00", "1", 30)

	store := &interleavingStore{MemoryStore: f.store}
	store.before = func() {
		if _, err := f.reschedule.Execute(ctx, a.ID, RescheduleAppointmentInput{Time: "10:00"}); err != nil {
			t.Errorf("reschedule: %v", err)
		}
		f.book(t, "2024-06-01", "09:00", "1", 30)
	}
	uc := NewChangeStatus(store, f.scheduler, lock.NewLocal(), nil, nil)

	got, err := uc.Execute(ctx, a.ID, "Terminé", "")
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if got.Time != "10:00" || got.Status != "Terminé" {
		t.Fatalf("status change returned %+v", got)
	}

	stored, err := f.store.GetAppointment(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if stored.Time != "10:00" || stored.Status != "Terminé" {
		t.Fatalf("reschedule undone: %+v", stored)
	}
	assertNoOverlap(t, f, "2024-06-01", "1")
}

func TestChangeStatus_FollowsAppointmentToNewRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "2024-06-01", "09:00", "1", 30)

	store := &interleavingStore{MemoryStore: f.store}
	store.before = func() {
		if _, err := f.reschedule.Execute(ctx, a.ID, RescheduleAppointmentInput{Room: "2"}); err != nil {
			t.Errorf("reschedule: %v", err)
		}
	}
	uc := NewChangeStatus(store, f.scheduler, lock.NewLocal(), nil, nil)

	got, err := uc.Execute(ctx, a.ID, "Absent", "no show")
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if got.Room != "2" || got.Status != "Absent" || got.StatusReason != "no show" {
		t.Fatalf("unexpected %+v", got)
	}
}

// --------------------------------------------------
// Delete / List
// --------------------------------------------------

func TestDeleteAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.book(t, "2024-06-01", "09:00", "1", 30)

	if err := f.remove.Execute(ctx, ap.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.list.Get(ctx, ap.ID); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("err = %v", err)
	}
	if err := f.remove.Execute(ctx, ap.ID); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("second delete err = %v", err)
	}

	f.book(t, "2024-06-01", "09:00", "1", 30)
}

func TestListAppointments(t *testing.T) {
	f := newFixture(t)
	f.book(t, "2024-06-01", "14:00", "1", 45)
	f.book(t, "2024-06-02", "09:00", "1", 30)
	f.book(t, "2024-06-01", "08:00", "2", 30)

	got, err := f.list.Execute(context.Background(), domain.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"2024-06-02 09:00", "2024-06-01 08:00", "2024-06-01 14:00"}
	for i, ap := range got {
		if ap.Date+" "+ap.Time != want[i] {
			t.Fatalf("position %d = %s %s, want %s", i, ap.Date, ap.Time, want[i])
		}
	}
	if got[2].EndTime != "14:45" {
		t.Fatalf("end time = %q", got[2].EndTime)
	}

	byRoom, _ := f.list.Execute(context.Background(), domain.Filter{Room: "2"})
	if len(byRoom) != 1 {
		t.Fatalf("room filter: %d results", len(byRoom))
	}
}

// --------------------------------------------------
// Slots / rooms
// --------------------------------------------------

func TestGetSlots_CheckAndEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.book(t, "2024-06-01", "10:00", "1", 30)

	q := domain.SlotQuery{Date: "2024-06-01", Room: "1", Duration: 30}
	if ok, _ := f.slots.Check(ctx, q, "10:00"); ok {
		t.Fatalf("10:00 should be taken")
	}

	q.ExcludeID = ap.ID
	if ok, _ := f.slots.Check(ctx, q, "10:00"); !ok {
		t.Fatalf("10:00 should be free while editing its own appointment")
	}

	if len(f.slots.Grid()) != 21 {
		t.Fatalf("grid size = %d", len(f.slots.Grid()))
	}

	empty, err := f.slots.Execute(ctx, domain.SlotQuery{Room: "1", Duration: 30})
	if err != nil || len(empty.Slots) != 0 {
		t.Fatalf("missing date: %+v, %v", empty, err)
	}
}

func TestRoomStatus(t *testing.T) {
	f := newFixture(t)
	f.book(t, "2024-06-01", "09:00", "1", 30)
	f.book(t, "2024-06-01", "11:00", "1", 30)
	cancelled := f.book(t, "2024-06-01", "12:00", "2", 30)
	if _, err := f.status.Execute(context.Background(), cancelled.ID, "Annulé", ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	uc := NewRoomStatus(f.store, scheduling.DefaultHours(), "UTC")
	uc.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

	got, err := uc.Execute(context.Background(), "")
	if err != nil {
		t.Fatalf("RoomStatus: %v", err)
	}
	if got.Date != "2024-06-01" || len(got.Rooms) != 2 {
		t.Fatalf("unexpected %+v", got)
	}
	if got.Rooms[0].Appointments != 2 || got.Rooms[0].Next != "11:00" {
		t.Fatalf("room 1 = %+v", got.Rooms[0])
	}
	if got.Rooms[1].Appointments != 0 || got.Rooms[1].Next != "" {
		t.Fatalf("room 2 = %+v", got.Rooms[1])
	}

	other, _ := uc.Execute(context.Background(), "2024-05-31")
	if other.Rooms[0].Appointments != 0 {
		t.Fatalf("other date = %+v", other.Rooms[0])
	}

	if _, err := uc.Execute(context.Background(), "tomorrow"); !errors.Is(err, domain.ErrInvalidSlot) {
		t.Fatalf("err = %v", err)
	}
}
