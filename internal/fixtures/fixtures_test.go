package fixtures

import (
	"context"
	"testing"

	"hostelcore/internal/core"
	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/internal/query"
	"hostelcore/pkg/domain"
)

func TestDefaultSeedApplies(t *testing.T) {
	ctx := context.Background()
	seed, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	store := memory.NewStore(core.NewDefaultRulesEngine())
	applied, err := Apply(ctx, store, seed)
	if err != nil || !applied {
		t.Fatalf("apply: %v %v", applied, err)
	}

	svc := core.NewService(store)
	student, err := svc.GetStudent(ctx, "stu-brian")
	if err != nil {
		t.Fatalf("get student: %v", err)
	}
	if student.Room == nil || student.Room.ID != "room-a101" || student.Bed == nil || student.Bed.ID != "bed-a101-1" {
		t.Fatalf("expected seeded assignment, got %+v", student)
	}
	room, err := svc.GetRoom(ctx, "room-a101")
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	if room.Occupancy.Occupied != 2 || room.Occupancy.Available != 1 {
		t.Fatalf("unexpected occupancy %+v", room.Occupancy)
	}
	bed, err := svc.GetBed(ctx, "bed-a102-2")
	if err != nil || bed.Status != domain.BedMaintenance {
		t.Fatalf("expected maintenance bed, got %+v %v", bed, err)
	}
	teachers, err := svc.ListStaff(ctx, core.StaffFilter{Kind: domain.StaffTeacher}, query.DefaultPage, query.DefaultLimit)
	if err != nil || teachers.Total != 2 {
		t.Fatalf("expected two teachers, got %+v %v", teachers, err)
	}
}

func TestApplySkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	seed, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	store := memory.NewStore(nil)
	if _, err := Apply(ctx, store, seed); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	rev := store.Revision()
	applied, err := Apply(ctx, store, seed)
	if err != nil || applied {
		t.Fatalf("second apply should be skipped: %v %v", applied, err)
	}
	if store.Revision() != rev {
		t.Fatalf("skipped apply must not commit")
	}
}

func TestApplyRollsBackOnInvalidData(t *testing.T) {
	ctx := context.Background()
	seed, err := Parse([]byte(`
guardians:
  - {id: g-1, name: Grace}
students:
  - {id: s-1, firstName: Alan, admissionNumber: A-1, guardianId: g-1, academicClassId: missing}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	store := memory.NewStore(nil)
	if _, err := Apply(ctx, store, seed); domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
	if store.Revision() != 0 {
		t.Fatalf("failed apply must not commit")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("rooms:\n  - {id: r, roomNumber: A, capacity: 1, colour: red}\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
