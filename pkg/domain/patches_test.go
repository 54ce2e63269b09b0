package domain

import "testing"

func TestPatchLeavesAbsentFieldsUntouched(t *testing.T) {
	room := Room{Base: Base{ID: "r1"}, RoomNumber: "A-101", Floor: 1, Capacity: 2, Status: StatusActive}
	capacity := 4
	RoomPatch{Capacity: &capacity}.Apply(&room)
	if room.Capacity != 4 || room.RoomNumber != "A-101" || room.Floor != 1 || room.ID != "r1" {
		t.Fatalf("unexpected patched room %+v", room)
	}
}

func TestPersonPatchClearsBloodGroup(t *testing.T) {
	group := "o+"
	p := Person{FirstName: "Ann", BloodGroupID: &group}
	empty := ""
	PersonPatch{BloodGroupID: &empty}.Apply(&p)
	if p.BloodGroupID != nil {
		t.Fatalf("expected cleared blood group")
	}
	next := "a-"
	PersonPatch{BloodGroupID: &next}.Apply(&p)
	if p.BloodGroupID == nil || *p.BloodGroupID != "a-" {
		t.Fatalf("expected blood group set, got %v", p.BloodGroupID)
	}
	if p.FirstName != "Ann" {
		t.Fatalf("expected name untouched")
	}
}

func TestStaffPatchReplacesLists(t *testing.T) {
	s := Staff{SubjectIDs: []string{"a", "b"}}
	subjects := []string{"c"}
	StaffPatch{SubjectIDs: &subjects}.Apply(&s)
	if len(s.SubjectIDs) != 1 || s.SubjectIDs[0] != "c" {
		t.Fatalf("expected replaced subjects, got %v", s.SubjectIDs)
	}
	StaffPatch{}.Apply(&s)
	if len(s.SubjectIDs) != 1 {
		t.Fatalf("expected subjects kept on empty patch")
	}
}
