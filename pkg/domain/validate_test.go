package domain

import "testing"

// lookupView serves the handful of reads the validators below perform.
type lookupView struct {
	TransactionView
	lookups  map[string]Lookup
	rooms    []Room
	students []Student
}

func (v lookupView) FindLookup(id string) (Lookup, bool) {
	l, ok := v.lookups[id]
	return l, ok
}

func (v lookupView) ListRooms() []Room { return v.rooms }

func (v lookupView) ListStudents() []Student { return v.students }

func (v lookupView) FindGuardian(id string) (Guardian, bool) {
	return Guardian{Base: Base{ID: id}}, id == "g1"
}

func (v lookupView) FindAcademicClass(id string) (AcademicClass, bool) {
	return AcademicClass{Base: Base{ID: id}}, id == "ac1"
}

func newLookupView() lookupView {
	return lookupView{lookups: map[string]Lookup{
		"cat":    {Base: Base{ID: "cat"}, Kind: LookupPersonCategory, Code: "staff"},
		"male":   {Base: Base{ID: "male"}, Kind: LookupGender},
		"o+":     {Base: Base{ID: "o+"}, Kind: LookupBloodGroup},
		"design": {Base: Base{ID: "design"}, Kind: LookupDesignation, Category: DesignationTeaching},
	}}
}

func TestRequireLookup(t *testing.T) {
	view := newLookupView()
	if _, err := RequireLookup(view, "", LookupGender, EntityPerson, "genderId"); KindOf(err) != KindValidation {
		t.Fatalf("expected required error, got %v", err)
	}
	if _, err := RequireLookup(view, "nope", LookupGender, EntityPerson, "genderId"); KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := RequireLookup(view, "o+", LookupGender, EntityPerson, "genderId"); KindOf(err) != KindValidation {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
	if l, err := RequireLookup(view, "male", LookupGender, EntityPerson, "genderId"); err != nil || l.ID != "male" {
		t.Fatalf("expected lookup, got %+v %v", l, err)
	}
}

func TestValidatePersonDefaultsAndReferences(t *testing.T) {
	view := newLookupView()
	p := Person{FirstName: "Ann", PersonCategoryID: "cat", GenderID: "male"}
	if err := ValidatePerson(view, &p); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if p.Status != StatusActive {
		t.Fatalf("expected default status, got %q", p.Status)
	}
	bad := "male"
	p.BloodGroupID = &bad
	if err := ValidatePerson(view, &p); KindOf(err) != KindValidation {
		t.Fatalf("expected blood group kind mismatch, got %v", err)
	}
	p.BloodGroupID = nil
	p.Status = "retired"
	if err := ValidatePerson(view, &p); KindOf(err) != KindValidation {
		t.Fatalf("expected unknown status error, got %v", err)
	}
}

func TestValidateLookupDesignationCategory(t *testing.T) {
	l := Lookup{Kind: LookupDesignation, Name: "Warden"}
	if err := ValidateLookup(nil, &l); KindOf(err) != KindValidation {
		t.Fatalf("expected category error, got %v", err)
	}
	l.Category = DesignationNonTeaching
	if err := ValidateLookup(nil, &l); err != nil {
		t.Fatalf("validate: %v", err)
	}
	unknown := Lookup{Kind: "colour", Name: "red"}
	if err := ValidateLookup(nil, &unknown); KindOf(err) != KindValidation {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestValidateRoomUniqueCaseInsensitive(t *testing.T) {
	view := lookupView{rooms: []Room{{Base: Base{ID: "r1"}, RoomNumber: "A-101", Capacity: 2}}}
	dup := Room{RoomNumber: "a-101", Capacity: 1}
	if err := ValidateRoom(view, &dup); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	self := Room{Base: Base{ID: "r1"}, RoomNumber: "A-101", Capacity: 3}
	if err := ValidateRoom(view, &self); err != nil {
		t.Fatalf("expected self update allowed, got %v", err)
	}
	zero := Room{RoomNumber: "B", Capacity: 0}
	if err := ValidateRoom(view, &zero); KindOf(err) != KindValidation {
		t.Fatalf("expected capacity error, got %v", err)
	}
}

func TestValidateStudent(t *testing.T) {
	view := lookupView{students: []Student{{Base: Base{ID: "s1"}, AdmissionNumber: "ADM-1"}}}
	st := Student{FirstName: "Tom", AdmissionNumber: "ADM-2", GuardianID: "g1", AcademicClassID: "ac1"}
	if err := ValidateStudent(view, &st); err != nil {
		t.Fatalf("validate: %v", err)
	}
	room := "r1"
	half := st
	half.RoomID = &room
	if err := ValidateStudent(view, &half); KindOf(err) != KindValidation {
		t.Fatalf("expected pairing error, got %v", err)
	}
	dup := st
	dup.AdmissionNumber = "adm-1"
	if err := ValidateStudent(view, &dup); KindOf(err) != KindConflict {
		t.Fatalf("expected admission conflict, got %v", err)
	}
	orphan := st
	orphan.GuardianID = "g2"
	if err := ValidateStudent(view, &orphan); KindOf(err) != KindNotFound {
		t.Fatalf("expected guardian not found, got %v", err)
	}
}

func TestDedupeKeepsOrder(t *testing.T) {
	got := dedupe([]string{"b", "a", "b", "c", "a"})
	if len(got) != 3 || got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Fatalf("unexpected dedupe result %v", got)
	}
}
