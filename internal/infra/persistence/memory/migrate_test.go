package memory

import (
	"strings"
	"testing"

	"hostelcore/pkg/domain"
)

func strPtr(s string) *string { return &s }

func TestMigrateSnapshotDropsDanglingRows(t *testing.T) {
	snapshot := Snapshot{
		PackageTypes: []domain.PackageType{{Base: domain.Base{ID: "pt1"}, Name: "Full"}},
		Packages:     []domain.BoardingPackage{{Base: domain.Base{ID: "bp1"}, Name: "Term", PackageTypeID: "pt1"}},
		MenuItems:    []domain.BoardingMenuItem{{Base: domain.Base{ID: "bmi1"}, Name: "Rice"}},
		MealTypes:    []domain.BoardingMealType{{Base: domain.Base{ID: "bmt1"}, Name: "Lunch"}},
		PackageMenuItems: []domain.BoardingPackageMenuItem{
			{Base: domain.Base{ID: "bpmi1"}, PackageID: "bp1", MenuItemID: "bmi1", MealTypeID: "bmt1"},
			{Base: domain.Base{ID: "bpmi2"}, PackageID: "bp1", MenuItemID: "gone", MealTypeID: "bmt1"},
		},
		MealPackages: []domain.MealPackage{{
			Base:      domain.Base{ID: "mp1"},
			PackageID: "bp1",
			Meals: []domain.Meal{
				{ID: "meal1", MenuItemID: "bmi1", MealTypeID: "bmt1"},
				{ID: "meal2", MenuItemID: "bmi1", MealTypeID: "gone"},
			},
		}},
		Lookups: []domain.Lookup{
			{Base: domain.Base{ID: "lk1"}, Kind: domain.LookupSubject, Name: "Maths"},
			{Base: domain.Base{ID: "lk-cat"}, Kind: domain.LookupPersonCategory, Name: "Staff", Code: "staff"},
			{Base: domain.Base{ID: "lk-des"}, Kind: domain.LookupDesignation, Name: "Teacher", Category: domain.DesignationTeaching},
		},
		Persons: []domain.Person{{Base: domain.Base{ID: "p1"}, FirstName: "Ada", PersonCategoryID: "lk-cat"}},
		Staff: []domain.Staff{{
			Base:          domain.Base{ID: "t1"},
			PersonStaffID: "p1",
			DesignationID: "lk-des",
			SubjectIDs:    []string{"lk1", "lk-missing", "lk-des"},
		}},
		Beds:            []domain.Bed{{Base: domain.Base{ID: "b1"}, RoomID: "missing-room", BedNumber: "1"}},
		Guardians:       []domain.Guardian{{Base: domain.Base{ID: "g1"}, Name: "Grace"}},
		AcademicClasses: []domain.AcademicClass{{Base: domain.Base{ID: "c1"}, Name: "Grade 5"}},
		Students: []domain.Student{
			{Base: domain.Base{ID: "s1"}, FirstName: "A", GuardianID: "g1", AcademicClassID: "c1"},
			{Base: domain.Base{ID: "s1"}, FirstName: "duplicate", GuardianID: "g1", AcademicClassID: "c1"},
		},
	}

	got := migrateSnapshot(snapshot)

	if len(got.PackageMenuItems) != 1 || got.PackageMenuItems[0].ID != "bpmi1" {
		t.Fatalf("expected dangling menu row dropped, got %+v", got.PackageMenuItems)
	}
	if got.PackageMenuItems[0].Status != domain.StatusActive {
		t.Fatalf("expected default status, got %q", got.PackageMenuItems[0].Status)
	}
	if meals := got.MealPackages[0].Meals; len(meals) != 1 || meals[0].ID != "meal1" {
		t.Fatalf("expected dangling meal dropped, got %+v", meals)
	}
	if subjects := got.Staff[0].SubjectIDs; len(subjects) != 1 || subjects[0] != "lk1" {
		t.Fatalf("expected unknown and non-subject lookups dropped, got %+v", subjects)
	}
	if len(got.Beds) != 0 {
		t.Fatalf("expected orphan bed dropped, got %+v", got.Beds)
	}
	if len(got.Students) != 1 || got.Students[0].FirstName != "A" {
		t.Fatalf("expected duplicate id dropped, got %+v", got.Students)
	}
}

func TestMigrateSnapshotReconcilesOccupancy(t *testing.T) {
	snapshot := Snapshot{
		Rooms: []domain.Room{{Base: domain.Base{ID: "r1"}, RoomNumber: "1", Capacity: 3}},
		Beds: []domain.Bed{
			{Base: domain.Base{ID: "b1"}, RoomID: "r1", BedNumber: "1", StudentID: strPtr("s1")},
			{Base: domain.Base{ID: "b2"}, RoomID: "r1", BedNumber: "2", Status: domain.BedOccupied},
			{Base: domain.Base{ID: "b3"}, RoomID: "r1", BedNumber: "3", StudentID: strPtr("s2")},
		},
		Guardians:       []domain.Guardian{{Base: domain.Base{ID: "g1"}}},
		AcademicClasses: []domain.AcademicClass{{Base: domain.Base{ID: "c1"}}},
		Students: []domain.Student{
			{Base: domain.Base{ID: "s1"}, GuardianID: "g1", AcademicClassID: "c1", BedID: strPtr("b1")},
			{Base: domain.Base{ID: "s2"}, GuardianID: "g1", AcademicClassID: "c1"},
			{Base: domain.Base{ID: "s3"}, GuardianID: "g1", AcademicClassID: "c1", RoomID: strPtr("r1"), BedID: strPtr("b2")},
		},
	}

	got := migrateSnapshot(snapshot)
	beds := map[string]domain.Bed{}
	for _, b := range got.Beds {
		beds[b.ID] = b
	}
	students := map[string]domain.Student{}
	for _, s := range got.Students {
		students[s.ID] = s
	}

	if b := beds["b1"]; b.Status != domain.BedOccupied || b.StudentID == nil || *b.StudentID != "s1" {
		t.Fatalf("expected b1 occupied by s1, got %+v", b)
	}
	if s := students["s1"]; s.RoomID == nil || *s.RoomID != "r1" {
		t.Fatalf("expected s1 room derived from bed, got %+v", s)
	}
	if b := beds["b2"]; b.Status != domain.BedAvailable || b.StudentID != nil {
		t.Fatalf("expected b2 available, got %+v", b)
	}
	if s := students["s3"]; s.BedID != nil || s.RoomID != nil {
		t.Fatalf("expected s3 released, got %+v", s)
	}
	if b := beds["b3"]; b.StudentID != nil || b.Status != domain.BedAvailable {
		t.Fatalf("expected one-sided claim on b3 cleared, got %+v", b)
	}
}

func TestMigrateSnapshotDropsRowsWithMissingParents(t *testing.T) {
	snapshot := Snapshot{
		PackageTypes: []domain.PackageType{{Base: domain.Base{ID: "pt1"}}},
		Packages: []domain.BoardingPackage{
			{Base: domain.Base{ID: "bp1"}, PackageTypeID: "pt1"},
			{Base: domain.Base{ID: "bp2"}, PackageTypeID: "pt-gone"},
		},
		MealPackages: []domain.MealPackage{
			{Base: domain.Base{ID: "mp1"}, PackageID: "bp1"},
			{Base: domain.Base{ID: "mp2"}, PackageID: "bp2"},
		},
		Lookups: []domain.Lookup{
			{Base: domain.Base{ID: "cat"}, Kind: domain.LookupPersonCategory, Code: "staff"},
			{Base: domain.Base{ID: "des"}, Kind: domain.LookupDesignation, Category: domain.DesignationTeaching},
			{Base: domain.Base{ID: "subj"}, Kind: domain.LookupSubject},
		},
		Persons: []domain.Person{
			{Base: domain.Base{ID: "p1"}, PersonCategoryID: "cat", GenderID: "gone", BloodGroupID: strPtr("subj")},
			{Base: domain.Base{ID: "p2"}, PersonCategoryID: "gone"},
			{Base: domain.Base{ID: "p3"}, PersonCategoryID: "cat"},
		},
		Staff: []domain.Staff{
			{Base: domain.Base{ID: "t1"}, PersonStaffID: "p1", DesignationID: "des"},
			{Base: domain.Base{ID: "t2"}, PersonStaffID: "p2", DesignationID: "des"},
			{Base: domain.Base{ID: "t3"}, PersonStaffID: "p3", DesignationID: "subj"},
		},
		Rooms: []domain.Room{{Base: domain.Base{ID: "r1"}, Capacity: 1}},
		Beds: []domain.Bed{
			{Base: domain.Base{ID: "b1"}, RoomID: "r1", StudentID: strPtr("s2")},
		},
		Guardians:       []domain.Guardian{{Base: domain.Base{ID: "g1"}}},
		AcademicClasses: []domain.AcademicClass{{Base: domain.Base{ID: "c1"}}},
		Students: []domain.Student{
			{Base: domain.Base{ID: "s1"}, GuardianID: "g1", AcademicClassID: "c1"},
			{Base: domain.Base{ID: "s2"}, GuardianID: "g-gone", AcademicClassID: "c1", RoomID: strPtr("r1"), BedID: strPtr("b1")},
			{Base: domain.Base{ID: "s3"}, GuardianID: "g1", AcademicClassID: "c-gone"},
		},
	}

	got := migrateSnapshot(snapshot)

	ids := func(n int, id func(int) string) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = id(i)
		}
		return out
	}
	for _, tc := range []struct {
		name string
		got  []string
		want string
	}{
		{"packages", ids(len(got.Packages), func(i int) string { return got.Packages[i].ID }), "bp1"},
		{"meal packages", ids(len(got.MealPackages), func(i int) string { return got.MealPackages[i].ID }), "mp1"},
		{"persons", ids(len(got.Persons), func(i int) string { return got.Persons[i].ID }), "p1,p3"},
		{"staff", ids(len(got.Staff), func(i int) string { return got.Staff[i].ID }), "t1"},
		{"students", ids(len(got.Students), func(i int) string { return got.Students[i].ID }), "s1"},
	} {
		if joined := strings.Join(tc.got, ","); joined != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, joined)
		}
	}
	if p := got.Persons[0]; p.GenderID != "" || p.BloodGroupID != nil {
		t.Fatalf("expected dangling optional lookups cleared, got %+v", p)
	}
	if b := got.Beds[0]; b.StudentID != nil || b.Status != domain.BedAvailable {
		t.Fatalf("expected bed released by dropped student, got %+v", b)
	}
}
