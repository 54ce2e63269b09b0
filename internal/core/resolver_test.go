package core

import (
	"context"
	"testing"

	"hostelcore/pkg/domain"
)

type countingView struct {
	TransactionView
	packageTypes map[string]domain.PackageType
	finds        map[string]int
	lookupLists  int
}

func (v *countingView) FindPackageType(id string) (domain.PackageType, bool) {
	v.finds[id]++
	pt, ok := v.packageTypes[id]
	return pt, ok
}

func (v *countingView) ListLookups() []domain.Lookup {
	v.lookupLists++
	return []domain.Lookup{
		{Base: domain.Base{ID: "lk1"}, Kind: domain.LookupGender, Name: "Female"},
		{Base: domain.Base{ID: "lk2"}, Kind: domain.LookupPersonCategory, Name: "Staff", Code: "staff"},
	}
}

func TestResolverFetchesEachReferenceOnce(t *testing.T) {
	view := &countingView{
		packageTypes: map[string]domain.PackageType{"pt1": {Base: domain.Base{ID: "pt1"}, Name: "Full board"}},
		finds:        map[string]int{},
	}
	items := []domain.BoardingPackage{
		{Base: domain.Base{ID: "bp1"}, PackageTypeID: "pt1"},
		{Base: domain.Base{ID: "bp2"}, PackageTypeID: "pt1"},
		{Base: domain.Base{ID: "bp3"}, PackageTypeID: "pt-gone"},
	}

	got := newResolver(view).boardingPackages(items)

	if view.finds["pt1"] != 1 || view.finds["pt-gone"] != 1 {
		t.Fatalf("expected one fetch per distinct id, got %v", view.finds)
	}
	if got[0].PackageType == nil || got[0].PackageType.Name != "Full board" || got[1].PackageType == nil {
		t.Fatalf("expected resolved package type, got %+v", got[:2])
	}
	if got[2].PackageType != nil {
		t.Fatalf("expected missing reference omitted, got %+v", got[2].PackageType)
	}
}

func TestResolverIndexesLookupsOncePerRequest(t *testing.T) {
	view := &countingView{finds: map[string]int{}}
	r := newResolver(view)
	people := r.persons([]domain.Person{
		{Base: domain.Base{ID: "p1"}, FirstName: "Ada", PersonCategoryID: "lk2", GenderID: "lk1"},
		{Base: domain.Base{ID: "p2"}, FirstName: "Bob", PersonCategoryID: "lk2", GenderID: "lk-gone"},
	})
	if view.lookupLists != 1 {
		t.Fatalf("expected a single lookup list call, got %d", view.lookupLists)
	}
	if people[0].Gender == nil || people[0].Gender.Name != "Female" || people[0].PersonCategory.Code != "staff" {
		t.Fatalf("unexpected lookups: %+v", people[0])
	}
	if people[1].Gender != nil || people[1].BloodGroup != nil {
		t.Fatalf("expected unresolved lookups nil, got %+v", people[1])
	}
	if newResolver(view).lookup("lk1"); view.lookupLists != 2 {
		t.Fatalf("expected a new request to reload lookups, got %d", view.lookupLists)
	}
}

func TestStaffDetailCarriesPersonDesignationAndSubjects(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	s := seedService(t, svc)

	got, err := svc.GetStaff(ctx, s.staff)
	if err != nil {
		t.Fatalf("get staff: %v", err)
	}
	if got.Person == nil || got.Person.FullName != "Ada Lovelace" || got.Person.Email != "ada@example.com" {
		t.Fatalf("expected person snapshot, got %+v", got.Person)
	}
	if got.Person.PersonCategory == nil || got.Person.PersonCategory.Code != "staff" {
		t.Fatalf("expected person category resolved, got %+v", got.Person.PersonCategory)
	}
	if got.Designation == nil || got.Designation.Category != domain.DesignationTeaching {
		t.Fatalf("expected teaching designation, got %+v", got.Designation)
	}
	if len(got.Subjects) != 1 || got.Subjects[0].Name != "Maths" {
		t.Fatalf("expected subjects resolved, got %+v", got.Subjects)
	}
}

func TestRoomDetailCountsOccupancy(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	s := seedService(t, svc)
	if _, _, err := svc.AssignHostel(ctx, s.student, HostelAssignment{RoomID: s.room, BedID: s.bed1}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, _, err := svc.SetBedMaintenance(ctx, s.bed2, true); err != nil {
		t.Fatalf("maintenance: %v", err)
	}

	room, err := svc.GetRoom(ctx, s.room)
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	want := RoomOccupancy{Beds: 2, Occupied: 1, Maintenance: 1}
	if room.Occupancy != want {
		t.Fatalf("expected %+v, got %+v", want, room.Occupancy)
	}
	var occupant *Ref
	for _, b := range room.Beds {
		if b.ID == s.bed1 {
			occupant = b.Student
		}
	}
	if occupant == nil || occupant.ID != s.student {
		t.Fatalf("expected occupant on bed, got %+v", room.Beds)
	}

	student, err := svc.GetStudent(ctx, s.student)
	if err != nil {
		t.Fatalf("get student: %v", err)
	}
	if student.Room == nil || student.Room.Name != "A-101" || student.Bed == nil || student.Bed.Name != "1" {
		t.Fatalf("expected room and bed refs, got %+v / %+v", student.Room, student.Bed)
	}
}

func TestMealPackageDetailResolvesMeals(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	s := seedService(t, svc)

	mp, _, err := svc.CreateMealPackage(ctx, domain.MealPackage{
		Name:      "Weekday",
		PackageID: s.pkg,
		Meals:     []domain.Meal{{MealTypeID: s.mealType, MenuItemID: s.menuItem, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if mp.Meals[0].ID == "" {
		t.Fatalf("expected meal sub-id assigned")
	}
	got, err := svc.GetMealPackage(ctx, mp.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Package == nil || got.Package.ID != s.pkg {
		t.Fatalf("expected package ref, got %+v", got.Package)
	}
	if len(got.Meals) != 1 || got.Meals[0].MealType == nil || got.Meals[0].MealType.Name != "Breakfast" || got.Meals[0].MenuItem.Name != "Porridge" {
		t.Fatalf("expected resolved meals, got %+v", got.Meals)
	}
}

func TestLookupNamesGroupsByKind(t *testing.T) {
	svc := newTestService(t)
	s := seedService(t, svc)
	names, err := svc.LookupNames(context.Background())
	if err != nil {
		t.Fatalf("lookup names: %v", err)
	}
	if names[domain.LookupSubject][s.maths] != "Maths" || names[domain.LookupDesignation][s.support] != "Cook" {
		t.Fatalf("unexpected names: %+v", names)
	}
}
