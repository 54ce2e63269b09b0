package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hostelcore/internal/infra/ids"
	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/pkg/domain"
)

var fixedTime = time.Date(2024, 10, 1, 8, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	store := memory.NewStore(NewDefaultRulesEngine(),
		memory.WithIDGenerator(ids.NewSequence(nil)),
		memory.WithClock(func() time.Time { return fixedTime }),
	)
	return NewService(store, opts...)
}

type seeded struct {
	packageType, pkg, menuItem, mealType string
	staffCategory, otherCategory         string
	teaching, support                    string
	maths, physics                       string
	person, staff                        string
	room, bed1, bed2                     string
	guardian, class, student             string
}

// must unwraps a service mutation in test setup.
func must[T any](v T, _ Result, err error) T {
	if err != nil {
		panic(fmt.Sprintf("unexpected error: %v", err))
	}
	return v
}

func seedService(t *testing.T, svc *Service) seeded {
	t.Helper()
	ctx := context.Background()
	var s seeded
	s.packageType = must(svc.CreatePackageType(ctx, domain.PackageType{Name: "Full board"})).ID
	s.pkg = must(svc.CreateBoardingPackage(ctx, domain.BoardingPackage{Name: "Term 1", PackageTypeID: s.packageType, Price: 300})).ID
	s.menuItem = must(svc.CreateMenuItem(ctx, domain.BoardingMenuItem{Name: "Porridge"})).ID
	s.mealType = must(svc.CreateMealType(ctx, domain.BoardingMealType{Name: "Breakfast", ServingTime: "07:00"})).ID

	lookup := func(l domain.Lookup) string { return must(svc.CreateLookup(ctx, l)).ID }
	s.staffCategory = lookup(domain.Lookup{Kind: domain.LookupPersonCategory, Name: "Staff", Code: "staff"})
	s.otherCategory = lookup(domain.Lookup{Kind: domain.LookupPersonCategory, Name: "Visitor", Code: "visitor"})
	s.teaching = lookup(domain.Lookup{Kind: domain.LookupDesignation, Name: "Teacher", Category: domain.DesignationTeaching})
	s.support = lookup(domain.Lookup{Kind: domain.LookupDesignation, Name: "Cook", Category: domain.DesignationNonTeaching})
	s.maths = lookup(domain.Lookup{Kind: domain.LookupSubject, Name: "Maths"})
	s.physics = lookup(domain.Lookup{Kind: domain.LookupSubject, Name: "Physics"})

	s.person = must(svc.CreatePerson(ctx, domain.Person{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PersonCategoryID: s.staffCategory})).ID
	s.staff = must(svc.CreateStaff(ctx, domain.Staff{PersonStaffID: s.person, DesignationID: s.teaching, SubjectIDs: []string{s.maths}})).ID

	s.room = must(svc.CreateRoom(ctx, domain.Room{RoomNumber: "A-101", Capacity: 2})).ID
	s.bed1 = must(svc.CreateBed(ctx, domain.Bed{RoomID: s.room, BedNumber: "1"})).ID
	s.bed2 = must(svc.CreateBed(ctx, domain.Bed{RoomID: s.room, BedNumber: "2"})).ID

	s.guardian = must(svc.CreateGuardian(ctx, domain.Guardian{Name: "Grace Hopper", Relation: "Mother"})).ID
	s.class = must(svc.CreateAcademicClass(ctx, domain.AcademicClass{Name: "Grade 5", Section: "B"})).ID
	s.student = must(svc.CreateStudent(ctx, domain.Student{
		FirstName:       "Alan",
		LastName:        "Turing",
		AdmissionNumber: "ADM-1",
		GuardianID:      s.guardian,
		AcademicClassID: s.class,
	})).ID
	return s
}
