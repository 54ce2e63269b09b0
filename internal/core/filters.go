package core

import (
	"hostelcore/internal/query"
	"hostelcore/pkg/domain"
)

// Entity filters are flat sets of optional fields. Zero-valued fields are
// inactive; active fields are ANDed. Predicates receives the request view so
// filters over joined data resolve against the same snapshot as the page.

// PackageTypeFilter filters package types.
type PackageTypeFilter struct {
	Search string        `form:"search"`
	Status domain.Status `form:"status"`
}

// Predicates builds the filter predicates.
func (f PackageTypeFilter) Predicates(TransactionView) []query.Predicate[domain.PackageType] {
	return []query.Predicate[domain.PackageType]{
		query.Search(f.Search,
			func(v domain.PackageType) string { return v.Name },
			func(v domain.PackageType) string { return v.Description }),
		query.Status(f.Status, func(v domain.PackageType) domain.Status { return v.Status }),
	}
}

// BoardingPackageFilter filters boarding packages.
type BoardingPackageFilter struct {
	Search        string        `form:"search"`
	PackageTypeID string        `form:"packageTypeId"`
	Status        domain.Status `form:"status"`
}

// Predicates builds the filter predicates.
func (f BoardingPackageFilter) Predicates(TransactionView) []query.Predicate[domain.BoardingPackage] {
	return []query.Predicate[domain.BoardingPackage]{
		query.Search(f.Search,
			func(v domain.BoardingPackage) string { return v.Name },
			func(v domain.BoardingPackage) string { return v.Description }),
		query.Equals(f.PackageTypeID, func(v domain.BoardingPackage) string { return v.PackageTypeID }),
		query.Status(f.Status, func(v domain.BoardingPackage) domain.Status { return v.Status }),
	}
}

// MenuItemFilter filters menu items.
type MenuItemFilter struct {
	Search string        `form:"search"`
	Status domain.Status `form:"status"`
}

// Predicates builds the filter predicates.
func (f MenuItemFilter) Predicates(TransactionView) []query.Predicate[domain.BoardingMenuItem] {
	return []query.Predicate[domain.BoardingMenuItem]{
		query.Search(f.Search,
			func(v domain.BoardingMenuItem) string { return v.Name },
			func(v domain.BoardingMenuItem) string { return v.Description }),
		query.Status(f.Status, func(v domain.BoardingMenuItem) domain.Status { return v.Status }),
	}
}

// MealTypeFilter filters meal types.
type MealTypeFilter struct {
	Search string        `form:"search"`
	Status domain.Status `form:"status"`
}

// Predicates builds the filter predicates.
func (f MealTypeFilter) Predicates(TransactionView) []query.Predicate[domain.BoardingMealType] {
	return []query.Predicate[domain.BoardingMealType]{
		query.Search(f.Search,
			func(v domain.BoardingMealType) string { return v.Name },
			func(v domain.BoardingMealType) string { return v.ServingTime }),
		query.Status(f.Status, func(v domain.BoardingMealType) domain.Status { return v.Status }),
	}
}

// PackageMenuItemFilter filters package menu item rows.
type PackageMenuItemFilter struct {
	PackageID  string        `form:"packageId"`
	MenuItemID string        `form:"menuItemId"`
	MealTypeID string        `form:"mealTypeId"`
	Status     domain.Status `form:"status"`
}

// Predicates builds the filter predicates.
func (f PackageMenuItemFilter) Predicates(TransactionView) []query.Predicate[domain.BoardingPackageMenuItem] {
	return []query.Predicate[domain.BoardingPackageMenuItem]{
		query.Equals(f.PackageID, func(v domain.BoardingPackageMenuItem) string { return v.PackageID }),
		query.Equals(f.MenuItemID, func(v domain.BoardingPackageMenuItem) string { return v.MenuItemID }),
		query.Equals(f.MealTypeID, func(v domain.BoardingPackageMenuItem) string { return v.MealTypeID }),
		query.Status(f.Status, func(v domain.BoardingPackageMenuItem) domain.Status { return v.Status }),
	}
}

// MealPackageFilter filters meal packages. MealTypeIDs and MenuItemIDs match
// packages with at least one meal of the given types or items.
type MealPackageFilter struct {
	Search      string        `form:"search"`
	PackageID   string        `form:"packageId"`
	MealTypeIDs []string      `form:"mealTypeIds"`
	MenuItemIDs []string      `form:"menuItemIds"`
	Status      domain.Status `form:"status"`
}

// Predicates builds the filter predicates.
func (f MealPackageFilter) Predicates(TransactionView) []query.Predicate[domain.MealPackage] {
	return []query.Predicate[domain.MealPackage]{
		query.Search(f.Search, func(v domain.MealPackage) string { return v.Name }),
		query.Equals(f.PackageID, func(v domain.MealPackage) string { return v.PackageID }),
		query.Intersects(f.MealTypeIDs, func(v domain.MealPackage) []string {
			return mealField(v.Meals, func(m domain.Meal) string { return m.MealTypeID })
		}),
		query.Intersects(f.MenuItemIDs, func(v domain.MealPackage) []string {
			return mealField(v.Meals, func(m domain.Meal) string { return m.MenuItemID })
		}),
		query.Status(f.Status, func(v domain.MealPackage) domain.Status { return v.Status }),
	}
}

func mealField(meals []domain.Meal, field func(domain.Meal) string) []string {
	out := make([]string, len(meals))
	for i, m := range meals {
		out[i] = field(m)
	}
	return out
}

// LookupFilter filters lookups.
type LookupFilter struct {
	Kind     domain.LookupKind `form:"kind"`
	Search   string            `form:"search"`
	Code     string            `form:"code"`
	Category string            `form:"category"`
	Status   domain.Status     `form:"status"`
}

// Predicates builds the filter predicates.
func (f LookupFilter) Predicates(TransactionView) []query.Predicate[domain.Lookup] {
	return []query.Predicate[domain.Lookup]{
		query.Equals(f.Kind, func(v domain.Lookup) domain.LookupKind { return v.Kind }),
		query.Search(f.Search,
			func(v domain.Lookup) string { return v.Name },
			func(v domain.Lookup) string { return v.Code }),
		query.EqualsFold(f.Code, func(v domain.Lookup) string { return v.Code }),
		query.Equals(f.Category, func(v domain.Lookup) string { return v.Category }),
		query.Status(f.Status, func(v domain.Lookup) domain.Status { return v.Status }),
	}
}

// PersonFilter filters persons.
type PersonFilter struct {
	Search           string        `form:"search"`
	PersonCategoryID string        `form:"personCategoryId"`
	GenderID         string        `form:"genderId"`
	BloodGroupID     string        `form:"bloodGroupId"`
	Status           domain.Status `form:"status"`
}

// Predicates builds the filter predicates.
func (f PersonFilter) Predicates(TransactionView) []query.Predicate[domain.Person] {
	return []query.Predicate[domain.Person]{
		query.Search(f.Search, personSearchFields...),
		query.Equals(f.PersonCategoryID, func(v domain.Person) string { return v.PersonCategoryID }),
		query.Equals(f.GenderID, func(v domain.Person) string { return v.GenderID }),
		query.PtrEquals(f.BloodGroupID, func(v domain.Person) *string { return v.BloodGroupID }),
		query.Status(f.Status, func(v domain.Person) domain.Status { return v.Status }),
	}
}

var personSearchFields = []func(domain.Person) string{
	func(v domain.Person) string { return v.FullName() },
	func(v domain.Person) string { return v.Email },
	func(v domain.Person) string { return v.Phone },
}

// StaffFilter filters staff records. Search matches the backing person's
// name, email, and phone.
type StaffFilter struct {
	Search        string           `form:"search"`
	PersonStaffID string           `form:"personStaffId"`
	DesignationID string           `form:"designationId"`
	Kind          domain.StaffKind `form:"kind"`
	SubjectIDs    []string         `form:"subjectIds"`
	Status        domain.Status    `form:"status"`
}

// Predicates builds the filter predicates.
func (f StaffFilter) Predicates(view TransactionView) []query.Predicate[domain.Staff] {
	preds := []query.Predicate[domain.Staff]{
		query.Equals(f.PersonStaffID, func(v domain.Staff) string { return v.PersonStaffID }),
		query.Equals(f.DesignationID, func(v domain.Staff) string { return v.DesignationID }),
		query.Equals(f.Kind, func(v domain.Staff) domain.StaffKind { return v.Kind }),
		query.Intersects(f.SubjectIDs, func(v domain.Staff) []string { return v.SubjectIDs }),
		query.Status(f.Status, func(v domain.Staff) domain.Status { return v.Status }),
	}
	if match := query.Search(f.Search, personSearchFields...); match != nil {
		matched := make(map[string]struct{})
		for _, p := range query.Filter(view.ListPersons(), match) {
			matched[p.ID] = struct{}{}
		}
		preds = append(preds, func(v domain.Staff) bool {
			_, ok := matched[v.PersonStaffID]
			return ok
		})
	}
	return preds
}

// RoomFilter filters rooms.
type RoomFilter struct {
	Search   string        `form:"search"`
	RoomType string        `form:"roomType"`
	Floor    *int          `form:"floor"`
	Status   domain.Status `form:"status"`
}

// Predicates builds the filter predicates.
func (f RoomFilter) Predicates(TransactionView) []query.Predicate[domain.Room] {
	preds := []query.Predicate[domain.Room]{
		query.Search(f.Search,
			func(v domain.Room) string { return v.RoomNumber },
			func(v domain.Room) string { return v.RoomType }),
		query.EqualsFold(f.RoomType, func(v domain.Room) string { return v.RoomType }),
		query.Status(f.Status, func(v domain.Room) domain.Status { return v.Status }),
	}
	if f.Floor != nil {
		floor := *f.Floor
		preds = append(preds, func(v domain.Room) bool { return v.Floor == floor })
	}
	return preds
}

// BedFilter filters beds.
type BedFilter struct {
	Search    string             `form:"search"`
	RoomID    string             `form:"roomId"`
	StudentID string             `form:"studentId"`
	Status    []domain.BedStatus `form:"status"`
}

// Predicates builds the filter predicates.
func (f BedFilter) Predicates(TransactionView) []query.Predicate[domain.Bed] {
	return []query.Predicate[domain.Bed]{
		query.Search(f.Search, func(v domain.Bed) string { return v.BedNumber }),
		query.Equals(f.RoomID, func(v domain.Bed) string { return v.RoomID }),
		query.PtrEquals(f.StudentID, func(v domain.Bed) *string { return v.StudentID }),
		query.In(f.Status, func(v domain.Bed) domain.BedStatus { return v.Status }),
	}
}

// GuardianFilter filters guardians.
type GuardianFilter struct {
	Search   string        `form:"search"`
	Relation string        `form:"relation"`
	Status   domain.Status `form:"status"`
}

// Predicates builds the filter predicates.
func (f GuardianFilter) Predicates(TransactionView) []query.Predicate[domain.Guardian] {
	return []query.Predicate[domain.Guardian]{
		query.Search(f.Search,
			func(v domain.Guardian) string { return v.Name },
			func(v domain.Guardian) string { return v.Email },
			func(v domain.Guardian) string { return v.Phone }),
		query.EqualsFold(f.Relation, func(v domain.Guardian) string { return v.Relation }),
		query.Status(f.Status, func(v domain.Guardian) domain.Status { return v.Status }),
	}
}

// AcademicClassFilter filters academic classes.
type AcademicClassFilter struct {
	Search string        `form:"search"`
	Status domain.Status `form:"status"`
}

// Predicates builds the filter predicates.
func (f AcademicClassFilter) Predicates(TransactionView) []query.Predicate[domain.AcademicClass] {
	return []query.Predicate[domain.AcademicClass]{
		query.Search(f.Search,
			func(v domain.AcademicClass) string { return v.Name },
			func(v domain.AcademicClass) string { return v.Section }),
		query.Status(f.Status, func(v domain.AcademicClass) domain.Status { return v.Status }),
	}
}

// StudentFilter filters students. InHostel selects students with or without
// a bed.
type StudentFilter struct {
	Search          string        `form:"search"`
	GuardianID      string        `form:"guardianId"`
	AcademicClassID string        `form:"academicClassId"`
	RoomID          string        `form:"roomId"`
	BedID           string        `form:"bedId"`
	InHostel        *bool         `form:"inHostel"`
	Status          domain.Status `form:"status"`
}

// Predicates builds the filter predicates.
func (f StudentFilter) Predicates(TransactionView) []query.Predicate[domain.Student] {
	return []query.Predicate[domain.Student]{
		query.Search(f.Search,
			func(v domain.Student) string { return v.FullName() },
			func(v domain.Student) string { return v.AdmissionNumber },
			func(v domain.Student) string { return v.Email },
			func(v domain.Student) string { return v.Phone }),
		query.Equals(f.GuardianID, func(v domain.Student) string { return v.GuardianID }),
		query.Equals(f.AcademicClassID, func(v domain.Student) string { return v.AcademicClassID }),
		query.PtrEquals(f.RoomID, func(v domain.Student) *string { return v.RoomID }),
		query.PtrEquals(f.BedID, func(v domain.Student) *string { return v.BedID }),
		query.Bool(f.InHostel, domain.Student.InHostel),
		query.Status(f.Status, func(v domain.Student) domain.Status { return v.Status }),
	}
}
