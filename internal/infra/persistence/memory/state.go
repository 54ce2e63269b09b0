package memory

import (
	"hostelcore/pkg/domain"
)

// table keeps records of one entity type in store order (newest first).
type table[T domain.Record] struct {
	order []string
	rows  map[string]T
}

func newTable[T domain.Record]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

// tableFrom builds a table from records already in store order. Records with
// an empty or repeated id are dropped.
func tableFrom[T domain.Record](items []T, clone func(T) T) table[T] {
	t := table[T]{order: make([]string, 0, len(items)), rows: make(map[string]T, len(items))}
	for _, item := range items {
		id := item.RecordID()
		if id == "" {
			continue
		}
		if _, dup := t.rows[id]; dup {
			continue
		}
		t.order = append(t.order, id)
		t.rows[id] = clone(item)
	}
	return t
}

func (t table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t table[T]) len() int { return len(t.order) }

// first returns the first record in store order matching pred.
func (t table[T]) first(pred func(T) bool) (T, bool) {
	for _, id := range t.order {
		if v := t.rows[id]; pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (t table[T]) list(clone func(T) T) []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, clone(t.rows[id]))
	}
	return out
}

// insert prepends a new record.
func (t *table[T]) insert(v T) {
	id := v.RecordID()
	t.order = append([]string{id}, t.order...)
	t.rows[id] = v
}

// replace overwrites a record in place, keeping its position.
func (t *table[T]) replace(v T) {
	t.rows[v.RecordID()] = v
}

func (t *table[T]) remove(id string) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
}

func (t table[T]) clone(cp func(T) T) table[T] {
	out := table[T]{order: append([]string(nil), t.order...), rows: make(map[string]T, len(t.rows))}
	for id, v := range t.rows {
		out.rows[id] = cp(v)
	}
	return out
}

type memoryState struct {
	packageTypes     table[domain.PackageType]
	packages         table[domain.BoardingPackage]
	menuItems        table[domain.BoardingMenuItem]
	mealTypes        table[domain.BoardingMealType]
	packageMenuItems table[domain.BoardingPackageMenuItem]
	mealPackages     table[domain.MealPackage]
	lookups          table[domain.Lookup]
	persons          table[domain.Person]
	staff            table[domain.Staff]
	rooms            table[domain.Room]
	beds             table[domain.Bed]
	guardians        table[domain.Guardian]
	classes          table[domain.AcademicClass]
	students         table[domain.Student]
}

func newMemoryState() memoryState {
	return memoryState{
		packageTypes:     newTable[domain.PackageType](),
		packages:         newTable[domain.BoardingPackage](),
		menuItems:        newTable[domain.BoardingMenuItem](),
		mealTypes:        newTable[domain.BoardingMealType](),
		packageMenuItems: newTable[domain.BoardingPackageMenuItem](),
		mealPackages:     newTable[domain.MealPackage](),
		lookups:          newTable[domain.Lookup](),
		persons:          newTable[domain.Person](),
		staff:            newTable[domain.Staff](),
		rooms:            newTable[domain.Room](),
		beds:             newTable[domain.Bed](),
		guardians:        newTable[domain.Guardian](),
		classes:          newTable[domain.AcademicClass](),
		students:         newTable[domain.Student](),
	}
}

func (s memoryState) clone() memoryState {
	return memoryState{
		packageTypes:     s.packageTypes.clone(clonePackageType),
		packages:         s.packages.clone(cloneBoardingPackage),
		menuItems:        s.menuItems.clone(cloneMenuItem),
		mealTypes:        s.mealTypes.clone(cloneMealType),
		packageMenuItems: s.packageMenuItems.clone(clonePackageMenuItem),
		mealPackages:     s.mealPackages.clone(cloneMealPackage),
		lookups:          s.lookups.clone(cloneLookup),
		persons:          s.persons.clone(clonePerson),
		staff:            s.staff.clone(cloneStaff),
		rooms:            s.rooms.clone(cloneRoom),
		beds:             s.beds.clone(cloneBed),
		guardians:        s.guardians.clone(cloneGuardian),
		classes:          s.classes.clone(cloneAcademicClass),
		students:         s.students.clone(cloneStudent),
	}
}

// Snapshot captures a point-in-time copy of the store state. Every slice is
// in store order.
type Snapshot struct {
	PackageTypes     []domain.PackageType             `json:"packageTypes" yaml:"packageTypes"`
	Packages         []domain.BoardingPackage         `json:"packages" yaml:"packages"`
	MenuItems        []domain.BoardingMenuItem        `json:"menuItems" yaml:"menuItems"`
	MealTypes        []domain.BoardingMealType        `json:"mealTypes" yaml:"mealTypes"`
	PackageMenuItems []domain.BoardingPackageMenuItem `json:"packageMenuItems" yaml:"packageMenuItems"`
	MealPackages     []domain.MealPackage             `json:"mealPackages" yaml:"mealPackages"`
	Lookups          []domain.Lookup                  `json:"lookups" yaml:"lookups"`
	Persons          []domain.Person                  `json:"persons" yaml:"persons"`
	Staff            []domain.Staff                   `json:"staff" yaml:"staff"`
	Rooms            []domain.Room                    `json:"rooms" yaml:"rooms"`
	Beds             []domain.Bed                     `json:"beds" yaml:"beds"`
	Guardians        []domain.Guardian                `json:"guardians" yaml:"guardians"`
	AcademicClasses  []domain.AcademicClass           `json:"academicClasses" yaml:"academicClasses"`
	Students         []domain.Student                 `json:"students" yaml:"students"`
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	return Snapshot{
		PackageTypes:     state.packageTypes.list(clonePackageType),
		Packages:         state.packages.list(cloneBoardingPackage),
		MenuItems:        state.menuItems.list(cloneMenuItem),
		MealTypes:        state.mealTypes.list(cloneMealType),
		PackageMenuItems: state.packageMenuItems.list(clonePackageMenuItem),
		MealPackages:     state.mealPackages.list(cloneMealPackage),
		Lookups:          state.lookups.list(cloneLookup),
		Persons:          state.persons.list(clonePerson),
		Staff:            state.staff.list(cloneStaff),
		Rooms:            state.rooms.list(cloneRoom),
		Beds:             state.beds.list(cloneBed),
		Guardians:        state.guardians.list(cloneGuardian),
		AcademicClasses:  state.classes.list(cloneAcademicClass),
		Students:         state.students.list(cloneStudent),
	}
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	return memoryState{
		packageTypes:     tableFrom(s.PackageTypes, clonePackageType),
		packages:         tableFrom(s.Packages, cloneBoardingPackage),
		menuItems:        tableFrom(s.MenuItems, cloneMenuItem),
		mealTypes:        tableFrom(s.MealTypes, cloneMealType),
		packageMenuItems: tableFrom(s.PackageMenuItems, clonePackageMenuItem),
		mealPackages:     tableFrom(s.MealPackages, cloneMealPackage),
		lookups:          tableFrom(s.Lookups, cloneLookup),
		persons:          tableFrom(s.Persons, clonePerson),
		staff:            tableFrom(s.Staff, cloneStaff),
		rooms:            tableFrom(s.Rooms, cloneRoom),
		beds:             tableFrom(s.Beds, cloneBed),
		guardians:        tableFrom(s.Guardians, cloneGuardian),
		classes:          tableFrom(s.AcademicClasses, cloneAcademicClass),
		students:         tableFrom(s.Students, cloneStudent),
	}
}

// IDs returns every record id held by the snapshot, nested rows included.
func (s Snapshot) IDs() []string {
	var out []string
	add := func(id string) {
		if id != "" {
			out = append(out, id)
		}
	}
	for _, v := range s.PackageTypes {
		add(v.ID)
	}
	for _, v := range s.Packages {
		add(v.ID)
	}
	for _, v := range s.MenuItems {
		add(v.ID)
	}
	for _, v := range s.MealTypes {
		add(v.ID)
	}
	for _, v := range s.PackageMenuItems {
		add(v.ID)
	}
	for _, v := range s.MealPackages {
		add(v.ID)
		for _, m := range v.Meals {
			add(m.ID)
		}
	}
	for _, v := range s.Lookups {
		add(v.ID)
	}
	for _, v := range s.Persons {
		add(v.ID)
	}
	for _, v := range s.Staff {
		add(v.ID)
		for _, q := range v.EducationalQualifications {
			add(q.ID)
		}
		for _, e := range v.ProfessionalExperience {
			add(e.ID)
		}
		for _, r := range v.References {
			add(r.ID)
		}
	}
	for _, v := range s.Rooms {
		add(v.ID)
	}
	for _, v := range s.Beds {
		add(v.ID)
	}
	for _, v := range s.Guardians {
		add(v.ID)
	}
	for _, v := range s.AcademicClasses {
		add(v.ID)
	}
	for _, v := range s.Students {
		add(v.ID)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func cloneBase(b domain.Base) domain.Base {
	b.UpdatedAt = clonePtr(b.UpdatedAt)
	return b
}

func clonePackageType(v domain.PackageType) domain.PackageType {
	v.Base = cloneBase(v.Base)
	return v
}

func cloneBoardingPackage(v domain.BoardingPackage) domain.BoardingPackage {
	v.Base = cloneBase(v.Base)
	return v
}

func cloneMenuItem(v domain.BoardingMenuItem) domain.BoardingMenuItem {
	v.Base = cloneBase(v.Base)
	return v
}

func cloneMealType(v domain.BoardingMealType) domain.BoardingMealType {
	v.Base = cloneBase(v.Base)
	return v
}

func clonePackageMenuItem(v domain.BoardingPackageMenuItem) domain.BoardingPackageMenuItem {
	v.Base = cloneBase(v.Base)
	return v
}

func cloneMealPackage(v domain.MealPackage) domain.MealPackage {
	v.Base = cloneBase(v.Base)
	v.Meals = cloneSlice(v.Meals)
	return v
}

func cloneLookup(v domain.Lookup) domain.Lookup {
	v.Base = cloneBase(v.Base)
	return v
}

func clonePerson(v domain.Person) domain.Person {
	v.Base = cloneBase(v.Base)
	v.BloodGroupID = clonePtr(v.BloodGroupID)
	return v
}

func cloneStaff(v domain.Staff) domain.Staff {
	v.Base = cloneBase(v.Base)
	v.SubjectIDs = cloneSlice(v.SubjectIDs)
	v.EducationalQualifications = cloneSlice(v.EducationalQualifications)
	v.ProfessionalExperience = cloneSlice(v.ProfessionalExperience)
	v.References = cloneSlice(v.References)
	return v
}

func cloneRoom(v domain.Room) domain.Room {
	v.Base = cloneBase(v.Base)
	return v
}

func cloneBed(v domain.Bed) domain.Bed {
	v.Base = cloneBase(v.Base)
	v.StudentID = clonePtr(v.StudentID)
	return v
}

func cloneGuardian(v domain.Guardian) domain.Guardian {
	v.Base = cloneBase(v.Base)
	return v
}

func cloneAcademicClass(v domain.AcademicClass) domain.AcademicClass {
	v.Base = cloneBase(v.Base)
	return v
}

func cloneStudent(v domain.Student) domain.Student {
	v.Base = cloneBase(v.Base)
	v.RoomID = clonePtr(v.RoomID)
	v.BedID = clonePtr(v.BedID)
	return v
}
