package core

import "hostelcore/pkg/domain"

// Ref is a resolved reference to another record.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LookupRef is a resolved lookup reference.
type LookupRef struct {
	ID       string            `json:"id"`
	Kind     domain.LookupKind `json:"kind"`
	Name     string            `json:"name"`
	Code     string            `json:"code,omitempty"`
	Category string            `json:"category,omitempty"`
}

// BoardingPackageDetail is a boarding package with its package type resolved.
type BoardingPackageDetail struct {
	domain.BoardingPackage
	PackageType *Ref `json:"packageType,omitempty"`
}

// PackageMenuItemDetail is a package menu item row with its three references
// resolved.
type PackageMenuItemDetail struct {
	domain.BoardingPackageMenuItem
	Package  *Ref `json:"package,omitempty"`
	MenuItem *Ref `json:"menuItem,omitempty"`
	MealType *Ref `json:"mealType,omitempty"`
}

// MealDetail is a meal line with its menu item and meal type resolved.
type MealDetail struct {
	domain.Meal
	MealType *Ref `json:"mealType,omitempty"`
	MenuItem *Ref `json:"menuItem,omitempty"`
}

// MealPackageDetail is a meal package with resolved meals.
type MealPackageDetail struct {
	domain.MealPackage
	Package *Ref         `json:"package,omitempty"`
	Meals   []MealDetail `json:"meals"`
}

// PersonDetail is a person with lookup references resolved.
type PersonDetail struct {
	domain.Person
	FullName       string     `json:"fullName"`
	PersonCategory *LookupRef `json:"personCategory,omitempty"`
	Gender         *LookupRef `json:"gender,omitempty"`
	BloodGroup     *LookupRef `json:"bloodGroup,omitempty"`
}

// StaffDetail is a staff record with the full person snapshot, designation,
// and subjects resolved. Unknown subjects are omitted.
type StaffDetail struct {
	domain.Staff
	Person      *PersonDetail `json:"person,omitempty"`
	Designation *LookupRef    `json:"designation,omitempty"`
	Subjects    []LookupRef   `json:"subjects"`
}

// RoomOccupancy counts a room's beds by status.
type RoomOccupancy struct {
	Beds        int `json:"beds"`
	Occupied    int `json:"occupied"`
	Available   int `json:"available"`
	Maintenance int `json:"maintenance"`
}

// BedSummary is a bed as listed inside its room.
type BedSummary struct {
	ID        string           `json:"id"`
	BedNumber string           `json:"bedNumber"`
	Status    domain.BedStatus `json:"status"`
	Student   *Ref             `json:"student,omitempty"`
}

// RoomDetail is a room with its beds and occupancy counters.
type RoomDetail struct {
	domain.Room
	Beds      []BedSummary  `json:"beds"`
	Occupancy RoomOccupancy `json:"occupancy"`
}

// BedDetail is a bed with its room and occupant resolved.
type BedDetail struct {
	domain.Bed
	Room    *Ref `json:"room,omitempty"`
	Student *Ref `json:"student,omitempty"`
}

// AcademicClassRef is a resolved academic class reference.
type AcademicClassRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Section string `json:"section"`
}

// GuardianRef is a resolved guardian reference.
type GuardianRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// StudentDetail is a student with guardian, class, room, and bed resolved.
type StudentDetail struct {
	domain.Student
	FullName      string            `json:"fullName"`
	Guardian      *GuardianRef      `json:"guardian,omitempty"`
	AcademicClass *AcademicClassRef `json:"academicClass,omitempty"`
	Room          *Ref              `json:"room,omitempty"`
	Bed           *Ref              `json:"bed,omitempty"`
}

// resolver shapes detail views inside one read. Referenced records are
// fetched once per distinct id; lookups are indexed from a single list call.
// Missing references resolve to nil.
type resolver struct {
	view    TransactionView
	lookups map[string]domain.Lookup
}

func newResolver(view TransactionView) *resolver {
	return &resolver{view: view}
}

func (r *resolver) lookup(id string) *LookupRef {
	if id == "" {
		return nil
	}
	if r.lookups == nil {
		r.lookups = lookupIndex(r.view.ListLookups())
	}
	l, ok := r.lookups[id]
	if !ok {
		return nil
	}
	return &LookupRef{ID: l.ID, Kind: l.Kind, Name: l.Name, Code: l.Code, Category: l.Category}
}

func lookupIndex(lookups []domain.Lookup) map[string]domain.Lookup {
	out := make(map[string]domain.Lookup, len(lookups))
	for _, l := range lookups {
		out[l.ID] = l
	}
	return out
}

// fetch resolves each distinct non-empty id exactly once.
func fetch[T any, E any](items []E, ids func(E) []string, find func(string) (T, bool)) map[string]T {
	out := make(map[string]T)
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, id := range ids(item) {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			if v, ok := find(id); ok {
				out[id] = v
			}
		}
	}
	return out
}

func one(id string) []string { return []string{id} }

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func refTo[T any](m map[string]T, id string, name func(T) string) *Ref {
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &Ref{ID: id, Name: name(v)}
}

func (r *resolver) boardingPackages(items []domain.BoardingPackage) []BoardingPackageDetail {
	types := fetch(items, func(v domain.BoardingPackage) []string { return one(v.PackageTypeID) }, r.view.FindPackageType)
	out := make([]BoardingPackageDetail, len(items))
	for i, v := range items {
		out[i] = BoardingPackageDetail{
			BoardingPackage: v,
			PackageType:     refTo(types, v.PackageTypeID, func(t domain.PackageType) string { return t.Name }),
		}
	}
	return out
}

func (r *resolver) packageMenuItems(items []domain.BoardingPackageMenuItem) []PackageMenuItemDetail {
	packages := fetch(items, func(v domain.BoardingPackageMenuItem) []string { return one(v.PackageID) }, r.view.FindBoardingPackage)
	menuItems := fetch(items, func(v domain.BoardingPackageMenuItem) []string { return one(v.MenuItemID) }, r.view.FindMenuItem)
	mealTypes := fetch(items, func(v domain.BoardingPackageMenuItem) []string { return one(v.MealTypeID) }, r.view.FindMealType)
	out := make([]PackageMenuItemDetail, len(items))
	for i, v := range items {
		out[i] = PackageMenuItemDetail{
			BoardingPackageMenuItem: v,
			Package:                 refTo(packages, v.PackageID, func(p domain.BoardingPackage) string { return p.Name }),
			MenuItem:                refTo(menuItems, v.MenuItemID, func(m domain.BoardingMenuItem) string { return m.Name }),
			MealType:                refTo(mealTypes, v.MealTypeID, func(m domain.BoardingMealType) string { return m.Name }),
		}
	}
	return out
}

func (r *resolver) mealPackages(items []domain.MealPackage) []MealPackageDetail {
	packages := fetch(items, func(v domain.MealPackage) []string { return one(v.PackageID) }, r.view.FindBoardingPackage)
	menuItems := fetch(items, func(v domain.MealPackage) []string {
		return mealField(v.Meals, func(m domain.Meal) string { return m.MenuItemID })
	}, r.view.FindMenuItem)
	mealTypes := fetch(items, func(v domain.MealPackage) []string {
		return mealField(v.Meals, func(m domain.Meal) string { return m.MealTypeID })
	}, r.view.FindMealType)
	out := make([]MealPackageDetail, len(items))
	for i, v := range items {
		meals := make([]MealDetail, len(v.Meals))
		for j, m := range v.Meals {
			meals[j] = MealDetail{
				Meal:     m,
				MealType: refTo(mealTypes, m.MealTypeID, func(t domain.BoardingMealType) string { return t.Name }),
				MenuItem: refTo(menuItems, m.MenuItemID, func(t domain.BoardingMenuItem) string { return t.Name }),
			}
		}
		out[i] = MealPackageDetail{
			MealPackage: v,
			Package:     refTo(packages, v.PackageID, func(p domain.BoardingPackage) string { return p.Name }),
			Meals:       meals,
		}
	}
	return out
}

func (r *resolver) person(p domain.Person) PersonDetail {
	return PersonDetail{
		Person:         p,
		FullName:       p.FullName(),
		PersonCategory: r.lookup(p.PersonCategoryID),
		Gender:         r.lookup(p.GenderID),
		BloodGroup:     r.lookup(deref(p.BloodGroupID)),
	}
}

func (r *resolver) persons(items []domain.Person) []PersonDetail {
	out := make([]PersonDetail, len(items))
	for i, p := range items {
		out[i] = r.person(p)
	}
	return out
}

func (r *resolver) staff(items []domain.Staff) []StaffDetail {
	persons := fetch(items, func(v domain.Staff) []string { return one(v.PersonStaffID) }, r.view.FindPerson)
	out := make([]StaffDetail, len(items))
	for i, v := range items {
		d := StaffDetail{
			Staff:       v,
			Designation: r.lookup(v.DesignationID),
			Subjects:    make([]LookupRef, 0, len(v.SubjectIDs)),
		}
		if p, ok := persons[v.PersonStaffID]; ok {
			pd := r.person(p)
			d.Person = &pd
		}
		for _, id := range v.SubjectIDs {
			if s := r.lookup(id); s != nil {
				d.Subjects = append(d.Subjects, *s)
			}
		}
		out[i] = d
	}
	return out
}

func (r *resolver) rooms(items []domain.Room) []RoomDetail {
	byRoom := make(map[string][]domain.Bed, len(items))
	if len(items) > 0 {
		wanted := make(map[string]struct{}, len(items))
		for _, v := range items {
			wanted[v.ID] = struct{}{}
		}
		for _, b := range r.view.ListBeds() {
			if _, ok := wanted[b.RoomID]; ok {
				byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
			}
		}
	}
	var allBeds []domain.Bed
	for _, beds := range byRoom {
		allBeds = append(allBeds, beds...)
	}
	students := fetch(allBeds, func(b domain.Bed) []string { return one(deref(b.StudentID)) }, r.view.FindStudent)

	out := make([]RoomDetail, len(items))
	for i, v := range items {
		d := RoomDetail{Room: v, Beds: make([]BedSummary, 0, len(byRoom[v.ID]))}
		for _, b := range byRoom[v.ID] {
			d.Beds = append(d.Beds, BedSummary{
				ID:        b.ID,
				BedNumber: b.BedNumber,
				Status:    b.Status,
				Student:   refTo(students, deref(b.StudentID), domain.Student.FullName),
			})
			d.Occupancy.Beds++
			switch b.Status {
			case domain.BedOccupied:
				d.Occupancy.Occupied++
			case domain.BedMaintenance:
				d.Occupancy.Maintenance++
			default:
				d.Occupancy.Available++
			}
		}
		out[i] = d
	}
	return out
}

func (r *resolver) beds(items []domain.Bed) []BedDetail {
	rooms := fetch(items, func(b domain.Bed) []string { return one(b.RoomID) }, r.view.FindRoom)
	students := fetch(items, func(b domain.Bed) []string { return one(deref(b.StudentID)) }, r.view.FindStudent)
	out := make([]BedDetail, len(items))
	for i, b := range items {
		out[i] = BedDetail{
			Bed:     b,
			Room:    refTo(rooms, b.RoomID, func(v domain.Room) string { return v.RoomNumber }),
			Student: refTo(students, deref(b.StudentID), domain.Student.FullName),
		}
	}
	return out
}

func (r *resolver) students(items []domain.Student) []StudentDetail {
	guardians := fetch(items, func(v domain.Student) []string { return one(v.GuardianID) }, r.view.FindGuardian)
	classes := fetch(items, func(v domain.Student) []string { return one(v.AcademicClassID) }, r.view.FindAcademicClass)
	rooms := fetch(items, func(v domain.Student) []string { return one(deref(v.RoomID)) }, r.view.FindRoom)
	beds := fetch(items, func(v domain.Student) []string { return one(deref(v.BedID)) }, r.view.FindBed)
	out := make([]StudentDetail, len(items))
	for i, v := range items {
		d := StudentDetail{
			Student:  v,
			FullName: v.FullName(),
			Room:     refTo(rooms, deref(v.RoomID), func(x domain.Room) string { return x.RoomNumber }),
			Bed:      refTo(beds, deref(v.BedID), func(x domain.Bed) string { return x.BedNumber }),
		}
		if g, ok := guardians[v.GuardianID]; ok {
			d.Guardian = &GuardianRef{ID: g.ID, Name: g.Name, Phone: g.Phone, Relation: g.Relation}
		}
		if c, ok := classes[v.AcademicClassID]; ok {
			d.AcademicClass = &AcademicClassRef{ID: c.ID, Name: c.Name, Section: c.Section}
		}
		out[i] = d
	}
	return out
}

// LookupNames maps lookup kind to id to display name.
type LookupNames map[domain.LookupKind]map[string]string

func lookupNames(lookups []domain.Lookup) LookupNames {
	out := make(LookupNames)
	for _, l := range lookups {
		if out[l.Kind] == nil {
			out[l.Kind] = make(map[string]string)
		}
		out[l.Kind][l.ID] = l.Name
	}
	return out
}
