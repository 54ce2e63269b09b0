package memory

import (
	"slices"

	"hostelcore/pkg/domain"
)

// migrateSnapshot normalizes imported state: empty statuses receive their
// defaults, rows whose required parent is missing are dropped (packages,
// meal packages, persons, staff, beds, students, package menu rows and meal
// lines), optional dangling references are cleared, and the bed/student
// occupancy pairing is made consistent from both sides.
func migrateSnapshot(snapshot Snapshot) Snapshot {
	s := snapshotFromMemoryState(memoryStateFromSnapshot(snapshot))

	has := func(ids map[string]struct{}, id string) bool {
		_, ok := ids[id]
		return ok
	}
	lookups := make(map[string]domain.LookupKind, len(s.Lookups))
	for _, l := range s.Lookups {
		lookups[l.ID] = l.Kind
	}
	isKind := func(id string, kind domain.LookupKind) bool {
		k, ok := lookups[id]
		return ok && k == kind
	}

	s.Packages = slices.DeleteFunc(s.Packages, func(p domain.BoardingPackage) bool {
		return !slices.ContainsFunc(s.PackageTypes, func(pt domain.PackageType) bool { return pt.ID == p.PackageTypeID })
	})
	packages := indexIDs(s.Packages)
	menuItems := indexIDs(s.MenuItems)
	mealTypes := indexIDs(s.MealTypes)
	rooms := indexIDs(s.Rooms)

	for i := range s.PackageTypes {
		defaultStatus(&s.PackageTypes[i].Status)
	}
	for i := range s.Packages {
		defaultStatus(&s.Packages[i].Status)
	}
	for i := range s.MenuItems {
		defaultStatus(&s.MenuItems[i].Status)
	}
	for i := range s.MealTypes {
		defaultStatus(&s.MealTypes[i].Status)
	}

	rows := s.PackageMenuItems[:0]
	for _, row := range s.PackageMenuItems {
		if !has(packages, row.PackageID) || !has(menuItems, row.MenuItemID) || !has(mealTypes, row.MealTypeID) {
			continue
		}
		defaultStatus(&row.Status)
		rows = append(rows, row)
	}
	s.PackageMenuItems = rows

	s.MealPackages = slices.DeleteFunc(s.MealPackages, func(mp domain.MealPackage) bool {
		return !has(packages, mp.PackageID)
	})
	for i := range s.MealPackages {
		mp := &s.MealPackages[i]
		meals := make([]domain.Meal, 0, len(mp.Meals))
		for _, m := range mp.Meals {
			if has(menuItems, m.MenuItemID) && has(mealTypes, m.MealTypeID) {
				meals = append(meals, m)
			}
		}
		mp.Meals = meals
		defaultStatus(&mp.Status)
	}
	for i := range s.Lookups {
		defaultStatus(&s.Lookups[i].Status)
	}

	s.Persons = slices.DeleteFunc(s.Persons, func(p domain.Person) bool {
		return !isKind(p.PersonCategoryID, domain.LookupPersonCategory)
	})
	for i := range s.Persons {
		p := &s.Persons[i]
		if p.GenderID != "" && !isKind(p.GenderID, domain.LookupGender) {
			p.GenderID = ""
		}
		if p.BloodGroupID != nil && !isKind(*p.BloodGroupID, domain.LookupBloodGroup) {
			p.BloodGroupID = nil
		}
		defaultStatus(&p.Status)
	}
	persons := indexIDs(s.Persons)

	s.Staff = slices.DeleteFunc(s.Staff, func(st domain.Staff) bool {
		return !has(persons, st.PersonStaffID) || !isKind(st.DesignationID, domain.LookupDesignation)
	})
	for i := range s.Staff {
		st := &s.Staff[i]
		subjects := make([]string, 0, len(st.SubjectIDs))
		for _, id := range st.SubjectIDs {
			if isKind(id, domain.LookupSubject) {
				subjects = append(subjects, id)
			}
		}
		st.SubjectIDs = subjects
		defaultStatus(&st.Status)
	}
	for i := range s.Rooms {
		defaultStatus(&s.Rooms[i].Status)
	}
	for i := range s.Guardians {
		defaultStatus(&s.Guardians[i].Status)
	}
	for i := range s.AcademicClasses {
		defaultStatus(&s.AcademicClasses[i].Status)
	}

	guardians := indexIDs(s.Guardians)
	classes := indexIDs(s.AcademicClasses)
	s.Students = slices.DeleteFunc(s.Students, func(st domain.Student) bool {
		return !has(guardians, st.GuardianID) || !has(classes, st.AcademicClassID)
	})

	beds := s.Beds[:0]
	for _, b := range s.Beds {
		if has(rooms, b.RoomID) {
			beds = append(beds, b)
		}
	}
	s.Beds = beds

	studentPos := make(map[string]int, len(s.Students))
	for i := range s.Students {
		defaultStatus(&s.Students[i].Status)
		studentPos[s.Students[i].ID] = i
	}
	holder := make(map[string]string, len(s.Beds))
	for i := range s.Beds {
		b := &s.Beds[i]
		if b.StudentID != nil {
			pos, ok := studentPos[*b.StudentID]
			if ok && s.Students[pos].BedID != nil && *s.Students[pos].BedID == b.ID {
				holder[b.ID] = s.Students[pos].ID
			} else {
				b.StudentID = nil
			}
		}
		switch {
		case b.StudentID != nil:
			b.Status = domain.BedOccupied
		case b.Status == "", b.Status == domain.BedOccupied, !b.Status.Valid():
			b.Status = domain.BedAvailable
		}
	}
	for i := range s.Students {
		st := &s.Students[i]
		if st.BedID == nil || holder[*st.BedID] != st.ID {
			st.RoomID, st.BedID = nil, nil
		}
	}
	bedRoom := make(map[string]string, len(s.Beds))
	for _, b := range s.Beds {
		bedRoom[b.ID] = b.RoomID
	}
	for i := range s.Students {
		st := &s.Students[i]
		if st.BedID != nil {
			room := bedRoom[*st.BedID]
			st.RoomID = &room
		}
	}
	return s
}

func defaultStatus(s *domain.Status) {
	if *s == "" {
		*s = domain.StatusActive
	}
}

func indexIDs[T domain.Record](rows []T) map[string]struct{} {
	out := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		out[r.RecordID()] = struct{}{}
	}
	return out
}
