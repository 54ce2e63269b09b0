package domain

import (
	"fmt"
	"strings"
)

// The Validate* functions check a record against the view it is about to be
// written into. They fill defaults (status, quantities), verify required
// fields, resolve every foreign key through the view, and enforce uniqueness.
// Missing references yield ErrNotFound; category and uniqueness clashes yield
// ErrConflict; malformed fields yield ErrValidation.

func normalizeStatus(entity EntityType, s *Status) error {
	if *s == "" {
		*s = StatusActive
		return nil
	}
	if !s.Valid() {
		return ErrValidation{Entity: entity, Field: "status", Reason: fmt.Sprintf("unknown status %q", *s)}
	}
	return nil
}

func nonNegative(entity EntityType, field string, v float64) error {
	if v < 0 {
		return ErrValidation{Entity: entity, Field: field, Reason: "must not be negative"}
	}
	return nil
}

func defaultQuantity(entity EntityType, q *int) error {
	switch {
	case *q < 0:
		return ErrValidation{Entity: entity, Field: "quantity", Reason: "must not be negative"}
	case *q == 0:
		*q = 1
	}
	return nil
}

// RequireLookup resolves id as a lookup of the given kind.
func RequireLookup(view TransactionView, id string, kind LookupKind, entity EntityType, field string) (Lookup, error) {
	if err := required(entity, field, id); err != nil {
		return Lookup{}, err
	}
	l, ok := view.FindLookup(id)
	if !ok {
		return Lookup{}, ErrNotFound{Entity: EntityLookup, ID: id}
	}
	if l.Kind != kind {
		return Lookup{}, ErrValidation{Entity: entity, Field: field, Reason: fmt.Sprintf("lookup %q is a %s, want %s", id, l.Kind, kind)}
	}
	return l, nil
}

// ValidatePackageType checks a package type.
func ValidatePackageType(_ TransactionView, v *PackageType) error {
	if err := required(EntityPackageType, "name", v.Name); err != nil {
		return err
	}
	return normalizeStatus(EntityPackageType, &v.Status)
}

// ValidateBoardingPackage checks a boarding package and its package type.
func ValidateBoardingPackage(view TransactionView, v *BoardingPackage) error {
	if err := required(EntityBoardingPackage, "name", v.Name); err != nil {
		return err
	}
	if err := nonNegative(EntityBoardingPackage, "price", v.Price); err != nil {
		return err
	}
	if v.DurationDays < 0 {
		return ErrValidation{Entity: EntityBoardingPackage, Field: "durationDays", Reason: "must not be negative"}
	}
	if err := required(EntityBoardingPackage, "packageTypeId", v.PackageTypeID); err != nil {
		return err
	}
	if _, ok := view.FindPackageType(v.PackageTypeID); !ok {
		return ErrNotFound{Entity: EntityPackageType, ID: v.PackageTypeID}
	}
	return normalizeStatus(EntityBoardingPackage, &v.Status)
}

// ValidateMenuItem checks a menu item.
func ValidateMenuItem(_ TransactionView, v *BoardingMenuItem) error {
	if err := required(EntityMenuItem, "name", v.Name); err != nil {
		return err
	}
	return normalizeStatus(EntityMenuItem, &v.Status)
}

// ValidateMealType checks a meal type.
func ValidateMealType(_ TransactionView, v *BoardingMealType) error {
	if err := required(EntityMealType, "name", v.Name); err != nil {
		return err
	}
	return normalizeStatus(EntityMealType, &v.Status)
}

// ValidatePackageMenuItem checks the three references of a package menu item
// and the uniqueness of its (package, menu item, meal type) triple.
func ValidatePackageMenuItem(view TransactionView, v *BoardingPackageMenuItem) error {
	for _, f := range []struct{ name, value string }{
		{"packageId", v.PackageID},
		{"menuItemId", v.MenuItemID},
		{"mealTypeId", v.MealTypeID},
	} {
		if err := required(EntityPackageMenuItem, f.name, f.value); err != nil {
			return err
		}
	}
	if _, ok := view.FindBoardingPackage(v.PackageID); !ok {
		return ErrNotFound{Entity: EntityBoardingPackage, ID: v.PackageID}
	}
	if _, ok := view.FindMenuItem(v.MenuItemID); !ok {
		return ErrNotFound{Entity: EntityMenuItem, ID: v.MenuItemID}
	}
	if _, ok := view.FindMealType(v.MealTypeID); !ok {
		return ErrNotFound{Entity: EntityMealType, ID: v.MealTypeID}
	}
	if err := defaultQuantity(EntityPackageMenuItem, &v.Quantity); err != nil {
		return err
	}
	if err := nonNegative(EntityPackageMenuItem, "price", v.Price); err != nil {
		return err
	}
	for _, other := range view.ListPackageMenuItems() {
		if other.ID == v.ID {
			continue
		}
		if other.PackageID == v.PackageID && other.MenuItemID == v.MenuItemID && other.MealTypeID == v.MealTypeID {
			return ErrConflict{Entity: EntityPackageMenuItem, ID: other.ID, Reason: "package already serves this menu item for this meal type"}
		}
	}
	return normalizeStatus(EntityPackageMenuItem, &v.Status)
}

// ValidateMealPackage checks a meal package, its package, and every meal line.
func ValidateMealPackage(view TransactionView, v *MealPackage) error {
	if err := required(EntityMealPackage, "name", v.Name); err != nil {
		return err
	}
	if err := required(EntityMealPackage, "packageId", v.PackageID); err != nil {
		return err
	}
	if _, ok := view.FindBoardingPackage(v.PackageID); !ok {
		return ErrNotFound{Entity: EntityBoardingPackage, ID: v.PackageID}
	}
	if err := nonNegative(EntityMealPackage, "price", v.Price); err != nil {
		return err
	}
	if v.Meals == nil {
		v.Meals = []Meal{}
	}
	for i := range v.Meals {
		m := &v.Meals[i]
		if _, ok := view.FindMealType(m.MealTypeID); !ok {
			return ErrNotFound{Entity: EntityMealType, ID: m.MealTypeID}
		}
		if _, ok := view.FindMenuItem(m.MenuItemID); !ok {
			return ErrNotFound{Entity: EntityMenuItem, ID: m.MenuItemID}
		}
		if err := defaultQuantity(EntityMealPackage, &m.Quantity); err != nil {
			return err
		}
	}
	return normalizeStatus(EntityMealPackage, &v.Status)
}

// ValidateLookup checks a lookup value.
func ValidateLookup(_ TransactionView, v *Lookup) error {
	if !v.Kind.Valid() {
		return ErrValidation{Entity: EntityLookup, Field: "kind", Reason: fmt.Sprintf("unknown kind %q", v.Kind)}
	}
	if err := required(EntityLookup, "name", v.Name); err != nil {
		return err
	}
	if v.Kind == LookupDesignation {
		switch v.Category {
		case DesignationTeaching, DesignationNonTeaching:
		default:
			return ErrValidation{Entity: EntityLookup, Field: "category", Reason: fmt.Sprintf("designation category must be %s or %s", DesignationTeaching, DesignationNonTeaching)}
		}
	}
	return normalizeStatus(EntityLookup, &v.Status)
}

// ValidatePerson checks a person and its lookup references.
func ValidatePerson(view TransactionView, v *Person) error {
	if err := required(EntityPerson, "firstName", v.FirstName); err != nil {
		return err
	}
	if _, err := RequireLookup(view, v.PersonCategoryID, LookupPersonCategory, EntityPerson, "personCategoryId"); err != nil {
		return err
	}
	if v.GenderID != "" {
		if _, err := RequireLookup(view, v.GenderID, LookupGender, EntityPerson, "genderId"); err != nil {
			return err
		}
	}
	if v.BloodGroupID != nil {
		if _, err := RequireLookup(view, *v.BloodGroupID, LookupBloodGroup, EntityPerson, "bloodGroupId"); err != nil {
			return err
		}
	}
	return normalizeStatus(EntityPerson, &v.Status)
}

// ValidateStaff checks a staff record: the backing person must exist, be in
// the staff category, and not back another staff record; teachers need a
// teaching designation.
func ValidateStaff(view TransactionView, v *Staff) error {
	if err := required(EntityStaff, "personStaffId", v.PersonStaffID); err != nil {
		return err
	}
	person, ok := view.FindPerson(v.PersonStaffID)
	if !ok {
		return ErrNotFound{Entity: EntityPerson, ID: v.PersonStaffID}
	}
	category, ok := view.FindLookup(person.PersonCategoryID)
	if !ok || !strings.EqualFold(category.Code, PersonCategoryStaff) {
		return ErrConflict{Entity: EntityStaff, ID: v.ID, Reason: fmt.Sprintf("person %q is not in the %s category", person.ID, PersonCategoryStaff)}
	}
	for _, other := range view.ListStaff() {
		if other.ID != v.ID && other.PersonStaffID == v.PersonStaffID {
			return ErrConflict{Entity: EntityStaff, ID: other.ID, Reason: fmt.Sprintf("person %q already backs a staff record", v.PersonStaffID)}
		}
	}
	if v.Kind == "" {
		v.Kind = StaffTeacher
	}
	if v.Kind != StaffTeacher && v.Kind != StaffSupport {
		return ErrValidation{Entity: EntityStaff, Field: "kind", Reason: fmt.Sprintf("unknown kind %q", v.Kind)}
	}
	designation, err := RequireLookup(view, v.DesignationID, LookupDesignation, EntityStaff, "designationId")
	if err != nil {
		return err
	}
	if v.Kind == StaffTeacher && designation.Category != DesignationTeaching {
		return ErrConflict{Entity: EntityStaff, ID: v.ID, Reason: fmt.Sprintf("designation %q is not a teaching designation", designation.Name)}
	}
	v.SubjectIDs = dedupe(v.SubjectIDs)
	if v.SubjectIDs == nil {
		v.SubjectIDs = []string{}
	}
	if v.EducationalQualifications == nil {
		v.EducationalQualifications = []Qualification{}
	}
	if v.ProfessionalExperience == nil {
		v.ProfessionalExperience = []Experience{}
	}
	if v.References == nil {
		v.References = []Reference{}
	}
	for _, id := range v.SubjectIDs {
		if _, err := RequireLookup(view, id, LookupSubject, EntityStaff, "subjectIds"); err != nil {
			return err
		}
	}
	for _, q := range v.EducationalQualifications {
		if err := required(EntityStaff, "educationalQualifications.degree", q.Degree); err != nil {
			return err
		}
	}
	for _, e := range v.ProfessionalExperience {
		if err := required(EntityStaff, "professionalExperience.organization", e.Organization); err != nil {
			return err
		}
	}
	for _, r := range v.References {
		if err := required(EntityStaff, "references.name", r.Name); err != nil {
			return err
		}
	}
	return normalizeStatus(EntityStaff, &v.Status)
}

// ValidateRoom checks a room and the uniqueness of its number.
func ValidateRoom(view TransactionView, v *Room) error {
	if err := required(EntityRoom, "roomNumber", v.RoomNumber); err != nil {
		return err
	}
	if v.Capacity <= 0 {
		return ErrValidation{Entity: EntityRoom, Field: "capacity", Reason: "must be positive"}
	}
	for _, other := range view.ListRooms() {
		if other.ID != v.ID && strings.EqualFold(other.RoomNumber, v.RoomNumber) {
			return ErrConflict{Entity: EntityRoom, ID: other.ID, Reason: fmt.Sprintf("room number %q already exists", v.RoomNumber)}
		}
	}
	return normalizeStatus(EntityRoom, &v.Status)
}

// ValidateBed checks a bed, its room, and the uniqueness of its number within the room.
func ValidateBed(view TransactionView, v *Bed) error {
	if err := required(EntityBed, "roomId", v.RoomID); err != nil {
		return err
	}
	if _, ok := view.FindRoom(v.RoomID); !ok {
		return ErrNotFound{Entity: EntityRoom, ID: v.RoomID}
	}
	if err := required(EntityBed, "bedNumber", v.BedNumber); err != nil {
		return err
	}
	if v.Status == "" {
		v.Status = BedAvailable
	}
	if !v.Status.Valid() {
		return ErrValidation{Entity: EntityBed, Field: "status", Reason: fmt.Sprintf("unknown status %q", v.Status)}
	}
	if v.Status == BedOccupied && v.StudentID == nil {
		return ErrValidation{Entity: EntityBed, Field: "status", Reason: "beds become occupied only through hostel assignment"}
	}
	for _, other := range view.ListBeds() {
		if other.ID != v.ID && other.RoomID == v.RoomID && strings.EqualFold(other.BedNumber, v.BedNumber) {
			return ErrConflict{Entity: EntityBed, ID: other.ID, Reason: fmt.Sprintf("bed number %q already exists in room %q", v.BedNumber, v.RoomID)}
		}
	}
	return nil
}

// ValidateGuardian checks a guardian.
func ValidateGuardian(_ TransactionView, v *Guardian) error {
	if err := required(EntityGuardian, "name", v.Name); err != nil {
		return err
	}
	return normalizeStatus(EntityGuardian, &v.Status)
}

// ValidateAcademicClass checks an academic class.
func ValidateAcademicClass(_ TransactionView, v *AcademicClass) error {
	if err := required(EntityAcademicClass, "name", v.Name); err != nil {
		return err
	}
	return normalizeStatus(EntityAcademicClass, &v.Status)
}

// ValidateStudent checks a student, its guardian and class references, the
// uniqueness of its admission number, and the room/bed pairing.
func ValidateStudent(view TransactionView, v *Student) error {
	if err := required(EntityStudent, "firstName", v.FirstName); err != nil {
		return err
	}
	if err := required(EntityStudent, "admissionNumber", v.AdmissionNumber); err != nil {
		return err
	}
	if err := required(EntityStudent, "guardianId", v.GuardianID); err != nil {
		return err
	}
	if _, ok := view.FindGuardian(v.GuardianID); !ok {
		return ErrNotFound{Entity: EntityGuardian, ID: v.GuardianID}
	}
	if err := required(EntityStudent, "academicClassId", v.AcademicClassID); err != nil {
		return err
	}
	if _, ok := view.FindAcademicClass(v.AcademicClassID); !ok {
		return ErrNotFound{Entity: EntityAcademicClass, ID: v.AcademicClassID}
	}
	if (v.RoomID == nil) != (v.BedID == nil) {
		return ErrValidation{Entity: EntityStudent, Field: "roomId", Reason: "roomId and bedId must be set together"}
	}
	for _, other := range view.ListStudents() {
		if other.ID != v.ID && strings.EqualFold(other.AdmissionNumber, v.AdmissionNumber) {
			return ErrConflict{Entity: EntityStudent, ID: other.ID, Reason: fmt.Sprintf("admission number %q already exists", v.AdmissionNumber)}
		}
	}
	return normalizeStatus(EntityStudent, &v.Status)
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
