package memory

import (
	"fmt"
	"time"

	"hostelcore/pkg/domain"
)

// transaction represents a mutation set applied to a private copy of the store state.
type transaction struct {
	store   *Store
	state   memoryState
	changes []domain.Change
	now     time.Time
}

func (tx *transaction) recordChange(change domain.Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() domain.TransactionView {
	return newTransactionView(&tx.state)
}

func (tx *transaction) newID(prefix string) string {
	return tx.store.ids.NewID(prefix)
}

func (tx *transaction) stamp() *time.Time {
	now := tx.now
	return &now
}

type entityPtr[T any] interface {
	*T
	Meta() *domain.Base
}

// entitySpec binds an entity type to its table, clone, and validation.
type entitySpec[T domain.Record] struct {
	entity   domain.EntityType
	table    func(*memoryState) *table[T]
	clone    func(T) T
	validate func(*transaction, *T) error
}

func viewValidator[T any](fn func(domain.TransactionView, *T) error) func(*transaction, *T) error {
	return func(tx *transaction, v *T) error { return fn(tx.Snapshot(), v) }
}

func insertRecord[T domain.Record, P entityPtr[T]](tx *transaction, spec entitySpec[T], v T) (T, error) {
	var zero T
	meta := P(&v).Meta()
	if meta.ID == "" {
		meta.ID = tx.newID(domain.IDPrefix(spec.entity))
	}
	tbl := spec.table(&tx.state)
	if tbl.has(meta.ID) {
		return zero, domain.ErrConflict{Entity: spec.entity, ID: meta.ID, Reason: "already exists"}
	}
	meta.CreatedAt = tx.now
	meta.UpdatedAt = nil
	if err := spec.validate(tx, &v); err != nil {
		return zero, err
	}
	tbl.insert(spec.clone(v))
	tx.recordChange(domain.Change{Entity: spec.entity, Action: domain.ActionCreate, After: spec.clone(v)})
	return spec.clone(v), nil
}

// updateRecord applies mutator to a copy of the stored record. Identity and
// createdAt are restored afterwards; guard may restore or reject further fields.
func updateRecord[T domain.Record, P entityPtr[T]](tx *transaction, spec entitySpec[T], id string, mutator func(*T) error, guard func(before T, next *T) error) (T, error) {
	var zero T
	tbl := spec.table(&tx.state)
	current, ok := tbl.get(id)
	if !ok {
		return zero, domain.ErrNotFound{Entity: spec.entity, ID: id}
	}
	before := spec.clone(current)
	next := spec.clone(current)
	if mutator != nil {
		if err := mutator(&next); err != nil {
			return zero, err
		}
	}
	meta := P(&next).Meta()
	meta.ID = id
	meta.CreatedAt = P(&before).Meta().CreatedAt
	meta.UpdatedAt = tx.stamp()
	if guard != nil {
		if err := guard(before, &next); err != nil {
			return zero, err
		}
	}
	if err := spec.validate(tx, &next); err != nil {
		return zero, err
	}
	tbl.replace(spec.clone(next))
	tx.recordChange(domain.Change{Entity: spec.entity, Action: domain.ActionUpdate, Before: before, After: spec.clone(next)})
	return spec.clone(next), nil
}

func deleteRecord[T domain.Record](tx *transaction, spec entitySpec[T], id string, guard func(T) error) error {
	tbl := spec.table(&tx.state)
	current, ok := tbl.get(id)
	if !ok {
		return domain.ErrNotFound{Entity: spec.entity, ID: id}
	}
	if guard != nil {
		if err := guard(current); err != nil {
			return err
		}
	}
	tbl.remove(id)
	tx.recordChange(domain.Change{Entity: spec.entity, Action: domain.ActionDelete, Before: spec.clone(current)})
	return nil
}

func stillReferenced(entity domain.EntityType, id string, by domain.EntityType, byID string) error {
	return domain.ErrConflict{Entity: entity, ID: id, Reason: fmt.Sprintf("still referenced by %s %q", by, byID)}
}

var (
	packageTypeSpec = entitySpec[domain.PackageType]{
		entity:   domain.EntityPackageType,
		table:    func(s *memoryState) *table[domain.PackageType] { return &s.packageTypes },
		clone:    clonePackageType,
		validate: viewValidator(domain.ValidatePackageType),
	}
	boardingPackageSpec = entitySpec[domain.BoardingPackage]{
		entity:   domain.EntityBoardingPackage,
		table:    func(s *memoryState) *table[domain.BoardingPackage] { return &s.packages },
		clone:    cloneBoardingPackage,
		validate: viewValidator(domain.ValidateBoardingPackage),
	}
	menuItemSpec = entitySpec[domain.BoardingMenuItem]{
		entity:   domain.EntityMenuItem,
		table:    func(s *memoryState) *table[domain.BoardingMenuItem] { return &s.menuItems },
		clone:    cloneMenuItem,
		validate: viewValidator(domain.ValidateMenuItem),
	}
	mealTypeSpec = entitySpec[domain.BoardingMealType]{
		entity:   domain.EntityMealType,
		table:    func(s *memoryState) *table[domain.BoardingMealType] { return &s.mealTypes },
		clone:    cloneMealType,
		validate: viewValidator(domain.ValidateMealType),
	}
	packageMenuItemSpec = entitySpec[domain.BoardingPackageMenuItem]{
		entity:   domain.EntityPackageMenuItem,
		table:    func(s *memoryState) *table[domain.BoardingPackageMenuItem] { return &s.packageMenuItems },
		clone:    clonePackageMenuItem,
		validate: viewValidator(domain.ValidatePackageMenuItem),
	}
	mealPackageSpec = entitySpec[domain.MealPackage]{
		entity: domain.EntityMealPackage,
		table:  func(s *memoryState) *table[domain.MealPackage] { return &s.mealPackages },
		clone:  cloneMealPackage,
		validate: func(tx *transaction, v *domain.MealPackage) error {
			for i := range v.Meals {
				if v.Meals[i].ID == "" {
					v.Meals[i].ID = tx.newID(domain.PrefixMeal)
				}
			}
			return domain.ValidateMealPackage(tx.Snapshot(), v)
		},
	}
	lookupSpec = entitySpec[domain.Lookup]{
		entity:   domain.EntityLookup,
		table:    func(s *memoryState) *table[domain.Lookup] { return &s.lookups },
		clone:    cloneLookup,
		validate: viewValidator(domain.ValidateLookup),
	}
	personSpec = entitySpec[domain.Person]{
		entity:   domain.EntityPerson,
		table:    func(s *memoryState) *table[domain.Person] { return &s.persons },
		clone:    clonePerson,
		validate: viewValidator(domain.ValidatePerson),
	}
	staffSpec = entitySpec[domain.Staff]{
		entity: domain.EntityStaff,
		table:  func(s *memoryState) *table[domain.Staff] { return &s.staff },
		clone:  cloneStaff,
		validate: func(tx *transaction, v *domain.Staff) error {
			for i := range v.EducationalQualifications {
				if v.EducationalQualifications[i].ID == "" {
					v.EducationalQualifications[i].ID = tx.newID(domain.PrefixQualification)
				}
			}
			for i := range v.ProfessionalExperience {
				if v.ProfessionalExperience[i].ID == "" {
					v.ProfessionalExperience[i].ID = tx.newID(domain.PrefixExperience)
				}
			}
			for i := range v.References {
				if v.References[i].ID == "" {
					v.References[i].ID = tx.newID(domain.PrefixReference)
				}
			}
			return domain.ValidateStaff(tx.Snapshot(), v)
		},
	}
	roomSpec = entitySpec[domain.Room]{
		entity:   domain.EntityRoom,
		table:    func(s *memoryState) *table[domain.Room] { return &s.rooms },
		clone:    cloneRoom,
		validate: viewValidator(domain.ValidateRoom),
	}
	bedSpec = entitySpec[domain.Bed]{
		entity:   domain.EntityBed,
		table:    func(s *memoryState) *table[domain.Bed] { return &s.beds },
		clone:    cloneBed,
		validate: viewValidator(domain.ValidateBed),
	}
	guardianSpec = entitySpec[domain.Guardian]{
		entity:   domain.EntityGuardian,
		table:    func(s *memoryState) *table[domain.Guardian] { return &s.guardians },
		clone:    cloneGuardian,
		validate: viewValidator(domain.ValidateGuardian),
	}
	academicClassSpec = entitySpec[domain.AcademicClass]{
		entity:   domain.EntityAcademicClass,
		table:    func(s *memoryState) *table[domain.AcademicClass] { return &s.classes },
		clone:    cloneAcademicClass,
		validate: viewValidator(domain.ValidateAcademicClass),
	}
	studentSpec = entitySpec[domain.Student]{
		entity:   domain.EntityStudent,
		table:    func(s *memoryState) *table[domain.Student] { return &s.students },
		clone:    cloneStudent,
		validate: viewValidator(domain.ValidateStudent),
	}
)

// CreatePackageType stores a new package type.
func (tx *transaction) CreatePackageType(v domain.PackageType) (domain.PackageType, error) {
	return insertRecord(tx, packageTypeSpec, v)
}

// UpdatePackageType mutates an existing package type.
func (tx *transaction) UpdatePackageType(id string, mutator func(*domain.PackageType) error) (domain.PackageType, error) {
	return updateRecord(tx, packageTypeSpec, id, mutator, nil)
}

// DeletePackageType removes a package type no boarding package refers to.
func (tx *transaction) DeletePackageType(id string) error {
	return deleteRecord(tx, packageTypeSpec, id, func(domain.PackageType) error {
		if bp, ok := tx.state.packages.first(func(p domain.BoardingPackage) bool { return p.PackageTypeID == id }); ok {
			return stillReferenced(domain.EntityPackageType, id, domain.EntityBoardingPackage, bp.ID)
		}
		return nil
	})
}

// CreateBoardingPackage stores a new boarding package.
func (tx *transaction) CreateBoardingPackage(v domain.BoardingPackage) (domain.BoardingPackage, error) {
	return insertRecord(tx, boardingPackageSpec, v)
}

// UpdateBoardingPackage mutates a boarding package.
func (tx *transaction) UpdateBoardingPackage(id string, mutator func(*domain.BoardingPackage) error) (domain.BoardingPackage, error) {
	return updateRecord(tx, boardingPackageSpec, id, mutator, nil)
}

// DeleteBoardingPackage removes a boarding package without menu rows or meal packages.
func (tx *transaction) DeleteBoardingPackage(id string) error {
	return deleteRecord(tx, boardingPackageSpec, id, func(domain.BoardingPackage) error {
		if row, ok := tx.state.packageMenuItems.first(func(r domain.BoardingPackageMenuItem) bool { return r.PackageID == id }); ok {
			return stillReferenced(domain.EntityBoardingPackage, id, domain.EntityPackageMenuItem, row.ID)
		}
		if mp, ok := tx.state.mealPackages.first(func(m domain.MealPackage) bool { return m.PackageID == id }); ok {
			return stillReferenced(domain.EntityBoardingPackage, id, domain.EntityMealPackage, mp.ID)
		}
		return nil
	})
}

// CreateMenuItem stores a new menu item.
func (tx *transaction) CreateMenuItem(v domain.BoardingMenuItem) (domain.BoardingMenuItem, error) {
	return insertRecord(tx, menuItemSpec, v)
}

// UpdateMenuItem mutates a menu item.
func (tx *transaction) UpdateMenuItem(id string, mutator func(*domain.BoardingMenuItem) error) (domain.BoardingMenuItem, error) {
	return updateRecord(tx, menuItemSpec, id, mutator, nil)
}

// DeleteMenuItem removes a menu item no package row or meal uses.
func (tx *transaction) DeleteMenuItem(id string) error {
	return deleteRecord(tx, menuItemSpec, id, func(domain.BoardingMenuItem) error {
		if row, ok := tx.state.packageMenuItems.first(func(r domain.BoardingPackageMenuItem) bool { return r.MenuItemID == id }); ok {
			return stillReferenced(domain.EntityMenuItem, id, domain.EntityPackageMenuItem, row.ID)
		}
		if mp, ok := tx.state.mealPackages.first(func(m domain.MealPackage) bool {
			for _, meal := range m.Meals {
				if meal.MenuItemID == id {
					return true
				}
			}
			return false
		}); ok {
			return stillReferenced(domain.EntityMenuItem, id, domain.EntityMealPackage, mp.ID)
		}
		return nil
	})
}

// CreateMealType stores a new meal type.
func (tx *transaction) CreateMealType(v domain.BoardingMealType) (domain.BoardingMealType, error) {
	return insertRecord(tx, mealTypeSpec, v)
}

// UpdateMealType mutates a meal type.
func (tx *transaction) UpdateMealType(id string, mutator func(*domain.BoardingMealType) error) (domain.BoardingMealType, error) {
	return updateRecord(tx, mealTypeSpec, id, mutator, nil)
}

// DeleteMealType removes a meal type no package row or meal uses.
func (tx *transaction) DeleteMealType(id string) error {
	return deleteRecord(tx, mealTypeSpec, id, func(domain.BoardingMealType) error {
		if row, ok := tx.state.packageMenuItems.first(func(r domain.BoardingPackageMenuItem) bool { return r.MealTypeID == id }); ok {
			return stillReferenced(domain.EntityMealType, id, domain.EntityPackageMenuItem, row.ID)
		}
		if mp, ok := tx.state.mealPackages.first(func(m domain.MealPackage) bool {
			for _, meal := range m.Meals {
				if meal.MealTypeID == id {
					return true
				}
			}
			return false
		}); ok {
			return stillReferenced(domain.EntityMealType, id, domain.EntityMealPackage, mp.ID)
		}
		return nil
	})
}

// CreatePackageMenuItem stores a new package menu item.
func (tx *transaction) CreatePackageMenuItem(v domain.BoardingPackageMenuItem) (domain.BoardingPackageMenuItem, error) {
	return insertRecord(tx, packageMenuItemSpec, v)
}

// UpdatePackageMenuItem mutates a package menu item.
func (tx *transaction) UpdatePackageMenuItem(id string, mutator func(*domain.BoardingPackageMenuItem) error) (domain.BoardingPackageMenuItem, error) {
	return updateRecord(tx, packageMenuItemSpec, id, mutator, nil)
}

// DeletePackageMenuItem removes a package menu item.
func (tx *transaction) DeletePackageMenuItem(id string) error {
	return deleteRecord(tx, packageMenuItemSpec, id, nil)
}

// CreateMealPackage stores a new meal package.
func (tx *transaction) CreateMealPackage(v domain.MealPackage) (domain.MealPackage, error) {
	return insertRecord(tx, mealPackageSpec, v)
}

// UpdateMealPackage mutates a meal package.
func (tx *transaction) UpdateMealPackage(id string, mutator func(*domain.MealPackage) error) (domain.MealPackage, error) {
	return updateRecord(tx, mealPackageSpec, id, mutator, nil)
}

// DeleteMealPackage removes a meal package.
func (tx *transaction) DeleteMealPackage(id string) error {
	return deleteRecord(tx, mealPackageSpec, id, nil)
}

// CreateLookup stores a new lookup.
func (tx *transaction) CreateLookup(v domain.Lookup) (domain.Lookup, error) {
	return insertRecord(tx, lookupSpec, v)
}

// UpdateLookup mutates a lookup. The kind cannot change.
func (tx *transaction) UpdateLookup(id string, mutator func(*domain.Lookup) error) (domain.Lookup, error) {
	return updateRecord(tx, lookupSpec, id, mutator, func(before domain.Lookup, next *domain.Lookup) error {
		next.Kind = before.Kind
		return nil
	})
}

// DeleteLookup removes a lookup no person or staff record refers to.
func (tx *transaction) DeleteLookup(id string) error {
	return deleteRecord(tx, lookupSpec, id, func(domain.Lookup) error {
		if p, ok := tx.state.persons.first(func(p domain.Person) bool {
			return p.PersonCategoryID == id || p.GenderID == id || (p.BloodGroupID != nil && *p.BloodGroupID == id)
		}); ok {
			return stillReferenced(domain.EntityLookup, id, domain.EntityPerson, p.ID)
		}
		if s, ok := tx.state.staff.first(func(s domain.Staff) bool {
			return s.DesignationID == id || containsString(s.SubjectIDs, id)
		}); ok {
			return stillReferenced(domain.EntityLookup, id, domain.EntityStaff, s.ID)
		}
		return nil
	})
}

// CreatePerson stores a new person.
func (tx *transaction) CreatePerson(v domain.Person) (domain.Person, error) {
	return insertRecord(tx, personSpec, v)
}

// UpdatePerson mutates a person.
func (tx *transaction) UpdatePerson(id string, mutator func(*domain.Person) error) (domain.Person, error) {
	return updateRecord(tx, personSpec, id, mutator, nil)
}

// DeletePerson removes a person that backs no staff record.
func (tx *transaction) DeletePerson(id string) error {
	return deleteRecord(tx, personSpec, id, func(domain.Person) error {
		if s, ok := tx.state.staff.first(func(s domain.Staff) bool { return s.PersonStaffID == id }); ok {
			return stillReferenced(domain.EntityPerson, id, domain.EntityStaff, s.ID)
		}
		return nil
	})
}

// CreateStaff stores a new staff record.
func (tx *transaction) CreateStaff(v domain.Staff) (domain.Staff, error) {
	return insertRecord(tx, staffSpec, v)
}

// UpdateStaff mutates a staff record; the backing person is re-validated.
func (tx *transaction) UpdateStaff(id string, mutator func(*domain.Staff) error) (domain.Staff, error) {
	return updateRecord(tx, staffSpec, id, mutator, nil)
}

// DeleteStaff removes a staff record.
func (tx *transaction) DeleteStaff(id string) error {
	return deleteRecord(tx, staffSpec, id, nil)
}

// CreateRoom stores a new room.
func (tx *transaction) CreateRoom(v domain.Room) (domain.Room, error) {
	return insertRecord(tx, roomSpec, v)
}

// UpdateRoom mutates a room.
func (tx *transaction) UpdateRoom(id string, mutator func(*domain.Room) error) (domain.Room, error) {
	return updateRecord(tx, roomSpec, id, mutator, nil)
}

// DeleteRoom removes a room together with its beds, releasing any students
// assigned to them.
func (tx *transaction) DeleteRoom(id string) error {
	return deleteRecord(tx, roomSpec, id, func(domain.Room) error {
		for _, bed := range tx.state.beds.list(cloneBed) {
			if bed.RoomID != id {
				continue
			}
			if bed.StudentID != nil {
				if err := tx.clearStudentHostel(*bed.StudentID); err != nil {
					return err
				}
			}
			tx.state.beds.remove(bed.ID)
			tx.recordChange(domain.Change{Entity: domain.EntityBed, Action: domain.ActionDelete, Before: bed})
		}
		for _, student := range tx.state.students.list(cloneStudent) {
			if student.RoomID != nil && *student.RoomID == id {
				if err := tx.clearStudentHostel(student.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// CreateBed stores a new bed. Beds start without a student.
func (tx *transaction) CreateBed(v domain.Bed) (domain.Bed, error) {
	if v.StudentID != nil {
		return domain.Bed{}, domain.ErrValidation{Entity: domain.EntityBed, Field: "studentId", Reason: "is set only through hostel assignment"}
	}
	return insertRecord(tx, bedSpec, v)
}

// UpdateBed mutates a bed. Status and the student reference cannot change
// here, and an occupied bed cannot change room.
func (tx *transaction) UpdateBed(id string, mutator func(*domain.Bed) error) (domain.Bed, error) {
	return updateRecord(tx, bedSpec, id, mutator, func(before domain.Bed, next *domain.Bed) error {
		next.StudentID = clonePtr(before.StudentID)
		if next.Status != before.Status {
			return domain.ErrValidation{Entity: domain.EntityBed, Field: "status", Reason: "changes only through hostel assignment or maintenance"}
		}
		if before.StudentID != nil && next.RoomID != before.RoomID {
			return domain.ErrConflict{Entity: domain.EntityBed, ID: before.ID, Reason: "occupied bed cannot move to another room"}
		}
		return nil
	})
}

// DeleteBed removes an unoccupied bed.
func (tx *transaction) DeleteBed(id string) error {
	return deleteRecord(tx, bedSpec, id, func(b domain.Bed) error {
		if b.StudentID != nil {
			return domain.ErrConflict{Entity: domain.EntityBed, ID: id, Reason: fmt.Sprintf("occupied by student %q", *b.StudentID)}
		}
		return nil
	})
}

// CreateGuardian stores a new guardian.
func (tx *transaction) CreateGuardian(v domain.Guardian) (domain.Guardian, error) {
	return insertRecord(tx, guardianSpec, v)
}

// UpdateGuardian mutates a guardian.
func (tx *transaction) UpdateGuardian(id string, mutator func(*domain.Guardian) error) (domain.Guardian, error) {
	return updateRecord(tx, guardianSpec, id, mutator, nil)
}

// DeleteGuardian removes a guardian no student refers to.
func (tx *transaction) DeleteGuardian(id string) error {
	return deleteRecord(tx, guardianSpec, id, func(domain.Guardian) error {
		if s, ok := tx.state.students.first(func(s domain.Student) bool { return s.GuardianID == id }); ok {
			return stillReferenced(domain.EntityGuardian, id, domain.EntityStudent, s.ID)
		}
		return nil
	})
}

// CreateAcademicClass stores a new academic class.
func (tx *transaction) CreateAcademicClass(v domain.AcademicClass) (domain.AcademicClass, error) {
	return insertRecord(tx, academicClassSpec, v)
}

// UpdateAcademicClass mutates an academic class.
func (tx *transaction) UpdateAcademicClass(id string, mutator func(*domain.AcademicClass) error) (domain.AcademicClass, error) {
	return updateRecord(tx, academicClassSpec, id, mutator, nil)
}

// DeleteAcademicClass removes a class no student is enrolled in.
func (tx *transaction) DeleteAcademicClass(id string) error {
	return deleteRecord(tx, academicClassSpec, id, func(domain.AcademicClass) error {
		if s, ok := tx.state.students.first(func(s domain.Student) bool { return s.AcademicClassID == id }); ok {
			return stillReferenced(domain.EntityAcademicClass, id, domain.EntityStudent, s.ID)
		}
		return nil
	})
}

// CreateStudent stores a new student. A supplied room and bed are applied
// through hostel assignment.
func (tx *transaction) CreateStudent(v domain.Student) (domain.Student, error) {
	roomID, bedID := v.RoomID, v.BedID
	if (roomID == nil) != (bedID == nil) {
		return domain.Student{}, domain.ErrValidation{Entity: domain.EntityStudent, Field: "roomId", Reason: "roomId and bedId must be set together"}
	}
	v.RoomID, v.BedID = nil, nil
	created, err := insertRecord(tx, studentSpec, v)
	if err != nil || roomID == nil {
		return created, err
	}
	return tx.AssignHostel(created.ID, *roomID, *bedID)
}

// UpdateStudent mutates a student. Room and bed are kept.
func (tx *transaction) UpdateStudent(id string, mutator func(*domain.Student) error) (domain.Student, error) {
	return updateRecord(tx, studentSpec, id, mutator, func(before domain.Student, next *domain.Student) error {
		next.RoomID = clonePtr(before.RoomID)
		next.BedID = clonePtr(before.BedID)
		return nil
	})
}

// DeleteStudent removes a student and frees its bed.
func (tx *transaction) DeleteStudent(id string) error {
	return deleteRecord(tx, studentSpec, id, func(s domain.Student) error {
		if s.BedID != nil {
			tx.releaseBed(*s.BedID, id)
		}
		return nil
	})
}

// AssignHostel places a student on a bed, releasing any bed it held before.
func (tx *transaction) AssignHostel(studentID, roomID, bedID string) (domain.Student, error) {
	student, ok := tx.state.students.get(studentID)
	if !ok {
		return domain.Student{}, domain.ErrNotFound{Entity: domain.EntityStudent, ID: studentID}
	}
	room, ok := tx.state.rooms.get(roomID)
	if !ok {
		return domain.Student{}, domain.ErrNotFound{Entity: domain.EntityRoom, ID: roomID}
	}
	bed, ok := tx.state.beds.get(bedID)
	if !ok {
		return domain.Student{}, domain.ErrNotFound{Entity: domain.EntityBed, ID: bedID}
	}
	if bed.RoomID != roomID {
		return domain.Student{}, domain.ErrValidation{Entity: domain.EntityBed, Field: "roomId", Reason: fmt.Sprintf("bed %q does not belong to room %q", bedID, roomID)}
	}
	if room.Status != "" && room.Status != domain.StatusActive {
		return domain.Student{}, domain.ErrConflict{Entity: domain.EntityRoom, ID: roomID, Reason: fmt.Sprintf("room is %s", room.Status)}
	}
	if bed.StudentID != nil {
		if *bed.StudentID == studentID {
			return cloneStudent(student), nil
		}
		return domain.Student{}, domain.ErrConflict{Entity: domain.EntityBed, ID: bedID, Reason: fmt.Sprintf("occupied by student %q", *bed.StudentID)}
	}
	if bed.Status == domain.BedMaintenance {
		return domain.Student{}, domain.ErrConflict{Entity: domain.EntityBed, ID: bedID, Reason: "under maintenance"}
	}
	if student.BedID != nil {
		tx.releaseBed(*student.BedID, studentID)
	}

	beforeBed := cloneBed(bed)
	bed.Status = domain.BedOccupied
	bed.StudentID = &studentID
	bed.UpdatedAt = tx.stamp()
	tx.state.beds.replace(cloneBed(bed))
	tx.recordChange(domain.Change{Entity: domain.EntityBed, Action: domain.ActionUpdate, Before: beforeBed, After: cloneBed(bed)})

	beforeStudent := cloneStudent(student)
	student.RoomID = &roomID
	student.BedID = &bedID
	student.UpdatedAt = tx.stamp()
	tx.state.students.replace(cloneStudent(student))
	tx.recordChange(domain.Change{Entity: domain.EntityStudent, Action: domain.ActionUpdate, Before: beforeStudent, After: cloneStudent(student)})
	return cloneStudent(student), nil
}

// RemoveFromHostel frees the student's bed and clears its hostel references.
func (tx *transaction) RemoveFromHostel(studentID string) (domain.Student, error) {
	student, ok := tx.state.students.get(studentID)
	if !ok {
		return domain.Student{}, domain.ErrNotFound{Entity: domain.EntityStudent, ID: studentID}
	}
	if !student.InHostel() {
		return domain.Student{}, domain.ErrConflict{Entity: domain.EntityStudent, ID: studentID, Reason: "not assigned to a hostel bed"}
	}
	tx.releaseBed(*student.BedID, studentID)
	if err := tx.clearStudentHostel(studentID); err != nil {
		return domain.Student{}, err
	}
	updated, _ := tx.state.students.get(studentID)
	return cloneStudent(updated), nil
}

// SetBedMaintenance moves an unoccupied bed into or out of maintenance.
func (tx *transaction) SetBedMaintenance(bedID string, maintenance bool) (domain.Bed, error) {
	bed, ok := tx.state.beds.get(bedID)
	if !ok {
		return domain.Bed{}, domain.ErrNotFound{Entity: domain.EntityBed, ID: bedID}
	}
	if bed.StudentID != nil {
		return domain.Bed{}, domain.ErrConflict{Entity: domain.EntityBed, ID: bedID, Reason: fmt.Sprintf("occupied by student %q", *bed.StudentID)}
	}
	want := domain.BedAvailable
	if maintenance {
		want = domain.BedMaintenance
	}
	if bed.Status == want {
		return cloneBed(bed), nil
	}
	before := cloneBed(bed)
	bed.Status = want
	bed.UpdatedAt = tx.stamp()
	tx.state.beds.replace(cloneBed(bed))
	tx.recordChange(domain.Change{Entity: domain.EntityBed, Action: domain.ActionUpdate, Before: before, After: cloneBed(bed)})
	return cloneBed(bed), nil
}

// releaseBed marks a bed available if it is held by studentID.
func (tx *transaction) releaseBed(bedID, studentID string) {
	bed, ok := tx.state.beds.get(bedID)
	if !ok || bed.StudentID == nil || *bed.StudentID != studentID {
		return
	}
	before := cloneBed(bed)
	bed.StudentID = nil
	bed.Status = domain.BedAvailable
	bed.UpdatedAt = tx.stamp()
	tx.state.beds.replace(cloneBed(bed))
	tx.recordChange(domain.Change{Entity: domain.EntityBed, Action: domain.ActionUpdate, Before: before, After: cloneBed(bed)})
}

func (tx *transaction) clearStudentHostel(studentID string) error {
	student, ok := tx.state.students.get(studentID)
	if !ok {
		return domain.ErrNotFound{Entity: domain.EntityStudent, ID: studentID}
	}
	if student.RoomID == nil && student.BedID == nil {
		return nil
	}
	before := cloneStudent(student)
	student.RoomID = nil
	student.BedID = nil
	student.UpdatedAt = tx.stamp()
	tx.state.students.replace(cloneStudent(student))
	tx.recordChange(domain.Change{Entity: domain.EntityStudent, Action: domain.ActionUpdate, Before: before, After: cloneStudent(student)})
	return nil
}

func containsString(values []string, id string) bool {
	for _, v := range values {
		if v == id {
			return true
		}
	}
	return false
}
