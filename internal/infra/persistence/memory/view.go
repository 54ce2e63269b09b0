package memory

import "hostelcore/pkg/domain"

// transactionView exposes a read-only snapshot of the transactional state.
type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) domain.TransactionView {
	return transactionView{state: state}
}

func find[T domain.Record](t table[T], id string, clone func(T) T) (T, bool) {
	v, ok := t.get(id)
	if !ok {
		var zero T
		return zero, false
	}
	return clone(v), true
}

func (v transactionView) ListPackageTypes() []domain.PackageType {
	return v.state.packageTypes.list(clonePackageType)
}

func (v transactionView) FindPackageType(id string) (domain.PackageType, bool) {
	return find(v.state.packageTypes, id, clonePackageType)
}

func (v transactionView) ListBoardingPackages() []domain.BoardingPackage {
	return v.state.packages.list(cloneBoardingPackage)
}

func (v transactionView) FindBoardingPackage(id string) (domain.BoardingPackage, bool) {
	return find(v.state.packages, id, cloneBoardingPackage)
}

func (v transactionView) ListMenuItems() []domain.BoardingMenuItem {
	return v.state.menuItems.list(cloneMenuItem)
}

func (v transactionView) FindMenuItem(id string) (domain.BoardingMenuItem, bool) {
	return find(v.state.menuItems, id, cloneMenuItem)
}

func (v transactionView) ListMealTypes() []domain.BoardingMealType {
	return v.state.mealTypes.list(cloneMealType)
}

func (v transactionView) FindMealType(id string) (domain.BoardingMealType, bool) {
	return find(v.state.mealTypes, id, cloneMealType)
}

func (v transactionView) ListPackageMenuItems() []domain.BoardingPackageMenuItem {
	return v.state.packageMenuItems.list(clonePackageMenuItem)
}

func (v transactionView) FindPackageMenuItem(id string) (domain.BoardingPackageMenuItem, bool) {
	return find(v.state.packageMenuItems, id, clonePackageMenuItem)
}

func (v transactionView) ListMealPackages() []domain.MealPackage {
	return v.state.mealPackages.list(cloneMealPackage)
}

func (v transactionView) FindMealPackage(id string) (domain.MealPackage, bool) {
	return find(v.state.mealPackages, id, cloneMealPackage)
}

func (v transactionView) ListLookups() []domain.Lookup {
	return v.state.lookups.list(cloneLookup)
}

func (v transactionView) FindLookup(id string) (domain.Lookup, bool) {
	return find(v.state.lookups, id, cloneLookup)
}

func (v transactionView) ListPersons() []domain.Person {
	return v.state.persons.list(clonePerson)
}

func (v transactionView) FindPerson(id string) (domain.Person, bool) {
	return find(v.state.persons, id, clonePerson)
}

func (v transactionView) ListStaff() []domain.Staff {
	return v.state.staff.list(cloneStaff)
}

func (v transactionView) FindStaff(id string) (domain.Staff, bool) {
	return find(v.state.staff, id, cloneStaff)
}

func (v transactionView) ListRooms() []domain.Room {
	return v.state.rooms.list(cloneRoom)
}

func (v transactionView) FindRoom(id string) (domain.Room, bool) {
	return find(v.state.rooms, id, cloneRoom)
}

func (v transactionView) ListBeds() []domain.Bed {
	return v.state.beds.list(cloneBed)
}

func (v transactionView) FindBed(id string) (domain.Bed, bool) {
	return find(v.state.beds, id, cloneBed)
}

func (v transactionView) ListGuardians() []domain.Guardian {
	return v.state.guardians.list(cloneGuardian)
}

func (v transactionView) FindGuardian(id string) (domain.Guardian, bool) {
	return find(v.state.guardians, id, cloneGuardian)
}

func (v transactionView) ListAcademicClasses() []domain.AcademicClass {
	return v.state.classes.list(cloneAcademicClass)
}

func (v transactionView) FindAcademicClass(id string) (domain.AcademicClass, bool) {
	return find(v.state.classes, id, cloneAcademicClass)
}

func (v transactionView) ListStudents() []domain.Student {
	return v.state.students.list(cloneStudent)
}

func (v transactionView) FindStudent(id string) (domain.Student, bool) {
	return find(v.state.students, id, cloneStudent)
}
