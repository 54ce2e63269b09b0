package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope.
type Transaction interface {
	Snapshot() TransactionView

	CreatePackageType(PackageType) (PackageType, error)
	UpdatePackageType(id string, mutator func(*PackageType) error) (PackageType, error)
	DeletePackageType(id string) error

	CreateBoardingPackage(BoardingPackage) (BoardingPackage, error)
	UpdateBoardingPackage(id string, mutator func(*BoardingPackage) error) (BoardingPackage, error)
	DeleteBoardingPackage(id string) error

	CreateMenuItem(BoardingMenuItem) (BoardingMenuItem, error)
	UpdateMenuItem(id string, mutator func(*BoardingMenuItem) error) (BoardingMenuItem, error)
	DeleteMenuItem(id string) error

	CreateMealType(BoardingMealType) (BoardingMealType, error)
	UpdateMealType(id string, mutator func(*BoardingMealType) error) (BoardingMealType, error)
	DeleteMealType(id string) error

	CreatePackageMenuItem(BoardingPackageMenuItem) (BoardingPackageMenuItem, error)
	UpdatePackageMenuItem(id string, mutator func(*BoardingPackageMenuItem) error) (BoardingPackageMenuItem, error)
	DeletePackageMenuItem(id string) error

	CreateMealPackage(MealPackage) (MealPackage, error)
	UpdateMealPackage(id string, mutator func(*MealPackage) error) (MealPackage, error)
	DeleteMealPackage(id string) error

	CreateLookup(Lookup) (Lookup, error)
	UpdateLookup(id string, mutator func(*Lookup) error) (Lookup, error)
	DeleteLookup(id string) error

	CreatePerson(Person) (Person, error)
	UpdatePerson(id string, mutator func(*Person) error) (Person, error)
	DeletePerson(id string) error

	CreateStaff(Staff) (Staff, error)
	UpdateStaff(id string, mutator func(*Staff) error) (Staff, error)
	DeleteStaff(id string) error

	CreateRoom(Room) (Room, error)
	UpdateRoom(id string, mutator func(*Room) error) (Room, error)
	DeleteRoom(id string) error

	CreateBed(Bed) (Bed, error)
	UpdateBed(id string, mutator func(*Bed) error) (Bed, error)
	DeleteBed(id string) error

	CreateGuardian(Guardian) (Guardian, error)
	UpdateGuardian(id string, mutator func(*Guardian) error) (Guardian, error)
	DeleteGuardian(id string) error

	CreateAcademicClass(AcademicClass) (AcademicClass, error)
	UpdateAcademicClass(id string, mutator func(*AcademicClass) error) (AcademicClass, error)
	DeleteAcademicClass(id string) error

	CreateStudent(Student) (Student, error)
	UpdateStudent(id string, mutator func(*Student) error) (Student, error)
	DeleteStudent(id string) error

	AssignHostel(studentID, roomID, bedID string) (Student, error)
	RemoveFromHostel(studentID string) (Student, error)
	SetBedMaintenance(bedID string, maintenance bool) (Bed, error)
}

// TransactionView provides read-only access to snapshot data. List methods
// return copies in store order (newest first).
type TransactionView interface {
	ListPackageTypes() []PackageType
	FindPackageType(id string) (PackageType, bool)
	ListBoardingPackages() []BoardingPackage
	FindBoardingPackage(id string) (BoardingPackage, bool)
	ListMenuItems() []BoardingMenuItem
	FindMenuItem(id string) (BoardingMenuItem, bool)
	ListMealTypes() []BoardingMealType
	FindMealType(id string) (BoardingMealType, bool)
	ListPackageMenuItems() []BoardingPackageMenuItem
	FindPackageMenuItem(id string) (BoardingPackageMenuItem, bool)
	ListMealPackages() []MealPackage
	FindMealPackage(id string) (MealPackage, bool)
	ListLookups() []Lookup
	FindLookup(id string) (Lookup, bool)
	ListPersons() []Person
	FindPerson(id string) (Person, bool)
	ListStaff() []Staff
	FindStaff(id string) (Staff, bool)
	ListRooms() []Room
	FindRoom(id string) (Room, bool)
	ListBeds() []Bed
	FindBed(id string) (Bed, bool)
	ListGuardians() []Guardian
	FindGuardian(id string) (Guardian, bool)
	ListAcademicClasses() []AcademicClass
	FindAcademicClass(id string) (AcademicClass, bool)
	ListStudents() []Student
	FindStudent(id string) (Student, bool)
}

// PersistentStore is the abstraction over the reference memory store and the
// durable backends wrapping it.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	// Revision increases after every committed transaction or state import.
	Revision() uint64
}

// IDGenerator mints identifiers for new records and nested rows.
type IDGenerator interface {
	NewID(prefix string) string
}

// ID prefixes for stored records and nested rows.
const (
	PrefixPackageType     = "pt"
	PrefixBoardingPackage = "bp"
	PrefixMenuItem        = "bmi"
	PrefixMealType        = "bmt"
	PrefixPackageMenuItem = "bpmi"
	PrefixMealPackage     = "mp"
	PrefixMeal            = "meal"
	PrefixLookup          = "lk"
	PrefixPerson          = "p"
	PrefixStaff           = "t"
	PrefixQualification   = "edu"
	PrefixExperience      = "exp"
	PrefixReference       = "ref"
	PrefixRoom            = "r"
	PrefixBed             = "b"
	PrefixGuardian        = "g"
	PrefixAcademicClass   = "ac"
	PrefixStudent         = "s"
)

// IDPrefix returns the identifier prefix for an entity type.
func IDPrefix(entity EntityType) string {
	switch entity {
	case EntityPackageType:
		return PrefixPackageType
	case EntityBoardingPackage:
		return PrefixBoardingPackage
	case EntityMenuItem:
		return PrefixMenuItem
	case EntityMealType:
		return PrefixMealType
	case EntityPackageMenuItem:
		return PrefixPackageMenuItem
	case EntityMealPackage:
		return PrefixMealPackage
	case EntityLookup:
		return PrefixLookup
	case EntityPerson:
		return PrefixPerson
	case EntityStaff:
		return PrefixStaff
	case EntityRoom:
		return PrefixRoom
	case EntityBed:
		return PrefixBed
	case EntityGuardian:
		return PrefixGuardian
	case EntityAcademicClass:
		return PrefixAcademicClass
	case EntityStudent:
		return PrefixStudent
	}
	return string(entity)
}
