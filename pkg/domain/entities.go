// Package domain defines the persistent entities, value types, and rule
// evaluation primitives used by hostelcore.
package domain

import "time"

// EntityType identifies the type of record stored in the domain.
type EntityType string

// Supported entity type identifiers used in Change records, errors, and persistence buckets.
const (
	// EntityPackageType identifies a boarding package category.
	EntityPackageType EntityType = "package_type"
	// EntityBoardingPackage identifies a boarding package.
	EntityBoardingPackage EntityType = "boarding_package"
	// EntityMenuItem identifies a boarding menu item.
	EntityMenuItem EntityType = "menu_item"
	// EntityMealType identifies a boarding meal type.
	EntityMealType EntityType = "meal_type"
	// EntityPackageMenuItem identifies a package/menu-item/meal-type row.
	EntityPackageMenuItem EntityType = "package_menu_item"
	// EntityMealPackage identifies a meal package.
	EntityMealPackage EntityType = "meal_package"
	// EntityLookup identifies a named lookup value (gender, designation, ...).
	EntityLookup EntityType = "lookup"
	// EntityPerson identifies a person record.
	EntityPerson EntityType = "person"
	// EntityStaff identifies a staff or teacher record.
	EntityStaff EntityType = "staff"
	// EntityRoom identifies a hostel room.
	EntityRoom EntityType = "room"
	// EntityBed identifies a hostel bed.
	EntityBed EntityType = "bed"
	// EntityGuardian identifies a student guardian.
	EntityGuardian EntityType = "guardian"
	// EntityAcademicClass identifies an academic class.
	EntityAcademicClass EntityType = "academic_class"
	// EntityStudent identifies a student.
	EntityStudent EntityType = "student"
)

// Status is the lifecycle status shared by most entities.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusArchive  Status = "Archive"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusArchive:
		return true
	}
	return false
}

// BedStatus describes the occupancy state of a bed.
type BedStatus string

const (
	BedAvailable   BedStatus = "Available"
	BedOccupied    BedStatus = "Occupied"
	BedMaintenance BedStatus = "Maintenance"
)

// Valid reports whether s is a known bed status.
func (s BedStatus) Valid() bool {
	switch s {
	case BedAvailable, BedOccupied, BedMaintenance:
		return true
	}
	return false
}

// LookupKind partitions lookup records.
type LookupKind string

const (
	LookupGender         LookupKind = "gender"
	LookupBloodGroup     LookupKind = "blood_group"
	LookupDesignation    LookupKind = "designation"
	LookupPersonCategory LookupKind = "person_category"
	LookupSubject        LookupKind = "subject"
	LookupReligion       LookupKind = "religion"
)

// Valid reports whether k is a known lookup kind.
func (k LookupKind) Valid() bool {
	switch k {
	case LookupGender, LookupBloodGroup, LookupDesignation, LookupPersonCategory, LookupSubject, LookupReligion:
		return true
	}
	return false
}

// Designation categories carried by designation lookups.
const (
	DesignationTeaching    = "teaching"
	DesignationNonTeaching = "non_teaching"
)

// PersonCategoryStaff is the person category code required for staff records.
const PersonCategoryStaff = "staff"

// StaffKind distinguishes teaching from support staff.
type StaffKind string

const (
	StaffTeacher StaffKind = "teacher"
	StaffSupport StaffKind = "support"
)

// Base holds the identity and timestamps shared by every stored record.
type Base struct {
	ID        string     `json:"id" yaml:"id"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// RecordID returns the record identifier.
func (b Base) RecordID() string { return b.ID }

// Meta exposes the embedded Base for generic persistence helpers.
func (b *Base) Meta() *Base { return b }

// Record is implemented by every stored entity through its embedded Base.
type Record interface {
	RecordID() string
}

// PackageType categorises boarding packages.
type PackageType struct {
	Base        `yaml:",inline"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Status      Status `json:"status" yaml:"status"`
}

// BoardingPackage is a priced boarding plan.
type BoardingPackage struct {
	Base          `yaml:",inline"`
	Name          string  `json:"name" yaml:"name"`
	PackageTypeID string  `json:"packageTypeId" yaml:"packageTypeId"`
	Price         float64 `json:"price" yaml:"price"`
	DurationDays  int     `json:"durationDays" yaml:"durationDays"`
	Description   string  `json:"description" yaml:"description"`
	Status        Status  `json:"status" yaml:"status"`
}

// BoardingMenuItem is a dish served by the boarding kitchen.
type BoardingMenuItem struct {
	Base        `yaml:",inline"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Status      Status `json:"status" yaml:"status"`
}

// BoardingMealType is a meal slot such as breakfast or dinner.
type BoardingMealType struct {
	Base        `yaml:",inline"`
	Name        string `json:"name" yaml:"name"`
	ServingTime string `json:"servingTime" yaml:"servingTime"`
	Status      Status `json:"status" yaml:"status"`
}

// BoardingPackageMenuItem links a package, a menu item, and a meal type.
type BoardingPackageMenuItem struct {
	Base       `yaml:",inline"`
	PackageID  string  `json:"packageId" yaml:"packageId"`
	MenuItemID string  `json:"menuItemId" yaml:"menuItemId"`
	MealTypeID string  `json:"mealTypeId" yaml:"mealTypeId"`
	Quantity   int     `json:"quantity" yaml:"quantity"`
	Price      float64 `json:"price" yaml:"price"`
	Note       string  `json:"note" yaml:"note"`
	Status     Status  `json:"status" yaml:"status"`
}

// Meal is a nested line of a meal package.
type Meal struct {
	ID         string `json:"id" yaml:"id"`
	MealTypeID string `json:"mealTypeId" yaml:"mealTypeId"`
	MenuItemID string `json:"menuItemId" yaml:"menuItemId"`
	Quantity   int    `json:"quantity" yaml:"quantity"`
}

// MealPackage bundles meals under a boarding package.
type MealPackage struct {
	Base      `yaml:",inline"`
	Name      string  `json:"name" yaml:"name"`
	PackageID string  `json:"packageId" yaml:"packageId"`
	Price     float64 `json:"price" yaml:"price"`
	Meals     []Meal  `json:"meals" yaml:"meals"`
	Status    Status  `json:"status" yaml:"status"`
}

// Lookup is a simple named reference value.
type Lookup struct {
	Base     `yaml:",inline"`
	Kind     LookupKind `json:"kind" yaml:"kind"`
	Name     string     `json:"name" yaml:"name"`
	Code     string     `json:"code" yaml:"code"`
	Category string     `json:"category,omitempty" yaml:"category,omitempty"`
	Status   Status     `json:"status" yaml:"status"`
}

// Person is the identity record backing staff members.
type Person struct {
	Base             `yaml:",inline"`
	FirstName        string  `json:"firstName" yaml:"firstName"`
	LastName         string  `json:"lastName" yaml:"lastName"`
	Email            string  `json:"email" yaml:"email"`
	Phone            string  `json:"phone" yaml:"phone"`
	PersonCategoryID string  `json:"personCategoryId" yaml:"personCategoryId"`
	GenderID         string  `json:"genderId,omitempty" yaml:"genderId,omitempty"`
	BloodGroupID     *string `json:"bloodGroupId,omitempty" yaml:"bloodGroupId,omitempty"`
	Status           Status  `json:"status" yaml:"status"`
}

// FullName joins first and last name.
func (p Person) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Qualification is an educational qualification of a staff member.
type Qualification struct {
	ID          string `json:"id" yaml:"id"`
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	Year        int    `json:"year" yaml:"year"`
	Grade       string `json:"grade,omitempty" yaml:"grade,omitempty"`
}

// Experience is a previous position held by a staff member.
type Experience struct {
	ID           string `json:"id" yaml:"id"`
	Organization string `json:"organization" yaml:"organization"`
	Position     string `json:"position" yaml:"position"`
	From         string `json:"from" yaml:"from"`
	To           string `json:"to,omitempty" yaml:"to,omitempty"`
}

// Reference is a professional reference of a staff member.
type Reference struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Relation string `json:"relation" yaml:"relation"`
	Phone    string `json:"phone" yaml:"phone"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Staff is a teacher or support staff record backed by a Person.
type Staff struct {
	Base                      `yaml:",inline"`
	PersonStaffID             string          `json:"personStaffId" yaml:"personStaffId"`
	DesignationID             string          `json:"designationId" yaml:"designationId"`
	Kind                      StaffKind       `json:"kind" yaml:"kind"`
	JoiningDate               string          `json:"joiningDate" yaml:"joiningDate"`
	SubjectIDs                []string        `json:"subjectIds" yaml:"subjectIds"`
	EducationalQualifications []Qualification `json:"educationalQualifications" yaml:"educationalQualifications"`
	ProfessionalExperience    []Experience    `json:"professionalExperience" yaml:"professionalExperience"`
	References                []Reference     `json:"references" yaml:"references"`
	Status                    Status          `json:"status" yaml:"status"`
}

// Room is a hostel room.
type Room struct {
	Base       `yaml:",inline"`
	RoomNumber string `json:"roomNumber" yaml:"roomNumber"`
	Floor      int    `json:"floor" yaml:"floor"`
	RoomType   string `json:"roomType" yaml:"roomType"`
	Capacity   int    `json:"capacity" yaml:"capacity"`
	Status     Status `json:"status" yaml:"status"`
}

// Bed is a bed within a room. StudentID is set only through hostel assignment.
type Bed struct {
	Base      `yaml:",inline"`
	RoomID    string    `json:"roomId" yaml:"roomId"`
	BedNumber string    `json:"bedNumber" yaml:"bedNumber"`
	Status    BedStatus `json:"status" yaml:"status"`
	StudentID *string   `json:"studentId" yaml:"studentId,omitempty"`
}

// Guardian is a student's guardian.
type Guardian struct {
	Base     `yaml:",inline"`
	Name     string `json:"name" yaml:"name"`
	Phone    string `json:"phone" yaml:"phone"`
	Email    string `json:"email" yaml:"email"`
	Relation string `json:"relation" yaml:"relation"`
	Status   Status `json:"status" yaml:"status"`
}

// AcademicClass is a class/section students are enrolled in.
type AcademicClass struct {
	Base    `yaml:",inline"`
	Name    string `json:"name" yaml:"name"`
	Section string `json:"section" yaml:"section"`
	Status  Status `json:"status" yaml:"status"`
}

// Student is an enrolled student. RoomID and BedID are either both set or both nil.
type Student struct {
	Base            `yaml:",inline"`
	FirstName       string  `json:"firstName" yaml:"firstName"`
	LastName        string  `json:"lastName" yaml:"lastName"`
	AdmissionNumber string  `json:"admissionNumber" yaml:"admissionNumber"`
	Email           string  `json:"email" yaml:"email"`
	Phone           string  `json:"phone" yaml:"phone"`
	GuardianID      string  `json:"guardianId" yaml:"guardianId"`
	AcademicClassID string  `json:"academicClassId" yaml:"academicClassId"`
	RoomID          *string `json:"roomId" yaml:"roomId,omitempty"`
	BedID           *string `json:"bedId" yaml:"bedId,omitempty"`
	Status          Status  `json:"status" yaml:"status"`
}

// FullName joins first and last name.
func (s Student) FullName() string {
	return Person{FirstName: s.FirstName, LastName: s.LastName}.FullName()
}

// InHostel reports whether the student currently holds a bed.
func (s Student) InHostel() bool {
	return s.RoomID != nil && s.BedID != nil
}
