package domain

// Patch types carry the fields of a partial update. A nil field is absent and
// leaves the stored value untouched. Identity, timestamps, and hostel
// assignment references are not patchable.

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// PackageTypePatch updates a package type.
type PackageTypePatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

// Apply merges the patch into v.
func (p PackageTypePatch) Apply(v *PackageType) {
	set(&v.Name, p.Name)
	set(&v.Description, p.Description)
	set(&v.Status, p.Status)
}

// BoardingPackagePatch updates a boarding package.
type BoardingPackagePatch struct {
	Name          *string  `json:"name"`
	PackageTypeID *string  `json:"packageTypeId"`
	Price         *float64 `json:"price"`
	DurationDays  *int     `json:"durationDays"`
	Description   *string  `json:"description"`
	Status        *Status  `json:"status"`
}

// Apply merges the patch into v.
func (p BoardingPackagePatch) Apply(v *BoardingPackage) {
	set(&v.Name, p.Name)
	set(&v.PackageTypeID, p.PackageTypeID)
	set(&v.Price, p.Price)
	set(&v.DurationDays, p.DurationDays)
	set(&v.Description, p.Description)
	set(&v.Status, p.Status)
}

// MenuItemPatch updates a menu item.
type MenuItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

// Apply merges the patch into v.
func (p MenuItemPatch) Apply(v *BoardingMenuItem) {
	set(&v.Name, p.Name)
	set(&v.Description, p.Description)
	set(&v.Status, p.Status)
}

// MealTypePatch updates a meal type.
type MealTypePatch struct {
	Name        *string `json:"name"`
	ServingTime *string `json:"servingTime"`
	Status      *Status `json:"status"`
}

// Apply merges the patch into v.
func (p MealTypePatch) Apply(v *BoardingMealType) {
	set(&v.Name, p.Name)
	set(&v.ServingTime, p.ServingTime)
	set(&v.Status, p.Status)
}

// PackageMenuItemPatch updates a package menu item.
type PackageMenuItemPatch struct {
	PackageID  *string  `json:"packageId"`
	MenuItemID *string  `json:"menuItemId"`
	MealTypeID *string  `json:"mealTypeId"`
	Quantity   *int     `json:"quantity"`
	Price      *float64 `json:"price"`
	Note       *string  `json:"note"`
	Status     *Status  `json:"status"`
}

// Apply merges the patch into v.
func (p PackageMenuItemPatch) Apply(v *BoardingPackageMenuItem) {
	set(&v.PackageID, p.PackageID)
	set(&v.MenuItemID, p.MenuItemID)
	set(&v.MealTypeID, p.MealTypeID)
	set(&v.Quantity, p.Quantity)
	set(&v.Price, p.Price)
	set(&v.Note, p.Note)
	set(&v.Status, p.Status)
}

// MealPackagePatch updates a meal package. Meals replaces the whole list.
type MealPackagePatch struct {
	Name      *string  `json:"name"`
	PackageID *string  `json:"packageId"`
	Price     *float64 `json:"price"`
	Meals     *[]Meal  `json:"meals"`
	Status    *Status  `json:"status"`
}

// Apply merges the patch into v.
func (p MealPackagePatch) Apply(v *MealPackage) {
	set(&v.Name, p.Name)
	set(&v.PackageID, p.PackageID)
	set(&v.Price, p.Price)
	set(&v.Meals, p.Meals)
	set(&v.Status, p.Status)
}

// LookupPatch updates a lookup. The kind is fixed at creation.
type LookupPatch struct {
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	Category *string `json:"category"`
	Status   *Status `json:"status"`
}

// Apply merges the patch into v.
func (p LookupPatch) Apply(v *Lookup) {
	set(&v.Name, p.Name)
	set(&v.Code, p.Code)
	set(&v.Category, p.Category)
	set(&v.Status, p.Status)
}

// PersonPatch updates a person.
type PersonPatch struct {
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	PersonCategoryID *string `json:"personCategoryId"`
	GenderID         *string `json:"genderId"`
	BloodGroupID     *string `json:"bloodGroupId"`
	Status           *Status `json:"status"`
}

// Apply merges the patch into v. An empty bloodGroupId clears the reference.
func (p PersonPatch) Apply(v *Person) {
	set(&v.FirstName, p.FirstName)
	set(&v.LastName, p.LastName)
	set(&v.Email, p.Email)
	set(&v.Phone, p.Phone)
	set(&v.PersonCategoryID, p.PersonCategoryID)
	set(&v.GenderID, p.GenderID)
	if p.BloodGroupID != nil {
		if *p.BloodGroupID == "" {
			v.BloodGroupID = nil
		} else {
			id := *p.BloodGroupID
			v.BloodGroupID = &id
		}
	}
	set(&v.Status, p.Status)
}

// StaffPatch updates a staff record. Nested lists replace the stored lists;
// entries keep their ids when supplied.
type StaffPatch struct {
	PersonStaffID             *string          `json:"personStaffId"`
	DesignationID             *string          `json:"designationId"`
	Kind                      *StaffKind       `json:"kind"`
	JoiningDate               *string          `json:"joiningDate"`
	SubjectIDs                *[]string        `json:"subjectIds"`
	EducationalQualifications *[]Qualification `json:"educationalQualifications"`
	ProfessionalExperience    *[]Experience    `json:"professionalExperience"`
	References                *[]Reference     `json:"references"`
	Status                    *Status          `json:"status"`
}

// Apply merges the patch into v.
func (p StaffPatch) Apply(v *Staff) {
	set(&v.PersonStaffID, p.PersonStaffID)
	set(&v.DesignationID, p.DesignationID)
	set(&v.Kind, p.Kind)
	set(&v.JoiningDate, p.JoiningDate)
	set(&v.SubjectIDs, p.SubjectIDs)
	set(&v.EducationalQualifications, p.EducationalQualifications)
	set(&v.ProfessionalExperience, p.ProfessionalExperience)
	set(&v.References, p.References)
	set(&v.Status, p.Status)
}

// RoomPatch updates a room.
type RoomPatch struct {
	RoomNumber *string `json:"roomNumber"`
	Floor      *int    `json:"floor"`
	RoomType   *string `json:"roomType"`
	Capacity   *int    `json:"capacity"`
	Status     *Status `json:"status"`
}

// Apply merges the patch into v.
func (p RoomPatch) Apply(v *Room) {
	set(&v.RoomNumber, p.RoomNumber)
	set(&v.Floor, p.Floor)
	set(&v.RoomType, p.RoomType)
	set(&v.Capacity, p.Capacity)
	set(&v.Status, p.Status)
}

// BedPatch updates a bed. Status and the student reference are owned by
// hostel assignment and maintenance.
type BedPatch struct {
	RoomID    *string `json:"roomId"`
	BedNumber *string `json:"bedNumber"`
}

// Apply merges the patch into v.
func (p BedPatch) Apply(v *Bed) {
	set(&v.RoomID, p.RoomID)
	set(&v.BedNumber, p.BedNumber)
}

// GuardianPatch updates a guardian.
type GuardianPatch struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Relation *string `json:"relation"`
	Status   *Status `json:"status"`
}

// Apply merges the patch into v.
func (p GuardianPatch) Apply(v *Guardian) {
	set(&v.Name, p.Name)
	set(&v.Phone, p.Phone)
	set(&v.Email, p.Email)
	set(&v.Relation, p.Relation)
	set(&v.Status, p.Status)
}

// AcademicClassPatch updates an academic class.
type AcademicClassPatch struct {
	Name    *string `json:"name"`
	Section *string `json:"section"`
	Status  *Status `json:"status"`
}

// Apply merges the patch into v.
func (p AcademicClassPatch) Apply(v *AcademicClass) {
	set(&v.Name, p.Name)
	set(&v.Section, p.Section)
	set(&v.Status, p.Status)
}

// StudentPatch updates a student. Room and bed change only through hostel
// assignment.
type StudentPatch struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	AdmissionNumber *string `json:"admissionNumber"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	GuardianID      *string `json:"guardianId"`
	AcademicClassID *string `json:"academicClassId"`
	Status          *Status `json:"status"`
}

// Apply merges the patch into v.
func (p StudentPatch) Apply(v *Student) {
	set(&v.FirstName, p.FirstName)
	set(&v.LastName, p.LastName)
	set(&v.AdmissionNumber, p.AdmissionNumber)
	set(&v.Email, p.Email)
	set(&v.Phone, p.Phone)
	set(&v.GuardianID, p.GuardianID)
	set(&v.AcademicClassID, p.AcademicClassID)
	set(&v.Status, p.Status)
}
