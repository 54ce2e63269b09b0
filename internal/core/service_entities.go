package core

import (
	"context"

	"hostelcore/internal/query"
	"hostelcore/pkg/domain"
)

// listRecords filters and pages one collection inside a read view and shapes
// only the returned page.
func listRecords[T, D any](
	ctx context.Context,
	s *Service,
	entity domain.EntityType,
	page, limit int,
	items func(TransactionView) []T,
	preds func(TransactionView) []query.Predicate[T],
	shape func(*resolver, []T) []D,
) (query.Page[D], error) {
	var out query.Page[D]
	err := s.run(ctx, "list_"+string(entity), func(ctx context.Context) (string, error) {
		return "", s.store.View(ctx, func(view TransactionView) error {
			p, err := query.Paginate(items(view), preds(view), page, limit)
			if err != nil {
				return err
			}
			out = query.Page[D]{
				Data:       shape(newResolver(view), p.Data),
				Total:      p.Total,
				Page:       p.Page,
				Limit:      p.Limit,
				TotalPages: p.TotalPages,
			}
			return nil
		})
	})
	return out, err
}

func getRecord[T, D any](
	ctx context.Context,
	s *Service,
	entity domain.EntityType,
	id string,
	find func(TransactionView) func(string) (T, bool),
	shape func(*resolver, []T) []D,
) (D, error) {
	var out D
	err := s.run(ctx, "get_"+string(entity), func(ctx context.Context) (string, error) {
		return id, s.store.View(ctx, func(view TransactionView) error {
			v, ok := find(view)(id)
			if !ok {
				return domain.ErrNotFound{Entity: entity, ID: id}
			}
			out = shape(newResolver(view), []T{v})[0]
			return nil
		})
	})
	return out, err
}

// mutate runs fn in a transaction and reports the affected record.
func mutate[T domain.Record](ctx context.Context, s *Service, op string, fn func(Transaction) (T, error)) (T, Result, error) {
	var out T
	var res Result
	err := s.run(ctx, op, func(ctx context.Context) (string, error) {
		var err error
		res, err = s.store.RunInTransaction(ctx, func(tx Transaction) error {
			var err error
			out, err = fn(tx)
			return err
		})
		return out.RecordID(), err
	})
	return out, res, err
}

func remove(ctx context.Context, s *Service, entity domain.EntityType, id string, fn func(Transaction) error) (Result, error) {
	var res Result
	err := s.run(ctx, operationName(domain.ActionDelete, entity), func(ctx context.Context) (string, error) {
		var err error
		res, err = s.store.RunInTransaction(ctx, fn)
		return id, err
	})
	return res, err
}

func patchWith[T any, P interface{ Apply(*T) }](patch P) func(*T) error {
	return func(v *T) error {
		patch.Apply(v)
		return nil
	}
}

func identity[T any](_ *resolver, items []T) []T { return items }

// ListPackageTypes returns a filtered page of package types.
func (s *Service) ListPackageTypes(ctx context.Context, filter PackageTypeFilter, page, limit int) (query.Page[domain.PackageType], error) {
	return listRecords(ctx, s, domain.EntityPackageType, page, limit,
		TransactionView.ListPackageTypes, filter.Predicates, identity[domain.PackageType])
}

// GetPackageType returns one resolved record.
func (s *Service) GetPackageType(ctx context.Context, id string) (domain.PackageType, error) {
	return getRecord(ctx, s, domain.EntityPackageType, id,
		func(v TransactionView) func(string) (domain.PackageType, bool) { return v.FindPackageType }, identity[domain.PackageType])
}

// CreatePackageType persists a new record.
func (s *Service) CreatePackageType(ctx context.Context, v domain.PackageType) (domain.PackageType, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityPackageType), func(tx Transaction) (domain.PackageType, error) {
		return tx.CreatePackageType(v)
	})
}

// UpdatePackageType merges patch into the stored record.
func (s *Service) UpdatePackageType(ctx context.Context, id string, patch domain.PackageTypePatch) (domain.PackageType, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityPackageType), func(tx Transaction) (domain.PackageType, error) {
		return tx.UpdatePackageType(id, patchWith[domain.PackageType](patch))
	})
}

// DeletePackageType removes a record.
func (s *Service) DeletePackageType(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityPackageType, id, func(tx Transaction) error { return tx.DeletePackageType(id) })
}

// ListBoardingPackages returns a filtered page of boarding packages.
func (s *Service) ListBoardingPackages(ctx context.Context, filter BoardingPackageFilter, page, limit int) (query.Page[BoardingPackageDetail], error) {
	return listRecords(ctx, s, domain.EntityBoardingPackage, page, limit,
		TransactionView.ListBoardingPackages, filter.Predicates, (*resolver).boardingPackages)
}

// GetBoardingPackage returns one resolved record.
func (s *Service) GetBoardingPackage(ctx context.Context, id string) (BoardingPackageDetail, error) {
	return getRecord(ctx, s, domain.EntityBoardingPackage, id,
		func(v TransactionView) func(string) (domain.BoardingPackage, bool) { return v.FindBoardingPackage }, (*resolver).boardingPackages)
}

// CreateBoardingPackage persists a new record.
func (s *Service) CreateBoardingPackage(ctx context.Context, v domain.BoardingPackage) (domain.BoardingPackage, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityBoardingPackage), func(tx Transaction) (domain.BoardingPackage, error) {
		return tx.CreateBoardingPackage(v)
	})
}

// UpdateBoardingPackage merges patch into the stored record.
func (s *Service) UpdateBoardingPackage(ctx context.Context, id string, patch domain.BoardingPackagePatch) (domain.BoardingPackage, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityBoardingPackage), func(tx Transaction) (domain.BoardingPackage, error) {
		return tx.UpdateBoardingPackage(id, patchWith[domain.BoardingPackage](patch))
	})
}

// DeleteBoardingPackage removes a record.
func (s *Service) DeleteBoardingPackage(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityBoardingPackage, id, func(tx Transaction) error { return tx.DeleteBoardingPackage(id) })
}

// ListMenuItems returns a filtered page of menu items.
func (s *Service) ListMenuItems(ctx context.Context, filter MenuItemFilter, page, limit int) (query.Page[domain.BoardingMenuItem], error) {
	return listRecords(ctx, s, domain.EntityMenuItem, page, limit,
		TransactionView.ListMenuItems, filter.Predicates, identity[domain.BoardingMenuItem])
}

// GetMenuItem returns one resolved record.
func (s *Service) GetMenuItem(ctx context.Context, id string) (domain.BoardingMenuItem, error) {
	return getRecord(ctx, s, domain.EntityMenuItem, id,
		func(v TransactionView) func(string) (domain.BoardingMenuItem, bool) { return v.FindMenuItem }, identity[domain.BoardingMenuItem])
}

// CreateMenuItem persists a new record.
func (s *Service) CreateMenuItem(ctx context.Context, v domain.BoardingMenuItem) (domain.BoardingMenuItem, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityMenuItem), func(tx Transaction) (domain.BoardingMenuItem, error) {
		return tx.CreateMenuItem(v)
	})
}

// UpdateMenuItem merges patch into the stored record.
func (s *Service) UpdateMenuItem(ctx context.Context, id string, patch domain.MenuItemPatch) (domain.BoardingMenuItem, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityMenuItem), func(tx Transaction) (domain.BoardingMenuItem, error) {
		return tx.UpdateMenuItem(id, patchWith[domain.BoardingMenuItem](patch))
	})
}

// DeleteMenuItem removes a record.
func (s *Service) DeleteMenuItem(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityMenuItem, id, func(tx Transaction) error { return tx.DeleteMenuItem(id) })
}

// ListMealTypes returns a filtered page of meal types.
func (s *Service) ListMealTypes(ctx context.Context, filter MealTypeFilter, page, limit int) (query.Page[domain.BoardingMealType], error) {
	return listRecords(ctx, s, domain.EntityMealType, page, limit,
		TransactionView.ListMealTypes, filter.Predicates, identity[domain.BoardingMealType])
}

// GetMealType returns one resolved record.
func (s *Service) GetMealType(ctx context.Context, id string) (domain.BoardingMealType, error) {
	return getRecord(ctx, s, domain.EntityMealType, id,
		func(v TransactionView) func(string) (domain.BoardingMealType, bool) { return v.FindMealType }, identity[domain.BoardingMealType])
}

// CreateMealType persists a new record.
func (s *Service) CreateMealType(ctx context.Context, v domain.BoardingMealType) (domain.BoardingMealType, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityMealType), func(tx Transaction) (domain.BoardingMealType, error) {
		return tx.CreateMealType(v)
	})
}

// UpdateMealType merges patch into the stored record.
func (s *Service) UpdateMealType(ctx context.Context, id string, patch domain.MealTypePatch) (domain.BoardingMealType, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityMealType), func(tx Transaction) (domain.BoardingMealType, error) {
		return tx.UpdateMealType(id, patchWith[domain.BoardingMealType](patch))
	})
}

// DeleteMealType removes a record.
func (s *Service) DeleteMealType(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityMealType, id, func(tx Transaction) error { return tx.DeleteMealType(id) })
}

// ListPackageMenuItems returns a filtered page of package menu item rows.
func (s *Service) ListPackageMenuItems(ctx context.Context, filter PackageMenuItemFilter, page, limit int) (query.Page[PackageMenuItemDetail], error) {
	return listRecords(ctx, s, domain.EntityPackageMenuItem, page, limit,
		TransactionView.ListPackageMenuItems, filter.Predicates, (*resolver).packageMenuItems)
}

// GetPackageMenuItem returns one resolved record.
func (s *Service) GetPackageMenuItem(ctx context.Context, id string) (PackageMenuItemDetail, error) {
	return getRecord(ctx, s, domain.EntityPackageMenuItem, id,
		func(v TransactionView) func(string) (domain.BoardingPackageMenuItem, bool) {
			return v.FindPackageMenuItem
		}, (*resolver).packageMenuItems)
}

// CreatePackageMenuItem persists a new record.
func (s *Service) CreatePackageMenuItem(ctx context.Context, v domain.BoardingPackageMenuItem) (domain.BoardingPackageMenuItem, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityPackageMenuItem), func(tx Transaction) (domain.BoardingPackageMenuItem, error) {
		return tx.CreatePackageMenuItem(v)
	})
}

// UpdatePackageMenuItem merges patch into the stored record.
func (s *Service) UpdatePackageMenuItem(ctx context.Context, id string, patch domain.PackageMenuItemPatch) (domain.BoardingPackageMenuItem, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityPackageMenuItem), func(tx Transaction) (domain.BoardingPackageMenuItem, error) {
		return tx.UpdatePackageMenuItem(id, patchWith[domain.BoardingPackageMenuItem](patch))
	})
}

// DeletePackageMenuItem removes a record.
func (s *Service) DeletePackageMenuItem(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityPackageMenuItem, id, func(tx Transaction) error { return tx.DeletePackageMenuItem(id) })
}

// ListMealPackages returns a filtered page of meal packages.
func (s *Service) ListMealPackages(ctx context.Context, filter MealPackageFilter, page, limit int) (query.Page[MealPackageDetail], error) {
	return listRecords(ctx, s, domain.EntityMealPackage, page, limit,
		TransactionView.ListMealPackages, filter.Predicates, (*resolver).mealPackages)
}

// GetMealPackage returns one resolved record.
func (s *Service) GetMealPackage(ctx context.Context, id string) (MealPackageDetail, error) {
	return getRecord(ctx, s, domain.EntityMealPackage, id,
		func(v TransactionView) func(string) (domain.MealPackage, bool) { return v.FindMealPackage }, (*resolver).mealPackages)
}

// CreateMealPackage persists a new record.
func (s *Service) CreateMealPackage(ctx context.Context, v domain.MealPackage) (domain.MealPackage, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityMealPackage), func(tx Transaction) (domain.MealPackage, error) {
		return tx.CreateMealPackage(v)
	})
}

// UpdateMealPackage merges patch into the stored record.
func (s *Service) UpdateMealPackage(ctx context.Context, id string, patch domain.MealPackagePatch) (domain.MealPackage, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityMealPackage), func(tx Transaction) (domain.MealPackage, error) {
		return tx.UpdateMealPackage(id, patchWith[domain.MealPackage](patch))
	})
}

// DeleteMealPackage removes a record.
func (s *Service) DeleteMealPackage(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityMealPackage, id, func(tx Transaction) error { return tx.DeleteMealPackage(id) })
}

// ListLookups returns a filtered page of lookups.
func (s *Service) ListLookups(ctx context.Context, filter LookupFilter, page, limit int) (query.Page[domain.Lookup], error) {
	return listRecords(ctx, s, domain.EntityLookup, page, limit,
		TransactionView.ListLookups, filter.Predicates, identity[domain.Lookup])
}

// GetLookup returns one resolved record.
func (s *Service) GetLookup(ctx context.Context, id string) (domain.Lookup, error) {
	return getRecord(ctx, s, domain.EntityLookup, id,
		func(v TransactionView) func(string) (domain.Lookup, bool) { return v.FindLookup }, identity[domain.Lookup])
}

// CreateLookup persists a new record.
func (s *Service) CreateLookup(ctx context.Context, v domain.Lookup) (domain.Lookup, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityLookup), func(tx Transaction) (domain.Lookup, error) {
		return tx.CreateLookup(v)
	})
}

// UpdateLookup merges patch into the stored record.
func (s *Service) UpdateLookup(ctx context.Context, id string, patch domain.LookupPatch) (domain.Lookup, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityLookup), func(tx Transaction) (domain.Lookup, error) {
		return tx.UpdateLookup(id, patchWith[domain.Lookup](patch))
	})
}

// DeleteLookup removes a record.
func (s *Service) DeleteLookup(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityLookup, id, func(tx Transaction) error { return tx.DeleteLookup(id) })
}

// ListPersons returns a filtered page of persons.
func (s *Service) ListPersons(ctx context.Context, filter PersonFilter, page, limit int) (query.Page[PersonDetail], error) {
	return listRecords(ctx, s, domain.EntityPerson, page, limit,
		TransactionView.ListPersons, filter.Predicates, (*resolver).persons)
}

// GetPerson returns one resolved record.
func (s *Service) GetPerson(ctx context.Context, id string) (PersonDetail, error) {
	return getRecord(ctx, s, domain.EntityPerson, id,
		func(v TransactionView) func(string) (domain.Person, bool) { return v.FindPerson }, (*resolver).persons)
}

// CreatePerson persists a new record.
func (s *Service) CreatePerson(ctx context.Context, v domain.Person) (domain.Person, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityPerson), func(tx Transaction) (domain.Person, error) {
		return tx.CreatePerson(v)
	})
}

// UpdatePerson merges patch into the stored record.
func (s *Service) UpdatePerson(ctx context.Context, id string, patch domain.PersonPatch) (domain.Person, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityPerson), func(tx Transaction) (domain.Person, error) {
		return tx.UpdatePerson(id, patchWith[domain.Person](patch))
	})
}

// DeletePerson removes a record.
func (s *Service) DeletePerson(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityPerson, id, func(tx Transaction) error { return tx.DeletePerson(id) })
}

// ListStaff returns a filtered page of staff records.
func (s *Service) ListStaff(ctx context.Context, filter StaffFilter, page, limit int) (query.Page[StaffDetail], error) {
	return listRecords(ctx, s, domain.EntityStaff, page, limit,
		TransactionView.ListStaff, filter.Predicates, (*resolver).staff)
}

// GetStaff returns one resolved record.
func (s *Service) GetStaff(ctx context.Context, id string) (StaffDetail, error) {
	return getRecord(ctx, s, domain.EntityStaff, id,
		func(v TransactionView) func(string) (domain.Staff, bool) { return v.FindStaff }, (*resolver).staff)
}

// CreateStaff persists a new record.
func (s *Service) CreateStaff(ctx context.Context, v domain.Staff) (domain.Staff, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityStaff), func(tx Transaction) (domain.Staff, error) {
		return tx.CreateStaff(v)
	})
}

// UpdateStaff merges patch into the stored record.
func (s *Service) UpdateStaff(ctx context.Context, id string, patch domain.StaffPatch) (domain.Staff, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityStaff), func(tx Transaction) (domain.Staff, error) {
		return tx.UpdateStaff(id, patchWith[domain.Staff](patch))
	})
}

// DeleteStaff removes a record.
func (s *Service) DeleteStaff(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityStaff, id, func(tx Transaction) error { return tx.DeleteStaff(id) })
}

// ListRooms returns a filtered page of rooms.
func (s *Service) ListRooms(ctx context.Context, filter RoomFilter, page, limit int) (query.Page[RoomDetail], error) {
	return listRecords(ctx, s, domain.EntityRoom, page, limit,
		TransactionView.ListRooms, filter.Predicates, (*resolver).rooms)
}

// GetRoom returns one resolved record.
func (s *Service) GetRoom(ctx context.Context, id string) (RoomDetail, error) {
	return getRecord(ctx, s, domain.EntityRoom, id,
		func(v TransactionView) func(string) (domain.Room, bool) { return v.FindRoom }, (*resolver).rooms)
}

// CreateRoom persists a new record.
func (s *Service) CreateRoom(ctx context.Context, v domain.Room) (domain.Room, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityRoom), func(tx Transaction) (domain.Room, error) {
		return tx.CreateRoom(v)
	})
}

// UpdateRoom merges patch into the stored record.
func (s *Service) UpdateRoom(ctx context.Context, id string, patch domain.RoomPatch) (domain.Room, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityRoom), func(tx Transaction) (domain.Room, error) {
		return tx.UpdateRoom(id, patchWith[domain.Room](patch))
	})
}

// DeleteRoom removes a record.
func (s *Service) DeleteRoom(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityRoom, id, func(tx Transaction) error { return tx.DeleteRoom(id) })
}

// ListBeds returns a filtered page of beds.
func (s *Service) ListBeds(ctx context.Context, filter BedFilter, page, limit int) (query.Page[BedDetail], error) {
	return listRecords(ctx, s, domain.EntityBed, page, limit,
		TransactionView.ListBeds, filter.Predicates, (*resolver).beds)
}

// GetBed returns one resolved record.
func (s *Service) GetBed(ctx context.Context, id string) (BedDetail, error) {
	return getRecord(ctx, s, domain.EntityBed, id,
		func(v TransactionView) func(string) (domain.Bed, bool) { return v.FindBed }, (*resolver).beds)
}

// CreateBed persists a new record.
func (s *Service) CreateBed(ctx context.Context, v domain.Bed) (domain.Bed, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityBed), func(tx Transaction) (domain.Bed, error) {
		return tx.CreateBed(v)
	})
}

// UpdateBed merges patch into the stored record.
func (s *Service) UpdateBed(ctx context.Context, id string, patch domain.BedPatch) (domain.Bed, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityBed), func(tx Transaction) (domain.Bed, error) {
		return tx.UpdateBed(id, patchWith[domain.Bed](patch))
	})
}

// DeleteBed removes a record.
func (s *Service) DeleteBed(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityBed, id, func(tx Transaction) error { return tx.DeleteBed(id) })
}

// ListGuardians returns a filtered page of guardians.
func (s *Service) ListGuardians(ctx context.Context, filter GuardianFilter, page, limit int) (query.Page[domain.Guardian], error) {
	return listRecords(ctx, s, domain.EntityGuardian, page, limit,
		TransactionView.ListGuardians, filter.Predicates, identity[domain.Guardian])
}

// GetGuardian returns one resolved record.
func (s *Service) GetGuardian(ctx context.Context, id string) (domain.Guardian, error) {
	return getRecord(ctx, s, domain.EntityGuardian, id,
		func(v TransactionView) func(string) (domain.Guardian, bool) { return v.FindGuardian }, identity[domain.Guardian])
}

// CreateGuardian persists a new record.
func (s *Service) CreateGuardian(ctx context.Context, v domain.Guardian) (domain.Guardian, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityGuardian), func(tx Transaction) (domain.Guardian, error) {
		return tx.CreateGuardian(v)
	})
}

// UpdateGuardian merges patch into the stored record.
func (s *Service) UpdateGuardian(ctx context.Context, id string, patch domain.GuardianPatch) (domain.Guardian, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityGuardian), func(tx Transaction) (domain.Guardian, error) {
		return tx.UpdateGuardian(id, patchWith[domain.Guardian](patch))
	})
}

// DeleteGuardian removes a record.
func (s *Service) DeleteGuardian(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityGuardian, id, func(tx Transaction) error { return tx.DeleteGuardian(id) })
}

// ListAcademicClasses returns a filtered page of academic classes.
func (s *Service) ListAcademicClasses(ctx context.Context, filter AcademicClassFilter, page, limit int) (query.Page[domain.AcademicClass], error) {
	return listRecords(ctx, s, domain.EntityAcademicClass, page, limit,
		TransactionView.ListAcademicClasses, filter.Predicates, identity[domain.AcademicClass])
}

// GetAcademicClass returns one resolved record.
func (s *Service) GetAcademicClass(ctx context.Context, id string) (domain.AcademicClass, error) {
	return getRecord(ctx, s, domain.EntityAcademicClass, id,
		func(v TransactionView) func(string) (domain.AcademicClass, bool) { return v.FindAcademicClass }, identity[domain.AcademicClass])
}

// CreateAcademicClass persists a new record.
func (s *Service) CreateAcademicClass(ctx context.Context, v domain.AcademicClass) (domain.AcademicClass, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityAcademicClass), func(tx Transaction) (domain.AcademicClass, error) {
		return tx.CreateAcademicClass(v)
	})
}

// UpdateAcademicClass merges patch into the stored record.
func (s *Service) UpdateAcademicClass(ctx context.Context, id string, patch domain.AcademicClassPatch) (domain.AcademicClass, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityAcademicClass), func(tx Transaction) (domain.AcademicClass, error) {
		return tx.UpdateAcademicClass(id, patchWith[domain.AcademicClass](patch))
	})
}

// DeleteAcademicClass removes a record.
func (s *Service) DeleteAcademicClass(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityAcademicClass, id, func(tx Transaction) error { return tx.DeleteAcademicClass(id) })
}

// ListStudents returns a filtered page of students.
func (s *Service) ListStudents(ctx context.Context, filter StudentFilter, page, limit int) (query.Page[StudentDetail], error) {
	return listRecords(ctx, s, domain.EntityStudent, page, limit,
		TransactionView.ListStudents, filter.Predicates, (*resolver).students)
}

// GetStudent returns one resolved record.
func (s *Service) GetStudent(ctx context.Context, id string) (StudentDetail, error) {
	return getRecord(ctx, s, domain.EntityStudent, id,
		func(v TransactionView) func(string) (domain.Student, bool) { return v.FindStudent }, (*resolver).students)
}

// CreateStudent persists a new record.
func (s *Service) CreateStudent(ctx context.Context, v domain.Student) (domain.Student, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionCreate, domain.EntityStudent), func(tx Transaction) (domain.Student, error) {
		return tx.CreateStudent(v)
	})
}

// UpdateStudent merges patch into the stored record.
func (s *Service) UpdateStudent(ctx context.Context, id string, patch domain.StudentPatch) (domain.Student, Result, error) {
	return mutate(ctx, s, operationName(domain.ActionUpdate, domain.EntityStudent), func(tx Transaction) (domain.Student, error) {
		return tx.UpdateStudent(id, patchWith[domain.Student](patch))
	})
}

// DeleteStudent removes a record.
func (s *Service) DeleteStudent(ctx context.Context, id string) (Result, error) {
	return remove(ctx, s, domain.EntityStudent, id, func(tx Transaction) error { return tx.DeleteStudent(id) })
}
