// Package fixtures loads the embedded demo dataset into an empty store.
package fixtures

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/pkg/domain"
)

//go:embed seed.yaml
var seedYAML []byte

// Assignment places a student in a bed after all records exist.
type Assignment struct {
	StudentID string `yaml:"studentId"`
	RoomID    string `yaml:"roomId"`
	BedID     string `yaml:"bedId"`
}

// Seed is a dataset in dependency order plus the hostel placements and
// maintenance flags that must go through dedicated operations.
type Seed struct {
	memory.Snapshot `yaml:",inline"`
	Assignments     []Assignment `yaml:"assignments"`
	Maintenance     []string     `yaml:"maintenance"`
}

// Default decodes the embedded dataset.
func Default() (Seed, error) {
	return Parse(seedYAML)
}

// Parse decodes a YAML dataset. Unknown fields are rejected.
func Parse(data []byte) (Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("decode fixtures: %w", err)
	}
	return seed, nil
}

// Apply creates every record of seed in one transaction so validation and
// rules run as they would for API writes. It does nothing and reports false
// when the store already holds data.
func Apply(ctx context.Context, store domain.PersistentStore, seed Seed) (bool, error) {
	empty := true
	if err := store.View(ctx, func(view domain.TransactionView) error {
		empty = isEmpty(view)
		return nil
	}); err != nil {
		return false, err
	}
	if !empty {
		return false, nil
	}
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return create(tx, seed)
	})
	if err != nil {
		return false, fmt.Errorf("apply fixtures: %w", err)
	}
	return true, nil
}

func create(tx domain.Transaction, seed Seed) error {
	steps := []func() error{
		each(seed.Lookups, tx.CreateLookup),
		each(seed.PackageTypes, tx.CreatePackageType),
		each(seed.Packages, tx.CreateBoardingPackage),
		each(seed.MenuItems, tx.CreateMenuItem),
		each(seed.MealTypes, tx.CreateMealType),
		each(seed.PackageMenuItems, tx.CreatePackageMenuItem),
		each(seed.MealPackages, tx.CreateMealPackage),
		each(seed.Persons, tx.CreatePerson),
		each(seed.Staff, tx.CreateStaff),
		each(seed.Rooms, tx.CreateRoom),
		each(seed.Beds, tx.CreateBed),
		each(seed.Guardians, tx.CreateGuardian),
		each(seed.AcademicClasses, tx.CreateAcademicClass),
		each(seed.Students, tx.CreateStudent),
		func() error {
			for _, a := range seed.Assignments {
				if _, err := tx.AssignHostel(a.StudentID, a.RoomID, a.BedID); err != nil {
					return fmt.Errorf("assign %s: %w", a.StudentID, err)
				}
			}
			return nil
		},
		func() error {
			for _, bedID := range seed.Maintenance {
				if _, err := tx.SetBedMaintenance(bedID, true); err != nil {
					return fmt.Errorf("maintenance %s: %w", bedID, err)
				}
			}
			return nil
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func each[T domain.Record](items []T, fn func(T) (T, error)) func() error {
	return func() error {
		for _, item := range items {
			if _, err := fn(item); err != nil {
				return fmt.Errorf("create %s: %w", item.RecordID(), err)
			}
		}
		return nil
	}
}

func isEmpty(view domain.TransactionView) bool {
	return len(view.ListLookups()) == 0 &&
		len(view.ListPackageTypes()) == 0 &&
		len(view.ListBoardingPackages()) == 0 &&
		len(view.ListMenuItems()) == 0 &&
		len(view.ListMealTypes()) == 0 &&
		len(view.ListPackageMenuItems()) == 0 &&
		len(view.ListMealPackages()) == 0 &&
		len(view.ListPersons()) == 0 &&
		len(view.ListStaff()) == 0 &&
		len(view.ListRooms()) == 0 &&
		len(view.ListBeds()) == 0 &&
		len(view.ListGuardians()) == 0 &&
		len(view.ListAcademicClasses()) == 0 &&
		len(view.ListStudents()) == 0
}
