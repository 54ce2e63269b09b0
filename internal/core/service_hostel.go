package core

import (
	"context"

	"hostelcore/pkg/domain"
)

// HostelAssignment selects the room and bed a student moves into.
type HostelAssignment struct {
	RoomID string `json:"roomId"`
	BedID  string `json:"bedId"`
}

// AssignHostel places a student in a bed. A bed the student already holds is
// released first.
func (s *Service) AssignHostel(ctx context.Context, studentID string, assignment HostelAssignment) (domain.Student, Result, error) {
	return mutate(ctx, s, opAssignHostel, func(tx Transaction) (domain.Student, error) {
		if assignment.RoomID == "" {
			return domain.Student{}, domain.ErrValidation{Entity: domain.EntityStudent, Field: "roomId", Reason: "is required"}
		}
		if assignment.BedID == "" {
			return domain.Student{}, domain.ErrValidation{Entity: domain.EntityStudent, Field: "bedId", Reason: "is required"}
		}
		return tx.AssignHostel(studentID, assignment.RoomID, assignment.BedID)
	})
}

// RemoveFromHostel frees the student's bed.
func (s *Service) RemoveFromHostel(ctx context.Context, studentID string) (domain.Student, Result, error) {
	return mutate(ctx, s, opRemoveFromHostel, func(tx Transaction) (domain.Student, error) {
		return tx.RemoveFromHostel(studentID)
	})
}

// SetBedMaintenance moves a free bed into or out of maintenance.
func (s *Service) SetBedMaintenance(ctx context.Context, bedID string, maintenance bool) (domain.Bed, Result, error) {
	return mutate(ctx, s, opSetBedMaintenance, func(tx Transaction) (domain.Bed, error) {
		return tx.SetBedMaintenance(bedID, maintenance)
	})
}

// LookupNames returns the current lookup names grouped by kind.
func (s *Service) LookupNames(ctx context.Context) (LookupNames, error) {
	var out LookupNames
	err := s.run(ctx, "lookup_names", func(ctx context.Context) (string, error) {
		return "", s.store.View(ctx, func(view TransactionView) error {
			out = lookupNames(view.ListLookups())
			return nil
		})
	})
	return out, err
}
