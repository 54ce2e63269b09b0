package core

import (
	"context"
	"fmt"

	"hostelcore/pkg/domain"
)

// NewBedOccupancyRule blocks commits where a bed and its occupant disagree.
func NewBedOccupancyRule() domain.Rule {
	return bedOccupancyRule{}
}

type bedOccupancyRule struct{}

func (bedOccupancyRule) Name() string { return "bed_occupancy" }

func (r bedOccupancyRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	if !touches(changes, domain.EntityBed, domain.EntityStudent, domain.EntityRoom) {
		return domain.Result{}, nil
	}
	res := domain.Result{}
	block := func(entity domain.EntityType, id, msg string) {
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     r.Name(),
			Severity: domain.SeverityBlock,
			Message:  msg,
			Entity:   entity,
			EntityID: id,
		})
	}

	for _, bed := range view.ListBeds() {
		occupied := bed.StudentID != nil
		if occupied != (bed.Status == domain.BedOccupied) {
			block(domain.EntityBed, bed.ID, fmt.Sprintf("bed %s status %s does not match occupant", bed.ID, bed.Status))
			continue
		}
		if !occupied {
			continue
		}
		student, ok := view.FindStudent(*bed.StudentID)
		if !ok || student.BedID == nil || *student.BedID != bed.ID {
			block(domain.EntityBed, bed.ID, fmt.Sprintf("bed %s claims student %s who does not hold it", bed.ID, *bed.StudentID))
		}
	}

	for _, student := range view.ListStudents() {
		if (student.RoomID == nil) != (student.BedID == nil) {
			block(domain.EntityStudent, student.ID, fmt.Sprintf("student %s has a partial hostel assignment", student.ID))
			continue
		}
		if student.BedID == nil {
			continue
		}
		bed, ok := view.FindBed(*student.BedID)
		switch {
		case !ok:
			block(domain.EntityStudent, student.ID, fmt.Sprintf("student %s holds missing bed %s", student.ID, *student.BedID))
		case bed.RoomID != *student.RoomID:
			block(domain.EntityStudent, student.ID, fmt.Sprintf("student %s bed %s is not in room %s", student.ID, bed.ID, *student.RoomID))
		case bed.StudentID == nil || *bed.StudentID != student.ID:
			block(domain.EntityStudent, student.ID, fmt.Sprintf("student %s holds bed %s assigned elsewhere", student.ID, bed.ID))
		}
	}
	return res, nil
}
