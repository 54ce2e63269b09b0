package core

import (
	"context"
	"fmt"

	"hostelcore/pkg/domain"
)

// NewRoomCapacityRule blocks commits that leave a room with more beds than
// its capacity.
func NewRoomCapacityRule() domain.Rule {
	return roomCapacityRule{}
}

type roomCapacityRule struct{}

func (roomCapacityRule) Name() string { return "room_capacity" }

func (r roomCapacityRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	if !touches(changes, domain.EntityRoom, domain.EntityBed) {
		return domain.Result{}, nil
	}
	beds := make(map[string]int)
	for _, bed := range view.ListBeds() {
		beds[bed.RoomID]++
	}

	res := domain.Result{}
	for _, room := range view.ListRooms() {
		if count := beds[room.ID]; count > room.Capacity {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("room %s (%s) over capacity: %d/%d beds", room.RoomNumber, room.ID, count, room.Capacity),
				Entity:   domain.EntityRoom,
				EntityID: room.ID,
			})
		}
	}
	return res, nil
}

// touches reports whether any change affects one of the entity types.
func touches(changes []domain.Change, entities ...domain.EntityType) bool {
	for _, c := range changes {
		for _, e := range entities {
			if c.Entity == e {
				return true
			}
		}
	}
	return false
}
