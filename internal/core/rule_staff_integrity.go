package core

import (
	"context"
	"fmt"
	"strings"

	"hostelcore/pkg/domain"
)

// NewStaffIntegrityRule blocks commits that leave a touched staff record
// sharing its person with another record, backed by a person outside the
// staff category, or holding a designation that no longer fits its kind.
// Staff records are touched when they, their person, or the lookups they
// depend on change in the transaction.
func NewStaffIntegrityRule() domain.Rule {
	return staffIntegrityRule{}
}

type staffIntegrityRule struct{}

func (staffIntegrityRule) Name() string { return "staff_integrity" }

func (r staffIntegrityRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	if !touches(changes, domain.EntityStaff, domain.EntityPerson, domain.EntityLookup) {
		return domain.Result{}, nil
	}
	changed := changedIDs(changes)
	all := view.ListStaff()
	owners := make(map[string][]string, len(all))
	for _, staff := range all {
		owners[staff.PersonStaffID] = append(owners[staff.PersonStaffID], staff.ID)
	}

	res := domain.Result{}
	for _, staff := range all {
		person, hasPerson := view.FindPerson(staff.PersonStaffID)
		if !changed.has(domain.EntityStaff, staff.ID) &&
			!changed.has(domain.EntityPerson, staff.PersonStaffID) &&
			!changed.has(domain.EntityLookup, staff.DesignationID) &&
			!(hasPerson && changed.has(domain.EntityLookup, person.PersonCategoryID)) {
			continue
		}
		if msg := r.check(view, staff, person, hasPerson, owners[staff.PersonStaffID]); msg != "" {
			res.Violations = append(res.Violations, r.violation(staff.ID, msg))
		}
	}
	return res, nil
}

func (staffIntegrityRule) check(view domain.RuleView, staff domain.Staff, person domain.Person, hasPerson bool, owners []string) string {
	if len(owners) > 1 {
		return fmt.Sprintf("person %s backs staff %s", staff.PersonStaffID, strings.Join(owners, " and "))
	}
	if !hasPerson {
		return fmt.Sprintf("staff %s references missing person %s", staff.ID, staff.PersonStaffID)
	}
	category, ok := view.FindLookup(person.PersonCategoryID)
	if !ok || !strings.EqualFold(category.Code, domain.PersonCategoryStaff) {
		return fmt.Sprintf("staff %s person %s is not in the staff category", staff.ID, person.ID)
	}
	designation, ok := view.FindLookup(staff.DesignationID)
	switch {
	case !ok:
		return fmt.Sprintf("staff %s references missing designation %s", staff.ID, staff.DesignationID)
	case designation.Kind != domain.LookupDesignation:
		return fmt.Sprintf("staff %s lookup %s is a %s, not a designation", staff.ID, designation.ID, designation.Kind)
	case staff.Kind == domain.StaffTeacher && designation.Category != domain.DesignationTeaching:
		return fmt.Sprintf("teacher %s designation %q is not a teaching designation", staff.ID, designation.Name)
	}
	return ""
}

func (r staffIntegrityRule) violation(id, msg string) domain.Violation {
	return domain.Violation{
		Rule:     r.Name(),
		Severity: domain.SeverityBlock,
		Message:  msg,
		Entity:   domain.EntityStaff,
		EntityID: id,
	}
}

// changeSet indexes the ids a transaction touched, per entity.
type changeSet map[domain.EntityType]map[string]struct{}

func changedIDs(changes []domain.Change) changeSet {
	set := changeSet{}
	for _, c := range changes {
		for _, v := range []any{c.Before, c.After} {
			rec, ok := v.(domain.Record)
			if !ok {
				continue
			}
			if set[c.Entity] == nil {
				set[c.Entity] = map[string]struct{}{}
			}
			set[c.Entity][rec.RecordID()] = struct{}{}
		}
	}
	return set
}

func (s changeSet) has(entity domain.EntityType, id string) bool {
	_, ok := s[entity][id]
	return ok
}
