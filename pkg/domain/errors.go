package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies domain failures for transport mapping.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindValidation ErrorKind = "validation"
	KindInternal   ErrorKind = "internal"
)

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first classified error in err's chain.
// Unclassified errors report KindInternal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}

// ErrNotFound is returned when a record or one of its references is missing.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// Kind implements the error classification.
func (ErrNotFound) Kind() ErrorKind { return KindNotFound }

// ErrConflict reports a uniqueness, referential, or occupancy conflict.
type ErrConflict struct {
	Entity EntityType
	ID     string
	Reason string
}

func (e ErrConflict) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s %q conflict: %s", e.Entity, e.ID, e.Reason)
}

// Kind implements the error classification.
func (ErrConflict) Kind() ErrorKind { return KindConflict }

// ErrValidation reports malformed input.
type ErrValidation struct {
	Entity EntityType
	Field  string
	Reason string
}

func (e ErrValidation) Error() string {
	switch {
	case e.Entity == "" && e.Field == "":
		return "invalid input: " + e.Reason
	case e.Field == "":
		return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
	case e.Entity == "":
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s: %s", e.Entity, e.Field, e.Reason)
}

// Kind implements the error classification.
func (ErrValidation) Kind() ErrorKind { return KindValidation }

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	var msgs []string
	for _, v := range e.Result.Blocking() {
		msgs = append(msgs, v.Message)
	}
	if len(msgs) == 0 {
		return "transaction blocked by rules"
	}
	return "transaction blocked by rules: " + strings.Join(msgs, "; ")
}

// Kind implements the error classification.
func (RuleViolationError) Kind() ErrorKind { return KindConflict }

func required(entity EntityType, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrValidation{Entity: entity, Field: field, Reason: "is required"}
	}
	return nil
}
