// Package domain holds typed identifiers shared across modules. Wrapping raw
// strings and UUIDs in distinct types keeps IDs from being swapped at call
// sites.
package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// BusinessID identifies the scored SME. Point-in-time applications that carry
// no external identifier score under ApplicantBusinessID.
type BusinessID string

// ApplicantBusinessID is the synthetic key used when scoring a single
// application rather than a historical cohort.
const ApplicantBusinessID BusinessID = "New_SME"

const maxBusinessIDLen = 64

// ParseBusinessID validates an externally supplied business identifier.
func ParseBusinessID(raw string) (BusinessID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("business_id is empty")
	}
	if len(raw) > maxBusinessIDLen {
		return "", fmt.Errorf("business_id exceeds %d characters", maxBusinessIDLen)
	}
	return BusinessID(raw), nil
}

func (b BusinessID) String() string {
	return string(b)
}

// AssessmentID identifies a persisted assessment record.
type AssessmentID uuid.UUID

// NewAssessmentID generates a random assessment ID.
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.New())
}

// ParseAssessmentID parses an assessment ID from its string form.
func ParseAssessmentID(raw string) (AssessmentID, error) {
	u, err := uuid.Parse(raw)
	if err != nil {
		return AssessmentID{}, fmt.Errorf("invalid assessment id: %w", err)
	}
	return AssessmentID(u), nil
}

func (a AssessmentID) String() string {
	return uuid.UUID(a).String()
}

// IsNil reports whether the ID is the zero UUID.
func (a AssessmentID) IsNil() bool {
	return uuid.UUID(a) == uuid.Nil
}

// MarshalText encodes the ID in its canonical string form.
func (a AssessmentID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes the ID from its canonical string form.
func (a *AssessmentID) UnmarshalText(text []byte) error {
	parsed, err := ParseAssessmentID(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UserID identifies the authenticated caller who requested an assessment.
type UserID uuid.UUID

// NewUserID generates a random user ID.
func NewUserID() UserID {
	return UserID(uuid.New())
}

// ParseUserID parses a user ID from its string form.
func ParseUserID(raw string) (UserID, error) {
	u, err := uuid.Parse(raw)
	if err != nil {
		return UserID{}, fmt.Errorf("invalid user id: %w", err)
	}
	return UserID(u), nil
}

func (u UserID) String() string {
	return uuid.UUID(u).String()
}

// IsNil reports whether the ID is the zero UUID.
func (u UserID) IsNil() bool {
	return uuid.UUID(u) == uuid.Nil
}

// MarshalText encodes the ID in its canonical string form.
func (u UserID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText decodes the ID from its canonical string form.
func (u *UserID) UnmarshalText(text []byte) error {
	parsed, err := ParseUserID(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
