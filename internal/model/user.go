package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an account. Records are never deleted
// physically; StatusDeleted is a terminal status value.
type Status string

const (
	StatusActive    Status = "Active"
	StatusInactive  Status = "Inactive"
	StatusSuspended Status = "Suspended"
	StatusDeleted   Status = "Deleted"
)

// KYCStatus is the verification stage of an account, independent of
// authentication validity.
type KYCStatus string

const (
	KYCPending    KYCStatus = "Pending"
	KYCInProgress KYCStatus = "InProgress"
	KYCVerified   KYCStatus = "Verified"
	KYCRejected   KYCStatus = "Rejected"
)

// ParseStatus resolves a case-insensitive status name to its canonical value.
func ParseStatus(s string) (Status, error) {
	for _, v := range []Status{StatusActive, StatusInactive, StatusSuspended, StatusDeleted} {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", ErrInvalidInput
}

// ParseKYCStatus resolves a case-insensitive KYC stage name to its canonical value.
func ParseKYCStatus(s string) (KYCStatus, error) {
	for _, v := range []KYCStatus{KYCPending, KYCInProgress, KYCVerified, KYCRejected} {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", ErrInvalidInput
}

// UserStore defines persistence operations for users. Email uniqueness is
// enforced by the store itself: Create must fail with ErrEmailTaken when a
// record with the same normalized email already exists, regardless of any
// earlier ExistsByEmail check.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Hasher hashes and verifies plaintext credentials.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// User represents a stored account with credential material. PasswordHash
// never leaves the directory/hasher pair.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Status       Status
	KYCStatus    KYCStatus
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
