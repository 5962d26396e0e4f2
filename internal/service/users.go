package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/identity/internal/logger"
	"github.com/finflow/identity/internal/model"
)

// Users owns authoritative user records and their lifecycle transitions.
type Users struct {
	store        model.UserStore
	hasher       model.Hasher
	publisher    model.Publisher
	defaultRoles []string
	logger       *logger.Logger
}

// NewUsers creates the user directory service. defaultRoles is the explicit
// role set granted to new accounts; nil means none.
func NewUsers(
	store model.UserStore,
	hasher model.Hasher,
	publisher model.Publisher,
	defaultRoles []string,
	logger *logger.Logger,
) *Users {
	return &Users{
		store:        store,
		hasher:       hasher,
		publisher:    publisher,
		defaultRoles: defaultRoles,
		logger:       logger,
	}
}

// RegisterInput carries the fields submitted at registration. Status, KYC
// stage and roles are never caller-supplied.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// ProfileUpdate carries a partial profile mutation; nil fields are untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

// NormalizeEmail lowercases and trims an email for uniqueness checks and
// lookups. The normalized form is what gets persisted.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. New accounts always start Active with KYC
// stage Pending regardless of submitted values. A "user created" event is
// announced after the record is saved; delivery failure does not fail
// registration.
func (s *Users) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	email := NormalizeEmail(in.Email)
	s.logger.Debug("Users service: registering user", "email", email)

	if email == "" {
		return model.User{}, fmt.Errorf("%w: email is required", model.ErrInvalidInput)
	}

	exists, err := s.store.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Users service: failed to check email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		s.logger.Info("Users service: email already registered", "email", email)
		return model.User{}, model.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, err
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Status:       model.StatusActive,
		KYCStatus:    model.KYCPending,
		Roles:        append([]string(nil), s.defaultRoles...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := s.store.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			// Lost the race to a concurrent registration; the unique
			// index is the authority.
			s.logger.Info("Users service: email already registered", "email", email)
			return model.User{}, model.ErrEmailTaken
		}
		s.logger.Error("Users service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.announceCreated(ctx, saved)

	s.logger.Info("Users service: user registered",
		"user_id", saved.ID,
		"email", saved.Email)

	return saved, nil
}

func (s *Users) announceCreated(ctx context.Context, user model.User) {
	payload, err := json.Marshal(struct {
		UserID uuid.UUID `json:"user_id"`
		Email  string    `json:"email"`
	}{UserID: user.ID, Email: user.Email})
	if err != nil {
		s.logger.Error("Users service: failed to marshal user created event",
			"user_id", user.ID,
			"error", err.Error())
		return
	}

	if err := s.publisher.Publish(ctx, model.TopicUserCreated, payload); err != nil {
		s.logger.Error("Users service: failed to publish user created event",
			"user_id", user.ID,
			"error", err.Error())
	}
}

// GetByID returns the user with the given id.
func (s *Users) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail returns the user with the given (normalized) email.
func (s *Users) GetByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := s.store.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of the update and bumps
// UpdatedAt. Email is immutable here.
func (s *Users) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (model.User, error) {
	s.logger.Debug("Users service: updating profile", "user_id", id)

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	user.UpdatedAt = time.Now()

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		s.logger.Error("Users service: failed to update profile",
			"user_id", id,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Users service: profile updated", "user_id", id)

	return updated, nil
}

// UpdateKYCStatus overwrites the KYC stage with any of the four values.
// No transition legality is enforced; the caller is an administrative or
// internal service. Outstanding tokens keep their issuance-time snapshot.
func (s *Users) UpdateKYCStatus(ctx context.Context, id uuid.UUID, status model.KYCStatus) (model.User, error) {
	s.logger.Debug("Users service: updating KYC status",
		"user_id", id,
		"kyc_status", status)

	if _, err := model.ParseKYCStatus(string(status)); err != nil {
		return model.User{}, fmt.Errorf("%w: unknown kyc status %q", model.ErrInvalidInput, status)
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	user.KYCStatus = status
	user.UpdatedAt = time.Now()

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		s.logger.Error("Users service: failed to update KYC status",
			"user_id", id,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update kyc status: %w", err)
	}

	s.logger.Info("Users service: KYC status updated",
		"user_id", id,
		"kyc_status", status)

	return updated, nil
}

// UpdateStatus overwrites the account status. Any status may be set to any
// other; the login gate is the only rule this core enforces.
func (s *Users) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (model.User, error) {
	s.logger.Debug("Users service: updating account status",
		"user_id", id,
		"status", status)

	if _, err := model.ParseStatus(string(status)); err != nil {
		return model.User{}, fmt.Errorf("%w: unknown status %q", model.ErrInvalidInput, status)
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	user.Status = status
	user.UpdatedAt = time.Now()

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		s.logger.Error("Users service: failed to update account status",
			"user_id", id,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update status: %w", err)
	}

	s.logger.Info("Users service: account status updated",
		"user_id", id,
		"status", status)

	return updated, nil
}

// VerifyCredentials resolves an email/password pair to the account. Unknown
// email and password mismatch return the same error; the account status gate
// is checked only after the credential match succeeds.
func (s *Users) VerifyCredentials(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.store.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return model.User{}, model.ErrInvalidCredentials
	}

	switch user.Status {
	case model.StatusSuspended:
		s.logger.Info("Users service: login blocked, account suspended", "user_id", user.ID)
		return model.User{}, model.ErrAccountSuspended
	case model.StatusDeleted:
		// A deleted account must not reveal that it ever existed.
		return model.User{}, model.ErrInvalidCredentials
	}

	return user, nil
}
