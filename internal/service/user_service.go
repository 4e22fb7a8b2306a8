// Package service sequences validation and the lifecycle store for every
// user operation and turns store outcomes into apperr errors.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iliyamo/user-dashboard/internal/apperr"
	"github.com/iliyamo/user-dashboard/internal/logging"
	"github.com/iliyamo/user-dashboard/internal/model"
	"github.com/iliyamo/user-dashboard/internal/queue"
	"github.com/iliyamo/user-dashboard/internal/repository"
	"github.com/iliyamo/user-dashboard/internal/validation"
)

// Store is the persistence the service needs.  *repository.UserRepo
// implements it.
type Store interface {
	Create(ctx context.Context, p repository.CreateParams) (model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	List(ctx context.Context, archive *bool) ([]model.User, error)
	Update(ctx context.Context, id uuid.UUID, p repository.UpdateParams) (model.User, error)
	Delete(ctx context.Context, id uuid.UUID) (model.DeleteAction, error)
	Reactivate(ctx context.Context, id uuid.UUID) (model.User, error)
}

// EventPublisher receives one event per successful transition.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.UserEvent) error
}

// PasswordHasher turns a plain password into what gets stored.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UserService implements the six user operations.  Every method takes the
// raw request envelope, validates it, calls the store and returns either a
// result or an *apperr.Error.
type UserService struct {
	store  Store
	events EventPublisher
	val    *validation.Validator
	hasher PasswordHasher
}

// NewUserService wires a UserService.  A nil events publisher disables
// events.
func NewUserService(store Store, events EventPublisher, val *validation.Validator, hasher PasswordHasher) *UserService {
	if events == nil {
		events = queue.Discard{}
	}
	return &UserService{store: store, events: events, val: val, hasher: hasher}
}

// CreateOne validates a new user, hashes its password and stores it active.
func (s *UserService) CreateOne(ctx context.Context, in validation.Input) (model.User, error) {
	log := logging.FromContext(ctx).With("op", "createOne")

	log.Debug("validating input")
	p, err := s.val.CreateOne(in)
	if err != nil {
		return model.User{}, err
	}
	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return model.User{}, s.mapErr(ctx, "createOne", err)
	}

	log.Debug("calling store", "call", "Create")
	u, err := s.store.Create(ctx, repository.CreateParams{
		Email:        p.Email,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
		Gender:       p.Gender,
		Address:      p.Address,
	})
	if err != nil {
		return model.User{}, s.mapErr(ctx, "createOne", err)
	}
	log.Debug("store returned", "user_id", u.ID)

	s.publish(ctx, queue.NewUserEvent(queue.UserCreated, u.ID.String(), u.Email, true))
	return u, nil
}

// ReadOne returns one user, active or not.
func (s *UserService) ReadOne(ctx context.Context, in validation.Input) (model.User, error) {
	log := logging.FromContext(ctx).With("op", "readOne")

	log.Debug("validating input")
	id, err := s.val.ReadOne(in)
	if err != nil {
		return model.User{}, err
	}

	log.Debug("calling store", "call", "GetByID", "user_id", id)
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.User{}, s.mapErr(ctx, "readOne", withID(err, id))
	}
	return u, nil
}

// ReadMany lists users, optionally filtered by the archive flag.
func (s *UserService) ReadMany(ctx context.Context, in validation.Input) ([]model.User, error) {
	log := logging.FromContext(ctx).With("op", "readMany")

	log.Debug("validating input")
	p, err := s.val.ReadMany(in)
	if err != nil {
		return nil, err
	}

	log.Debug("calling store", "call", "List")
	users, err := s.store.List(ctx, p.Archive)
	if err != nil {
		return nil, s.mapErr(ctx, "readMany", err)
	}
	log.Debug("store returned", "count", len(users))
	return users, nil
}

// UpdateOne applies a partial update to an active user.
func (s *UserService) UpdateOne(ctx context.Context, in validation.Input) (model.User, error) {
	log := logging.FromContext(ctx).With("op", "updateOne")

	log.Debug("validating input")
	p, err := s.val.UpdateOne(in)
	if err != nil {
		return model.User{}, err
	}

	params := repository.UpdateParams{
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Gender:    p.Gender,
		Address:   p.Address,
	}
	if p.Password != nil {
		hash, err := s.hasher.Hash(*p.Password)
		if err != nil {
			return model.User{}, s.mapErr(ctx, "updateOne", err)
		}
		params.PasswordHash = &hash
	}

	log.Debug("calling store", "call", "Update", "user_id", p.UserID)
	u, err := s.store.Update(ctx, p.UserID, params)
	if err != nil {
		return model.User{}, s.mapErr(ctx, "updateOne", withID(err, p.UserID))
	}

	s.publish(ctx, queue.NewUserEvent(queue.UserUpdated, u.ID.String(), u.Email, u.IsActive))
	return u, nil
}

// DeleteOne soft-deletes an active user and hard-deletes an inactive one.
// It returns the affected id, or "" when nothing was stored under it.
func (s *UserService) DeleteOne(ctx context.Context, in validation.Input) (string, error) {
	log := logging.FromContext(ctx).With("op", "deleteOne")

	log.Debug("validating input")
	id, err := s.val.DeleteOne(in)
	if err != nil {
		return "", err
	}

	log.Debug("calling store", "call", "Delete", "user_id", id)
	action, err := s.store.Delete(ctx, id)
	if err != nil {
		return "", s.mapErr(ctx, "deleteOne", withID(err, id))
	}
	log.Debug("store returned", "action", action.String())

	switch action {
	case model.DeleteSoft:
		s.publish(ctx, queue.NewUserEvent(queue.UserDeactivated, id.String(), "", false))
	case model.DeleteHard:
		s.publish(ctx, queue.NewUserEvent(queue.UserDeleted, id.String(), "", false))
	default:
		return "", nil
	}
	return id.String(), nil
}

// ReactivateOne brings an inactive user back.
func (s *UserService) ReactivateOne(ctx context.Context, in validation.Input) (model.User, error) {
	log := logging.FromContext(ctx).With("op", "reactivateOne")

	log.Debug("validating input")
	id, err := s.val.ReactivateOne(in)
	if err != nil {
		return model.User{}, err
	}

	log.Debug("calling store", "call", "Reactivate", "user_id", id)
	u, err := s.store.Reactivate(ctx, id)
	if err != nil {
		return model.User{}, s.mapErr(ctx, "reactivateOne", withID(err, id))
	}

	s.publish(ctx, queue.NewUserEvent(queue.UserReactivated, u.ID.String(), u.Email, true))
	return u, nil
}

// publish never fails the caller; the transition is already committed.
func (s *UserService) publish(ctx context.Context, ev queue.UserEvent) {
	if err := s.events.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("publish user event", "type", ev.Type, "user_id", ev.UserID, "err", err)
	}
}

// idError keeps the requested id next to a store error so messages can
// name it.
type idError struct {
	id  uuid.UUID
	err error
}

func (e *idError) Error() string { return fmt.Sprintf("user %s: %v", e.id, e.err) }
func (e *idError) Unwrap() error { return e.err }

func withID(err error, id uuid.UUID) error { return &idError{id: id, err: err} }

func (s *UserService) mapErr(ctx context.Context, op string, err error) error {
	subject := "user"
	var ie *idError
	if errors.As(err, &ie) {
		subject = fmt.Sprintf("user %s", ie.id)
	}

	var taken *repository.EmailTakenError
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return apperr.NotFound(subject + " not found")
	case errors.As(err, &taken):
		return apperr.Conflict(taken.Error())
	case errors.Is(err, repository.ErrUserInactive):
		return apperr.BusinessRule(subject + " is inactive and cannot be updated")
	case errors.Is(err, repository.ErrUserActive):
		return apperr.BusinessRule(subject + " is already active")
	}

	logging.FromContext(ctx).Error("unexpected failure", "op", op, "err", err)
	return apperr.Unexpected(err)
}
