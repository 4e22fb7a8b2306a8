package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/user-dashboard/internal/model"
)

// Each operation owns exactly one statement; values always travel as
// placeholders.
const (
	qInsertProfile = `INSERT INTO users (id, email, first_name, last_name, phone, gender, address, created_at, updated_at)
	                  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	qInsertCredentials = `INSERT INTO users_credentials (user_id, email, password, is_active, created_at, updated_at)
	                      VALUES (?, ?, ?, TRUE, ?, ?)`
	qInsertSettings = `INSERT INTO users_settings (user_id, created_at, updated_at) VALUES (?, ?, ?)`

	qSelectUser = `SELECT u.id, u.email, u.first_name, u.last_name, u.phone, u.gender, u.address, u.created_at, c.is_active
	               FROM users u JOIN users_credentials c ON c.user_id = u.id
	               WHERE u.id = ?`
	qListUsers = `SELECT u.id, u.email, u.first_name, u.last_name, u.phone, u.gender, u.address, u.created_at, c.is_active
	              FROM users u JOIN users_credentials c ON c.user_id = u.id
	              WHERE (? IS NULL OR c.is_active = ?)
	              ORDER BY u.created_at, u.id`

	qLockState = `SELECT is_active FROM users_credentials WHERE user_id = ? FOR UPDATE`

	qUpdateProfile = `UPDATE users SET
	                      email = COALESCE(?, email),
	                      first_name = COALESCE(?, first_name),
	                      last_name = COALESCE(?, last_name),
	                      phone = COALESCE(?, phone),
	                      gender = COALESCE(?, gender),
	                      address = COALESCE(?, address),
	                      updated_at = ?
	                  WHERE id = ?`
	qUpdateCredentials = `UPDATE users_credentials SET
	                          email = COALESCE(?, email),
	                          password = COALESCE(?, password),
	                          updated_at = ?
	                      WHERE user_id = ?`

	qSetActive     = `UPDATE users_credentials SET is_active = ?, updated_at = ? WHERE user_id = ?`
	qTouchProfile  = `UPDATE users SET updated_at = ? WHERE id = ?`
	qTouchSettings = `UPDATE users_settings SET updated_at = ? WHERE user_id = ?`
	qDeleteUser    = `DELETE FROM users WHERE id = ?`

	qPing = `SELECT 1`
)

// CreateParams are the fields of a new user.  PasswordHash must already be
// hashed.
type CreateParams struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Gender       model.Gender
	Address      string
}

// UpdateParams carries only the fields to change; nil means keep.
type UpdateParams struct {
	Email        *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	Phone        *string
	Gender       *model.Gender
	Address      *string
}

// UserRepo is the user lifecycle store.  It owns the users,
// users_credentials and users_settings rows of every user and moves them
// through the active / inactive / deleted states.
type UserRepo struct {
	db    *sql.DB
	now   func() time.Time
	newID func() uuid.UUID
}

// NewUserRepo returns a UserRepo bound to db.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{
		db:    db,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID: uuid.New,
	}
}

// Create inserts the profile, credentials and settings of a new user in one
// transaction, all stamped with the same time.  If any insert fails nothing
// is kept.  A duplicate email yields *EmailTakenError.
func (r *UserRepo) Create(ctx context.Context, p CreateParams) (model.User, error) {
	id := r.newID()
	now := r.now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, fmt.Errorf("begin create: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if _, err := tx.ExecContext(ctx, qInsertProfile,
		id, p.Email, p.FirstName, p.LastName, p.Phone, p.Gender, p.Address, now, now); err != nil {
		return model.User{}, r.writeErr(err, p.Email, "insert profile")
	}
	if _, err := tx.ExecContext(ctx, qInsertCredentials, id, p.Email, p.PasswordHash, now, now); err != nil {
		return model.User{}, r.writeErr(err, p.Email, "insert credentials")
	}
	if _, err := tx.ExecContext(ctx, qInsertSettings, id, now, now); err != nil {
		return model.User{}, fmt.Errorf("insert settings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.User{}, fmt.Errorf("commit create: %w", err)
	}

	return model.User{
		ID:        id,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Gender:    p.Gender,
		Address:   p.Address,
		CreatedAt: now,
		IsActive:  true,
	}, nil
}

// GetByID returns the public view of one user or ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return getUser(ctx, r.db, id)
}

// List returns every user ordered by creation.  archive=true keeps only
// inactive users, archive=false only active ones, nil keeps all.
func (r *UserRepo) List(ctx context.Context, archive *bool) ([]model.User, error) {
	var active any // nil disables the filter
	if archive != nil {
		active = !*archive
	}
	rows, err := r.db.QueryContext(ctx, qListUsers, active, active)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// Update applies the supplied fields to an active user.  The credentials
// row is locked first so the state check and the write see the same state.
// Inactive users yield ErrUserInactive, missing ones ErrUserNotFound.
func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (model.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	state, err := lockState(ctx, tx, id)
	if err != nil {
		return model.User{}, err
	}
	switch {
	case state == model.StateNone:
		return model.User{}, ErrUserNotFound
	case !state.CanUpdate():
		return model.User{}, ErrUserInactive
	}

	email := ""
	if p.Email != nil {
		email = *p.Email
	}
	now := r.now()
	if _, err := tx.ExecContext(ctx, qUpdateProfile,
		p.Email, p.FirstName, p.LastName, p.Phone, p.Gender, p.Address, now, id); err != nil {
		return model.User{}, r.writeErr(err, email, "update profile")
	}
	if _, err := tx.ExecContext(ctx, qUpdateCredentials, p.Email, p.PasswordHash, now, id); err != nil {
		return model.User{}, r.writeErr(err, email, "update credentials")
	}

	u, err := getUser(ctx, tx, id)
	if err != nil {
		return model.User{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.User{}, fmt.Errorf("commit update: %w", err)
	}
	return u, nil
}

// Delete moves the user one step down the lifecycle: an active user is
// deactivated, an inactive one is removed together with its credentials and
// settings (ON DELETE CASCADE).  A missing user is not an error; DeleteNoop
// is returned and nothing changes.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) (model.DeleteAction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.DeleteNoop, fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	state, err := lockState(ctx, tx, id)
	if err != nil {
		return model.DeleteNoop, err
	}
	action, _ := state.OnDelete()
	switch action {
	case model.DeleteNoop:
		return model.DeleteNoop, nil
	case model.DeleteSoft:
		if _, err := tx.ExecContext(ctx, qSetActive, false, r.now(), id); err != nil {
			return model.DeleteNoop, fmt.Errorf("deactivate user: %w", err)
		}
	case model.DeleteHard:
		if _, err := tx.ExecContext(ctx, qDeleteUser, id); err != nil {
			return model.DeleteNoop, fmt.Errorf("delete user: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return model.DeleteNoop, fmt.Errorf("commit delete: %w", err)
	}
	return action, nil
}

// Reactivate brings an inactive user back and refreshes updated_at on all
// three of its rows.  ErrUserNotFound for missing users, ErrUserActive when
// there is nothing to reactivate.
func (r *UserRepo) Reactivate(ctx context.Context, id uuid.UUID) (model.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, fmt.Errorf("begin reactivate: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	state, err := lockState(ctx, tx, id)
	if err != nil {
		return model.User{}, err
	}
	switch {
	case state == model.StateNone:
		return model.User{}, ErrUserNotFound
	case !state.CanReactivate():
		return model.User{}, ErrUserActive
	}

	now := r.now()
	if _, err := tx.ExecContext(ctx, qSetActive, true, now, id); err != nil {
		return model.User{}, fmt.Errorf("activate credentials: %w", err)
	}
	if _, err := tx.ExecContext(ctx, qTouchProfile, now, id); err != nil {
		return model.User{}, fmt.Errorf("touch profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx, qTouchSettings, now, id); err != nil {
		return model.User{}, fmt.Errorf("touch settings: %w", err)
	}

	u, err := getUser(ctx, tx, id)
	if err != nil {
		return model.User{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.User{}, fmt.Errorf("commit reactivate: %w", err)
	}
	return u, nil
}

// Ping checks that the database answers queries.
func (r *UserRepo) Ping(ctx context.Context) error {
	var one int
	return r.db.QueryRowContext(ctx, qPing).Scan(&one)
}

func (r *UserRepo) writeErr(err error, email, op string) error {
	if isDuplicate(err) {
		return &EmailTakenError{Email: email}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getUser(ctx context.Context, q queryer, id uuid.UUID) (model.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx, qSelectUser, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(s scanner) (model.User, error) {
	var u model.User
	err := s.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.Gender, &u.Address, &u.CreatedAt, &u.IsActive)
	return u, err
}

// lockState reads and row-locks the lifecycle state of id.
func lockState(ctx context.Context, tx *sql.Tx, id uuid.UUID) (model.State, error) {
	var active bool
	err := tx.QueryRowContext(ctx, qLockState, id).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return model.StateNone, nil
	}
	if err != nil {
		return model.StateNone, fmt.Errorf("lock user state: %w", err)
	}
	return model.StateOf(true, active), nil
}
