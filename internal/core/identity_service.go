package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Me is the caller-facing profile view, including the warehouse a partner
// manages.
type Me struct {
	Profile
	Warehouse *Warehouse `json:"warehouse,omitempty"`
}

// IdentityService resolves verified credentials to an application-level
// caller identity. Credential verification itself happens at the HTTP
// boundary; this service only knows profiles and warehouse assignments.
type IdentityService interface {
	// Identity loads the caller's role and, for partners, the warehouse they
	// manage. Called once per authenticated request.
	Identity(ctx context.Context, userID int) (*UserContext, error)

	// Me returns the caller's stored profile together with the assigned
	// warehouse, if any.
	Me(ctx context.Context, user UserContext) (*Me, error)
}

type identityService struct {
	pool *pgxpool.Pool
}

// NewIdentityService constructs an IdentityService backed by PostgreSQL.
func NewIdentityService(pool *pgxpool.Pool) IdentityService {
	return &identityService{pool: pool}
}

func (s *identityService) Identity(ctx context.Context, userID int) (*UserContext, error) {
	var p Profile
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, full_name, role
		FROM profiles
		WHERE id = $1
	`, userID).Scan(&p.ID, &p.Email, &p.FullName, &p.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, Unauthenticatedf("no profile for user %d", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %d: %w", userID, err)
	}

	user := &UserContext{UserID: p.ID, Email: p.Email, Role: p.Role}
	if p.Role == RolePartner {
		warehouseID, err := s.managedWarehouseID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		user.WarehouseID = warehouseID
	}
	return user, nil
}

func (s *identityService) Me(ctx context.Context, user UserContext) (*Me, error) {
	var p Profile
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, full_name, role
		FROM profiles
		WHERE id = $1
	`, user.UserID).Scan(&p.ID, &p.Email, &p.FullName, &p.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, Unauthenticatedf("no profile for user %d", user.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %d: %w", user.UserID, err)
	}

	me := &Me{Profile: p}
	if user.WarehouseID != nil {
		w, err := resolveWarehouse(ctx, s.pool, *user.WarehouseID)
		if err != nil {
			return nil, err
		}
		me.Warehouse = w
	}
	return me, nil
}

// managedWarehouseID finds the warehouse a partner manages, nil when the
// partner has no assignment yet.
func (s *identityService) managedWarehouseID(ctx context.Context, profileID int) (*int, error) {
	var id int
	err := s.pool.QueryRow(ctx, `
		SELECT id
		FROM warehouses
		WHERE manager_id = $1
		ORDER BY id
		LIMIT 1
	`, profileID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve managed warehouse: %w", err)
	}
	return &id, nil
}
