// Package employeescope resolves every employee row that belongs to the
// person behind an employee token. Legacy imports left duplicate rows for
// some people, so self-service reads must union them.
package employeescope

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Identity is the set of claims carried by an employee token.
type Identity struct {
	ID           string
	Email        string
	EmployeeCode string
}

// IdentityFromContext reads the claims AuthMiddleware stored on c.
func IdentityFromContext(c *gin.Context) Identity {
	return Identity{
		ID:           c.GetString("user_id"),
		Email:        c.GetString("email"),
		EmployeeCode: c.GetString("employee_code"),
	}
}

type Resolver interface {
	Resolve(ctx context.Context, identity Identity) ([]uuid.UUID, error)
}

type resolver struct {
	repo   Repository
	logger *zap.Logger
}

func NewResolver(repo Repository, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("employeescope.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeescope.resolver")
	}
	return &resolver{repo: repo, logger: l}
}

func (r *resolver) Resolve(ctx context.Context, identity Identity) ([]uuid.UUID, error) {
	email := normalizeEmail(identity.Email)
	code := strings.TrimSpace(identity.EmployeeCode)

	var id *uuid.UUID
	if parsed, err := uuid.Parse(strings.TrimSpace(identity.ID)); err == nil {
		id = &parsed

		// The stored row is canonical; token claims may predate an edit.
		storedEmail, storedCode, err := r.repo.FindIdentity(ctx, parsed)
		switch {
		case err == nil:
			if e := normalizeEmail(storedEmail); e != "" {
				email = e
			}
			if storedCode != "" {
				code = storedCode
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return nil, err
		}
	}

	if id == nil && email == "" && code == "" {
		return []uuid.UUID{}, nil
	}

	matches, err := r.repo.FindMatching(ctx, id, email, code)
	if err != nil {
		r.logger.Error("resolve employee scope failed", zap.Error(err))
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(matches))
	out := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}

	r.logger.Debug("employee scope resolved", zap.String("user_id", identity.ID), zap.Int("ids", len(out)))
	return out, nil
}

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
