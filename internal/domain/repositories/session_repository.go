package repositories

import (
	"context"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	GetByToken(ctx context.Context, token string) (*entities.Session, error)
	Delete(ctx context.Context, token string) error
}
