package repositories

import (
	"context"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/query"
)

// DocumentRepository is the persistence contract the engine depends
// on. Search executes a query plan and reports the total match count
// alongside the requested page.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id string) (*entities.Document, error)
	Search(ctx context.Context, plan query.Plan) ([]*entities.Document, int, error)
	Update(ctx context.Context, doc *entities.Document) error
	Delete(ctx context.Context, id string) error
}
