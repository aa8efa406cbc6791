package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/query"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/repositories"
)

const documentColumns = `id, title, content, access, owner_user_id, owner_role_id, created_at, updated_at`

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) repositories.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entities.Document) error {
	q := `INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, q,
		doc.ID, doc.Title, doc.Content, doc.Access,
		doc.OwnerUserID, doc.OwnerRoleID, doc.CreatedAt, doc.UpdatedAt,
	)
	return err
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*entities.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	var doc entities.Document
	if err := r.db.GetContext(ctx, &doc, q, id); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Search renders the plan into SQL. The WHERE clause must stay
// equivalent to query.Plan.Match; the planner tests pin the in-memory
// side and the integration seed exercises this one.
func (r *documentRepository) Search(ctx context.Context, plan query.Plan) ([]*entities.Document, int, error) {
	where := `(access = 'public' OR owner_user_id = $1 OR (access = 'role' AND owner_role_id = $2))`
	args := []any{plan.Actor.ID, plan.Actor.RoleID}
	argIndex := 3

	if plan.OwnerID != "" {
		where += fmt.Sprintf(" AND owner_user_id = $%d", argIndex)
		args = append(args, plan.OwnerID)
		argIndex++
	}

	if plan.Access != entities.FilterAll {
		where += fmt.Sprintf(" AND access = $%d", argIndex)
		args = append(args, string(plan.Access))
		argIndex++
	}

	if plan.FreeText != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR content ILIKE $%d)", argIndex, argIndex+1)
		pattern := "%" + plan.FreeText + "%"
		args = append(args, pattern, pattern)
		argIndex += 2
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM documents WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + documentColumns + ` FROM documents WHERE ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`, argIndex, argIndex+1)
	args = append(args, plan.Limit(), plan.Offset())

	docs := []*entities.Document{}
	if err := r.db.SelectContext(ctx, &docs, q, args...); err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *entities.Document) error {
	q := `UPDATE documents SET title = $1, content = $2, access = $3, updated_at = $4
		WHERE id = $5`

	_, err := r.db.ExecContext(ctx, q,
		doc.Title, doc.Content, doc.Access, doc.UpdatedAt, doc.ID,
	)
	return err
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}
