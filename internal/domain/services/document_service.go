package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/access"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/query"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/repositories"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/utils"
	"github.com/wapjude/CP-2-Document-Mangement-system/pkg/errors"
	"github.com/wapjude/CP-2-Document-Mangement-system/pkg/logger"
)

const searchCachePrefix = "docs:search:"

type DocumentService struct {
	docRepo repositories.DocumentRepository
	cache   CacheService
}

func NewDocumentService(docRepo repositories.DocumentRepository, cache CacheService) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		cache:   cache,
	}
}

func (s *DocumentService) Create(ctx context.Context, actor access.Actor, title, content, accessLevel string) (*entities.Document, error) {
	if !access.CanCreate(actor) {
		return nil, errors.NewUnauthenticatedError("unauthorized")
	}
	if err := utils.ValidateDocumentPayload(accessLevel, title, content); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	level, _ := entities.ParseAccessLevel(accessLevel)
	now := time.Now()
	doc := &entities.Document{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     content,
		Access:      level,
		OwnerUserID: actor.ID,
		OwnerRoleID: actor.RoleID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		logger.Error("create document", zap.Error(err))
		return nil, errors.NewInternalError("failed to create document")
	}

	s.cache.InvalidatePrefix(ctx, searchCachePrefix)

	return doc, nil
}

// GetByID looks the document up first, then authorizes: a missing id
// is always 404, an existing but forbidden one is always 401. Cache
// hits go through the same permission check as store reads.
func (s *DocumentService) GetByID(ctx context.Context, actor access.Actor, id string) (*entities.Document, error) {
	if doc, err := s.cache.GetDocument(ctx, id); err == nil {
		if !access.CanRead(actor, doc) {
			return nil, errors.NewUnauthorizedError("unauthorized")
		}
		return doc, nil
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("document not found")
	}

	if !access.CanRead(actor, doc) {
		return nil, errors.NewUnauthorizedError("unauthorized")
	}

	s.cache.SetDocument(ctx, doc)

	return doc, nil
}

func (s *DocumentService) Update(ctx context.Context, actor access.Actor, id, title, content, accessLevel string) (*entities.Document, error) {
	if err := utils.ValidateDocumentPayload(accessLevel, title, content); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("document not found")
	}

	if !access.CanUpdate(actor, doc) {
		return nil, errors.NewUnauthorizedError("unauthorized")
	}

	level, _ := entities.ParseAccessLevel(accessLevel)
	doc.Title = title
	doc.Content = content
	doc.Access = level
	doc.UpdatedAt = time.Now()

	if err := s.docRepo.Update(ctx, doc); err != nil {
		logger.Error("update document", zap.String("id", id), zap.Error(err))
		return nil, errors.NewInternalError("failed to update document")
	}

	s.cache.InvalidateDocument(ctx, id)
	s.cache.InvalidatePrefix(ctx, searchCachePrefix)

	return doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, actor access.Actor, id string) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return errors.NewNotFoundError("document not found")
	}

	if !access.CanDelete(actor, doc) {
		return errors.NewUnauthorizedError("unauthorized")
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		logger.Error("delete document", zap.String("id", id), zap.Error(err))
		return errors.NewInternalError("failed to delete document")
	}

	s.cache.InvalidateDocument(ctx, id)
	s.cache.InvalidatePrefix(ctx, searchCachePrefix)

	return nil
}

// Search returns the page of documents the actor may read, newest
// first, plus the page count for the whole match set.
func (s *DocumentService) Search(ctx context.Context, actor access.Actor, q entities.SearchQuery) ([]*entities.Document, entities.Pagination, error) {
	return s.search(ctx, query.Build(actor, q))
}

// ListByOwner is the per-user listing. Only the owner themselves or an
// admin may request it; visibility still applies on top, so an admin
// does not see another user's private documents.
func (s *DocumentService) ListByOwner(ctx context.Context, actor access.Actor, ownerID string, q entities.SearchQuery) ([]*entities.Document, entities.Pagination, error) {
	if actor.ID != ownerID && !actor.IsAdmin() {
		return nil, entities.Pagination{}, errors.NewUnauthorizedError("unauthorized")
	}
	return s.search(ctx, query.Build(actor, q).ForOwner(ownerID))
}

func (s *DocumentService) search(ctx context.Context, plan query.Plan) ([]*entities.Document, entities.Pagination, error) {
	key := s.cache.SearchCacheKey(plan)
	if res, err := s.cache.GetSearch(ctx, key); err == nil {
		return res.Documents, entities.Pagination{Page: plan.Page, PageCount: query.PageCount(res.Total)}, nil
	}

	docs, total, err := s.docRepo.Search(ctx, plan)
	if err != nil {
		logger.Error("search documents", zap.Error(err))
		return nil, entities.Pagination{}, errors.NewInternalError("failed to get documents")
	}

	s.cache.SetSearch(ctx, key, &SearchResult{Documents: docs, Total: total})

	return docs, entities.Pagination{Page: plan.Page, PageCount: query.PageCount(total)}, nil
}
