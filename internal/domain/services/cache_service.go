package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/query"
)

// SearchResult is a cached page of a listing together with the total
// match count the page was cut from.
type SearchResult struct {
	Documents []*entities.Document `json:"documents"`
	Total     int                  `json:"total"`
}

// CacheService caches document rows and search pages. It never caches
// permission decisions: callers re-run the access evaluator on every
// hit.
type CacheService interface {
	GetDocument(ctx context.Context, docID string) (*entities.Document, error)
	SetDocument(ctx context.Context, doc *entities.Document) error
	GetSearch(ctx context.Context, key string) (*SearchResult, error)
	SetSearch(ctx context.Context, key string, res *SearchResult) error
	InvalidateDocument(ctx context.Context, docID string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
	SearchCacheKey(plan query.Plan) string
}

type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, duration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

type redisCacheService struct {
	client        RedisClient
	cacheDuration time.Duration
}

func NewRedisCacheService(client RedisClient, cacheDuration time.Duration) CacheService {
	return &redisCacheService{
		client:        client,
		cacheDuration: cacheDuration,
	}
}

func (s *redisCacheService) GetDocument(ctx context.Context, docID string) (*entities.Document, error) {
	data, err := s.client.Get(ctx, "doc:"+docID)
	if err != nil {
		return nil, err
	}

	var doc entities.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (s *redisCacheService) SetDocument(ctx context.Context, doc *entities.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, "doc:"+doc.ID, data, s.cacheDuration)
}

func (s *redisCacheService) GetSearch(ctx context.Context, key string) (*SearchResult, error) {
	data, err := s.client.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var res SearchResult
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func (s *redisCacheService) SetSearch(ctx context.Context, key string, res *SearchResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, data, s.cacheDuration)
}

func (s *redisCacheService) InvalidateDocument(ctx context.Context, docID string) error {
	return s.client.Del(ctx, "doc:"+docID)
}

func (s *redisCacheService) InvalidatePrefix(ctx context.Context, prefix string) error {
	keys, err := s.client.Keys(ctx, prefix+"*")
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return s.client.Del(ctx, keys...)
	}

	return nil
}

// SearchCacheKey includes the actor because visibility is part of the
// plan: two users running the same search can see different pages.
func (s *redisCacheService) SearchCacheKey(plan query.Plan) string {
	return fmt.Sprintf(
		"docs:search:actor=%s:owner=%s:access=%s:q=%s:page=%d",
		plan.Actor.ID,
		plan.OwnerID,
		plan.Access,
		plan.FreeText,
		plan.Page,
	)
}
