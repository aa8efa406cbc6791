// Package query turns a search request into a plan the document store
// can execute: a visibility predicate derived from the access rules,
// optional free-text and access-level filters, a deterministic sort
// order and page math.
package query

import (
	"sort"
	"strings"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/access"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
)

// Plan is a fully-resolved listing request. OwnerID, when set,
// restricts results to documents owned by that user (the per-user
// listing); visibility is always intersected on top.
type Plan struct {
	Actor    access.Actor
	FreeText string
	Access   entities.AccessFilter
	OwnerID  string
	Page     int
}

// Build normalizes the request: page defaults to 1, the filter
// defaults to all.
func Build(actor access.Actor, q entities.SearchQuery) Plan {
	page := q.Page
	if page < 1 {
		page = 1
	}
	filter := q.Access
	if filter == "" {
		filter = entities.FilterAll
	}
	return Plan{
		Actor:    actor,
		FreeText: strings.TrimSpace(q.FreeText),
		Access:   filter,
		Page:     page,
	}
}

func (p Plan) ForOwner(ownerID string) Plan {
	p.OwnerID = ownerID
	return p
}

// Match is the in-memory equivalent of the SQL the repository renders
// from this plan. The two must agree; tests hold them together.
func (p Plan) Match(doc *entities.Document) bool {
	if !access.Visible(p.Actor, doc) {
		return false
	}
	if p.OwnerID != "" && doc.OwnerUserID != p.OwnerID {
		return false
	}
	if p.Access != entities.FilterAll && doc.Access != entities.AccessLevel(p.Access) {
		return false
	}
	if p.FreeText != "" {
		needle := strings.ToLower(p.FreeText)
		if !strings.Contains(strings.ToLower(doc.Title), needle) &&
			!strings.Contains(strings.ToLower(doc.Content), needle) {
			return false
		}
	}
	return true
}

func (p Plan) Limit() int {
	return entities.PageSize
}

func (p Plan) Offset() int {
	return (p.Page - 1) * entities.PageSize
}

// PageCount is ceil(total / PageSize). A page beyond it yields an
// empty list, never an error.
func PageCount(total int) int {
	return (total + entities.PageSize - 1) / entities.PageSize
}

// Sort orders documents newest first, ties broken by identifier, so
// pagination stays stable under concurrent inserts.
func Sort(docs []*entities.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
}
