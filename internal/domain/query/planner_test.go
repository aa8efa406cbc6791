package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/access"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
)

var (
	owner = access.Actor{ID: "owner", RoleID: entities.RoleRegular, Tier: 1}
	other = access.Actor{ID: "other", RoleID: entities.RoleFellow, Tier: 2}
)

func fixture() []*entities.Document {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return []*entities.Document{
		{ID: "a", Title: "Go notes", Content: "channels and goroutines", Access: entities.AccessPublic, OwnerUserID: "owner", OwnerRoleID: entities.RoleRegular, CreatedAt: base},
		{ID: "b", Title: "Private diary", Content: "secret", Access: entities.AccessPrivate, OwnerUserID: "owner", OwnerRoleID: entities.RoleRegular, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Title: "Team plan", Content: "roadmap", Access: entities.AccessRole, OwnerUserID: "owner", OwnerRoleID: entities.RoleRegular, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestBuildDefaults(t *testing.T) {
	p := Build(owner, entities.SearchQuery{})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, entities.FilterAll, p.Access)
	assert.Equal(t, "", p.FreeText)

	p = Build(owner, entities.SearchQuery{Page: -3, FreeText: "  hello  "})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, "hello", p.FreeText)
}

func TestMatchVisibility(t *testing.T) {
	docs := fixture()

	p := Build(owner, entities.SearchQuery{})
	for _, d := range docs {
		assert.True(t, p.Match(d), d.ID)
	}

	p = Build(other, entities.SearchQuery{})
	assert.True(t, p.Match(docs[0]))  // public
	assert.False(t, p.Match(docs[1])) // private, not owner
	assert.False(t, p.Match(docs[2])) // role mismatch
}

func TestMatchFreeText(t *testing.T) {
	docs := fixture()

	p := Build(owner, entities.SearchQuery{FreeText: "GOROUTINES"})
	assert.True(t, p.Match(docs[0]), "case-insensitive content match")
	assert.False(t, p.Match(docs[1]))

	p = Build(owner, entities.SearchQuery{FreeText: "diary"})
	assert.True(t, p.Match(docs[1]), "title match")
}

func TestMatchAccessFilterIntersectsVisibility(t *testing.T) {
	docs := fixture()

	// Requesting private as a non-owner yields nothing, not an error.
	p := Build(other, entities.SearchQuery{Access: entities.FilterPrivate})
	for _, d := range docs {
		assert.False(t, p.Match(d))
	}

	p = Build(owner, entities.SearchQuery{Access: entities.FilterPrivate})
	assert.False(t, p.Match(docs[0]))
	assert.True(t, p.Match(docs[1]))
}

func TestMatchOwnerRestriction(t *testing.T) {
	docs := fixture()
	stray := &entities.Document{ID: "z", Title: "t", Content: "c", Access: entities.AccessPublic, OwnerUserID: "someone-else", OwnerRoleID: entities.RoleRegular}

	p := Build(owner, entities.SearchQuery{}).ForOwner("owner")
	assert.True(t, p.Match(docs[0]))
	assert.False(t, p.Match(stray))
}

func TestSortNewestFirstTiesByID(t *testing.T) {
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	docs := []*entities.Document{
		{ID: "b", CreatedAt: ts},
		{ID: "a", CreatedAt: ts},
		{ID: "c", CreatedAt: ts.Add(time.Minute)},
	}
	Sort(docs)
	assert.Equal(t, "c", docs[0].ID)
	assert.Equal(t, "a", docs[1].ID)
	assert.Equal(t, "b", docs[2].ID)
}

func TestPageMath(t *testing.T) {
	assert.Equal(t, 0, PageCount(0))
	assert.Equal(t, 1, PageCount(1))
	assert.Equal(t, 1, PageCount(entities.PageSize))
	assert.Equal(t, 2, PageCount(entities.PageSize+1))

	p := Build(owner, entities.SearchQuery{Page: 3})
	assert.Equal(t, entities.PageSize, p.Limit())
	assert.Equal(t, 2*entities.PageSize, p.Offset())
}

func TestOutOfRangePageYieldsEmptySlice(t *testing.T) {
	var docs []*entities.Document
	for i := 0; i < 5; i++ {
		docs = append(docs, &entities.Document{
			ID:          fmt.Sprintf("d%d", i),
			Access:      entities.AccessPublic,
			OwnerUserID: "owner",
			OwnerRoleID: entities.RoleRegular,
			CreatedAt:   time.Date(2026, 5, 1, 12, i, 0, 0, time.UTC),
		})
	}

	p := Build(other, entities.SearchQuery{Page: 4})
	var matched []*entities.Document
	for _, d := range docs {
		if p.Match(d) {
			matched = append(matched, d)
		}
	}
	assert.Len(t, matched, 5)
	assert.Equal(t, 1, PageCount(len(matched)))
	assert.GreaterOrEqual(t, p.Offset(), len(matched), "page 4 is past the end")
}
