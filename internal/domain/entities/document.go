package entities

import (
	"fmt"
	"time"
)

// AccessLevel is the closed set of document visibility levels. Values
// outside the set are rejected at the boundary so the rest of the code
// never sees an illegal level.
type AccessLevel string

const (
	AccessPublic  AccessLevel = "public"
	AccessPrivate AccessLevel = "private"
	AccessRole    AccessLevel = "role"
)

// ParseAccessLevel matches case-sensitively, no normalization.
func ParseAccessLevel(s string) (AccessLevel, error) {
	switch AccessLevel(s) {
	case AccessPublic, AccessPrivate, AccessRole:
		return AccessLevel(s), nil
	}
	return "", fmt.Errorf("invalid access level %q", s)
}

type Document struct {
	ID          string      `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Content     string      `json:"content" db:"content"`
	Access      AccessLevel `json:"access" db:"access"`
	OwnerUserID string      `json:"owner_id" db:"owner_user_id"`
	OwnerRoleID int         `json:"owner_role_id" db:"owner_role_id"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// PageSize is the fixed number of documents per listing page.
const PageSize = 10

// AccessFilter narrows a listing to one access level; FilterAll imposes
// no restriction beyond the actor's visibility.
type AccessFilter string

const (
	FilterAll     AccessFilter = "all"
	FilterPublic  AccessFilter = "public"
	FilterPrivate AccessFilter = "private"
	FilterRole    AccessFilter = "role"
)

// ParseAccessFilter is lenient: an absent or unknown value means FilterAll.
func ParseAccessFilter(s string) AccessFilter {
	switch AccessFilter(s) {
	case FilterPublic, FilterPrivate, FilterRole:
		return AccessFilter(s)
	}
	return FilterAll
}

// SearchQuery is a transient listing request, never persisted.
type SearchQuery struct {
	FreeText string
	Access   AccessFilter
	Page     int
}

type Pagination struct {
	Page      int `json:"page"`
	PageCount int `json:"pageCount"`
}
