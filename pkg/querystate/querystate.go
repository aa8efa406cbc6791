// Package querystate keeps a client's search, filter and page state
// bound to a URL query string and in sync with the document listing
// endpoint. The reducer is pure; the Synchronizer wraps it with
// request dispatch and stale-response handling.
package querystate

import (
	"net/url"
	"strconv"
	"time"
)

const (
	keyAccess = "access"
	keyQuery  = "query"
	keyPage   = "page"
)

// Document mirrors the server's document shape.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Access      string    `json:"access"`
	OwnerUserID string    `json:"owner_id"`
	OwnerRoleID int       `json:"owner_role_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Pagination struct {
	Page      int `json:"page"`
	PageCount int `json:"pageCount"`
}

// State is everything a listing view observes. Loading is false by
// default and true exactly while a request is in flight.
type State struct {
	Access     string
	Query      string
	Page       int
	Loading    bool
	Documents  []Document
	Pagination Pagination
	Err        error
}

func initialState() State {
	return State{Access: "all", Page: 1}
}

func validAccess(s string) bool {
	switch s {
	case "public", "private", "role":
		return true
	}
	return false
}

// Parse reads a raw URL query string. Absent access means "all",
// absent query means empty, absent or invalid page means 1. Unknown
// access values fall back to "all" so parsing is total.
func Parse(rawQuery string) (access, query string, page int) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}

	access = values.Get(keyAccess)
	if !validAccess(access) {
		access = "all"
	}
	query = values.Get(keyQuery)
	page, err = strconv.Atoi(values.Get(keyPage))
	if err != nil || page < 1 {
		page = 1
	}
	return access, query, page
}

// Values serializes the three URL-bound fields; Parse(Values(s)) is
// the identity on them.
func (s State) Values() url.Values {
	v := url.Values{}
	v.Set(keyAccess, s.Access)
	v.Set(keyQuery, s.Query)
	v.Set(keyPage, strconv.Itoa(s.Page))
	return v
}

// Event is one observable input to the state machine.
type Event interface {
	isEvent()
}

// URLChanged fires on mount and whenever the URL changes externally.
type URLChanged struct{ RawQuery string }

// FilterChanged fires when the user picks an access filter; it resets
// the page to 1.
type FilterChanged struct{ Access string }

// SearchSubmitted fires when the user submits free text; it resets the
// page to 1.
type SearchSubmitted struct{ Query string }

// PageChanged fires from the pagination control.
type PageChanged struct{ Page int }

// FetchStarted and FetchFinished bracket a request; Seq ties a
// response to the request that produced it.
type FetchStarted struct{ Seq uint64 }

type FetchFinished struct {
	Seq        uint64
	Documents  []Document
	Pagination Pagination
	Err        error
}

func (URLChanged) isEvent()      {}
func (FilterChanged) isEvent()   {}
func (SearchSubmitted) isEvent() {}
func (PageChanged) isEvent()     {}
func (FetchStarted) isEvent()    {}
func (FetchFinished) isEvent()   {}

// Reduce applies one event and reports whether a fetch should be
// issued for the resulting state. It is pure: stale-response dropping
// happens in the Synchronizer before stale events reach the reducer.
func Reduce(s State, ev Event) (State, bool) {
	switch e := ev.(type) {
	case URLChanged:
		s.Access, s.Query, s.Page = Parse(e.RawQuery)
		return s, true
	case FilterChanged:
		if !validAccess(e.Access) {
			s.Access = "all"
		} else {
			s.Access = e.Access
		}
		s.Page = 1
		return s, true
	case SearchSubmitted:
		s.Query = e.Query
		s.Page = 1
		return s, true
	case PageChanged:
		if e.Page >= 1 {
			s.Page = e.Page
		}
		return s, true
	case FetchStarted:
		s.Loading = true
		return s, false
	case FetchFinished:
		s.Loading = false
		s.Err = e.Err
		if e.Err == nil {
			s.Documents = e.Documents
			s.Pagination = e.Pagination
		}
		return s, false
	}
	return s, false
}
