package querystate

import (
	"context"
	"sync"
)

// SearchResult is one page of the listing endpoint's response.
type SearchResult struct {
	Documents  []Document `json:"documents"`
	Pagination Pagination `json:"pagination"`
}

// Fetcher issues one listing request.
type Fetcher interface {
	Search(ctx context.Context, access, query string, page int) (SearchResult, error)
}

// Synchronizer drives the state machine. Rapid edits issue overlapping
// requests in order; responses carry the sequence number of the
// request that produced them and anything older than the latest issued
// request is dropped (last-issued-wins).
type Synchronizer struct {
	mu       sync.Mutex
	state    State
	seq      uint64
	fetcher  Fetcher
	onChange func(State)
}

func NewSynchronizer(fetcher Fetcher, onChange func(State)) *Synchronizer {
	return &Synchronizer{
		state:    initialState(),
		fetcher:  fetcher,
		onChange: onChange,
	}
}

func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// URLQuery is the query string the view should show for the current
// state; together with Dispatch(URLChanged) it forms the two-way URL
// binding.
func (s *Synchronizer) URLQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Values().Encode()
}

// Dispatch applies a user or URL event. When the reducer asks for a
// fetch, the request runs on its own goroutine and reports back
// through the sequence-guarded completion path.
func (s *Synchronizer) Dispatch(ctx context.Context, ev Event) {
	s.mu.Lock()

	next, fetch := Reduce(s.state, ev)
	s.state = next

	if !fetch {
		s.notifyLocked()
		s.mu.Unlock()
		return
	}

	s.seq++
	seq := s.seq
	s.state, _ = Reduce(s.state, FetchStarted{Seq: seq})
	access, query, page := s.state.Access, s.state.Query, s.state.Page
	s.notifyLocked()
	s.mu.Unlock()

	go func() {
		result, err := s.fetcher.Search(ctx, access, query, page)
		s.complete(FetchFinished{Seq: seq, Documents: result.Documents, Pagination: result.Pagination, Err: err})
	}()
}

func (s *Synchronizer) complete(ev FetchFinished) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer request owns the state now; this response is stale.
	if ev.Seq != s.seq {
		return
	}

	s.state, _ = Reduce(s.state, ev)
	s.notifyLocked()
}

func (s *Synchronizer) notifyLocked() {
	if s.onChange != nil {
		s.onChange(s.state)
	}
}
