package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/app"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/query"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/services"
	"github.com/wapjude/CP-2-Document-Mangement-system/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Init("prod"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type memoryStore struct {
	mu       sync.Mutex
	users    map[string]*entities.User
	sessions map[string]*entities.Session
	docs     map[string]*entities.Document
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[string]*entities.User),
		sessions: make(map[string]*entities.Session),
		docs:     make(map[string]*entities.Document),
	}
}

var errNoRows = errors.New("no rows")

func (s *memoryStore) Create(_ context.Context, doc *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *doc
	s.docs[doc.ID] = &copied
	return nil
}

func (s *memoryStore) GetByID(_ context.Context, id string) (*entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, errNoRows
	}
	copied := *doc
	return &copied, nil
}

func (s *memoryStore) Search(_ context.Context, plan query.Plan) ([]*entities.Document, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*entities.Document
	for _, doc := range s.docs {
		if plan.Match(doc) {
			copied := *doc
			matched = append(matched, &copied)
		}
	}
	query.Sort(matched)

	total := len(matched)
	start := plan.Offset()
	if start >= total {
		return []*entities.Document{}, total, nil
	}
	end := start + plan.Limit()
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *memoryStore) Update(_ context.Context, doc *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.ID]; !ok {
		return errNoRows
	}
	copied := *doc
	s.docs[doc.ID] = &copied
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

type memoryUserRepo struct{ store *memoryStore }

func (r memoryUserRepo) Create(_ context.Context, user *entities.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r memoryUserRepo) GetByID(_ context.Context, id string) (*entities.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, errNoRows
	}
	copied := *user
	return &copied, nil
}

func (r memoryUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errNoRows
}

type memorySessionRepo struct{ store *memoryStore }

func (r memorySessionRepo) Create(_ context.Context, session *entities.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *session
	r.store.sessions[session.Token] = &copied
	return nil
}

func (r memorySessionRepo) GetByToken(_ context.Context, token string) (*entities.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	session, ok := r.store.sessions[token]
	if !ok {
		return nil, errNoRows
	}
	copied := *session
	return &copied, nil
}

func (r memorySessionRepo) Delete(_ context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, token)
	return nil
}

type noopCache struct{}

func (noopCache) GetDocument(context.Context, string) (*entities.Document, error) {
	return nil, errNoRows
}
func (noopCache) SetDocument(context.Context, *entities.Document) error { return nil }
func (noopCache) GetSearch(context.Context, string) (*services.SearchResult, error) {
	return nil, errNoRows
}
func (noopCache) SetSearch(context.Context, string, *services.SearchResult) error { return nil }
func (noopCache) InvalidateDocument(context.Context, string) error                { return nil }
func (noopCache) InvalidatePrefix(context.Context, string) error                  { return nil }
func (noopCache) SearchCacheKey(plan query.Plan) string {
	return fmt.Sprintf("%s|%s|%s|%s|%d", plan.Actor.ID, plan.OwnerID, plan.Access, plan.FreeText, plan.Page)
}

type testServer struct {
	router *gin.Engine
	store  *memoryStore
}

func newTestServer() *testServer {
	store := newMemoryStore()
	authSvc := services.NewAuthService(memoryUserRepo{store}, memorySessionRepo{store}, time.Hour)
	docSvc := services.NewDocumentService(store, noopCache{})
	return &testServer{
		router: app.NewRouter(authSvc, docSvc),
		store:  store,
	}
}

// seedUser installs a user and an open session directly, the way the
// database seed provisions the admin account.
func (ts *testServer) seedUser(id string, roleID int) (token string) {
	token = id + "-token"
	ts.store.mu.Lock()
	defer ts.store.mu.Unlock()
	ts.store.users[id] = &entities.User{
		ID:     id,
		Email:  id + "@example.com",
		RoleID: roleID,
	}
	ts.store.sessions[token] = &entities.Session{
		ID:        id + "-session",
		UserID:    id,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return token
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-access-token", token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type messageBody struct {
	Message string `json:"message"`
}

type documentBody struct {
	Document entities.Document `json:"document"`
}

type listBody struct {
	Documents  []entities.Document `json:"documents"`
	Pagination entities.Pagination `json:"pagination"`
}

func docPayload(title, content, access string) map[string]string {
	return map[string]string{"title": title, "content": content, "access": access}
}

func TestSignupAndLogin(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPost, "/api/users", "", map[string]string{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var signup struct {
		User  entities.User `json:"user"`
		Token string        `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signup))
	assert.Equal(t, entities.RoleRegular, signup.User.RoleID)
	assert.NotEmpty(t, signup.Token)

	w = ts.do(http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateDocumentValidation(t *testing.T) {
	ts := newTestServer()
	token := ts.seedUser("alice", entities.RoleRegular)

	w := ts.do(http.MethodPost, "/api/documents", token, docPayload("t", "c", "radnom"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "access can either be public, private or role", decode[messageBody](t, w).Message)

	w = ts.do(http.MethodPost, "/api/documents", token, docPayload("", "c", "public"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "please enter a title", decode[messageBody](t, w).Message)

	w = ts.do(http.MethodPost, "/api/documents", token, docPayload("t", "", "public"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "please enter content", decode[messageBody](t, w).Message)

	w = ts.do(http.MethodPost, "/api/documents", token, docPayload("t", "c", "role"))
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[documentBody](t, w).Document
	assert.Equal(t, "alice", created.OwnerUserID)
	assert.Equal(t, entities.RoleRegular, created.OwnerRoleID)
}

func TestCreateDocumentRequiresToken(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPost, "/api/documents", "", docPayload("t", "c", "public"))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodPost, "/api/documents", "invalid token", docPayload("t", "c", "public"))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReadPrivateDocument(t *testing.T) {
	ts := newTestServer()
	aliceToken := ts.seedUser("alice", entities.RoleRegular)
	bobToken := ts.seedUser("bob", entities.RoleRegular)
	adminToken := ts.seedUser("admin", entities.RoleAdmin)

	w := ts.do(http.MethodPost, "/api/documents", aliceToken, docPayload("my diary", "dear diary", "private"))
	require.Equal(t, http.StatusCreated, w.Code)
	docID := decode[documentBody](t, w).Document.ID

	// Regular non-owner: denied with the literal message.
	w = ts.do(http.MethodGet, "/api/documents/"+docID, bobToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decode[messageBody](t, w).Message)

	// Admin is denied too: manage rights do not include private reads.
	w = ts.do(http.MethodGet, "/api/documents/"+docID, adminToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decode[messageBody](t, w).Message)

	w = ts.do(http.MethodGet, "/api/documents/"+docID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "my diary", decode[documentBody](t, w).Document.Title)
}

func TestReadRoleAndPublicDocuments(t *testing.T) {
	ts := newTestServer()
	aliceToken := ts.seedUser("alice", entities.RoleRegular)
	bobToken := ts.seedUser("bob", entities.RoleRegular)
	carolToken := ts.seedUser("carol", entities.RoleFellow)

	w := ts.do(http.MethodPost, "/api/documents", aliceToken, docPayload("team notes", "content", "role"))
	require.Equal(t, http.StatusCreated, w.Code)
	roleDocID := decode[documentBody](t, w).Document.ID

	w = ts.do(http.MethodPost, "/api/documents", aliceToken, docPayload("announcement", "content", "public"))
	require.Equal(t, http.StatusCreated, w.Code)
	publicDocID := decode[documentBody](t, w).Document.ID

	// Same role reads role documents.
	w = ts.do(http.MethodGet, "/api/documents/"+roleDocID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Different role does not.
	w = ts.do(http.MethodGet, "/api/documents/"+roleDocID, carolToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Public is readable by anyone authenticated.
	w = ts.do(http.MethodGet, "/api/documents/"+publicDocID, carolToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDocumentNotFound(t *testing.T) {
	ts := newTestServer()
	token := ts.seedUser("alice", entities.RoleRegular)

	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPut, docPayload("t", "c", "public")},
		{http.MethodDelete, nil},
	} {
		w := ts.do(tc.method, "/api/documents/233333", token, tc.body)
		require.Equal(t, http.StatusNotFound, w.Code, tc.method)
		assert.Equal(t, "document not found", decode[messageBody](t, w).Message, tc.method)
	}
}

func TestUpdateDocument(t *testing.T) {
	ts := newTestServer()
	aliceToken := ts.seedUser("alice", entities.RoleRegular)
	bobToken := ts.seedUser("bob", entities.RoleRegular)
	adminToken := ts.seedUser("admin", entities.RoleAdmin)

	w := ts.do(http.MethodPost, "/api/documents", aliceToken, docPayload("original", "content", "public"))
	require.Equal(t, http.StatusCreated, w.Code)
	docID := decode[documentBody](t, w).Document.ID

	w = ts.do(http.MethodPut, "/api/documents/"+docID, bobToken, docPayload("hijacked", "content", "public"))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decode[messageBody](t, w).Message)

	// Admin cannot update someone else's document either.
	w = ts.do(http.MethodPut, "/api/documents/"+docID, adminToken, docPayload("hijacked", "content", "public"))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodPut, "/api/documents/"+docID, aliceToken, docPayload("updated", "new content", "role"))
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[documentBody](t, w).Document
	assert.Equal(t, "updated", updated.Title)
	assert.Equal(t, entities.AccessRole, updated.Access)
}

func TestDeleteDocument(t *testing.T) {
	ts := newTestServer()
	aliceToken := ts.seedUser("alice", entities.RoleRegular)
	bobToken := ts.seedUser("bob", entities.RoleRegular)
	adminToken := ts.seedUser("admin", entities.RoleAdmin)

	w := ts.do(http.MethodPost, "/api/documents", aliceToken, docPayload("shared", "content", "public"))
	require.Equal(t, http.StatusCreated, w.Code)
	docID := decode[documentBody](t, w).Document.ID

	// A non-owner non-admin cannot delete.
	w = ts.do(http.MethodDelete, "/api/documents/"+docID, bobToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decode[messageBody](t, w).Message)

	// An admin can delete any existing document.
	w = ts.do(http.MethodDelete, "/api/documents/"+docID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/api/documents/"+docID, aliceToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchEndpoint(t *testing.T) {
	ts := newTestServer()
	aliceToken := ts.seedUser("alice", entities.RoleRegular)
	carolToken := ts.seedUser("carol", entities.RoleFellow)

	for i := 0; i < entities.PageSize+2; i++ {
		w := ts.do(http.MethodPost, "/api/documents", aliceToken, docPayload(fmt.Sprintf("public doc %02d", i), "content", "public"))
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := ts.do(http.MethodPost, "/api/documents", aliceToken, docPayload("hidden", "content", "private"))
	require.Equal(t, http.StatusCreated, w.Code)

	// First page fills up; the private document is invisible to carol.
	w = ts.do(http.MethodGet, "/api/documents", carolToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[listBody](t, w)
	assert.Len(t, list.Documents, entities.PageSize)
	assert.Equal(t, 1, list.Pagination.Page)
	assert.Equal(t, 2, list.Pagination.PageCount)

	w = ts.do(http.MethodGet, "/api/documents?page=2", carolToken, nil)
	list = decode[listBody](t, w)
	assert.Len(t, list.Documents, 2)

	// Beyond the last page: empty list, same page count.
	w = ts.do(http.MethodGet, "/api/documents?page=9", carolToken, nil)
	list = decode[listBody](t, w)
	assert.Empty(t, list.Documents)
	assert.Equal(t, 2, list.Pagination.PageCount)

	// Free text narrows the match set.
	w = ts.do(http.MethodGet, "/api/documents?query=doc+03", carolToken, nil)
	list = decode[listBody](t, w)
	require.Len(t, list.Documents, 1)
	assert.Equal(t, "public doc 03", list.Documents[0].Title)

	// Requesting private as a non-owner yields an empty page.
	w = ts.do(http.MethodGet, "/api/documents?access=private", carolToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = decode[listBody](t, w)
	assert.Empty(t, list.Documents)
}

func TestUserDocumentsListing(t *testing.T) {
	ts := newTestServer()
	aliceToken := ts.seedUser("alice", entities.RoleRegular)
	bobToken := ts.seedUser("bob", entities.RoleRegular)
	adminToken := ts.seedUser("admin", entities.RoleAdmin)

	w := ts.do(http.MethodPost, "/api/documents", aliceToken, docPayload("mine public", "content", "public"))
	require.Equal(t, http.StatusCreated, w.Code)
	w = ts.do(http.MethodPost, "/api/documents", aliceToken, docPayload("mine private", "content", "private"))
	require.Equal(t, http.StatusCreated, w.Code)

	// The owner sees both documents.
	w = ts.do(http.MethodGet, "/api/users/alice/documents", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[listBody](t, w).Documents, 2)

	// Another regular user cannot request the listing at all.
	w = ts.do(http.MethodGet, "/api/users/alice/documents", bobToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// An admin may ask, but the private document stays hidden.
	w = ts.do(http.MethodGet, "/api/users/alice/documents", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	docs := decode[listBody](t, w).Documents
	require.Len(t, docs, 1)
	assert.Equal(t, "mine public", docs[0].Title)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	ts := newTestServer()
	token := ts.seedUser("alice", entities.RoleRegular)

	w := ts.do(http.MethodPost, "/api/users/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/api/documents", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
