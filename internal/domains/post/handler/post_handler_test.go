package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcms-backend/internal/domains/auth"
	authhandler "blogcms-backend/internal/domains/auth/handler"
	authormodel "blogcms-backend/internal/domains/author/model"
	"blogcms-backend/internal/domains/post/model"
	"blogcms-backend/internal/domains/post/service"
	"blogcms-backend/internal/shared/middleware"
	"blogcms-backend/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ========================================
// IN-MEMORY FAKES
// ========================================

type fakePostRepo struct {
	posts map[uuid.UUID]model.Post
	clock time.Time
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts: make(map[uuid.UUID]model.Post),
		clock: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fakePostRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakePostRepo) Create(_ context.Context, p *model.Post) (*model.Post, error) {
	stored := *p
	stored.ID = uuid.New()
	now := f.tick()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.posts[stored.ID] = stored
	return &stored, nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	return &p, nil
}

func (f *fakePostRepo) List(_ context.Context, tag string) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		if tag != "" {
			match := false
			for _, t := range p.Tags {
				if t == tag {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakePostRepo) Update(_ context.Context, p *model.Post) (*model.Post, error) {
	if _, ok := f.posts[p.ID]; !ok {
		return nil, model.ErrPostNotFound
	}
	stored := *p
	stored.UpdatedAt = f.tick()
	f.posts[stored.ID] = stored
	return &stored, nil
}

func (f *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.posts[id]; !ok {
		return model.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) AllTags(_ context.Context) ([][]string, error) {
	var all [][]string
	for _, p := range f.posts {
		all = append(all, p.Tags)
	}
	return all, nil
}

type fakeAuthorRepo struct {
	authors map[uuid.UUID]authormodel.Author
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{authors: make(map[uuid.UUID]authormodel.Author)}
}

func (f *fakeAuthorRepo) Create(_ context.Context, a *authormodel.Author) (*authormodel.Author, error) {
	stored := *a
	stored.ID = uuid.New()
	f.authors[stored.ID] = stored
	return &stored, nil
}

func (f *fakeAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*authormodel.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, authormodel.ErrAuthorNotFound
	}
	return &a, nil
}

func (f *fakeAuthorRepo) List(_ context.Context) ([]authormodel.Author, error) {
	var out []authormodel.Author
	for _, a := range f.authors {
		out = append(out, a)
	}
	return out, nil
}

// ========================================
// TEST ROUTER
// ========================================

// newTestRouter wires the post routes exactly as the real router does,
// including the admin gate and the auth endpoints that drive it.
func newTestRouter() (*gin.Engine, *fakeAuthorRepo) {
	authors := newFakeAuthorRepo()
	h := NewPostHandler(service.NewPostService(newFakePostRepo(), authors))

	issuer := &token.PlainIssuer{}
	verifier := &auth.StaticVerifier{Username: "admin_root", Password: "admin123"}
	ah := authhandler.NewAuthHandler(verifier, issuer, nil, "admin_auth", false)
	adminOnly := middleware.AdminAuth("admin_auth", issuer)

	r := gin.New()
	v1 := r.Group("/api/v1")

	v1.POST("/auth/login", ah.Login)
	v1.POST("/auth/logout", ah.Logout)

	posts := v1.Group("/posts")
	posts.GET("", h.List)
	posts.GET("/:id", h.GetByID)
	posts.POST("", adminOnly, h.Create)
	posts.PUT("/:id", adminOnly, h.Update)
	posts.DELETE("/:id", adminOnly, h.Delete)
	posts.POST("/:id/resync", adminOnly, h.ResyncAuthor)

	v1.GET("/tags", h.ListTags)

	return r, authors
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func adminCookie() *http.Cookie {
	return &http.Cookie{Name: "admin_auth", Value: "true"}
}

func do(r *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func createPost(t *testing.T, r *gin.Engine, body gin.H) model.PostResponse {
	t.Helper()

	w := do(r, http.MethodPost, "/api/v1/posts", body, adminCookie())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post model.PostResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &post))
	return post
}

func validPostBody() gin.H {
	return gin.H{
		"title":       "T",
		"description": "D",
		"content":     "<p>c</p>",
		"photo":       "p.jpg",
		"tags":        []string{"x", "y"},
	}
}

// ========================================
// CRUD
// ========================================

func TestCreateThenGetRoundTrip(t *testing.T) {
	r, authors := newTestRouter()

	jo, err := authors.Create(context.Background(), &authormodel.Author{
		Name: "Jo", Profession: "Writer", Link: "https://x",
	})
	require.NoError(t, err)

	body := validPostBody()
	body["authorId"] = jo.ID.String()
	created := createPost(t, r, body)

	assert.Equal(t, "Jo", created.Author)
	require.NotNil(t, created.AuthorDetails)
	assert.Equal(t, "Jo", created.AuthorDetails.Name)

	w := do(r, http.MethodGet, "/api/v1/posts/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched model.PostResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &fetched))
	assert.Equal(t, created, fetched)
}

func TestGetUnknownIDReturns404(t *testing.T) {
	r, _ := newTestRouter()

	w := do(r, http.MethodGet, "/api/v1/posts/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unparseable ids get the same answer as unknown ones.
	w = do(r, http.MethodGet, "/api/v1/posts/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRejectsIncompleteBody(t *testing.T) {
	r, _ := newTestRouter()

	body := validPostBody()
	delete(body, "content")

	w := do(r, http.MethodPost, "/api/v1/posts", body, adminCookie())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)
}

func TestUpdateMergesPartialBody(t *testing.T) {
	r, _ := newTestRouter()
	created := createPost(t, r, validPostBody())

	w := do(r, http.MethodPut, "/api/v1/posts/"+created.ID, gin.H{"title": "New title"}, adminCookie())
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.PostResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &updated))
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Tags, updated.Tags)
}

func TestDeleteThenGetReturns404(t *testing.T) {
	r, _ := newTestRouter()
	created := createPost(t, r, validPostBody())

	w := do(r, http.MethodDelete, "/api/v1/posts/"+created.ID, nil, adminCookie())
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/posts/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/posts/"+created.ID, nil, adminCookie())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ========================================
// FEED AND TAGS
// ========================================

func TestListFeedAndTagFilter(t *testing.T) {
	r, _ := newTestRouter()

	mk := func(title string, tags []string) {
		body := validPostBody()
		body["title"] = title
		body["tags"] = tags
		createPost(t, r, body)
	}
	mk("first", []string{"a", "b"})
	mk("second", []string{"a"})

	w := do(r, http.MethodGet, "/api/v1/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var feed []model.PostResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &feed))
	require.Len(t, feed, 2)
	assert.Equal(t, "second", feed[0].Title)
	assert.Equal(t, "first", feed[1].Title)

	w = do(r, http.MethodGet, "/api/v1/posts?tag=b", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, "first", feed[0].Title)
}

func TestListTagsCounts(t *testing.T) {
	r, _ := newTestRouter()

	for _, tags := range [][]string{{"a", "b"}, {"a"}, {"c"}} {
		body := validPostBody()
		body["tags"] = tags
		createPost(t, r, body)
	}

	w := do(r, http.MethodGet, "/api/v1/tags", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var counts map[string]int
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &counts))
	assert.Equal(t, map[string]int{"a": 2, "b": 1, "c": 1}, counts)
}

// ========================================
// AUTH GATE COMPOSITION
// ========================================

func TestMutationsRequireLogin(t *testing.T) {
	r, _ := newTestRouter()

	// No cookie: every mutation is rejected, reads stay open.
	w := do(r, http.MethodPost, "/api/v1/posts", validPostBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/v1/posts", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Login, then reuse the issued cookie.
	w = do(r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "admin_root",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_auth" {
			session = c
		}
	}
	require.NotNil(t, session)

	w = do(r, http.MethodPost, "/api/v1/posts", validPostBody(), session)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestResyncRefreshesAuthorName(t *testing.T) {
	r, authors := newTestRouter()

	jo, err := authors.Create(context.Background(), &authormodel.Author{
		Name: "Jo", Profession: "Writer", Link: "https://x",
	})
	require.NoError(t, err)

	body := validPostBody()
	body["authorId"] = jo.ID.String()
	created := createPost(t, r, body)
	require.Equal(t, "Jo", created.Author)

	// Rename the author behind the post's back; the stored snapshot
	// goes stale until resync.
	renamed := authors.authors[jo.ID]
	renamed.Name = "Joanna"
	authors.authors[jo.ID] = renamed

	w := do(r, http.MethodPost, "/api/v1/posts/"+created.ID+"/resync", nil, adminCookie())
	require.Equal(t, http.StatusOK, w.Code)

	var resynced model.PostResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &resynced))
	assert.Equal(t, "Joanna", resynced.Author)
}
