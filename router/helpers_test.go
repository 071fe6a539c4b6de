package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/envelope-app/feed-backend/db"
	"github.com/envelope-app/feed-backend/router"
)

// fakeClock advances one millisecond on every reading.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type testServer struct {
	handler http.Handler
	path    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	ids := &sequentialIDs{}

	r := router.Init(&router.Env{
		Store: db.NewFileStore(path),
		Now:   clock.Now,
		NewID: ids.Next,
	})
	return &testServer{handler: r, path: path}
}

func (s *testServer) do(t *testing.T, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	request := httptest.NewRequest(method, url, &buf)
	response := httptest.NewRecorder()
	s.handler.ServeHTTP(response, request)
	return response
}

func (s *testServer) createPost(t *testing.T, body interface{}) db.Post {
	t.Helper()
	response := s.do(t, http.MethodPost, "/posts", body)
	assertStatus(t, response, http.StatusCreated)
	var post db.Post
	decode(t, response, &post)
	return post
}

func (s *testServer) createComment(t *testing.T, postID string, body interface{}) db.Comment {
	t.Helper()
	response := s.do(t, http.MethodPost, "/posts/"+postID+"/comments", body)
	assertStatus(t, response, http.StatusCreated)
	var comment db.Comment
	decode(t, response, &comment)
	return comment
}

func (s *testServer) listPosts(t *testing.T) []db.Post {
	t.Helper()
	response := s.do(t, http.MethodGet, "/posts", nil)
	assertStatus(t, response, http.StatusOK)
	var posts []db.Post
	decode(t, response, &posts)
	return posts
}

func (s *testServer) listComments(t *testing.T, postID string) []db.Comment {
	t.Helper()
	response := s.do(t, http.MethodGet, "/posts/"+postID+"/comments", nil)
	assertStatus(t, response, http.StatusOK)
	var comments []db.Comment
	decode(t, response, &comments)
	return comments
}

type errorBody struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

func assertStatus(t testing.TB, response *httptest.ResponseRecorder, want int) {
	t.Helper()
	if response.Code != want {
		t.Fatalf("did not get correct status, got %d but want %d (body %s)", response.Code, want, response.Body.String())
	}
}

func assertError(t testing.TB, response *httptest.ResponseRecorder, status int, message, code string) {
	t.Helper()
	assertStatus(t, response, status)

	var got errorBody
	decode(t, response, &got)
	if got.Error != message || got.ErrorCode != code {
		t.Errorf("got error %+v, want %q (%s)", got, message, code)
	}
}

func decode(t testing.TB, response *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(response.Body.Bytes(), v); err != nil {
		t.Fatalf("unable to decode response %q: %v", response.Body.String(), err)
	}
}
