package router_test

import (
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelope-app/feed-backend/db"
)

func TestCreatePost(t *testing.T) {
	t.Run("stores text, media and defaults", func(t *testing.T) {
		s := newTestServer(t)

		post := s.createPost(t, map[string]interface{}{
			"author": "  ana  ",
			"text":   "  hello world ",
			"media":  map[string]string{"type": "youtube", "url": " https://youtu.be/x "},
		})

		assert.Equal(t, "id-1", post.ID)
		assert.Equal(t, "ana", post.Author)
		assert.Equal(t, "hello world", post.Content.Text)
		assert.Equal(t, db.Media{Type: db.MediaYoutube, URL: "https://youtu.be/x"}, post.Content.Media)
		assert.Zero(t, post.LikeCount)
		assert.Zero(t, post.CommentCount)
		assert.Equal(t, int64(1_700_000_000_001), post.CreatedAt)

		posts := s.listPosts(t)
		require.Len(t, posts, 1)
		assert.Equal(t, post, posts[0])
	})

	t.Run("media only post has empty text", func(t *testing.T) {
		s := newTestServer(t)

		post := s.createPost(t, map[string]interface{}{
			"media": map[string]string{"type": "image", "url": "https://img/1.png"},
		})

		assert.Equal(t, "", post.Content.Text)
		assert.Equal(t, "Anonymous", post.Author)
		assert.Equal(t, "", s.listPosts(t)[0].Content.Text)
	})

	t.Run("text only post gets media type none", func(t *testing.T) {
		s := newTestServer(t)

		post := s.createPost(t, map[string]string{"text": "hi"})

		assert.Equal(t, db.Media{Type: db.MediaNone, URL: ""}, post.Content.Media)
	})

	t.Run("accepts legacy content field", func(t *testing.T) {
		s := newTestServer(t)

		post := s.createPost(t, map[string]string{"content": " legacy "})

		assert.Equal(t, "legacy", post.Content.Text)
	})

	t.Run("exactly 2000 characters is accepted", func(t *testing.T) {
		s := newTestServer(t)

		post := s.createPost(t, map[string]string{"text": strings.Repeat("é", 2000)})

		assert.Equal(t, 2000, len([]rune(post.Content.Text)))
	})

	t.Run("rejects 2001 characters", func(t *testing.T) {
		s := newTestServer(t)

		response := s.do(t, http.MethodPost, "/posts", map[string]string{"text": strings.Repeat("a", 2001)})

		assertError(t, response, http.StatusBadRequest, "Text too long", "TEXT_TOO_LONG")
		assert.Empty(t, s.listPosts(t))
	})

	t.Run("rejects empty text and media", func(t *testing.T) {
		s := newTestServer(t)

		response := s.do(t, http.MethodPost, "/posts", map[string]interface{}{
			"author": "ana",
			"text":   "   ",
			"media":  map[string]string{"type": "image", "url": "  "},
		})

		assertError(t, response, http.StatusBadRequest, "Post must have text or media", "EMPTY_CONTENT")
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		s := newTestServer(t)

		response := s.do(t, http.MethodPost, "/posts", nil)

		assertError(t, response, http.StatusBadRequest, "Post must have text or media", "EMPTY_CONTENT")
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		s := newTestServer(t)

		response := s.do(t, http.MethodPost, "/posts", `{"text": `)

		assertError(t, response, http.StatusBadRequest, "error in parsing request body", "PARSING_ERROR")
	})

	t.Run("rejects unknown media type", func(t *testing.T) {
		s := newTestServer(t)

		response := s.do(t, http.MethodPost, "/posts", map[string]interface{}{
			"media": map[string]string{"type": "gif", "url": "https://x"},
		})

		assertError(t, response, http.StatusBadRequest, "Unsupported media type", "INVALID_MEDIA")
	})
}

func TestListPosts(t *testing.T) {
	t.Run("empty store returns an empty array", func(t *testing.T) {
		s := newTestServer(t)

		response := s.do(t, http.MethodGet, "/posts", nil)

		assertStatus(t, response, http.StatusOK)
		assert.JSONEq(t, `[]`, response.Body.String())
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
	})

	t.Run("newest first", func(t *testing.T) {
		s := newTestServer(t)

		a := s.createPost(t, map[string]string{"text": "A"})
		b := s.createPost(t, map[string]string{"text": "B"})

		posts := s.listPosts(t)
		assert.Equal(t, []db.Post{b, a}, posts)
	})

	t.Run("repeated reads are identical", func(t *testing.T) {
		s := newTestServer(t)
		s.createPost(t, map[string]string{"text": "A"})

		first := s.do(t, http.MethodGet, "/posts", nil).Body.String()
		second := s.do(t, http.MethodGet, "/posts", nil).Body.String()

		assert.Equal(t, first, second)
	})

	t.Run("corrupt storage is a 500", func(t *testing.T) {
		s := newTestServer(t)
		require.NoError(t, os.WriteFile(s.path, []byte("{oops"), 0644))

		response := s.do(t, http.MethodGet, "/posts", nil)

		assertError(t, response, http.StatusInternalServerError, "Internal Server Error", "INTERNAL_ERROR")
	})
}

func TestLikePost(t *testing.T) {
	t.Run("like then unlike restores the count", func(t *testing.T) {
		s := newTestServer(t)
		post := s.createPost(t, map[string]string{"text": "A"})

		response := s.do(t, http.MethodPost, "/posts/"+post.ID+"/like", nil)
		assertStatus(t, response, http.StatusOK)
		var liked db.Post
		decode(t, response, &liked)
		assert.Equal(t, 1, liked.LikeCount)

		response = s.do(t, http.MethodDelete, "/posts/"+post.ID+"/like", nil)
		assertStatus(t, response, http.StatusOK)
		var unliked db.Post
		decode(t, response, &unliked)
		assert.Equal(t, 0, unliked.LikeCount)

		assert.Equal(t, post, s.listPosts(t)[0])
	})

	t.Run("unlike at zero stays at zero", func(t *testing.T) {
		s := newTestServer(t)
		post := s.createPost(t, map[string]string{"text": "A"})

		for i := 0; i < 3; i++ {
			response := s.do(t, http.MethodDelete, "/posts/"+post.ID+"/like", nil)
			assertStatus(t, response, http.StatusOK)
		}

		assert.Equal(t, 0, s.listPosts(t)[0].LikeCount)
	})

	t.Run("missing post", func(t *testing.T) {
		s := newTestServer(t)

		assertError(t, s.do(t, http.MethodPost, "/posts/nope/like", nil),
			http.StatusNotFound, "Post not found", "NOT_FOUND")
		assertError(t, s.do(t, http.MethodDelete, "/posts/nope/like", nil),
			http.StatusNotFound, "Post not found", "NOT_FOUND")
	})

	t.Run("concurrent likes are all counted", func(t *testing.T) {
		s := newTestServer(t)
		post := s.createPost(t, map[string]string{"text": "A"})

		const likes = 25
		var wg sync.WaitGroup
		for i := 0; i < likes; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.do(t, http.MethodPost, "/posts/"+post.ID+"/like", nil)
			}()
		}
		wg.Wait()

		assert.Equal(t, likes, s.listPosts(t)[0].LikeCount)
	})
}

func TestRouting(t *testing.T) {
	s := newTestServer(t)

	t.Run("unknown path", func(t *testing.T) {
		assertError(t, s.do(t, http.MethodGet, "/nothing", nil),
			http.StatusNotFound, "Not Found", "NOT_FOUND")
	})

	t.Run("wrong method", func(t *testing.T) {
		assertError(t, s.do(t, http.MethodPut, "/posts", nil),
			http.StatusMethodNotAllowed, "Method Not Allowed", "METHOD_NOT_ALLOWED")
	})

	t.Run("health", func(t *testing.T) {
		response := s.do(t, http.MethodGet, "/healthz", nil)
		assertStatus(t, response, http.StatusOK)
		assert.JSONEq(t, `{"status":"OK"}`, response.Body.String())
	})

	t.Run("health fails on corrupt storage", func(t *testing.T) {
		require.NoError(t, os.WriteFile(s.path, []byte("[]"), 0644))
		assertStatus(t, s.do(t, http.MethodGet, "/healthz", nil), http.StatusInternalServerError)
	})
}
