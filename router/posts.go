package router

import (
	"net/http"

	"github.com/envelope-app/feed-backend/common"
	"github.com/envelope-app/feed-backend/db"
	"github.com/envelope-app/feed-backend/log"
)

// ListPosts serves every post, newest first
func ListPosts() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		doc, err := rc.env.Store.Load(r.Context())
		if err != nil {
			return handleStoreError(err)
		}
		return writeJSON(w, http.StatusOK, doc.PostsNewestFirst())
	}
}

// CreatePost validates the body, stamps id and creation time and appends the post
func CreatePost() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		var req CreatePostRequest
		if e := decodeJSON(w, r, &req); e != nil {
			return e
		}

		post, err := req.Normalize()
		if err != nil {
			return handleValidationError(err)
		}
		post.ID = rc.env.NewID()
		post.CreatedAt = common.Millis(rc.env.Now())

		err = rc.env.Store.Update(r.Context(), func(doc *db.Document) error {
			doc.Posts = append(doc.Posts, post)
			return nil
		})
		if err != nil {
			return handleStoreError(err)
		}

		log.Debug.Printf("post %s created by %q\n", post.ID, post.Author)
		return writeJSON(w, http.StatusCreated, post)
	}
}

// LikePost adds one like, input: postid; output: updated post
func LikePost() Handler {
	return changeLikes(1)
}

// UnlikePost removes one like. The count never goes below zero.
func UnlikePost() Handler {
	return changeLikes(-1)
}

func changeLikes(delta int) Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		var updated db.Post

		err := rc.env.Store.Update(r.Context(), func(doc *db.Document) error {
			post := doc.FindPost(rc.postID)
			if post == nil {
				return db.ErrNotFound
			}

			post.LikeCount += delta
			if post.LikeCount < 0 {
				post.LikeCount = 0
			}
			updated = *post
			return nil
		})
		if err != nil {
			return handleStoreError(err)
		}

		return writeJSON(w, http.StatusOK, updated)
	}
}
