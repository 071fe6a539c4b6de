package router

import (
	"net/http"

	"github.com/envelope-app/feed-backend/common"
	"github.com/envelope-app/feed-backend/db"
	"github.com/envelope-app/feed-backend/log"
)

// ListComments serves the comments of a post, oldest first.
// The post has to exist even though only comments are read.
func ListComments() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		doc, err := rc.env.Store.Load(r.Context())
		if err != nil {
			return handleStoreError(err)
		}
		if doc.FindPost(rc.postID) == nil {
			return handleNotFoundError()
		}
		return writeJSON(w, http.StatusOK, doc.CommentsFor(rc.postID))
	}
}

// CreateComment appends a comment and bumps the post's commentCount in the
// same write.
func CreateComment() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		var req CreateCommentRequest
		if e := decodeJSON(w, r, &req); e != nil {
			return e
		}

		comment, err := req.Normalize()
		if err != nil {
			return handleValidationError(err)
		}
		comment.ID = rc.env.NewID()
		comment.PostID = rc.postID
		comment.CreatedAt = common.Millis(rc.env.Now())

		err = rc.env.Store.Update(r.Context(), func(doc *db.Document) error {
			post := doc.FindPost(rc.postID)
			if post == nil {
				return db.ErrNotFound
			}
			post.CommentCount++
			doc.Comments = append(doc.Comments, comment)
			return nil
		})
		if err != nil {
			return handleStoreError(err)
		}

		log.Debug.Printf("comment %s added to post %s\n", comment.ID, comment.PostID)
		return writeJSON(w, http.StatusCreated, comment)
	}
}
