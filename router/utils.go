package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/envelope-app/feed-backend/db"
)

const maxBodySize = 1 << 20

// parsePostID reads the {id} path variable into the router context
func parsePostID() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		id := mux.Vars(r)["id"]
		if id == "" {
			return handleNotFoundError()
		}
		rc.postID = id
		return nil
	}
}

// decodeJSON decodes the request body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) *HTTPError {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v)
	if err == nil || err == io.EOF {
		return nil
	}
	return &HTTPError{
		IError:    err,
		Level:     1,
		Status:    http.StatusBadRequest,
		Error:     "error in parsing request body",
		ErrorCode: ErrParsing,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) *HTTPError {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return handleJSONError(err)
	}
	return nil
}

func handleJSONError(err error) *HTTPError {
	return &HTTPError{
		IError:    err,
		Level:     2,
		Status:    http.StatusInternalServerError,
		Error:     http.StatusText(http.StatusInternalServerError),
		ErrorCode: ErrInternal,
	}
}

func handleValidationError(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return &HTTPError{
			IError:    err,
			Level:     1,
			Status:    http.StatusBadRequest,
			Error:     verr.Message,
			ErrorCode: verr.Code,
		}
	}
	return handleStoreError(err)
}

func handleNotFoundError() *HTTPError {
	return &HTTPError{
		IError:    db.ErrNotFound,
		Level:     1,
		Status:    http.StatusNotFound,
		Error:     "Post not found",
		ErrorCode: ErrNotFound,
	}
}

// handleStoreError maps an error from db.Store onto a response
func handleStoreError(err error) *HTTPError {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return handleNotFoundError()

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &HTTPError{
			IError:    err,
			Level:     3,
			Status:    http.StatusServiceUnavailable,
			Error:     "request canceled",
			ErrorCode: ErrTimeout,
		}
	}

	return &HTTPError{
		IError:    err,
		Level:     3,
		Status:    http.StatusInternalServerError,
		Error:     http.StatusText(http.StatusInternalServerError),
		ErrorCode: ErrInternal,
	}
}
