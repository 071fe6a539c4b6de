package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/envelope-app/feed-backend/common"
	"github.com/envelope-app/feed-backend/db"
	"github.com/envelope-app/feed-backend/log"
)

// Env holds what handlers need beyond the request itself.
type Env struct {
	Store db.Store
	Now   func() time.Time
	NewID func() string
}

func (e *Env) withDefaults() *Env {
	out := *e
	if out.Now == nil {
		out.Now = time.Now
	}
	if out.NewID == nil {
		out.NewID = uuid.NewString
	}
	return &out
}

// RouterContext is created per request and shared by the handler chain.
type RouterContext struct {
	env    *Env
	postID string
}

type HTTPError struct {
	Level     int    `json:"-"`
	IError    error  `json:"-"`
	Status    int    `json:"-"`
	Error     string `json:"error"`
	ErrorCode string `json:"error_code,omitempty"`
}

type Handler func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError

func Handle(env *Env, handlers ...Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		rc := &RouterContext{
			env: env,
		}
		w.Header().Set("Content-Type", "application/json")

		for _, handler := range handlers {
			e := handler(rc, w, r)
			if e != nil {

				// 3 Levels of errors
				// Level 1: Don't log anything on server, Only return a response to the user
				// Level 2: Log the error as warning on the server, But don't send a response or close the request
				// Level 3: Log the request, Cancel the request from going any further and return an appropriate response
				switch e.Level {
				case 1:
					writeError(w, e)
					return

				case 2:
					log.Warn.Printf("%s %s from %s: %v\n", r.Method, r.URL.Path, common.GetIPAddr(r), e.IError)

				case 3:
					log.Error.Printf("%s %s from %s: %v\n", r.Method, r.URL.Path, common.GetIPAddr(r), e.IError)
					writeError(w, e)
					return
				}
			}
		}
	})
}

func writeError(w http.ResponseWriter, e *HTTPError) {
	w.WriteHeader(e.Status)
	err := json.NewEncoder(w).Encode(e)
	if err != nil {
		log.Error.Printf("%v: %s\n", err, err)
	}
}

func Init(env *Env) *mux.Router {
	env = env.withDefaults()
	r := mux.NewRouter()

	r.Handle("/posts", Handle(env,
		ListPosts(),
	)).Methods("GET")

	r.Handle("/posts", Handle(env,
		CreatePost(),
	)).Methods("POST")

	r.Handle("/posts/{id}/like", Handle(env,
		parsePostID(),
		LikePost(),
	)).Methods("POST")

	r.Handle("/posts/{id}/like", Handle(env,
		parsePostID(),
		UnlikePost(),
	)).Methods("DELETE")

	r.Handle("/posts/{id}/comments", Handle(env,
		parsePostID(),
		ListComments(),
	)).Methods("GET")

	r.Handle("/posts/{id}/comments", Handle(env,
		parsePostID(),
		CreateComment(),
	)).Methods("POST")

	r.Handle("/healthz", Handle(env,
		Health(),
	)).Methods("GET")

	r.NotFoundHandler = Handle(env, routeNotFound())
	r.MethodNotAllowedHandler = Handle(env, methodNotAllowed())
	return r
}

// Health reports whether the store can be read.
func Health() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		if _, err := rc.env.Store.Load(r.Context()); err != nil {
			return handleStoreError(err)
		}
		return writeJSON(w, http.StatusOK, &OkResponse{Status: OK})
	}
}

func routeNotFound() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		return &HTTPError{
			Level:     1,
			Status:    http.StatusNotFound,
			Error:     http.StatusText(http.StatusNotFound),
			ErrorCode: ErrNotFound,
		}
	}
}

func methodNotAllowed() Handler {
	return func(rc *RouterContext, w http.ResponseWriter, r *http.Request) *HTTPError {
		return &HTTPError{
			Level:     1,
			Status:    http.StatusMethodNotAllowed,
			Error:     http.StatusText(http.StatusMethodNotAllowed),
			ErrorCode: ErrMethodNotAllowed,
		}
	}
}
