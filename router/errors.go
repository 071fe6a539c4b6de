package router

var (

	// ErrParsing is sent when the request body is not valid JSON
	ErrParsing = "PARSING_ERROR"
	// ErrEmptyContent is sent when a post or comment has nothing in it
	ErrEmptyContent = "EMPTY_CONTENT"
	// ErrTextTooLong is sent when post text is over maxTextLength
	ErrTextTooLong = "TEXT_TOO_LONG"
	// ErrInvalidMedia is sent for a media type we don't render
	ErrInvalidMedia = "INVALID_MEDIA"
	// ErrNotFound is sent when the referenced post does not exist
	ErrNotFound = "NOT_FOUND"
	// ErrMethodNotAllowed is sent when the path exists but not for this method
	ErrMethodNotAllowed = "METHOD_NOT_ALLOWED"
	// ErrInternal is send when a internal server error occurs.
	ErrInternal = "INTERNAL_ERROR"

	// ErrTimeout is sent when a request's context deadline is exceeded or if it is canceled
	ErrTimeout = "TIMEOUT"
)

// ValidationError is returned by request normalization.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
