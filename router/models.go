package router

import (
	"strings"
	"unicode/utf8"

	"github.com/envelope-app/feed-backend/db"
)

var OK = "OK"

const (
	defaultAuthor = "Anonymous"
	maxTextLength = 2000
)

var mediaTypes = map[string]bool{
	db.MediaVideo:   true,
	db.MediaImage:   true,
	db.MediaYoutube: true,
	db.MediaNone:    true,
}

type OkResponse struct {
	Status string `json:"status"`
}

// CreatePostRequest is the body of POST /posts. Content is the older name of
// Text and is only read when Text is empty.
type CreatePostRequest struct {
	Author  string       `json:"author"`
	Text    string       `json:"text"`
	Content string       `json:"content"`
	Media   MediaRequest `json:"media"`
}

type MediaRequest struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Normalize trims and defaults the request and returns the post it describes.
// ID, CreatedAt and the counters are left for the caller.
func (req *CreatePostRequest) Normalize() (db.Post, error) {
	text := req.Text
	if text == "" {
		text = req.Content
	}
	text = strings.TrimSpace(text)

	media := db.Media{
		Type: strings.TrimSpace(req.Media.Type),
		URL:  strings.TrimSpace(req.Media.URL),
	}
	if media.Type == "" {
		media.Type = db.MediaNone
	}

	if text == "" && media.URL == "" {
		return db.Post{}, &ValidationError{Code: ErrEmptyContent, Message: "Post must have text or media"}
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return db.Post{}, &ValidationError{Code: ErrTextTooLong, Message: "Text too long"}
	}
	if !mediaTypes[media.Type] {
		return db.Post{}, &ValidationError{Code: ErrInvalidMedia, Message: "Unsupported media type"}
	}

	return db.Post{
		Author: normalizeAuthor(req.Author),
		Content: db.PostContent{
			Text:  text,
			Media: media,
		},
	}, nil
}

// CreateCommentRequest is the body of POST /posts/{id}/comments.
type CreateCommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

func (req *CreateCommentRequest) Normalize() (db.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return db.Comment{}, &ValidationError{Code: ErrEmptyContent, Message: "Comment content required"}
	}

	return db.Comment{
		Author:  normalizeAuthor(req.Author),
		Content: content,
	}, nil
}

func normalizeAuthor(author string) string {
	if author = strings.TrimSpace(author); author == "" {
		return defaultAuthor
	}
	return author
}
