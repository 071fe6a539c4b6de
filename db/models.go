package db

import "sort"

// DocumentVersion is the layout version written by Save.
const DocumentVersion = 1

const (
	MediaVideo   = "video"
	MediaImage   = "image"
	MediaYoutube = "youtube"
	MediaNone    = "none"
)

// Document is the whole persisted state.
type Document struct {
	Version  int       `json:"version"`
	Posts    []Post    `json:"posts"`
	Comments []Comment `json:"comments"`
}

type Post struct {
	ID           string      `json:"id"`
	Author       string      `json:"author"`
	Content      PostContent `json:"content"`
	LikeCount    int         `json:"likeCount"`
	CommentCount int         `json:"commentCount"`
	CreatedAt    int64       `json:"createdAt"`
}

type PostContent struct {
	Text  string `json:"text"`
	Media Media  `json:"media"`
}

type Media struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}

// NewDocument returns an empty document at the current version.
func NewDocument() *Document {
	return &Document{
		Version:  DocumentVersion,
		Posts:    []Post{},
		Comments: []Comment{},
	}
}

// FindPost returns a pointer into d.Posts, or nil.
func (d *Document) FindPost(id string) *Post {
	for i := range d.Posts {
		if d.Posts[i].ID == id {
			return &d.Posts[i]
		}
	}
	return nil
}

// PostsNewestFirst returns a copy of the posts ordered by CreatedAt descending.
// Posts with equal timestamps keep their stored order.
func (d *Document) PostsNewestFirst() []Post {
	posts := make([]Post, len(d.Posts))
	copy(posts, d.Posts)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	return posts
}

// CommentsFor returns the comments of a post, oldest first.
func (d *Document) CommentsFor(postID string) []Comment {
	comments := []Comment{}
	for _, c := range d.Comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt < comments[j].CreatedAt
	})
	return comments
}
