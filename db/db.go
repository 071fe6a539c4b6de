package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/envelope-app/feed-backend/config"
	"github.com/envelope-app/feed-backend/log"
)

// Store persists the Document as a whole. Every call reads fresh state from
// the backend; nothing is cached between calls.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
	// Update loads the document, applies fn and saves the result. Updates are
	// isolated from each other. Nothing is written when fn returns an error.
	Update(ctx context.Context, fn func(doc *Document) error) error
	Close() error
}

// Init opens the backend selected in cfg.
func Init(cfg config.Config) (Store, error) {
	log.Info.Printf("Opening %s store...\n", cfg.Backend)

	switch cfg.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.DataPath), nil

	case config.BackendRedis:
		s, err := OpenRedis(cfg.RedisURL, cfg.RedisKey)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendPostgres:
		s, err := OpenPostgres(cfg.PostgresURL, cfg.DocumentName)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

func decodeDocument(b []byte) (*Document, error) {
	doc := NewDocument()
	doc.Version = 0
	if err := json.Unmarshal(b, doc); err != nil {
		return nil, &IOError{Op: "decode", Err: err}
	}

	if doc.Version == 0 {
		doc.Version = DocumentVersion
	}
	if doc.Version > DocumentVersion {
		return nil, &IOError{
			Op:  "decode",
			Err: fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version),
		}
	}
	if doc.Posts == nil {
		doc.Posts = []Post{}
	}
	if doc.Comments == nil {
		doc.Comments = []Comment{}
	}
	return doc, nil
}

func encodeDocument(doc *Document) ([]byte, error) {
	out := *doc
	out.Version = DocumentVersion
	if out.Posts == nil {
		out.Posts = []Post{}
	}
	if out.Comments == nil {
		out.Comments = []Comment{}
	}

	b, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, &IOError{Op: "encode", Err: err}
	}
	return b, nil
}
