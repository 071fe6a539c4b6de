package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/envelope-app/feed-backend/log"
)

const (
	createDocumentsTable = "CREATE TABLE documents(name VARCHAR PRIMARY KEY, body JSONB NOT NULL)"
	selectDocument       = "SELECT body FROM documents WHERE name = $1"
	selectDocumentLocked = "SELECT body FROM documents WHERE name = $1 FOR UPDATE"
	insertDocument       = "INSERT INTO documents(name, body) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING"
	upsertDocument       = "INSERT INTO documents(name, body) VALUES ($1, $2) ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body"
)

// PostgresStore keeps the document as one JSONB row. Update holds a row lock
// for the duration of the mutation.
type PostgresStore struct {
	Db   *sql.DB
	name string
}

func NewPostgresStore(db *sql.DB, name string) *PostgresStore {
	return &PostgresStore{Db: db, name: name}
}

// OpenPostgres connects to addr and creates the documents table if needed.
func OpenPostgres(addr, name string) (*PostgresStore, error) {
	if addr == "" {
		return nil, errors.New("$POSTGRES_URL not set")
	}

	db, err := sql.Open("postgres", addr)
	if err != nil {
		return nil, err
	}

	s := NewPostgresStore(db, name)
	if err := s.CreateTables(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) CreateTables(ctx context.Context) error {
	log.Info.Printf("Creating Tables...\n")
	_, err := s.Db.ExecContext(ctx, createDocumentsTable)
	if err != nil {
		perr, ok := err.(*pq.Error)
		if !ok || perr.Code.Name() != "duplicate_table" {
			return &IOError{Op: "create table", Err: err}
		}
		log.Warn.Printf("%s: %s", perr.Code.Name(), perr.Error())
	}
	log.Info.Printf("Tables Created...")
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (*Document, error) {
	var body []byte
	err := s.Db.QueryRowContext(ctx, selectDocument, s.name).Scan(&body)
	if err != nil {
		if err == sql.ErrNoRows {
			return NewDocument(), nil
		}
		return nil, &IOError{Op: "read", Err: err}
	}
	return decodeDocument(body)
}

func (s *PostgresStore) Save(ctx context.Context, doc *Document) error {
	b, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	if _, err := s.Db.ExecContext(ctx, upsertDocument, s.name, string(b)); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, fn func(doc *Document) error) error {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return &IOError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	empty, err := encodeDocument(NewDocument())
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insertDocument, s.name, string(empty)); err != nil {
		return &IOError{Op: "write", Err: err}
	}

	var body []byte
	if err := tx.QueryRowContext(ctx, selectDocumentLocked, s.name).Scan(&body); err != nil {
		return &IOError{Op: "read", Err: err}
	}
	doc, err := decodeDocument(body)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	b, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, upsertDocument, s.name, string(b)); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &IOError{Op: "commit", Err: err}
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.Db.Close()
}
