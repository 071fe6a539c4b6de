package db

import (
	"context"

	"github.com/go-redis/redis"

	"github.com/envelope-app/feed-backend/log"
)

// maxTxAttempts bounds how often Update re-runs after losing a WATCH race.
const maxTxAttempts = 8

// RedisStore keeps the document as one JSON string under a single key.
// Update runs inside WATCH/MULTI so concurrent writers never overwrite each
// other silently.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// OpenRedis connects to url and checks the connection before returning.
func OpenRedis(url, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, &IOError{Op: "connect", Err: err}
	}

	log.Info.Printf("Connected to redis, document key %q\n", key)
	return NewRedisStore(client, key), nil
}

// The client passed to each call carries the request context.

func (s *RedisStore) Load(ctx context.Context) (*Document, error) {
	b, err := s.client.WithContext(ctx).Get(s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return NewDocument(), nil
		}
		return nil, &IOError{Op: "read", Err: err}
	}
	return decodeDocument(b)
}

func (s *RedisStore) Save(ctx context.Context, doc *Document) error {
	b, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	if err := s.client.WithContext(ctx).Set(s.key, b, 0).Err(); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, fn func(doc *Document) error) error {
	client := s.client.WithContext(ctx)

	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := client.Watch(func(tx *redis.Tx) error {
			doc := NewDocument()

			b, err := tx.Get(s.key).Bytes()
			switch {
			case err == redis.Nil:
			case err != nil:
				return &IOError{Op: "read", Err: err}
			default:
				if doc, err = decodeDocument(b); err != nil {
					return err
				}
			}

			if err := fn(doc); err != nil {
				return err
			}

			out, err := encodeDocument(doc)
			if err != nil {
				return err
			}
			_, err = tx.Pipelined(func(pipe redis.Pipeliner) error {
				pipe.Set(s.key, out, 0)
				return nil
			})
			return err
		}, s.key)

		if err != redis.TxFailedErr {
			return err
		}
		log.Debug.Printf("redis transaction on %q lost a race, attempt %d\n", s.key, attempt)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return ErrConflict
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
