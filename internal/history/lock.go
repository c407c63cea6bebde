package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockName = "pipeline"

type sqliteLocker struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLiteLocker returns a Locker stored in the history database.
// A lock older than ttl is considered abandoned and can be taken over.
func NewSQLiteLocker(db *sql.DB, ttl time.Duration) Locker {
	return &sqliteLocker{db: db, ttl: ttl, now: time.Now}
}

func (l *sqliteLocker) Acquire(ctx context.Context, owner string) error {
	now := l.now()
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO locks (name, owner, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET owner = excluded.owner, expires_at = excluded.expires_at
		 WHERE locks.expires_at < ?`,
		lockName, owner, now.Add(l.ttl).UnixMilli(), now.UnixMilli())
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if n == 0 {
		return ErrLocked
	}
	return nil
}

func (l *sqliteLocker) Release(ctx context.Context, owner string) error {
	if _, err := l.db.ExecContext(ctx, `DELETE FROM locks WHERE name = ? AND owner = ?`, lockName, owner); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

// releaseScript deletes the key only while it still belongs to the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisLocker returns a Locker backed by a Redis key with an expiry.
func NewRedisLocker(redisURL string, ttl time.Duration) (Locker, *redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	return &redisLocker{client: client, key: "classnotes:lock:" + lockName, ttl: ttl}, client, nil
}

func (l *redisLocker) Acquire(ctx context.Context, owner string) error {
	ok, err := l.client.SetNX(ctx, l.key, owner, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire redis lock: %w", err)
	}
	if !ok {
		return ErrLocked
	}
	return nil
}

func (l *redisLocker) Release(ctx context.Context, owner string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, owner).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("release redis lock: %w", err)
	}
	return nil
}
