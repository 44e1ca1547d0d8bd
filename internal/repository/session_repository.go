package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mpfops/roster/internal/utils"
)

// Session is the server-side record behind a login cookie. The browser only
// holds a signed wrapper around the session ID; user identity and role live
// here so role changes and logouts take effect without re-issuing cookies.
type Session struct {
	UserID   uint64
	Username string
	Role     string
}

// ErrSessionNotFound is returned when a session ID has no backing record,
// either because it expired or because the user logged out.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepo stores sessions and their pending flash notices in Redis.
// Sessions are hashes under sess:<id> with a TTL; flashes are lists under
// sess:<id>:flash that are popped in full on the next page render.
type SessionRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepo(rdb *redis.Client, ttl time.Duration) *SessionRepo {
	return &SessionRepo{rdb: rdb, ttl: ttl}
}

// TTL exposes the configured session lifetime so the cookie expiry can match.
func (r *SessionRepo) TTL() time.Duration { return r.ttl }

func sessKey(sid string) string  { return "sess:" + sid }
func flashKey(sid string) string { return "sess:" + sid + ":flash" }

// Create stores a new session and returns its generated ID.
func (r *SessionRepo) Create(ctx context.Context, s Session) (string, error) {
	sid, err := utils.NewSessionID()
	if err != nil {
		return "", err
	}
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, sessKey(sid), map[string]interface{}{
		"uid":      strconv.FormatUint(s.UserID, 10),
		"username": s.Username,
		"role":     s.Role,
	})
	pipe.Expire(ctx, sessKey(sid), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return sid, nil
}

// Get resolves a session ID to its record. Each hit refreshes the TTL so an
// active user is not logged out mid-day.
func (r *SessionRepo) Get(ctx context.Context, sid string) (Session, error) {
	vals, err := r.rdb.HGetAll(ctx, sessKey(sid)).Result()
	if err != nil {
		return Session{}, err
	}
	if len(vals) == 0 {
		return Session{}, ErrSessionNotFound
	}
	uid, err := strconv.ParseUint(vals["uid"], 10, 64)
	if err != nil {
		return Session{}, ErrSessionNotFound
	}
	_ = r.rdb.Expire(ctx, sessKey(sid), r.ttl).Err()
	return Session{UserID: uid, Username: vals["username"], Role: vals["role"]}, nil
}

// Delete removes a session and any pending flashes (logout).
func (r *SessionRepo) Delete(ctx context.Context, sid string) error {
	return r.rdb.Del(ctx, sessKey(sid), flashKey(sid)).Err()
}

// AddFlash queues a one-shot notice to show the user on their next page.
func (r *SessionRepo) AddFlash(ctx context.Context, sid, msg string) error {
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, flashKey(sid), msg)
	pipe.Expire(ctx, flashKey(sid), r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// PopFlashes returns and clears all pending notices for a session.
func (r *SessionRepo) PopFlashes(ctx context.Context, sid string) ([]string, error) {
	pipe := r.rdb.TxPipeline()
	lrange := pipe.LRange(ctx, flashKey(sid), 0, -1)
	pipe.Del(ctx, flashKey(sid))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return lrange.Val(), nil
}
