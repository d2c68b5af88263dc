package redis

// Package redis provides the Redis-backed session store.

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
	"github.com/noticenest/noticenest/internal/ports"
)

// SessionStore persists sessions in Redis. Tokens are opaque to every
// other component: "<id>.<signature>", where the signature is an HMAC of
// the id under the configured signing secret. A token that fails
// signature verification is reported absent without touching Redis.
type SessionStore struct {
	client redis.UniversalClient
	secret []byte
	ttl    time.Duration
	prefix string
	now    func() time.Time
}

// Config groups the session store settings.
type Config struct {
	SigningSecret string
	TTL           time.Duration // default 12h when zero
	Prefix        string        // default "session:"
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client redis.UniversalClient, cfg Config) (*SessionStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if cfg.SigningSecret == "" {
		return nil, errors.New("session signing secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "session:"
	}
	return &SessionStore{
		client: client,
		secret: []byte(cfg.SigningSecret),
		ttl:    ttl,
		prefix: prefix,
		now:    time.Now,
	}, nil
}

func (s *SessionStore) Create(ctx context.Context, identity domainauth.Identity) (domainauth.Session, error) {
	id := uuid.NewString()
	now := s.now()
	sess := domainauth.Session{
		Token:     id + "." + s.sign(id),
		Identity:  identity,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.save(ctx, id, sess, s.ttl); err != nil {
		return domainauth.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (domainauth.Session, error) {
	id, ok := s.verify(token)
	if !ok {
		return domainauth.Session{}, ports.ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ports.ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	// Double-check expiration (Redis TTL should handle this, but the
	// stored ExpiresAt is authoritative).
	if sess.Expired(s.now()) {
		if deleteErr := s.Delete(ctx, token); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ports.ErrNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	id, ok := s.verify(token)
	if !ok {
		return nil // Nothing addressable to delete
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

func (s *SessionStore) Renew(ctx context.Context, token string) (domainauth.Session, error) {
	sess, err := s.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			// Absent and expired are the same from Get; either way there
			// is nothing to extend.
			return domainauth.Session{}, ports.ErrSessionExpired
		}
		return domainauth.Session{}, err
	}

	sess.ExpiresAt = s.now().Add(s.ttl)
	id, _ := s.verify(token)
	if saveErr := s.save(ctx, id, sess, s.ttl); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("renew session: %w", saveErr)
	}
	return sess, nil
}

func (s *SessionStore) save(ctx context.Context, id string, sess domainauth.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.prefix+id, data, ttl).Err()
}

// sign returns the URL-safe HMAC-SHA256 signature for a session id.
func (s *SessionStore) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// verify splits and checks a token, returning the session id. Malformed
// or badly signed tokens report false; they never reach Redis.
func (s *SessionStore) verify(token string) (string, bool) {
	id, sig, found := strings.Cut(token, ".")
	if !found || id == "" || sig == "" {
		return "", false
	}
	expected := s.sign(id)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return id, true
}

var _ ports.SessionStore = (*SessionStore)(nil)
