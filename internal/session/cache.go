package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
	"github.com/nutrileaf/nutrileaf-client/internal/backend"
	"github.com/nutrileaf/nutrileaf-client/internal/broadcast"
	"github.com/nutrileaf/nutrileaf-client/internal/store"
	"github.com/nutrileaf/nutrileaf-client/pkg/logger"
)

// ErrNoSession is returned by operations that need a signed-in user when
// the cache holds none.
var ErrNoSession = errors.New("no cached session")

// RoleVerifier is the slice of the backend client the cache reconciles
// against.
type RoleVerifier interface {
	VerifyRole(ctx context.Context, token string) (*backend.VerifiedUser, error)
}

// Session pairs the bearer token with the cached profile. Both present
// means authenticated; either missing means signed out.
type Session struct {
	Token   string
	Profile model.SessionProfile
}

// Cache maintains the locally cached identity of the signed-in user for
// instant rendering. The backend stays authoritative for role, status and
// image; reconciliation merges those over the cache opportunistically and
// never blocks rendering.
type Cache struct {
	mu          sync.Mutex
	storage     store.Storage
	broadcaster *broadcast.Broadcaster
	verifier    RoleVerifier

	// strictRole fails closed: a cached admin role is demoted to a plain
	// user role when verification fails, instead of being trusted.
	strictRole bool
}

func NewCache(storage store.Storage, broadcaster *broadcast.Broadcaster, verifier RoleVerifier, strictRole bool) *Cache {
	return &Cache{
		storage:     storage,
		broadcaster: broadcaster,
		verifier:    verifier,
		strictRole:  strictRole,
	}
}

// Load reads the cached session. It returns nil when the token or
// profile is absent or malformed, or when the token has visibly expired.
// Malformed state is cleaned out of storage but never raised.
func (c *Cache) Load(ctx context.Context) *Session {
	token, err := c.storage.Get(ctx, store.KeyToken)
	if err != nil || token == "" {
		return nil
	}

	raw, err := c.storage.Get(ctx, store.KeyProfile)
	if err != nil {
		return nil
	}

	var profile model.SessionProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		logger.Warn("Cached profile is malformed, treating as signed out", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	if tokenExpired(token) {
		logger.Info("Cached token expired", map[string]interface{}{
			"user_id": profile.ID,
		})
		return nil
	}

	return &Session{Token: token, Profile: profile}
}

// SaveLogin caches a fresh token and profile after login or registration
// and announces the new identity to every mounted surface.
func (c *Cache) SaveLogin(ctx context.Context, token string, profile model.SessionProfile) {
	c.mu.Lock()
	if err := c.storage.Set(ctx, store.KeyToken, token); err != nil {
		logger.Warn("Token write failed, session is not durable", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.persistProfile(ctx, profile)
	c.mu.Unlock()

	c.notify(ctx, &profile)
}

// Reconcile re-queries the backend's authoritative role/status/image and
// merges it over the cache. On any failure the cached value is retained
// and returned (availability over strict freshness), except in strict
// mode where a cached admin role is demoted. A profile-changed
// notification fires only when the merge actually changed something.
func (c *Cache) Reconcile(ctx context.Context) (*model.SessionProfile, error) {
	sess := c.Load(ctx)
	if sess == nil {
		return nil, ErrNoSession
	}

	verified, err := c.verifier.VerifyRole(ctx, sess.Token)
	if err != nil {
		logger.Warn("Role verification failed, keeping cached profile", map[string]interface{}{
			"user_id": sess.Profile.ID,
			"role":    sess.Profile.Role,
			"error":   err.Error(),
		})

		if c.strictRole && sess.Profile.Role == model.RoleAdmin {
			demoted := sess.Profile
			demoted.Role = model.RoleUser

			c.mu.Lock()
			c.persistProfile(ctx, demoted)
			c.mu.Unlock()
			c.notify(ctx, &demoted)

			logger.Warn("Strict mode: cached admin role demoted after failed verification", map[string]interface{}{
				"user_id": demoted.ID,
			})
			return &demoted, nil
		}

		profile := sess.Profile
		return &profile, nil
	}

	merged := sess.Profile
	role := model.UserRole(verified.Role)
	merged.Merge(model.ProfileUpdate{
		Role:   &role,
		Status: &verified.Status,
		Image:  &verified.Image,
	})

	if merged == sess.Profile {
		return &merged, nil
	}

	c.mu.Lock()
	c.persistProfile(ctx, merged)
	c.mu.Unlock()
	c.notify(ctx, &merged)

	logger.Info("Profile reconciled with backend", map[string]interface{}{
		"user_id": merged.ID,
		"role":    merged.Role,
	})
	return &merged, nil
}

// ApplyUpdate merges a partial profile change (after a profile edit or
// image upload), persists it and announces it so surfaces like the header
// greeting re-render without a reload.
func (c *Cache) ApplyUpdate(ctx context.Context, update model.ProfileUpdate) (*model.SessionProfile, error) {
	sess := c.Load(ctx)
	if sess == nil {
		return nil, ErrNoSession
	}

	merged := sess.Profile
	merged.Merge(update)

	c.mu.Lock()
	c.persistProfile(ctx, merged)
	c.mu.Unlock()
	c.notify(ctx, &merged)

	return &merged, nil
}

// Logout clears the cached token and profile and announces the sign-out
// with an empty payload.
func (c *Cache) Logout(ctx context.Context) {
	c.mu.Lock()
	if err := c.storage.Delete(ctx, store.KeyToken); err != nil {
		logger.Warn("Failed to clear cached token", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := c.storage.Delete(ctx, store.KeyProfile); err != nil {
		logger.Warn("Failed to clear cached profile", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.mu.Unlock()

	c.notify(ctx, nil)
}

func (c *Cache) persistProfile(ctx context.Context, profile model.SessionProfile) {
	data, err := json.Marshal(profile)
	if err != nil {
		logger.Error("Failed to serialize profile", err, nil)
		return
	}
	if err := c.storage.Set(ctx, store.KeyProfile, string(data)); err != nil {
		logger.Warn("Profile write failed, change is not durable", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (c *Cache) notify(ctx context.Context, profile *model.SessionProfile) {
	c.broadcaster.Publish(ctx, model.ChangeNotification{
		Kind:    model.ProfileChanged,
		Profile: profile,
	})
}
