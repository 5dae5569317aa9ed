package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
	"github.com/nutrileaf/nutrileaf-client/internal/backend"
	"github.com/nutrileaf/nutrileaf-client/internal/broadcast"
	"github.com/nutrileaf/nutrileaf-client/internal/store"
)

type fakeVerifier struct {
	user *backend.VerifiedUser
	err  error
}

func (v *fakeVerifier) VerifyRole(context.Context, string) (*backend.VerifiedUser, error) {
	return v.user, v.err
}

func setupCacheTest(t *testing.T, verifier RoleVerifier, strictRole bool) (*Cache, store.Storage, *broadcast.Broadcaster) {
	t.Helper()

	storage := store.NewMemoryStorage()
	broadcaster := broadcast.New(nil)
	return NewCache(storage, broadcaster, verifier, strictRole), storage, broadcaster
}

func testProfile() model.SessionProfile {
	return model.SessionProfile{
		ID:     7,
		Name:   "Asha",
		Email:  "asha@example.com",
		Role:   model.RoleUser,
		Status: "active",
	}
}

func TestCache_Load_NilWhenEmpty(t *testing.T) {
	cache, _, _ := setupCacheTest(t, &fakeVerifier{}, false)

	assert.Nil(t, cache.Load(context.Background()))
}

func TestCache_SaveLogin_ThenLoad(t *testing.T) {
	cache, _, broadcaster := setupCacheTest(t, &fakeVerifier{}, false)
	ctx := context.Background()

	var received []*model.SessionProfile
	broadcaster.Subscribe(model.ProfileChanged, func(n model.ChangeNotification) {
		received = append(received, n.Profile)
	})

	cache.SaveLogin(ctx, "opaque-token", testProfile())

	sess := cache.Load(ctx)
	require.NotNil(t, sess)
	assert.Equal(t, "opaque-token", sess.Token)
	assert.Equal(t, "Asha", sess.Profile.Name)

	require.Len(t, received, 1)
	require.NotNil(t, received[0])
	assert.Equal(t, uint(7), received[0].ID)
}

func TestCache_Load_ToleratesMalformedProfile(t *testing.T) {
	cache, storage, _ := setupCacheTest(t, &fakeVerifier{}, false)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, store.KeyToken, "opaque-token"))
	require.NoError(t, storage.Set(ctx, store.KeyProfile, "{broken"))

	assert.Nil(t, cache.Load(ctx))
}

func TestCache_Load_RejectsExpiredToken(t *testing.T) {
	cache, _, _ := setupCacheTest(t, &fakeVerifier{}, false)
	ctx := context.Background()

	expired := signedToken(t, time.Now().Add(-time.Hour))
	cache.SaveLogin(ctx, expired, testProfile())

	assert.Nil(t, cache.Load(ctx))
}

func TestCache_Load_AcceptsUnexpiredToken(t *testing.T) {
	cache, _, _ := setupCacheTest(t, &fakeVerifier{}, false)
	ctx := context.Background()

	valid := signedToken(t, time.Now().Add(time.Hour))
	cache.SaveLogin(ctx, valid, testProfile())

	assert.NotNil(t, cache.Load(ctx))
}

func TestCache_Reconcile_NoSession(t *testing.T) {
	cache, _, _ := setupCacheTest(t, &fakeVerifier{}, false)

	_, err := cache.Reconcile(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCache_Reconcile_FailureKeepsCachedProfile(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("backend unreachable")}
	cache, _, broadcaster := setupCacheTest(t, verifier, false)
	ctx := context.Background()

	cache.SaveLogin(ctx, "opaque-token", testProfile())

	var notifications int
	broadcaster.Subscribe(model.ProfileChanged, func(model.ChangeNotification) {
		notifications++
	})

	profile, err := cache.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, profile.Role)
	assert.Equal(t, "Asha", profile.Name)

	// Nothing changed, so nothing fires.
	assert.Equal(t, 0, notifications)
}

func TestCache_Reconcile_RoleUpgradeNotifiesExactlyOnce(t *testing.T) {
	verifier := &fakeVerifier{user: &backend.VerifiedUser{Role: "admin", Status: "active"}}
	cache, _, broadcaster := setupCacheTest(t, verifier, false)
	ctx := context.Background()

	cache.SaveLogin(ctx, "opaque-token", testProfile())

	var notifications int
	broadcaster.Subscribe(model.ProfileChanged, func(n model.ChangeNotification) {
		notifications++
		require.NotNil(t, n.Profile)
		assert.Equal(t, model.RoleAdmin, n.Profile.Role)
	})

	profile, err := cache.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, profile.Role)
	assert.Equal(t, 1, notifications)

	// Reconciling again finds nothing new and stays silent.
	_, err = cache.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, notifications)

	// The stronger role survives a reload.
	sess := cache.Load(ctx)
	require.NotNil(t, sess)
	assert.Equal(t, model.RoleAdmin, sess.Profile.Role)
}

func TestCache_Reconcile_StrictModeDemotesAdminOnFailure(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("backend unreachable")}
	cache, _, broadcaster := setupCacheTest(t, verifier, true)
	ctx := context.Background()

	admin := testProfile()
	admin.Role = model.RoleAdmin
	cache.SaveLogin(ctx, "opaque-token", admin)

	var notifications int
	broadcaster.Subscribe(model.ProfileChanged, func(model.ChangeNotification) {
		notifications++
	})

	profile, err := cache.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, profile.Role)
	assert.Equal(t, 1, notifications)

	sess := cache.Load(ctx)
	require.NotNil(t, sess)
	assert.Equal(t, model.RoleUser, sess.Profile.Role)
}

func TestCache_Reconcile_StrictModeLeavesPlainUserAlone(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("backend unreachable")}
	cache, _, _ := setupCacheTest(t, verifier, true)
	ctx := context.Background()

	cache.SaveLogin(ctx, "opaque-token", testProfile())

	profile, err := cache.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, profile.Role)
}

func TestCache_ApplyUpdate(t *testing.T) {
	cache, _, broadcaster := setupCacheTest(t, &fakeVerifier{}, false)
	ctx := context.Background()

	cache.SaveLogin(ctx, "opaque-token", testProfile())

	var lastName string
	broadcaster.Subscribe(model.ProfileChanged, func(n model.ChangeNotification) {
		if n.Profile != nil {
			lastName = n.Profile.Name
		}
	})

	name := "Asha Devi"
	phone := "010-3333-4444"
	profile, err := cache.ApplyUpdate(ctx, model.ProfileUpdate{Name: &name, Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "Asha Devi", profile.Name)
	assert.Equal(t, "010-3333-4444", profile.Phone)
	assert.Equal(t, "Asha Devi", lastName)

	sess := cache.Load(ctx)
	require.NotNil(t, sess)
	assert.Equal(t, "Asha Devi", sess.Profile.Name)
}

func TestCache_Logout_ClearsAndNotifiesEmpty(t *testing.T) {
	cache, _, broadcaster := setupCacheTest(t, &fakeVerifier{}, false)
	ctx := context.Background()

	cache.SaveLogin(ctx, "opaque-token", testProfile())

	var signedOut bool
	broadcaster.Subscribe(model.ProfileChanged, func(n model.ChangeNotification) {
		signedOut = n.Profile == nil
	})

	cache.Logout(ctx)

	assert.Nil(t, cache.Load(ctx))
	assert.True(t, signedOut)
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, tokenExpired(signedToken(t, time.Now().Add(-time.Minute))))
	assert.False(t, tokenExpired(signedToken(t, time.Now().Add(time.Minute))))

	// Opaque or claim-less tokens are not treated as expired.
	assert.False(t, tokenExpired("not-a-jwt"))

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7"})
	signed, err := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.False(t, tokenExpired(signed))
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}
