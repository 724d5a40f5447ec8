package backend

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func storeSession(t *testing.T, s *memStorage, sess *models.Session) {
	t.Helper()
	raw, err := json.Marshal(sess)
	require.NoError(t, err)
	s.data[StorageKey] = raw
}

func storedSession(t *testing.T, s *memStorage) *models.Session {
	t.Helper()
	raw := s.data[StorageKey]
	require.NotNil(t, raw)
	var sess models.Session
	require.NoError(t, json.Unmarshal(raw, &sess))
	return &sess
}

func TestSignInWithPassword_StoresSessionAndEmits(t *testing.T) {
	h := newHarness(t)
	h.auth.signInResp = apiSession("a1", "r1", time.Now().Add(time.Hour))

	s, err := h.client.SignInWithPassword(context.Background(), "a@b.co", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "a1", s.AccessToken)
	assert.Equal(t, &models.User{ID: "u1", Email: "a@b.co"}, s.User)
	assert.Equal(t, "a@b.co", h.auth.lastSignIn.Email)
	assert.Equal(t, "secret1", h.auth.lastSignIn.Password)

	assert.Equal(t, "r1", storedSession(t, h.storage).RefreshToken)
	assert.Equal(t, []AuthEvent{EventSignedIn}, h.events.kinds())
}

func TestSignInWithPassword_ServerMessageSurvives(t *testing.T) {
	h := newHarness(t)
	h.auth.signInErr = status.Error(codes.Unauthenticated, "Invalid login credentials")

	s, err := h.client.SignInWithPassword(context.Background(), "a@b.co", "wrong")
	require.Nil(t, s)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, h.storage.has(StorageKey))
	assert.Empty(t, h.events.kinds())
}

func TestSignUp_StartsSession(t *testing.T) {
	h := newHarness(t)
	h.auth.signUpResp = apiSession("a1", "r1", time.Now().Add(time.Hour))

	s, err := h.client.SignUp(context.Background(), "new@b.co", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "a1", s.AccessToken)
	assert.Equal(t, "new@b.co", h.auth.lastSignUp.Email)
	assert.Equal(t, []AuthEvent{EventSignedIn}, h.events.kinds())
}

func TestSignUp_AlreadyRegistered(t *testing.T) {
	h := newHarness(t)
	h.auth.signUpErr = status.Error(codes.AlreadyExists, "User already registered")

	_, err := h.client.SignUp(context.Background(), "a@b.co", "secret1")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "User already registered", err.Error())
}

func TestGetSession_Empty(t *testing.T) {
	h := newHarness(t)

	s, err := h.client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestGetSession_RestoresValidSessionWithoutRefresh(t *testing.T) {
	h := newHarness(t)
	storeSession(t, h.storage, &models.Session{
		AccessToken: "a1", RefreshToken: "r1", ExpiresAt: time.Now().Add(time.Hour),
		User: &models.User{ID: "u1", Email: "a@b.co"},
	})

	s, err := h.client.GetSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "a1", s.AccessToken)
	assert.Equal(t, 0, h.auth.refreshCalls)

	// Restored token is attached to later calls.
	_, err = h.client.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, h.notes.seenTokens)
}

func TestGetSession_RefreshesExpiredSession(t *testing.T) {
	h := newHarness(t)
	storeSession(t, h.storage, &models.Session{
		AccessToken: "old", RefreshToken: "r1", ExpiresAt: time.Now().Add(-time.Minute),
		User: &models.User{ID: "u1"},
	})
	h.auth.refreshResp = apiSession("a2", "r2", time.Now().Add(time.Hour))

	s, err := h.client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a2", s.AccessToken)
	assert.Equal(t, "r1", h.auth.lastRefreshToken)
	assert.Equal(t, "r2", storedSession(t, h.storage).RefreshToken)
	assert.Equal(t, []AuthEvent{EventTokenRefreshed}, h.events.kinds())
}

func TestGetSession_RejectedRefreshDropsSession(t *testing.T) {
	h := newHarness(t)
	storeSession(t, h.storage, &models.Session{
		AccessToken: "old", RefreshToken: "r1", ExpiresAt: time.Now().Add(-time.Minute),
	})
	h.auth.refreshErr = status.Error(codes.Unauthenticated, "Invalid Refresh Token: Refresh Token Not Found")

	s, err := h.client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.False(t, h.storage.has(StorageKey))
	assert.Equal(t, []AuthEvent{EventSignedOut}, h.events.kinds())
}

func TestGetSession_OfflineRefreshKeepsStoredSession(t *testing.T) {
	h := newHarness(t)
	storeSession(t, h.storage, &models.Session{
		AccessToken: "old", RefreshToken: "r1", ExpiresAt: time.Now().Add(-time.Minute),
	})
	h.auth.refreshErr = status.Error(codes.Unavailable, "connection refused")

	s, err := h.client.GetSession(context.Background())
	require.Error(t, err)
	assert.True(t, IsOffline(err))
	assert.Nil(t, s)
	assert.True(t, h.storage.has(StorageKey))

	// The unrestored session must not come back through a background refresh.
	assert.Nil(t, h.client.currentSession())
	h.auth.refreshErr = nil
	h.auth.refreshResp = apiSession("a2", "r2", time.Now().Add(time.Hour))
	h.client.autoRefreshToken(context.Background(), 30*time.Second)
	assert.Equal(t, 1, h.auth.refreshCalls)
	assert.Empty(t, h.events.kinds())
}

func TestGetSession_CorruptedStorage(t *testing.T) {
	h := newHarness(t)
	h.storage.data[StorageKey] = []byte("{not json")

	s, err := h.client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.False(t, h.storage.has(StorageKey))
}

func TestGetSession_StorageError(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("disk on fire")
	h.storage.getErr = boom

	_, err := h.client.GetSession(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestInterceptor_RefreshesOnceAndRetries(t *testing.T) {
	h := newHarness(t)
	h.auth.signInResp = apiSession("a1", "r1", time.Now().Add(time.Hour))
	h.auth.refreshResp = apiSession("a2", "r2", time.Now().Add(time.Hour))
	h.notes.validToken = "a2"

	_, err := h.client.SignInWithPassword(context.Background(), "a@b.co", "secret1")
	require.NoError(t, err)

	_, err = h.client.List(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, []string{"a1", "a2"}, h.notes.seenTokens)
	assert.Equal(t, 1, h.auth.refreshCalls)
	assert.Equal(t, "a2", storedSession(t, h.storage).AccessToken)
	assert.Equal(t, []AuthEvent{EventSignedIn, EventTokenRefreshed}, h.events.kinds())
}

func TestInterceptor_ConcurrentExpiryRefreshesOnce(t *testing.T) {
	h := newHarness(t)
	h.auth.signInResp = apiSession("a1", "r1", time.Now().Add(time.Hour))
	h.auth.refreshResp = apiSession("a2", "r2", time.Now().Add(time.Hour))
	h.notes.validToken = "a2"

	_, err := h.client.SignInWithPassword(context.Background(), "a@b.co", "secret1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.client.List(context.Background(), "u1")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, h.auth.refreshCalls)
}

func TestInterceptor_RejectedRefreshSignsOut(t *testing.T) {
	h := newHarness(t)
	h.auth.signInResp = apiSession("a1", "r1", time.Now().Add(time.Hour))
	h.auth.refreshErr = status.Error(codes.Unauthenticated, "Invalid Refresh Token: Refresh Token Expired")
	h.notes.validToken = "other"

	_, err := h.client.SignInWithPassword(context.Background(), "a@b.co", "secret1")
	require.NoError(t, err)

	_, err = h.client.List(context.Background(), "u1")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid Refresh Token: Refresh Token Expired", err.Error())
	assert.False(t, h.storage.has(StorageKey))
	assert.Equal(t, []AuthEvent{EventSignedIn, EventSignedOut}, h.events.kinds())
}

func TestSignOut_ClearsEvenWhenServerFails(t *testing.T) {
	h := newHarness(t)
	h.auth.signInResp = apiSession("a1", "r1", time.Now().Add(time.Hour))
	h.auth.signOutErr = status.Error(codes.Unavailable, "connection refused")

	_, err := h.client.SignInWithPassword(context.Background(), "a@b.co", "secret1")
	require.NoError(t, err)

	err = h.client.SignOut(context.Background())
	require.Error(t, err)
	assert.True(t, IsOffline(err))

	assert.Equal(t, "a1", h.auth.signOutToken)
	assert.False(t, h.storage.has(StorageKey))
	assert.Nil(t, h.client.currentSession())
	assert.Equal(t, []AuthEvent{EventSignedIn, EventSignedOut}, h.events.kinds())
}

func TestSignOut_WithoutSessionSkipsServer(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.client.SignOut(context.Background()))
	assert.Equal(t, 0, h.auth.signOutCalls)
	assert.Equal(t, []AuthEvent{EventSignedOut}, h.events.kinds())
}

func TestOnAuthStateChange_Unsubscribe(t *testing.T) {
	h := newHarness(t)
	h.auth.signInResp = apiSession("a1", "r1", time.Now().Add(time.Hour))

	var got []AuthEvent
	unsubscribe := h.client.OnAuthStateChange(func(c AuthChange) { got = append(got, c.Event) })

	require.NoError(t, h.client.SignOut(context.Background()))
	unsubscribe()
	_, err := h.client.SignInWithPassword(context.Background(), "a@b.co", "secret1")
	require.NoError(t, err)

	assert.Equal(t, []AuthEvent{EventSignedOut}, got)
}

func TestAutoRefreshToken(t *testing.T) {
	h := newHarness(t)
	h.auth.refreshResp = apiSession("a2", "r2", time.Now().Add(time.Hour))
	ctx := context.Background()

	// Nothing to refresh without a session.
	h.client.autoRefreshToken(ctx, 30*time.Second)
	assert.Equal(t, 0, h.auth.refreshCalls)

	h.auth.signInResp = apiSession("a1", "r1", time.Now().Add(time.Hour))
	_, err := h.client.SignInWithPassword(ctx, "a@b.co", "secret1")
	require.NoError(t, err)

	h.client.autoRefreshToken(ctx, 30*time.Second)
	assert.Equal(t, 0, h.auth.refreshCalls, "far from expiry")

	h.client.now = func() time.Time { return time.Now().Add(59 * time.Minute) }
	h.client.autoRefreshToken(ctx, 30*time.Second)
	assert.Equal(t, 1, h.auth.refreshCalls, "within three ticks of expiry")
	assert.Equal(t, "a2", h.client.currentSession().AccessToken)
}

func TestStartAutoRefresh_StopsWithContext(t *testing.T) {
	h := newHarness(t)
	h.auth.signInResp = apiSession("a1", "r1", time.Now().Add(time.Second))
	h.auth.refreshResp = apiSession("a2", "r2", time.Now().Add(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := h.client.SignInWithPassword(ctx, "a@b.co", "secret1")
	require.NoError(t, err)

	h.client.StartAutoRefresh(ctx, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		s := h.client.currentSession()
		return s != nil && s.AccessToken == "a2"
	}, 2*time.Second, 10*time.Millisecond)
}
