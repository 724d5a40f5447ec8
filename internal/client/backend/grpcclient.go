package backend

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/api"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	// expiryMargin treats a token this close to expiry as already expired.
	expiryMargin = 10 * time.Second
	// autoRefreshTickThreshold is how many ticks ahead of expiry the
	// background refresher renews the session.
	autoRefreshTickThreshold = 3
)

// AuthAPI is the auth surface the session state holder depends on.
type AuthAPI interface {
	GetSession(ctx context.Context) (*models.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	OnAuthStateChange(fn func(AuthChange)) func()
}

// NotesAPI is the notes table surface the notes cache depends on.
type NotesAPI interface {
	List(ctx context.Context, ownerID string) ([]models.Note, error)
	Insert(ctx context.Context, title, content, userID string) (models.Note, error)
	Update(ctx context.Context, id, title, content string) (models.Note, error)
	Delete(ctx context.Context, id string) error
}

type GRPCClient struct {
	conn    *grpc.ClientConn
	auth    api.AuthServiceClient
	notes   api.NotesServiceClient
	storage SessionStorage
	logger  logging.Logger
	now     func() time.Time

	mu      sync.RWMutex
	session *models.Session

	// refreshMu serializes token refreshes so that concurrent calls failing
	// with an expired token rotate the refresh token only once.
	refreshMu sync.Mutex

	listenersMu    sync.Mutex
	listeners      map[int]func(AuthChange)
	nextListenerID int
}

var (
	_ AuthAPI  = (*GRPCClient)(nil)
	_ NotesAPI = (*GRPCClient)(nil)
)

// NewGRPCClient prepares a client for addr. The connection is established
// lazily on the first call. Extra opts are appended after the defaults.
func NewGRPCClient(addr string, storage SessionStorage, logger logging.Logger, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{
		storage:   storage,
		logger:    logger,
		now:       time.Now,
		listeners: make(map[int]func(AuthChange)),
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, err
	}

	c.conn = conn
	c.auth = api.NewAuthServiceClient(conn)
	c.notes = api.NewNotesServiceClient(conn)
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	s := c.currentSession()
	if s == nil {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, s.AccessToken), method, req, reply, cc, opts...)
	if !isTokenExpired(err) || method == api.AuthService_Refresh_FullMethodName {
		return err
	}

	fresh, err := c.refreshSession(ctx, s)
	if err != nil {
		return err
	}

	return invoker(withAccessToken(ctx, fresh.AccessToken), method, req, reply, cc, opts...)
}

func (c *GRPCClient) currentSession() *models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// setSession replaces the in-memory session and persists it. A storage
// failure is logged only: the session stays usable for this run.
func (c *GRPCClient) setSession(ctx context.Context, s *models.Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	if err := c.saveSession(ctx, s); err != nil {
		c.logger.Warn(ctx, "failed to persist session", "error", err)
	}
}

func (c *GRPCClient) dropSession(ctx context.Context) {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	if err := c.storage.Remove(ctx, StorageKey); err != nil {
		c.logger.Warn(ctx, "failed to remove stored session", "error", err)
	}
}

// refreshSession exchanges the refresh token of stale for a new session.
// If another goroutine already rotated it, the newer session is returned
// without a second request. A rejected refresh token ends the session.
func (c *GRPCClient) refreshSession(ctx context.Context, stale *models.Session) (*models.Session, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	current := c.currentSession()
	if current == nil {
		return nil, errSessionMissing
	}
	if current.AccessToken != stale.AccessToken {
		return current, nil
	}

	resp, err := c.auth.Refresh(ctx, &api.RefreshRequest{RefreshToken: current.RefreshToken})
	if err != nil {
		err = mapError(err)
		if errors.Is(err, ErrUnauthorized) {
			c.logger.Info(ctx, "refresh token rejected, signing out", "error", err)
			c.dropSession(ctx)
			c.emit(EventSignedOut, nil)
		}
		return nil, err
	}

	fresh := sessionFromAPI(resp.GetSession())
	if fresh == nil {
		return nil, errNoSession
	}

	c.setSession(ctx, fresh)
	c.emit(EventTokenRefreshed, fresh)
	return fresh, nil
}

// StartAutoRefresh renews the session in the background, ahead of its
// expiry, until ctx is cancelled.
func (c *GRPCClient) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.autoRefreshToken(ctx, interval)
			}
		}
	}()
}

func (c *GRPCClient) autoRefreshToken(ctx context.Context, interval time.Duration) {
	s := c.currentSession()
	if s == nil || !s.ExpiresWithin(c.now(), autoRefreshTickThreshold*interval) {
		return
	}

	if _, err := c.refreshSession(ctx, s); err != nil {
		c.logger.Warn(ctx, "auto refresh failed", "error", err)
	}
}
