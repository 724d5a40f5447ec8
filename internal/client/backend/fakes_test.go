package backend

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/api"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type memStorage struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string][]byte{}}
}

func (m *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *memStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStorage) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type fakeAuthServer struct {
	mu sync.Mutex

	signInResp  *api.SessionResponse
	signInErr   error
	signUpResp  *api.SessionResponse
	signUpErr   error
	refreshResp *api.SessionResponse
	refreshErr  error
	signOutErr  error

	lastSignIn       *api.SignInRequest
	lastSignUp       *api.SignUpRequest
	lastRefreshToken string
	refreshCalls     int
	signOutCalls     int
	signOutToken     string
}

func (f *fakeAuthServer) SignUp(_ context.Context, in *api.SignUpRequest) (*api.SessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSignUp = in
	return f.signUpResp, f.signUpErr
}

func (f *fakeAuthServer) SignIn(_ context.Context, in *api.SignInRequest) (*api.SessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSignIn = in
	return f.signInResp, f.signInErr
}

func (f *fakeAuthServer) Refresh(_ context.Context, in *api.RefreshRequest) (*api.SessionResponse, error) {
	// Slow enough for concurrent callers to pile up behind the refresh lock.
	time.Sleep(20 * time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	f.lastRefreshToken = in.RefreshToken
	return f.refreshResp, f.refreshErr
}

func (f *fakeAuthServer) SignOut(ctx context.Context, _ *api.SignOutRequest) (*api.SignOutResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOutCalls++
	f.signOutToken = tokenFrom(ctx)
	return &api.SignOutResponse{}, f.signOutErr
}

func (f *fakeAuthServer) GetUser(context.Context, *api.GetUserRequest) (*api.GetUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "not used")
}

// fakeNotesServer accepts validToken only; any other token is reported as
// expired, an absent one as missing.
type fakeNotesServer struct {
	mu sync.Mutex

	validToken string
	notes      []*api.Note
	seenTokens []string
	lastList   *api.ListNotesRequest
	lastInsert *api.InsertNoteRequest
	deleted    []string
}

func (f *fakeNotesServer) check(ctx context.Context) error {
	tok := tokenFrom(ctx)
	f.seenTokens = append(f.seenTokens, tok)
	if tok == "" {
		return status.Error(codes.Unauthenticated, "missing token")
	}
	if tok != f.validToken {
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}
	return nil
}

func (f *fakeNotesServer) List(ctx context.Context, in *api.ListNotesRequest) (*api.ListNotesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	f.lastList = in
	return &api.ListNotesResponse{Notes: f.notes}, nil
}

func (f *fakeNotesServer) Insert(ctx context.Context, in *api.InsertNoteRequest) (*api.NoteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	f.lastInsert = in
	ts := timestamppb.New(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	return &api.NoteResponse{Note: &api.Note{
		Id: "n-new", UserId: in.UserId, Title: in.Title, Content: in.Content, CreatedAt: ts, UpdatedAt: ts,
	}}, nil
}

func (f *fakeNotesServer) Update(ctx context.Context, in *api.UpdateNoteRequest) (*api.NoteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	for _, n := range f.notes {
		if n.Id == in.Id {
			n.Title, n.Content = in.Title, in.Content
			return &api.NoteResponse{Note: n}, nil
		}
	}
	return nil, status.Error(codes.NotFound, "Note not found")
}

func (f *fakeNotesServer) Delete(ctx context.Context, in *api.DeleteNoteRequest) (*api.DeleteNoteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	f.deleted = append(f.deleted, in.Id)
	return &api.DeleteNoteResponse{}, nil
}

func tokenFrom(ctx context.Context) string {
	md, _ := metadata.FromIncomingContext(ctx)
	if v := md.Get(common.AccessTokenHeaderName); len(v) > 0 {
		return v[0]
	}
	return ""
}

type harness struct {
	client  *GRPCClient
	auth    *fakeAuthServer
	notes   *fakeNotesServer
	storage *memStorage
	events  *eventLog
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		auth:    &fakeAuthServer{},
		notes:   &fakeNotesServer{validToken: "a1"},
		storage: newMemStorage(),
		events:  &eventLog{},
	}

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	api.RegisterAuthServiceServer(srv, h.auth)
	api.RegisterNotesServiceServer(srv, h.notes)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet", h.storage, logging.Nop{},
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	c.OnAuthStateChange(h.events.record)
	h.client = c
	return h
}

func apiSession(access, refresh string, expires time.Time) *api.SessionResponse {
	return &api.SessionResponse{Session: &api.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    timestamppb.New(expires),
		User:         &api.User{Id: "u1", Email: "a@b.co"},
	}}
}

type eventLog struct {
	mu     sync.Mutex
	events []AuthChange
}

func (l *eventLog) record(c AuthChange) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, c)
}

func (l *eventLog) kinds() []AuthEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuthEvent, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Event)
	}
	return out
}
