// Package grpc exposes the backend over gRPC: the auth service, the notes
// service and the interceptors guarding them.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophnotes/internal/api"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	SignUp(ctx context.Context, email, password string) (*services.AuthSession, error)
	SignIn(ctx context.Context, email, password string) (*services.AuthSession, error)
	Refresh(ctx context.Context, refreshToken string) (*services.AuthSession, error)
	SignOut(ctx context.Context, userID string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type noteSvc interface {
	List(ctx context.Context, callerID, ownerID string) ([]models.Note, error)
	Insert(ctx context.Context, callerID, ownerID, title, content string) (*models.Note, error)
	Update(ctx context.Context, callerID, id, title, content string) (*models.Note, error)
	Delete(ctx context.Context, callerID, id string) error
}

// GRPCServer implements api.AuthServiceServer and api.NotesServiceServer.
type GRPCServer struct {
	address      string
	users        userSvc
	notes        noteSvc
	logger       logging.Logger
	jwtSecret    []byte
	interceptors []grpc.UnaryServerInterceptor
}

// NewGRPCServer wires the services. Extra interceptors (metrics) run before
// authentication, so rejected calls are observed too.
func NewGRPCServer(a string, l logging.Logger, us userSvc, ns noteSvc, secretKey string, extra ...grpc.UnaryServerInterceptor) *GRPCServer {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		users:        us,
		notes:        ns,
		jwtSecret:    []byte(secretKey),
		interceptors: extra,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	chain := append(append([]grpc.UnaryServerInterceptor{}, s.interceptors...), s.accessTokenInterceptor)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(chain...))

	api.RegisterAuthServiceServer(srv, s)
	api.RegisterNotesServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
