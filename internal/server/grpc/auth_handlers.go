package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/api"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func toAPIUser(u *models.User) *api.User {
	if u == nil {
		return nil
	}
	return &api.User{Id: u.ID, Email: u.Email}
}

func toSessionResponse(s *services.AuthSession) *api.SessionResponse {
	return &api.SessionResponse{Session: &api.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    timestamppb.New(s.ExpiresAt),
		User:         toAPIUser(s.User),
	}}
}

func (s *GRPCServer) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.SessionResponse, error) {
	s.logger.Info(ctx, "Sign-up request")

	session, err := s.users.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "SignUp", err)
	}

	s.logger.Info(ctx, "Registered", "user_id", session.User.ID)
	return toSessionResponse(session), nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *api.SignInRequest) (*api.SessionResponse, error) {
	session, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "SignIn", err)
	}
	return toSessionResponse(session), nil
}

func (s *GRPCServer) Refresh(ctx context.Context, req *api.RefreshRequest) (*api.SessionResponse, error) {
	session, err := s.users.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "Refresh", err)
	}
	return toSessionResponse(session), nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *api.SignOutRequest) (*api.SignOutResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.SignOut(ctx, userID); err != nil {
		return nil, s.toStatus(ctx, "SignOut", err)
	}
	return &api.SignOutResponse{}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *api.GetUserRequest) (*api.GetUserResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "GetUser", err)
	}
	return &api.GetUserResponse{User: toAPIUser(user)}, nil
}
