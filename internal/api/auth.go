package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	AuthService_SignUp_FullMethodName  = "/gophnotes.v1.AuthService/SignUp"
	AuthService_SignIn_FullMethodName  = "/gophnotes.v1.AuthService/SignIn"
	AuthService_Refresh_FullMethodName = "/gophnotes.v1.AuthService/Refresh"
	AuthService_SignOut_FullMethodName = "/gophnotes.v1.AuthService/SignOut"
	AuthService_GetUser_FullMethodName = "/gophnotes.v1.AuthService/GetUser"
)

type User struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

func (x *User) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

// Session is the credential bundle issued by the auth service.
type Session struct {
	AccessToken  string                 `json:"access_token"`
	RefreshToken string                 `json:"refresh_token"`
	ExpiresAt    *timestamppb.Timestamp `json:"expires_at"`
	User         *User                  `json:"user"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SessionResponse answers SignUp, SignIn and Refresh.
type SessionResponse struct {
	Session *Session `json:"session"`
}

func (x *SessionResponse) GetSession() *Session {
	if x == nil {
		return nil
	}
	return x.Session
}

// SignOutRequest revokes every refresh token of the calling user.
type SignOutRequest struct{}

type SignOutResponse struct{}

type GetUserRequest struct{}

type GetUserResponse struct {
	User *User `json:"user"`
}

type AuthServiceClient interface {
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc: cc}
}

func (c *authServiceClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, AuthService_SignUp_FullMethodName, in, opts)
}

func (c *authServiceClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, AuthService_SignIn_FullMethodName, in, opts)
}

func (c *authServiceClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, AuthService_Refresh_FullMethodName, in, opts)
}

func (c *authServiceClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutResponse](ctx, c.cc, AuthService_SignOut_FullMethodName, in, opts)
}

func (c *authServiceClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error) {
	return invoke[GetUserResponse](ctx, c.cc, AuthService_GetUser_FullMethodName, in, opts)
}

type AuthServiceServer interface {
	SignUp(context.Context, *SignUpRequest) (*SessionResponse, error)
	SignIn(context.Context, *SignInRequest) (*SessionResponse, error)
	Refresh(context.Context, *RefreshRequest) (*SessionResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error)
}

var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "gophnotes.v1.AuthService",
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignUp", Handler: unary(AuthService_SignUp_FullMethodName, AuthServiceServer.SignUp)},
		{MethodName: "SignIn", Handler: unary(AuthService_SignIn_FullMethodName, AuthServiceServer.SignIn)},
		{MethodName: "Refresh", Handler: unary(AuthService_Refresh_FullMethodName, AuthServiceServer.Refresh)},
		{MethodName: "SignOut", Handler: unary(AuthService_SignOut_FullMethodName, AuthServiceServer.SignOut)},
		{MethodName: "GetUser", Handler: unary(AuthService_GetUser_FullMethodName, AuthServiceServer.GetUser)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophnotes/v1/auth",
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}
