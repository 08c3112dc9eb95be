package onboardingv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SessionService_Login_FullMethodName       = "/onboarding.v1.SessionService/Login"
	SessionService_Logout_FullMethodName      = "/onboarding.v1.SessionService/Logout"
	SessionService_CurrentUser_FullMethodName = "/onboarding.v1.SessionService/CurrentUser"
)

// SessionServiceServer はセッション API のサーバー実装です。
type SessionServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	CurrentUser(context.Context, *CurrentUserRequest) (*CurrentUserResponse, error)
}

// UnimplementedSessionServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedSessionServiceServer struct{}

func (UnimplementedSessionServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedSessionServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}

func (UnimplementedSessionServiceServer) CurrentUser(context.Context, *CurrentUserRequest) (*CurrentUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CurrentUser not implemented")
}

// SessionService_ServiceDesc は onboarding.v1.SessionService のサービス記述子です。
var SessionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "onboarding.v1.SessionService",
	HandlerType: (*SessionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc(SessionService_Login_FullMethodName, unary(SessionService_Login_FullMethodName, SessionServiceServer.Login)),
		methodDesc(SessionService_Logout_FullMethodName, unary(SessionService_Logout_FullMethodName, SessionServiceServer.Logout)),
		methodDesc(SessionService_CurrentUser_FullMethodName, unary(SessionService_CurrentUser_FullMethodName, SessionServiceServer.CurrentUser)),
	},
	Metadata: "onboarding/v1/session.proto",
}

// RegisterSessionServiceServer はサーバーにセッション API を登録します。
func RegisterSessionServiceServer(s grpc.ServiceRegistrar, srv SessionServiceServer) {
	s.RegisterService(&SessionService_ServiceDesc, srv)
}

// SessionServiceClient はセッション API のクライアントです。
type SessionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSessionServiceClient(cc grpc.ClientConnInterface) *SessionServiceClient {
	return &SessionServiceClient{cc: cc}
}

func (c *SessionServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, SessionService_Login_FullMethodName, in, opts)
}

func (c *SessionServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, SessionService_Logout_FullMethodName, in, opts)
}

func (c *SessionServiceClient) CurrentUser(ctx context.Context, in *CurrentUserRequest, opts ...grpc.CallOption) (*CurrentUserResponse, error) {
	return invoke[CurrentUserResponse](ctx, c.cc, SessionService_CurrentUser_FullMethodName, in, opts)
}
