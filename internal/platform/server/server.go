package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ogurasousui/onboarding-workflow/internal/adapters/grpc/onboardingv1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Services はサーバーに登録する onboarding.v1 の実装です。nil のサービスは登録しません。
type Services struct {
	Session  onboardingv1.SessionServiceServer
	Employee onboardingv1.EmployeeServiceServer
	Workflow onboardingv1.WorkflowTemplateServiceServer
}

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, services Services, opts ...grpc.ServerOption) *Server {
	srv := grpc.NewServer(opts...)

	if services.Session != nil {
		onboardingv1.RegisterSessionServiceServer(srv, services.Session)
	}
	if services.Employee != nil {
		onboardingv1.RegisterEmployeeServiceServer(srv, services.Employee)
	}
	if services.Workflow != nil {
		onboardingv1.RegisterWorkflowTemplateServiceServer(srv, services.Workflow)
	}

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     healthSrv,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
