package onboardingv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	WorkflowTemplateService_CreateTemplate_FullMethodName = "/onboarding.v1.WorkflowTemplateService/CreateTemplate"
	WorkflowTemplateService_UpdateTemplate_FullMethodName = "/onboarding.v1.WorkflowTemplateService/UpdateTemplate"
	WorkflowTemplateService_GetTemplate_FullMethodName    = "/onboarding.v1.WorkflowTemplateService/GetTemplate"
	WorkflowTemplateService_ListTemplates_FullMethodName  = "/onboarding.v1.WorkflowTemplateService/ListTemplates"
)

// WorkflowTemplateServiceServer はテンプレート API のサーバー実装です。
type WorkflowTemplateServiceServer interface {
	CreateTemplate(context.Context, *CreateTemplateRequest) (*CreateTemplateResponse, error)
	UpdateTemplate(context.Context, *UpdateTemplateRequest) (*UpdateTemplateResponse, error)
	GetTemplate(context.Context, *GetTemplateRequest) (*GetTemplateResponse, error)
	ListTemplates(context.Context, *ListTemplatesRequest) (*ListTemplatesResponse, error)
}

// UnimplementedWorkflowTemplateServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedWorkflowTemplateServiceServer struct{}

func (UnimplementedWorkflowTemplateServiceServer) CreateTemplate(context.Context, *CreateTemplateRequest) (*CreateTemplateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateTemplate not implemented")
}

func (UnimplementedWorkflowTemplateServiceServer) UpdateTemplate(context.Context, *UpdateTemplateRequest) (*UpdateTemplateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateTemplate not implemented")
}

func (UnimplementedWorkflowTemplateServiceServer) GetTemplate(context.Context, *GetTemplateRequest) (*GetTemplateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTemplate not implemented")
}

func (UnimplementedWorkflowTemplateServiceServer) ListTemplates(context.Context, *ListTemplatesRequest) (*ListTemplatesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTemplates not implemented")
}

// WorkflowTemplateService_ServiceDesc は onboarding.v1.WorkflowTemplateService のサービス記述子です。
var WorkflowTemplateService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "onboarding.v1.WorkflowTemplateService",
	HandlerType: (*WorkflowTemplateServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc(WorkflowTemplateService_CreateTemplate_FullMethodName, unary(WorkflowTemplateService_CreateTemplate_FullMethodName, WorkflowTemplateServiceServer.CreateTemplate)),
		methodDesc(WorkflowTemplateService_UpdateTemplate_FullMethodName, unary(WorkflowTemplateService_UpdateTemplate_FullMethodName, WorkflowTemplateServiceServer.UpdateTemplate)),
		methodDesc(WorkflowTemplateService_GetTemplate_FullMethodName, unary(WorkflowTemplateService_GetTemplate_FullMethodName, WorkflowTemplateServiceServer.GetTemplate)),
		methodDesc(WorkflowTemplateService_ListTemplates_FullMethodName, unary(WorkflowTemplateService_ListTemplates_FullMethodName, WorkflowTemplateServiceServer.ListTemplates)),
	},
	Metadata: "onboarding/v1/workflow.proto",
}

// RegisterWorkflowTemplateServiceServer はサーバーにテンプレート API を登録します。
func RegisterWorkflowTemplateServiceServer(s grpc.ServiceRegistrar, srv WorkflowTemplateServiceServer) {
	s.RegisterService(&WorkflowTemplateService_ServiceDesc, srv)
}

// WorkflowTemplateServiceClient はテンプレート API のクライアントです。
type WorkflowTemplateServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWorkflowTemplateServiceClient(cc grpc.ClientConnInterface) *WorkflowTemplateServiceClient {
	return &WorkflowTemplateServiceClient{cc: cc}
}

func (c *WorkflowTemplateServiceClient) CreateTemplate(ctx context.Context, in *CreateTemplateRequest, opts ...grpc.CallOption) (*CreateTemplateResponse, error) {
	return invoke[CreateTemplateResponse](ctx, c.cc, WorkflowTemplateService_CreateTemplate_FullMethodName, in, opts)
}

func (c *WorkflowTemplateServiceClient) UpdateTemplate(ctx context.Context, in *UpdateTemplateRequest, opts ...grpc.CallOption) (*UpdateTemplateResponse, error) {
	return invoke[UpdateTemplateResponse](ctx, c.cc, WorkflowTemplateService_UpdateTemplate_FullMethodName, in, opts)
}

func (c *WorkflowTemplateServiceClient) GetTemplate(ctx context.Context, in *GetTemplateRequest, opts ...grpc.CallOption) (*GetTemplateResponse, error) {
	return invoke[GetTemplateResponse](ctx, c.cc, WorkflowTemplateService_GetTemplate_FullMethodName, in, opts)
}

func (c *WorkflowTemplateServiceClient) ListTemplates(ctx context.Context, in *ListTemplatesRequest, opts ...grpc.CallOption) (*ListTemplatesResponse, error) {
	return invoke[ListTemplatesResponse](ctx, c.cc, WorkflowTemplateService_ListTemplates_FullMethodName, in, opts)
}
