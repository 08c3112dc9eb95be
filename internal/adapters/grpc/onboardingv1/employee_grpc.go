package onboardingv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	EmployeeService_CreateEmployee_FullMethodName = "/onboarding.v1.EmployeeService/CreateEmployee"
	EmployeeService_GetEmployee_FullMethodName    = "/onboarding.v1.EmployeeService/GetEmployee"
	EmployeeService_ListEmployees_FullMethodName  = "/onboarding.v1.EmployeeService/ListEmployees"
	EmployeeService_UpdateTask_FullMethodName     = "/onboarding.v1.EmployeeService/UpdateTask"
	EmployeeService_AssignTemplate_FullMethodName = "/onboarding.v1.EmployeeService/AssignTemplate"
	EmployeeService_AttachDocument_FullMethodName = "/onboarding.v1.EmployeeService/AttachDocument"
	EmployeeService_GetDocument_FullMethodName    = "/onboarding.v1.EmployeeService/GetDocument"
	EmployeeService_GetTaskSummary_FullMethodName = "/onboarding.v1.EmployeeService/GetTaskSummary"
	EmployeeService_GetOverview_FullMethodName    = "/onboarding.v1.EmployeeService/GetOverview"
)

// EmployeeServiceServer は社員 API のサーバー実装です。
type EmployeeServiceServer interface {
	CreateEmployee(context.Context, *CreateEmployeeRequest) (*CreateEmployeeResponse, error)
	GetEmployee(context.Context, *GetEmployeeRequest) (*GetEmployeeResponse, error)
	ListEmployees(context.Context, *ListEmployeesRequest) (*ListEmployeesResponse, error)
	UpdateTask(context.Context, *UpdateTaskRequest) (*UpdateTaskResponse, error)
	AssignTemplate(context.Context, *AssignTemplateRequest) (*AssignTemplateResponse, error)
	AttachDocument(context.Context, *AttachDocumentRequest) (*AttachDocumentResponse, error)
	GetDocument(context.Context, *GetDocumentRequest) (*GetDocumentResponse, error)
	GetTaskSummary(context.Context, *GetTaskSummaryRequest) (*GetTaskSummaryResponse, error)
	GetOverview(context.Context, *GetOverviewRequest) (*GetOverviewResponse, error)
}

// UnimplementedEmployeeServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedEmployeeServiceServer struct{}

func (UnimplementedEmployeeServiceServer) CreateEmployee(context.Context, *CreateEmployeeRequest) (*CreateEmployeeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateEmployee not implemented")
}

func (UnimplementedEmployeeServiceServer) GetEmployee(context.Context, *GetEmployeeRequest) (*GetEmployeeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEmployee not implemented")
}

func (UnimplementedEmployeeServiceServer) ListEmployees(context.Context, *ListEmployeesRequest) (*ListEmployeesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEmployees not implemented")
}

func (UnimplementedEmployeeServiceServer) UpdateTask(context.Context, *UpdateTaskRequest) (*UpdateTaskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateTask not implemented")
}

func (UnimplementedEmployeeServiceServer) AssignTemplate(context.Context, *AssignTemplateRequest) (*AssignTemplateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AssignTemplate not implemented")
}

func (UnimplementedEmployeeServiceServer) AttachDocument(context.Context, *AttachDocumentRequest) (*AttachDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AttachDocument not implemented")
}

func (UnimplementedEmployeeServiceServer) GetDocument(context.Context, *GetDocumentRequest) (*GetDocumentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDocument not implemented")
}

func (UnimplementedEmployeeServiceServer) GetTaskSummary(context.Context, *GetTaskSummaryRequest) (*GetTaskSummaryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTaskSummary not implemented")
}

func (UnimplementedEmployeeServiceServer) GetOverview(context.Context, *GetOverviewRequest) (*GetOverviewResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOverview not implemented")
}

// EmployeeService_ServiceDesc は onboarding.v1.EmployeeService のサービス記述子です。
var EmployeeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "onboarding.v1.EmployeeService",
	HandlerType: (*EmployeeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc(EmployeeService_CreateEmployee_FullMethodName, unary(EmployeeService_CreateEmployee_FullMethodName, EmployeeServiceServer.CreateEmployee)),
		methodDesc(EmployeeService_GetEmployee_FullMethodName, unary(EmployeeService_GetEmployee_FullMethodName, EmployeeServiceServer.GetEmployee)),
		methodDesc(EmployeeService_ListEmployees_FullMethodName, unary(EmployeeService_ListEmployees_FullMethodName, EmployeeServiceServer.ListEmployees)),
		methodDesc(EmployeeService_UpdateTask_FullMethodName, unary(EmployeeService_UpdateTask_FullMethodName, EmployeeServiceServer.UpdateTask)),
		methodDesc(EmployeeService_AssignTemplate_FullMethodName, unary(EmployeeService_AssignTemplate_FullMethodName, EmployeeServiceServer.AssignTemplate)),
		methodDesc(EmployeeService_AttachDocument_FullMethodName, unary(EmployeeService_AttachDocument_FullMethodName, EmployeeServiceServer.AttachDocument)),
		methodDesc(EmployeeService_GetDocument_FullMethodName, unary(EmployeeService_GetDocument_FullMethodName, EmployeeServiceServer.GetDocument)),
		methodDesc(EmployeeService_GetTaskSummary_FullMethodName, unary(EmployeeService_GetTaskSummary_FullMethodName, EmployeeServiceServer.GetTaskSummary)),
		methodDesc(EmployeeService_GetOverview_FullMethodName, unary(EmployeeService_GetOverview_FullMethodName, EmployeeServiceServer.GetOverview)),
	},
	Metadata: "onboarding/v1/employee.proto",
}

// RegisterEmployeeServiceServer はサーバーに社員 API を登録します。
func RegisterEmployeeServiceServer(s grpc.ServiceRegistrar, srv EmployeeServiceServer) {
	s.RegisterService(&EmployeeService_ServiceDesc, srv)
}

// EmployeeServiceClient は社員 API のクライアントです。
type EmployeeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewEmployeeServiceClient(cc grpc.ClientConnInterface) *EmployeeServiceClient {
	return &EmployeeServiceClient{cc: cc}
}

func (c *EmployeeServiceClient) CreateEmployee(ctx context.Context, in *CreateEmployeeRequest, opts ...grpc.CallOption) (*CreateEmployeeResponse, error) {
	return invoke[CreateEmployeeResponse](ctx, c.cc, EmployeeService_CreateEmployee_FullMethodName, in, opts)
}

func (c *EmployeeServiceClient) GetEmployee(ctx context.Context, in *GetEmployeeRequest, opts ...grpc.CallOption) (*GetEmployeeResponse, error) {
	return invoke[GetEmployeeResponse](ctx, c.cc, EmployeeService_GetEmployee_FullMethodName, in, opts)
}

func (c *EmployeeServiceClient) ListEmployees(ctx context.Context, in *ListEmployeesRequest, opts ...grpc.CallOption) (*ListEmployeesResponse, error) {
	return invoke[ListEmployeesResponse](ctx, c.cc, EmployeeService_ListEmployees_FullMethodName, in, opts)
}

func (c *EmployeeServiceClient) UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*UpdateTaskResponse, error) {
	return invoke[UpdateTaskResponse](ctx, c.cc, EmployeeService_UpdateTask_FullMethodName, in, opts)
}

func (c *EmployeeServiceClient) AssignTemplate(ctx context.Context, in *AssignTemplateRequest, opts ...grpc.CallOption) (*AssignTemplateResponse, error) {
	return invoke[AssignTemplateResponse](ctx, c.cc, EmployeeService_AssignTemplate_FullMethodName, in, opts)
}

func (c *EmployeeServiceClient) AttachDocument(ctx context.Context, in *AttachDocumentRequest, opts ...grpc.CallOption) (*AttachDocumentResponse, error) {
	return invoke[AttachDocumentResponse](ctx, c.cc, EmployeeService_AttachDocument_FullMethodName, in, opts)
}

func (c *EmployeeServiceClient) GetDocument(ctx context.Context, in *GetDocumentRequest, opts ...grpc.CallOption) (*GetDocumentResponse, error) {
	return invoke[GetDocumentResponse](ctx, c.cc, EmployeeService_GetDocument_FullMethodName, in, opts)
}

func (c *EmployeeServiceClient) GetTaskSummary(ctx context.Context, in *GetTaskSummaryRequest, opts ...grpc.CallOption) (*GetTaskSummaryResponse, error) {
	return invoke[GetTaskSummaryResponse](ctx, c.cc, EmployeeService_GetTaskSummary_FullMethodName, in, opts)
}

func (c *EmployeeServiceClient) GetOverview(ctx context.Context, in *GetOverviewRequest, opts ...grpc.CallOption) (*GetOverviewResponse, error) {
	return invoke[GetOverviewResponse](ctx, c.cc, EmployeeService_GetOverview_FullMethodName, in, opts)
}
