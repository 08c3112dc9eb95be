package onboardingv1

import "time"

// User は認証済み利用者の表現です。
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// LogoutRequest のトークンは authorization メタデータから読み取ります。
type LogoutRequest struct{}

type LogoutResponse struct{}

type CurrentUserRequest struct{}

type CurrentUserResponse struct {
	User *User `json:"user"`
}

// Document は添付書類のメタデータです。
type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Locator     string    `json:"locator,omitempty"`
}

// Task は社員に割り当てられたタスクです。日付は YYYY-MM-DD 形式です。
type Task struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Priority    string      `json:"priority"`
	DueDate     string      `json:"due_date"`
	Completed   bool        `json:"completed"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	AssignedTo  string      `json:"assigned_to"`
	Documents   []*Document `json:"documents"`
}

// Employee は社員と進捗の表現です。
type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Avatar     string    `json:"avatar,omitempty"`
	StartDate  string    `json:"start_date"`
	Status     string    `json:"status"`
	Progress   int       `json:"progress"`
	Tasks      []*Task   `json:"tasks"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Avatar     string `json:"avatar,omitempty"`
	StartDate  string `json:"start_date"`
}

type CreateEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

type GetEmployeeRequest struct {
	ID string `json:"id"`
}

type GetEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

type ListEmployeesRequest struct {
	Department string `json:"department,omitempty"`
	Status     string `json:"status,omitempty"`
	PageSize   int    `json:"page_size,omitempty"`
	PageToken  string `json:"page_token,omitempty"`
}

type ListEmployeesResponse struct {
	Employees     []*Employee `json:"employees"`
	NextPageToken string      `json:"next_page_token,omitempty"`
}

// UpdateTaskRequest は省略されたフィールドを変更しません。
type UpdateTaskRequest struct {
	EmployeeID  string     `json:"employee_id"`
	TaskID      string     `json:"task_id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *string    `json:"due_date,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
}

type UpdateTaskResponse struct {
	Employee *Employee `json:"employee"`
}

type AssignTemplateRequest struct {
	EmployeeID string `json:"employee_id"`
	TemplateID string `json:"template_id"`
}

type AssignTemplateResponse struct {
	Employee *Employee `json:"employee"`
}

// AttachDocumentRequest の Content は JSON 上 base64 で表現されます。
type AttachDocumentRequest struct {
	EmployeeID  string `json:"employee_id"`
	TaskID      string `json:"task_id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Content     []byte `json:"content,omitempty"`
}

type AttachDocumentResponse struct {
	Document *Document `json:"document"`
}

type GetDocumentRequest struct {
	EmployeeID string `json:"employee_id"`
	TaskID     string `json:"task_id"`
	DocumentID string `json:"document_id"`
}

type GetDocumentResponse struct {
	Document *Document `json:"document"`
	Content  []byte    `json:"content,omitempty"`
}

type GetTaskSummaryRequest struct {
	EmployeeID string `json:"employee_id"`
}

// TaskSummary は社員ダッシュボードの集計です。
type TaskSummary struct {
	EmployeeID string `json:"employee_id"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	Pending    int    `json:"pending"`
	Overdue    int    `json:"overdue"`
	Progress   int    `json:"progress"`
	Status     string `json:"status"`
}

type GetTaskSummaryResponse struct {
	Summary *TaskSummary `json:"summary"`
}

type GetOverviewRequest struct{}

// Overview は管理者ダッシュボードの集計です。
type Overview struct {
	TotalEmployees      int `json:"total_employees"`
	ActiveOnboarding    int `json:"active_onboarding"`
	CompletedOnboarding int `json:"completed_onboarding"`
	PendingTasks        int `json:"pending_tasks"`
	AverageProgress     int `json:"average_progress"`
}

type GetOverviewResponse struct {
	Overview *Overview `json:"overview"`
}

// TaskBlueprint の DueOffset は 10 進数の日数テキストです。
type TaskBlueprint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority,omitempty"`
	DueOffset   string `json:"due_offset"`
}

// Template はワークフローテンプレートの表現です。
type Template struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Department        string           `json:"department"`
	Active            bool             `json:"active"`
	Tasks             []*TaskBlueprint `json:"tasks"`
	EstimatedDuration int              `json:"estimated_duration"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type CreateTemplateRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Department  string           `json:"department"`
	Active      *bool            `json:"active,omitempty"`
	Tasks       []*TaskBlueprint `json:"tasks"`
}

type CreateTemplateResponse struct {
	Template *Template `json:"template"`
}

// UpdateTemplateRequest は省略されたフィールドを変更しません。Tasks が null なら既存のタスクを保持します。
type UpdateTemplateRequest struct {
	ID          string           `json:"id"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Department  *string          `json:"department,omitempty"`
	Active      *bool            `json:"active,omitempty"`
	Tasks       []*TaskBlueprint `json:"tasks"`
}

type UpdateTemplateResponse struct {
	Template *Template `json:"template"`
}

type GetTemplateRequest struct {
	ID string `json:"id"`
}

type GetTemplateResponse struct {
	Template *Template `json:"template"`
}

type ListTemplatesRequest struct {
	Department string `json:"department,omitempty"`
	ActiveOnly bool   `json:"active_only,omitempty"`
	PageSize   int    `json:"page_size,omitempty"`
	PageToken  string `json:"page_token,omitempty"`
}

type ListTemplatesResponse struct {
	Templates     []*Template `json:"templates"`
	NextPageToken string      `json:"next_page_token,omitempty"`
}
