package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
)

const namespace = "onboarding"

// Registry はアプリケーションのメトリクスを保持します。グローバルレジストリは使いません。
type Registry struct {
	reg *prometheus.Registry

	logins              *prometheus.CounterVec
	rpcRequests         *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	taskCompletions     prometheus.Counter
	templateAssignments prometheus.Counter
	documentsAttached   prometheus.Counter
	employeesCreated    prometheus.Counter
}

// New は Registry を生成し、各コレクターを登録します。
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Handled gRPC requests by method and status code.",
		}, []string{"method", "code"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Handled HTTP requests by route and status.",
		}, []string{"route", "status"}),
		taskCompletions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_completions_total",
			Help:      "Tasks transitioned to completed.",
		}),
		templateAssignments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "template_assignments_total",
			Help:      "Workflow templates assigned to employees.",
		}),
		documentsAttached: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_attached_total",
			Help:      "Documents attached to tasks.",
		}),
		employeesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "employees_created_total",
			Help:      "Employees added.",
		}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.logins,
		r.rpcRequests,
		r.httpRequests,
		r.taskCompletions,
		r.templateAssignments,
		r.documentsAttached,
		r.employeesCreated,
	)
	return r
}

// Handler は /metrics 用の HTTP ハンドラを返します。
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer は登録済みメトリクスの収集元を返します。
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveLogin はログイン結果を記録します。
func (r *Registry) ObserveLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	r.logins.WithLabelValues(result).Inc()
}

// ObserveRPC は gRPC リクエストの結果を記録します。
func (r *Registry) ObserveRPC(method, code string) {
	r.rpcRequests.WithLabelValues(method, code).Inc()
}

// ObserveHTTP は HTTP リクエストの結果を記録します。route はパターン (例: /api/employees/:employeeID) を渡します。
func (r *Registry) ObserveHTTP(route string, status int) {
	r.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Publish はドメインイベントを数えます。employee.EventPublisher として通知先に加えて使います。
func (r *Registry) Publish(_ context.Context, event employee.Event) error {
	switch event.Type {
	case employee.EventTaskCompleted:
		r.taskCompletions.Inc()
	case employee.EventTemplateAssigned:
		r.templateAssignments.Inc()
	case employee.EventDocumentAttached:
		r.documentsAttached.Inc()
	case employee.EventEmployeeCreated:
		r.employeesCreated.Inc()
	}
	return nil
}
