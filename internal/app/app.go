// Package app は設定からストア・ユースケース・トランスポートを組み立て、起動と停止を管理します。
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"google.golang.org/grpc"

	blobmemory "github.com/ogurasousui/onboarding-workflow/internal/adapters/blob/memory"
	"github.com/ogurasousui/onboarding-workflow/internal/adapters/events/natsbus"
	"github.com/ogurasousui/onboarding-workflow/internal/adapters/grpc/handler"
	"github.com/ogurasousui/onboarding-workflow/internal/adapters/http/gateway"
	"github.com/ogurasousui/onboarding-workflow/internal/adapters/repository/memory"
	"github.com/ogurasousui/onboarding-workflow/internal/adapters/repository/postgres"
	"github.com/ogurasousui/onboarding-workflow/internal/adapters/seed"
	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/session"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
	"github.com/ogurasousui/onboarding-workflow/internal/platform/config"
	pg "github.com/ogurasousui/onboarding-workflow/internal/platform/db/postgres"
	"github.com/ogurasousui/onboarding-workflow/internal/platform/metrics"
	"github.com/ogurasousui/onboarding-workflow/internal/platform/server"
)

// App はプロセス全体で共有されるストアとサーバーを保持します。
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Registry
	target  seed.Target
	loaded  bool

	sessions  *session.Service
	employees *employee.Service
	templates *workflow.Service

	grpcServer *server.Server
	httpServer *gateway.Server

	closers []func() error
}

// New は設定に従ってアプリケーションを構築します。失敗した場合は確保済みの資源を解放します。
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{cfg: cfg, logger: logger, metrics: metrics.New()}
	defer func() {
		if err != nil {
			_ = a.Close(context.Background())
		}
	}()

	var dataset *seed.Dataset
	if cfg.Storage.SeedPath != "" {
		if dataset, err = seed.Load(cfg.Storage.SeedPath); err != nil {
			return nil, err
		}
	}

	if err = a.openStore(ctx); err != nil {
		return nil, err
	}
	if err = a.loadData(ctx, dataset); err != nil {
		return nil, err
	}
	a.loaded = true
	if err = a.buildServices(ctx, dataset); err != nil {
		return nil, err
	}
	a.buildTransports()
	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := pg.NewPool(ctx, a.cfg.Database)
		if err != nil {
			return fmt.Errorf("app: open database: %w", err)
		}
		a.closers = append(a.closers, func() error {
			pool.Close()
			return nil
		})
		a.target = seed.Target{
			Employees: postgres.NewEmployeeRepository(pool),
			Templates: postgres.NewTemplateRepository(pool),
			Tx:        pg.NewTransactionManager(pool),
		}
	default:
		store := memory.NewStore()
		a.target = seed.Target{
			Employees: memory.NewEmployeeRepository(store),
			Templates: memory.NewTemplateRepository(store),
			Tx:        memory.NewTransactionManager(store),
		}
	}
	a.logger.Info("store opened", "driver", a.cfg.Storage.Driver)
	return nil
}

// loadData はスナップショットがあればそれを、無ければ空のストアにだけシードを投入します。
func (a *App) loadData(ctx context.Context, dataset *seed.Dataset) error {
	if path := a.cfg.Storage.SnapshotPath; path != "" {
		snapshot, err := seed.Load(path)
		switch {
		case err == nil:
			a.logger.Info("restoring snapshot", "path", path,
				"templates", len(snapshot.Templates), "employees", len(snapshot.Employees))
			return seed.Apply(ctx, snapshot, a.target, time.Now())
		case errors.Is(err, os.ErrNotExist):
			a.logger.Info("no snapshot found; starting from seed", "path", path)
		default:
			return err
		}
	}

	if dataset == nil {
		return nil
	}

	empty, err := a.storeIsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		a.logger.Info("store already has data; seed skipped")
		return nil
	}

	a.logger.Info("applying seed", "path", a.cfg.Storage.SeedPath,
		"templates", len(dataset.Templates), "employees", len(dataset.Employees))
	return seed.Apply(ctx, dataset, a.target, time.Now())
}

func (a *App) storeIsEmpty(ctx context.Context) (bool, error) {
	empty := true
	err := a.target.Tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		templates, _, err := a.target.Templates.List(txCtx, workflow.ListTemplatesFilter{Limit: 1})
		if err != nil {
			return err
		}
		employees, _, err := a.target.Employees.List(txCtx, employee.ListEmployeesFilter{Limit: 1})
		if err != nil {
			return err
		}
		empty = len(templates) == 0 && len(employees) == 0
		return nil
	})
	return empty, err
}

func (a *App) buildServices(ctx context.Context, dataset *seed.Dataset) error {
	var accounts []session.Account
	if dataset != nil {
		var err error
		if accounts, err = dataset.SessionAccounts(); err != nil {
			return err
		}
	}
	if len(accounts) == 0 {
		a.logger.Warn("no accounts configured; every login will be rejected")
	}

	creds, err := session.NewStaticCredentials(accounts, a.cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	if a.sessions, err = session.NewService(creds, []byte(a.cfg.Auth.JWTSecret), a.cfg.Auth.TokenTTL, nil); err != nil {
		return err
	}

	publishers := employee.Publishers{a.metrics}
	if url := a.cfg.Events.NATSURL; url != "" {
		conn, err := natsbus.Connect(url, a.logger)
		if err != nil {
			return fmt.Errorf("app: connect nats: %w", err)
		}
		a.closers = append(a.closers, conn.Drain)
		publishers = append(publishers, natsbus.NewPublisher(conn))
		a.logger.Info("publishing domain events", "url", url)
	}

	a.templates = workflow.NewService(a.target.Templates, nil, a.target.Tx, nil)
	a.employees = employee.NewService(a.target.Employees, a.templates, nil, a.target.Tx,
		employee.WithDocumentStore(blobmemory.NewStore()),
		employee.WithEventPublisher(publishers),
		employee.WithLogger(a.logger),
	)
	return nil
}

func (a *App) buildTransports() {
	a.grpcServer = server.New(a.cfg.Server.ListenAddr, server.Services{
		Session:  handler.NewSessionGrpcHandler(a.sessions, a.metrics),
		Employee: handler.NewEmployeeGrpcHandler(a.employees),
		Workflow: handler.NewWorkflowTemplateGrpcHandler(a.templates),
	}, grpc.ChainUnaryInterceptor(
		handler.ObserveUnaryInterceptor(a.logger, a.metrics),
		handler.AuthUnaryInterceptor(a.sessions),
	))

	if addr := a.cfg.HTTP.ListenAddr; addr != "" {
		a.httpServer = gateway.NewServer(addr, gateway.Dependencies{
			Sessions:       a.sessions,
			Employees:      a.employees,
			Templates:      a.templates,
			Observer:       a.metrics,
			MetricsHandler: a.metrics.Handler(),
			Logger:         a.logger,
		})
	}
}

// Run は gRPC サーバーと HTTP ゲートウェイを起動し、どちらかが終了するかコンテキストがキャンセルされるまで待ちます。
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)
	running := 1
	go func() {
		a.logger.Info("gRPC server listening", "addr", a.cfg.Server.ListenAddr)
		errs <- a.grpcServer.Run(ctx)
	}()
	if a.httpServer != nil {
		running++
		go func() {
			a.logger.Info("HTTP gateway listening", "addr", a.cfg.HTTP.ListenAddr)
			errs <- a.httpServer.Run(ctx)
		}()
	}

	var first error
	for i := 0; i < running; i++ {
		if err := <-errs; err != nil && first == nil {
			first = err
		}
		cancel()
	}
	return first
}

// Close はスナップショットを保存し、接続を閉じます。
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if path := a.cfg.Storage.SnapshotPath; path != "" && a.loaded {
		if err := a.saveSnapshot(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) saveSnapshot(ctx context.Context, path string) error {
	ds, err := seed.Export(ctx, a.target)
	if err != nil {
		return fmt.Errorf("app: export snapshot: %w", err)
	}
	if err := seed.Save(path, ds); err != nil {
		return err
	}
	a.logger.Info("snapshot saved", "path", path,
		"templates", len(ds.Templates), "employees", len(ds.Employees))
	return nil
}

// Employees はアプリケーションの社員ユースケースを返します。
func (a *App) Employees() employee.UseCase {
	return a.employees
}

// Templates はアプリケーションのテンプレートユースケースを返します。
func (a *App) Templates() workflow.UseCase {
	return a.templates
}

// Sessions はアプリケーションのセッションユースケースを返します。
func (a *App) Sessions() session.UseCase {
	return a.sessions
}
