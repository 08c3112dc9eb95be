package seed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ogurasousui/onboarding-workflow/internal/core/employee"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

const exportPageSize = 200

// TransactionManager は投入処理をまとめて確定させるためのトランザクション境界です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

// Target はデータの投入先・取得元となるリポジトリの組です。
type Target struct {
	Employees employee.Repository
	Templates workflow.Repository
	Tx        TransactionManager
}

// Apply はデータセットのテンプレートと社員をリポジトリへ投入します。途中で失敗した場合は何も残しません。
func Apply(ctx context.Context, ds *Dataset, target Target, now time.Time) error {
	templates, err := ds.DomainTemplates()
	if err != nil {
		return err
	}
	employees, err := ds.DomainEmployees(now)
	if err != nil {
		return err
	}

	return target.Tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		for _, t := range templates {
			if _, err := target.Templates.Create(txCtx, t); err != nil {
				return fmt.Errorf("seed: template %s: %w", t.ID, err)
			}
		}
		for _, e := range employees {
			if _, err := target.Employees.Create(txCtx, e); err != nil {
				return fmt.Errorf("seed: employee %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

// Export はリポジトリの内容をスナップショット用のデータセットとして取り出します。アカウントは含みません。
func Export(ctx context.Context, target Target) (*Dataset, error) {
	ds := &Dataset{}
	err := target.Tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		offset := 0
		for {
			page, next, err := target.Templates.List(txCtx, workflow.ListTemplatesFilter{Limit: exportPageSize, Offset: offset})
			if err != nil {
				return err
			}
			for _, t := range page {
				ds.Templates = append(ds.Templates, fromTemplate(t))
			}
			if next == "" {
				break
			}
			if offset, err = strconv.Atoi(next); err != nil {
				return fmt.Errorf("seed: page token %q: %w", next, err)
			}
		}

		offset = 0
		for {
			page, next, err := target.Employees.List(txCtx, employee.ListEmployeesFilter{Limit: exportPageSize, Offset: offset})
			if err != nil {
				return err
			}
			for _, e := range page {
				ds.Employees = append(ds.Employees, fromEmployee(e))
			}
			if next == "" {
				return nil
			}
			if offset, err = strconv.Atoi(next); err != nil {
				return fmt.Errorf("seed: page token %q: %w", next, err)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}
