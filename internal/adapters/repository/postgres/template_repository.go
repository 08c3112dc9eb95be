package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
	pgdb "github.com/ogurasousui/onboarding-workflow/internal/platform/db/postgres"
)

const templateColumns = `id, name, description, department, active, created_at, updated_at`

// TemplateRepository は PostgreSQL を利用したテンプレート永続化の実装です。
type TemplateRepository struct {
	pool pgdb.Queryer
}

// NewTemplateRepository は TemplateRepository を生成します。
func NewTemplateRepository(pool pgdb.Queryer) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// Create はテンプレートとタスクのひな形を登録します。
func (r *TemplateRepository) Create(ctx context.Context, t *workflow.Template) (*workflow.Template, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `
        INSERT INTO workflow_templates (`+templateColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, t.ID, t.Name, t.Description, t.Department, t.Active, t.CreatedAt, t.UpdatedAt); err != nil {
		return nil, translateTemplatePgError(err)
	}

	if err := insertBlueprints(ctx, exec, t); err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// Update はテンプレートを更新し、ひな形を置き換えます。
func (r *TemplateRepository) Update(ctx context.Context, t *workflow.Template) (*workflow.Template, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE workflow_templates
           SET name = $1,
               description = $2,
               department = $3,
               active = $4,
               updated_at = $5
         WHERE id = $6
    `, t.Name, t.Description, t.Department, t.Active, t.UpdatedAt, t.ID)
	if err != nil {
		return nil, translateTemplatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, workflow.ErrTemplateNotFound
	}

	if _, err := exec.Exec(ctx, `DELETE FROM workflow_template_tasks WHERE template_id = $1`, t.ID); err != nil {
		return nil, translateTemplatePgError(err)
	}
	if err := insertBlueprints(ctx, exec, t); err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// FindByID は ID でテンプレートを取得します。
func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*workflow.Template, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+templateColumns+`
          FROM workflow_templates
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanTemplate(row)
	if err != nil {
		return nil, translateTemplatePgError(err)
	}
	if err := loadBlueprints(ctx, exec, []*workflow.Template{found}); err != nil {
		return nil, err
	}
	return found, nil
}

// List は登録順にテンプレートを取得します。
func (r *TemplateRepository) List(ctx context.Context, filter workflow.ListTemplatesFilter) ([]*workflow.Template, string, error) {
	if filter.Limit <= 0 {
		return nil, "", workflow.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", workflow.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	args := make([]any, 0, 3)
	conditions := make([]string, 0, 2)
	if dept := strings.TrimSpace(filter.Department); dept != "" {
		args = append(args, dept)
		conditions = append(conditions, "lower(department) = lower($"+strconv.Itoa(len(args))+")")
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "active")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limitWithBuffer)
	limitPlaceholder := "$" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetPlaceholder := "$" + strconv.Itoa(len(args))

	query := `
        SELECT ` + templateColumns + `
          FROM workflow_templates` + whereClause + `
         ORDER BY seq
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateTemplatePgError(err)
	}

	templates := make([]*workflow.Template, 0, filter.Limit)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			rows.Close()
			return nil, "", translateTemplatePgError(err)
		}
		templates = append(templates, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, "", translateTemplatePgError(err)
	}

	var nextToken string
	if len(templates) == limitWithBuffer {
		templates = templates[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	if err := loadBlueprints(ctx, exec, templates); err != nil {
		return nil, "", err
	}
	return templates, nextToken, nil
}

func insertBlueprints(ctx context.Context, exec pgdb.Queryer, t *workflow.Template) error {
	for i, bp := range t.Tasks {
		if _, err := exec.Exec(ctx, `
            INSERT INTO workflow_template_tasks (template_id, position, title, description, category, priority, due_offset)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
        `, t.ID, i, bp.Title, bp.Description, string(bp.Category), string(bp.Priority), int(bp.DueOffset)); err != nil {
			return fmt.Errorf("tasks[%d]: %w", i, translateTemplatePgError(err))
		}
	}
	return nil
}

func loadBlueprints(ctx context.Context, exec pgdb.Queryer, templates []*workflow.Template) error {
	if len(templates) == 0 {
		return nil
	}

	ids := make([]string, 0, len(templates))
	byID := make(map[string]*workflow.Template, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	rows, err := exec.Query(ctx, `
        SELECT template_id, title, description, category, priority, due_offset
          FROM workflow_template_tasks
         WHERE template_id = ANY($1)
         ORDER BY template_id, position
    `, ids)
	if err != nil {
		return translateTemplatePgError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			templateID string
			bp         workflow.TaskBlueprint
			category   string
			priority   string
			offset     int
		)
		if err := rows.Scan(&templateID, &bp.Title, &bp.Description, &category, &priority, &offset); err != nil {
			return translateTemplatePgError(err)
		}
		owner, ok := byID[templateID]
		if !ok {
			continue
		}
		bp.Category = workflow.Category(category)
		bp.Priority = workflow.Priority(priority)
		bp.DueOffset = workflow.DayOffset(offset)
		owner.Tasks = append(owner.Tasks, bp)
	}
	return translateTemplatePgError(rows.Err())
}

func scanTemplate(row pgx.Row) (*workflow.Template, error) {
	var t workflow.Template
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Department, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workflow.ErrTemplateNotFound
		}
		return nil, err
	}
	t.Tasks = []workflow.TaskBlueprint{}
	return &t, nil
}

func translateTemplatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return workflow.ErrTemplateNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return workflow.ErrTemplateExists
		case foreignKeyViolationCode:
			return workflow.ErrTemplateNotFound
		case checkViolationCode:
			return fmt.Errorf("postgres: check constraint %s: %w", pgErr.ConstraintName, err)
		}
	}
	return err
}
