package memory

import (
	"context"
	"strings"

	"github.com/ogurasousui/onboarding-workflow/internal/core/workflow"
)

// TemplateRepository は Store を利用したテンプレート永続化の実装です。
type TemplateRepository struct {
	store *Store
}

// NewTemplateRepository は TemplateRepository を生成します。
func NewTemplateRepository(store *Store) *TemplateRepository {
	return &TemplateRepository{store: store}
}

// Create はテンプレートを登録します。
func (r *TemplateRepository) Create(ctx context.Context, t *workflow.Template) (*workflow.Template, error) {
	release, st, err := r.store.access(ctx, true)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, exists := r.store.templates[t.ID]; exists {
		return nil, workflow.ErrTemplateExists
	}

	n := len(r.store.templateOrder)
	r.store.templates[t.ID] = t.Clone()
	r.store.templateOrder = append(r.store.templateOrder, t.ID)
	st.onRollback(func() {
		delete(r.store.templates, t.ID)
		r.store.templateOrder = r.store.templateOrder[:n]
	})
	return t.Clone(), nil
}

// Update はテンプレートを置き換えます。
func (r *TemplateRepository) Update(ctx context.Context, t *workflow.Template) (*workflow.Template, error) {
	release, st, err := r.store.access(ctx, true)
	if err != nil {
		return nil, err
	}
	defer release()

	prev, ok := r.store.templates[t.ID]
	if !ok {
		return nil, workflow.ErrTemplateNotFound
	}

	r.store.templates[t.ID] = t.Clone()
	st.onRollback(func() {
		r.store.templates[t.ID] = prev
	})
	return t.Clone(), nil
}

// FindByID は ID でテンプレートを取得します。
func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*workflow.Template, error) {
	release, _, err := r.store.access(ctx, false)
	if err != nil {
		return nil, err
	}
	defer release()

	t, ok := r.store.templates[id]
	if !ok {
		return nil, workflow.ErrTemplateNotFound
	}
	return t.Clone(), nil
}

// List は登録順にテンプレートを返します。
func (r *TemplateRepository) List(ctx context.Context, filter workflow.ListTemplatesFilter) ([]*workflow.Template, string, error) {
	release, _, err := r.store.access(ctx, false)
	if err != nil {
		return nil, "", err
	}
	defer release()

	var matched []*workflow.Template
	for _, id := range r.store.templateOrder {
		t := r.store.templates[id]
		if filter.Department != "" && !strings.EqualFold(t.Department, filter.Department) {
			continue
		}
		if filter.ActiveOnly && !t.Active {
			continue
		}
		matched = append(matched, t)
	}

	start, end, next := paginate(len(matched), filter.Offset, filter.Limit)
	page := make([]*workflow.Template, 0, end-start)
	for _, t := range matched[start:end] {
		page = append(page, t.Clone())
	}
	return page, next, nil
}
