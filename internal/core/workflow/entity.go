package workflow

import (
	"strconv"
	"strings"
	"time"
)

// Category はタスクの分類です。
type Category string

const (
	CategoryDocumentation Category = "documentation"
	CategorySetup         Category = "setup"
	CategoryTraining      Category = "training"
	CategoryCompliance    Category = "compliance"
)

// Valid は分類が既知の値かを返します。
func (c Category) Valid() bool {
	switch c {
	case CategoryDocumentation, CategorySetup, CategoryTraining, CategoryCompliance:
		return true
	default:
		return false
	}
}

// Priority はタスクの優先度です。
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid は優先度が既知の値かを返します。
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// MaxDayOffset は入社日からの期限日数の上限です。
const MaxDayOffset DayOffset = 3650

// DayOffset は入社日から期限までの日数です。作成時に検証済みの値だけが保持されます。
type DayOffset int

// Valid は日数が許容範囲内かを返します。
func (d DayOffset) Valid() bool {
	return d >= 0 && d <= MaxDayOffset
}

// ParseDayOffset は 10 進数のテキストから日数を読み取ります。数値以外や負数は拒否します。
func ParseDayOffset(raw string) (DayOffset, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrInvalidDayOffset
	}
	n, err := strconv.ParseInt(trimmed, 10, 32)
	if err != nil {
		return 0, ErrInvalidDayOffset
	}
	offset := DayOffset(n)
	if !offset.Valid() {
		return 0, ErrInvalidDayOffset
	}
	return offset, nil
}

// DueDate は開始日に日数を加えた期限日を返します。
func (d DayOffset) DueDate(start time.Time) time.Time {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, int(d))
}

// TaskBlueprint はテンプレートに含まれるタスクのひな形です。
type TaskBlueprint struct {
	Title       string
	Description string
	Category    Category
	Priority    Priority
	DueOffset   DayOffset
}

// Template は部署単位のオンボーディング手順のひな形です。
type Template struct {
	ID          string
	Name        string
	Description string
	Department  string
	Active      bool
	Tasks       []TaskBlueprint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EstimatedDuration はテンプレート完了までの見込み日数 (最大の期限日数) を返します。
func (t *Template) EstimatedDuration() DayOffset {
	var longest DayOffset
	for _, task := range t.Tasks {
		if task.DueOffset > longest {
			longest = task.DueOffset
		}
	}
	return longest
}

// Clone はテンプレートの複製を返します。
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	clone := *t
	clone.Tasks = append([]TaskBlueprint(nil), t.Tasks...)
	return &clone
}
