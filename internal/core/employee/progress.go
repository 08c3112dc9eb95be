package employee

import "time"

// ComputeProgress は完了タスクの割合を四捨五入した整数 (0〜100) で返します。タスクが無ければ 0 です。
func ComputeProgress(tasks []Task) int {
	total := len(tasks)
	if total == 0 {
		return 0
	}
	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}
	// round(100*completed/total) を整数演算で行う (0.5 は切り上げ)
	return (200*completed + total) / (2 * total)
}

// StatusForProgress は進捗率から状況を導出します。
func StatusForProgress(progress int) Status {
	switch {
	case progress >= 100:
		return StatusCompleted
	case progress <= 0:
		return StatusPending
	default:
		return StatusInProgress
	}
}

// TaskSummary は社員ダッシュボード向けのタスク集計です。
type TaskSummary struct {
	EmployeeID string
	Total      int
	Completed  int
	Pending    int
	Overdue    int
	Progress   int
	Status     Status
}

// SummarizeTasks は社員のタスクを now 時点で集計します。
func SummarizeTasks(e *Employee, now time.Time) TaskSummary {
	summary := TaskSummary{
		EmployeeID: e.ID,
		Total:      len(e.Tasks),
		Progress:   e.Progress,
		Status:     e.Status,
	}
	for _, task := range e.Tasks {
		if task.Completed {
			summary.Completed++
			continue
		}
		summary.Pending++
		if task.IsOverdue(now) {
			summary.Overdue++
		}
	}
	return summary
}

// Overview は管理者ダッシュボード向けの全体集計です。
type Overview struct {
	TotalEmployees      int
	ActiveOnboarding    int
	CompletedOnboarding int
	PendingTasks        int
	AverageProgress     int
}

// Summarize は社員一覧から全体集計を作成します。
func Summarize(employees []*Employee) Overview {
	var (
		overview    Overview
		progressSum int
	)
	overview.TotalEmployees = len(employees)
	for _, e := range employees {
		switch e.Status {
		case StatusInProgress:
			overview.ActiveOnboarding++
		case StatusCompleted:
			overview.CompletedOnboarding++
		}
		for _, task := range e.Tasks {
			if !task.Completed {
				overview.PendingTasks++
			}
		}
		progressSum += e.Progress
	}
	if n := len(employees); n > 0 {
		overview.AverageProgress = (2*progressSum + n) / (2 * n)
	}
	return overview
}
