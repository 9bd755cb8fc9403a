package models

import "time"

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

// taskTransitions lists the legal next states. Completed and cancelled
// are terminal.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskPending:    {TaskInProgress, TaskCancelled},
	TaskInProgress: {TaskCompleted, TaskCancelled},
	TaskCompleted:  {},
	TaskCancelled:  {},
}

// CanTransition reports whether a task may move from one status to another.
func CanTransition(from, to TaskStatus) bool {
	for _, next := range taskTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	OwnerID     string     `gorm:"size:64;not null;uniqueIndex:idx_owner_title,priority:1" json:"owner_id"`
	Title       string     `gorm:"size:200;not null;uniqueIndex:idx_owner_title,priority:2" json:"title"`
	Description string     `gorm:"size:1000" json:"description"`
	Status      TaskStatus `gorm:"size:16;default:pending" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Deletable reports whether the task may still be deleted. Completed
// work is kept for the record.
func (t *Task) Deletable() bool {
	return t.Status != TaskCompleted
}
