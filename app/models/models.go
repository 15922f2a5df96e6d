package models

import "time"

// MaxTaskDepth is the deepest nesting level a task may occupy.
// Top-level tasks sit at depth 0, so a chain of subtasks ends at depth 5.
const MaxTaskDepth = 5

// Urgency levels, ordered from least to most pressing.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
	UrgencyUrgent = "urgent"
)

// ValidUrgency reports whether s is one of the four urgency levels.
func ValidUrgency(s string) bool {
	switch s {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}

// User is an account that owns todo lists.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	Lists []List `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// List is a named collection of top-level tasks owned by one user.
type List struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`

	Tasks []Task `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"-"`
}

// Task is a node in a list's task tree. ParentID is nil for top-level
// tasks; Depth is stored rather than derived so tree queries stay flat.
type Task struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	Urgency     string     `gorm:"size:20;not null;default:medium" json:"urgency"`
	Depth       int        `gorm:"not null;default:0" json:"depth"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	ListID      uint       `gorm:"index;not null" json:"list_id"`
	ParentID    *uint      `gorm:"index" json:"parent_id"`

	Children []Task `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

// TaskNode is a task with its children materialized for JSON responses.
type TaskNode struct {
	Task
	Children []TaskNode `json:"children"`
}

// ListSummary is a list plus its total task count.
type ListSummary struct {
	List
	TaskCount int64 `json:"task_count"`
}

// ListDetail is a list with its top-level tasks nested.
type ListDetail struct {
	ListSummary
	Tasks []TaskNode `json:"tasks"`
}
