package domain

import (
	"github.com/fundwit/go-commons/types"
)

type ActivityStatus string

const (
	ActivityActive    ActivityStatus = "ACTIVE"
	ActivityCompleted ActivityStatus = "COMPLETED"
)

// Activity is one running stage of a process. At most one activity of a
// process is ACTIVE at a time.
type Activity struct {
	ID        types.ID `json:"id"`
	ProcessID types.ID `json:"processId" gorm:"index:idx_activity_process"`

	Name string `json:"name"`
	Seq  int    `json:"seq"`

	Status       ActivityStatus `json:"status"`
	DueInSeconds int64          `json:"dueInSeconds"`

	// EscalationDepth counts how many times this activity escalated.
	EscalationDepth int `json:"escalationDepth"`

	BeginTime types.Timestamp `json:"beginTime" sql:"type:DATETIME(6) NOT NULL"`
	EndTime   types.Timestamp `json:"endTime" sql:"type:DATETIME(6)"`
}

func (r *Activity) TableName() string {
	return "activities"
}
