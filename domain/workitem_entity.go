package domain

import (
	"caseflow/domain/participant"

	"github.com/fundwit/go-commons/types"
)

type WorkItemStatus string

const (
	WorkItemPending   WorkItemStatus = "PENDING"
	WorkItemCompleted WorkItemStatus = "COMPLETED"
	WorkItemExpired   WorkItemStatus = "EXPIRED"
)

// WorkItem is one participant's assignment within an activity. Status only
// moves PENDING -> COMPLETED or PENDING -> EXPIRED, and the deadline is
// immutable once set.
type WorkItem struct {
	ID         types.ID `json:"id"`
	ActivityID types.ID `json:"activityId" gorm:"index:idx_workitem_activity"`
	ProcessID  types.ID `json:"processId" gorm:"index:idx_workitem_process"`

	ParticipantID    types.ID          `json:"participantId" gorm:"index:idx_workitem_participant"`
	ParticipantLevel participant.Level `json:"participantLevel"`

	Status WorkItemStatus `json:"status"`

	Deadline   types.Timestamp `json:"deadline" sql:"type:DATETIME(6)"`
	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	EndTime    types.Timestamp `json:"endTime" sql:"type:DATETIME(6)"`
}

func (r *WorkItem) TableName() string {
	return "work_items"
}

type WorkItemQuery struct {
	ParticipantID types.ID `json:"participantId" form:"participantId" binding:"required"`
}

type WorkItemCompletion struct {
	Succeed *bool `json:"succeed" binding:"required"`
}
