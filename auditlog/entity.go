package auditlog

import (
	"github.com/fundwit/go-commons/types"
)

const (
	EventCategoryCreation   = "CREATION"
	EventCategoryApproval   = "APPROVAL"
	EventCategoryTimeout    = "TIMEOUT"
	EventCategoryEscalation = "ESCALATION"
	EventCategoryRejection  = "REJECTION"
)

type EventCategory string

// ProcessLog is an append-only audit record of one lifecycle transition.
// Records are never updated or deleted; per-process order is timestamp
// order with ties broken by id (ids are generation-ordered).
type ProcessLog struct {
	ID        types.ID `json:"id"`
	ProcessID types.ID `json:"processId" gorm:"index:idx_log_process"`

	EventCategory EventCategory `json:"eventCategory"`
	Description   string        `json:"description"`

	ActorID types.ID `json:"actorId"`

	Timestamp types.Timestamp `json:"timestamp" sql:"type:DATETIME(6) NOT NULL"`
}

func (r *ProcessLog) TableName() string {
	return "process_logs"
}
