package domain

import (
	"github.com/fundwit/go-commons/types"
)

type ProcessStatus string

const (
	ProcessPending   ProcessStatus = "PENDING"
	ProcessSuccess   ProcessStatus = "SUCCESS"
	ProcessTimeout   ProcessStatus = "TIMEOUT"
	ProcessEscalated ProcessStatus = "ESCALATED"
)

// IsTerminal reports whether no further activities may be created.
func (s ProcessStatus) IsTerminal() bool {
	return s == ProcessSuccess || s == ProcessTimeout
}

// Process is a unit of business work, e.g. a customer migration case.
// Mutated only by the process state machine, never deleted.
type Process struct {
	ID types.ID `json:"id"`

	Type        string `json:"type"`
	ExternalRef string `json:"externalRef"`
	Title       string `json:"title"`
	Priority    int    `json:"priority"`

	Status          ProcessStatus `json:"status"`
	EscalationLevel int           `json:"escalationLevel"`
	CurrentStage    int           `json:"currentStage"`

	Metadata Metadata `json:"metadata" sql:"type:TEXT"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime types.Timestamp `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (r *Process) TableName() string {
	return "processes"
}

// ProcessStage is one planned stage of a process, captured at creation.
// Activities are instantiated from stages one at a time as the process
// advances.
type ProcessStage struct {
	ID        types.ID `json:"id"`
	ProcessID types.ID `json:"processId" gorm:"index:idx_stage_process"`

	Name string `json:"name"`
	Seq  int    `json:"seq"`

	ParticipantIDs ParticipantIDList `json:"participantIds" sql:"type:TEXT"`
	DueInSeconds   int64             `json:"dueInSeconds"`
}

func (r *ProcessStage) TableName() string {
	return "process_stages"
}

type StageCreation struct {
	Name           string     `json:"name" binding:"required,lte=255"`
	ParticipantIDs []types.ID `json:"participantIds" binding:"required,gt=0"`
	DueInSeconds   int64      `json:"dueInSeconds"`
}

type ProcessCreation struct {
	Type        string `json:"type" binding:"required,lte=255"`
	ExternalRef string `json:"externalRef"`
	Title       string `json:"title" binding:"required,lte=255"`
	Priority    int    `json:"priority"`

	Metadata Metadata `json:"metadata"`

	Stages []StageCreation `json:"stages" binding:"required,gt=0,dive"`
}

type ProcessQuery struct {
	Type   string        `json:"type" form:"type"`
	Status ProcessStatus `json:"status" form:"status"`
}

type ProcessDetail struct {
	Process

	Stages     []ProcessStage `json:"stages"`
	Activities []Activity     `json:"activities"`
}
