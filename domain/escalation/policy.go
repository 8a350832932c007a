package escalation

import (
	"caseflow/bizerror"
	"caseflow/domain"
	"caseflow/domain/participant"

	"github.com/fundwit/go-commons/types"
)

// Assignee is the computed escalation target of an expired work item.
type Assignee struct {
	ParticipantID types.ID
	Level         participant.Level
}

var NextAssigneeFunc = NextAssignee

// NextAssignee computes the participant one authority level above the
// expired item's assignee. The mapping from "next level" to a concrete
// participant is the directory's escalation target of the original
// assignee. bizerror.ErrEscalationExhausted is returned when the item is
// already at DomainAdmin level, or when the directory knows no target;
// the caller must then drive the process to TIMEOUT instead of creating
// a new work item.
func NextAssignee(item *domain.WorkItem) (*Assignee, error) {
	nextLevel, ok := item.ParticipantLevel.Next()
	if !ok {
		return nil, bizerror.ErrEscalationExhausted
	}

	current, err := participant.ResolveFunc(item.ParticipantID)
	if err != nil {
		return nil, err
	}
	if current.EscalationTargetID == 0 {
		return nil, bizerror.ErrEscalationExhausted
	}

	if _, err := participant.ResolveFunc(current.EscalationTargetID); err != nil {
		return nil, bizerror.ErrEscalationExhausted
	}

	return &Assignee{ParticipantID: current.EscalationTargetID, Level: nextLevel}, nil
}
