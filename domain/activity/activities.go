package activity

import (
	"caseflow/auditlog"
	"caseflow/bizerror"
	"caseflow/clock"
	"caseflow/domain"
	"caseflow/domain/escalation"
	"caseflow/domain/participant"
	"caseflow/domain/workitem"
	"caseflow/idgen"
	"errors"
	"fmt"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	activityIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	StartActivityFunc = StartActivity

	// process state machine callbacks, wired by the process package
	AdvanceProcessFunc   func(tx *gorm.DB, processID types.ID, actorID types.ID) error
	TerminateProcessFunc func(tx *gorm.DB, processID types.ID, description string, actorID types.ID) error
	MarkEscalatedFunc    func(tx *gorm.DB, processID types.ID, level int) error
)

func init() {
	workitem.OnWorkItemResolvedFunc = onWorkItemResolved
	workitem.OnWorkItemExpiredFunc = onWorkItemExpired
}

// StartActivity instantiates a stage: one ACTIVE activity plus one PENDING
// work item per participant. Activities of a process are sequential, a
// second ACTIVE one is refused.
func StartActivity(tx *gorm.DB, process *domain.Process, stage *domain.ProcessStage) (*domain.Activity, error) {
	if process.Status.IsTerminal() {
		return nil, bizerror.ErrProcessTerminated
	}

	activeCount := 0
	if err := tx.Model(&domain.Activity{}).
		Where("process_id = ? AND status = ?", process.ID, domain.ActivityActive).
		Count(&activeCount).Error; err != nil {
		return nil, err
	}
	if activeCount > 0 {
		return nil, bizerror.ErrActivityConflict
	}

	now := clock.Now()
	record := domain.Activity{
		ID:        idgen.NextID(activityIdWorker),
		ProcessID: process.ID,

		Name: stage.Name,
		Seq:  stage.Seq,

		Status:       domain.ActivityActive,
		DueInSeconds: stage.DueInSeconds,
		BeginTime:    now,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}

	for _, participantID := range stage.ParticipantIDs {
		p, err := participant.ResolveFunc(participantID)
		if err != nil {
			return nil, err
		}
		if _, err := workitem.CreateWorkItemFunc(tx, &record, participantID, p.Level,
			deadlineAfter(now, stage.DueInSeconds)); err != nil {
			return nil, err
		}
	}

	return &record, nil
}

// onWorkItemResolved continues a participant's completion: a positive
// outcome completes the activity and advances the process, a rejection
// terminates the process.
func onWorkItemResolved(tx *gorm.DB, item *domain.WorkItem, succeed bool, actorID types.ID) error {
	if !succeed {
		return TerminateProcessFunc(tx, item.ProcessID,
			fmt.Sprintf("work item %d rejected by participant %d", item.ID, actorID), actorID)
	}

	var record domain.Activity
	if err := tx.Where(&domain.Activity{ID: item.ActivityID}).First(&record).Error; err != nil {
		return err
	}
	if record.Status == domain.ActivityCompleted {
		return nil
	}

	now := clock.Now()
	cas := tx.Model(&domain.Activity{}).
		Where("id = ? AND status = ?", record.ID, domain.ActivityActive).
		Updates(map[string]interface{}{"status": domain.ActivityCompleted, "end_time": now})
	if cas.Error != nil {
		return cas.Error
	}
	if cas.RowsAffected != 1 {
		return nil
	}

	return AdvanceProcessFunc(tx, item.ProcessID, actorID)
}

// onWorkItemExpired continues an expiry: create an escalated work item one
// authority level up, or report exhaustion and drive the process to
// TIMEOUT. The expired item's TIMEOUT record is already written by the
// tracker; escalation appends the ESCALATION record here.
func onWorkItemExpired(tx *gorm.DB, item *domain.WorkItem) error {
	var p domain.Process
	if err := tx.Where(&domain.Process{ID: item.ProcessID}).First(&p).Error; err != nil {
		return err
	}
	if p.Status.IsTerminal() {
		// sibling items of an already ended process just expire
		return nil
	}

	assignee, err := escalation.NextAssigneeFunc(item)
	if errors.Is(err, bizerror.ErrEscalationExhausted) {
		return TerminateProcessFunc(tx, item.ProcessID,
			fmt.Sprintf("work item %d expired at level %s, no higher authority exists",
				item.ID, item.ParticipantLevel.String()), 0)
	}
	if err != nil {
		return err
	}

	var record domain.Activity
	if err := tx.Where(&domain.Activity{ID: item.ActivityID}).First(&record).Error; err != nil {
		return err
	}
	if record.Status != domain.ActivityActive {
		// activity resolved by a peer work item meanwhile, nothing to escalate
		return nil
	}

	now := clock.Now()
	escalated, err := workitem.CreateWorkItemFunc(tx, &record, assignee.ParticipantID, assignee.Level,
		deadlineAfter(now, record.DueInSeconds))
	if err != nil {
		return err
	}

	depth := record.EscalationDepth + 1
	if err := tx.Model(&domain.Activity{}).Where("id = ?", record.ID).
		Updates(map[string]interface{}{"escalation_depth": depth}).Error; err != nil {
		return err
	}

	if _, err := auditlog.AppendLog(tx, item.ProcessID, auditlog.EventCategoryEscalation,
		fmt.Sprintf("work item %d escalated to participant %d at level %s as work item %d",
			item.ID, assignee.ParticipantID, assignee.Level.String(), escalated.ID), 0); err != nil {
		return err
	}

	return MarkEscalatedFunc(tx, item.ProcessID, depth)
}

func deadlineAfter(now types.Timestamp, dueInSeconds int64) types.Timestamp {
	if dueInSeconds <= 0 {
		return types.Timestamp{}
	}
	return types.Timestamp(now.Time().Add(time.Duration(dueInSeconds) * time.Second))
}
