package process

import (
	"caseflow/auditlog"
	"caseflow/bizerror"
	"caseflow/clock"
	"caseflow/domain"
	"caseflow/domain/activity"
	"caseflow/idgen"
	"caseflow/persistence"
	"caseflow/session"
	"errors"
	"fmt"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	processIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})
	stageIdWorker   = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateProcessFunc  = CreateProcess
	DetailProcessFunc  = DetailProcess
	QueryProcessesFunc = QueryProcesses
)

func init() {
	activity.AdvanceProcessFunc = AdvanceProcess
	activity.TerminateProcessFunc = TerminateProcess
	activity.MarkEscalatedFunc = MarkEscalated
}

// CreateProcess creates a PENDING process with its stage plan and starts
// the first stage.
func CreateProcess(c *domain.ProcessCreation, s *session.Session) (*domain.ProcessDetail, error) {
	if len(c.Stages) == 0 {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("at least one stage is required")}
	}

	var detail *domain.ProcessDetail
	var logRecord *auditlog.ProcessLog

	db := persistence.ActiveDataSourceManager.GormDB()
	err1 := db.Transaction(func(tx *gorm.DB) error {
		now := clock.Now()
		metadata := c.Metadata
		if metadata == nil {
			metadata = domain.Metadata{}
		}

		record := domain.Process{
			ID: idgen.NextID(processIdWorker),

			Type:        c.Type,
			ExternalRef: c.ExternalRef,
			Title:       c.Title,
			Priority:    c.Priority,

			Status:          domain.ProcessPending,
			EscalationLevel: 0,
			CurrentStage:    1,

			Metadata: metadata,

			CreateTime: now,
			UpdateTime: now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		stages := make([]domain.ProcessStage, 0, len(c.Stages))
		for idx, stageCreation := range c.Stages {
			stage := domain.ProcessStage{
				ID:        idgen.NextID(stageIdWorker),
				ProcessID: record.ID,

				Name: stageCreation.Name,
				Seq:  idx + 1,

				ParticipantIDs: stageCreation.ParticipantIDs,
				DueInSeconds:   stageCreation.DueInSeconds,
			}
			if err := tx.Create(&stage).Error; err != nil {
				return err
			}
			stages = append(stages, stage)
		}

		var err error
		logRecord, err = auditlog.AppendLog(tx, record.ID, auditlog.EventCategoryCreation,
			fmt.Sprintf("process %d created with %d stages", record.ID, len(stages)), s.Identity.ID)
		if err != nil {
			return err
		}

		started, err := activity.StartActivityFunc(tx, &record, &stages[0])
		if err != nil {
			return err
		}

		detail = &domain.ProcessDetail{Process: record, Stages: stages, Activities: []domain.Activity{*started}}
		return nil
	})
	if err1 != nil {
		return nil, err1
	}

	if auditlog.InvokeHandlersFunc != nil {
		auditlog.InvokeHandlersFunc(logRecord)
	}

	return detail, nil
}

func DetailProcess(id types.ID) (*domain.ProcessDetail, error) {
	detail := domain.ProcessDetail{}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&domain.Process{ID: id}).First(&detail.Process).Error; err != nil {
		return nil, err
	}
	if err := db.Where(&domain.ProcessStage{ProcessID: id}).Order("seq ASC").
		Find(&detail.Stages).Error; err != nil {
		return nil, err
	}
	if err := db.Where(&domain.Activity{ProcessID: id}).Order("seq ASC").
		Find(&detail.Activities).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func QueryProcesses(query *domain.ProcessQuery) ([]domain.Process, error) {
	processes := []domain.Process{}
	db := persistence.ActiveDataSourceManager.GormDB()

	q := db.Order("create_time DESC")
	if query.Type != "" {
		q = q.Where("type = ?", query.Type)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if err := q.Find(&processes).Error; err != nil {
		return nil, err
	}
	return processes, nil
}

// AdvanceProcess moves to the next stage after an activity completed
// successfully, or finishes the process with SUCCESS when the completed
// stage was the last one.
func AdvanceProcess(tx *gorm.DB, processID types.ID, actorID types.ID) error {
	record, err := lockProcess(tx, processID)
	if err != nil {
		return err
	}
	if record.Status.IsTerminal() {
		return bizerror.ErrProcessTerminated
	}

	now := clock.Now()

	var nextStage domain.ProcessStage
	err = tx.Where("process_id = ? AND seq > ?", processID, record.CurrentStage).
		Order("seq ASC").First(&nextStage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := tx.Model(&domain.Process{}).Where("id = ?", processID).
			Updates(map[string]interface{}{"status": domain.ProcessSuccess, "update_time": now}).Error; err != nil {
			return err
		}
		_, err = auditlog.AppendLog(tx, processID, auditlog.EventCategoryApproval,
			fmt.Sprintf("final stage %d completed, process succeeded", record.CurrentStage), actorID)
		return err
	}
	if err != nil {
		return err
	}

	if err := tx.Model(&domain.Process{}).Where("id = ?", processID).
		Updates(map[string]interface{}{"current_stage": nextStage.Seq, "update_time": now}).Error; err != nil {
		return err
	}
	if _, err := auditlog.AppendLog(tx, processID, auditlog.EventCategoryApproval,
		fmt.Sprintf("stage %d completed, advancing to stage %d %q",
			record.CurrentStage, nextStage.Seq, nextStage.Name), actorID); err != nil {
		return err
	}

	record.CurrentStage = nextStage.Seq
	_, err = activity.StartActivityFunc(tx, record, &nextStage)
	return err
}

// TerminateProcess drives a process to its TIMEOUT terminal state. Calling
// it on an already terminal process is a no-op.
func TerminateProcess(tx *gorm.DB, processID types.ID, description string, actorID types.ID) error {
	record, err := lockProcess(tx, processID)
	if err != nil {
		return err
	}
	if record.Status.IsTerminal() {
		return nil
	}

	if err := tx.Model(&domain.Process{}).Where("id = ?", processID).
		Updates(map[string]interface{}{"status": domain.ProcessTimeout, "update_time": clock.Now()}).Error; err != nil {
		return err
	}
	_, err = auditlog.AppendLog(tx, processID, auditlog.EventCategoryTimeout, description, actorID)
	return err
}

// MarkEscalated records that an activity of the process escalated. The
// escalation level only grows, it is the maximum level reached across the
// process's activities.
func MarkEscalated(tx *gorm.DB, processID types.ID, level int) error {
	record, err := lockProcess(tx, processID)
	if err != nil {
		return err
	}
	if record.Status.IsTerminal() {
		return bizerror.ErrProcessTerminated
	}

	escalationLevel := record.EscalationLevel
	if level > escalationLevel {
		escalationLevel = level
	}
	return tx.Model(&domain.Process{}).Where("id = ?", processID).
		Updates(map[string]interface{}{"status": domain.ProcessEscalated,
			"escalation_level": escalationLevel, "update_time": clock.Now()}).Error
}

func lockProcess(tx *gorm.DB, processID types.ID) (*domain.Process, error) {
	var record domain.Process
	if err := tx.Set("gorm:query_option", "FOR UPDATE").
		Where(&domain.Process{ID: processID}).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
