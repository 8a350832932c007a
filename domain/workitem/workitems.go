package workitem

import (
	"caseflow/auditlog"
	"caseflow/bizerror"
	"caseflow/clock"
	"caseflow/domain"
	"caseflow/domain/participant"
	"caseflow/idgen"
	"caseflow/persistence"
	"caseflow/session"
	"fmt"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/sony/sonyflake"
)

var (
	workItemIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateWorkItemFunc       = CreateWorkItem
	CompleteWorkItemFunc     = CompleteWorkItem
	ScanExpiredFunc          = ScanExpired
	ListPendingWorkItemsFunc = ListPendingWorkItems

	// OnWorkItemResolvedFunc and OnWorkItemExpiredFunc are the activity
	// coordinator's continuation of a work item transition, running in the
	// same transaction. Wired by the activity package.
	OnWorkItemResolvedFunc func(tx *gorm.DB, item *domain.WorkItem, succeed bool, actorID types.ID) error
	OnWorkItemExpiredFunc  func(tx *gorm.DB, item *domain.WorkItem) error
)

// CreateWorkItem creates one PENDING assignment under an activity. The
// participant must resolve in the directory.
func CreateWorkItem(tx *gorm.DB, activity *domain.Activity, participantID types.ID,
	level participant.Level, deadline types.Timestamp) (*domain.WorkItem, error) {

	if _, err := participant.ResolveFunc(participantID); err != nil {
		return nil, err
	}

	item := domain.WorkItem{
		ID:         idgen.NextID(workItemIdWorker),
		ActivityID: activity.ID,
		ProcessID:  activity.ProcessID,

		ParticipantID:    participantID,
		ParticipantLevel: level,

		Status:     domain.WorkItemPending,
		Deadline:   deadline,
		CreateTime: clock.Now(),
	}
	if err := tx.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CompleteWorkItem resolves a PENDING work item by participant action.
// The PENDING -> COMPLETED transition is a compare-and-set on status: of
// concurrent callers only the first wins, the rest observe
// bizerror.ErrAlreadyResolved.
func CompleteWorkItem(id types.ID, c domain.WorkItemCompletion, s *session.Session) (*domain.WorkItem, error) {
	succeed := c.Succeed != nil && *c.Succeed

	var item domain.WorkItem
	var logRecord *auditlog.ProcessLog

	db := persistence.ActiveDataSourceManager.GormDB()
	err1 := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&domain.WorkItem{ID: id}).First(&item).Error; err != nil {
			return err
		}

		// single writer per process
		if err := lockProcessRow(tx, item.ProcessID); err != nil {
			return err
		}

		now := clock.Now()
		cas := tx.Model(&domain.WorkItem{}).
			Where("id = ? AND status = ?", id, domain.WorkItemPending).
			Updates(map[string]interface{}{"status": domain.WorkItemCompleted, "end_time": now})
		if cas.Error != nil {
			return cas.Error
		}
		if cas.RowsAffected != 1 {
			return bizerror.ErrAlreadyResolved
		}
		item.Status = domain.WorkItemCompleted
		item.EndTime = now

		var category auditlog.EventCategory = auditlog.EventCategoryApproval
		description := fmt.Sprintf("work item %d approved by participant %d", item.ID, s.Identity.ID)
		if !succeed {
			category = auditlog.EventCategoryRejection
			description = fmt.Sprintf("work item %d rejected by participant %d", item.ID, s.Identity.ID)
		}
		var err error
		logRecord, err = auditlog.AppendLog(tx, item.ProcessID, category, description, s.Identity.ID)
		if err != nil {
			return err
		}

		if OnWorkItemResolvedFunc != nil {
			return OnWorkItemResolvedFunc(tx, &item, succeed, s.Identity.ID)
		}
		return nil
	})
	if err1 != nil {
		return nil, err1
	}

	if auditlog.InvokeHandlersFunc != nil {
		auditlog.InvokeHandlersFunc(logRecord)
	}

	return &item, nil
}

// ScanExpired expires every PENDING work item whose deadline passed, at
// most limit items per pass. Each expiry is its own transaction guarded by
// a per-item compare-and-set, so repeated or concurrent sweeps never
// double-expire an item. A failing item is logged and skipped, the batch
// continues.
func ScanExpired(now types.Timestamp, limit int) ([]domain.WorkItem, error) {
	db := persistence.ActiveDataSourceManager.GormDB()

	candidates := []domain.WorkItem{}
	if err := db.Where("status = ? AND deadline != ? AND deadline < ?",
		domain.WorkItemPending, types.Timestamp{}, now).
		Order("deadline ASC").Limit(limit).Find(&candidates).Error; err != nil {
		return nil, err
	}

	expired := []domain.WorkItem{}
	for i := range candidates {
		item := candidates[i]
		won := false
		var logRecord *auditlog.ProcessLog

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := lockProcessRow(tx, item.ProcessID); err != nil {
				return err
			}

			cas := tx.Model(&domain.WorkItem{}).
				Where("id = ? AND status = ?", item.ID, domain.WorkItemPending).
				Updates(map[string]interface{}{"status": domain.WorkItemExpired, "end_time": now})
			if cas.Error != nil {
				return cas.Error
			}
			if cas.RowsAffected != 1 {
				// resolved meanwhile, not ours to expire
				return nil
			}
			won = true
			item.Status = domain.WorkItemExpired
			item.EndTime = now

			var err error
			logRecord, err = auditlog.AppendLog(tx, item.ProcessID, auditlog.EventCategoryTimeout,
				fmt.Sprintf("work item %d of participant %d missed deadline %s",
					item.ID, item.ParticipantID, item.Deadline.String()), 0)
			if err != nil {
				return err
			}

			if OnWorkItemExpiredFunc != nil {
				return OnWorkItemExpiredFunc(tx, &item)
			}
			return nil
		})
		if err != nil {
			logrus.Warnf("expire work item %d failed: %v", item.ID, err)
			continue
		}
		if won {
			expired = append(expired, item)
			if auditlog.InvokeHandlersFunc != nil {
				auditlog.InvokeHandlersFunc(logRecord)
			}
		}
	}
	return expired, nil
}

// ListPendingWorkItems returns the open assignments of one participant,
// nearest deadline first.
func ListPendingWorkItems(q domain.WorkItemQuery) ([]domain.WorkItem, error) {
	items := []domain.WorkItem{}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&domain.WorkItem{ParticipantID: q.ParticipantID, Status: domain.WorkItemPending}).
		Order("deadline ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func lockProcessRow(tx *gorm.DB, processID types.ID) error {
	var p domain.Process
	return tx.Set("gorm:query_option", "FOR UPDATE").
		Where(&domain.Process{ID: processID}).First(&p).Error
}
