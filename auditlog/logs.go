package auditlog

import (
	"caseflow/clock"
	"caseflow/idgen"
	"caseflow/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	logIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	LogPersistCreateFunc = logPersistCreate
	HistoryFunc          = History
)

// AppendLog writes one audit record inside the transaction that performs
// the transition it records.
func AppendLog(tx *gorm.DB, processID types.ID, category EventCategory, description string, actorID types.ID) (*ProcessLog, error) {
	record := ProcessLog{
		ID:        idgen.NextID(logIdWorker),
		ProcessID: processID,

		EventCategory: category,
		Description:   description,
		ActorID:       actorID,

		Timestamp: clock.Now(),
	}
	if err := LogPersistCreateFunc(&record, tx); err != nil {
		return nil, err
	}
	return &record, nil
}

func logPersistCreate(record *ProcessLog, db *gorm.DB) error {
	return db.Create(record).Error
}

// History returns the audit records of a process, oldest first.
func History(processID types.ID) ([]ProcessLog, error) {
	logs := []ProcessLog{}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&ProcessLog{ProcessID: processID}).
		Order("timestamp ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
