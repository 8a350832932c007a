package indices

import (
	"caseflow/auditlog"
	"caseflow/domain"
	"caseflow/persistence"

	cron "github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// BootstrapProcessIndices registers the audit-stream index handler and
// schedules the nightly full re-sync.
func BootstrapProcessIndices() {
	auditlog.LogHandlers = append(auditlog.LogHandlers, auditLogHandler)

	crontab := cron.New(cron.WithSeconds())
	crontab.AddFunc("0 0 23 * * ?", indicesFullSync)
	crontab.Start()
}

func indicesFullSync() {
	page := 1
	pageSize := 500

	db := persistence.ActiveDataSourceManager.GormDB()

	for {
		processes := []domain.Process{}
		if err := db.Order("ID ASC").Offset((page - 1) * pageSize).Limit(pageSize).
			Find(&processes).Error; err != nil {
			logrus.Errorf("fully index: page = %d, pageSize = %d, err = %v", page, pageSize, err)
			break
		}

		if len(processes) == 0 {
			logrus.Infof("fully index: there are no more processes to index")
			break
		}

		if err := IndexProcessesFunc(processes); err != nil {
			logrus.Errorf("fully index: page = %d, err = %v", page, err)
		}
		page++
	}
}
