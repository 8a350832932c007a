package indices

import (
	"caseflow/auditlog"
	"caseflow/client/es"
	"caseflow/domain"
	"caseflow/persistence"
	"caseflow/session"
	"context"
	"fmt"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

var (
	ProcessIndexName = "processes"

	IndexProcessesFunc = IndexProcesses
)

type ProcessDocument struct {
	domain.Process
}

type BatchActionError map[types.ID]error

func (e BatchActionError) Error() string {
	return fmt.Sprintf("%v", map[types.ID]error(e))
}

func backgroundSession() *session.Session {
	return &session.Session{Context: context.Background()}
}

func IndexProcesses(processes []domain.Process) error {
	docs := make([]ProcessDocument, 0, len(processes))
	for _, p := range processes {
		docs = append(docs, ProcessDocument{Process: p})
	}

	if err := saveProcessDocuments(docs); err != nil {
		return err
	}
	return nil
}

func saveProcessDocuments(docs []ProcessDocument) BatchActionError {
	errs := BatchActionError{}

	for _, doc := range docs {
		if err := es.IndexFunc(ProcessIndexName, doc.ID, doc, backgroundSession()); err != nil {
			errs[doc.ID] = err
			logrus.Warnf("index process %d %s\n", doc.ID, err)
		} else {
			logrus.Infof("index process %d successfully\n", doc.ID)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// auditLogHandler keeps the search index in step with the audit stream:
// every committed lifecycle record triggers a re-index of its process.
// Index failures never fail the recording transaction, they surface in the
// handler result only.
func auditLogHandler(record *auditlog.ProcessLog) *auditlog.LogHandleResult {
	result := auditlog.LogHandleResult{HandlerIdentifier: "processIndexSync", Success: true}

	var p domain.Process
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&domain.Process{ID: record.ProcessID}).First(&p).Error; err != nil {
		result.Success = false
		result.Message = err.Error()
		return &result
	}
	if err := IndexProcessesFunc([]domain.Process{p}); err != nil {
		result.Success = false
		result.Message = err.Error()
	}
	return &result
}
