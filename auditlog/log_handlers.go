package auditlog

import (
	"github.com/sirupsen/logrus"
)

/*
return nil if not support
*/
type LogHandler func(e *ProcessLog) *LogHandleResult

type LogHandleResult struct {
	Success           bool
	Message           string
	HandlerIdentifier string
}

var LogHandlers []LogHandler

var InvokeHandlersFunc = invokeHandlers

func invokeHandlers(record *ProcessLog) []LogHandleResult {
	results := []LogHandleResult{}
	if record == nil {
		return results
	}
	for _, handler := range LogHandlers {
		logrus.Debug("pre handle audit record ", record.ID)
		r := handler(record)

		if r == nil {
			continue
		}

		results = append(results, *r)

		if r.Success {
			logrus.Info("post handle audit record. ", r)
		} else {
			logrus.Error("post handler error. ", r)
		}
	}
	return results
}
