package auditlog_test

import (
	"testing"

	"caseflow/auditlog"

	"github.com/stretchr/testify/assert"
)

func TestInvokeHandlers(t *testing.T) {
	originHandlers := auditlog.LogHandlers
	defer func() { auditlog.LogHandlers = originHandlers }()

	t.Run("should do nothing without a record", func(t *testing.T) {
		invoked := 0
		auditlog.LogHandlers = []auditlog.LogHandler{
			func(e *auditlog.ProcessLog) *auditlog.LogHandleResult {
				invoked++
				return &auditlog.LogHandleResult{Success: true}
			},
		}

		results := auditlog.InvokeHandlersFunc(nil)
		assert.Empty(t, results)
		assert.Zero(t, invoked)
	})

	t.Run("should collect results of supporting handlers only", func(t *testing.T) {
		auditlog.LogHandlers = []auditlog.LogHandler{
			func(e *auditlog.ProcessLog) *auditlog.LogHandleResult {
				return nil
			},
			func(e *auditlog.ProcessLog) *auditlog.LogHandleResult {
				return &auditlog.LogHandleResult{Success: true, HandlerIdentifier: "h1"}
			},
			func(e *auditlog.ProcessLog) *auditlog.LogHandleResult {
				return &auditlog.LogHandleResult{Success: false, Message: "some error", HandlerIdentifier: "h2"}
			},
		}

		results := auditlog.InvokeHandlersFunc(&auditlog.ProcessLog{ID: 1, ProcessID: 100})
		assert.Equal(t, 2, len(results))
		assert.Equal(t, "h1", results[0].HandlerIdentifier)
		assert.True(t, results[0].Success)
		assert.Equal(t, "h2", results[1].HandlerIdentifier)
		assert.False(t, results[1].Success)
		assert.Equal(t, "some error", results[1].Message)
	})
}
