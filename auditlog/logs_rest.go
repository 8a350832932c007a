package auditlog

import (
	"caseflow/bizerror"
	"net/http"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

var (
	PathProcessLogs = "/v1/processes/:id/logs"
)

func RegisterLogsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProcessLogs, middleWares...)
	g.GET("", handleQueryProcessLogs)
}

func handleQueryProcessLogs(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := HistoryFunc(id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}
