package search

import (
	"caseflow/bizerror"
	"caseflow/session"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathProcessSearch = "/v1/process-search"
)

func RegisterProcessSearchRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProcessSearch, middleWares...)
	g.GET("", handleSearchProcesses)
}

func handleSearchProcesses(c *gin.Context) {
	query := ProcessSearchQuery{}
	if err := c.ShouldBindWith(&query, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := SearchProcessesFunc(query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}
