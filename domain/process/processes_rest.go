package process

import (
	"caseflow/bizerror"
	"caseflow/domain"
	"caseflow/session"
	"net/http"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathProcesses = "/v1/processes"
)

func RegisterProcessesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProcesses, middleWares...)
	g.POST("", handleCreateProcess)
	g.GET("", handleQueryProcesses)
	g.GET("/:id", handleDetailProcess)
}

func handleCreateProcess(c *gin.Context) {
	creation := domain.ProcessCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateProcessFunc(&creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleQueryProcesses(c *gin.Context) {
	query := domain.ProcessQuery{}
	if err := c.ShouldBindWith(&query, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := QueryProcessesFunc(&query)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleDetailProcess(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := DetailProcessFunc(id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}
