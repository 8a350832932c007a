package workitem

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
	PathWorkItems = "/v1/work-items"
)

func RegisterWorkItemsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathWorkItems, middleWares...)
	g.GET("", handleListPendingWorkItems)
	g.POST("/:id/completion", handleCompleteWorkItem)
}

func handleListPendingWorkItems(c *gin.Context) {
	query := domain.WorkItemQuery{}
	if err := c.ShouldBindWith(&query, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := ListPendingWorkItemsFunc(query)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleCompleteWorkItem(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	completion := domain.WorkItemCompletion{}
	if err := c.ShouldBindBodyWith(&completion, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CompleteWorkItemFunc(id, completion, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}
