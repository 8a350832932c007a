package participant

import (
	"caseflow/bizerror"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathParticipants = "/v1/participants"
)

func RegisterParticipantsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathParticipants, middleWares...)
	g.POST("", handleRegisterParticipant)
	g.GET("", handleQueryParticipants)
}

func handleRegisterParticipant(c *gin.Context) {
	creation := ParticipantCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := RegisterParticipantFunc(creation)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleQueryParticipants(c *gin.Context) {
	records, err := QueryParticipantsFunc()
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}
