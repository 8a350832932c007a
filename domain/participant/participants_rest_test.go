package participant_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"caseflow/bizerror"
	"caseflow/domain/participant"
	"caseflow/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestRegisterParticipantAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	participant.RegisterParticipantsRestAPI(router)

	t.Run("should be able to validate parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, participant.PathParticipants, strings.NewReader("{}"))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(ContainSubstring(`"code":"common.bad_param"`))
		Expect(body).To(ContainSubstring("'ParticipantCreation.Name' Error:Field validation for 'Name' failed on the 'required' tag"))
		Expect(body).To(ContainSubstring("'ParticipantCreation.Level' Error:Field validation for 'Level' failed on the 'required' tag"))
	})

	t.Run("should be able to handle registration successfully", func(t *testing.T) {
		demoTime := types.TimestampOfDate(2025, 1, 1, 1, 0, 0, 0, time.Now().Location())
		timeBytes, err := demoTime.Time().MarshalJSON()
		Expect(err).To(BeNil())
		timeString := strings.Trim(string(timeBytes), `"`)

		var c1 participant.ParticipantCreation
		participant.RegisterParticipantFunc = func(c participant.ParticipantCreation) (*participant.Participant, error) {
			c1 = c
			return &participant.Participant{ID: 10, Name: c.Name, Level: c.Level,
				EscalationTargetID: c.EscalationTargetID, CreateTime: demoTime}, nil
		}
		defer func() { participant.RegisterParticipantFunc = participant.RegisterParticipant }()

		req := httptest.NewRequest(http.MethodPost, participant.PathParticipants,
			strings.NewReader(`{"name":"u1", "level":1, "escalationTargetId":"20"}`))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"id":"10", "name":"u1", "level":1, "escalationTargetId":"20",
			"createTime":"` + timeString + `"}`))
		Expect(c1).To(Equal(participant.ParticipantCreation{Name: "u1", Level: participant.User,
			EscalationTargetID: 20}))
	})
}

func TestQueryParticipantsAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	participant.RegisterParticipantsRestAPI(router)

	t.Run("should be able to handle error", func(t *testing.T) {
		participant.QueryParticipantsFunc = func() ([]participant.Participant, error) {
			return nil, errors.New("some error")
		}
		defer func() { participant.QueryParticipantsFunc = participant.QueryParticipants }()

		req := httptest.NewRequest(http.MethodGet, participant.PathParticipants, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusInternalServerError))
		Expect(body).To(MatchJSON(`{"code":"common.internal_server_error", "message":"some error", "data":null}`))
	})

	t.Run("should be able to handle query successfully", func(t *testing.T) {
		demoTime := types.TimestampOfDate(2025, 1, 1, 1, 0, 0, 0, time.Now().Location())
		timeBytes, err := demoTime.Time().MarshalJSON()
		Expect(err).To(BeNil())
		timeString := strings.Trim(string(timeBytes), `"`)

		participant.QueryParticipantsFunc = func() ([]participant.Participant, error) {
			return []participant.Participant{
				{ID: 10, Name: "u1", Level: participant.User, EscalationTargetID: 20, CreateTime: demoTime},
			}, nil
		}
		defer func() { participant.QueryParticipantsFunc = participant.QueryParticipants }()

		req := httptest.NewRequest(http.MethodGet, participant.PathParticipants, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`[{"id":"10", "name":"u1", "level":1, "escalationTargetId":"20",
			"createTime":"` + timeString + `"}]`))
	})
}
