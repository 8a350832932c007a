package escalation_test

import (
	"caseflow/bizerror"
	"caseflow/domain"
	"caseflow/domain/escalation"
	"caseflow/domain/participant"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("NextAssignee", func() {
	var (
		directory map[types.ID]*participant.Participant
	)

	BeforeEach(func() {
		// U1 -> S1 -> O1 -> A1
		directory = map[types.ID]*participant.Participant{
			10: {ID: 10, Name: "u1", Level: participant.User, EscalationTargetID: 20},
			20: {ID: 20, Name: "s1", Level: participant.Supervisor, EscalationTargetID: 30},
			30: {ID: 30, Name: "o1", Level: participant.ServiceOwner, EscalationTargetID: 40},
			40: {ID: 40, Name: "a1", Level: participant.DomainAdmin},
		}
		participant.ResolveFunc = func(id types.ID) (*participant.Participant, error) {
			p, found := directory[id]
			if !found {
				return nil, bizerror.ErrInvalidParticipant
			}
			return p, nil
		}
	})

	AfterEach(func() {
		participant.ResolveFunc = participant.Resolve
	})

	Describe("hierarchy walk", func() {
		It("should escalate one level up through the directory target", func() {
			assignee, err := escalation.NextAssignee(
				&domain.WorkItem{ParticipantID: 10, ParticipantLevel: participant.User})
			Expect(err).To(BeNil())
			Expect(*assignee).To(Equal(escalation.Assignee{ParticipantID: 20, Level: participant.Supervisor}))

			assignee, err = escalation.NextAssignee(
				&domain.WorkItem{ParticipantID: 20, ParticipantLevel: participant.Supervisor})
			Expect(err).To(BeNil())
			Expect(*assignee).To(Equal(escalation.Assignee{ParticipantID: 30, Level: participant.ServiceOwner}))

			assignee, err = escalation.NextAssignee(
				&domain.WorkItem{ParticipantID: 30, ParticipantLevel: participant.ServiceOwner})
			Expect(err).To(BeNil())
			Expect(*assignee).To(Equal(escalation.Assignee{ParticipantID: 40, Level: participant.DomainAdmin}))
		})
	})

	Describe("exhaustion", func() {
		It("should report exhausted at DomainAdmin level", func() {
			assignee, err := escalation.NextAssignee(
				&domain.WorkItem{ParticipantID: 40, ParticipantLevel: participant.DomainAdmin})
			Expect(assignee).To(BeNil())
			Expect(err).To(Equal(bizerror.ErrEscalationExhausted))
		})

		It("should report exhausted when the directory has no target", func() {
			directory[30].EscalationTargetID = 0
			assignee, err := escalation.NextAssignee(
				&domain.WorkItem{ParticipantID: 30, ParticipantLevel: participant.ServiceOwner})
			Expect(assignee).To(BeNil())
			Expect(err).To(Equal(bizerror.ErrEscalationExhausted))
		})

		It("should report exhausted when the target is not resolvable", func() {
			directory[30].EscalationTargetID = 999
			assignee, err := escalation.NextAssignee(
				&domain.WorkItem{ParticipantID: 30, ParticipantLevel: participant.ServiceOwner})
			Expect(assignee).To(BeNil())
			Expect(err).To(Equal(bizerror.ErrEscalationExhausted))
		})
	})

	Describe("unknown participant", func() {
		It("should surface directory lookup failure", func() {
			assignee, err := escalation.NextAssignee(
				&domain.WorkItem{ParticipantID: 999, ParticipantLevel: participant.User})
			Expect(assignee).To(BeNil())
			Expect(err).To(Equal(bizerror.ErrInvalidParticipant))
		})
	})
})
