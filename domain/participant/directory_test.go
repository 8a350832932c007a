package participant_test

import (
	"testing"

	"caseflow/bizerror"
	"caseflow/domain/participant"
	"caseflow/persistence"
	"caseflow/testinfra"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func setup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("caseflow")
	*testDatabase = db
	Expect(db.DS.GormDB().AutoMigrate(&participant.Participant{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS
	participant.CleanDirectoryCache()
}

func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	participant.CleanDirectoryCache()
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func TestRegisterParticipant(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should be able to register a participant", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		record, err := participant.RegisterParticipant(participant.ParticipantCreation{
			Name: "u1", Level: participant.User, EscalationTargetID: 20})
		Expect(err).To(BeNil())
		Expect(record.ID).ToNot(BeZero())
		Expect(record.Name).To(Equal("u1"))
		Expect(record.Level).To(Equal(participant.User))
		Expect(record.EscalationTargetID).To(Equal(types.ID(20)))
		Expect(record.CreateTime.IsZero()).To(BeFalse())
	})

	t.Run("should refuse an unknown level", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		_, err := participant.RegisterParticipant(participant.ParticipantCreation{
			Name: "x1", Level: participant.Level(9)})
		Expect(err).ToNot(BeNil())
		_, ok := err.(*bizerror.ErrBadParam)
		Expect(ok).To(BeTrue())
	})
}

func TestResolve(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should resolve through the database and then the cache", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)
		db := testDatabase.DS.GormDB()

		record, err := participant.RegisterParticipant(participant.ParticipantCreation{
			Name: "s1", Level: participant.Supervisor, EscalationTargetID: 30})
		Expect(err).To(BeNil())

		resolved, err := participant.Resolve(record.ID)
		Expect(err).To(BeNil())
		Expect(resolved.Name).To(Equal("s1"))
		Expect(resolved.Level).To(Equal(participant.Supervisor))

		// the cached entry survives a direct database change
		Expect(db.Model(&participant.Participant{}).Where("id = ?", record.ID).
			Update("name", "renamed").Error).To(BeNil())
		resolved, err = participant.Resolve(record.ID)
		Expect(err).To(BeNil())
		Expect(resolved.Name).To(Equal("s1"))

		participant.CleanDirectoryCache()
		resolved, err = participant.Resolve(record.ID)
		Expect(err).To(BeNil())
		Expect(resolved.Name).To(Equal("renamed"))
	})

	t.Run("should report unknown participants", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		_, err := participant.Resolve(types.ID(9999))
		Expect(err).To(Equal(bizerror.ErrInvalidParticipant))
	})
}

func TestQueryParticipants(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should list directory records ordered by id", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)
		db := testDatabase.DS.GormDB()

		now := types.CurrentTimestamp()
		for _, p := range []participant.Participant{
			{ID: 30, Name: "o1", Level: participant.ServiceOwner, CreateTime: now},
			{ID: 10, Name: "u1", Level: participant.User, EscalationTargetID: 20, CreateTime: now},
		} {
			record := p
			Expect(db.Create(&record).Error).To(BeNil())
		}

		records, err := participant.QueryParticipants()
		Expect(err).To(BeNil())
		Expect(len(records)).To(Equal(2))
		Expect(records[0].ID).To(Equal(types.ID(10)))
		Expect(records[1].ID).To(Equal(types.ID(30)))
	})
}
