package participant

import (
	"caseflow/bizerror"
	"caseflow/clock"
	"caseflow/idgen"
	"caseflow/persistence"
	"errors"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/patrickmn/go-cache"
	"github.com/sony/sonyflake"
)

// Participant is a directory record: who a participant is, at which
// authority level it operates and who to escalate to when it misses a
// deadline.
type Participant struct {
	ID types.ID `json:"id"`

	Name  string `json:"name" gorm:"unique_index:uni_participant_name"`
	Level Level  `json:"level"`

	EscalationTargetID types.ID `json:"escalationTargetId"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (r *Participant) TableName() string {
	return "participants"
}

type ParticipantCreation struct {
	Name               string   `json:"name" binding:"required,lte=255"`
	Level              Level    `json:"level" binding:"required"`
	EscalationTargetID types.ID `json:"escalationTargetId"`
}

var (
	participantIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})
	directoryCache      = cache.New(5*time.Minute, 1*time.Minute)

	ResolveFunc            = Resolve
	RegisterParticipantFunc = RegisterParticipant
	QueryParticipantsFunc  = QueryParticipants
)

// Resolve looks a participant up in the directory, read-through cached.
func Resolve(id types.ID) (*Participant, error) {
	if cached, found := directoryCache.Get(id.String()); found {
		if p, ok := cached.(*Participant); ok {
			return p, nil
		}
	}

	var p Participant
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&Participant{ID: id}).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bizerror.ErrInvalidParticipant
		}
		return nil, err
	}
	directoryCache.SetDefault(id.String(), &p)
	return &p, nil
}

func RegisterParticipant(c ParticipantCreation) (*Participant, error) {
	if !c.Level.IsValid() {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("unknown participant level")}
	}

	p := Participant{ID: idgen.NextID(participantIdWorker),
		Name: c.Name, Level: c.Level, EscalationTargetID: c.EscalationTargetID,
		CreateTime: clock.Now()}
	if err := persistence.ActiveDataSourceManager.GormDB().Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func QueryParticipants() ([]Participant, error) {
	participants := []Participant{}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Order("ID ASC").Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// CleanDirectoryCache drops cached directory entries, for tests.
func CleanDirectoryCache() {
	directoryCache.Flush()
}
