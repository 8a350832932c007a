package session

import (
	"context"

	"github.com/fundwit/go-commons/types"
)

type Identity struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Nickname string   `json:"nickname"`
}

type Session struct {
	Context context.Context `json:"-"`

	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}

func (s *Session) Clone() Session {
	return Session{Token: s.Token, Identity: s.Identity}
}
