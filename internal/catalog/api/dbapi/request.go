package dbapi

import (
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
)

// AppRequest is a pending request for an application nobody has implemented
// yet. Its popularity is the count of its votes.
type AppRequest struct {
	db.Model
	Name        string `gorm:"not null;uniqueIndex"`
	Description string
	Requester   string `gorm:"not null"`

	Votes []Vote `gorm:"foreignKey:RequestID"`
}

type AppRequestList []*AppRequest

// Vote is one voter's support for a request. A voter votes for a given
// request at most once, enforced by the unique index.
type Vote struct {
	db.Model
	RequestID string `gorm:"not null;uniqueIndex:idx_votes_request_id_voter"`
	Voter     string `gorm:"not null;uniqueIndex:idx_votes_request_id_voter"`
}

type VoteList []*Vote
