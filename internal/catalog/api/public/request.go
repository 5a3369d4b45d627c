package public

import (
	"time"
)

type AppRequestPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Requester   string `json:"requester"`
}

type AppRequest struct {
	Id          string    `json:"id"`
	Kind        string    `json:"kind"`
	Href        string    `json:"href"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Requester   string    `json:"requester"`
	Votes       int64     `json:"votes"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type AppRequestList struct {
	Kind  string       `json:"kind"`
	Page  int32        `json:"page"`
	Size  int32        `json:"size"`
	Total int32        `json:"total"`
	Items []AppRequest `json:"items"`
}

type VotePayload struct {
	Voter string `json:"voter"`
}
