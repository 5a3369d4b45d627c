package public

import (
	"time"
)

type Application struct {
	Id          string    `json:"id"`
	Kind        string    `json:"kind"`
	Href        string    `json:"href"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name,omitempty"`
	Description string    `json:"description,omitempty"`
	Phase       string    `json:"phase"`
	Tags        []string  `json:"tags,omitempty"`
	Countries   []string  `json:"countries_of_origin,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	ModifiedAt  time.Time `json:"modified_at,omitempty"`

	Implementations []Implementation `json:"implementations,omitempty"`
}

type ApplicationList struct {
	Kind  string        `json:"kind"`
	Page  int32         `json:"page"`
	Size  int32         `json:"size"`
	Total int32         `json:"total"`
	Items []Application `json:"items"`
}

type Implementation struct {
	Id            string `json:"id"`
	Kind          string `json:"kind"`
	Href          string `json:"href"`
	Name          string `json:"name"`
	DisplayName   string `json:"display_name,omitempty"`
	Maintainer    string `json:"maintainer,omitempty"`
	Framework     string `json:"framework"`
	License       string `json:"license,omitempty"`
	TicketingLink string `json:"ticketing_link,omitempty"`
	ApplicationId string `json:"application_id"`

	Versions []ConnectorVersion `json:"versions,omitempty"`
}
