package dbapi

import (
	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
)

type Tag struct {
	db.Model
	Name string `gorm:"not null;uniqueIndex"`
}

type TagList []*Tag

type CountryOfOrigin struct {
	db.Model
	// ISO 3166-1 alpha-2
	Code string `gorm:"not null;uniqueIndex"`
	Name string `gorm:"not null"`
}

type CountryOfOriginList []*CountryOfOrigin
