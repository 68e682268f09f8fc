package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID              gocql.UUID `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Price           float64    `json:"price"`
	OfferPercentage float64    `json:"offerPercentage"`
	Stock           int        `json:"stock"`
	Category        string     `json:"category"`
	ImageURLs       []string   `json:"images"`
	Tags            []string   `json:"tags"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
