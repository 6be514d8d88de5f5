package model

import (
	"time"

	"github.com/google/uuid"
)

// IconPack is a purchasable catalog entry. Price is denominated in virtual
// currency units.
type IconPack struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	IconCount   int       `json:"icon_count"`
	PreviewURL  string    `json:"preview_url"`
	CreatedAt   time.Time `json:"created_at"`
}
