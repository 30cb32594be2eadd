package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	VillaAvailable   = "available"
	VillaBooked      = "booked"
	VillaMaintenance = "maintenance"
)

// Facilities is the fixed set of boolean flags shown on the villa card.
type Facilities struct {
	Bathroom bool `json:"bathroom"`
	Wifi     bool `json:"wifi"`
	Bed      bool `json:"bed"`
	Parking  bool `json:"parking"`
	Kitchen  bool `json:"kitchen"`
	AC       bool `json:"ac"`
	TV       bool `json:"tv"`
	Pool     bool `json:"pool"`
}

// VillaImage points at an externally hosted image.
type VillaImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type Villa struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Price and Capacity arrive as form strings from the dashboard and are
	// stored as-is; the booking amount carries the numeric money value.
	Price    string `gorm:"size:64" json:"price"`
	Capacity string `gorm:"size:32" json:"capacity"`

	Status string `gorm:"size:32;default:available" json:"status"`

	// Owner is the display username; OwnerID is the stable link used for
	// owner-scoped reporting.
	Owner   string `gorm:"size:150" json:"owner"`
	OwnerID uint   `gorm:"index;column:owner_id" json:"owner_id"`

	Facilities datatypes.JSONType[Facilities]   `gorm:"column:facilities" json:"facilities"`
	Images     datatypes.JSONType[[]VillaImage] `gorm:"column:images" json:"images"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidVillaStatus reports whether s is one of the three allowed states.
func ValidVillaStatus(s string) bool {
	return s == VillaAvailable || s == VillaBooked || s == VillaMaintenance
}
