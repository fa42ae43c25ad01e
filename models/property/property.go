package property

import (
	"time"
)

// Property represents a rentable facility registered with Beds24.
// RoomID and Beds24PropertyKey are the two keyspaces the sync engine can
// resolve bookings through; at least one must be set for a property to
// receive synced reservations.
type Property struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	Slug string `gorm:"type:varchar(255);not null;unique" json:"slug"`

	RoomID            *int64  `gorm:"unique" json:"room_id,omitempty"`
	Beds24PropertyKey *string `gorm:"type:varchar(255)" json:"beds24_property_key,omitempty"`

	ManagementType string  `gorm:"type:varchar(20);not null;default:'owned'" json:"management_type"`
	GoogleSheetsID *string `gorm:"type:varchar(255)" json:"google_sheets_id,omitempty"`

	// Guest check-in form assigned to this facility, if any.
	FormTemplateID *uint `json:"form_template_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Property model
func (Property) TableName() string {
	return "properties"
}
