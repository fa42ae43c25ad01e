package reservation

import (
	"rental-manager/models/property"
	"time"

	"github.com/shopspring/decimal"
)

// Reservation is a booking row owned by the sync engine. Rows are keyed
// by the Beds24 booking id and fully overwritten on every sync pass;
// cancellation is a status change, never a delete.
type Reservation struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Beds24BookID *int64 `gorm:"unique" json:"beds24_book_id"`

	Status     string          `gorm:"type:varchar(50)" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"total_price"`

	// Foreign key for property relationship
	PropertyID uint              `gorm:"not null;index" json:"property_id"`
	Property   property.Property `gorm:"foreignKey:PropertyID" json:"property"`

	CheckInDate  time.Time  `gorm:"type:date;not null;index" json:"check_in_date"`
	CheckOutDate *time.Time `gorm:"type:date" json:"check_out_date"`
	NumGuests    int        `gorm:"not null;default:1" json:"num_guests"`

	GuestName  string `gorm:"type:varchar(255)" json:"guest_name"`
	GuestEmail string `gorm:"type:varchar(255)" json:"guest_email"`

	GuestRosterStatus RosterStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"guest_roster_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
