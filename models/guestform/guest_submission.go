package guestform

import (
	"rental-manager/models/reservation"
	"time"

	"github.com/google/uuid"
)

// Submission statuses
const (
	SubmissionPending   = "pending"
	SubmissionCompleted = "completed"
)

// GuestSubmission links a reservation to the roster form a guest fills
// in. The UUID token is the only credential a guest needs to access
// their form.
type GuestSubmission struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for reservation relationship
	ReservationID uint                    `gorm:"not null;unique" json:"reservation_id"`
	Reservation   reservation.Reservation `gorm:"foreignKey:ReservationID" json:"reservation"`

	Token         uuid.UUID `gorm:"type:uuid;not null;unique" json:"token"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SubmittedData *string   `gorm:"type:jsonb" json:"submitted_data,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the GuestSubmission model
func (GuestSubmission) TableName() string {
	return "guest_submissions"
}
