package bookingsync

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"rental-manager/logger"
	propertyModel "rental-manager/models/property"
	reservationModel "rental-manager/models/reservation"
)

const syncActor = "beds24-sync"

// Fetcher retrieves the raw bookings CSV for a date window.
type Fetcher interface {
	FetchBookingsCSV(start, end time.Time) (string, error)
}

// Notifier sends the guest a link to the check-in form once their
// reservation first appears in a sync.
type Notifier interface {
	SendCheckInInvite(toEmail, guestName, propertyName, propertySlug string, checkInDate time.Time) error
}

// SyncCounts summarizes one reconciliation pass.
type SyncCounts struct {
	Created         int `json:"created"`
	Updated         int `json:"updated"`
	Cancelled       int `json:"cancelled"`
	MissingProperty int `json:"missing_property"`
}

// Service runs fetch -> normalize -> reconcile passes against the
// database. Notifier is optional; when nil, no invites are sent.
type Service struct {
	DB       *gorm.DB
	Fetcher  Fetcher
	Notifier Notifier
}

func NewService(db *gorm.DB, fetcher Fetcher) *Service {
	return &Service{
		DB:      db,
		Fetcher: fetcher,
	}
}

// FetchBookings fetches the window from Beds24 and normalizes the
// response. Transport failures are wrapped into *SyncError before any
// persistence is touched.
func (s *Service) FetchBookings(start, end time.Time, opts FilterOptions) ([]NormalizedBooking, error) {
	csvText, err := s.Fetcher.FetchBookingsCSV(start, end)
	if err != nil {
		return nil, &SyncError{Message: "failed to fetch Beds24 data", Err: err}
	}
	return ParseBookingsCSV(csvText, opts)
}

type pendingInvite struct {
	email        string
	guestName    string
	propertyName string
	propertySlug string
	checkIn      time.Time
}

// Reconcile upserts the bookings, marks previously-active reservations
// that vanished from the window as cancelled, and stamps the singleton
// sync-status row. The window passed here must be the same window the
// bookings were fetched for: the cancellation sweep treats any active
// reservation with a check-in inside [windowStart, windowEnd] that is
// absent from bookings as cancelled upstream, so sweeping a wider range
// than was fetched would cancel live bookings.
//
// When propertyID is set, bookings resolving to other properties are
// skipped silently (they belong to another property's sync scope) and
// the sweep is restricted to that property's rows.
func (s *Service) Reconcile(bookings []NormalizedBooking, windowStart, windowEnd time.Time, propertyID *uint) (SyncCounts, error) {
	var counts SyncCounts
	var invites []pendingInvite

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var properties []propertyModel.Property
		if err := tx.Find(&properties).Error; err != nil {
			return err
		}
		resolver, err := NewPropertyResolver(properties)
		if err != nil {
			return err
		}

		seen := make([]int64, 0, len(bookings))
		for _, b := range bookings {
			// Any id present in the feed is exempt from the sweep,
			// including ids that cannot be mapped to a property.
			seen = append(seen, b.Beds24BookID)

			prop, ok := resolver.Resolve(b.RoomID, b.PropertyKey)
			if !ok {
				counts.MissingProperty++
				continue
			}
			if propertyID != nil && prop.ID != *propertyID {
				continue
			}

			created, err := upsertReservation(tx, prop, b)
			if err != nil {
				return err
			}
			if created {
				counts.Created++
				if b.GuestEmail != "" {
					invites = append(invites, pendingInvite{
						email:        b.GuestEmail,
						guestName:    b.GuestName,
						propertyName: prop.Name,
						propertySlug: prop.Slug,
						checkIn:      b.CheckInDate,
					})
				}
			} else {
				counts.Updated++
			}
		}

		cancelled, err := sweepCancellations(tx, windowStart, windowEnd, propertyID, seen)
		if err != nil {
			return err
		}
		counts.Cancelled = cancelled

		// Mark the pass complete even when nothing changed.
		syncStatus := reservationModel.SyncStatus{
			ID:           reservationModel.SyncStatusID,
			LastSyncTime: time.Now(),
		}
		return tx.Save(&syncStatus).Error
	})
	if err != nil {
		return SyncCounts{}, err
	}

	if s.Notifier != nil {
		for _, inv := range invites {
			if err := s.Notifier.SendCheckInInvite(inv.email, inv.guestName, inv.propertyName, inv.propertySlug, inv.checkIn); err != nil {
				logger.Error(fmt.Sprintf("Failed to send check-in invite to %s", inv.email), err)
			}
		}
	}

	return counts, nil
}

// upsertReservation creates or fully overwrites the reservation keyed
// by the Beds24 booking id. Returns true when a new row was created.
func upsertReservation(tx *gorm.DB, prop *propertyModel.Property, b NormalizedBooking) (bool, error) {
	checkOut := b.CheckOutDate
	bookID := b.Beds24BookID

	var existing reservationModel.Reservation
	err := tx.Where("beds24_book_id = ?", bookID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		res := reservationModel.Reservation{
			Beds24BookID: &bookID,
			Status:       b.Status,
			TotalPrice:   b.TotalPrice,
			PropertyID:   prop.ID,
			CheckInDate:  b.CheckInDate,
			CheckOutDate: &checkOut,
			NumGuests:    b.AdultGuests + b.ChildGuests,
			GuestName:    b.GuestName,
			GuestEmail:   b.GuestEmail,
		}
		if err := tx.Create(&res).Error; err != nil {
			return false, err
		}
		ev := reservationModel.StatusEvent{
			ReservationID: res.ID,
			Status:        res.Status,
			CreatedBy:     syncActor,
		}
		return true, tx.Create(&ev).Error
	} else if err != nil {
		return false, err
	}

	statusChanged := existing.Status != b.Status

	existing.Status = b.Status
	existing.TotalPrice = b.TotalPrice
	existing.PropertyID = prop.ID
	existing.CheckInDate = b.CheckInDate
	existing.CheckOutDate = &checkOut
	existing.NumGuests = b.AdultGuests + b.ChildGuests
	existing.GuestName = b.GuestName
	existing.GuestEmail = b.GuestEmail

	if err := tx.Save(&existing).Error; err != nil {
		return false, err
	}

	if statusChanged {
		ev := reservationModel.StatusEvent{
			ReservationID: existing.ID,
			Status:        existing.Status,
			CreatedBy:     syncActor,
		}
		if err := tx.Create(&ev).Error; err != nil {
			return false, err
		}
	}

	return false, nil
}

// sweepCancellations marks still-active reservations inside the window
// that were absent from this fetch as cancelled. Disappearance is the
// only cancellation signal Beds24 gives us.
func sweepCancellations(tx *gorm.DB, windowStart, windowEnd time.Time, propertyID *uint, seen []int64) (int, error) {
	query := tx.
		Where("check_in_date >= ? AND check_in_date <= ?", windowStart, windowEnd).
		Where("status IN ?", reservationModel.ActiveStatuses())
	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	}
	if len(seen) > 0 {
		query = query.Where("beds24_book_id NOT IN ?", seen)
	}

	var stale []reservationModel.Reservation
	if err := query.Find(&stale).Error; err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]uint, len(stale))
	for i, r := range stale {
		ids[i] = r.ID
	}
	if err := tx.Model(&reservationModel.Reservation{}).
		Where("id IN ?", ids).
		Update("status", reservationModel.StatusCancelled.String()).Error; err != nil {
		return 0, err
	}

	for _, r := range stale {
		ev := reservationModel.StatusEvent{
			ReservationID: r.ID,
			Status:        reservationModel.StatusCancelled.String(),
			CreatedBy:     syncActor,
		}
		if err := tx.Create(&ev).Error; err != nil {
			return 0, err
		}
	}

	return len(stale), nil
}
