package bookingsync

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	propertyModel "rental-manager/models/property"
	reservationModel "rental-manager/models/reservation"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&propertyModel.Property{},
		&reservationModel.Reservation{},
		&reservationModel.StatusEvent{},
		&reservationModel.SyncStatus{},
	))

	return db
}

func seedProperty(t *testing.T, db *gorm.DB, name, slug string, roomID int64) propertyModel.Property {
	t.Helper()

	prop := propertyModel.Property{
		Name:           name,
		Slug:           slug,
		RoomID:         &roomID,
		ManagementType: "owned",
	}
	require.NoError(t, db.Create(&prop).Error)
	return prop
}

func makeBooking(id int64, roomID, status string, checkIn time.Time) NormalizedBooking {
	return NormalizedBooking{
		Beds24BookID: id,
		RoomID:       roomID,
		Status:       status,
		TotalPrice:   decimal.NewFromInt(12000),
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.AddDate(0, 0, 2),
		AdultGuests:  2,
		GuestName:    "Test Guest",
	}
}

func testWindow() (time.Time, time.Time) {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
}

func TestReconcileCreatesThenUpdates(t *testing.T) {
	db := setupTestDB(t)
	seedProperty(t, db, "Villa Sakura", "villa-sakura", 10)
	svc := NewService(db, nil)
	start, end := testWindow()

	checkIn := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	bookings := []NormalizedBooking{
		makeBooking(1, "10", "Confirmed", checkIn),
		makeBooking(2, "10", "New", checkIn.AddDate(0, 0, 5)),
	}

	counts, err := svc.Reconcile(bookings, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Created)
	assert.Equal(t, 0, counts.Updated)
	assert.Equal(t, 0, counts.Cancelled)
	assert.Equal(t, 0, counts.MissingProperty)

	// The same feed again must update in place, never duplicate.
	counts, err = svc.Reconcile(bookings, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Created)
	assert.Equal(t, 2, counts.Updated)

	var total int64
	require.NoError(t, db.Model(&reservationModel.Reservation{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestReconcileOverwritesChangedFields(t *testing.T) {
	db := setupTestDB(t)
	seedProperty(t, db, "Villa Sakura", "villa-sakura", 10)
	svc := NewService(db, nil)
	start, end := testWindow()

	checkIn := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	booking := makeBooking(1, "10", "New", checkIn)
	_, err := svc.Reconcile([]NormalizedBooking{booking}, start, end, nil)
	require.NoError(t, err)

	booking.Status = "Confirmed"
	booking.TotalPrice = decimal.NewFromInt(15000)
	booking.AdultGuests = 3
	counts, err := svc.Reconcile([]NormalizedBooking{booking}, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Updated)

	var res reservationModel.Reservation
	require.NoError(t, db.Where("beds24_book_id = ?", int64(1)).First(&res).Error)
	assert.Equal(t, "Confirmed", res.Status)
	assert.True(t, decimal.NewFromInt(15000).Equal(res.TotalPrice))
	assert.Equal(t, 3, res.NumGuests)

	// One event for the create, one for the status change.
	var events []reservationModel.StatusEvent
	require.NoError(t, db.Where("reservation_id = ?", res.ID).Order("id").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, "New", events[0].Status)
	assert.Equal(t, "Confirmed", events[1].Status)
	assert.Equal(t, "beds24-sync", events[1].CreatedBy)
}

func TestReconcileSweepsVanishedBookings(t *testing.T) {
	db := setupTestDB(t)
	seedProperty(t, db, "Villa Sakura", "villa-sakura", 10)
	svc := NewService(db, nil)
	start, end := testWindow()

	checkIn := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	first := makeBooking(1, "10", "Confirmed", checkIn)
	second := makeBooking(2, "10", "Confirmed", checkIn.AddDate(0, 0, 5))
	_, err := svc.Reconcile([]NormalizedBooking{first, second}, start, end, nil)
	require.NoError(t, err)

	// Booking 1 disappears from the next full-window fetch.
	counts, err := svc.Reconcile([]NormalizedBooking{second}, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Cancelled)

	var res reservationModel.Reservation
	require.NoError(t, db.Where("beds24_book_id = ?", int64(1)).First(&res).Error)
	assert.Equal(t, "Cancelled", res.Status)

	var ev reservationModel.StatusEvent
	require.NoError(t, db.Where("reservation_id = ? AND status = ?", res.ID, "Cancelled").First(&ev).Error)
	assert.Equal(t, "beds24-sync", ev.CreatedBy)

	// A cancelled row is no longer active; the next sweep leaves it alone.
	counts, err = svc.Reconcile([]NormalizedBooking{second}, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Cancelled)
}

func TestReconcileSweepIgnoresCheckInsOutsideWindow(t *testing.T) {
	db := setupTestDB(t)
	seedProperty(t, db, "Villa Sakura", "villa-sakura", 10)
	svc := NewService(db, nil)
	start, end := testWindow()

	outside := makeBooking(1, "10", "Confirmed", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	_, err := svc.Reconcile([]NormalizedBooking{outside}, start, outside.CheckInDate, nil)
	require.NoError(t, err)

	// Re-sync the narrower window; the 2026 reservation is out of range
	// and must not be treated as vanished.
	counts, err := svc.Reconcile(nil, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Cancelled)

	var res reservationModel.Reservation
	require.NoError(t, db.Where("beds24_book_id = ?", int64(1)).First(&res).Error)
	assert.Equal(t, "Confirmed", res.Status)
}

func TestReconcileCountsUnmappedBookings(t *testing.T) {
	db := setupTestDB(t)
	seedProperty(t, db, "Villa Sakura", "villa-sakura", 10)
	svc := NewService(db, nil)
	start, end := testWindow()

	checkIn := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	counts, err := svc.Reconcile([]NormalizedBooking{
		makeBooking(1, "99", "Confirmed", checkIn),
	}, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.MissingProperty)
	assert.Equal(t, 0, counts.Created)

	var total int64
	require.NoError(t, db.Model(&reservationModel.Reservation{}).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}

func TestReconcileDoesNotSweepUnmappedFeedRows(t *testing.T) {
	db := setupTestDB(t)
	seedProperty(t, db, "Villa Sakura", "villa-sakura", 10)
	svc := NewService(db, nil)
	start, end := testWindow()

	checkIn := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.Reconcile([]NormalizedBooking{
		makeBooking(1, "10", "Confirmed", checkIn),
	}, start, end, nil)
	require.NoError(t, err)

	// The same booking id comes back under a room that is no longer
	// registered. It was present in the feed, so it must not be treated
	// as vanished.
	counts, err := svc.Reconcile([]NormalizedBooking{
		makeBooking(1, "99", "Confirmed", checkIn),
	}, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.MissingProperty)
	assert.Equal(t, 0, counts.Cancelled)

	var res reservationModel.Reservation
	require.NoError(t, db.Where("beds24_book_id = ?", int64(1)).First(&res).Error)
	assert.Equal(t, "Confirmed", res.Status)
}

func TestReconcilePropertyFilterScopesUpsertsAndSweep(t *testing.T) {
	db := setupTestDB(t)
	propA := seedProperty(t, db, "Villa Sakura", "villa-sakura", 10)
	propB := seedProperty(t, db, "Ocean Loft", "ocean-loft", 20)
	svc := NewService(db, nil)
	start, end := testWindow()

	checkIn := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	bookingA := makeBooking(1, "10", "Confirmed", checkIn)
	bookingB := makeBooking(2, "20", "Confirmed", checkIn)

	// Seed both properties with an unscoped pass.
	_, err := svc.Reconcile([]NormalizedBooking{bookingA, bookingB}, start, end, nil)
	require.NoError(t, err)

	// A scoped pass for property A: B's booking is out of scope, not
	// missing, and B's existing reservation must survive the sweep even
	// though its id is absent from the feed.
	counts, err := svc.Reconcile([]NormalizedBooking{bookingA}, start, end, &propA.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Updated)
	assert.Equal(t, 0, counts.Cancelled)
	assert.Equal(t, 0, counts.MissingProperty)

	var resB reservationModel.Reservation
	require.NoError(t, db.Where("property_id = ?", propB.ID).First(&resB).Error)
	assert.Equal(t, "Confirmed", resB.Status)

	// Bookings resolving to another property are skipped silently.
	counts, err = svc.Reconcile([]NormalizedBooking{bookingA, bookingB}, start, end, &propA.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Updated)
	assert.Equal(t, 0, counts.MissingProperty)
}

func TestReconcileStampsSyncStatus(t *testing.T) {
	db := setupTestDB(t)
	seedProperty(t, db, "Villa Sakura", "villa-sakura", 10)
	svc := NewService(db, nil)
	start, end := testWindow()

	before := time.Now().Add(-time.Second)
	_, err := svc.Reconcile(nil, start, end, nil)
	require.NoError(t, err)

	var status reservationModel.SyncStatus
	require.NoError(t, db.First(&status, reservationModel.SyncStatusID).Error)
	assert.True(t, status.LastSyncTime.After(before))

	// A second pass reuses the singleton row.
	_, err = svc.Reconcile(nil, start, end, nil)
	require.NoError(t, err)

	var total int64
	require.NoError(t, db.Model(&reservationModel.SyncStatus{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestReconcileFailsWithoutMappableProperties(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil)
	start, end := testWindow()

	_, err := svc.Reconcile(nil, start, end, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMappableProperties)

	// The transaction rolled back; no sync timestamp was written.
	var total int64
	require.NoError(t, db.Model(&reservationModel.SyncStatus{}).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}

type fakeNotifier struct {
	invited []string
	err     error
}

func (f *fakeNotifier) SendCheckInInvite(toEmail, guestName, propertyName, propertySlug string, checkInDate time.Time) error {
	f.invited = append(f.invited, toEmail)
	return f.err
}

func TestReconcileInvitesOnlyCreatedGuestsWithEmail(t *testing.T) {
	db := setupTestDB(t)
	seedProperty(t, db, "Villa Sakura", "villa-sakura", 10)
	svc := NewService(db, nil)
	notifier := &fakeNotifier{}
	svc.Notifier = notifier
	start, end := testWindow()

	checkIn := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	withEmail := makeBooking(1, "10", "Confirmed", checkIn)
	withEmail.GuestEmail = "guest@example.com"
	withoutEmail := makeBooking(2, "10", "Confirmed", checkIn.AddDate(0, 0, 5))

	_, err := svc.Reconcile([]NormalizedBooking{withEmail, withoutEmail}, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"guest@example.com"}, notifier.invited)

	// Updates never re-invite.
	_, err = svc.Reconcile([]NormalizedBooking{withEmail, withoutEmail}, start, end, nil)
	require.NoError(t, err)
	assert.Len(t, notifier.invited, 1)
}

func TestReconcileSurvivesNotifierFailure(t *testing.T) {
	db := setupTestDB(t)
	seedProperty(t, db, "Villa Sakura", "villa-sakura", 10)
	svc := NewService(db, nil)
	svc.Notifier = &fakeNotifier{err: errors.New("mail provider down")}
	start, end := testWindow()

	booking := makeBooking(1, "10", "Confirmed", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	booking.GuestEmail = "guest@example.com"

	counts, err := svc.Reconcile([]NormalizedBooking{booking}, start, end, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Created)

	// The reservation itself is committed regardless of the mail.
	var res reservationModel.Reservation
	require.NoError(t, db.Where("beds24_book_id = ?", int64(1)).First(&res).Error)
	assert.Equal(t, "Confirmed", res.Status)
}

type stubFetcher struct {
	csv string
	err error
}

func (s *stubFetcher) FetchBookingsCSV(start, end time.Time) (string, error) {
	return s.csv, s.err
}

func TestFetchBookingsWrapsTransportErrors(t *testing.T) {
	svc := NewService(nil, &stubFetcher{err: errors.New("connection refused")})

	_, err := svc.FetchBookings(time.Now(), time.Now(), FilterOptions{})
	require.Error(t, err)

	var syncErr *SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.Equal(t, "failed to fetch Beds24 data", syncErr.Message)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFetchBookingsNormalizesResponse(t *testing.T) {
	csvText := "Master ID,Roomid,Status,Price,First Night,Last Night\n" +
		"123,10,Confirmed,12000,01 Jan 2025,02 Jan 2025\n"
	svc := NewService(nil, &stubFetcher{csv: csvText})

	bookings, err := svc.FetchBookings(time.Now(), time.Now(), FilterOptions{})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(123), bookings[0].Beds24BookID)
}
