package bookingsync

import (
	"encoding/csv"
	"html"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Beds24 exports dates as "01 Jan 2025".
const beds24DateLayout = "02 Jan 2006"

// NormalizedBooking is one Beds24 CSV row after header resolution,
// status filtering and field parsing.
type NormalizedBooking struct {
	Beds24BookID int64
	RoomID       string
	PropertyKey  string
	Status       string
	TotalPrice   decimal.Decimal
	CheckInDate  time.Time
	CheckOutDate time.Time
	AdultGuests  int
	ChildGuests  int
	GuestName    string
	GuestEmail   string
}

// FilterOptions control which statuses survive normalization.
// ExcludedStatuses wins over AllowedStatuses; when AllowedStatuses is
// nil and IncludeCancelled is false, only the default active set
// (Confirmed, New) is kept.
type FilterOptions struct {
	IncludeCancelled bool
	AllowedStatuses  map[string]bool
	ExcludedStatuses map[string]bool
}

// columnAliases maps internal field names to the header spellings seen
// across Beds24 exports, in priority order. Header cells are normalized
// (trimmed, unquoted, lowercased, spaces and underscores removed)
// before matching, so "Master ID", "masterId" and "master_id" all
// resolve the same way.
var columnAliases = map[string][]string{
	"beds24_book_id": {"masterid", "bookid", "bookingid"},
	"room_id":        {"roomid", "room"},
	"property_key":   {"propertykey", "propertyid", "property"},
	"status":         {"status"},
	"total_price":    {"price", "totalprice", "bookingprice"},
	"check_in_date":  {"firstnight", "arrival"},
	"check_out_date": {"lastnight", "departure"},
	"adult_guests":   {"adult", "adults"},
	"child_guests":   {"child", "children"},
	"guest_name":     {"name", "guestname"},
	"guest_email":    {"email", "guestemail"},
}

var requiredFields = []string{"beds24_book_id", "status", "check_in_date", "check_out_date", "total_price"}

// ParseBookingsCSV parses a raw Beds24 CSV export into normalized
// bookings, preserving row order. A missing required column fails the
// whole parse; a malformed row (bad booking id, bad dates) is skipped,
// since the feed routinely contains a few broken rows and one of them
// must not abort a year-long sync.
func ParseBookingsCSV(csvText string, opts FilterOptions) ([]NormalizedBooking, error) {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &SyncError{Message: "failed to parse Beds24 CSV", Err: err}
	}
	if len(records) == 0 {
		return []NormalizedBooking{}, nil
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = normalizeColumn(col)
	}
	indices, err := buildColumnIndex(header)
	if err != nil {
		return nil, err
	}

	bookings := make([]NormalizedBooking, 0, len(records)-1)
	for _, row := range records[1:] {
		status, _ := cell(row, indices, "status")

		// Status filtering happens before the heavier field parsing.
		if opts.ExcludedStatuses != nil && opts.ExcludedStatuses[status] {
			continue
		}
		if opts.AllowedStatuses != nil {
			if !opts.AllowedStatuses[status] {
				continue
			}
		} else if !opts.IncludeCancelled && status != "Confirmed" && status != "New" {
			continue
		}

		bookID, ok := parseIDField(row, indices, "beds24_book_id")
		if !ok {
			continue
		}
		checkIn, ok := parseDateField(row, indices, "check_in_date")
		if !ok {
			continue
		}
		checkOut, ok := parseDateField(row, indices, "check_out_date")
		if !ok {
			continue
		}

		if status == "" {
			status = "Unknown"
		}

		guestName, _ := cell(row, indices, "guest_name")
		guestEmail, _ := cell(row, indices, "guest_email")
		roomID, _ := cell(row, indices, "room_id")
		propertyKey, _ := cell(row, indices, "property_key")

		bookings = append(bookings, NormalizedBooking{
			Beds24BookID: bookID,
			RoomID:       roomID,
			PropertyKey:  propertyKey,
			Status:       status,
			TotalPrice:   parseDecimalField(row, indices, "total_price"),
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			AdultGuests:  parseCountField(row, indices, "adult_guests"),
			ChildGuests:  parseCountField(row, indices, "child_guests"),
			GuestName:    html.UnescapeString(guestName),
			GuestEmail:   guestEmail,
		})
	}

	return bookings, nil
}

func normalizeColumn(value string) string {
	v := strings.TrimSpace(value)
	v = strings.Trim(v, `"`)
	v = strings.ToLower(v)
	v = strings.ReplaceAll(v, " ", "")
	return strings.ReplaceAll(v, "_", "")
}

// buildColumnIndex resolves each internal field to a column position by
// trying its aliases in order. All required fields must resolve; the
// structural error names the missing ones so the operator can see what
// changed in the feed.
func buildColumnIndex(normalizedHeader []string) (map[string]int, error) {
	indices := make(map[string]int)
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx := indexOf(normalizedHeader, alias); idx >= 0 {
				indices[field] = idx
				break
			}
		}
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := indices[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SyncError{Message: "missing required columns in Beds24 CSV: " + strings.Join(missing, ", ")}
	}

	return indices, nil
}

func indexOf(header []string, alias string) int {
	for i, col := range header {
		if col == alias {
			return i
		}
	}
	return -1
}

// cell returns the trimmed value of the column mapped to field, and
// whether that column exists and the row is long enough to hold it.
func cell(row []string, indices map[string]int, field string) (string, bool) {
	idx, ok := indices[field]
	if !ok || idx >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[idx]), true
}

func parseIDField(row []string, indices map[string]int, field string) (int64, bool) {
	raw, ok := cell(row, indices, field)
	if !ok || raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseDateField(row []string, indices map[string]int, field string) (time.Time, bool) {
	raw, ok := cell(row, indices, field)
	if !ok || raw == "" {
		return time.Time{}, false
	}
	v, err := time.Parse(beds24DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return v, true
}

// parseCountField defaults to 0; guest counts are best effort.
func parseCountField(row []string, indices map[string]int, field string) int {
	raw, ok := cell(row, indices, field)
	if !ok || raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseDecimalField defaults to 0.00; a bad price never drops the row.
func parseDecimalField(row []string, indices map[string]int, field string) decimal.Decimal {
	raw, ok := cell(row, indices, field)
	if !ok || raw == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return v
}
