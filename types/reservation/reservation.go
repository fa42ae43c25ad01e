package reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

// SyncRequest triggers a reconciliation pass over [today, today+Days].
type SyncRequest struct {
	PropertyID *uint `json:"property_id,omitempty"`
	Days       int   `json:"days,omitempty"`
}

// SyncResponse carries the counters of one reconciliation pass.
type SyncResponse struct {
	Processed       int       `json:"processed"`
	Created         int       `json:"created"`
	Updated         int       `json:"updated"`
	Cancelled       int       `json:"cancelled"`
	MissingProperty int       `json:"missing_property"`
	LastSyncTime    time.Time `json:"last_sync_time"`
}

// RevenueMonth is one month of the fiscal-year revenue report. Revenue
// is set in single-property mode; ByType and Total in stacked mode.
type RevenueMonth struct {
	Date    string                     `json:"date"`
	Revenue decimal.Decimal            `json:"revenue"`
	ByType  map[string]decimal.Decimal `json:"by_type,omitempty"`
	Total   decimal.Decimal            `json:"total"`
}
