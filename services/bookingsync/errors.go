package bookingsync

// SyncError is returned when Beds24 data cannot be fetched or parsed.
// Structural problems (a required column missing from the feed) and
// transport failures both surface through this type so entry points can
// show one operator-readable message.
type SyncError struct {
	Message string
	Err     error
}

func (e *SyncError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// ErrNoMappableProperties is returned when no property exposes a room
// id or a Beds24 property key, so nothing could ever be resolved.
var ErrNoMappableProperties = &SyncError{Message: "no properties with room_id or beds24_property_key found"}
