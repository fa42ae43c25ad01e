package property

// PropertyCreateRequest registers a new facility. RoomID and
// Beds24PropertyKey are optional but the sync engine cannot map
// bookings to a property that has neither.
type PropertyCreateRequest struct {
	Name              string  `json:"name"`
	Slug              string  `json:"slug"`
	RoomID            *int64  `json:"room_id,omitempty"`
	Beds24PropertyKey *string `json:"beds24_property_key,omitempty"`
	ManagementType    string  `json:"management_type,omitempty"`
	FormTemplateID    *uint   `json:"form_template_id,omitempty"`
}

// PropertyUpdateRequest carries the mutable fields of a facility.
type PropertyUpdateRequest struct {
	Name              *string `json:"name,omitempty"`
	RoomID            *int64  `json:"room_id,omitempty"`
	Beds24PropertyKey *string `json:"beds24_property_key,omitempty"`
	ManagementType    *string `json:"management_type,omitempty"`
	FormTemplateID    *uint   `json:"form_template_id,omitempty"`
}
