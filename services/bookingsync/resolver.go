package bookingsync

import (
	"strconv"

	propertyModel "rental-manager/models/property"
)

// PropertyResolver maps Beds24 room ids and property keys to local
// property records. The two keyspaces are independent: a property is
// reachable through whichever of the two it has populated.
type PropertyResolver struct {
	byRoomID map[string]*propertyModel.Property
	byKey    map[string]*propertyModel.Property
}

// NewPropertyResolver builds the lookup tables. It fails with
// ErrNoMappableProperties when no property exposes either keyspace,
// since a sync against an empty mapping would silently drop every row.
func NewPropertyResolver(properties []propertyModel.Property) (*PropertyResolver, error) {
	r := &PropertyResolver{
		byRoomID: make(map[string]*propertyModel.Property),
		byKey:    make(map[string]*propertyModel.Property),
	}

	for i := range properties {
		prop := &properties[i]
		if prop.RoomID != nil {
			r.byRoomID[strconv.FormatInt(*prop.RoomID, 10)] = prop
		}
		if prop.Beds24PropertyKey != nil && *prop.Beds24PropertyKey != "" {
			r.byKey[*prop.Beds24PropertyKey] = prop
		}
	}

	if len(r.byRoomID) == 0 && len(r.byKey) == 0 {
		return nil, ErrNoMappableProperties
	}

	return r, nil
}

// Resolve tries the room-id table first and falls back to the
// property-key table. A booking that matches neither is unmapped.
func (r *PropertyResolver) Resolve(roomID, propertyKey string) (*propertyModel.Property, bool) {
	if roomID != "" {
		if p, ok := r.byRoomID[roomID]; ok {
			return p, true
		}
	}
	if propertyKey != "" {
		if p, ok := r.byKey[propertyKey]; ok {
			return p, true
		}
	}
	return nil, false
}
