package seeders

import (
	"log"

	"gorm.io/gorm"
	"rental-manager/models/property"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

// SeedProperties upserts the operator's known Beds24 facilities, keyed
// by room id so re-running the seeder never duplicates rows.
func SeedProperties(db *gorm.DB) {
	log.Printf("🔍 Checking property data integrity...")

	properties := []property.Property{
		{Name: "Villa Sakura", Slug: "villa-sakura", RoomID: int64Ptr(201018), Beds24PropertyKey: strPtr("Villa Sakura"), ManagementType: "owned"},
		{Name: "Harbor View House", Slug: "harbor-view-house", RoomID: int64Ptr(272797), Beds24PropertyKey: strPtr("Harbor View House"), ManagementType: "owned"},
		{Name: "Villa Sakura Premium Stay", Slug: "villa-sakura-premium", RoomID: int64Ptr(482703), Beds24PropertyKey: strPtr("Villa Sakura Premium Stay"), ManagementType: "owned"},
		{Name: "Motomachi Guest House", Slug: "motomachi-guest-house", RoomID: int64Ptr(409489), Beds24PropertyKey: strPtr("Motomachi Guest House"), ManagementType: "managed"},
		{Name: "Cafe & Stay Mimosa", Slug: "cafe-and-stay-mimosa", RoomID: int64Ptr(507685), Beds24PropertyKey: strPtr("Cafe & Stay Mimosa"), ManagementType: "managed"},
	}

	created := 0
	updated := 0

	for _, p := range properties {
		var existing property.Property
		err := db.Where("room_id = ?", *p.RoomID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&p).Error; err != nil {
				log.Printf("❌ Failed to seed property %s: %v", p.Name, err)
				continue
			}
			created++
			continue
		} else if err != nil {
			log.Printf("❌ Failed to look up property %s: %v", p.Name, err)
			continue
		}

		existing.Name = p.Name
		existing.Slug = p.Slug
		existing.Beds24PropertyKey = p.Beds24PropertyKey
		existing.ManagementType = p.ManagementType
		if err := db.Save(&existing).Error; err != nil {
			log.Printf("❌ Failed to update property %s: %v", p.Name, err)
			continue
		}
		updated++
	}

	log.Printf("✅ Property seeding complete: %d created, %d updated", created, updated)
}
