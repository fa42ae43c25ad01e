package database

import (
	"fmt"
	"os"

	"rental-manager/database/seeders"
	"rental-manager/logger"
	"rental-manager/models/guestform"
	"rental-manager/models/log"
	"rental-manager/models/property"
	"rental-manager/models/reservation"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Handle foreign key constraints after migrations
	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	// Seed the known Beds24 facilities on demand
	if os.Getenv("SEED_PROPERTIES") == "true" {
		seeders.SeedProperties(DB)
	}

	return DB, nil
}

// autoMigrate runs auto migration for all models
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&guestform.FormTemplate{},
		&guestform.FormField{},
		&property.Property{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&reservation.Reservation{},
		&reservation.StatusEvent{},
		&reservation.SyncStatus{},
		&guestform.GuestSubmission{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Remaining models
	remainingModels := []interface{}{
		// Logging
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Property indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_properties_slug ON properties(slug)").Error; err != nil {
		return fmt.Errorf("failed to create property slug index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_properties_room_id ON properties(room_id)").Error; err != nil {
		return fmt.Errorf("failed to create property room_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_properties_beds24_property_key ON properties(beds24_property_key)").Error; err != nil {
		return fmt.Errorf("failed to create property beds24_property_key index: %w", err)
	}

	// Reservation indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_reservations_beds24_book_id ON reservations(beds24_book_id)").Error; err != nil {
		return fmt.Errorf("failed to create reservation beds24_book_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_reservations_check_in_date ON reservations(check_in_date)").Error; err != nil {
		return fmt.Errorf("failed to create reservation check_in_date index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations(status)").Error; err != nil {
		return fmt.Errorf("failed to create reservation status index: %w", err)
	}

	// Guest submission indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_guest_submissions_token ON guest_submissions(token)").Error; err != nil {
		return fmt.Errorf("failed to create guest submission token index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	// Define constraints with their names for checking existence
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_reservations_property",
			sql: `ALTER TABLE reservations ADD CONSTRAINT fk_reservations_property
				  FOREIGN KEY (property_id) REFERENCES properties(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_guest_submissions_reservation",
			sql: `ALTER TABLE guest_submissions ADD CONSTRAINT fk_guest_submissions_reservation
				  FOREIGN KEY (reservation_id) REFERENCES reservations(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_reservation_status_events_reservation",
			sql: `ALTER TABLE reservation_status_events ADD CONSTRAINT fk_reservation_status_events_reservation
				  FOREIGN KEY (reservation_id) REFERENCES reservations(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		// Check if constraint already exists
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
