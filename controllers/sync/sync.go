package sync

import (
	"errors"
	"fmt"
	"time"

	"rental-manager/logger"
	reservationModel "rental-manager/models/reservation"
	"rental-manager/services/bookingsync"
	"rental-manager/types"
	reservationTypes "rental-manager/types/reservation"
	"rental-manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const defaultSyncDays = 365

// SyncController exposes the reconciliation engine over HTTP
type SyncController struct {
	DB      *gorm.DB
	Service *bookingsync.Service
	Logger  *logger.AsyncLogger
}

// NewSyncController creates a new sync controller
func NewSyncController(db *gorm.DB, service *bookingsync.Service, asyncLogger *logger.AsyncLogger) *SyncController {
	return &SyncController{
		DB:      db,
		Service: service,
		Logger:  asyncLogger,
	}
}

// Trigger runs one reconciliation pass over [today, today+days] and
// returns the four counters plus the last-sync timestamp.
func (sc *SyncController) Trigger(c *fiber.Ctx) error {
	var req reservationTypes.SyncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			logger.Error("Failed to parse request body", err)
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid request body",
			})
		}
	}

	days := req.Days
	if days <= 0 {
		days = defaultSyncDays
	}

	// The fetch window and the sweep window must be the same pair.
	start, end := utils.SyncWindow(days)

	logger.Info(fmt.Sprintf("Syncing bookings from %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")))

	bookings, err := sc.Service.FetchBookings(start, end, bookingsync.FilterOptions{})
	if err != nil {
		logger.Error("Beds24 sync failed", err)
		status := fiber.StatusInternalServerError
		var syncErr *bookingsync.SyncError
		if errors.As(err, &syncErr) {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(types.ApiResponse{
			Status:  status,
			Message: err.Error(),
		})
	}

	counts, err := sc.Service.Reconcile(bookings, start, end, req.PropertyID)
	if err != nil {
		logger.Error("Reconciliation failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: err.Error(),
		})
	}

	var syncStatus reservationModel.SyncStatus
	if err := sc.DB.First(&syncStatus, reservationModel.SyncStatusID).Error; err != nil {
		logger.Error("Failed to load sync status", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Sync completed but failed to load sync status",
		})
	}

	logger.Success(fmt.Sprintf("Sync complete: %d created, %d updated, %d cancelled, %d missing property",
		counts.Created, counts.Updated, counts.Cancelled, counts.MissingProperty))

	// Persist an audit record of the pass
	sc.Logger.Log(types.LogEntry{
		Method: c.Method(),
		URL:    c.OriginalURL(),
		ResponseBody: fmt.Sprintf("processed=%d created=%d updated=%d cancelled=%d missing_property=%d",
			len(bookings), counts.Created, counts.Updated, counts.Cancelled, counts.MissingProperty),
		StatusCode: fiber.StatusOK,
		CreatedAt:  time.Now(),
	})

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Sync completed successfully",
		Data: reservationTypes.SyncResponse{
			Processed:       len(bookings),
			Created:         counts.Created,
			Updated:         counts.Updated,
			Cancelled:       counts.Cancelled,
			MissingProperty: counts.MissingProperty,
			LastSyncTime:    syncStatus.LastSyncTime,
		},
	})
}

// Status returns the time of the last successful reconciliation pass.
func (sc *SyncController) Status(c *fiber.Ctx) error {
	var syncStatus reservationModel.SyncStatus
	err := sc.DB.First(&syncStatus, reservationModel.SyncStatusID).Error
	if err == gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "No sync has been performed yet",
		})
	} else if err != nil {
		logger.Error("Failed to load sync status", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Last sync time",
		Data:    fiber.Map{"last_sync_time": syncStatus.LastSyncTime},
	})
}
