package routes

import (
	"os"
	"rental-manager/constants"
	guestformController "rental-manager/controllers/guestform"
	propertyController "rental-manager/controllers/property"
	reservationController "rental-manager/controllers/reservation"
	syncController "rental-manager/controllers/sync"
	httpServices "rental-manager/httpServices/beds24"
	"rental-manager/logger"
	"rental-manager/middleware"
	"rental-manager/services/bookingsync"
	"rental-manager/services/notification"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	beds24Client := httpServices.NewClient(
		os.Getenv("BEDS24_BASE_URL"),
		os.Getenv("BEDS24_USERNAME"),
		os.Getenv("BEDS24_PASSWORD"),
	)
	asyncLogger := logger.NewAsyncLogger(db)

	syncService := bookingsync.NewService(db, beds24Client)
	if apiKey := os.Getenv("MAILERSEND_API_KEY"); apiKey != "" {
		syncService.Notifier = notification.NewEmailNotifier(
			apiKey,
			os.Getenv("MAILERSEND_FROM_NAME"),
			os.Getenv("MAILERSEND_FROM_EMAIL"),
			os.Getenv("FRONTEND_URL"),
		)
	}

	sync := syncController.NewSyncController(db, syncService, asyncLogger)
	reservations := reservationController.NewReservationController(db, asyncLogger)
	guestForms := guestformController.NewGuestFormController(db, asyncLogger)
	properties := propertyController.NewPropertyController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "rental-manager"})
	})

	/*=============================================================================
	| Guest Routes (token is the credential)
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/check-in/:slug", guestForms.Lookup)
	api.Get("/guest-forms/:token", guestForms.Detail)
	api.Post("/guest-forms/:token/submit", guestForms.Submit)
	api.Get("/sync-status", sync.Status)

	/*=============================================================================
	| Operator Routes
	===============================================================================*/
	api.Post("/sync", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermOperatorFull,
	), sync.Trigger)

	api.Get("/revenue", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermOperatorFull,
	), reservations.Revenue)

	api.Get("/reservations/monthly", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermOperatorFull,
	), reservations.Monthly)

	/*=============================================================================
	| Property Routes
	===============================================================================*/
	propertyGroup := api.Group("/properties").Use(middleware.RequirePermissions(
		constants.PermAdminFull,
	))
	propertyGroup.Get("/", properties.Index)
	propertyGroup.Post("/", properties.Store)
	propertyGroup.Put("/:id", properties.Update)
}
