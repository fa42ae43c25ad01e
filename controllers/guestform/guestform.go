package guestform

import (
	"encoding/json"
	"time"

	"rental-manager/logger"
	guestformModel "rental-manager/models/guestform"
	reservationModel "rental-manager/models/reservation"
	"rental-manager/types"
	guestformTypes "rental-manager/types/guestform"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuestFormController handles the guest-facing check-in form flow
type GuestFormController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewGuestFormController creates a new guest form controller
func NewGuestFormController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *GuestFormController {
	return &GuestFormController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Lookup finds a reservation by facility slug and check-in date and
// returns the form access token, creating the submission row on first
// access.
func (gc *GuestFormController) Lookup(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var req guestformTypes.LookupRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if req.CheckInDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "check_in_date is required",
		})
	}
	checkIn, err := time.Parse("2006-01-02", req.CheckInDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid check_in_date, expected YYYY-MM-DD",
		})
	}

	var res reservationModel.Reservation
	err = gc.DB.
		Joins("JOIN properties ON properties.id = reservations.property_id").
		Where("properties.slug = ? AND reservations.check_in_date = ?", slug, checkIn).
		First(&res).Error
	if err == gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "No reservation found for this facility and date",
		})
	} else if err != nil {
		logger.Error("Failed to look up reservation", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var submission guestformModel.GuestSubmission
	err = gc.DB.Where("reservation_id = ?", res.ID).First(&submission).Error
	if err == gorm.ErrRecordNotFound {
		submission = guestformModel.GuestSubmission{
			ReservationID: res.ID,
			Token:         uuid.New(),
			Status:        guestformModel.SubmissionPending,
		}
		if err := gc.DB.Create(&submission).Error; err != nil {
			logger.Error("Failed to create guest submission", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Database error",
			})
		}
	} else if err != nil {
		logger.Error("Failed to load guest submission", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if submission.Status == guestformModel.SubmissionCompleted {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "The guest roster for this reservation has already been submitted",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservation found",
		Data:    guestformTypes.LookupResponse{Token: submission.Token.String()},
	})
}

// Detail returns the form definition the guest should be shown for
// their token.
func (gc *GuestFormController) Detail(c *fiber.Ctx) error {
	token, err := uuid.Parse(c.Params("token"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid token",
		})
	}

	submission, apiErr := gc.findSubmission(c, token)
	if submission == nil {
		return apiErr
	}

	var res reservationModel.Reservation
	if err := gc.DB.Preload("Property").First(&res, submission.ReservationID).Error; err != nil {
		logger.Error("Failed to load reservation for submission", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if res.Property.FormTemplateID == nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "No form is configured for this facility",
		})
	}

	var template guestformModel.FormTemplate
	err = gc.DB.Preload("Fields", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).First(&template, *res.Property.FormTemplateID).Error
	if err != nil {
		logger.Error("Failed to load form template", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Form template",
		Data:    template,
	})
}

// Submit stores the guest's answers and marks both the submission and
// the reservation roster as submitted.
func (gc *GuestFormController) Submit(c *fiber.Ctx) error {
	token, err := uuid.Parse(c.Params("token"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid token",
		})
	}

	submission, apiErr := gc.findSubmission(c, token)
	if submission == nil {
		return apiErr
	}

	if submission.Status == guestformModel.SubmissionCompleted {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Already submitted",
		})
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to serialize submission payload", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to store submission",
		})
	}
	serialized := string(data)

	err = gc.DB.Transaction(func(tx *gorm.DB) error {
		submission.SubmittedData = &serialized
		submission.Status = guestformModel.SubmissionCompleted
		if err := tx.Save(submission).Error; err != nil {
			return err
		}

		return tx.Model(&reservationModel.Reservation{}).
			Where("id = ?", submission.ReservationID).
			Update("guest_roster_status", reservationModel.RosterSubmitted).Error
	})
	if err != nil {
		logger.Error("Failed to save guest submission", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to store submission",
		})
	}

	return c.SendStatus(fiber.StatusCreated)
}

// findSubmission loads the submission for a token, writing the error
// response itself when the token is unknown. Returns (nil, response)
// on failure.
func (gc *GuestFormController) findSubmission(c *fiber.Ctx, token uuid.UUID) (*guestformModel.GuestSubmission, error) {
	var submission guestformModel.GuestSubmission
	err := gc.DB.Where("token = ?", token).First(&submission).Error
	if err == gorm.ErrRecordNotFound {
		return nil, c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Invalid token",
		})
	} else if err != nil {
		logger.Error("Failed to load guest submission", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}
	return &submission, nil
}
