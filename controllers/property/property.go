package property

import (
	"fmt"

	"rental-manager/logger"
	propertyModel "rental-manager/models/property"
	"rental-manager/types"
	propertyTypes "rental-manager/types/property"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PropertyController handles facility registry requests
type PropertyController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewPropertyController creates a new property controller
func NewPropertyController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *PropertyController {
	return &PropertyController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Index lists all registered facilities
func (pc *PropertyController) Index(c *fiber.Ctx) error {
	var properties []propertyModel.Property
	if err := pc.DB.Order("name").Find(&properties).Error; err != nil {
		logger.Error("Failed to list properties", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Properties",
		Data:    properties,
	})
}

// Store registers a new facility
func (pc *PropertyController) Store(c *fiber.Ctx) error {
	var req propertyTypes.PropertyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if req.Name == "" || req.Slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "name and slug are required",
		})
	}

	var existing propertyModel.Property
	err := pc.DB.Where("slug = ?", req.Slug).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: fmt.Sprintf("A property with slug %q already exists", req.Slug),
		})
	} else if err != gorm.ErrRecordNotFound {
		logger.Error("Failed to check existing property", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	managementType := req.ManagementType
	if managementType == "" {
		managementType = "owned"
	}

	prop := propertyModel.Property{
		Name:              req.Name,
		Slug:              req.Slug,
		RoomID:            req.RoomID,
		Beds24PropertyKey: req.Beds24PropertyKey,
		ManagementType:    managementType,
		FormTemplateID:    req.FormTemplateID,
	}
	if err := pc.DB.Create(&prop).Error; err != nil {
		logger.Error("Failed to create property", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create property",
		})
	}

	logger.Success(fmt.Sprintf("Property created successfully with ID: %d", prop.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Property created successfully",
		Data:    prop,
	})
}

// Update modifies a facility's mutable fields
func (pc *PropertyController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid property id",
		})
	}

	var prop propertyModel.Property
	if err := pc.DB.First(&prop, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Property not found",
			})
		}
		logger.Error("Failed to find property", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var req propertyTypes.PropertyUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.Name != nil {
		prop.Name = *req.Name
	}
	if req.RoomID != nil {
		prop.RoomID = req.RoomID
	}
	if req.Beds24PropertyKey != nil {
		prop.Beds24PropertyKey = req.Beds24PropertyKey
	}
	if req.ManagementType != nil {
		prop.ManagementType = *req.ManagementType
	}
	if req.FormTemplateID != nil {
		prop.FormTemplateID = req.FormTemplateID
	}

	if err := pc.DB.Save(&prop).Error; err != nil {
		logger.Error("Failed to update property", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update property",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Property updated successfully",
		Data:    prop,
	})
}
