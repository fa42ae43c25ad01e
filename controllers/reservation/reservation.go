package reservation

import (
	"fmt"
	"strconv"
	"time"

	"rental-manager/logger"
	reservationModel "rental-manager/models/reservation"
	"rental-manager/types"
	reservationTypes "rental-manager/types/reservation"
	"rental-manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/karlseguin/ccache/v3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const revenueCacheTTL = 5 * time.Minute

// ReservationController serves the operator-facing reservation and
// revenue reports built on top of the synced data.
type ReservationController struct {
	DB          *gorm.DB
	Logger      *logger.AsyncLogger
	reportCache *ccache.Cache[[]reservationTypes.RevenueMonth]
}

// NewReservationController creates a new reservation controller
func NewReservationController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ReservationController {
	return &ReservationController{
		DB:          db,
		Logger:      asyncLogger,
		reportCache: ccache.New(ccache.Configure[[]reservationTypes.RevenueMonth]().MaxSize(100)),
	}
}

// Monthly lists the reservations whose check-in falls inside the month
// given as ?month=YYYY-MM (defaults to the current month).
func (rc *ReservationController) Monthly(c *fiber.Ctx) error {
	monthParam := c.Query("month")
	ref := time.Now()
	if monthParam != "" {
		parsed, err := time.Parse("2006-01", monthParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid month, expected YYYY-MM",
			})
		}
		ref = parsed
	}
	start, end := utils.MonthBounds(ref)

	var reservations []reservationModel.Reservation
	err := rc.DB.Preload("Property").
		Where("check_in_date >= ? AND check_in_date <= ?", start, end).
		Order("check_in_date").
		Find(&reservations).Error
	if err != nil {
		logger.Error("Failed to list monthly reservations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Monthly reservations",
		Data:    reservations,
	})
}

// Revenue returns the fiscal-year (March through February) monthly
// revenue report over Confirmed/New reservations: a simple series for
// one property, or per-management-type stacked totals for all of them.
// Reports are cached for a few minutes; a sync pass does not need to
// show up in the numbers instantly.
func (rc *ReservationController) Revenue(c *fiber.Ctx) error {
	year := utils.DefaultFiscalYear(time.Now())
	if yearParam := c.Query("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid year",
			})
		}
		year = parsed
	}
	propertyName := c.Query("property_name")

	cacheKey := fmt.Sprintf("revenue:%d:%s", year, propertyName)
	if item := rc.reportCache.Get(cacheKey); item != nil && !item.Expired() {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "Revenue report",
			Data:    item.Value(),
		})
	}

	start, end := utils.FiscalYearBounds(year)

	query := rc.DB.Preload("Property").
		Where("check_in_date >= ? AND check_in_date <= ?", start, end).
		Where("status IN ?", []string{
			reservationModel.StatusConfirmed.String(),
			reservationModel.StatusNew.String(),
		})
	if propertyName != "" {
		query = query.Joins("JOIN properties ON properties.id = reservations.property_id").
			Where("properties.name = ?", propertyName)
	}

	var reservations []reservationModel.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		logger.Error("Failed to load revenue data", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var report []reservationTypes.RevenueMonth
	if propertyName != "" {
		report = buildSingleSeries(reservations, start)
	} else {
		report = buildStackedSeries(reservations, start)
	}

	rc.reportCache.Set(cacheKey, report, revenueCacheTTL)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Revenue report",
		Data:    report,
	})
}

func buildSingleSeries(reservations []reservationModel.Reservation, start time.Time) []reservationTypes.RevenueMonth {
	totals := make(map[string]decimal.Decimal)
	for _, r := range reservations {
		key := r.CheckInDate.Format("2006-01")
		totals[key] = totals[key].Add(r.TotalPrice)
	}

	report := make([]reservationTypes.RevenueMonth, 0, 12)
	cursor := start
	for i := 0; i < 12; i++ {
		key := cursor.Format("2006-01")
		report = append(report, reservationTypes.RevenueMonth{
			Date:    key,
			Revenue: totals[key],
			Total:   totals[key],
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return report
}

func buildStackedSeries(reservations []reservationModel.Reservation, start time.Time) []reservationTypes.RevenueMonth {
	byType := make(map[string]map[string]decimal.Decimal)
	for _, r := range reservations {
		key := r.CheckInDate.Format("2006-01")
		managementType := r.Property.ManagementType
		if managementType == "" {
			managementType = "unknown"
		}
		if byType[key] == nil {
			byType[key] = make(map[string]decimal.Decimal)
		}
		byType[key][managementType] = byType[key][managementType].Add(r.TotalPrice)
	}

	report := make([]reservationTypes.RevenueMonth, 0, 12)
	cursor := start
	for i := 0; i < 12; i++ {
		key := cursor.Format("2006-01")
		total := decimal.Zero
		for _, v := range byType[key] {
			total = total.Add(v)
		}
		report = append(report, reservationTypes.RevenueMonth{
			Date:   key,
			ByType: byType[key],
			Total:  total,
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return report
}
