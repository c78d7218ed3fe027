package dashboard

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Service DashboardService
}

func NewDashboardController(service DashboardService) *DashboardController {
	return &DashboardController{Service: service}
}

// GetSummary godoc
// @Summary      Dashboard summary
// @Description  Member counts, outstanding debt and collected totals
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} Summary
// @Router       /dashboard/summary [get]
func (ctrl *DashboardController) GetSummary(c *fiber.Ctx) error {
	summary, err := ctrl.Service.Summary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build summary"})
	}
	return c.JSON(summary)
}

// GetCollectedByMonth godoc
// @Summary      Collected amounts by month
// @Tags         dashboard
// @Produce      json
// @Param        months query int false "Window in months" default(12)
// @Success      200 {array} MonthlyCollection
// @Router       /dashboard/collections [get]
func (ctrl *DashboardController) GetCollectedByMonth(c *fiber.Ctx) error {
	months, _ := strconv.Atoi(c.Query("months", "12"))

	collections, err := ctrl.Service.CollectedByMonth(c.Context(), months)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build collections"})
	}
	return c.JSON(fiber.Map{"tahsilatlar": collections})
}
