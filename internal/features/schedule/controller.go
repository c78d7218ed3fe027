package schedule

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ScheduleController struct {
	Service ScheduleService
}

func NewScheduleController(service ScheduleService) *ScheduleController {
	return &ScheduleController{Service: service}
}

type CreateScheduleRequest struct {
	Name     string `json:"ad"`
	TariffID string `json:"tarifeId"`
	Cron     string `json:"cron"`
}

type UpdateScheduleRequest struct {
	Cron    *string `json:"cron,omitempty"`
	Enabled *bool   `json:"aktif,omitempty"`
}

// ListSchedules godoc
// @Summary      List schedules
// @Tags         schedules
// @Produce      json
// @Success      200 {array} Schedule
// @Router       /zamanlamalar [get]
func (ctrl *ScheduleController) ListSchedules(c *fiber.Ctx) error {
	schedules, err := ctrl.Service.ListSchedules(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch schedules"})
	}
	return c.JSON(fiber.Map{"zamanlamalar": schedules})
}

// GetSchedule godoc
// @Summary      Get schedule by ID
// @Tags         schedules
// @Produce      json
// @Param        id path string true "Schedule ID"
// @Success      200 {object} Schedule
// @Router       /zamanlamalar/{id} [get]
func (ctrl *ScheduleController) GetSchedule(c *fiber.Ctx) error {
	schedule, err := ctrl.Service.GetScheduleByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}
	return c.JSON(schedule)
}

// CreateSchedule godoc
// @Summary      Create schedule
// @Description  Registers a cron job that issues the tariff's dues each fire
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        input body CreateScheduleRequest true "Create Schedule Input"
// @Success      201 {object} Schedule
// @Router       /zamanlamalar [post]
func (ctrl *ScheduleController) CreateSchedule(c *fiber.Ctx) error {
	var req CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	tariffID, err := primitive.ObjectIDFromHex(req.TariffID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tariff ID"})
	}

	created, err := ctrl.Service.CreateSchedule(c.Context(), &Schedule{
		Name:     req.Name,
		TariffID: tariffID,
		Cron:     req.Cron,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateSchedule godoc
// @Summary      Update schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        id path string true "Schedule ID"
// @Param        input body UpdateScheduleRequest true "Update Schedule Input"
// @Success      200 {object} Schedule
// @Router       /zamanlamalar/{id} [put]
func (ctrl *ScheduleController) UpdateSchedule(c *fiber.Ctx) error {
	var req UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	schedule, err := ctrl.Service.UpdateSchedule(c.Context(), c.Params("id"), req.Cron, req.Enabled)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(schedule)
}

// DeleteSchedule godoc
// @Summary      Delete schedule
// @Tags         schedules
// @Param        id path string true "Schedule ID"
// @Success      204 {string} string ""
// @Router       /zamanlamalar/{id} [delete]
func (ctrl *ScheduleController) DeleteSchedule(c *fiber.Ctx) error {
	err := ctrl.Service.DeleteSchedule(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete schedule"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RunSchedule godoc
// @Summary      Run schedule now
// @Description  Issues the schedule's tariff for the current period immediately
// @Tags         schedules
// @Produce      json
// @Param        id path string true "Schedule ID"
// @Success      200 {object} map[string]interface{}
// @Router       /zamanlamalar/{id}/run [post]
func (ctrl *ScheduleController) RunSchedule(c *fiber.Ctx) error {
	issued, err := ctrl.Service.RunNow(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"olusturulan": issued})
}
