package tariff

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type TariffController struct {
	Service TariffService
}

func NewTariffController(service TariffService) *TariffController {
	return &TariffController{Service: service}
}

type CreateTariffRequest struct {
	Name    string  `json:"ad"`
	Type    Type    `json:"tur"`
	Amount  float64 `json:"tutar"`
	Year    int     `json:"yil,omitempty"`
	Formula string  `json:"formul,omitempty"`
}

type UpdateTariffRequest struct {
	Amount  *float64 `json:"tutar,omitempty"`
	Formula *string  `json:"formul,omitempty"`
	Active  *bool    `json:"aktif,omitempty"`
}

// ListTariffs godoc
// @Summary      List tariffs
// @Tags         tariffs
// @Produce      json
// @Param        yil query int false "Filter by year"
// @Param        tur query string false "Filter by type"
// @Success      200 {array} Tariff
// @Router       /tarifeler [get]
func (ctrl *TariffController) ListTariffs(c *fiber.Ctx) error {
	filter := make(map[string]interface{})
	if year := c.Query("yil"); year != "" {
		if y, err := strconv.Atoi(year); err == nil {
			filter["yil"] = y
		}
	}
	if t := c.Query("tur"); t != "" {
		filter["tur"] = Type(t)
	}

	tariffs, err := ctrl.Service.ListTariffs(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch tariffs"})
	}
	return c.JSON(fiber.Map{"tarifeler": tariffs})
}

// GetTariff godoc
// @Summary      Get tariff by ID
// @Tags         tariffs
// @Produce      json
// @Param        id path string true "Tariff ID"
// @Success      200 {object} Tariff
// @Router       /tarifeler/{id} [get]
func (ctrl *TariffController) GetTariff(c *fiber.Ctx) error {
	tariff, err := ctrl.Service.GetTariffByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tariff not found"})
	}
	return c.JSON(tariff)
}

// CreateTariff godoc
// @Summary      Create tariff
// @Description  Formulas are compiled at write time; broken scripts are rejected
// @Tags         tariffs
// @Accept       json
// @Produce      json
// @Param        input body CreateTariffRequest true "Create Tariff Input"
// @Success      201 {object} Tariff
// @Router       /tarifeler [post]
func (ctrl *TariffController) CreateTariff(c *fiber.Ctx) error {
	var req CreateTariffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := ctrl.Service.CreateTariff(c.Context(), &Tariff{
		Name:    req.Name,
		Type:    req.Type,
		Amount:  req.Amount,
		Year:    req.Year,
		Formula: req.Formula,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateTariff godoc
// @Summary      Update tariff
// @Tags         tariffs
// @Accept       json
// @Produce      json
// @Param        id path string true "Tariff ID"
// @Param        input body UpdateTariffRequest true "Update Tariff Input"
// @Success      200 {object} Tariff
// @Router       /tarifeler/{id} [put]
func (ctrl *TariffController) UpdateTariff(c *fiber.Ctx) error {
	var req UpdateTariffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	tariff, err := ctrl.Service.UpdateTariff(c.Context(), c.Params("id"), req.Amount, req.Formula, req.Active)
	if err != nil {
		if errors.Is(err, ErrTariffNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tariff not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(tariff)
}

// DeleteTariff godoc
// @Summary      Delete tariff
// @Description  Deletion is blocked while the tariff has issued debts
// @Tags         tariffs
// @Param        id path string true "Tariff ID"
// @Success      204 {string} string ""
// @Failure      409 {string} string "Tariff has issued debts"
// @Router       /tarifeler/{id} [delete]
func (ctrl *TariffController) DeleteTariff(c *fiber.Ctx) error {
	err := ctrl.Service.DeleteTariff(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrTariffNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tariff not found"})
		}
		if errors.Is(err, ErrTariffInUse) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Tariff has issued debts"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete tariff"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EvaluateTariff godoc
// @Summary      Evaluate tariff for a member
// @Description  Runs the tariff formula against the member and returns the computed amount
// @Tags         tariffs
// @Produce      json
// @Param        id path string true "Tariff ID"
// @Param        uye_id query string true "Member ID"
// @Success      200 {object} map[string]interface{}
// @Router       /tarifeler/{id}/evaluate [get]
func (ctrl *TariffController) EvaluateTariff(c *fiber.Ctx) error {
	memberID := c.Query("uye_id")
	if memberID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "uye_id is required"})
	}

	amount, err := ctrl.Service.Evaluate(c.Context(), c.Params("id"), memberID)
	if err != nil {
		if errors.Is(err, ErrTariffNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tariff not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"tutar": amount})
}
