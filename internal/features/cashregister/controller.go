package cashregister

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type RegisterController struct {
	Service RegisterService
}

func NewRegisterController(service RegisterService) *RegisterController {
	return &RegisterController{Service: service}
}

type CreateRegisterRequest struct {
	Name        string `json:"ad"`
	Type        Type   `json:"tur"`
	Description string `json:"aciklama,omitempty"`
}

type UpdateRegisterRequest struct {
	Name        *string `json:"ad,omitempty"`
	Description *string `json:"aciklama,omitempty"`
	Active      *bool   `json:"aktif,omitempty"`
}

// ListRegisters godoc
// @Summary      List cash registers
// @Tags         registers
// @Produce      json
// @Success      200 {array} Register
// @Router       /kasalar [get]
func (ctrl *RegisterController) ListRegisters(c *fiber.Ctx) error {
	registers, err := ctrl.Service.ListRegisters(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch registers"})
	}
	return c.JSON(fiber.Map{"kasalar": registers})
}

// GetRegister godoc
// @Summary      Get register by ID
// @Tags         registers
// @Produce      json
// @Param        id path string true "Register ID"
// @Success      200 {object} Register
// @Router       /kasalar/{id} [get]
func (ctrl *RegisterController) GetRegister(c *fiber.Ctx) error {
	register, err := ctrl.Service.GetRegisterByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Register not found"})
	}
	return c.JSON(register)
}

// GetRegisterBalance godoc
// @Summary      Get register balance
// @Description  Balance derived from payments received into the register
// @Tags         registers
// @Produce      json
// @Param        id path string true "Register ID"
// @Success      200 {object} RegisterBalance
// @Router       /kasalar/{id}/balance [get]
func (ctrl *RegisterController) GetRegisterBalance(c *fiber.Ctx) error {
	balance, err := ctrl.Service.Balance(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrRegisterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Register not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balance"})
	}
	return c.JSON(balance)
}

// ListRegisterBalances godoc
// @Summary      List register balances
// @Tags         registers
// @Produce      json
// @Success      200 {array} RegisterBalance
// @Router       /kasalar/balances [get]
func (ctrl *RegisterController) ListRegisterBalances(c *fiber.Ctx) error {
	balances, err := ctrl.Service.Balances(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balances"})
	}
	return c.JSON(fiber.Map{"bakiyeler": balances})
}

// CreateRegister godoc
// @Summary      Create cash register
// @Tags         registers
// @Accept       json
// @Produce      json
// @Param        input body CreateRegisterRequest true "Create Register Input"
// @Success      201 {object} Register
// @Router       /kasalar [post]
func (ctrl *RegisterController) CreateRegister(c *fiber.Ctx) error {
	var req CreateRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := ctrl.Service.CreateRegister(c.Context(), &Register{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateRegister godoc
// @Summary      Update cash register
// @Tags         registers
// @Accept       json
// @Produce      json
// @Param        id path string true "Register ID"
// @Param        input body UpdateRegisterRequest true "Update Register Input"
// @Success      200 {object} Register
// @Router       /kasalar/{id} [put]
func (ctrl *RegisterController) UpdateRegister(c *fiber.Ctx) error {
	var req UpdateRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	register, err := ctrl.Service.UpdateRegister(c.Context(), c.Params("id"), req.Name, req.Description, req.Active)
	if err != nil {
		if errors.Is(err, ErrRegisterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Register not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(register)
}

// DeleteRegister godoc
// @Summary      Delete cash register
// @Description  Deletion is blocked while payments reference the register
// @Tags         registers
// @Param        id path string true "Register ID"
// @Success      204 {string} string ""
// @Failure      409 {string} string "Register has payments"
// @Router       /kasalar/{id} [delete]
func (ctrl *RegisterController) DeleteRegister(c *fiber.Ctx) error {
	err := ctrl.Service.DeleteRegister(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrRegisterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Register not found"})
		}
		if errors.Is(err, ErrRegisterInUse) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Register has payments"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete register"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
