package payment

import (
	"errors"
	"strconv"
	"time"

	"go-dernek/internal/features/debt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentController struct {
	Service PaymentService
}

func NewPaymentController(service PaymentService) *PaymentController {
	return &PaymentController{Service: service}
}

type CreatePaymentRequest struct {
	DebtID     string  `json:"borc_id"`
	RegisterID string  `json:"kasa_id"`
	Amount     float64 `json:"odemeTutari"`
	Method     Method  `json:"odemeTuru"`
	PaidAt     string  `json:"odemeTarihi,omitempty"` // RFC3339
}

type UpdatePaymentRequest struct {
	Amount *float64 `json:"odemeTutari,omitempty"`
	Method *Method  `json:"odemeTuru,omitempty"`
	PaidAt *string  `json:"odemeTarihi,omitempty"`
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrPaymentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	case errors.Is(err, debt.ErrDebtNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Debt not found"})
	case errors.Is(err, ErrPaymentExceedsBalance):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment exceeds remaining balance"})
	case errors.Is(err, ErrInvalidMethod):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment method"})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
}

// ListPayments godoc
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Param        borc_id query string false "Filter by debt"
// @Param        uye_id query string false "Filter by member"
// @Param        kasa_id query string false "Filter by register"
// @Success      200 {object} map[string]interface{}
// @Router       /odemeler [get]
func (ctrl *PaymentController) ListPayments(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

	filter := make(map[string]interface{})
	for param, field := range map[string]string{"borc_id": "borc_id", "uye_id": "uye_id", "kasa_id": "kasa_id"} {
		if v := c.Query(param); v != "" {
			oid, err := primitive.ObjectIDFromHex(v)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid " + param})
			}
			filter[field] = oid
		}
	}

	payments, total, err := ctrl.Service.ListPayments(c.Context(), filter, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	return c.JSON(fiber.Map{
		"odemeler": payments,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetPayment godoc
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} Payment
// @Router       /odemeler/{id} [get]
func (ctrl *PaymentController) GetPayment(c *fiber.Ctx) error {
	payment, err := ctrl.Service.GetPaymentByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}
	return c.JSON(payment)
}

// CreatePayment godoc
// @Summary      Record a payment
// @Description  Persists the payment and returns it with the recomputed debt balance
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        input body CreatePaymentRequest true "Create Payment Input"
// @Success      201 {object} PaymentResult
// @Failure      400 {string} string "Payment exceeds remaining balance"
// @Router       /odemeler [post]
func (ctrl *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	debtID, err := primitive.ObjectIDFromHex(req.DebtID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid borc_id"})
	}
	registerID, err := primitive.ObjectIDFromHex(req.RegisterID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid kasa_id"})
	}

	payment := &Payment{
		DebtID:     debtID,
		RegisterID: registerID,
		Amount:     req.Amount,
		Method:     req.Method,
	}
	if req.PaidAt != "" {
		t, err := time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid odemeTarihi"})
		}
		payment.PaidAt = t
	}

	result, err := ctrl.Service.CreatePayment(c.Context(), payment)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// UpdatePayment godoc
// @Summary      Update a payment
// @Description  Amount edits re-run the balance reconciliation on the debt
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID"
// @Param        input body UpdatePaymentRequest true "Update Payment Input"
// @Success      200 {object} PaymentResult
// @Router       /odemeler/{id} [put]
func (ctrl *PaymentController) UpdatePayment(c *fiber.Ctx) error {
	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var paidAt *time.Time
	if req.PaidAt != nil {
		t, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid odemeTarihi"})
		}
		paidAt = &t
	}

	result, err := ctrl.Service.UpdatePayment(c.Context(), c.Params("id"), req.Amount, req.Method, paidAt)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

// DeletePayment godoc
// @Summary      Delete a payment
// @Description  Removes the payment and restores the amount to the debt balance
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} map[string]interface{}
// @Router       /odemeler/{id} [delete]
func (ctrl *PaymentController) DeletePayment(c *fiber.Ctx) error {
	updatedDebt, err := ctrl.Service.DeletePayment(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"borc": updatedDebt})
}
