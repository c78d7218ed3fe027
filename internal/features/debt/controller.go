package debt

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DebtController struct {
	Service DebtService
}

func NewDebtController(service DebtService) *DebtController {
	return &DebtController{Service: service}
}

type CreateDebtRequest struct {
	MemberID    string  `json:"uye_id"`
	TariffID    string  `json:"tarife_id,omitempty"`
	Amount      float64 `json:"borcTutari"`
	Year        int     `json:"yil"`
	Month       int     `json:"ay"`
	Description string  `json:"aciklama,omitempty"`
}

type UpdateDebtRequest struct {
	Amount      *float64 `json:"borcTutari,omitempty"`
	Description *string  `json:"aciklama,omitempty"`
}

type IssueDebtsRequest struct {
	TariffID string `json:"tarife_id"`
	Year     int    `json:"yil"`
	Month    int    `json:"ay"`
}

// ListDebts godoc
// @Summary      List debts
// @Description  Paginated debt list, filterable by member, period and paid flag
// @Tags         debts
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Param        uye_id query string false "Filter by member"
// @Param        yil query int false "Filter by year"
// @Param        ay query int false "Filter by month"
// @Param        odenmemis query bool false "Only unpaid debts"
// @Success      200 {object} map[string]interface{}
// @Router       /borclar [get]
func (ctrl *DebtController) ListDebts(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

	filter := make(map[string]interface{})
	if memberID := c.Query("uye_id"); memberID != "" {
		oid, err := primitive.ObjectIDFromHex(memberID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid uye_id"})
		}
		filter["uye_id"] = oid
	}
	if year := c.Query("yil"); year != "" {
		if y, err := strconv.Atoi(year); err == nil {
			filter["yil"] = y
		}
	}
	if month := c.Query("ay"); month != "" {
		if m, err := strconv.Atoi(month); err == nil {
			filter["ay"] = m
		}
	}
	if c.Query("odenmemis") == "true" {
		filter["odendi"] = false
	}

	debts, total, err := ctrl.Service.ListDebts(c.Context(), filter, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch debts"})
	}

	return c.JSON(fiber.Map{
		"borclar": debts,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetDebt godoc
// @Summary      Get debt by ID
// @Tags         debts
// @Produce      json
// @Param        id path string true "Debt ID"
// @Success      200 {object} Debt
// @Failure      404 {string} string "Debt not found"
// @Router       /borclar/{id} [get]
func (ctrl *DebtController) GetDebt(c *fiber.Ctx) error {
	debt, err := ctrl.Service.GetDebtByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Debt not found"})
	}
	return c.JSON(debt)
}

// CreateDebt godoc
// @Summary      Create debt
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        input body CreateDebtRequest true "Create Debt Input"
// @Success      201 {object} Debt
// @Failure      400 {string} string "Invalid request body"
// @Router       /borclar [post]
func (ctrl *DebtController) CreateDebt(c *fiber.Ctx) error {
	var req CreateDebtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid uye_id"})
	}

	debt := &Debt{
		MemberID:    memberID,
		Amount:      req.Amount,
		Year:        req.Year,
		Month:       req.Month,
		Description: req.Description,
	}
	if req.TariffID != "" {
		tariffID, err := primitive.ObjectIDFromHex(req.TariffID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tarife_id"})
		}
		debt.TariffID = tariffID
	}

	created, err := ctrl.Service.CreateDebt(c.Context(), debt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateDebt godoc
// @Summary      Update debt
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        id path string true "Debt ID"
// @Param        input body UpdateDebtRequest true "Update Debt Input"
// @Success      200 {object} Debt
// @Router       /borclar/{id} [put]
func (ctrl *DebtController) UpdateDebt(c *fiber.Ctx) error {
	var req UpdateDebtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	debt, err := ctrl.Service.UpdateDebt(c.Context(), c.Params("id"), req.Amount, req.Description)
	if err != nil {
		if errors.Is(err, ErrDebtNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Debt not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(debt)
}

// DeleteDebt godoc
// @Summary      Delete debt
// @Description  Deletion is blocked while payments reference the debt
// @Tags         debts
// @Param        id path string true "Debt ID"
// @Success      204 {string} string ""
// @Failure      409 {string} string "Debt has payments"
// @Router       /borclar/{id} [delete]
func (ctrl *DebtController) DeleteDebt(c *fiber.Ctx) error {
	err := ctrl.Service.DeleteDebt(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrDebtNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Debt not found"})
		}
		if errors.Is(err, ErrDebtHasPayments) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Debt has payments and cannot be deleted"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete debt"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// IssueDebts godoc
// @Summary      Issue period dues
// @Description  Creates one debt per active member from a tariff
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        input body IssueDebtsRequest true "Issue Input"
// @Success      200 {object} map[string]interface{}
// @Router       /borclar/issue [post]
func (ctrl *DebtController) IssueDebts(c *fiber.Ctx) error {
	var req IssueDebtsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	count, err := ctrl.Service.IssueForPeriod(c.Context(), req.TariffID, req.Year, req.Month)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"issued": count})
}
