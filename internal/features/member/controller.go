package member

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemberController struct {
	Service MemberService
}

func NewMemberController(service MemberService) *MemberController {
	return &MemberController{Service: service}
}

type CreateMemberRequest struct {
	PersonID       string `json:"kisi_id"`
	OrganizationID string `json:"organizasyon_id"`
	JoinDate       string `json:"girisTarihi,omitempty"`
	Status         Status `json:"durum,omitempty"`
}

type UpdateStatusRequest struct {
	Status Status `json:"durum"`
}

// ListMembers godoc
// @Summary      List members
// @Tags         members
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Param        organizasyon_id query string false "Filter by organization"
// @Param        durum query string false "Filter by status (aktif/pasif)"
// @Success      200 {object} map[string]interface{}
// @Router       /uyeler [get]
func (ctrl *MemberController) ListMembers(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

	filter := make(map[string]interface{})
	if orgID := c.Query("organizasyon_id"); orgID != "" {
		oid, err := primitive.ObjectIDFromHex(orgID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid organizasyon_id"})
		}
		filter["organizasyon_id"] = oid
	}
	if status := c.Query("durum"); status != "" {
		filter["durum"] = Status(status)
	}

	members, total, err := ctrl.Service.ListMembers(c.Context(), filter, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch members"})
	}

	return c.JSON(fiber.Map{
		"uyeler": members,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// GetMember godoc
// @Summary      Get member by ID
// @Tags         members
// @Produce      json
// @Param        id path string true "Member ID"
// @Success      200 {object} Member
// @Router       /uyeler/{id} [get]
func (ctrl *MemberController) GetMember(c *fiber.Ctx) error {
	member, err := ctrl.Service.GetMemberByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}
	return c.JSON(member)
}

// CreateMember godoc
// @Summary      Create member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        input body CreateMemberRequest true "Create Member Input"
// @Success      201 {object} Member
// @Failure      409 {string} string "Already a member"
// @Router       /uyeler [post]
func (ctrl *MemberController) CreateMember(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	personID, err := primitive.ObjectIDFromHex(req.PersonID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid kisi_id"})
	}
	orgID, err := primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid organizasyon_id"})
	}

	member := &Member{
		PersonID:       personID,
		OrganizationID: orgID,
		Status:         req.Status,
	}
	if req.JoinDate != "" {
		joined, err := time.Parse("2006-01-02", req.JoinDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "girisTarihi must be YYYY-MM-DD"})
		}
		member.JoinDate = joined
	}

	created, err := ctrl.Service.CreateMember(c.Context(), member)
	if err != nil {
		if errors.Is(err, ErrAlreadyMember) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Person is already a member of this organization"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateMemberStatus godoc
// @Summary      Update member status
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id path string true "Member ID"
// @Param        input body UpdateStatusRequest true "Status Input"
// @Success      200 {object} Member
// @Router       /uyeler/{id}/status [put]
func (ctrl *MemberController) UpdateMemberStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	member, err := ctrl.Service.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(member)
}

// DeleteMember godoc
// @Summary      Delete member
// @Description  Deletion is blocked while the member has unpaid debts
// @Tags         members
// @Param        id path string true "Member ID"
// @Success      204 {string} string ""
// @Failure      409 {string} string "Member has unpaid debts"
// @Router       /uyeler/{id} [delete]
func (ctrl *MemberController) DeleteMember(c *fiber.Ctx) error {
	err := ctrl.Service.DeleteMember(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
		}
		if errors.Is(err, ErrMemberHasDebts) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Member has unpaid debts"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete member"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
