package organization

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrganizationController struct {
	Service OrganizationService
}

func NewOrganizationController(service OrganizationService) *OrganizationController {
	return &OrganizationController{Service: service}
}

type CreateOrganizationRequest struct {
	Name        string `json:"ad"`
	ParentID    string `json:"parent_id,omitempty"`
	Description string `json:"aciklama,omitempty"`
}

type UpdateOrganizationRequest struct {
	Name        *string `json:"ad,omitempty"`
	Description *string `json:"aciklama,omitempty"`
}

// ListOrganizations godoc
// @Summary      List organization units
// @Tags         organizations
// @Produce      json
// @Success      200 {array} Organization
// @Router       /organizasyonlar [get]
func (ctrl *OrganizationController) ListOrganizations(c *fiber.Ctx) error {
	orgs, err := ctrl.Service.ListOrganizations(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch organizations"})
	}
	return c.JSON(fiber.Map{"organizasyonlar": orgs})
}

// GetOrganization godoc
// @Summary      Get organization by ID
// @Tags         organizations
// @Produce      json
// @Param        id path string true "Organization ID"
// @Success      200 {object} Organization
// @Router       /organizasyonlar/{id} [get]
func (ctrl *OrganizationController) GetOrganization(c *fiber.Ctx) error {
	org, err := ctrl.Service.GetOrganizationByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Organization not found"})
	}
	return c.JSON(org)
}

// CreateOrganization godoc
// @Summary      Create organization unit
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        input body CreateOrganizationRequest true "Create Organization Input"
// @Success      201 {object} Organization
// @Router       /organizasyonlar [post]
func (ctrl *OrganizationController) CreateOrganization(c *fiber.Ctx) error {
	var req CreateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	org := &Organization{Name: req.Name, Description: req.Description}
	if req.ParentID != "" {
		parentID, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid parent_id"})
		}
		org.ParentID = parentID
	}

	created, err := ctrl.Service.CreateOrganization(c.Context(), org)
	if err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Organization slug already exists"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateOrganization godoc
// @Summary      Update organization unit
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        id path string true "Organization ID"
// @Param        input body UpdateOrganizationRequest true "Update Organization Input"
// @Success      200 {object} Organization
// @Router       /organizasyonlar/{id} [put]
func (ctrl *OrganizationController) UpdateOrganization(c *fiber.Ctx) error {
	var req UpdateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	org, err := ctrl.Service.UpdateOrganization(c.Context(), c.Params("id"), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, ErrOrgNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Organization not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(org)
}

// DeleteOrganization godoc
// @Summary      Delete organization unit
// @Description  Deletion is blocked while the unit has children or members
// @Tags         organizations
// @Param        id path string true "Organization ID"
// @Success      204 {string} string ""
// @Router       /organizasyonlar/{id} [delete]
func (ctrl *OrganizationController) DeleteOrganization(c *fiber.Ctx) error {
	err := ctrl.Service.DeleteOrganization(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrOrgNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Organization not found"})
		}
		if errors.Is(err, ErrOrgHasChildren) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Organization has child units"})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
