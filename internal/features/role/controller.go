package role

import (
	"errors"

	"go-dernek/internal/features/permission"

	"github.com/gofiber/fiber/v2"
)

type RoleController struct {
	Service RoleService
}

func NewRoleController(service RoleService) *RoleController {
	return &RoleController{Service: service}
}

type CreateRoleRequest struct {
	Name        string             `json:"name"`
	IsAdmin     bool               `json:"isAdmin,omitempty"`
	Permissions []permission.Entry `json:"izinler,omitempty"`
}

type UpdateRoleRequest struct {
	Name        *string            `json:"name,omitempty"`
	IsAdmin     *bool              `json:"isAdmin,omitempty"`
	Permissions []permission.Entry `json:"izinler,omitempty"`
}

// ListRoles godoc
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Success      200 {array} Role
// @Router       /roles [get]
func (ctrl *RoleController) ListRoles(c *fiber.Ctx) error {
	roles, err := ctrl.Service.ListRoles(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch roles"})
	}
	return c.JSON(fiber.Map{"roles": roles})
}

// GetRole godoc
// @Summary      Get role by ID
// @Tags         roles
// @Produce      json
// @Param        id path string true "Role ID"
// @Success      200 {object} Role
// @Router       /roles/{id} [get]
func (ctrl *RoleController) GetRole(c *fiber.Ctx) error {
	role, err := ctrl.Service.GetRoleByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
	}
	return c.JSON(role)
}

// CreateRole godoc
// @Summary      Create role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        input body CreateRoleRequest true "Create Role Input"
// @Success      201 {object} Role
// @Router       /roles [post]
func (ctrl *RoleController) CreateRole(c *fiber.Ctx) error {
	var req CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := ctrl.Service.CreateRole(c.Context(), &Role{
		Name:        req.Name,
		IsAdmin:     req.IsAdmin,
		Permissions: req.Permissions,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Role slug already exists"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateRole godoc
// @Summary      Update role
// @Description  Mutations invalidate cached permissions for every holder
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id path string true "Role ID"
// @Param        input body UpdateRoleRequest true "Update Role Input"
// @Success      200 {object} Role
// @Router       /roles/{id} [put]
func (ctrl *RoleController) UpdateRole(c *fiber.Ctx) error {
	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	role, err := ctrl.Service.UpdateRole(c.Context(), c.Params("id"), req.Name, req.IsAdmin, req.Permissions)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(role)
}

// DeleteRole godoc
// @Summary      Delete role
// @Description  System roles cannot be deleted
// @Tags         roles
// @Param        id path string true "Role ID"
// @Success      204 {string} string ""
// @Failure      409 {string} string "System role"
// @Router       /roles/{id} [delete]
func (ctrl *RoleController) DeleteRole(c *fiber.Ctx) error {
	err := ctrl.Service.DeleteRole(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
		}
		if errors.Is(err, ErrSystemRole) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "System roles cannot be deleted"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete role"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
