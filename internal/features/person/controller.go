package person

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type PersonController struct {
	Service PersonService
}

func NewPersonController(service PersonService) *PersonController {
	return &PersonController{Service: service}
}

// ListPeople godoc
// @Summary      List people
// @Description  Paginated person list with free-text search over name and national id
// @Tags         people
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Param        search query string false "Search term"
// @Success      200 {object} map[string]interface{}
// @Router       /kisiler [get]
func (ctrl *PersonController) ListPeople(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

	people, total, err := ctrl.Service.ListPeople(c.Context(), map[string]interface{}{}, c.Query("search"), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch people"})
	}

	return c.JSON(fiber.Map{
		"kisiler": people,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetPerson godoc
// @Summary      Get person by ID
// @Tags         people
// @Produce      json
// @Param        id path string true "Person ID"
// @Success      200 {object} Person
// @Failure      404 {string} string "Person not found"
// @Router       /kisiler/{id} [get]
func (ctrl *PersonController) GetPerson(c *fiber.Ctx) error {
	person, err := ctrl.Service.GetPersonByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Person not found"})
	}
	return c.JSON(person)
}

// CreatePerson godoc
// @Summary      Create person
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        input body Person true "Create Person Input"
// @Success      201 {object} Person
// @Failure      409 {string} string "National id already registered"
// @Router       /kisiler [post]
func (ctrl *PersonController) CreatePerson(c *fiber.Ctx) error {
	var person Person
	if err := c.BodyParser(&person); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := ctrl.Service.CreatePerson(c.Context(), &person)
	if err != nil {
		if errors.Is(err, ErrDuplicateID) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "National id already registered"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdatePerson godoc
// @Summary      Update person
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        id path string true "Person ID"
// @Param        input body map[string]interface{} true "Fields to update"
// @Success      200 {object} Person
// @Router       /kisiler/{id} [put]
func (ctrl *PersonController) UpdatePerson(c *fiber.Ctx) error {
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	person, err := ctrl.Service.UpdatePerson(c.Context(), c.Params("id"), fields)
	if err != nil {
		if errors.Is(err, ErrPersonNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Person not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(person)
}

// DeletePerson godoc
// @Summary      Delete person
// @Description  Deletion is blocked while a member or subscriber references the person
// @Tags         people
// @Param        id path string true "Person ID"
// @Success      204 {string} string ""
// @Failure      409 {string} string "Person is referenced"
// @Router       /kisiler/{id} [delete]
func (ctrl *PersonController) DeletePerson(c *fiber.Ctx) error {
	err := ctrl.Service.DeletePerson(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrPersonNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Person not found"})
		}
		if errors.Is(err, ErrPersonReferenced) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Person is referenced by members or subscribers"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete person"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
