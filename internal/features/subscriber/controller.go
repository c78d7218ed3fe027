package subscriber

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubscriberController struct {
	Service SubscriberService
}

func NewSubscriberController(service SubscriberService) *SubscriberController {
	return &SubscriberController{Service: service}
}

type CreateSubscriberRequest struct {
	PersonID       string `json:"kisi_id"`
	Type           Type   `json:"aboneTuru"`
	SubscriptionNo string `json:"aboneNo"`
}

// ListSubscribers godoc
// @Summary      List subscribers
// @Tags         subscribers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Param        aboneTuru query string false "Filter by type"
// @Param        kisi_id query string false "Filter by person"
// @Success      200 {object} map[string]interface{}
// @Router       /aboneler [get]
func (ctrl *SubscriberController) ListSubscribers(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

	filter := make(map[string]interface{})
	if t := c.Query("aboneTuru"); t != "" {
		filter["aboneTuru"] = Type(t)
	}
	if personID := c.Query("kisi_id"); personID != "" {
		oid, err := primitive.ObjectIDFromHex(personID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid kisi_id"})
		}
		filter["kisi_id"] = oid
	}

	subs, total, err := ctrl.Service.ListSubscribers(c.Context(), filter, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch subscribers"})
	}

	return c.JSON(fiber.Map{
		"aboneler": subs,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetSubscriber godoc
// @Summary      Get subscriber by ID
// @Tags         subscribers
// @Produce      json
// @Param        id path string true "Subscriber ID"
// @Success      200 {object} Subscriber
// @Router       /aboneler/{id} [get]
func (ctrl *SubscriberController) GetSubscriber(c *fiber.Ctx) error {
	sub, err := ctrl.Service.GetSubscriberByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subscriber not found"})
	}
	return c.JSON(sub)
}

// CreateSubscriber godoc
// @Summary      Create subscriber
// @Tags         subscribers
// @Accept       json
// @Produce      json
// @Param        input body CreateSubscriberRequest true "Create Subscriber Input"
// @Success      201 {object} Subscriber
// @Failure      409 {string} string "Subscription number already in use"
// @Router       /aboneler [post]
func (ctrl *SubscriberController) CreateSubscriber(c *fiber.Ctx) error {
	var req CreateSubscriberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	personID, err := primitive.ObjectIDFromHex(req.PersonID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid kisi_id"})
	}

	created, err := ctrl.Service.CreateSubscriber(c.Context(), &Subscriber{
		PersonID:       personID,
		Type:           req.Type,
		SubscriptionNo: req.SubscriptionNo,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateNo) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Subscription number already in use"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// CloseSubscription godoc
// @Summary      Close subscription
// @Tags         subscribers
// @Param        id path string true "Subscriber ID"
// @Success      200 {object} Subscriber
// @Router       /aboneler/{id}/close [put]
func (ctrl *SubscriberController) CloseSubscription(c *fiber.Ctx) error {
	sub, err := ctrl.Service.CloseSubscription(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrSubscriberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subscriber not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sub)
}

// DeleteSubscriber godoc
// @Summary      Delete subscriber
// @Tags         subscribers
// @Param        id path string true "Subscriber ID"
// @Success      204 {string} string ""
// @Router       /aboneler/{id} [delete]
func (ctrl *SubscriberController) DeleteSubscriber(c *fiber.Ctx) error {
	err := ctrl.Service.DeleteSubscriber(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrSubscriberNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subscriber not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete subscriber"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
