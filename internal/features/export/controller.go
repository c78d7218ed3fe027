package export

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExportController struct {
	Service ExportService
}

func NewExportController(service ExportService) *ExportController {
	return &ExportController{Service: service}
}

func sendWorkbook(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportMembersExcel godoc
// @Summary      Download member list as xlsx
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Router       /export/uyeler [get]
func (ctrl *ExportController) ExportMembersExcel(c *fiber.Ctx) error {
	data, filename, err := ctrl.Service.MembersExcel(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Export failed"})
	}
	return sendWorkbook(c, data, filename)
}

// ExportDebtsExcel godoc
// @Summary      Download debt list as xlsx
// @Tags         export
// @Param        yil query int false "Filter by year"
// @Param        odenmemis query bool false "Only unpaid debts"
// @Success      200 {file} binary
// @Router       /export/borclar [get]
func (ctrl *ExportController) ExportDebtsExcel(c *fiber.Ctx) error {
	filter := make(map[string]interface{})
	if year := c.Query("yil"); year != "" {
		if y, err := strconv.Atoi(year); err == nil {
			filter["yil"] = y
		}
	}
	if c.Query("odenmemis") == "true" {
		filter["odendi"] = false
	}

	data, filename, err := ctrl.Service.DebtsExcel(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Export failed"})
	}
	return sendWorkbook(c, data, filename)
}

// ExportPaymentsExcel godoc
// @Summary      Download payment list as xlsx
// @Tags         export
// @Param        kasa_id query string false "Filter by register"
// @Success      200 {file} binary
// @Router       /export/odemeler [get]
func (ctrl *ExportController) ExportPaymentsExcel(c *fiber.Ctx) error {
	filter := make(map[string]interface{})
	if registerID := c.Query("kasa_id"); registerID != "" {
		oid, err := primitive.ObjectIDFromHex(registerID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid kasa_id"})
		}
		filter["kasa_id"] = oid
	}

	data, filename, err := ctrl.Service.PaymentsExcel(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Export failed"})
	}
	return sendWorkbook(c, data, filename)
}

// SyncToPostgres godoc
// @Summary      Push debts and payments to the reporting database
// @Description  Idempotent upsert keyed by record id
// @Tags         export
// @Produce      json
// @Success      200 {object} SyncResult
// @Router       /export/postgres [post]
func (ctrl *ExportController) SyncToPostgres(c *fiber.Ctx) error {
	result, err := ctrl.Service.SyncToPostgres(c.Context())
	if err != nil {
		if errors.Is(err, ErrNoReportDB) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Reporting database is not configured"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}
