package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/picpatch/PicPatch/app/models"
	"github.com/picpatch/PicPatch/app/repository"
)

const reportPageSize = 50

// HandleAdminReports lists open reports for moderation
func HandleAdminReports(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	reports, err := repository.GetGlobalFactory().GetCollageRepository().
		GetOpenReports((page-1)*reportPageSize, reportPageSize)
	if err != nil {
		log.Errorf("[Report] Failed to load open reports: %v", err)
		reports = []models.CollageReport{}
	}

	return c.Render("admin/reports", viewData(c, fiber.Map{
		"Title":   "Open Reports",
		"Reports": reports,
		"Page":    page,
	}))
}

// HandleAdminReportResolve marks a report resolved or dismissed
func HandleAdminReportResolve(c *fiber.Ctx) error {
	reportID, err := parseIDParam(c, "id")
	if err != nil {
		flash.WithError(c, fiber.Map{"message": "Invalid report ID"})
		return c.Redirect("/admin/reports")
	}

	status := c.FormValue("status")
	if status != models.ReportStatusResolved && status != models.ReportStatusDismissed {
		flash.WithError(c, fiber.Map{"message": "Invalid report status"})
		return c.Redirect("/admin/reports")
	}

	if err := repository.GetGlobalFactory().GetCollageRepository().
		ResolveReport(reportID, status); err != nil {
		log.Errorf("[Report] Failed to resolve report %d: %v", reportID, err)
		flash.WithError(c, fiber.Map{"message": "Failed to update the report"})
		return c.Redirect("/admin/reports")
	}

	flash.WithSuccess(c, fiber.Map{"message": "Report updated"})
	return c.Redirect("/admin/reports")
}
