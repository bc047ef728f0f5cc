package controllers

import (
	"github.com/gofiber/fiber/v2"

	"studyquest/backend/studyplan"
	"studyquest/backend/utils"
)

type ProgressController struct {
	Service *studyplan.Service
}

func NewProgressController(service *studyplan.Service) *ProgressController {
	return &ProgressController{Service: service}
}

// Track возвращает страницу отслеживания прогресса по тесту
func (pc *ProgressController) Track(c *fiber.Ctx) error {
	view, err := pc.Service.TrackProgress(param(c, "name"), c.Params("testID"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, view)
}

// Statistics возвращает статистику по одному тесту
func (pc *ProgressController) Statistics(c *fiber.Ctx) error {
	stats, err := pc.Service.TestStatistics(param(c, "name"), c.Params("testID"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats)
}

// CreateRecord добавляет запись о прогрессе
func (pc *ProgressController) CreateRecord(c *fiber.Ctx) error {
	var req struct {
		TopicID    string `json:"topic_id"`
		ResourceID string `json:"resource_id"`
		Notes      string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Please select a topic and resource!")
	}

	record, statuses, err := pc.Service.AddRecord(param(c, "name"), c.Params("testID"),
		req.TopicID, req.ResourceID, req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusCreated, "Progress recorded successfully!", fiber.Map{
		"record":        record,
		"notifications": statuses,
	})
}

// Update godoc
// @Summary Increment or decrement a resource's completed count
// @Description Looks the resource up by bare id across every subject,
// clamps the new count to [0, required] and records or removes one
// progress event accordingly.
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /progress/update [post]
func (pc *ProgressController) Update(c *fiber.Ctx) error {
	var req struct {
		ResourceID string   `json:"resource_id"`
		Change     int      `json:"change"`
		Score      *float64 `json:"score"`
	}
	if err := c.BodyParser(&req); err != nil || req.ResourceID == "" {
		return utils.BadRequest(c, "A resource id and change value are required!")
	}

	result, err := pc.Service.AdjustProgress(req.ResourceID, req.Change, req.Score)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, result)
}
