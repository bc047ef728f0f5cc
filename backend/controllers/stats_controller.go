package controllers

import (
	"github.com/gofiber/fiber/v2"

	"studyquest/backend/studyplan"
	"studyquest/backend/utils"
)

type StatsController struct {
	Service *studyplan.Service
}

func NewStatsController(service *studyplan.Service) *StatsController {
	return &StatsController{Service: service}
}

// Dashboard возвращает сводку для главной страницы
func (sc *StatsController) Dashboard(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, sc.Service.Dashboard())
}

// Statistics возвращает общий отчет по всем предметам
func (sc *StatsController) Statistics(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, sc.Service.AllStatistics())
}

// PastTests возвращает развернутый отчет по прошедшим тестам
func (sc *StatsController) PastTests(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"past_tests": sc.Service.PastTests(),
	})
}
