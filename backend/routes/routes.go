package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"studyquest/backend/config"
	"studyquest/backend/controllers"
	"studyquest/backend/mailer"
	"studyquest/backend/studyplan"
)

func SetupRoutes(app *fiber.App, service *studyplan.Service, m *mailer.Mailer, cfg *config.Config, sessions *session.Store) {
	// Dashboard and reports
	statsController := controllers.NewStatsController(service)
	app.Get("/api/dashboard", statsController.Dashboard)
	app.Get("/api/statistics", statsController.Statistics)
	app.Get("/api/tests/past", statsController.PastTests)

	// Subject routes
	subjectsController := controllers.NewSubjectsController(service)
	subjects := app.Group("/api/subjects")
	subjects.Get("/", subjectsController.List)
	subjects.Post("/", subjectsController.Create)
	subjects.Put("/rename", subjectsController.Rename)
	subjects.Get("/:name", subjectsController.Details)
	subjects.Delete("/:name", subjectsController.Delete)

	// Test, topic and resource routes
	testsController := controllers.NewTestsController(service)
	subjects.Post("/:name/tests", testsController.CreateTest)
	subjects.Put("/:name/tests/:testID", testsController.UpdateTest)
	subjects.Delete("/:name/tests/:testID", testsController.DeleteTest)
	subjects.Post("/:name/tests/:testID/topics", testsController.CreateTopic)
	subjects.Put("/:name/tests/:testID/topics/:topicID", testsController.UpdateTopic)
	subjects.Delete("/:name/tests/:testID/topics/:topicID", testsController.DeleteTopic)
	subjects.Post("/:name/tests/:testID/topics/:topicID/resources", testsController.CreateResource)
	subjects.Put("/:name/tests/:testID/topics/:topicID/resources/:resourceID", testsController.UpdateResource)
	subjects.Delete("/:name/tests/:testID/topics/:topicID/resources/:resourceID", testsController.DeleteResource)

	// Progress routes
	progressController := controllers.NewProgressController(service)
	subjects.Get("/:name/tests/:testID/progress", progressController.Track)
	subjects.Get("/:name/tests/:testID/statistics", progressController.Statistics)
	subjects.Post("/:name/tests/:testID/records", progressController.CreateRecord)
	app.Post("/api/progress/update", progressController.Update)

	// Email routes
	emailController := controllers.NewEmailController(service, m, cfg)
	email := app.Group("/api/email")
	email.Get("/config", emailController.GetConfig)
	email.Post("/test", emailController.SendTest)
	email.Post("/reminder/:name/:testID", emailController.Reminder)
	email.Post("/summary/:name/:testID", emailController.Summary)
	email.Post("/upcoming", emailController.Upcoming)
	email.Post("/check-upcoming", emailController.CheckUpcoming)

	// Session to-do list
	todoController := controllers.NewTodoController(sessions)
	todos := app.Group("/api/todos")
	todos.Get("/", todoController.List)
	todos.Post("/", todoController.Create)
	todos.Post("/:taskID/toggle", todoController.Toggle)
}
