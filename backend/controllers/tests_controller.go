package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"studyquest/backend/studyplan"
	"studyquest/backend/utils"
)

type TestsController struct {
	Service *studyplan.Service
}

func NewTestsController(service *studyplan.Service) *TestsController {
	return &TestsController{Service: service}
}

type testRequest struct {
	TestName string `json:"test_name"`
	TestDate string `json:"test_date"`
}

type topicRequest struct {
	TopicName string `json:"topic_name"`
}

type resourceRequest struct {
	ResourceName  string `json:"resource_name"`
	ResourceCount int    `json:"resource_count"`
}

// CreateTest добавляет тест в предмет
func (tc *TestsController) CreateTest(c *fiber.Ctx) error {
	var req testRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Please enter a valid test name and date!")
	}

	test, err := tc.Service.AddTest(param(c, "name"), req.TestName, req.TestDate)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusCreated, "Test added successfully!", fiber.Map{"test": test})
}

// UpdateTest обновляет название и дату теста
func (tc *TestsController) UpdateTest(c *fiber.Ctx) error {
	var req testRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Please enter a valid test name and date!")
	}

	test, err := tc.Service.EditTest(param(c, "name"), c.Params("testID"), req.TestName, req.TestDate)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK, "Test updated successfully!", fiber.Map{"test": test})
}

// DeleteTest удаляет тест вместе с его файлом прогресса
func (tc *TestsController) DeleteTest(c *fiber.Ctx) error {
	if err := tc.Service.DeleteTest(param(c, "name"), c.Params("testID")); err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK, "Test deleted successfully!", nil)
}

// CreateTopic добавляет тему в тест
func (tc *TestsController) CreateTopic(c *fiber.Ctx) error {
	var req topicRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Please enter a valid topic name!")
	}

	topic, err := tc.Service.AddTopic(param(c, "name"), c.Params("testID"), req.TopicName)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusCreated,
		fmt.Sprintf("Topic %q added successfully!", topic.Name),
		fiber.Map{"topic": topic, "test_id": c.Params("testID")})
}

// UpdateTopic переименовывает тему
func (tc *TestsController) UpdateTopic(c *fiber.Ctx) error {
	var req topicRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Please enter a valid topic name!")
	}

	topic, err := tc.Service.EditTopic(param(c, "name"), c.Params("testID"), c.Params("topicID"), req.TopicName)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK,
		fmt.Sprintf("Topic %q updated successfully!", topic.Name), fiber.Map{"topic": topic})
}

// DeleteTopic удаляет тему вместе с ее ресурсами
func (tc *TestsController) DeleteTopic(c *fiber.Ctx) error {
	if err := tc.Service.DeleteTopic(param(c, "name"), c.Params("testID"), c.Params("topicID")); err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK, "Topic deleted successfully!", nil)
}

// CreateResource добавляет ресурс в тему
func (tc *TestsController) CreateResource(c *fiber.Ctx) error {
	var req resourceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Please enter a valid resource name!")
	}

	res, err := tc.Service.AddResource(param(c, "name"), c.Params("testID"), c.Params("topicID"),
		req.ResourceName, req.ResourceCount)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusCreated,
		fmt.Sprintf("Resource %q added successfully!", res.Name),
		fiber.Map{"resource": res, "topic_id": c.Params("topicID"), "test_id": c.Params("testID")})
}

// UpdateResource обновляет название и требуемое количество ресурса
func (tc *TestsController) UpdateResource(c *fiber.Ctx) error {
	var req resourceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Please enter a valid resource name!")
	}

	res, err := tc.Service.EditResource(param(c, "name"), c.Params("testID"), c.Params("topicID"),
		c.Params("resourceID"), req.ResourceName, req.ResourceCount)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK,
		fmt.Sprintf("Resource %q updated successfully!", res.Name), fiber.Map{"resource": res})
}

// DeleteResource удаляет ресурс из темы
func (tc *TestsController) DeleteResource(c *fiber.Ctx) error {
	err := tc.Service.DeleteResource(param(c, "name"), c.Params("testID"), c.Params("topicID"),
		c.Params("resourceID"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK, "Resource deleted successfully!", nil)
}
