package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"studyquest/backend/studyplan"
	"studyquest/backend/utils"
)

type SubjectsController struct {
	Service *studyplan.Service
}

func NewSubjectsController(service *studyplan.Service) *SubjectsController {
	return &SubjectsController{Service: service}
}

// List возвращает список предметов со счетчиками тестов и ресурсов
func (sc *SubjectsController) List(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"subjects":      sc.Service.Subjects(),
		"subject_stats": sc.Service.SubjectStats(),
	})
}

// Create добавляет новый предмет
func (sc *SubjectsController) Create(c *fiber.Ctx) error {
	var req struct {
		SubjectName string `json:"subject_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Please enter a valid subject name!")
	}

	name, err := sc.Service.AddSubject(req.SubjectName)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusCreated,
		fmt.Sprintf("Subject %q added successfully!", name), fiber.Map{"subject": name})
}

// Rename переименовывает предмет и переносит его файлы
func (sc *SubjectsController) Rename(c *fiber.Ctx) error {
	var req struct {
		OriginalSubjectName string `json:"original_subject_name"`
		NewSubjectName      string `json:"new_subject_name"`
	}
	if err := c.BodyParser(&req); err != nil || req.OriginalSubjectName == "" || req.NewSubjectName == "" {
		return utils.BadRequest(c, "Both original and new subject names are required!")
	}

	name, err := sc.Service.RenameSubject(req.OriginalSubjectName, req.NewSubjectName)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK,
		fmt.Sprintf("Subject renamed from %q to %q successfully!", req.OriginalSubjectName, name),
		fiber.Map{"subject": name})
}

// Delete удаляет предмет и все связанные файлы
func (sc *SubjectsController) Delete(c *fiber.Ctx) error {
	name := param(c, "name")
	if err := sc.Service.DeleteSubject(name); err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK,
		fmt.Sprintf("Subject %q deleted successfully!", name), nil)
}

// Details godoc
// @Summary Get subject details
// @Description Returns the subject document with recomputed progress; the
// normalizing read assigns missing test ids and persists the repair.
// @Tags subjects
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /subjects/{name} [get]
func (sc *SubjectsController) Details(c *fiber.Ctx) error {
	name := param(c, "name")
	details, err := sc.Service.SubjectDetails(name)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"subject_name": name,
		"subject_data": details,
	})
}
