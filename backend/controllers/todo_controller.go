package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"studyquest/backend/models"
	"studyquest/backend/utils"
)

const todoSessionKey = "todo_data"

// TodoController хранит список задач в сессии, а не в файлах предметов
type TodoController struct {
	Sessions *session.Store
}

func NewTodoController(sessions *session.Store) *TodoController {
	return &TodoController{Sessions: sessions}
}

func (tc *TodoController) load(c *fiber.Ctx) (*session.Session, models.TaskList, error) {
	sess, err := tc.Sessions.Get(c)
	if err != nil {
		return nil, models.TaskList{}, err
	}

	list := models.TaskList{Tasks: []models.Task{}}
	if raw, ok := sess.Get(todoSessionKey).(string); ok && raw != "" {
		// Испорченная сессия читается как пустой список
		_ = json.Unmarshal([]byte(raw), &list)
		if list.Tasks == nil {
			list.Tasks = []models.Task{}
		}
	}
	return sess, list, nil
}

func (tc *TodoController) save(sess *session.Session, list models.TaskList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	sess.Set(todoSessionKey, string(data))
	return sess.Save()
}

// List возвращает задачи текущей сессии
func (tc *TodoController) List(c *fiber.Ctx) error {
	_, list, err := tc.load(c)
	if err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, list)
}

// Create добавляет задачу
func (tc *TodoController) Create(c *fiber.Ctx) error {
	var req struct {
		Text    string `json:"text"`
		Subject string `json:"subject"`
	}
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return utils.BadRequest(c, "Task text is required!")
	}

	sess, list, err := tc.load(c)
	if err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	task := models.Task{
		ID:      uuid.NewString(),
		Text:    req.Text,
		Subject: req.Subject,
	}
	list.Tasks = append(list.Tasks, task)
	if err := tc.save(sess, list); err != nil {
		return utils.InternalServerError(c, err.Error())
	}
	return utils.Message(c, fiber.StatusCreated, "Task added successfully!", fiber.Map{"task": task})
}

// Toggle переключает статус выполнения задачи
func (tc *TodoController) Toggle(c *fiber.Ctx) error {
	sess, list, err := tc.load(c)
	if err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	taskID := c.Params("taskID")
	for i := range list.Tasks {
		if list.Tasks[i].ID != taskID {
			continue
		}
		list.Tasks[i].Completed = !list.Tasks[i].Completed
		if err := tc.save(sess, list); err != nil {
			return utils.InternalServerError(c, err.Error())
		}
		return utils.Message(c, fiber.StatusOK, "Task updated successfully!", fiber.Map{"task": list.Tasks[i]})
	}
	return utils.NotFound(c, "Task not found!")
}
