package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"studyquest/backend/config"
	"studyquest/backend/mailer"
	"studyquest/backend/progress"
	"studyquest/backend/studyplan"
	"studyquest/backend/utils"
)

// reminderDays are the days-remaining marks at which the sweep mails a
// reminder for an upcoming test.
var reminderDays = []int{7, 3, 1}

type EmailController struct {
	Service *studyplan.Service
	Mailer  *mailer.Mailer
	Config  *config.Config
}

func NewEmailController(service *studyplan.Service, m *mailer.Mailer, cfg *config.Config) *EmailController {
	return &EmailController{Service: service, Mailer: m, Config: cfg}
}

// GetConfig возвращает настройки почты и результат проверки соединения
func (ec *EmailController) GetConfig(c *fiber.Ctx) error {
	valid, status := ec.Mailer.ValidateConfig()
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"mail_server":   ec.Config.MailServer,
		"mail_port":     ec.Config.MailPort,
		"mail_username": ec.Config.MailUsername,
		"configured":    ec.Mailer.Configured(),
		"valid":         valid,
		"status":        status,
	})
}

// SendTest отправляет проверочное письмо на собственный адрес
func (ec *EmailController) SendTest(c *fiber.Ctx) error {
	if err := ec.Mailer.SendTestEmail(); err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK, "Test email sent successfully!", nil)
}

// Reminder отправляет напоминание о предстоящем тесте
func (ec *EmailController) Reminder(c *fiber.Ctx) error {
	subjectName := param(c, "name")
	view, err := ec.Service.TrackProgress(subjectName, c.Params("testID"))
	if err != nil {
		return respondError(c, err)
	}

	if err := ec.Mailer.TestReminder(subjectName, view.Test.Name, view.Test.Date, view.Test.Progress); err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK,
		fmt.Sprintf("Reminder email sent for %s!", view.Test.Name), nil)
}

// Summary отправляет сводку сегодняшнего прогресса по тесту
func (ec *EmailController) Summary(c *fiber.Ctx) error {
	subjectName := param(c, "name")
	view, err := ec.Service.TrackProgress(subjectName, c.Params("testID"))
	if err != nil {
		return respondError(c, err)
	}

	todays := ec.Service.TodaysResources(subjectName, view.Test.ID)
	if len(todays) == 0 {
		return utils.Message(c, fiber.StatusOK, "No progress recorded today, nothing to summarize.", nil)
	}

	if err := ec.Mailer.DailyProgress(subjectName, view.Test.Name, todays); err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK,
		fmt.Sprintf("Daily progress email sent for %s!", view.Test.Name), nil)
}

// Upcoming отправляет дайджест по всем предстоящим тестам в окне
func (ec *EmailController) Upcoming(c *fiber.Ctx) error {
	var req struct {
		Days int `json:"days"`
	}
	_ = c.BodyParser(&req)
	if req.Days <= 0 {
		req.Days = 7
	}

	tests := ec.Service.UpcomingTests(req.Days)
	if len(tests) == 0 {
		return utils.Message(c, fiber.StatusOK,
			fmt.Sprintf("No upcoming tests in the next %d days.", req.Days), nil)
	}

	if err := ec.Mailer.UpcomingSummary(tests); err != nil {
		return respondError(c, err)
	}
	return utils.Message(c, fiber.StatusOK,
		fmt.Sprintf("Upcoming tests summary sent (%d tests)!", len(tests)), nil)
}

// CheckUpcoming рассылает напоминания по тестам через 7, 3 и 1 день
func (ec *EmailController) CheckUpcoming(c *fiber.Ctx) error {
	statuses := []string{}
	for _, overview := range ec.Service.UpcomingTests(7) {
		days := progress.DaysRemaining(overview.Date)
		if !reminderAt(days) {
			continue
		}
		err := ec.Mailer.TestReminder(overview.SubjectName, overview.TestName, overview.Date, overview.Progress)
		if err != nil {
			statuses = append(statuses, fmt.Sprintf("failed to send reminder for %s: %v", overview.TestName, err))
			continue
		}
		statuses = append(statuses, fmt.Sprintf("reminder sent for %s (%d days left)", overview.TestName, days))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"reminders": statuses,
	})
}

func reminderAt(days int) bool {
	for _, mark := range reminderDays {
		if days == mark {
			return true
		}
	}
	return false
}
