package mailer

import (
	"fmt"
	"strings"
	"time"

	"studyquest/backend/models"
)

// emailShell wraps a body fragment in the shared card layout used by all
// notification emails.
func emailShell(content string) string {
	return fmt.Sprintf(`
	<html>
	<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f9f9f9;">
		<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 10px; border-top: 5px solid #6b58cd; box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);">
			%s
			<p>Nya~ 😺</p>
			<div style="margin-top: 20px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #999;">
				<p>This is an automated message from your Study Quest app.</p>
			</div>
		</div>
	</body>
	</html>
	`, content)
}

func progressBar(progressPct float64) string {
	return fmt.Sprintf(`
		<div style="background-color: white; border-radius: 5px; padding: 10px; margin-top: 10px;">
			<h3 style="color: #66bb6a;">Current Progress: %.1f%%</h3>
			<div style="background-color: #f5f5f5; border-radius: 10px; height: 20px; overflow: hidden;">
				<div style="width: %.1f%%; height: 100%%; background-color: #66bb6a;"></div>
			</div>
		</div>`, progressPct, progressPct)
}

func reminderBody(subjectName, testName, testDate string, daysRemaining int, progressPct float64) string {
	return emailShell(fmt.Sprintf(`
		<h1 style="color: #6b58cd;">Test Reminder</h1>
		<p>Hello! This is a reminder about your upcoming test:</p>
		<div style="background-color: #f0f0f0; padding: 15px; border-radius: 8px; margin: 15px 0;">
			<h2 style="margin-top: 0; color: #ff5f8f;">%s</h2>
			<p><strong>Subject:</strong> %s</p>
			<p><strong>Date:</strong> %s</p>
			<p><strong>Days Remaining:</strong> %d</p>
			%s
		</div>
		<p>Keep up the great work! Remember to review your study materials and get enough rest before the test.</p>`,
		testName, subjectName, testDate, daysRemaining, progressBar(progressPct)))
}

func dailyProgressBody(subjectName, testName string, completed models.RecordList) string {
	var items strings.Builder
	for _, record := range completed {
		items.WriteString(fmt.Sprintf("<li><strong>%s:</strong> %s</li>", record.TopicName, record.ResourceName))
	}
	return emailShell(fmt.Sprintf(`
		<h1 style="color: #6b58cd;">Daily Progress Summary</h1>
		<p>Hello! Here's your daily progress update:</p>
		<div style="background-color: #f0f0f0; padding: 15px; border-radius: 8px; margin: 15px 0;">
			<h2 style="margin-top: 0; color: #ff5f8f;">%s</h2>
			<p><strong>Subject:</strong> %s</p>
			<p><strong>Date:</strong> %s</p>
			<h3 style="color: #66bb6a;">Resources Completed Today: %d</h3>
			<ul style="padding-left: 20px;">%s</ul>
		</div>
		<p>Great job on your progress today!</p>`,
		testName, subjectName, time.Now().Format("2006-01-02"), len(completed), items.String()))
}

func completeBody(subjectName, testName string, progressPct float64, completedUnits, totalUnits int) string {
	completionPct := 0.0
	if totalUnits > 0 {
		completionPct = 100 * float64(completedUnits) / float64(totalUnits)
	}
	return emailShell(fmt.Sprintf(`
		<h1 style="color: #6b58cd;">Test Preparation Complete! 🎊</h1>
		<p>Congratulations! You've completed your preparation for:</p>
		<div style="background-color: #f0f0f0; padding: 15px; border-radius: 8px; margin: 15px 0;">
			<h2 style="margin-top: 0; color: #ff5f8f;">%s</h2>
			<p><strong>Subject:</strong> %s</p>
			%s
			<div style="margin-top: 15px;">
				<h3 style="color: #66bb6a;">Resources Completed: %d/%d (%.1f%%)</h3>
			</div>
		</div>
		<p>You're well prepared for your test! Best of luck! 🍀</p>`,
		testName, subjectName, progressBar(progressPct), completedUnits, totalUnits, completionPct))
}

func upcomingSummaryBody(tests []models.TestOverview) string {
	var cards strings.Builder
	for _, test := range tests {
		cards.WriteString(fmt.Sprintf(`
		<div style="background-color: #f0f0f0; padding: 15px; border-radius: 8px; margin: 15px 0;">
			<h3 style="margin-top: 0; color: #ff5f8f;">%s</h3>
			<p><strong>Subject:</strong> %s</p>
			<p><strong>Date:</strong> %s</p>
			%s
		</div>`, test.TestName, test.SubjectName, test.Date, progressBar(test.Progress)))
	}
	return emailShell(fmt.Sprintf(`
		<h1 style="color: #6b58cd;">Upcoming Tests Summary</h1>
		<p>Hello! Here are your upcoming tests:</p>
		%s
		<p>Keep up the great work with your studies!</p>`, cards.String()))
}

func testEmailBody() string {
	return emailShell(`
		<h1 style="color: #6b58cd;">Email Configuration Test</h1>
		<p>Hello! This is a test email from your Study Quest app.</p>
		<div style="background-color: #f0f0f0; padding: 15px; border-radius: 8px; margin: 15px 0;">
			<h3 style="color: #66bb6a;">✅ Email configuration is working!</h3>
			<p>If you're seeing this email, it means your email settings are configured correctly.</p>
		</div>
		<p>You can now receive test reminders, daily progress updates, completion notifications and upcoming tests summaries.</p>`)
}
