package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SimpleRender(t *testing.T) {
	msg := Simple{
		Title:   "Hello",
		Message: "Something happened",
	}

	html, err := msg.RenderHTML()
	assert.NoError(t, err)
	assert.Contains(t, html, "<h2>Hello</h2>")
	assert.Contains(t, html, "Something happened")

	markdown, err := msg.RenderMarkdown()
	assert.NoError(t, err)
	assert.Contains(t, markdown, "*Hello*")
	assert.Equal(t, "Hello", msg.Subject())
}

func Test_ProductionCompletedRender(t *testing.T) {
	msg := ProductionCompleted{
		TitleID:         "ep-042",
		OutputPath:      "/mnt/output/kids/7/ep-042_draft.mp4",
		DurationSeconds: 58.5,
		FileSizeBytes:   1024,
		Notes:           []string{"music skipped"},
	}

	html, err := msg.RenderHTML()
	assert.NoError(t, err)
	assert.Contains(t, html, "ep-042")
	assert.Contains(t, html, "music skipped")

	markdown, err := msg.RenderMarkdown()
	assert.NoError(t, err)
	assert.Contains(t, markdown, "58.5 seconds")
	assert.Contains(t, markdown, "music skipped")
}

func Test_ProductionFailedRender(t *testing.T) {
	msg := ProductionFailed{
		TitleID:      "ep-042",
		Stage:        "alignment",
		ErrorMessage: "no aligned words",
	}

	assert.Equal(t, "Production failed: ep-042", msg.Subject())

	html, err := msg.RenderHTML()
	assert.NoError(t, err)
	assert.Contains(t, html, "<code>alignment</code>")
	assert.Contains(t, html, "no aligned words")
}

type recordingServices struct {
	emails    []string
	telegrams []string
}

func (s *recordingServices) SendEmail(email string, _ Template) error {
	s.emails = append(s.emails, email)
	return nil
}

func (s *recordingServices) SendTelegramMessage(chatID string, _ Template) error {
	s.telegrams = append(s.telegrams, chatID)
	return nil
}

func (s *recordingServices) SendSMS(string, Template) error {
	return nil
}

func Test_SendAllTargets(t *testing.T) {
	services := &recordingServices{}
	client := NewClient(services)

	err := client.Send([]Target{
		{Type: TargetTypeEmail, ID: "ops@example.com"},
		{Type: TargetTypeTelegram, ID: "1234"},
	}, Simple{Title: "Hi"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"ops@example.com"}, services.emails)
	assert.Equal(t, []string{"1234"}, services.telegrams)
}
