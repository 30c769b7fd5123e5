package notifications

import (
	"bytes"
	"html/template"

	"github.com/samber/lo"
)

type Template interface {
	Subject() string
	RenderHTML() (string, error)
	RenderMarkdown() (string, error)
}

// Send delivers the message to every target. Delivery failures don't stop
// the remaining targets, the first error is reported after all sends.
func (c *Client) Send(targets []Target, message Template) error {
	var errs []error

	for _, target := range targets {
		var err error
		switch target.Type {
		case TargetTypeEmail:
			err = c.services.SendEmail(target.ID, message)
		case TargetTypeTelegram:
			err = c.services.SendTelegramMessage(target.ID, message)
		case TargetTypeSMS:
			err = c.services.SendSMS(target.ID, message)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	if first, ok := lo.First(errs); ok {
		return first
	}
	return nil
}

func renderHtmlTemplate(t *template.Template, data any) (string, error) {
	var writer bytes.Buffer
	err := t.Execute(&writer, data)
	if err != nil {
		return "", err
	}
	return writer.String(), nil
}
