package emails

import (
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/reelkit/media-assembly/services/notifications"
)

func Send(email string, message notifications.Template) error {
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	from := mail.NewEmail("Media Assembly", os.Getenv("EMAIL_FROM_ADDRESS"))
	to := mail.NewEmail(email, email)
	content, err := message.RenderHTML()
	if err != nil {
		return err
	}
	m := mail.NewV3MailInit(from, message.Subject(), to, mail.NewContent("text/html", content))
	_, err = client.Send(m)
	return err
}
