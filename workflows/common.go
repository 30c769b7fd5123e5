package workflows

import (
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/reelkit/media-assembly/services/notifications"
)

// notificationTargets reads the configured completion/failure recipients.
// Empty configuration means nobody gets notified, which is fine for local
// runs.
func notificationTargets() []notifications.Target {
	var targets []notifications.Target

	emails := strings.Split(os.Getenv("NOTIFICATION_EMAILS"), ",")
	emails = lo.Filter(emails, func(e string, _ int) bool {
		return strings.TrimSpace(e) != ""
	})
	for _, email := range emails {
		targets = append(targets, notifications.Target{
			Type: notifications.TargetTypeEmail,
			ID:   strings.TrimSpace(email),
		})
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		targets = append(targets, notifications.Target{
			Type: notifications.TargetTypeTelegram,
			ID:   chatID,
		})
	}

	return targets
}
