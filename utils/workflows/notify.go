package wfutils

import (
	"os"

	"go.temporal.io/sdk/workflow"

	"github.com/reelkit/media-assembly/activities"
	"github.com/reelkit/media-assembly/services/notifications"
)

func Notify(ctx workflow.Context, targets []notifications.Target, title, message string) error {
	return Execute(ctx, activities.NotifySimple, activities.NotifySimpleInput{
		Targets: targets,
		Message: notifications.Simple{
			Title:   title,
			Message: message,
		},
	}).Wait(ctx)
}

func NotifyTelegramChannel(ctx workflow.Context, message string) error {
	return Execute(ctx, activities.NotifySimple, activities.NotifySimpleInput{
		Targets: []notifications.Target{
			{
				ID:   os.Getenv("TELEGRAM_CHAT_ID"),
				Type: notifications.TargetTypeTelegram,
			},
		},
		Message: notifications.Simple{
			Message: message,
		},
	}).Wait(ctx)
}
