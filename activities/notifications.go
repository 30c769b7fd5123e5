package activities

import (
	"context"
	"strconv"

	"go.temporal.io/sdk/activity"

	"github.com/reelkit/media-assembly/services/emails"
	"github.com/reelkit/media-assembly/services/notifications"
	"github.com/reelkit/media-assembly/services/telegram"
)

type NotifyResult struct{}

type NotifySimpleInput struct {
	Targets []notifications.Target
	Message notifications.Simple
}

func NotifySimple(ctx context.Context, input NotifySimpleInput) (*NotifyResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Sending notification")

	client := notifications.NewClient(notificationServices{})
	return &NotifyResult{}, client.Send(input.Targets, input.Message)
}

type NotifyProductionCompletedInput struct {
	Targets []notifications.Target
	Message notifications.ProductionCompleted
}

func NotifyProductionCompleted(ctx context.Context, input NotifyProductionCompletedInput) (*NotifyResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Sending notification")

	client := notifications.NewClient(notificationServices{})
	return &NotifyResult{}, client.Send(input.Targets, input.Message)
}

type NotifyProductionFailedInput struct {
	Targets []notifications.Target
	Message notifications.ProductionFailed
}

func NotifyProductionFailed(ctx context.Context, input NotifyProductionFailedInput) (*NotifyResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Sending notification")

	client := notifications.NewClient(notificationServices{})
	return &NotifyResult{}, client.Send(input.Targets, input.Message)
}

type notificationServices struct {
}

func (ns notificationServices) SendEmail(email string, message notifications.Template) error {
	return emails.Send(email, message)
}

func (ns notificationServices) SendTelegramMessage(chatID string, message notifications.Template) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return err
	}
	_, err = telegram.SendTelegramMessage(id, message)
	return err
}

func (ns notificationServices) SendSMS(string, notifications.Template) error {
	return nil
}
