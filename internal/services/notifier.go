package services

import (
	"context"

	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/anonto42/birdie/backend/internal/monitoring"
	"github.com/anonto42/birdie/backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

// notifier appends notifications as a side effect. Failures are logged and
// counted but never reach the caller of the primary operation.
type notifier struct {
	repo repositories.NotificationRepository
}

func (n notifier) notify(ctx context.Context, recipientID, senderID uint, ev models.NotificationEvent) {
	if recipientID == senderID {
		return
	}
	if err := n.repo.CreateNotification(ctx, models.NewNotification(recipientID, senderID, ev)); err != nil {
		monitoring.NotificationFailures.WithLabelValues(string(ev.Type())).Inc()
		logrus.WithError(err).WithFields(logrus.Fields{
			"type":      ev.Type(),
			"recipient": recipientID,
			"sender":    senderID,
		}).Warn("Notification creation failed")
	}
}
