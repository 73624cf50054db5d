package notify

import (
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

// Notifier delivers order confirmations. Delivery is best effort: checkout
// never fails because a notification did.
type Notifier interface {
	OrderConfirmed(user *domain.User, order *domain.Order) error
}

// LogNotifier records confirmations in the application log. It stands in for
// a real mail sender, which is an external collaborator of this service.
type LogNotifier struct{}

func (LogNotifier) OrderConfirmed(user *domain.User, order *domain.Order) error {
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"email":    user.Email,
		"order_id": order.ID,
		"total":    order.TotalAmount.String(),
	}).Info("Order confirmation notification")
	return nil
}
