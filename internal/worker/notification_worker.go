package worker

import (
	"github.com/spec-kit/reservation-service/internal/service"
)

// StartNotificationWorker registers notification handlers on the
// dispatcher. Delivery stays synchronous with the publishing request;
// there is no background processing.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
