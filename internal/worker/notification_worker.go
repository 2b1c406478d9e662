package worker

import (
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to the event
// dispatcher.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService) {
	if dispatcher == nil || notifications == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, notifications.HandleTicketCreated)
	dispatcher.Subscribe(events.EventTicketStatusChanged, notifications.HandleStatusChanged)
	dispatcher.Subscribe(events.EventTicketAssigned, notifications.HandleAssigned)
	dispatcher.Subscribe(events.EventTicketCommentAdded, notifications.HandleCommentAdded)
}
