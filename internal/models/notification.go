package models

// NotificationEvent is the fire-and-forget event published to the notification
// channel for the dashboard app. No acknowledgement is awaited.
type NotificationEvent struct {
	// UserID is the acting user, empty for system-originated events.
	UserID string `json:"user_id,omitempty"`
	// TargetUserID is the user the notification is addressed to.
	TargetUserID string `json:"target_user_id"`
	// EntityID and EntityType identify the subject entity (application, vacancy).
	EntityID   string `json:"entity_id"`
	EntityType string `json:"entity_type"`
	// NotificationType selects the delivery surface.
	NotificationType string `json:"notification_type"`
	// ContentVariables carries free-form key/value payload for rendering.
	ContentVariables map[string]string `json:"content_variables,omitempty"`
}

// NotificationTypeDashboard is the only delivery surface the backend emits.
const NotificationTypeDashboard = "DASHBOARD_APP"

// InAppNotification builds a dashboard notification event.
func InAppNotification(userID, targetUserID, entityID, entityType string, vars map[string]string) NotificationEvent {
	return NotificationEvent{
		UserID:           userID,
		TargetUserID:     targetUserID,
		EntityID:         entityID,
		EntityType:       entityType,
		NotificationType: NotificationTypeDashboard,
		ContentVariables: vars,
	}
}
