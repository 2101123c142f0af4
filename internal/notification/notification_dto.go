package notification

import "time"

type CreateNotificationRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	RecipientName  string `json:"recipient_name" binding:"required"`
	Type           string `json:"type"`
	Subject        string `json:"subject" binding:"required"`
	Message        string `json:"message" binding:"required"`
}

type NotificationResponse struct {
	ID             string     `json:"id"`
	RecipientEmail string     `json:"recipient_email"`
	RecipientName  string     `json:"recipient_name"`
	Type           string     `json:"type"`
	Subject        string     `json:"subject"`
	Message        string     `json:"message"`
	Status         string     `json:"status"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	RetryCount     int        `json:"retry_count"`
	CreatedAt      time.Time  `json:"created_at"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:             n.ID.String(),
		RecipientEmail: n.RecipientEmail,
		RecipientName:  n.RecipientName,
		Type:           n.Type,
		Subject:        n.Subject,
		Message:        n.Message,
		Status:         n.Status,
		ErrorMessage:   n.ErrorMessage,
		RetryCount:     n.RetryCount,
		CreatedAt:      n.CreatedAt,
		SentAt:         n.SentAt,
	}
}

func mapAllToResponse(rows []Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapToResponse(row))
	}
	return out
}
