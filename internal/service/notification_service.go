package service

import (
	"context"
	"encoding/json"
	"fmt"

	"timetrack-backend/internal/model"
	"timetrack-backend/internal/repository"
	ws "timetrack-backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type NotificationResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Body      string  `json:"body,omitempty"`
	RequestID *string `json:"request_id,omitempty"`
	Read      bool    `json:"read"`
	CreatedAt string  `json:"created_at"`
}

// RequestEvent is the websocket payload pushed on lifecycle transitions.
type RequestEvent struct {
	Event     string `json:"event"`
	UserID    string `json:"user_id"`
	RequestID string `json:"request_id"`
	Type      string `json:"type"`
	Status    string `json:"status"`
}

type NotificationService interface {
	// NotifyRequestEvent writes an inbox row for the request owner and pushes
	// the event over the websocket hub. Best effort: notification failures are
	// logged, never surfaced to the mutation that triggered them.
	NotifyRequestEvent(ctx context.Context, request *model.Request, eventType string)
	ListForUser(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]NotificationResponse, int64, error)
	MarkRead(ctx context.Context, userID string, id string) error
}

type notificationService struct {
	repo   repository.NotificationRepository
	hub    *ws.Hub
	logger *logrus.Logger
}

func NewNotificationService(repo repository.NotificationRepository, hub *ws.Hub) NotificationService {
	return &notificationService{repo: repo, hub: hub, logger: logrus.New()}
}

func (s *notificationService) NotifyRequestEvent(ctx context.Context, request *model.Request, eventType string) {
	if request == nil {
		return
	}

	notification := model.Notification{
		UserID:    request.UserID,
		Type:      eventType,
		Title:     titleFor(eventType, request.Type),
		Body:      bodyFor(eventType, request),
		RequestID: &request.ID,
	}
	if err := s.repo.Create(ctx, &notification); err != nil {
		s.logger.WithError(err).Error("failed to store notification")
	}

	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(RequestEvent{
		Event:     eventType,
		UserID:    request.UserID.String(),
		RequestID: request.ID.String(),
		Type:      request.Type,
		Status:    request.Status,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to encode request event")
		return
	}
	s.hub.SendToUser(request.UserID.String(), payload)
}

func (s *notificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]NotificationResponse, int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user id: %w", err)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	notifications, total, err := s.repo.ListByUser(ctx, uid, unreadOnly, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	result := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp := NotificationResponse{
			ID:        n.ID.String(),
			Type:      n.Type,
			Title:     n.Title,
			Body:      n.Body,
			Read:      n.Read,
			CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if n.RequestID != nil {
			v := n.RequestID.String()
			resp.RequestID = &v
		}
		result = append(result, resp)
	}
	return result, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, id string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	nid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid notification id: %w", err)
	}
	if err := s.repo.MarkRead(ctx, uid, nid); err != nil {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func titleFor(eventType, requestType string) string {
	switch eventType {
	case model.NotificationRequestApproved:
		return fmt.Sprintf("Your %s request was approved", requestType)
	case model.NotificationRequestRejected:
		return fmt.Sprintf("Your %s request was rejected", requestType)
	case model.NotificationRequestCancelled:
		return fmt.Sprintf("Your %s request was cancelled", requestType)
	default:
		return fmt.Sprintf("%s request update", requestType)
	}
}

func bodyFor(eventType string, request *model.Request) string {
	switch eventType {
	case model.NotificationRequestRejected:
		return request.RejectionReason
	case model.NotificationRequestCancelled:
		return request.CancellationReason
	default:
		return ""
	}
}
