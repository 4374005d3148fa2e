package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rescue-service/internal/emergency"
	"rescue-service/internal/user"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

type NotificationService interface {
	RegisterToken(ctx context.Context, userID, userRole, token string) error

	// emergency.Notifier
	RequestCreated(ctx context.Context, request *emergency.Request)
	RequestAccepted(ctx context.Context, request *emergency.Request)
	RequestCompleted(ctx context.Context, request *emergency.Request)
	PendingReminder(ctx context.Context, request *emergency.Request)
}

type notificationService struct {
	tokenRepository TokenRepository
	fireBase        *firebase.App
	logger          *zap.SugaredLogger
}

// NewNotificationService wires the token registry to Firebase Cloud
// Messaging. fb may be nil when no credentials are configured; every
// push then degrades to a logged no-op.
func NewNotificationService(repo TokenRepository, fb *firebase.App, logger *zap.SugaredLogger) NotificationService {
	return &notificationService{
		tokenRepository: repo,
		fireBase:        fb,
		logger:          logger,
	}
}

func (s *notificationService) RegisterToken(ctx context.Context, userID, userRole, token string) error {

	if token == "" {
		return errors.New("token is required")
	}

	if userID == "" {
		return errors.New("user id is required")
	}

	return s.tokenRepository.Save(ctx, &DeviceToken{
		Token:     token,
		UserID:    userID,
		UserRole:  userRole,
		CreatedAt: time.Now(),
	})
}

// RequestCreated alerts every registered responder device about a new
// pending request.
func (s *notificationService) RequestCreated(ctx context.Context, request *emergency.Request) {

	tokens, err := s.tokenRepository.FindTokensByRole(ctx, user.RoleResponder)
	if err != nil {
		s.logger.Warnf("Failed to load responder tokens: %v", err)
		return
	}

	title := "🚨 New emergency request"
	body := fmt.Sprintf("%s needs help: %s", request.UserName, request.EmergencyType)
	s.send(ctx, tokens, title, body, request)
}

func (s *notificationService) RequestAccepted(ctx context.Context, request *emergency.Request) {

	title := "✅ Help is on the way"
	body := fmt.Sprintf("%s accepted your %s request", request.ResponderName, request.EmergencyType)
	s.sendToUser(ctx, request.UserID, title, body, request)
}

func (s *notificationService) RequestCompleted(ctx context.Context, request *emergency.Request) {

	title := "🏁 Request completed"
	body := fmt.Sprintf("Your %s request has been marked as completed", request.EmergencyType)
	s.sendToUser(ctx, request.UserID, title, body, request)
}

// PendingReminder re-alerts responders about a request nobody claimed.
func (s *notificationService) PendingReminder(ctx context.Context, request *emergency.Request) {

	tokens, err := s.tokenRepository.FindTokensByRole(ctx, user.RoleResponder)
	if err != nil {
		s.logger.Warnf("Failed to load responder tokens: %v", err)
		return
	}

	title := "⏰ Unclaimed emergency request"
	body := fmt.Sprintf("%s is still waiting for help: %s", request.UserName, request.EmergencyType)
	s.send(ctx, tokens, title, body, request)
}

func (s *notificationService) sendToUser(ctx context.Context, userID, title, body string, request *emergency.Request) {

	tokens, err := s.tokenRepository.FindTokensByUser(ctx, userID)
	if err != nil {
		s.logger.Warnf("Failed to load tokens for user %s: %v", userID, err)
		return
	}

	s.send(ctx, tokens, title, body, request)
}

func (s *notificationService) send(ctx context.Context, tokens []string, title, body string, request *emergency.Request) {

	if s.fireBase == nil {
		s.logger.Debugf("Firebase not configured, skipping push %q", title)
		return
	}

	if len(tokens) == 0 {
		s.logger.Debugf("No device tokens registered, skipping push %q", title)
		return
	}

	client, err := s.fireBase.Messaging(ctx)
	if err != nil {
		s.logger.Warnf("Firebase messaging client error: %v", err)
		return
	}

	successCount := 0
	for _, token := range tokens {
		if token == "" {
			continue
		}

		msg := &messaging.Message{
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: map[string]string{
				"request_id": request.ID.Hex(),
				"status":     string(request.Status),
			},
			Token: token,
		}

		if _, err := client.Send(ctx, msg); err != nil {
			s.logger.Warnf("Failed to send push to token %s: %v", token, err)
		} else {
			successCount++
		}
	}

	s.logger.Infof("Request %s: sent %d/%d push notifications", request.ID.Hex(), successCount, len(tokens))
}
