package service

import (
	"context"
	"time"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/reqctx"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"go.uber.org/zap"
)

type NotificationService interface {
	Notify(ctx context.Context, n *model.Notification)
	List(ctx context.Context, f repository.NotificationFilter, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, f repository.NotificationFilter) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// Notify is best-effort; it logs errors but does not return them to avoid breaking main flows.
func (s *notificationService) Notify(ctx context.Context, n *model.Notification) {
	if n == nil || n.UserID == 0 || n.Type == "" {
		return
	}
	nctx, cancel := withShortDeadline(ctx)
	defer cancel()
	if err := s.repo.Create(nctx, n); err != nil {
		reqctx.Logger(ctx).Warn("notification not stored",
			zap.Uint64("user_id", n.UserID),
			zap.String("type", n.Type),
			zap.Error(err))
	}
}

// List returns the filtered inbox plus the user's total unread count.
func (s *notificationService) List(ctx context.Context, f repository.NotificationFilter, limit int) ([]model.Notification, int64, error) {
	if f.UserID == 0 {
		return nil, 0, nil
	}
	if err := checkNotificationType(f.Type); err != nil {
		return nil, 0, err
	}
	list, err := s.repo.List(ctx, f, limit)
	if err != nil {
		return nil, 0, err
	}
	cnt, err := s.repo.CountUnread(ctx, f.UserID)
	if err != nil {
		return list, 0, err
	}
	return list, cnt, nil
}

// MarkRead marks the user's unread notifications matching f. An empty
// filter clears the whole inbox.
func (s *notificationService) MarkRead(ctx context.Context, f repository.NotificationFilter) (int64, error) {
	if f.UserID == 0 {
		return 0, nil
	}
	if err := checkNotificationType(f.Type); err != nil {
		return 0, err
	}
	return s.repo.MarkRead(ctx, f)
}

func checkNotificationType(t string) error {
	switch t {
	case "", model.NotificationCollectionStatus, model.NotificationTransaction, model.NotificationRedemption:
		return nil
	}
	return wrap(ErrValidation, "unknown notification type "+t)
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

// withShortDeadline detaches from the request so a client hang-up does not
// drop the notification, but still bounds the write.
func withShortDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
}
