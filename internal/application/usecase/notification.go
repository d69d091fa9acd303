package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"eduflix-api/internal/domain"
	"eduflix-api/internal/pkg/logger"
)

type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Publisher — realtime-доставка (pub/sub). Best-effort: ошибки логируем,
// наружу не отдаём.
type Publisher interface {
	Publish(ctx context.Context, userID uuid.UUID, n domain.Notification) error
}

type NotificationUseCase struct {
	store     NotificationStore
	publisher Publisher
	log       *logger.Logger
}

func NewNotificationUseCase(store NotificationStore, publisher Publisher, log *logger.Logger) *NotificationUseCase {
	return &NotificationUseCase{store: store, publisher: publisher, log: log}
}

// Add назначает id и timestamp, сохраняет и публикует.
func (uc *NotificationUseCase) Add(ctx context.Context, userID uuid.UUID, typ, title, message string) (*domain.Notification, error) {
	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := uc.store.Create(ctx, n); err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, userID, *n); err != nil {
			uc.log.Warn("realtime publish failed", "userId", userID, "error", err)
		}
	}

	return n, nil
}

// List отдаёт уведомления от новых к старым.
func (uc *NotificationUseCase) List(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	return uc.store.ListByUser(ctx, userID)
}

// MarkRead — no-op для неизвестного id.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return uc.store.MarkRead(ctx, userID, id)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return uc.store.MarkAllRead(ctx, userID)
}

func (uc *NotificationUseCase) Remove(ctx context.Context, userID, id uuid.UUID) error {
	return uc.store.Delete(ctx, userID, id)
}

func (uc *NotificationUseCase) Clear(ctx context.Context, userID uuid.UUID) error {
	return uc.store.DeleteAllByUser(ctx, userID)
}

// UnreadCount всегда считается заново — отдельного счётчика нет,
// чтобы ему нечему было разъезжаться.
func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return uc.store.CountUnread(ctx, userID)
}
