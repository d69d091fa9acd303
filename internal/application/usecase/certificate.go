package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eduflix-api/internal/domain"
	"eduflix-api/internal/pkg/logger"
)

type CertificateRenderer interface {
	Certificate(data domain.CertificateData) ([]byte, error)
}

// DocumentStore кладёт готовый документ и возвращает публичный URL.
type DocumentStore interface {
	Store(ctx context.Context, name string, data []byte) (string, error)
}

type CertificateRepo interface {
	Create(ctx context.Context, cert *domain.Certificate) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Certificate, error)
}

type UserGetter interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type AchievementMailer interface {
	SendCertificateEmail(toEmail, studentName, courseName, certificateURL string) error
}

// CertificateUseCase выпускает сертификаты о завершении курса.
// Завершённость НЕ перепроверяет — это граница ответственности вызывающего:
// гейт находится на записи прогресса, не здесь.
type CertificateUseCase struct {
	renderer      CertificateRenderer
	docs          DocumentStore
	certs         CertificateRepo
	users         UserGetter
	catalog       VideoCatalog
	notifications *NotificationUseCase
	mailer        AchievementMailer
	log           *logger.Logger
}

func NewCertificateUseCase(
	renderer CertificateRenderer,
	docs DocumentStore,
	certs CertificateRepo,
	users UserGetter,
	catalog VideoCatalog,
	notifications *NotificationUseCase,
	mailer AchievementMailer,
	log *logger.Logger,
) *CertificateUseCase {
	return &CertificateUseCase{
		renderer:      renderer,
		docs:          docs,
		certs:         certs,
		users:         users,
		catalog:       catalog,
		notifications: notifications,
		mailer:        mailer,
		log:           log,
	}
}

// Issue рендерит документ, сохраняет его и возвращает URL. При любой
// ошибке ничего не остаётся записанным — половинчатых сертификатов нет.
func (uc *CertificateUseCase) Issue(ctx context.Context, userID, videoID uuid.UUID, completionDate time.Time) (string, error) {
	user, err := uc.users.GetUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	video, err := uc.catalog.GetVideo(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("%w: video %s", domain.ErrNotFound, videoID)
	}

	data, err := uc.renderer.Certificate(domain.CertificateData{
		StudentName:    user.Name,
		CourseName:     video.Title,
		CompletionDate: completionDate,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRender, err)
	}

	certID := uuid.New()
	name := fmt.Sprintf("%s/%s.png", userID, certID)
	url, err := uc.docs.Store(ctx, name, data)
	if err != nil {
		return "", fmt.Errorf("%w: document store: %v", domain.ErrPersistence, err)
	}

	cert := &domain.Certificate{
		ID:       certID,
		UserID:   userID,
		VideoID:  videoID,
		URL:      url,
		IssuedAt: completionDate,
	}
	if err := uc.certs.Create(ctx, cert); err != nil {
		return "", fmt.Errorf("%w: certificate record: %v", domain.ErrPersistence, err)
	}

	if _, err := uc.notifications.Add(ctx, userID, domain.NotificationAchievement,
		"¡Nuevo certificado!",
		fmt.Sprintf("Has obtenido un certificado por completar %s", video.Title),
	); err != nil {
		uc.log.Warn("certificate notification failed", "userId", userID, "error", err)
	}

	if uc.mailer != nil {
		// Письмо не должно тормозить ответ
		go func() {
			if err := uc.mailer.SendCertificateEmail(user.Email, user.Name, video.Title, url); err != nil {
				uc.log.Warn("certificate email failed", "email", user.Email, "error", err)
			}
		}()
	}

	return url, nil
}

func (uc *CertificateUseCase) List(ctx context.Context, userID uuid.UUID) ([]domain.Certificate, error) {
	return uc.certs.ListByUser(ctx, userID)
}
