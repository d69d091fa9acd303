package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"eduflix-api/internal/domain"
	"eduflix-api/internal/pkg/logger"
)

func testLogger() *logger.Logger {
	log, _ := logger.New("dev")
	return log
}

type progressKey struct {
	userID  uuid.UUID
	videoID uuid.UUID
}

type fakeProgressStore struct {
	records map[progressKey]*domain.ProgressRecord
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{records: make(map[progressKey]*domain.ProgressRecord)}
}

func (s *fakeProgressStore) Get(_ context.Context, userID, videoID uuid.UUID) (*domain.ProgressRecord, error) {
	rec, ok := s.records[progressKey{userID, videoID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (s *fakeProgressStore) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.ProgressRecord, error) {
	var out []domain.ProgressRecord
	for k, rec := range s.records {
		if k.userID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (s *fakeProgressStore) Apply(_ context.Context, userID, videoID uuid.UUID, percent int, reset bool) (bool, error) {
	key := progressKey{userID, videoID}
	rec, ok := s.records[key]
	if !ok {
		rec = &domain.ProgressRecord{UserID: userID, VideoID: videoID, CreatedAt: time.Now()}
	}
	completedNow, err := rec.Apply(percent, reset, time.Now())
	if err != nil {
		return false, err
	}
	s.records[key] = rec
	return completedNow, nil
}

func (s *fakeProgressStore) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	for k := range s.records {
		if k.userID == userID {
			delete(s.records, k)
		}
	}
	return nil
}

type fakeCatalog struct {
	videos      map[uuid.UUID]*domain.Video
	categories  []domain.Category
	completions map[uuid.UUID]int
}

func newFakeCatalog(videos ...*domain.Video) *fakeCatalog {
	c := &fakeCatalog{
		videos:      make(map[uuid.UUID]*domain.Video),
		completions: make(map[uuid.UUID]int),
	}
	for _, v := range videos {
		c.videos[v.ID] = v
	}
	return c
}

func (c *fakeCatalog) ListAll(context.Context) ([]domain.Video, error) {
	out := make([]domain.Video, 0, len(c.videos))
	for _, v := range c.videos {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (c *fakeCatalog) GetVideo(_ context.Context, id uuid.UUID) (*domain.Video, error) {
	v, ok := c.videos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (c *fakeCatalog) IncrementCompletions(_ context.Context, videoID uuid.UUID) error {
	c.completions[videoID]++
	return nil
}

func (c *fakeCatalog) ListCategories(context.Context) ([]domain.Category, error) {
	return c.categories, nil
}

type fakeNotificationStore struct {
	notifications []domain.Notification
}

func (s *fakeNotificationStore) Create(_ context.Context, n *domain.Notification) error {
	s.notifications = append([]domain.Notification{*n}, s.notifications...)
	return nil
}

func (s *fakeNotificationStore) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, userID, id uuid.UUID) error {
	for i := range s.notifications {
		if s.notifications[i].UserID == userID && s.notifications[i].ID == id {
			s.notifications[i].Read = true
		}
	}
	return nil
}

func (s *fakeNotificationStore) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	for i := range s.notifications {
		if s.notifications[i].UserID == userID {
			s.notifications[i].Read = true
		}
	}
	return nil
}

func (s *fakeNotificationStore) Delete(_ context.Context, userID, id uuid.UUID) error {
	out := s.notifications[:0]
	for _, n := range s.notifications {
		if !(n.UserID == userID && n.ID == id) {
			out = append(out, n)
		}
	}
	s.notifications = out
	return nil
}

func (s *fakeNotificationStore) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	out := s.notifications[:0]
	for _, n := range s.notifications {
		if n.UserID != userID {
			out = append(out, n)
		}
	}
	s.notifications = out
	return nil
}

func (s *fakeNotificationStore) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

type fakePublisher struct {
	published []domain.Notification
	fail      bool
}

func (p *fakePublisher) Publish(_ context.Context, _ uuid.UUID, n domain.Notification) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.published = append(p.published, n)
	return nil
}

type fakeRenderer struct {
	fail bool
	data []byte
}

func (r *fakeRenderer) Certificate(domain.CertificateData) ([]byte, error) {
	if r.fail {
		return nil, errors.New("render broke")
	}
	if r.data != nil {
		return r.data, nil
	}
	return []byte("png"), nil
}

type fakeDocStore struct {
	fail   bool
	stored map[string][]byte
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{stored: make(map[string][]byte)}
}

func (d *fakeDocStore) Store(_ context.Context, name string, data []byte) (string, error) {
	if d.fail {
		return "", errors.New("bucket unreachable")
	}
	d.stored[name] = data
	return "https://cdn.test/" + name, nil
}

type fakeCertRepo struct {
	fail  bool
	certs []domain.Certificate
}

func (r *fakeCertRepo) Create(_ context.Context, cert *domain.Certificate) error {
	if r.fail {
		return errors.New("db down")
	}
	r.certs = append(r.certs, *cert)
	return nil
}

func (r *fakeCertRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Certificate, error) {
	var out []domain.Certificate
	for _, c := range r.certs {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeLibraryStore struct {
	favorites map[uuid.UUID][]uuid.UUID
	history   map[uuid.UUID][]uuid.UUID
}

func newFakeLibraryStore() *fakeLibraryStore {
	return &fakeLibraryStore{
		favorites: make(map[uuid.UUID][]uuid.UUID),
		history:   make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *fakeLibraryStore) ToggleFavorite(_ context.Context, userID, videoID uuid.UUID) (bool, error) {
	favs := s.favorites[userID]
	for i, id := range favs {
		if id == videoID {
			s.favorites[userID] = append(favs[:i], favs[i+1:]...)
			return false, nil
		}
	}
	s.favorites[userID] = append(favs, videoID)
	return true, nil
}

func (s *fakeLibraryStore) ListFavorites(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.favorites[userID], nil
}

func (s *fakeLibraryStore) AddHistory(_ context.Context, userID, videoID uuid.UUID) error {
	hist := s.history[userID]
	for i, id := range hist {
		if id == videoID {
			hist = append(hist[:i], hist[i+1:]...)
			break
		}
	}
	// Последний просмотр всегда первым
	s.history[userID] = append([]uuid.UUID{videoID}, hist...)
	return nil
}

func (s *fakeLibraryStore) ListHistory(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.history[userID], nil
}

func (s *fakeLibraryStore) ClearHistory(_ context.Context, userID uuid.UUID) error {
	delete(s.history, userID)
	return nil
}

type fakeUserGetter struct {
	users map[uuid.UUID]*domain.User
}

func (g *fakeUserGetter) GetUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := g.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
