package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eduflix-api/internal/application/usecase"
	"eduflix-api/internal/domain"
)

// StatsRenderer рисует выгрузку статистики картинкой.
type StatsRenderer interface {
	StatsReport(stats domain.UserStats) ([]byte, error)
}

type UserHandler struct {
	library  *usecase.LibraryUseCase
	progress *usecase.ProgressUseCase
	certs    *usecase.CertificateUseCase
	renderer StatsRenderer
}

func NewUserHandler(
	library *usecase.LibraryUseCase,
	progress *usecase.ProgressUseCase,
	certs *usecase.CertificateUseCase,
	renderer StatsRenderer,
) *UserHandler {
	return &UserHandler{library: library, progress: progress, certs: certs, renderer: renderer}
}

func (h *UserHandler) Stats(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	stats, err := h.library.Stats(c, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) ExportStats(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	stats, err := h.library.Stats(c, uid)
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := h.renderer.StatsReport(stats)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="mi-progreso.png"`)
	c.Data(http.StatusOK, "image/png", data)
}

func (h *UserHandler) Recommendations(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	recs, err := h.library.Recommendations(c, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *UserHandler) ToggleFavorite(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	videoID, ok := pathUUID(c, "videoId")
	if !ok {
		return
	}

	added, err := h.library.ToggleFavorite(c, uid, videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": added})
}

func (h *UserHandler) Favorites(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	videos, err := h.library.FavoriteVideos(c, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (h *UserHandler) History(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	videos, err := h.library.HistoryVideos(c, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (h *UserHandler) ClearHistory(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.library.ClearHistory(c, uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
}

func (h *UserHandler) GetProgress(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	videoID, ok := pathUUID(c, "videoId")
	if !ok {
		return
	}

	rec, err := h.progress.Get(c, uid, videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

type progressReq struct {
	Percent int  `json:"percent" binding:"min=0,max=100"`
	Reset   bool `json:"reset"`
}

// UpdateProgress принимает событие плеера и заодно отмечает видео
// в истории просмотров.
func (h *UserHandler) UpdateProgress(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	videoID, ok := pathUUID(c, "videoId")
	if !ok {
		return
	}

	var req progressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.progress.Update(c, uid, videoID, req.Percent, req.Reset)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = h.library.AddToHistory(c, uid, videoID)

	c.JSON(http.StatusOK, rec)
}

// IssueCertificate выдаёт сертификат только по завершённому курсу —
// проверка здесь, на границе API.
func (h *UserHandler) IssueCertificate(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	videoID, ok := pathUUID(c, "videoId")
	if !ok {
		return
	}

	rec, err := h.progress.Get(c, uid, videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !rec.Completed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El curso aún no está completado"})
		return
	}

	url, err := h.certs.Issue(c, uid, videoID, rec.LastWatched)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (h *UserHandler) Certificates(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	certs, err := h.certs.List(c, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"certificates": certs})
}
