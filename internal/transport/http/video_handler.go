package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eduflix-api/internal/application/usecase"
	"eduflix-api/internal/domain"
)

type VideoHandler struct {
	videos *usecase.VideoUseCase
}

func NewVideoHandler(videos *usecase.VideoUseCase) *VideoHandler {
	return &VideoHandler{videos: videos}
}

func (h *VideoHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	videos, total, err := h.videos.List(c, c.Query("search"), c.Query("category"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	video, err := h.videos.Get(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) Popular(c *gin.Context) {
	videos, err := h.videos.Popular(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (h *VideoHandler) Related(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	videos, err := h.videos.Related(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (h *VideoHandler) Create(c *gin.Context) {
	var video domain.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.videos.Create(c, &video); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

func (h *VideoHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var video domain.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	video.ID = id

	if err := h.videos.Update(c, &video); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.videos.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}

type rateReq struct {
	Value   int    `json:"value" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *VideoHandler) Rate(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.videos.Rate(c, uid, id, req.Value, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}
