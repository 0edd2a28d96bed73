package handlers

import (
	"log/slog"
	"net/http"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/middleware"
	"github.com/vidtube/vidtube_backend/internal/platform/config"

	"github.com/gin-gonic/gin"
)

// videoHandler handles the minimal video surface backing watch history.
type videoHandler struct {
	videoService portssvc.VideoSvcFacade
}

func newVideoHandler(vs portssvc.VideoSvcFacade) *videoHandler {
	return &videoHandler{
		videoService: vs,
	}
}

// registerVideoRoutes registers video publish and fetch routes.
func registerVideoRoutes(rg *gin.RouterGroup, cfg *config.Config, videoService portssvc.VideoSvcFacade) {
	h := newVideoHandler(videoService)

	videos := rg.Group("/videos", middleware.AuthMiddleware(cfg.AccessTokenSecret))
	{
		videos.POST("", h.publishVideo)
		videos.GET("/:videoID", h.getVideo)
	}
}

// publishVideo godoc
// @Summary Publish a new video
// @Description Uploads the video and thumbnail files from a multipart form and creates the video record owned by the caller.
// @Tags videos
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param duration formData number false "Duration in seconds"
// @Param videoFile formData file true "Video file"
// @Param thumbnail formData file true "Thumbnail image"
// @Success 201 {object} dto.APIResponse{data=domain.Video}
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /videos [post]
func (h *videoHandler) publishVideo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	videoPath := ""
	if file, err := c.FormFile("videoFile"); err == nil {
		path, err := saveFormFile(c, file)
		if err != nil {
			respondError(c, err)
			return
		}
		videoPath = path
	}
	defer removeIfPresent(videoPath)

	thumbnailPath := ""
	if file, err := c.FormFile("thumbnail"); err == nil {
		path, err := saveFormFile(c, file)
		if err != nil {
			respondError(c, err)
			return
		}
		thumbnailPath = path
	}
	defer removeIfPresent(thumbnailPath)

	if videoPath == "" || thumbnailPath == "" {
		respondError(c, apperrors.NewBadRequestError("Video and thumbnail files are required"))
		return
	}

	video, err := h.videoService.PublishVideo(c.Request.Context(), userID, req, videoPath, thumbnailPath)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Video published", slog.String("video_id", video.VideoID))
	respondSuccess(c, http.StatusCreated, video, "Video published successfully")
}

// getVideo godoc
// @Summary Get a video by ID
// @Description Fetches the video, counts the view and records it in the caller's watch history.
// @Tags videos
// @Produce json
// @Param videoID path string true "Video ID"
// @Success 200 {object} dto.APIResponse{data=domain.Video}
// @Failure 401 {object} dto.APIErrorResponse
// @Failure 404 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /videos/{videoID} [get]
func (h *videoHandler) getVideo(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	video, err := h.videoService.GetVideoByID(c.Request.Context(), c.Param("videoID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, video, "Video fetched successfully")
}
