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

// userHandler handles HTTP requests for the authenticated user's profile and
// the public channel view.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers profile routes. Everything requires auth except
// the channel profile, which accepts anonymous viewers.
func registerUserRoutes(rg *gin.RouterGroup, cfg *config.Config, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")

	authed := users.Group("", middleware.AuthMiddleware(cfg.AccessTokenSecret))
	{
		authed.POST("/change-password", h.changePassword)
		authed.GET("/current-user", h.currentUser)
		authed.PATCH("/update-account", h.updateAccount)
		authed.PATCH("/avatar", h.updateAvatar)
		authed.PATCH("/cover-image", h.updateCoverImage)
		authed.GET("/history", h.watchHistory)
	}

	users.GET("/c/:username", middleware.OptionalAuthMiddleware(cfg.AccessTokenSecret), h.channelProfile)
}

func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized request"))
		return "", false
	}
	return userID, true
}

// changePassword godoc
// @Summary Change the current user's password
// @Tags users
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/change-password [post]
func (h *userHandler) changePassword(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Password changed", slog.String("user_id", userID))
	respondSuccess(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

// currentUser godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/current-user [get]
func (h *userHandler) currentUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Current user fetched successfully")
}

// updateAccount godoc
// @Summary Update full name and email
// @Tags users
// @Accept json
// @Produce json
// @Param account body dto.UpdateAccountRequest true "New account details"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Failure 409 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/update-account [patch]
func (h *userHandler) updateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.userService.UpdateAccountDetails(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Account details updated successfully")
}

// updateAvatar godoc
// @Summary Replace the user's avatar image
// @Tags users
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/avatar [patch]
func (h *userHandler) updateAvatar(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, apperrors.NewBadRequestError("Avatar file is required"))
		return
	}
	path, err := saveFormFile(c, file)
	if err != nil {
		respondError(c, err)
		return
	}
	defer removeIfPresent(path)

	user, err := h.userService.UpdateAvatar(c.Request.Context(), userID, path)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Avatar updated successfully")
}

// updateCoverImage godoc
// @Summary Replace the user's cover image
// @Tags users
// @Accept mpfd
// @Produce json
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/cover-image [patch]
func (h *userHandler) updateCoverImage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("coverImage")
	if err != nil {
		respondError(c, apperrors.NewBadRequestError("Cover image file is required"))
		return
	}
	path, err := saveFormFile(c, file)
	if err != nil {
		respondError(c, err)
		return
	}
	defer removeIfPresent(path)

	user, err := h.userService.UpdateCoverImage(c.Request.Context(), userID, path)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Cover image updated successfully")
}

// channelProfile godoc
// @Summary Get a channel's public profile
// @Description Returns the channel identified by username with subscriber counts. When the caller is authenticated, isSubscribed reflects their membership.
// @Tags users
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} dto.APIResponse{data=domain.ChannelProfile}
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 404 {object} dto.APIErrorResponse
// @Router /users/c/{username} [get]
func (h *userHandler) channelProfile(c *gin.Context) {
	// Anonymous viewers are fine here; viewerID stays empty.
	viewerID, _ := middleware.GetUserIDFromContext(c)

	profile, err := h.userService.GetChannelProfile(c.Request.Context(), c.Param("username"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, profile, "Channel profile fetched successfully")
}

// watchHistory godoc
// @Summary Get the authenticated user's watch history
// @Description Returns the full video records the user has watched, oldest first, each with a reduced owner projection.
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]domain.WatchHistoryEntry}
// @Failure 401 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /users/history [get]
func (h *userHandler) watchHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entries, err := h.userService.GetWatchHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, entries, "Watch history fetched successfully")
}
