package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/middleware"
	"github.com/vidtube/vidtube_backend/internal/platform/config"

	"github.com/gin-gonic/gin"
)

// subscriptionHandler handles subscribe/unsubscribe requests.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{
		subscriptionService: ss,
	}
}

// registerSubscriptionRoutes registers the subscription toggle route.
func registerSubscriptionRoutes(rg *gin.RouterGroup, cfg *config.Config, subscriptionService portssvc.SubscriptionSvcFacade) {
	h := newSubscriptionHandler(subscriptionService)

	subs := rg.Group("/subscriptions", middleware.AuthMiddleware(cfg.AccessTokenSecret))
	{
		subs.POST("/c/:channelID", h.toggleSubscription)
	}
}

// toggleSubscription godoc
// @Summary Subscribe to or unsubscribe from a channel
// @Description Flips the caller's subscription on the channel and reports the resulting state.
// @Tags subscriptions
// @Produce json
// @Param channelID path string true "Channel user ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIErrorResponse
// @Failure 401 {object} dto.APIErrorResponse
// @Failure 404 {object} dto.APIErrorResponse
// @Security BearerAuth
// @Router /subscriptions/c/{channelID} [post]
func (h *subscriptionHandler) toggleSubscription(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	channelID := c.Param("channelID")

	subscribed, err := h.subscriptionService.ToggleSubscription(c.Request.Context(), userID, channelID)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Subscription toggled",
		slog.String("channel_id", channelID),
		slog.Bool("subscribed", subscribed),
	)

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	respondSuccess(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}
