package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/BloggingApp/feed-service/internal/access"
	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{viper.GetString("client.origin")},
		AllowMethods: []string{"POST", "GET", "PATCH", "DELETE"},
		AllowCredentials: true,
	}))

	r.Use(h.identifyMiddleware)
	r.NoRoute(h.pageNotFound)

	r.GET("/", h.index)
	r.GET("/group/:slug", h.groupFeed)
	r.GET("/follow", h.followingFeed)

	r.GET("/create", h.postsCreateForm)
	r.POST("/create", h.postsCreate)

	posts := r.Group("/posts/:postID")
	{
		posts.GET("", h.postsGetByID)
		posts.GET("/edit", h.postsEditForm)
		posts.POST("/edit", h.postsEdit)
		posts.POST("/comment", h.commentsCreate)
	}

	profile := r.Group("/profile/:username")
	{
		profile.GET("", h.profileFeed)
		profile.POST("/follow", h.profileFollow)
		profile.POST("/unfollow", h.profileUnfollow)
	}

	return r
}

func (h *Handler) getUserDataFromClaims(ctx context.Context, claims jwt.MapClaims, accessToken string) (*model.CachedUser, error) {
	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}

	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	return h.services.UserCache.CreateOrGet(ctx, id, accessToken)
}

func (h *Handler) getCachedUserFromRequest(c *gin.Context) *model.CachedUser {
	userReq, _ := c.Get("cached-user")

	user, ok := userReq.(model.CachedUser)
	if !ok {
		return nil
	}

	return &user
}

// applyDecision executes a policy verdict; the caller stops on false.
func (h *Handler) applyDecision(c *gin.Context, d access.Decision) bool {
	if d.Verdict == access.Allow {
		return true
	}

	c.Redirect(http.StatusSeeOther, d.Location)
	c.Abort()
	return false
}

func (h *Handler) pageNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, "page not found"))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch err {
	case service.ErrPostNotFound, service.ErrGroupNotFound, service.ErrUserNotFound:
		h.pageNotFound(c)
	case service.ErrSelfFollow:
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	}
}

// pageParam reads the 1-indexed "page" query parameter. Out-of-range
// values are clamped later by the paginator, never rejected.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}

	return page
}

func nextParam(c *gin.Context) string {
	return c.Request.URL.RequestURI()
}
