package router

import (
	"github.com/gin-gonic/gin"

	"vidshare-go/internal/api/handler"
	"vidshare-go/internal/api/middleware"
)

// Handlers bundles everything Setup wires into the engine.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Search       *handler.SearchHandler
	Playlist     *handler.PlaylistHandler
	Comment      *handler.CommentHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Community    *handler.CommunityHandler
	Process      *handler.ProcessHandler
}

// Setup registers all business routes. loginLimiter throttles credential
// attempts, uploadLimiter throttles video ingestion.
func Setup(r *gin.Engine, h *Handlers, authCfg middleware.AuthConfig, loginLimiter, uploadLimiter gin.HandlerFunc) {
	v1 := r.Group("/api/v1")

	required := middleware.AuthRequired(authCfg)
	optional := middleware.AuthOptional(authCfg)

	// --- users and sessions ---
	users := v1.Group("/users")
	{
		users.POST("/register", loginLimiter, h.Auth.Register)
		users.GET("/verify", h.Auth.VerifyEmail)
		users.POST("/login", loginLimiter, h.Auth.Login)
		users.POST("/refresh", h.Auth.Refresh)
		users.POST("/forgot-password", loginLimiter, h.Auth.ForgotPassword)
		users.POST("/reset-password", h.Auth.ResetPassword)
		users.GET("/channel/:username", optional, h.User.GetChannel)

		usersAuth := users.Group("", required)
		{
			usersAuth.POST("/logout", h.Auth.Logout)
			usersAuth.POST("/change-password", h.Auth.ChangePassword)
			usersAuth.GET("/me", h.User.GetCurrentUser)
			usersAuth.PATCH("/me", h.User.UpdateProfile)
			usersAuth.PATCH("/me/images", h.User.UpdateImages)
		}
	}

	// --- videos ---
	videos := v1.Group("/videos")
	{
		videos.GET("", h.Video.ListNew)
		videos.GET("/search", h.Search.SearchVideos)
		videos.GET("/recommended", h.Video.Recommended)
		videos.GET("/channel/:id", h.Video.ListByChannel)
		videos.GET("/:id", optional, h.Video.Get)
		videos.POST("/:id/watch", optional, h.Video.Watch)

		videosAuth := videos.Group("", required)
		{
			videosAuth.POST("", uploadLimiter, h.Video.Upload)
			videosAuth.GET("/me", h.Video.ListMine)
			videosAuth.GET("/state", h.Video.UploadState)
			videosAuth.GET("/history", h.Video.History)
			videosAuth.PATCH("/:id", h.Video.Update)
			videosAuth.PATCH("/:id/thumbnail", h.Video.UpdateThumbnail)
			videosAuth.DELETE("/:id", h.Video.Delete)
		}
	}

	// --- playlists ---
	playlists := v1.Group("/playlists")
	{
		playlists.GET("/:id", h.Playlist.Get)
		playlists.GET("/user/:id", h.Playlist.ListByUser)

		playlistsAuth := playlists.Group("", required)
		{
			playlistsAuth.POST("", h.Playlist.Create)
			playlistsAuth.GET("/me", h.Playlist.ListMine)
			playlistsAuth.PATCH("/:id", h.Playlist.Update)
			playlistsAuth.DELETE("/:id", h.Playlist.Delete)
			playlistsAuth.POST("/:id/videos", h.Playlist.AddVideos)
			playlistsAuth.DELETE("/:id/videos", h.Playlist.RemoveVideos)
			playlistsAuth.DELETE("/:id/videos/all", h.Playlist.Clear)
			playlistsAuth.PUT("/:id/arrange", h.Playlist.Arrange)
		}
	}

	// --- comments ---
	comments := v1.Group("/comments")
	{
		comments.GET("/video/:id", h.Comment.ListByVideo)
		comments.GET("/:id/replies", h.Comment.ListReplies)

		commentsAuth := comments.Group("", required)
		{
			commentsAuth.GET("/me", h.Comment.ListMine)
			commentsAuth.POST("/video/:id", h.Comment.Create)
			commentsAuth.PATCH("/:id", h.Comment.Update)
			commentsAuth.DELETE("/:id", h.Comment.Delete)
		}
	}

	// --- likes ---
	likes := v1.Group("/likes", required)
	{
		likes.POST("/video/:id", h.Like.Toggle)
		likes.GET("/video/:id/status", h.Like.Status)
		likes.GET("/videos", h.Like.ListLiked)
	}

	// --- subscriptions ---
	subscriptions := v1.Group("/subscriptions")
	{
		subscriptions.GET("/channel/:id/subscribers", h.Subscription.ListSubscribers)

		subscriptionsAuth := subscriptions.Group("", required)
		{
			subscriptionsAuth.POST("/channel/:id", h.Subscription.Toggle)
			subscriptionsAuth.GET("/channel/:id/status", h.Subscription.Status)
			subscriptionsAuth.GET("/me", h.Subscription.ListSubscribedTo)
		}
	}

	// --- community ---
	community := v1.Group("/community")
	{
		community.GET("/user/:id", h.Community.ListByUser)

		communityAuth := community.Group("", required)
		{
			communityAuth.POST("", h.Community.Create)
			communityAuth.PATCH("/:id", h.Community.Update)
			communityAuth.DELETE("/:id", h.Community.Delete)
		}
	}

	// --- processing callbacks (secret-gated, no user auth) ---
	process := v1.Group("/process")
	{
		process.POST("/videos", h.Process.VideoReady)
		process.POST("/images", h.Process.ImageReady)
		process.POST("/error", h.Process.ProcessError)
	}
}
