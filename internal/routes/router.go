package routes

import (
	"Fundbridge/internal/metrics"
	"Fundbridge/internal/middleware"

	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	AllowedOrigins []string
	PublicLimiter  *middleware.RateLimiter
	ActorLimiter   *middleware.RateLimiter
	ActorChecker   middleware.ActorChecker
	Metrics        *metrics.Metrics
	MetricsPath    string
}

// Register monta todas as rotas da API no router.
func Register(router *gin.Engine, handler *Handler, opts RouterOptions) {
	router.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
		if opts.MetricsPath != "" {
			router.GET(opts.MetricsPath, gin.WrapH(opts.Metrics.Handler()))
		}
	}

	router.GET("/health", handler.Health)

	public := router.Group("/api")
	if opts.PublicLimiter != nil {
		public.Use(middleware.RateLimit(opts.PublicLimiter))
	}
	{
		public.POST("/users", handler.CreateUser)
		public.POST("/funding/preview", handler.PreviewFunding)
	}

	private := router.Group("/api")
	private.Use(middleware.ActorMiddleware(opts.ActorChecker))
	if opts.ActorLimiter != nil {
		private.Use(middleware.RateLimitByActor(opts.ActorLimiter))
	}
	{
		users := private.Group("/users")
		{
			users.GET("/me", handler.GetMe)
			users.PATCH("/me", handler.UpdateMe)
		}

		helpRequests := private.Group("/help-requests")
		{
			helpRequests.GET("", handler.ListHelpRequests)
			helpRequests.POST("", handler.CreateHelpRequest)
			helpRequests.GET("/mine", handler.ListMyHelpRequests)
			helpRequests.GET("/:id", handler.GetHelpRequest)
			helpRequests.POST("/:id/close", handler.CloseHelpRequest)
			helpRequests.GET("/:id/accepted-amount", handler.GetAcceptedAmount)
			helpRequests.GET("/:id/progress", handler.GetHelpRequestProgress)
		}

		proposals := private.Group("/proposals")
		{
			proposals.GET("", handler.ListProposals)
			proposals.POST("", handler.CreateProposal)
			proposals.GET("/progress", handler.ListProposalProgress)
			proposals.GET("/:id", handler.GetProposal)
			proposals.PATCH("/:id/status", handler.UpdateProposalStatus)
			proposals.DELETE("/:id", handler.DeleteProposal)
			proposals.GET("/:id/progress", handler.GetProposalProgress)
		}

		conversations := private.Group("/conversations")
		{
			conversations.GET("", handler.ListConversations)
			conversations.POST("", handler.StartConversation)
			conversations.GET("/:id/messages", handler.ListMessages)
			conversations.POST("/:id/messages", handler.SendMessage)
			conversations.POST("/:id/read", handler.MarkConversationRead)
		}
	}
}
