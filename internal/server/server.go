package server

import (
	"context"
	"net/http"

	"github.com/javaqber/wodup-backend/internal/auth"
	"github.com/javaqber/wodup-backend/internal/class"
	"github.com/javaqber/wodup-backend/internal/config"
	"github.com/javaqber/wodup-backend/internal/reservation"
	"github.com/javaqber/wodup-backend/internal/subscription"
	"github.com/javaqber/wodup-backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, redisClient *redis.Client) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	userRepo := user.NewRepository(db)
	classRepo := class.NewRepository(db)
	subRepo := subscription.NewRepository(db)
	reservationRepo := reservation.NewRepository(db)

	var cache *class.Cache
	if redisClient != nil {
		cache = class.NewCache(redisClient, class.DefaultCacheTTL)
	}

	classService := class.NewService(classRepo, userRepo, cache)
	reservationService := reservation.NewService(reservationRepo, classRepo, subRepo, userRepo, reservation.Policy{
		EnforceCapacity:           cfg.EnforceCapacity,
		CancellationCutoffMinutes: cfg.CancellationCutoffMinutes,
	})

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	classHandler := class.NewHandler(classService)
	reservationHandler := reservation.NewHandler(reservationService)
	subscriptionHandler := subscription.NewHandler(db)

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/classes", classHandler.ListUpcoming)
		protected.GET("/classes/today", classHandler.ListToday)
		protected.GET("/reservations", reservationHandler.ListMy)
		protected.POST("/reservations", reservationHandler.Create)
		protected.POST("/reservations/:reservationID/cancel", reservationHandler.Cancel)
		protected.GET("/tariffs", subscriptionHandler.ListTariffs)
		protected.GET("/subscriptions", subscriptionHandler.ListMy)
		protected.POST("/subscriptions", subscriptionHandler.Create)
	}

	coach := router.Group("/classes")
	coach.Use(authMiddleware, auth.RequireRole(user.RoleCoach, user.RoleAdmin))
	{
		coach.POST("", classHandler.Create)
		coach.PUT("/:classID", classHandler.Update)
		coach.DELETE("/:classID", classHandler.Delete)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
