package router

import (
	"github.com/MuhamadAsim/admin-library-haven-sub000/configs"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/app/handlers"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/app/middleware"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/kafka/producer"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/notification"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/pubsub"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/services"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/store"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/store/repository"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/utils/worker"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
)

// SetupRouter wires the repositories, services and handlers onto a gin
// engine and returns the engine plus the reservation sweeper for the caller
// to run.
func SetupRouter(workerPool *worker.WorkerPool, redisClient *redis.Client, pubsubPublisher *pubsub.PubSubPublisher, kafkaProducer *producer.Producer) (*gin.Engine, *workers.ReservationSweeper) {

	r := gin.Default()
	meter := otel.Meter(configs.SERVICE_NAME)
	r.Use(otelgin.Middleware(configs.SERVICE_NAME))
	r.Use(middleware.NewMetricMiddleware(meter))
	r.Use(middleware.AttachRequestDetails())

	redisAdapter := repository.NewRedisStoreAdapter(redisClient)

	bookRepo := store.NewBookRepository()
	memberRepo := store.NewMemberRepository()
	dueRepo := store.NewDueRepository()
	reservationRepo := store.NewReservationRepository()
	notificationRepo := store.NewNotificationRepository()
	failedEventRepo := store.NewFailedEventRepository()

	notificationService := notification.NewNotificationService(notificationRepo, pubsubPublisher)
	auditService := producer.NewAuditService(kafkaProducer, failedEventRepo)

	ledgerService := services.NewLedgerService(bookRepo, memberRepo, dueRepo, notificationService, auditService)
	catalogService := services.NewCatalogService(bookRepo, dueRepo)
	memberService := services.NewMemberService(memberRepo, dueRepo)
	reservationService := services.NewReservationService(bookRepo, memberRepo, reservationRepo)
	sessionService := services.NewSessionService(memberRepo, redisAdapter)

	sweeper := workers.NewReservationSweeper(reservationRepo, bookRepo, notificationService, workerPool)

	bookHandler := handlers.NewBookHandler(catalogService)
	memberHandler := handlers.NewMemberHandler(memberService)
	dueHandler := handlers.NewDueHandler(ledgerService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	authHandler := handlers.NewAuthHandler(sessionService)
	auditRetryHandler := handlers.NewAuditRetryHandler(auditService)

	memberAuth := middleware.SessionAuth(sessionService, false)
	adminAuth := middleware.SessionAuth(sessionService, true)

	api := r.Group("/api")

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", memberAuth, authHandler.Logout)

	api.GET("/books", memberAuth, bookHandler.ListBooks)
	api.GET("/books/:bookId", memberAuth, bookHandler.GetBook)
	api.POST("/books", adminAuth, bookHandler.CreateBook)
	api.PUT("/books/:bookId", adminAuth, bookHandler.UpdateBook)
	api.DELETE("/books/:bookId", adminAuth, bookHandler.DeleteBook)

	api.POST("/members", adminAuth, memberHandler.CreateMember)
	api.GET("/members", adminAuth, memberHandler.ListMembers)
	api.GET("/members/:memberId", memberAuth, memberHandler.GetMember)
	api.PUT("/members/:memberId", adminAuth, memberHandler.UpdateMember)
	api.DELETE("/members/:memberId", adminAuth, memberHandler.DeleteMember)

	api.POST("/dues", adminAuth, dueHandler.IssueDue)
	api.GET("/dues", memberAuth, dueHandler.ListDues)
	api.GET("/dues/:dueId", memberAuth, dueHandler.GetDue)
	api.PUT("/dues/:dueId/return", adminAuth, dueHandler.ReturnDue)
	api.PUT("/dues/:dueId/fine", adminAuth, dueHandler.SettleFine)
	api.DELETE("/dues/:dueId", adminAuth, dueHandler.DeleteDue)

	api.POST("/reservations", memberAuth, reservationHandler.CreateReservation)
	api.GET("/reservations", memberAuth, reservationHandler.ListReservations)
	api.DELETE("/reservations/:reservationId", memberAuth, reservationHandler.CancelReservation)

	api.GET("/notifications", memberAuth, notificationHandler.ListNotifications)
	api.PUT("/notifications/:notificationId/read", memberAuth, notificationHandler.MarkRead)

	api.GET("/audit/retry", adminAuth, auditRetryHandler.RetryAuditEvents)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{
			"message": "Health Check"})
	})

	return r, sweeper
}
