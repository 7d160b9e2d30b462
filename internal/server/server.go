package server

import (
	"net/http"

	"najia-backend/internal/handler"
	appmw "najia-backend/internal/middleware"
	"najia-backend/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo *echo.Echo

	authMiddleware echo.MiddlewareFunc

	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	worshipHandler *handler.WorshipHandler
	paymentHandler *handler.PaymentHandler
	qadaHandler    *handler.QadaHandler
	familyHandler  *handler.FamilyHandler
	groceryHandler *handler.GroceryHandler
	storageHandler *handler.StorageHandler
}

type Services struct {
	Auth      service.AuthService
	User      service.UserService
	Worship   service.WorshipService
	Payment   service.PaymentService
	Qada      service.QadaService
	QadaPuasa service.QadaPuasaService
	Family    service.FamilyService
	Grocery   service.GroceryService
	Storage   service.StorageService
}

func NewServer(svc Services) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		authMiddleware: appmw.RequireAuth(svc.Auth),
		authHandler:    handler.NewAuthHandler(svc.Auth),
		userHandler:    handler.NewUserHandler(svc.User),
		worshipHandler: handler.NewWorshipHandler(svc.Worship),
		paymentHandler: handler.NewPaymentHandler(svc.Payment),
		qadaHandler:    handler.NewQadaHandler(svc.Qada, svc.QadaPuasa),
		familyHandler:  handler.NewFamilyHandler(svc.Family),
		groceryHandler: handler.NewGroceryHandler(svc.Grocery),
		storageHandler: handler.NewStorageHandler(svc.Storage),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	auth := api.Group("/auth")
	auth.POST("/request-otp", s.authHandler.RequestOtp)
	auth.POST("/verify-otp", s.authHandler.VerifyOtp)

	users := api.Group("/users", s.authMiddleware)
	users.GET("/profile", s.userHandler.GetProfile)
	users.PUT("/profile", s.userHandler.EditProfile)
	users.POST("/complete-profile", s.userHandler.CompleteProfile)

	worship := api.Group("/daily-worship", s.authMiddleware)
	worship.POST("/selawat", s.worshipHandler.RecordSelawat)
	worship.POST("/istigfar", s.worshipHandler.RecordIstigfar)
	worship.POST("/quran", s.worshipHandler.RecordQuran)
	worship.GET("/daily", s.worshipHandler.DailyProgress)
	worship.GET("/weekly", s.worshipHandler.WeeklyProgress)
	worship.GET("/monthly", s.worshipHandler.MonthlyProgress)
	worship.GET("/leaderboard/weekly", s.worshipHandler.WeeklyLeaderboard)
	worship.GET("/leaderboard/monthly", s.worshipHandler.MonthlyLeaderboard)
	worship.GET("/leaderboard/:period/rank", s.worshipHandler.UserRank)

	payments := api.Group("/payments", s.authMiddleware)
	payments.POST("/create-intent", s.paymentHandler.CreateIntent)
	payments.POST("/confirm", s.paymentHandler.ConfirmPayment)
	payments.POST("/validate-voucher", s.paymentHandler.ValidateVoucher)
	payments.POST("/create-voucher", s.paymentHandler.CreateVoucher)

	// processor callback authenticates via signature, not JWT
	s.echo.POST("/webhook/stripe", s.paymentHandler.StripeWebhook)

	qada := api.Group("/qada", s.authMiddleware)
	qada.POST("", s.qadaHandler.CreateTracker)
	qada.GET("", s.qadaHandler.Progress)
	qada.PATCH("/progress/:prayerType", s.qadaHandler.RecordPrayer)

	puasa := api.Group("/qada-puasa", s.authMiddleware)
	puasa.POST("", s.qadaHandler.CreatePuasaTracker)
	puasa.GET("", s.qadaHandler.PuasaProgress)
	puasa.PATCH("/progress", s.qadaHandler.RecordPuasaDay)
	puasa.GET("/history", s.qadaHandler.PuasaHistory)

	child := api.Group("/child")
	child.POST("/login", s.familyHandler.ChildLogin)
	child.GET("/:childId/dashboard", s.familyHandler.ChildDashboard)
	child.POST("/complete-task", s.familyHandler.CompleteTask)

	parent := api.Group("/parent", s.authMiddleware)
	parent.POST("/children", s.familyHandler.CreateChild)
	parent.GET("/children", s.familyHandler.ListChildren)
	parent.POST("/tasks", s.familyHandler.AssignTask)
	parent.POST("/tasks/:taskId/validate", s.familyHandler.ValidateTask)

	groceries := api.Group("/groceries", s.authMiddleware)
	groceries.POST("", s.groceryHandler.CreateRequest)
	groceries.GET("", s.groceryHandler.ListRequests)
	groceries.GET("/:requestId", s.groceryHandler.GetRequest)
	groceries.PATCH("/:requestId/approve", s.groceryHandler.Approve)
	groceries.PATCH("/:requestId/reject", s.groceryHandler.Reject)

	storage := api.Group("/storage", s.authMiddleware)
	storage.POST("/upload", s.storageHandler.Upload)
	storage.GET("/presign", s.storageHandler.DownloadURL)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
