package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	md "github.com/librarium/library-admin/pkg/middleware"
	"github.com/librarium/library-admin/pkg/validate"
	"github.com/librarium/library-admin/pkg/watch"
	_ "github.com/librarium/library-admin/swagger"
)

type Handler struct {
	catalogSvc CatalogService
	loanSvc    LoanService
	authSvc    AuthService
	chatSvc    ChatService
	hub        *watch.Hub
	log        *zap.Logger
}

func New(catalog CatalogService, loans LoanService, auth AuthService, chat ChatService, hub *watch.Hub, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalog,
		loanSvc:    loans,
		authSvc:    auth,
		chatSvc:    chat,
		hub:        hub,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/register", h.Register)
	api.POST("/authorize", h.Authorize)

	// guest chat widget is reachable without a session
	api.POST("/chats", h.StartChat)
	api.POST("/chats/:chatUid/messages", h.SendMessage)
	api.GET("/chats/:chatUid/messages", h.GetMessages)
	api.GET("/chats/:chatUid/messages/watch", h.WatchMessages)

	authed := api.Group("", md.JwtAuthentication)

	authed.GET("/stats", h.GetStats)

	authed.GET("/books", h.GetBooks)
	authed.POST("/books", h.CreateBooks)
	authed.GET("/books/lookup", h.LookupBook)
	authed.GET("/books/watch", h.WatchBooks)
	authed.GET("/books/:bookUid", h.GetBook)
	authed.PUT("/books/:bookUid", h.UpdateBook)
	authed.DELETE("/books/:bookUid", h.DeleteBook)

	authed.GET("/borrowers", h.GetLoans)
	authed.POST("/borrowers", h.CreateLoan)
	authed.GET("/borrowers/watch", h.WatchLoans)
	authed.GET("/borrowers/:loanUid", h.GetLoan)
	authed.PATCH("/borrowers/:loanUid/status", h.ChangeStatus)
	authed.DELETE("/borrowers/:loanUid", h.DeleteLoan)

	authed.GET("/notifications", h.GetNotifications)
	authed.GET("/notifications/watch", h.WatchNotifications)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
