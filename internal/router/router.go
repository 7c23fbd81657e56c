package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bikefine/internal/auth"
	"bikefine/internal/config"
	apperrors "bikefine/internal/errors"
	"bikefine/internal/handler"
	"bikefine/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	adminService service.AdminService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	caseHandler *handler.CaseHandler,
	queryHandler *handler.QueryHandler,
	paymentHandler *handler.PaymentHandler,
	adminHandler *handler.AdminHandler,
	uploadHandler *handler.UploadHandler,
	statsHandler *handler.StatsHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Every error, including ones raised by middleware, leaves in the envelope.
	e.HTTPErrorHandler = envelopeErrorHandler

	e.GET("/healthz", healthHandler.Check)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded media is served directly as static assets.
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/admin/login", adminHandler.Login)

	// Citizen routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", authHandler.Me)
	secured.GET("/cases", caseHandler.ListOwn)
	secured.GET("/cases/:id", caseHandler.Get)
	secured.GET("/queries", queryHandler.ListOwn)
	secured.POST("/queries", queryHandler.Create)
	secured.GET("/queries/:id", queryHandler.Get)
	secured.POST("/payments", paymentHandler.Create)
	secured.GET("/payments/:id", paymentHandler.Get)

	// Admin routes (require a server-validated session token)
	admin := api.Group("/admin", handler.AdminAuthMiddleware(adminService))

	admin.POST("/logout", adminHandler.Logout)
	admin.GET("/session", adminHandler.Session)
	admin.GET("/activities", adminHandler.Activities)
	admin.GET("/stats", statsHandler.Get)
	admin.POST("/uploads", uploadHandler.Upload)

	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.GET("/users/:id", userHandler.Get)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)

	admin.GET("/violations", caseHandler.List)
	admin.POST("/violations", caseHandler.Create)
	admin.GET("/violations/:id", caseHandler.Get)
	admin.PUT("/violations/:id", caseHandler.Update)
	admin.DELETE("/violations/:id", caseHandler.Delete)

	admin.GET("/queries", queryHandler.List)
	admin.GET("/queries/:id", queryHandler.Get)
	admin.PUT("/queries/:id", queryHandler.Update)
	admin.DELETE("/queries/:id", queryHandler.Delete)
	admin.POST("/queries/:id/responses", queryHandler.Respond)
	admin.POST("/queries/:id/attachments", queryHandler.Attach)

	admin.GET("/payments", paymentHandler.List)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// envelopeErrorHandler converts uncaught errors (echo-jwt rejections, bad
// routes, panics surfaced by Recover) into the uniform response envelope.
func envelopeErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(status)
		}
	}

	if err := c.JSON(status, apperrors.Fail(msg)); err != nil {
		c.Logger().Error(err)
	}
}
