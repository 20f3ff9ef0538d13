package router

import (
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ritualplanner/internal/auth"
	"ritualplanner/internal/config"
	"ritualplanner/internal/handler"
	"ritualplanner/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
	clientHandler *handler.ClientHandler,
	coWorkerHandler *handler.CoWorkerHandler,
	templateHandler *handler.TemplateHandler,
	billHandler *handler.BillHandler,
	taskHandler *handler.TaskHandler,
	paymentHandler *handler.PaymentHandler,
	helpHandler *handler.HelpHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewCustomValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/verify", authHandler.Verify)
	api.POST("/auth/recover/request", authHandler.RecoverPassword)
	api.POST("/auth/recover/reset", authHandler.ResetPassword)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(jwtConfig(cfg.JWTSecret)))

	registerCRUD(secured, "/notes", crudHandlers{
		create: noteHandler.Create, list: noteHandler.List, get: noteHandler.Get,
		update: noteHandler.Update, delete: noteHandler.Delete,
	})
	registerCRUD(secured, "/clients", crudHandlers{
		create: clientHandler.Create, list: clientHandler.List, get: clientHandler.Get,
		update: clientHandler.Update, delete: clientHandler.Delete,
	})
	registerCRUD(secured, "/co-workers", crudHandlers{
		create: coWorkerHandler.Create, list: coWorkerHandler.List, get: coWorkerHandler.Get,
		update: coWorkerHandler.Update, delete: coWorkerHandler.Delete,
	})
	registerCRUD(secured, "/templates", crudHandlers{
		create: templateHandler.Create, list: templateHandler.List, get: templateHandler.Get,
		update: templateHandler.Update, delete: templateHandler.Delete,
	})
	registerCRUD(secured, "/bills", crudHandlers{
		create: billHandler.Create, list: billHandler.List, get: billHandler.Get,
		update: billHandler.Update, delete: billHandler.Delete,
	})
	registerCRUD(secured, "/tasks", crudHandlers{
		create: taskHandler.Create, list: taskHandler.List, get: taskHandler.Get,
		update: taskHandler.Update, delete: taskHandler.Delete,
	})
	secured.PATCH("/tasks/:id/complete", taskHandler.Complete)

	registerCRUD(secured, "/payments", crudHandlers{
		create: paymentHandler.Create, list: paymentHandler.List, get: paymentHandler.Get,
		update: paymentHandler.Update, delete: paymentHandler.Delete,
	})

	secured.POST("/help/message", helpHandler.Submit)
}

// jwtConfig parses bearer tokens into planner claims.
func jwtConfig(secret string) echojwt.Config {
	return echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}
}

type crudHandlers struct {
	create, list, get, update, delete echo.HandlerFunc
}

// registerCRUD wires the uniform verb layout every entity shares.
func registerCRUD(g *echo.Group, prefix string, h crudHandlers) {
	g.POST(prefix, h.create)
	g.GET(prefix, h.list)
	g.GET(prefix+"/:id", h.get)
	g.PUT(prefix+"/:id", h.update)
	g.DELETE(prefix+"/:id", h.delete)
}

// CustomValidator wraps validator for Echo with planner-specific rules.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator registers the password and phone rules.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("password", validatePassword)
	_ = v.RegisterValidation("phone", validatePhone)
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func validatePassword(fl validator.FieldLevel) bool {
	return service.PasswordMeetsPolicy(fl.Field().String())
}

// validatePhone accepts 10-15 digits with an optional leading +.
func validatePhone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) > 0 && s[0] == '+' {
		s = s[1:]
	}
	if len(s) < 10 || len(s) > 15 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
