package infra

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	_ "github.com/umalmyha/customer-records/docs" // swagger spec
	apperrors "github.com/umalmyha/customer-records/internal/errors"
	"github.com/umalmyha/customer-records/internal/flash"
	"github.com/umalmyha/customer-records/internal/handlers"
	"github.com/umalmyha/customer-records/internal/metrics"
	"github.com/umalmyha/customer-records/internal/service"
	"github.com/umalmyha/customer-records/internal/session"
	"github.com/umalmyha/customer-records/internal/validation"
)

const internalErrMsg = "Internal server error"

// RouterCfg contains everything router needs
type RouterCfg struct {
	CustomerSvc service.CustomerService
	Flasher     *flash.Flasher
	Renderer    echo.Renderer
	Validator   echo.Validator
	SessionCfg  session.Cfg
	Swagger     bool
}

// Router builds echo instance with pages, api, swagger and metrics routes
func Router(cfg RouterCfg) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = cfg.Renderer
	e.Validator = cfg.Validator
	e.HTTPErrorHandler = httpErrorHandler

	// html forms can't send PUT and DELETE
	e.Pre(middleware.MethodOverrideWithConfig(middleware.MethodOverrideConfig{
		Getter: middleware.MethodFromForm("_method"),
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logrus.WithFields(logrus.Fields{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency,
				"remote_ip": v.RemoteIP,
			}).Info("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(session.Middleware(cfg.SessionCfg))

	// Handlers
	pageHandler := handlers.NewCustomerPageHandler(cfg.CustomerSvc, cfg.Flasher)
	customerHandler := handlers.NewCustomerHTTPHandler(cfg.CustomerSvc)

	// Pages
	e.GET("/", pageHandler.Index)
	e.GET("/about", pageHandler.About)
	e.GET("/add", pageHandler.Add)
	e.POST("/add", pageHandler.Create)
	e.GET("/view/:id", pageHandler.View)
	e.GET("/edit/:id", pageHandler.Edit)
	e.PUT("/edit/:id", pageHandler.Update)
	e.DELETE("/edit/:id", pageHandler.Delete)
	e.POST("/search", pageHandler.Search)

	// API routes
	customersAPI := e.Group("/api/customers")
	customersAPI.GET("", customerHandler.GetPage)
	customersAPI.GET("/search", customerHandler.Search)
	customersAPI.GET("/:id", customerHandler.Get)
	customersAPI.POST("", customerHandler.Post)
	customersAPI.PUT("/:id", customerHandler.Put)
	customersAPI.DELETE("/:id", customerHandler.DeleteByID)

	if cfg.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}
	e.GET("/metrics", metrics.Handler())

	return e
}

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		notFoundErr *apperrors.EntryNotFoundErr
		bErr        *apperrors.BusinessErr
		payloadErr  *validation.PayloadError
		httpErr     *echo.HTTPError
	)

	switch {
	case errors.As(err, &notFoundErr):
		respond(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &bErr):
		status := http.StatusBadRequest
		if bErr.Reason() == apperrors.ReasonEmailInUse {
			status = http.StatusConflict
		}
		respondBody(c, status, bErr, bErr.Error())
	case errors.As(err, &payloadErr):
		respondBody(c, http.StatusBadRequest, payloadErr, payloadErr.Error())
	case errors.As(err, &httpErr):
		if httpErr.Code >= http.StatusInternalServerError {
			logrus.Errorf("error occurred on http request processing - %v", err)
		}
		respond(c, httpErr.Code, fmt.Sprint(httpErr.Message))
	default:
		logrus.Errorf("error occurred on http request processing - %v", err)
		respond(c, http.StatusInternalServerError, internalErrMsg)
	}
}

func respond(c echo.Context, status int, msg string) {
	respondBody(c, status, map[string]string{"message": msg}, msg)
}

// respondBody sends json body to api clients and plain text to pages
func respondBody(c echo.Context, status int, body any, text string) {
	var err error
	switch {
	case c.Request().Method == http.MethodHead:
		err = c.NoContent(status)
	case strings.HasPrefix(c.Request().URL.Path, "/api/"):
		err = c.JSON(status, body)
	default:
		err = c.String(status, text)
	}

	if err != nil {
		logrus.Errorf("failed to send error response - %v", err)
	}
}
