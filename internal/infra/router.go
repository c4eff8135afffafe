package infra

import (
	"net/http"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/chleo-smith/consent-gateway/internal/cache"
	"github.com/chleo-smith/consent-gateway/internal/config"
	"github.com/chleo-smith/consent-gateway/internal/errors"
	"github.com/chleo-smith/consent-gateway/internal/handlers"
	"github.com/chleo-smith/consent-gateway/internal/middleware"
	"github.com/chleo-smith/consent-gateway/internal/service"
	"github.com/chleo-smith/consent-gateway/internal/store"
	"github.com/chleo-smith/consent-gateway/internal/upstream"
	"github.com/chleo-smith/consent-gateway/internal/validation"
)

// Router wires all dependencies and builds the echo application
func Router(cfg config.Config, st store.ConsentStore, redisClient *redis.Client) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	v := validator.New()
	if err := validation.RegisterConsentRules(v); err != nil {
		return nil, err
	}

	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	translator, _ := unvTranslator.GetTranslator("en")
	e.Validator = validation.Echo(v, translator)

	e.HTTPErrorHandler = errorHandler(cfg.IsDevelopment())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Cors())

	// Optional cache
	var customerCache cache.CustomerCache
	if redisClient != nil {
		customerCache = cache.NewRedisCustomerCache(redisClient)
	}

	// Upstream client
	upstreamClient := upstream.NewHTTPClient(cfg.UpstreamCfg.BaseURL, cfg.UpstreamCfg.Timeout)

	// Services
	consentSvc := service.NewConsentService(upstreamClient, st, customerCache, cfg.FallbackEnabled)

	// Handlers
	consentHandler := handlers.NewConsentHandler(consentSvc)

	// API routes
	api := e.Group("/api")
	api.GET("/customer/:id", consentHandler.GetCustomer)
	api.GET("/consents/:id", consentHandler.GetConsents)
	api.PUT("/consents/:id/:sequence", consentHandler.PutConsent)

	// SPA assets for anything outside /api
	e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
		Root:  cfg.StaticDir,
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/api")
		},
	}))

	return e, nil
}

// errorHandler renders every error as the uniform envelope, diagnostic
// details are only exposed in development mode
func errorHandler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var apiErr *errors.APIError
		switch typed := err.(type) {
		case *errors.APIError:
			apiErr = typed
		case *echo.HTTPError:
			apiErr = errors.NewAPIError(errors.CodeServerError, typed.Code, http.StatusText(typed.Code))
			if msg, ok := typed.Message.(string); ok {
				apiErr.Message = msg
			}
		default:
			logrus.Errorf("unhandled error on %s %s - %v", c.Request().Method, c.Request().URL.Path, err)
			apiErr = errors.ServerError().WithDetails(err.Error())
		}

		if apiErr.Status >= http.StatusInternalServerError {
			logrus.Errorf("request %s %s failed: %s (%s)", c.Request().Method, c.Request().URL.Path, apiErr.Message, apiErr.Code)
		}

		if jsonErr := c.JSON(apiErr.Status, apiErr.Envelope(development)); jsonErr != nil {
			logrus.Errorf("failed to write error response - %v", jsonErr)
		}
	}
}
