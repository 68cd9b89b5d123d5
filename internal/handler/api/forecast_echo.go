package api

import (
	"errors"
	"time"

	"KronosServe/internal/domain/models"
	domsvc "KronosServe/internal/domain/service"
	"KronosServe/internal/usecase"
	xhttp "KronosServe/pkg/http"
	applogger "KronosServe/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	serviceName    = "Kronos Prediction Service"
	serviceVersion = "1.0.0"
)

// ForecastEchoHandler exposes the predict API over Echo.
type ForecastEchoHandler struct {
	logger *applogger.Logger
	uc     *usecase.ForecastUsecase
	model  domsvc.ModelStatus
}

func NewForecastEchoHandler(logger *applogger.Logger, uc *usecase.ForecastUsecase, model domsvc.ModelStatus) *ForecastEchoHandler {
	return &ForecastEchoHandler{logger: logger, uc: uc, model: model}
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/", h.Index)
	e.POST("/predict", h.Predict)
}

type healthResponse struct {
	Status          string `json:"status"`
	KronosAvailable bool   `json:"kronos_available"`
	Timestamp       string `json:"timestamp"`
}

func (h *ForecastEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, healthResponse{
		Status:          "ok",
		KronosAvailable: h.model.Available(),
		Timestamp:       time.Now().Format(time.RFC3339),
	})
}

type indexResponse struct {
	Service         string            `json:"service"`
	Version         string            `json:"version"`
	KronosAvailable bool              `json:"kronos_available"`
	Endpoints       map[string]string `json:"endpoints"`
}

func (h *ForecastEchoHandler) Index(c echo.Context) error {
	return xhttp.SuccessResponse(c, indexResponse{
		Service:         serviceName,
		Version:         serviceVersion,
		KronosAvailable: h.model.Available(),
		Endpoints: map[string]string{
			"predict": "POST /predict",
			"health":  "GET /health",
		},
	})
}

func (h *ForecastEchoHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if msg := xhttp.ReadAndValidateRequest(c, req); msg != "" {
		return xhttp.BadRequestResponse(c, msg)
	}

	result, err := h.uc.Forecast(c.Request().Context(), req.Symbol, req.Data.ToHistory(), req.PredHours)
	if err != nil {
		h.logger.Error("predict failed",
			applogger.String("symbol", req.Symbol),
			applogger.Error(err),
		)
		if errors.Is(err, models.ErrPredictionFailed) {
			return xhttp.InternalErrorResponse(c, "Prediction failed")
		}
		return xhttp.InternalErrorResponse(c, err.Error())
	}

	return xhttp.SuccessResponse(c, result)
}
