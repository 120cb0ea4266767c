package kundaliController

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/admin/kundali-service/internal/adapters/primary/http/middlewares"
	"github.com/admin/kundali-service/internal/domain"
	"github.com/admin/kundali-service/internal/ports/usecase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	Kundali usecase.IKundaliUseCase
	Log     *slog.Logger
}

func New(kundali usecase.IKundaliUseCase, log *slog.Logger) *Controller {
	return &Controller{
		Kundali: kundali,
		Log:     log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")

	// состояние читается по id из пути, заголовок сессии не нужен
	api.GET("/sessions/:id/state", c.sessionState)
	api.GET("/transits/current", c.currentTransits)
	api.POST("/matchmaking", c.matchmaking)

	session := api.Group("", middlewares.Session())
	{
		session.POST("/charts", c.generateChart)

		session.GET("/saved-charts", c.listSavedCharts)
		session.POST("/saved-charts", c.saveChart)
		session.DELETE("/saved-charts/:id", c.deleteSavedChart)
		session.POST("/saved-charts/:id/generate", c.regenerateSavedChart)
	}
}

func (c *Controller) generateChart(ctx *gin.Context) {
	var in domain.BirthInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		c.Log.Warn("failed to bind chart request", "error", err)
		c.fail(ctx, "", domain.ErrInvalidBirthData)
		return
	}

	chart, err := c.Kundali.GenerateChart(ctx.Request.Context(), ctx.GetString(middlewares.SessionIDKey), in)
	if err != nil {
		c.fail(ctx, in.Language, err)
		return
	}
	ctx.JSON(http.StatusOK, dataBody{Data: chart})
}

func (c *Controller) sessionState(ctx *gin.Context) {
	state, err := c.Kundali.ViewState(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.fail(ctx, "", err)
		return
	}

	body := viewStateBody{ViewState: state}
	if state.ErrorCode != "" {
		body.Message = localize(requestLanguage(ctx, ""), state.ErrorCode)
	}
	ctx.JSON(http.StatusOK, dataBody{Data: body})
}

func (c *Controller) listSavedCharts(ctx *gin.Context) {
	charts, err := c.Kundali.ListSavedCharts(ctx.Request.Context(), ctx.GetString(middlewares.SessionIDKey))
	if err != nil {
		c.fail(ctx, "", err)
		return
	}
	if charts == nil {
		charts = []*domain.SavedChart{}
	}
	ctx.JSON(http.StatusOK, dataBody{Data: charts})
}

func (c *Controller) saveChart(ctx *gin.Context) {
	var in domain.BirthInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		c.Log.Warn("failed to bind save chart request", "error", err)
		c.fail(ctx, "", domain.ErrInvalidBirthData)
		return
	}

	saved, err := c.Kundali.SaveChart(ctx.Request.Context(), ctx.GetString(middlewares.SessionIDKey), in)
	if err != nil {
		c.fail(ctx, in.Language, err)
		return
	}
	ctx.JSON(http.StatusCreated, dataBody{Data: saved})
}

func (c *Controller) deleteSavedChart(ctx *gin.Context) {
	id, ok := c.savedChartID(ctx)
	if !ok {
		return
	}

	if err := c.Kundali.DeleteSavedChart(ctx.Request.Context(), ctx.GetString(middlewares.SessionIDKey), id); err != nil {
		c.fail(ctx, "", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) regenerateSavedChart(ctx *gin.Context) {
	id, ok := c.savedChartID(ctx)
	if !ok {
		return
	}

	var req RegenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Log.Warn("failed to bind regenerate request", "error", err)
		c.fail(ctx, "", domain.ErrInvalidBirthData)
		return
	}
	if req.Language == "" {
		req.Language = ctx.Query("lang")
	}

	chart, err := c.Kundali.RegenerateSavedChart(ctx.Request.Context(), ctx.GetString(middlewares.SessionIDKey), id, req.Language)
	if err != nil {
		c.fail(ctx, req.Language, err)
		return
	}
	ctx.JSON(http.StatusOK, dataBody{Data: chart})
}

func (c *Controller) matchmaking(ctx *gin.Context) {
	var in domain.MatchInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		c.Log.Warn("failed to bind matchmaking request", "error", err)
		c.fail(ctx, "", domain.ErrInvalidBirthData)
		return
	}

	score, err := c.Kundali.MatchCharts(ctx.Request.Context(), in)
	if err != nil {
		c.fail(ctx, in.Bride.Language, err)
		return
	}
	ctx.JSON(http.StatusOK, dataBody{Data: score})
}

func (c *Controller) currentTransits(ctx *gin.Context) {
	snapshot, err := c.Kundali.CurrentTransits(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "", err)
		return
	}
	ctx.JSON(http.StatusOK, dataBody{Data: snapshot})
}

func (c *Controller) savedChartID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		// чужой или битый id неотличим от отсутствующего
		c.fail(ctx, "", domain.ErrSavedChartNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// fail маппит ошибку use case в статус и локализованное сообщение
func (c *Controller) fail(ctx *gin.Context, lang string, err error) {
	code := domain.FailureCode(err)
	kind := kinds[code]

	// BusinessError уже залогирована в use case
	if code == domain.FailureInternal && !domain.IsBusinessError(err) {
		c.Log.Error("request failed",
			"path", ctx.FullPath(),
			"session_id", ctx.GetString(middlewares.SessionIDKey),
			"error", err,
		)
	}

	ctx.JSON(kind.status, errorBody{
		Error:     localize(requestLanguage(ctx, lang), code),
		Code:      code,
		Retryable: kind.retryable,
	})
}

// requestLanguage язык из тела, затем ?lang, затем Accept-Language
func requestLanguage(ctx *gin.Context, lang string) string {
	if lang == "" {
		lang = ctx.Query("lang")
	}
	if lang == "" {
		lang = ctx.GetHeader("Accept-Language")
	}
	return lang
}
