package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"doc-intel-go/internal/api/handler"
	"doc-intel-go/internal/langdetect"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, analyzeHandler *handler.AnalyzeHandler, detector *langdetect.Detector) {
	api := h.Group("/api/v1")

	api.POST("/analyze", analyzeHandler.HandleAnalyze)

	api.GET("/languages", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"languages": detector.SupportedLanguages()})
	})

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
