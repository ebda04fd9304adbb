package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"

	"doc-intel-go/internal/config"
	"doc-intel-go/internal/logger"
	"doc-intel-go/internal/processor"
)

// AnalyzeRequest 分析请求体；input_dir 缺省时使用配置中的输入目录
type AnalyzeRequest struct {
	Persona  string `json:"persona"`
	Job      string `json:"job"`
	InputDir string `json:"input_dir"`
}

// AnalyzeHandler 文档分析 API 处理器
type AnalyzeHandler struct {
	processor *processor.PersonaProcessor
	defaults  config.AnalysisConfig
}

// NewAnalyzeHandler 创建分析处理器
func NewAnalyzeHandler(p *processor.PersonaProcessor, defaults config.AnalysisConfig) *AnalyzeHandler {
	return &AnalyzeHandler{processor: p, defaults: defaults}
}

// HandleAnalyze 执行一次完整的画像分析并返回结果 JSON。
// 流水线自身保证任何失败都降级为结构完整的结果，因此这里只校验参数。
func (h *AnalyzeHandler) HandleAnalyze(c context.Context, ctx *app.RequestContext) {
	var req AnalyzeRequest
	if err := ctx.BindAndValidate(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "invalid request body"})
		return
	}
	if req.Persona == "" || req.Job == "" {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "persona and job are required"})
		return
	}

	inputDir := req.InputDir
	if inputDir == "" {
		inputDir = h.defaults.InputDir
	}

	requestID := uuid.NewString()
	logger.Info().Str("request_id", requestID).Str("persona", req.Persona).
		Str("job", req.Job).Str("input_dir", inputDir).Msg("收到分析请求")

	result := h.processor.ProcessDocuments(c, inputDir, req.Persona, req.Job)

	logger.Info().Str("request_id", requestID).
		Int("sections", result.Metadata.TotalSectionsFound).
		Int("subsections", result.Metadata.TotalSubsectionsFound).
		Msg("分析请求完成")
	ctx.JSON(consts.StatusOK, result)
}
