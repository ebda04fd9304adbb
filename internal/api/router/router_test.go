package router

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intel-go/internal/analyzer"
	"doc-intel-go/internal/api/handler"
	"doc-intel-go/internal/config"
	"doc-intel-go/internal/extractor"
	"doc-intel-go/internal/knowledge"
	"doc-intel-go/internal/langdetect"
	"doc-intel-go/internal/processor"
	"doc-intel-go/internal/types"
)

func newTestServer() *server.Hertz {
	detector := langdetect.NewDetector()
	kb := knowledge.Default()
	p := processor.New(processor.Components{
		Extractor: extractor.NewDocumentExtractor(detector, zerolog.Nop(), extractor.NewStyledPDFStrategy()),
		Analyzer:  analyzer.NewRelevanceAnalyzer(kb, detector, nil, zerolog.Nop()),
		Detector:  detector,
		Knowledge: kb,
	}, processor.Settings{Logger: zerolog.Nop()})

	h := server.Default(server.WithHostPorts("127.0.0.1:0"))
	RegisterRoutes(h, handler.NewAnalyzeHandler(p, config.Default().Analysis), detector)
	return h
}

func postJSON(t *testing.T, h *server.Hertz, path, body string) *ut.ResponseRecorder {
	t.Helper()
	return ut.PerformRequest(h.Engine, "POST", path,
		&ut.Body{Body: bytes.NewBufferString(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"})
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer()

	w := ut.PerformRequest(h.Engine, "GET", "/api/v1/health", nil)
	resp := w.Result()
	assert.Equal(t, consts.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "ok")
}

func TestLanguagesEndpoint(t *testing.T) {
	h := newTestServer()

	w := ut.PerformRequest(h.Engine, "GET", "/api/v1/languages", nil)
	resp := w.Result()
	assert.Equal(t, consts.StatusOK, resp.StatusCode())

	var payload struct {
		Languages []string `json:"languages"`
	}
	require.NoError(t, json.Unmarshal(resp.Body(), &payload))
	assert.Contains(t, payload.Languages, "en")
	assert.Contains(t, payload.Languages, "hi")
	assert.Len(t, payload.Languages, 7)
}

func TestAnalyzeRejectsMissingFields(t *testing.T) {
	h := newTestServer()

	w := postJSON(t, h, "/api/v1/analyze", `{"persona": "researcher"}`)
	assert.Equal(t, consts.StatusBadRequest, w.Result().StatusCode())

	w = postJSON(t, h, "/api/v1/analyze", `{"job": "literature_review"}`)
	assert.Equal(t, consts.StatusBadRequest, w.Result().StatusCode())
}

func TestAnalyzeReturnsStructuredResult(t *testing.T) {
	h := newTestServer()

	// 输入目录不存在时流水线降级为空结果，HTTP 层仍返回 200
	w := postJSON(t, h, "/api/v1/analyze",
		`{"persona": "researcher", "job": "literature_review", "input_dir": "/nonexistent"}`)
	resp := w.Result()
	require.Equal(t, consts.StatusOK, resp.StatusCode())

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(resp.Body(), &result))
	assert.Equal(t, "researcher", result.Metadata.Persona)
	assert.Contains(t, result.Metadata.Error, "Input directory not found")
	assert.Empty(t, result.ExtractedSections)
}
