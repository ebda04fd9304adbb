package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	hlog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	"doc-intel-go/internal/analyzer"
	"doc-intel-go/internal/api/handler"
	"doc-intel-go/internal/api/router"
	"doc-intel-go/internal/config"
	"doc-intel-go/internal/extractor"
	"doc-intel-go/internal/knowledge"
	"doc-intel-go/internal/langdetect"
	"doc-intel-go/internal/logger"
	"doc-intel-go/internal/processor"
)

func main() {
	var (
		configPath string
		inputDir   string
		outputDir  string
		persona    string
		job        string
		serve      bool
		addr       string
	)
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径（默认探测 ./config.yaml）")
	pflag.StringVar(&inputDir, "input", "", "输入 PDF 目录（默认 input）")
	pflag.StringVar(&outputDir, "output", "", "输出目录（默认 output）")
	pflag.StringVar(&persona, "persona", "", "读者画像，如 researcher、student、analyst")
	pflag.StringVar(&job, "job", "", "任务目标，如 literature_review、exam_preparation")
	pflag.BoolVar(&serve, "serve", false, "以 HTTP 服务模式运行")
	pflag.StringVar(&addr, "addr", "", "服务监听地址（serve 模式，默认取配置）")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logger)

	// 命令行参数优先于配置文件
	if inputDir != "" {
		cfg.Analysis.InputDir = inputDir
	}
	if outputDir != "" {
		cfg.Analysis.OutputDir = outputDir
	}
	if addr != "" {
		cfg.Server.Address = addr
	}

	ctx := context.Background()
	p, detector := buildPipeline(ctx, cfg)

	if serve {
		runServer(cfg, p, detector)
		return
	}

	if persona == "" || job == "" {
		fmt.Fprintln(os.Stderr, "必须指定 --persona 与 --job")
		pflag.Usage()
		os.Exit(2)
	}
	runOnce(ctx, cfg, p, persona, job)
}

// buildPipeline 按配置装配全部组件，可选依赖缺席时逐级降级
func buildPipeline(ctx context.Context, cfg *config.Config) (*processor.PersonaProcessor, *langdetect.Detector) {
	detector := langdetect.NewDetector()

	kb := knowledge.Default()
	if cfg.Analysis.KnowledgeFile != "" {
		loaded, err := knowledge.LoadFromFile(cfg.Analysis.KnowledgeFile)
		if err != nil {
			logger.Warn().Err(err).Str("file", cfg.Analysis.KnowledgeFile).
				Msg("知识库覆盖文件加载失败，使用内置知识库")
		} else {
			kb = loaded
			logger.Info().Str("file", cfg.Analysis.KnowledgeFile).Msg("知识库覆盖文件加载成功")
		}
	}

	strategies := []extractor.ExtractionStrategy{extractor.NewStyledPDFStrategy()}
	if einoStrategy, err := extractor.NewEinoTextStrategy(ctx); err != nil {
		logger.Warn().Err(err).Msg("Eino 纯文本回退策略初始化失败，仅使用主提取策略")
	} else {
		strategies = append(strategies, einoStrategy)
	}
	docExtractor := extractor.NewDocumentExtractor(detector, logger.Logger, strategies...)

	var embedder analyzer.TextEmbedder
	if cfg.Embedding.APIKey != "" {
		aliyun, err := analyzer.NewAliyunEmbedder(cfg.Embedding)
		if err != nil {
			logger.Warn().Err(err).Msg("向量服务初始化失败，语义分量将降级为 0")
		} else {
			embedder = aliyun
			logger.Info().Str("model", cfg.Embedding.Model).Msg("向量服务初始化成功")
			if cfg.Redis.Address != "" {
				client := redis.NewClient(&redis.Options{
					Addr:     cfg.Redis.Address,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				ttl := time.Duration(cfg.Redis.CacheTTLHours) * time.Hour
				embedder = analyzer.NewCachedEmbedder(aliyun, client, aliyun.GetModel(), ttl, logger.Logger)
				logger.Info().Str("address", cfg.Redis.Address).Msg("启用 redis 向量缓存")
			}
		}
	} else {
		logger.Warn().Msg("未配置向量服务 API Key，语义相似度分量将始终为 0")
	}

	relevance := analyzer.NewRelevanceAnalyzer(kb, detector, embedder, logger.Logger)

	p := processor.New(processor.Components{
		Extractor: docExtractor,
		Analyzer:  relevance,
		Detector:  detector,
		Knowledge: kb,
	}, processor.Settings{
		TimeBudget: cfg.TimeBudget(),
		Logger:     logger.Logger,
	})
	return p, detector
}

// runOnce 单次分析并把结果写入输出目录
func runOnce(ctx context.Context, cfg *config.Config, p *processor.PersonaProcessor, persona, job string) {
	if err := os.MkdirAll(cfg.Analysis.OutputDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.Analysis.OutputDir).Msg("创建输出目录失败")
	}

	result := p.ProcessDocuments(ctx, cfg.Analysis.InputDir, persona, job)

	outputPath := filepath.Join(cfg.Analysis.OutputDir, cfg.Analysis.OutputFilename)
	file, err := os.Create(outputPath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", outputPath).Msg("创建结果文件失败")
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(result); err != nil {
		logger.Fatal().Err(err).Str("file", outputPath).Msg("写入结果失败")
	}

	logger.Info().Str("file", outputPath).
		Int("sections", result.Metadata.TotalSectionsFound).
		Int("subsections", result.Metadata.TotalSubsectionsFound).
		Float64("seconds", result.Metadata.ProcessingTimeSeconds).
		Msg("分析完成")
}

// runServer 以 HTTP 服务模式运行，收到退出信号后优雅关闭
func runServer(cfg *config.Config, p *processor.PersonaProcessor, detector *langdetect.Detector) {
	hlog.SetLogger(hertzadapter.From(logger.Logger))

	h := server.Default(server.WithHostPorts(cfg.Server.Address))
	router.RegisterRoutes(h, handler.NewAnalyzeHandler(p, cfg.Analysis), detector)

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("HTTP 服务启动失败")
		}
	}()
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP 服务已启动")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("收到退出信号，关闭服务")
	if err := h.Shutdown(context.Background()); err != nil {
		logger.Error().Err(err).Msg("服务关闭异常")
	}
}
