// Package pipeline は、解析・配置・画像生成・公開の各フェーズを編成するのだ。
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-manga-weaver/examples"
	"github.com/shouni/go-manga-weaver/internal/config"
	"github.com/shouni/go-manga-weaver/pkg/asset"
	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/layout"
	"github.com/shouni/go-manga-weaver/pkg/publisher"
	"github.com/shouni/go-manga-weaver/pkg/runner"
	"github.com/shouni/go-manga-weaver/pkg/segmenter"
	"github.com/shouni/go-manga-weaver/pkg/workflow"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/builder"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// DefaultLayoutJSON は配置結果のデフォルト JSON ファイル名なのだ。
const DefaultLayoutJSON = "layout.json"

// AnalysisDocument は analyze フェーズの成果物（scenes.json）のスキーマなのだ。
type AnalysisDocument struct {
	Title      string              `json:"title"`
	Scenes     domain.Scenes       `json:"scenes"`
	Characters []*domain.Character `json:"characters"`
}

// ioContext は各フェーズで共有する入出力コンポーネントなのだ。
type ioContext struct {
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	writer     remoteio.OutputWriter
}

// Execute は解析からパブリッシュまでの全フェーズを一括実行するのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	ioCtx, err := setupIO(ctx, cfg)
	if err != nil {
		return err
	}

	dnaData, err := loadCharacterDNA(ctx, ioCtx.reader, cfg.Options.CharacterConfig)
	if err != nil {
		return err
	}

	mgr, err := workflow.New(ctx, workflow.ManagerArgs{
		Config:     cfg.ToWorkflowConfig(),
		HTTPClient: ioCtx.httpClient,
		Reader:     ioCtx.reader,
		Writer:     ioCtx.writer,
		DNAData:    dnaData,
	})
	if err != nil {
		return fmt.Errorf("ワークフローの初期化に失敗したのだ: %w", err)
	}

	// --- Phase 1: Analyze (シーン分割) ---
	story, err := runAnalyzeStep(ctx, mgr, cfg)
	if err != nil {
		return err
	}

	// --- Phase 2: Layout (吹き出し配置) ---
	layouts, err := runLayoutStep(ctx, mgr, story)
	if err != nil {
		return err
	}

	// --- Phase 3: Image (シーン画像生成) ---
	slog.Info("Phase 3: シーン画像生成を開始するのだ...", "scenes", len(story.Scenes))
	imageRunner, err := mgr.BuildSceneImageRunner()
	if err != nil {
		return fmt.Errorf("SceneImageRunnerの構築に失敗したのだ: %w", err)
	}
	images, err := imageRunner.Run(ctx, story)
	if err != nil {
		return fmt.Errorf("シーン画像の生成に失敗したのだ: %w", err)
	}

	// --- Phase 4: Publish (公開/保存) ---
	slog.Info("Phase 4: 公開処理を開始するのだ...")
	publishRunner, err := mgr.BuildPublishRunner()
	if err != nil {
		return fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}
	if _, err := publishRunner.Run(ctx, story, layouts, images, cfg.Options.OutputDir); err != nil {
		return fmt.Errorf("公開処理に失敗したのだ: %w", err)
	}

	slog.Info("全フェーズが完了したのだ！")
	return nil
}

// ExecuteAnalyzeOnly はシーン分割のみを実行し、scenes.json を出力するのだ。
// AIクライアントを必要としないため、APIキーなしでも動作するのだ。
func ExecuteAnalyzeOnly(ctx context.Context, cfg *config.Config) error {
	ioCtx, err := setupIO(ctx, cfg)
	if err != nil {
		return err
	}

	extractor, err := extract.NewExtractor(ioCtx.httpClient)
	if err != nil {
		return fmt.Errorf("extractor の初期化に失敗したのだ: %w", err)
	}

	maxLen, minLen := sceneBounds(cfg)
	storyRunner := runner.NewStoryRunner(extractor, ioCtx.reader, segmenter.New(), maxLen, minLen)

	reg := domain.NewCharacterRegistry()
	story, err := storyRunner.Run(ctx, cfg.Options.Source(), reg)
	if err != nil {
		return err
	}

	doc := AnalysisDocument{
		Title:      story.Title,
		Scenes:     story.Scenes,
		Characters: reg.All(),
	}
	outPath, err := asset.ResolveOutputPath(cfg.Options.OutputDir, asset.DefaultScenesJSON)
	if err != nil {
		return err
	}
	if err := writeJSON(ctx, ioCtx.writer, outPath, doc); err != nil {
		return err
	}

	slog.Info("シーン解析の結果を保存したのだ", "path", outPath, "scenes", len(story.Scenes))
	return nil
}

// ExecuteLayoutOnly は scenes.json を読み込み、吹き出し配置のみを計算するのだ。
func ExecuteLayoutOnly(ctx context.Context, cfg *config.Config) error {
	ioCtx, err := setupIO(ctx, cfg)
	if err != nil {
		return err
	}

	doc, err := readAnalysisDocument(ctx, ioCtx.reader, cfg.Options.SourceFile)
	if err != nil {
		return err
	}

	story := &domain.Story{Title: doc.Title, Scenes: doc.Scenes}
	layoutRunner := runner.NewLayoutRunner(
		layout.New(),
		config.DefaultCanvasWidth,
		config.DefaultCanvasHeight,
		config.DefaultPanelMargin,
	)
	results, err := layoutRunner.Run(ctx, story)
	if err != nil {
		return err
	}

	outPath, err := asset.ResolveOutputPath(cfg.Options.OutputDir, DefaultLayoutJSON)
	if err != nil {
		return err
	}
	if err := writeJSON(ctx, ioCtx.writer, outPath, results); err != nil {
		return err
	}

	slog.Info("吹き出し配置の結果を保存したのだ", "path", outPath, "scenes", len(results))
	return nil
}

// ExecutePublishOnly は scenes.json から Markdown/HTML を生成するのだ。
// 画像は生成せず、プレースホルダー参照で出力するのだ。
func ExecutePublishOnly(ctx context.Context, cfg *config.Config) error {
	ioCtx, err := setupIO(ctx, cfg)
	if err != nil {
		return err
	}

	doc, err := readAnalysisDocument(ctx, ioCtx.reader, cfg.Options.SourceFile)
	if err != nil {
		return err
	}

	story := &domain.Story{Title: doc.Title, Scenes: doc.Scenes}
	layoutRunner := runner.NewLayoutRunner(
		layout.New(),
		config.DefaultCanvasWidth,
		config.DefaultCanvasHeight,
		config.DefaultPanelMargin,
	)
	layouts, err := layoutRunner.Run(ctx, story)
	if err != nil {
		return err
	}

	publishRunner, err := buildStandalonePublishRunner(ioCtx.writer)
	if err != nil {
		return err
	}
	if _, err := publishRunner.Run(ctx, story, layouts, nil, cfg.Options.OutputDir); err != nil {
		return fmt.Errorf("公開処理に失敗したのだ: %w", err)
	}
	return nil
}

// runAnalyzeStep は StoryRunner で本文をシーン列へ解析し、DNAを台帳へ統合するのだ。
func runAnalyzeStep(ctx context.Context, mgr *workflow.Manager, cfg *config.Config) (*domain.Story, error) {
	slog.Info("Phase 1: シーン解析を開始するのだ...", "source", cfg.Options.Source())
	storyRunner, err := mgr.BuildStoryRunner()
	if err != nil {
		return nil, fmt.Errorf("StoryRunnerの構築に失敗したのだ: %w", err)
	}

	story, err := storyRunner.Run(ctx, cfg.Options.Source(), mgr.Registry())
	if err != nil {
		return nil, fmt.Errorf("シーン解析に失敗したのだ: %w", err)
	}

	if err := mgr.ApplyCharacterDNA(); err != nil {
		return nil, err
	}
	return story, nil
}

// runLayoutStep は LayoutRunner で全シーンの吹き出し配置を計算するのだ。
func runLayoutStep(ctx context.Context, mgr *workflow.Manager, story *domain.Story) ([]*layout.Result, error) {
	slog.Info("Phase 2: 吹き出し配置を開始するのだ...", "scenes", len(story.Scenes))
	layoutRunner, err := mgr.BuildLayoutRunner()
	if err != nil {
		return nil, fmt.Errorf("LayoutRunnerの構築に失敗したのだ: %w", err)
	}

	layouts, err := layoutRunner.Run(ctx, story)
	if err != nil {
		return nil, fmt.Errorf("吹き出し配置の計算に失敗したのだ: %w", err)
	}
	return layouts, nil
}

// setupIO は、HTTPクライアントとGCS対応の入出力コンポーネントを初期化するのだ。
func setupIO(ctx context.Context, cfg *config.Config) (*ioContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	return &ioContext{httpClient: httpClient, reader: reader, writer: writer}, nil
}

// loadCharacterDNA はキャラクターDNA定義を読み込むのだ。
// パスが未指定の場合は同梱のサンプル定義へフォールバックするのだ。
func loadCharacterDNA(ctx context.Context, reader remoteio.InputReader, path string) ([]byte, error) {
	if path == "" {
		return examples.CharactersJSON, nil
	}

	rc, err := reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("キャラクター定義 '%s' の読み込みに失敗したのだ: %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("キャラクター定義 '%s' の読み取りに失敗したのだ: %w", path, err)
	}
	return data, nil
}

// readAnalysisDocument は analyze フェーズの成果物（scenes.json）を読み込むのだ。
func readAnalysisDocument(ctx context.Context, reader remoteio.InputReader, path string) (*AnalysisDocument, error) {
	if path == "" {
		return nil, fmt.Errorf("scenes.json のパス（--source-file）を指定してほしいのだ")
	}

	rc, err := reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("解析結果 '%s' の読み込みに失敗したのだ: %w", path, err)
	}
	defer rc.Close()

	var doc AnalysisDocument
	if err := json.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, fmt.Errorf("解析結果 '%s' のデコードに失敗したのだ: %w", path, err)
	}
	return &doc, nil
}

// writeJSON は任意の値を整形済みJSONとして書き出すのだ。
func writeJSON(ctx context.Context, writer remoteio.OutputWriter, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("JSONへの変換に失敗したのだ: %w", err)
	}
	if err := writer.Write(ctx, path, bytes.NewReader(data), "application/json; charset=utf-8"); err != nil {
		return fmt.Errorf("'%s' の書き込みに失敗したのだ: %w", path, err)
	}
	return nil
}

// buildStandalonePublishRunner は、AIクライアントを要さないパブリッシュ専用の
// Runner を構築するのだ。
func buildStandalonePublishRunner(writer remoteio.OutputWriter) (*runner.PublishRunner, error) {
	htmlCfg := builder.BuilderConfig{
		EnableHardWraps: true,
		Mode:            "webtoon",
	}
	md2htmlBuilder, err := builder.NewBuilder(htmlCfg)
	if err != nil {
		return nil, fmt.Errorf("md2htmlBuilder の初期化に失敗したのだ: %w", err)
	}
	md2htmlRunner, err := md2htmlBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("md2htmlRunner の初期化に失敗したのだ: %w", err)
	}

	pub := publisher.NewMangaPublisher(writer, md2htmlRunner)
	return runner.NewPublishRunner(pub, config.DefaultCanvasWidth, config.DefaultCanvasHeight), nil
}

func sceneBounds(cfg *config.Config) (int, int) {
	maxLen := cfg.Options.MaxSceneLength
	if maxLen <= 0 {
		maxLen = config.DefaultMaxSceneLength
	}
	minLen := cfg.Options.MinSceneLength
	if minLen <= 0 {
		minLen = config.DefaultMinSceneLength
	}
	return maxLen, minLen
}
