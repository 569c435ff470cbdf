package workflow

import (
	"fmt"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/generator"
	"github.com/shouni/go-manga-weaver/pkg/prompts"

	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// buildSceneComposer は、提供された構成と依存関係を使用して SceneComposer を初期化して返します。
func buildSceneComposer(
	cfg Config,
	httpClient httpkit.ClientInterface,
	aiClient gemini.GenerativeModel,
	reader remoteio.InputReader,
	registry *domain.CharacterRegistry,
) (*generator.SceneComposer, error) {

	core, err := initializeCore(reader, httpClient, aiClient)
	if err != nil {
		return nil, fmt.Errorf("画像生成エンジンの初期化に失敗しました: %w", err)
	}

	imageGenerator, err := imagekit.NewGeminiGenerator(cfg.ImageModel, core)
	if err != nil {
		return nil, fmt.Errorf("画像ジェネレーターの初期化に失敗しました: %w", err)
	}

	pb := prompts.NewScenePromptBuilder(registry, cfg.StyleSuffix)

	return generator.NewSceneComposer(
		core,
		imageGenerator,
		pb,
		registry,
		rate.NewLimiter(rate.Every(cfg.RateInterval), 2),
	), nil
}

// initializeCore は、提供された依存関係で構成された GeminiImageCore インスタンスを初期化して返します。
func initializeCore(reader remoteio.InputReader, httpClient httpkit.ClientInterface, aiClient gemini.GenerativeModel) (*imagekit.GeminiImageCore, error) {
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	core, err := imagekit.NewGeminiImageCore(
		aiClient,
		reader,
		httpClient,
		imgCache,
		defaultTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCore の初期化に失敗しました: %w", err)
	}

	return core, nil
}
