package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/prompts"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// SceneGenerator は、キャラクターの一貫性を保ちながら並列で複数シーンの画像を生成します。
type SceneGenerator struct {
	composer *SceneComposer
}

// NewSceneGenerator は SceneGenerator の新しいインスタンスを初期化します。
func NewSceneGenerator(composer *SceneComposer) *SceneGenerator {
	return &SceneGenerator{composer: composer}
}

// Execute は、並列処理を用いてシーン画像群を生成します。
// 事前にキャラクター参照画像を準備し、各シーンの生成を並行して実行します。
// 戻り値はシーンの Index 順で、失敗したシーンがあれば全体をエラーとします。
func (sg *SceneGenerator) Execute(ctx context.Context, scenes domain.Scenes) ([]*imagedom.ImageResponse, error) {
	if err := sg.composer.PrepareCharacterAssets(ctx, scenes); err != nil {
		return nil, err
	}

	images := make([]*imagedom.ImageResponse, len(scenes))
	eg, egCtx := errgroup.WithContext(ctx)

	pb := sg.composer.PromptBuilder

	for i, scene := range scenes {
		i, scene := i, scene
		eg.Go(func() error {
			if err := sg.composer.RateLimiter.Wait(egCtx); err != nil {
				return err
			}

			userPrompt, systemPrompt, seed := pb.BuildScenePrompt(scene)

			var fileURI, refURL string
			if lead := pb.LeadCharacter(scene); lead != nil {
				fileURI = sg.composer.AssetURI(lead.Name)
				refURL = lead.ReferenceURL
			}

			logger := slog.With("scene_index", scene.Index, "use_file_api", fileURI != "")
			logger.Info("シーン画像の生成を開始します")

			start := time.Now()
			resp, err := sg.composer.ImageGenerator.GenerateMangaPanel(egCtx, imagedom.ImageGenerationRequest{
				Prompt:         userPrompt,
				NegativePrompt: prompts.NegativeScenePrompt,
				SystemPrompt:   systemPrompt,
				Seed:           &seed,
				FileAPIURI:     fileURI,
				ReferenceURL:   refURL,
				AspectRatio:    SceneAspectRatio,
			})
			if err != nil {
				return fmt.Errorf("シーン %d の画像生成に失敗しました: %w", scene.Index, err)
			}

			logger.Info("シーン画像の生成が完了しました", "duration", time.Since(start).Round(time.Millisecond))
			images[i] = resp
			return nil
		})
	}

	return images, eg.Wait()
}
