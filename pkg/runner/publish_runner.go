package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/layout"
	"github.com/shouni/go-manga-weaver/pkg/publisher"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// PublishRunner は、解析結果・配置・画像を統合して最終成果物を出力する責務を持ちます。
type PublishRunner struct {
	publisher    *publisher.MangaPublisher
	canvasWidth  int
	canvasHeight int
}

// NewPublishRunner は依存関係を注入して初期化します。
func NewPublishRunner(pub *publisher.MangaPublisher, canvasW, canvasH int) *PublishRunner {
	return &PublishRunner{
		publisher:    pub,
		canvasWidth:  canvasW,
		canvasHeight: canvasH,
	}
}

// Run は Markdown・HTML・画像ファイルを出力し、生成されたファイル情報を返します。
func (pr *PublishRunner) Run(ctx context.Context, story *domain.Story, layouts []*layout.Result, images []*imagedom.ImageResponse, outputDir string) (publisher.PublishResult, error) {
	slog.Info("成果物のパブリッシュを開始します", "title", story.Title, "output_dir", outputDir)

	result, err := pr.publisher.Publish(ctx, story, layouts, images, publisher.Options{
		OutputDir:    outputDir,
		CanvasWidth:  pr.canvasWidth,
		CanvasHeight: pr.canvasHeight,
	})
	if err != nil {
		return result, fmt.Errorf("パブリッシュ処理に失敗しました: %w", err)
	}

	slog.Info("成果物のパブリッシュが完了しました",
		"markdown", result.MarkdownPath,
		"html", result.HTMLPath,
		"images", len(result.ImagePaths),
	)
	return result, nil
}
