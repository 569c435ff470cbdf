package workflow

import (
	"fmt"

	"github.com/shouni/go-manga-weaver/pkg/generator"
	"github.com/shouni/go-manga-weaver/pkg/layout"
	"github.com/shouni/go-manga-weaver/pkg/publisher"
	"github.com/shouni/go-manga-weaver/pkg/runner"
	"github.com/shouni/go-manga-weaver/pkg/segmenter"

	"github.com/shouni/go-text-format/pkg/builder"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// BuildStoryRunner は、物語の取得とシーン分割を担当する Runner を作成します。
func (m *Manager) BuildStoryRunner() (StoryRunner, error) {
	extractor, err := extract.NewExtractor(m.httpClient)
	if err != nil {
		return nil, fmt.Errorf("extractor の初期化に失敗しました: %w", err)
	}

	return runner.NewStoryRunner(
		extractor,
		m.reader,
		segmenter.New(),
		m.cfg.MaxSceneLength,
		m.cfg.MinSceneLength,
	), nil
}

// BuildLayoutRunner は、吹き出し配置の計算を担当する Runner を作成します。
func (m *Manager) BuildLayoutRunner() (LayoutRunner, error) {
	return runner.NewLayoutRunner(
		layout.New(),
		m.cfg.CanvasWidth,
		m.cfg.CanvasHeight,
		m.cfg.PanelMargin,
	), nil
}

// BuildSceneImageRunner は、シーン画像生成を担当する Runner を作成します。
func (m *Manager) BuildSceneImageRunner() (SceneImageRunner, error) {
	sceneGen := generator.NewSceneGenerator(m.composer)

	return runner.NewSceneImageRunner(sceneGen, m.writer, m.cfg.SceneLimit), nil
}

// BuildPublishRunner は、成果物のパブリッシュを担当する Runner を作成します。
func (m *Manager) BuildPublishRunner() (PublishRunner, error) {
	htmlCfg := builder.BuilderConfig{
		EnableHardWraps: true,
		Mode:            "webtoon",
	}
	md2htmlBuilder, err := builder.NewBuilder(htmlCfg)
	if err != nil {
		return nil, fmt.Errorf("md2htmlBuilder の初期化に失敗しました: %w", err)
	}
	md2htmlRunner, err := md2htmlBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("md2htmlRunner の初期化に失敗しました: %w", err)
	}

	pub := publisher.NewMangaPublisher(m.writer, md2htmlRunner)

	return runner.NewPublishRunner(pub, m.cfg.CanvasWidth, m.cfg.CanvasHeight), nil
}
