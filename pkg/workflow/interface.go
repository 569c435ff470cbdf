package workflow

import (
	"context"

	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/layout"
	"github.com/shouni/go-manga-weaver/pkg/publisher"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// Workflow は、漫画生成ワークフローの各工程を担当するRunnerを構築するためのインターフェースを定義します。
type Workflow interface {
	BuildStoryRunner() (StoryRunner, error)
	BuildLayoutRunner() (LayoutRunner, error)
	BuildSceneImageRunner() (SceneImageRunner, error)
	BuildPublishRunner() (PublishRunner, error)
}

// StoryRunner は、ソース（URLやファイル）を解析し、シーン列へ分割する責務を持ちます。
type StoryRunner interface {
	Run(ctx context.Context, source string, reg *domain.CharacterRegistry) (*domain.Story, error)
}

// LayoutRunner は、各シーンの吹き出し配置を計算する責務を持ちます。
type LayoutRunner interface {
	Run(ctx context.Context, story *domain.Story) ([]*layout.Result, error)
}

// SceneImageRunner は、シーン列を基にシーン画像を生成する責務を持ちます。
type SceneImageRunner interface {
	Run(ctx context.Context, story *domain.Story) ([]*imagedom.ImageResponse, error)
	RunAndSave(ctx context.Context, story *domain.Story, outputDir string) ([]*imagedom.ImageResponse, []string, error)
}

// PublishRunner は、シーン・配置・画像を統合し、指定された形式（例: HTML）で出力する責務を持ちます。
type PublishRunner interface {
	Run(ctx context.Context, story *domain.Story, layouts []*layout.Result, images []*imagedom.ImageResponse, outputDir string) (publisher.PublishResult, error)
}
