package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/layout"

	"golang.org/x/sync/errgroup"
)

// LayoutRunner は、全シーンの吹き出し配置を並列に計算する責務を持ちます。
type LayoutRunner struct {
	engine       *layout.Engine
	canvasWidth  int
	canvasHeight int
	margin       int
}

// NewLayoutRunner は依存関係を注入して初期化します。
func NewLayoutRunner(engine *layout.Engine, canvasW, canvasH, margin int) *LayoutRunner {
	return &LayoutRunner{
		engine:       engine,
		canvasWidth:  canvasW,
		canvasHeight: canvasH,
		margin:       margin,
	}
}

// Run は各シーンの配置をシーンの Index 順で返します。
// 収容不能なシーンは警告ログを出しつつ、フォールバック配置をそのまま採用します。
func (lr *LayoutRunner) Run(ctx context.Context, story *domain.Story) ([]*layout.Result, error) {
	results := make([]*layout.Result, len(story.Scenes))
	eg, _ := errgroup.WithContext(ctx)

	for i, scene := range story.Scenes {
		i, scene := i, scene
		eg.Go(func() error {
			res, err := lr.engine.Layout(scene.DialogueLines, lr.canvasWidth, lr.canvasHeight, lr.margin)
			if err != nil {
				return fmt.Errorf("シーン %d の配置計算に失敗しました: %w", scene.Index, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i, res := range results {
		if !res.Feasible {
			slog.Warn("シーンの吹き出しを先着配置で収容できなかったため、グリッド配置へ切り替えました",
				"scene_index", i,
				"bubbles", len(res.Placements),
			)
		}
	}

	return results, nil
}
