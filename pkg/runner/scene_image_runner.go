package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-manga-weaver/pkg/asset"
	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/generator"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// SceneImageRunner は、シーン列を元に並列画像生成を管理します。
type SceneImageRunner struct {
	generator  *generator.SceneGenerator
	writer     remoteio.OutputWriter
	sceneLimit int
}

// NewSceneImageRunner は依存関係を注入して初期化します。
func NewSceneImageRunner(gen *generator.SceneGenerator, writer remoteio.OutputWriter, sceneLimit int) *SceneImageRunner {
	return &SceneImageRunner{
		generator:  gen,
		writer:     writer,
		sceneLimit: sceneLimit,
	}
}

// Run は Story を受け取り、シーン画像を生成します。
// sceneLimit が正の場合、先頭からその数までのシーンのみを対象とします。
func (r *SceneImageRunner) Run(ctx context.Context, story *domain.Story) ([]*imagedom.ImageResponse, error) {
	scenes := story.Scenes
	if r.sceneLimit > 0 && len(scenes) > r.sceneLimit {
		slog.Warn("シーン数が上限を超えたため先頭のみ生成します",
			"total", len(scenes),
			"limit", r.sceneLimit,
		)
		scenes = scenes[:r.sceneLimit]
	}

	slog.Info("シーン画像の並列生成を開始します", "scenes", len(scenes))

	images, err := r.generator.Execute(ctx, scenes)
	if err != nil {
		slog.Error("シーン画像の生成に失敗しました", "error", err)
		return nil, err
	}

	slog.Info("シーン画像の生成が完了しました", "count", len(images))
	return images, nil
}

// RunAndSave はシーン画像を生成し、連番を付けて出力先へ保存します。
// 保存済みパスの一覧を返します。
func (r *SceneImageRunner) RunAndSave(ctx context.Context, story *domain.Story, outputDir string) ([]*imagedom.ImageResponse, []string, error) {
	basePath, err := asset.ResolveOutputPath(outputDir, asset.DefaultSceneFileName)
	if err != nil {
		return nil, nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	images, err := r.Run(ctx, story)
	if err != nil {
		return nil, nil, err
	}

	paths := make([]string, 0, len(images))
	for i, image := range images {
		if image == nil || len(image.Data) == 0 {
			continue
		}

		scenePath, err := asset.GenerateIndexedPath(basePath, i+1)
		if err != nil {
			return nil, nil, fmt.Errorf("シーン %d の出力パス生成に失敗しました: %w", i+1, err)
		}

		slog.InfoContext(ctx, "シーン画像を保存しています",
			"index", i+1,
			"path", scenePath,
		)

		if err := r.writer.Write(ctx, scenePath, bytes.NewReader(image.Data), image.MimeType); err != nil {
			return nil, nil, fmt.Errorf("第 %d シーンの保存に失敗しました (path: %s): %w", i+1, scenePath, err)
		}
		paths = append(paths, scenePath)
	}

	return images, paths, nil
}
