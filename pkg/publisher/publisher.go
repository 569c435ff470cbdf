// Package publisher は成果物の永続化とフォーマット変換を担います。
package publisher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-manga-weaver/pkg/asset"
	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/layout"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir    string
	CanvasWidth  int
	CanvasHeight int
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	MarkdownPath string   // 生成された manga_plot.md のパス
	HTMLPath     string   // 生成された HTML のパス
	ImagePaths   []string // 保存された全シーン画像のパスリスト
}

// MangaPublisher は成果物の永続化とフォーマット変換を担います。
type MangaPublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
}

// NewMangaPublisher は指定の writer と HTML ランナーで MangaPublisher を生成します。
func NewMangaPublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *MangaPublisher {
	return &MangaPublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
	}
}

// Publish は画像の保存、Markdownの構築、HTML変換を一括して実行し、
// 生成されたファイル情報を返却します。layouts と images はシーンの Index 順です。
func (p *MangaPublisher) Publish(ctx context.Context, story *domain.Story, layouts []*layout.Result, images []*imagedom.ImageResponse, opts Options) (PublishResult, error) {
	result := PublishResult{}

	markdownPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultPlotName)
	if err != nil {
		return result, err
	}
	result.MarkdownPath = markdownPath

	imgDir, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultImageDir)
	if err != nil {
		return result, err
	}

	savedPaths, err := p.saveImages(ctx, images, imgDir)
	if err != nil {
		return result, fmt.Errorf("画像の書き込みに失敗しました: %w", err)
	}
	result.ImagePaths = savedPaths

	// Markdown からは images/ 配下の相対パスで参照する
	relativePaths := make([]string, 0, len(savedPaths))
	for _, pathStr := range savedPaths {
		relativePaths = append(relativePaths, path.Join(asset.DefaultImageDir, filepath.Base(pathStr)))
	}

	content := p.BuildMarkdown(story, layouts, relativePaths, opts)

	if err := p.writer.Write(ctx, markdownPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}

	if p.htmlRunner != nil {
		slog.Info("Webtoon HTML へ変換しています", "title", story.Title)
		htmlBuffer, err := p.htmlRunner.Run(ctx, story.Title, []byte(content))
		if err != nil {
			return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
		}

		htmlPath := strings.TrimSuffix(markdownPath, filepath.Ext(markdownPath)) + ".html"
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
		result.HTMLPath = htmlPath
	}

	return result, nil
}

// saveImages はシーン画像を連番付きで保存し、保存先パスの一覧を返します。
func (p *MangaPublisher) saveImages(ctx context.Context, images []*imagedom.ImageResponse, baseDir string) ([]string, error) {
	basePath, err := asset.ResolveOutputPath(baseDir, asset.DefaultSceneFileName)
	if err != nil {
		return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	var paths []string
	for i, img := range images {
		if img == nil || len(img.Data) == 0 {
			continue
		}
		fullPath, err := asset.GenerateIndexedPath(basePath, i+1)
		if err != nil {
			return nil, fmt.Errorf("シーン %d の出力パス生成に失敗しました: %w", i+1, err)
		}

		if err := p.writer.Write(ctx, fullPath, bytes.NewReader(img.Data), "image/png"); err != nil {
			return nil, fmt.Errorf("画像の書き込みに失敗しました %s: %w", fullPath, err)
		}
		paths = append(paths, fullPath)
	}
	return paths, nil
}
