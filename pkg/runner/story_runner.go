// Package runner は、物語解析から公開までの各工程を実行する Runner 群を提供します。
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/segmenter"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// DefaultStoryTitle はソースからタイトルを導出できなかった場合の既定値です。
const DefaultStoryTitle = "Untitled Story"

// StoryRunner は、ソース（URLまたはファイル）から物語テキストを取得し、
// シーン列へ解析する責務を持ちます。
type StoryRunner struct {
	extractor   *extract.Extractor
	reader      remoteio.InputReader
	segmenter   *segmenter.Segmenter
	maxSceneLen int
	minSceneLen int
}

// NewStoryRunner は依存関係を注入して初期化します。
func NewStoryRunner(
	ext *extract.Extractor,
	reader remoteio.InputReader,
	seg *segmenter.Segmenter,
	maxSceneLen, minSceneLen int,
) *StoryRunner {
	return &StoryRunner{
		extractor:   ext,
		reader:      reader,
		segmenter:   seg,
		maxSceneLen: maxSceneLen,
		minSceneLen: minSceneLen,
	}
}

// Run は物語テキストを取得してシーン列へ解析し、Story を返します。
// 発見されたキャラクターは渡された台帳へ記録されます。
func (sr *StoryRunner) Run(ctx context.Context, source string, reg *domain.CharacterRegistry) (*domain.Story, error) {
	slog.Info("StoryRunner: テキストを取得しています", "source", source)

	text, err := sr.fetchText(ctx, source)
	if err != nil {
		return nil, err
	}

	scenes, err := sr.segmenter.Segment(text, sr.maxSceneLen, sr.minSceneLen, reg)
	if err != nil {
		return nil, fmt.Errorf("シーン分割に失敗しました: %w", err)
	}

	slog.Info("StoryRunner: シーン分割が完了しました",
		"scenes", len(scenes),
		"characters", reg.Len(),
	)

	return &domain.Story{
		Title:  deriveTitle(source),
		Scenes: scenes,
	}, nil
}

// fetchText はソースの種別（URL/ファイル）に応じて本文テキストを取得します。
func (sr *StoryRunner) fetchText(ctx context.Context, source string) (string, error) {
	if isWebURL(source) {
		text, _, err := sr.extractor.FetchAndExtractText(ctx, source)
		if err != nil {
			return "", fmt.Errorf("URLからのテキスト抽出に失敗しました: %w", err)
		}
		return text, nil
	}

	rc, err := sr.reader.Open(ctx, source)
	if err != nil {
		return "", fmt.Errorf("入力ファイル '%s' の読み込みに失敗しました: %w", source, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("入力ファイル '%s' の読み取りに失敗しました: %w", source, err)
	}
	return string(data), nil
}

func isWebURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// deriveTitle はソースのパスからタイトルを導出します。
func deriveTitle(source string) string {
	name := source
	if u, err := url.Parse(source); err == nil && u.Path != "" {
		name = u.Path
	}

	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == "/" {
		return DefaultStoryTitle
	}
	return base
}
