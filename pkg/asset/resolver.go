// Package asset は成果物の出力パス解決を担います。
package asset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultImageDir は生成された画像を格納するデフォルトのディレクトリ名です。
	DefaultImageDir = "images"
	// DefaultScenesJSON は解析済みシーン列のデフォルト JSON ファイル名です。
	DefaultScenesJSON = "scenes.json"
	// DefaultPlotName は生成されたプロットのデフォルト Markdown ファイル名です。
	DefaultPlotName = "manga_plot.md"
	// DefaultSceneFileName はシーン画像の共通のベースファイル名です。
	DefaultSceneFileName = "scene.png"
)

// SceneFileRegex はシーン画像 (scene_1.png 等) に一致します
var SceneFileRegex = createIndexedRegex(DefaultSceneFileName)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// ResolveBaseURL は、入力パス（URLまたはローカルパス）から
// 親ディレクトリのパスを解決し、末尾がセパレータで終わるように正規化します。
func ResolveBaseURL(rawPath string) string {
	return urlpath.ResolveBaseURL(rawPath)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入し、
// 新しいパス文字列を生成します。index は1以上の整数である必要があります。
// 例: "path/to/scene.png", 1 -> "path/to/scene_1.png"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}

// createIndexedRegex は、ファイル名に基づきインデックス付きファイル用の正規表現を生成します。
// 例: "scene.png" -> ^scene_\d+\.png$
func createIndexedRegex(fileName string) *regexp.Regexp {
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)

	pattern := fmt.Sprintf(`^%s_\d+%s$`, regexp.QuoteMeta(baseName), regexp.QuoteMeta(ext))
	return regexp.MustCompile(pattern)
}
