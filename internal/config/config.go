package config

import (
	"time"

	"github.com/shouni/go-manga-weaver/pkg/workflow"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultImageModel  = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultSceneLimit  = 10
	DefaultRateLimit   = 30 * time.Second
	DefaultMode        = "ghibli"
	DefaultOutputDir   = "output" // 成果物（Markdown/HTML/画像）のデフォルト保存先なのだ

	// シーン分割の長さ制約なのだ
	DefaultMaxSceneLength = 500
	DefaultMinSceneLength = 50

	// キャンバスと文字描画の既定値なのだ
	DefaultCanvasWidth       = 1024
	DefaultCanvasHeight      = 768
	DefaultPanelMargin       = 20
	DefaultBubblePadding     = 15
	DefaultFontSizeDialogue  = 16
	DefaultFontSizeNarration = 14
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体なのだ。
type Config struct {
	ProjectID         string
	LocationID        string
	GeminiAPIKey      string
	GeminiModel       string
	GeminiImageModel  string
	ImagePromptSuffix string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		ProjectID:         envutil.GetEnv("PROJECT_ID", ""),
		LocationID:        envutil.GetEnv("REGION", ""),
		GeminiAPIKey:      envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:       envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel:  envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		ImagePromptSuffix: envutil.GetEnv("IMAGE_PROMPT_SUFFIX", ""),
	}
	return cfg
}

// ToWorkflowConfig は、環境設定とCLIオプションをワークフロー設定へ写像するのだ。
func (c *Config) ToWorkflowConfig() workflow.Config {
	wc := workflow.NewConfig(c.GeminiAPIKey)
	wc.GeminiModel = c.GeminiModel
	wc.ImageModel = c.GeminiImageModel
	if c.ImagePromptSuffix != "" {
		wc.StyleSuffix = c.ImagePromptSuffix
	}
	if c.Options.SceneLimit > 0 {
		wc.SceneLimit = c.Options.SceneLimit
	}
	if c.Options.MaxSceneLength > 0 {
		wc.MaxSceneLength = c.Options.MaxSceneLength
	}
	if c.Options.MinSceneLength > 0 {
		wc.MinSceneLength = c.Options.MinSceneLength
	}
	return wc
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	SourceURL  string // --source-url
	SourceFile string // --source-file
	OutputDir  string // --output-dir

	// シーン分割関連
	MaxSceneLength int // --max-scene-length
	MinSceneLength int // --min-scene-length

	// 画像生成関連
	SceneLimit      int    // --scene-limit
	CharacterConfig string // --char-config
	Mode            string // --mode

	// AI挙動設定
	AIModel    string // --model: テキスト処理用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}

// Source は URL を優先して入力ソースを返すのだ。
func (o GenerateOptions) Source() string {
	if o.SourceURL != "" {
		return o.SourceURL
	}
	return o.SourceFile
}
