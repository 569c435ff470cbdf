package workflow

import (
	"time"

	"github.com/shouni/go-manga-weaver/pkg/prompts"
)

// デフォルト値の定義なのだ
const (
	DefaultGeminiModel  = "gemini-3-flash-preview"
	DefaultImageModel   = "gemini-3-pro-image-preview"
	DefaultSceneLimit   = 10
	DefaultRateInterval = 30 * time.Second

	DefaultMaxSceneLength = 500
	DefaultMinSceneLength = 50

	DefaultCanvasWidth  = 1024
	DefaultCanvasHeight = 768
	DefaultPanelMargin  = 20
)

// Config は Go Manga Weaver の各 Runner を動作させるための基本設定なのだ。
type Config struct {
	// --- AI Model Settings ---
	GeminiAPIKey string
	GeminiModel  string
	ImageModel   string

	// --- Generation Settings ---
	StyleSuffix  string
	RateInterval time.Duration
	SceneLimit   int

	// --- Scene Segmentation Settings ---
	MaxSceneLength int
	MinSceneLength int

	// --- Layout Settings ---
	CanvasWidth  int
	CanvasHeight int
	PanelMargin  int

	// --- Timeout & Retries ---
	RequestTimeout time.Duration
}

// NewConfig はデフォルト値で初期化された Config を作成し、必要最小限の値をセットして返すのだ。
func NewConfig(apiKey string) Config {
	cfg := DefaultConfig()
	cfg.GeminiAPIKey = apiKey
	return cfg
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数なのだ。
func DefaultConfig() Config {
	return Config{
		GeminiModel:    DefaultGeminiModel,
		ImageModel:     DefaultImageModel,
		StyleSuffix:    prompts.DefaultStyleSuffix,
		RateInterval:   DefaultRateInterval,
		SceneLimit:     DefaultSceneLimit,
		MaxSceneLength: DefaultMaxSceneLength,
		MinSceneLength: DefaultMinSceneLength,
		CanvasWidth:    DefaultCanvasWidth,
		CanvasHeight:   DefaultCanvasHeight,
		PanelMargin:    DefaultPanelMargin,
		RequestTimeout: 5 * time.Minute,
	}
}
