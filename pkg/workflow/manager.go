// Package workflow は、物語解析から公開までの各工程を担う Runner 群を構築・管理します。
package workflow

import (
	"context"
	"fmt"

	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/generator"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"
)

// ManagerArgs は Manager の生成に必要な依存関係の束です。
type ManagerArgs struct {
	Config     Config
	HTTPClient httpkit.ClientInterface
	Reader     remoteio.InputReader
	Writer     remoteio.OutputWriter
	DNAData    []byte // キャラクターの視覚情報（DNA）JSON。省略可能です。
}

// Manager は、ワークフローの各工程を担う Runner 群を構築・管理します。
// 1回の変換処理につき1つ生成し、キャラクター台帳を全工程で共有します。
type Manager struct {
	cfg        Config
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	writer     remoteio.OutputWriter
	aiClient   gemini.GenerativeModel
	registry   *domain.CharacterRegistry
	composer   *generator.SceneComposer
	dnaData    []byte
}

// New は、設定と依存関係を基に新しい Manager を初期化します。
func New(ctx context.Context, args ManagerArgs) (*Manager, error) {
	if args.HTTPClient == nil {
		return nil, fmt.Errorf("httpClient は必須です")
	}
	if args.Reader == nil {
		return nil, fmt.Errorf("InputReader は必須です")
	}
	if args.Writer == nil {
		return nil, fmt.Errorf("OutputWriter は必須です")
	}

	aiClient, err := initializeAIClient(ctx, args.Config.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	registry := domain.NewCharacterRegistry()

	composer, err := buildSceneComposer(args.Config, args.HTTPClient, aiClient, args.Reader, registry)
	if err != nil {
		return nil, fmt.Errorf("画像生成エンジンの初期化に失敗しました: %w", err)
	}

	return &Manager{
		cfg:        args.Config,
		httpClient: args.HTTPClient,
		reader:     args.Reader,
		writer:     args.Writer,
		aiClient:   aiClient,
		registry:   registry,
		composer:   composer,
		dnaData:    args.DNAData,
	}, nil
}

// Registry はこの Manager が全工程で共有するキャラクター台帳を返します。
func (m *Manager) Registry() *domain.CharacterRegistry {
	return m.registry
}

// ApplyCharacterDNA は、シーン分割後に外部定義の視覚情報を台帳へ統合します。
// DNAデータが渡されていない場合は何もしません。
func (m *Manager) ApplyCharacterDNA() error {
	if len(m.dnaData) == 0 {
		return nil
	}

	dna, err := domain.ParseCharacterDNA(m.dnaData)
	if err != nil {
		return fmt.Errorf("キャラクターDNAの適用に失敗しました: %w", err)
	}
	m.registry.ApplyDNA(dna)
	return nil
}

// initializeAIClient は gemini クライアントを初期化します。
func initializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}
