package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-manga-weaver/internal/config"
	"github.com/shouni/go-manga-weaver/internal/pipeline"
	"github.com/shouni/go-manga-weaver/internal/prompt"

	"github.com/spf13/cobra"
)

// generateCmd は、物語の解析からシーン画像の生成、ページの出版までを一気通貫で実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "物語テキストから漫画ページ一式を生成するのだ！",
	Long: `ソースとなる文章をシーンへ分割し、各シーンの挿絵とフキダシ配置を算出して、
Markdown/HTML の漫画ページとして出力するのだ。`,
	Example: "  ap-weaver-go generate -f story.txt -o output -m ghibli",
	RunE:    generateCommand,
}

func init() {
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if err := requireSource(); err != nil {
		return err
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	// 3. 画風モードをプロンプト接尾辞へ変換するのだ
	// 環境変数 IMAGE_PROMPT_SUFFIX が指定されていれば、そちらを優先するのだよ。
	if cfg.ImagePromptSuffix == "" {
		style, err := prompt.GetStyleByMode(opts.Mode)
		if err != nil {
			return fmt.Errorf("画風モードの解決に失敗したのだ: %w", err)
		}
		cfg.ImagePromptSuffix = style
	}

	slog.Info("漫画生成パイプラインを起動するのだ！",
		"mode", opts.Mode,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output_dir", opts.OutputDir)

	// 4. 更新した config を考慮しつつパイプラインを実行するのだ
	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
