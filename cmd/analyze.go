package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-manga-weaver/internal/config"
	"github.com/shouni/go-manga-weaver/internal/pipeline"

	"github.com/spf13/cobra"
)

// analyzeCmd は、物語テキストの解析（シーン分割と台詞抽出）だけを実行するのだ。
// Gemini API を使わないので、APIキーなしでも動くのだよ。
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "物語をシーンへ分割し、解析結果をJSONとして保存するのだ。",
	Long: `ソースとなる文章をシーンへ分割し、台詞・感情・登場人物を抽出して
scenes.json として出力するのだ。後続の layout / publish コマンドの入力になるのだよ。`,
	Example: "  ap-weaver-go analyze -f story.txt -o output",
	RunE:    analyzeCommand,
}

func init() {
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := requireSource(); err != nil {
		return err
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("物語の解析を開始するのだ！",
		"source", opts.Source(),
		"output_dir", opts.OutputDir)

	if err := pipeline.ExecuteAnalyzeOnly(ctx, cfg); err != nil {
		return fmt.Errorf("物語の解析に失敗したのだ: %w", err)
	}

	slog.Info("解析結果の保存が完了したのだ！")
	return nil
}
