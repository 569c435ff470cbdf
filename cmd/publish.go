package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-manga-weaver/internal/config"
	"github.com/shouni/go-manga-weaver/internal/pipeline"

	"github.com/spf13/cobra"
)

// publishCmd は、解析済みのシーンJSONから漫画ページ（Markdown/HTML）だけを組み上げるのだ。
// 画像は生成せず、プレースホルダ参照で出力するのだよ。
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "解析結果から漫画ページ（Markdown/HTML）を組み上げるのだ。",
	Long: `analyze コマンドが出力した scenes.json を読み込み、フキダシ配置を算出したうえで
Markdown と HTML の漫画ページを出力するのだ。画像生成は行わないのだよ。`,
	Example: "  ap-weaver-go publish -f output/scenes.json -o output",
	RunE:    publishCommand,
}

func init() {
}

func publishCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// --source-file が指定されていない場合は analyze の既定出力を読むのだ
	if !cmd.Flags().Changed("source-file") {
		opts.SourceFile = "output/scenes.json"
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("漫画ページの出版を開始するのだ！",
		"input", opts.SourceFile,
		"output_dir", opts.OutputDir)

	if err := pipeline.ExecutePublishOnly(ctx, cfg); err != nil {
		return fmt.Errorf("漫画ページの出版に失敗したのだ: %w", err)
	}

	slog.Info("出版が完了したのだ！")
	return nil
}
