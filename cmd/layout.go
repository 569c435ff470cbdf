package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-manga-weaver/internal/config"
	"github.com/shouni/go-manga-weaver/internal/pipeline"

	"github.com/spf13/cobra"
)

// layoutCmd は、解析済みのシーンJSONからフキダシ配置だけを計算するのだ。
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "解析結果からフキダシ配置を計算して layout.json に保存するのだ。",
	Long: `analyze コマンドが出力した scenes.json を読み込み、各シーンのフキダシ
（位置・形状・シッポの向き）を決定論的に算出して layout.json として出力するのだ。`,
	Example: "  ap-weaver-go layout -f output/scenes.json -o output",
	RunE:    layoutCommand,
}

func init() {
}

func layoutCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// --source-file が指定されていない場合は analyze の既定出力を読むのだ
	if !cmd.Flags().Changed("source-file") {
		opts.SourceFile = "output/scenes.json"
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("フキダシ配置の計算を開始するのだ！",
		"input", opts.SourceFile,
		"output_dir", opts.OutputDir)

	if err := pipeline.ExecuteLayoutOnly(ctx, cfg); err != nil {
		return fmt.Errorf("フキダシ配置の計算に失敗したのだ: %w", err)
	}

	slog.Info("配置結果の保存が完了したのだ！")
	return nil
}
