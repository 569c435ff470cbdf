package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-manga-weaver/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は全サブコマンドで共有する実行時オプションなのだ。
// addAppFlags でフラグと紐付けられるのだよ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.SourceURL, "source-url", "u", "", "Webページから物語テキストを取得するためのURLなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.SourceFile, "source-file", "f", "", "入力ファイルのパス（ローカル or gs://...）なのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物を保存するディレクトリ（ローカル or gs://...）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Mode, "mode", "m", config.DefaultMode, "画風モード（ghibli / monochrome）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "テキスト処理に使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")

	// --- シーン分割・画像生成の制御 ---
	rootCmd.PersistentFlags().IntVarP(&opts.SceneLimit, "scene-limit", "p", config.DefaultSceneLimit, "画像を生成するシーンの最大数を指定するのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.MaxSceneLength, "max-scene-length", config.DefaultMaxSceneLength, "1シーンあたりの最大文字数なのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.MinSceneLength, "min-scene-length", config.DefaultMinSceneLength, "1シーンあたりの最小文字数なのだ。")
	generateCmd.Flags().StringVarP(&opts.CharacterConfig, "char-config", "c", "", "キャラクターの視覚情報（DNA）を定義したJSONパスなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// 画像生成を伴うのは generate だけなので、APIキーのチェックもそこに限定するのだ。
	if cmd.Name() == "generate" && os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-weaver-go",
		addAppFlags,
		preRunAppE,
		generateCmd,
		analyzeCmd,
		layoutCmd,
		publishCmd,
	)
}

// requireSource は、入力ソースが指定されているかを検証する共通チェックなのだ。
func requireSource() error {
	if opts.SourceURL == "" && opts.SourceFile == "" {
		return fmt.Errorf("ソース（--source-url または --source-file）を指定してほしいのだ")
	}
	return nil
}
