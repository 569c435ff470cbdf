package prompt

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	ModeGhibli     = "ghibli"
	ModeMonochrome = "monochrome"
)

//go:embed ghibli.md
var GhibliStyle string

//go:embed monochrome.md
var MonochromeStyle string

// modeStyles はモードと画風サフィックスを紐づけるマップなのだ。
var modeStyles = map[string]string{
	ModeGhibli:     GhibliStyle,
	ModeMonochrome: MonochromeStyle,
}

// GetStyleByMode は、指定されたモードに対応する画風サフィックスを返すのだ。
func GetStyleByMode(mode string) (string, error) {
	content, ok := modeStyles[mode]
	if !ok {
		supported := slices.Collect(maps.Keys(modeStyles))
		slices.Sort(supported)

		return "", fmt.Errorf("サポートされていないモード: '%s'。サポートされているモードは [%s] です",
			mode, strings.Join(supported, ", "))
	}

	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("モード '%s' に対応する画風テンプレートが空なのだ。embed設定を確認してほしいのだ", mode)
	}

	return strings.TrimSpace(content), nil
}
