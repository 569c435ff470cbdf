package prompt

import (
	"strings"
	"testing"
)

func TestGetStyleByMode(t *testing.T) {
	t.Run("既知のモードは画風サフィックスを返す", func(t *testing.T) {
		for _, mode := range []string{ModeGhibli, ModeMonochrome} {
			got, err := GetStyleByMode(mode)
			if err != nil {
				t.Fatalf("GetStyleByMode(%q) error = %v", mode, err)
			}
			if got == "" {
				t.Errorf("GetStyleByMode(%q) = 空文字列", mode)
			}
			if got != strings.TrimSpace(got) {
				t.Errorf("GetStyleByMode(%q) の前後に空白が残っている", mode)
			}
		}
	})

	t.Run("未知のモードはエラーになる", func(t *testing.T) {
		_, err := GetStyleByMode("watercolor")
		if err == nil {
			t.Fatal("未知のモードでエラーが返らなかった")
		}
		if !strings.Contains(err.Error(), ModeGhibli) {
			t.Errorf("エラーメッセージにサポート済みモードが含まれていない: %v", err)
		}
	})
}
