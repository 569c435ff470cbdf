package segmenter

import "strings"

// DefaultSetting は場所・時刻のキューが見つからなかった場合の既定値です。
const DefaultSetting = "unspecified location"

// inferSetting はシーン本文から短い舞台説明文字列を抽出します。
// 前置詞フレーズ→場所名詞→時刻キューの順で探し、何も無ければ既定値を返します。
func inferSetting(text string) string {
	lower := strings.ToLower(text)

	for _, m := range locationPhraseRegex.FindAllStringSubmatch(lower, -1) {
		phrase := strings.TrimSpace(m[1])
		if settingNounRegex.MatchString(phrase) {
			return phrase
		}
	}

	if m := settingNounRegex.FindString(lower); m != "" {
		return m
	}
	if m := timeCueRegex.FindString(lower); m != "" {
		return m
	}

	return DefaultSetting
}
