package segmenter

import (
	"strings"

	"github.com/shouni/go-manga-weaver/pkg/domain"
)

// attributionWindow は話者帰属で参照する引用前後の文字数です。
const attributionWindow = 80

// extractDialogue はシーン本文から引用スパンを抽出し、話者・感情・順序を付与します。
// Order は初出順で厳密に単調増加します。引用が無ければ空のスライスを返します。
func (s *Segmenter) extractDialogue(text string) []domain.DialogueLine {
	matches := quoteRegex.FindAllStringSubmatchIndex(text, -1)
	lines := make([]domain.DialogueLine, 0, len(matches))

	for _, m := range matches {
		// グループ1（半角引用符）かグループ2（スマート引用符）のどちらかが入る
		gs, ge := m[2], m[3]
		if gs < 0 {
			gs, ge = m[4], m[5]
		}
		quote := strings.Trim(text[gs:ge], " ,")
		if quote == "" {
			continue
		}

		lines = append(lines, domain.DialogueLine{
			Speaker: s.attributeSpeaker(text, m[0], m[1], strings.HasSuffix(text[gs:ge], ".")),
			Text:    quote,
			Emotion: classifyEmotion(quote),
			Order:   len(lines),
		})
	}

	return lines
}

// attributeSpeaker は引用スパンの前後の節から話者名を推定します。
// 発話動詞パターン→台本調コロン→最近傍の大文字トークンの順に試し、
// どれも該当しなければ NarratorName に倒します（常に全域関数）。
// 引用内が句点で完結している場合、直後の「名前+動詞」は次のセリフの
// 導入句であることが多いため、後続節のパターンは適用しません。
func (s *Segmenter) attributeSpeaker(text string, qStart, qEnd int, quoteClosed bool) string {
	before := clauseBefore(text, qStart)
	after := clauseAfter(text, qEnd)

	// 1. 後続節: `," said Tom` / `" Tom said`
	if !quoteClosed {
		if m := trailingVerbNameRegex.FindStringSubmatch(after); m != nil {
			return m[1]
		}
		if m := trailingNameVerbRegex.FindStringSubmatch(after); m != nil {
			return m[1]
		}
	}

	// 2. 先行節: `Tom said,` / `Tom:`
	if m := leadingNameVerbRegex.FindStringSubmatch(before); m != nil {
		return m[1]
	}
	if m := colonNameRegex.FindStringSubmatch(before); m != nil {
		return m[1]
	}

	// 3. 最近傍の大文字トークン（先行節を末尾から、次いで後続節を先頭から）
	beforeNames := candidateNameRegex.FindAllString(before, -1)
	for i := len(beforeNames) - 1; i >= 0; i-- {
		if s.detector.IsName(beforeNames[i]) {
			return beforeNames[i]
		}
	}
	for _, name := range candidateNameRegex.FindAllString(after, -1) {
		if s.detector.IsName(name) {
			return name
		}
	}

	return domain.NarratorName
}

// clauseBefore は引用の直前、かつ前の引用より後ろの窓を切り出します。
func clauseBefore(text string, qStart int) string {
	begin := qStart - attributionWindow
	if begin < 0 {
		begin = 0
	}
	window := text[begin:qStart]
	if idx := strings.LastIndexAny(window, `"”`); idx >= 0 {
		window = window[idx+1:]
	}
	return window
}

// clauseAfter は引用の直後、かつ次の引用より手前の窓を切り出します。
func clauseAfter(text string, qEnd int) string {
	end := qEnd + attributionWindow
	if end > len(text) {
		end = len(text)
	}
	window := text[qEnd:end]
	if idx := strings.IndexAny(window, `"“`); idx >= 0 {
		window = window[:idx]
	}
	return window
}
