package segmenter

import (
	"strings"
	"unicode"
)

// sentence は文単位のスパンです。paraStart は段落の先頭文であることを示します。
type sentence struct {
	text      string
	paraStart bool
}

// abbreviations は文末記号と誤認しやすい省略語の集合（小文字・ピリオド除去済み）です。
var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "st": {},
	"sr": {}, "jr": {}, "vs": {}, "etc": {}, "eg": {}, "ie": {},
}

// splitSentences は正規化済みテキストを文スパンの列へ分割します。
// 結果は有限で、同じ入力からは常に同じ列が得られます。
func splitSentences(normalized string) []sentence {
	var out []sentence
	for _, para := range strings.Split(normalized, "\n\n") {
		first := true
		for _, s := range splitParagraph(para) {
			out = append(out, sentence{text: s, paraStart: first})
			first = false
		}
	}
	return out
}

// splitParagraph は単一段落を句読点ベースで文に分割します。
// 引用符の内側にある終端記号と省略語のピリオドは境界とみなしません。
func splitParagraph(para string) []string {
	runes := []rune(para)
	var sentences []string
	start := 0
	inQuote := false

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '"':
			inQuote = !inQuote
			continue
		case '“':
			inQuote = true
			continue
		case '”':
			inQuote = false
			continue
		}

		if inQuote || !isTerminal(runes[i]) {
			continue
		}
		// "?!" のような連続終端記号は最後の1つで判定する
		if i+1 < len(runes) && isTerminal(runes[i+1]) {
			continue
		}
		if runes[i] == '.' && isAbbreviation(runes, start, i) {
			continue
		}
		if !boundaryFollows(runes, i+1) {
			continue
		}

		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}

	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isAbbreviation はピリオド直前の単語が省略語（または1文字のイニシャル）かを判定します。
func isAbbreviation(runes []rune, start, dot int) bool {
	end := dot
	begin := dot
	for begin > start && unicode.IsLetter(runes[begin-1]) {
		begin--
	}
	word := strings.ToLower(string(runes[begin:end]))
	if len(word) == 1 {
		return true
	}
	_, ok := abbreviations[word]
	return ok
}

// boundaryFollows は終端記号の直後が文境界として妥当かを判定します。
// 段落末、または空白を挟んで大文字・数字・引用符が続く場合のみ境界とします。
func boundaryFollows(runes []rune, next int) bool {
	if next >= len(runes) {
		return true
	}
	if runes[next] != ' ' {
		return false
	}
	j := next
	for j < len(runes) && runes[j] == ' ' {
		j++
	}
	if j >= len(runes) {
		return true
	}
	r := runes[j]
	return unicode.IsUpper(r) || unicode.IsDigit(r) || r == '"' || r == '“'
}
