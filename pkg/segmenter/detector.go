package segmenter

import "unicode"

// NameDetector は固有名詞らしきトークンの検出能力を抽象化します。
// 既定は大文字始まりのヒューリスティックですが、本格的なNLPタガーを
// 差し替えても同じキャラクター同一性の契約を満たす必要があります。
type NameDetector interface {
	// DetectNames はテキスト中の名前候補を出現順（重複込み）で返します。
	DetectNames(text string) []string
	// IsName は単一トークンが名前候補かを判定します。
	IsName(token string) bool
}

// HeuristicNameDetector は外部データに依存しない既定の検出器です。
// 「3文字以上」「先頭のみ大文字」「ストップワード外」の3条件で判定します。
type HeuristicNameDetector struct {
	stopWords map[string]struct{}
}

// NewHeuristicNameDetector は既定のストップワードを備えた検出器を生成します。
func NewHeuristicNameDetector() *HeuristicNameDetector {
	words := []string{
		"the", "this", "that", "then", "there", "these", "those",
		"when", "where", "what", "while", "why", "how", "who", "whose",
		"and", "but", "yet", "for", "nor", "not", "now", "here",
		"she", "her", "his", "him", "they", "them", "their", "you", "your",
		"with", "from", "into", "onto", "over", "under", "after", "before",
		"inside", "outside", "behind", "suddenly", "once", "chapter",
		"narrator", "yes", "well", "just", "one", "some", "every",
		"meanwhile", "later", "afterwards", "eventually",
	}
	stop := make(map[string]struct{}, len(words))
	for _, w := range words {
		stop[w] = struct{}{}
	}
	return &HeuristicNameDetector{stopWords: stop}
}

// DetectNames は大文字始まりの単語を走査し、名前候補のみを返します。
func (d *HeuristicNameDetector) DetectNames(text string) []string {
	var names []string
	for _, token := range candidateNameRegex.FindAllString(text, -1) {
		if d.IsName(token) {
			names = append(names, token)
		}
	}
	return names
}

// IsName はトークン単体のヒューリスティック判定です。
func (d *HeuristicNameDetector) IsName(token string) bool {
	runes := []rune(token)
	if len(runes) < 3 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	_, stopped := d.stopWords[lowerASCII(token)]
	return !stopped
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
