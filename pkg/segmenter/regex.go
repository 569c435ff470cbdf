package segmenter

import "regexp"

// speechVerbPattern は発話動詞の共通パターンです。話者帰属の各正規表現で共有します。
const speechVerbPattern = `(?:said|asked|replied|whispered|shouted|exclaimed|cried|muttered|answered|called)`

var (
	// quoteRegex は半角引用符またはスマート引用符で囲まれた発話スパンをキャプチャします。
	quoteRegex = regexp.MustCompile(`"([^"“”]*)"|“([^"“”]*)”`)

	// hyphenBreakRegex は行末ハイフンで分断された単語（"exam-\nple" 等）を検出します。
	hyphenBreakRegex = regexp.MustCompile(`(\pL)-\r?\n\s*(\pL)`)

	// paragraphBreakRegex は段落区切り（空行）を特定します。
	paragraphBreakRegex = regexp.MustCompile(`\n\s*\n`)

	// trailingVerbNameRegex は引用直後の ", said Tom" 形式をキャプチャします。
	trailingVerbNameRegex = regexp.MustCompile(`^[\s,.!?]*` + speechVerbPattern + `\s+([A-Z][a-z]+)`)

	// trailingNameVerbRegex は引用直後の " Tom said" 形式をキャプチャします。
	trailingNameVerbRegex = regexp.MustCompile(`^[\s,.!?]*([A-Z][a-z]+)\s+` + speechVerbPattern)

	// leadingNameVerbRegex は引用直前の "Tom said," 形式をキャプチャします。
	leadingNameVerbRegex = regexp.MustCompile(`([A-Z][a-z]+)\s+` + speechVerbPattern + `[^"“”]*$`)

	// colonNameRegex は台本調の `Tom: "..."` 形式をキャプチャします。
	colonNameRegex = regexp.MustCompile(`([A-Z][a-z]+):\s*$`)

	// candidateNameRegex は固有名詞候補（先頭大文字の単語）を検出します。
	candidateNameRegex = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

	// sceneTransitionRegex は段落頭に現れる場面転換のキューを特定します。
	sceneTransitionRegex = regexp.MustCompile(`(?i)^(?:chapter\s+\d+|(?:later|meanwhile|afterwards?|eventually)\b|the next (?:day|morning|evening|night)\b|(?:that|one) (?:day|morning|evening|night)\b|\*\s*\*\s*\*|---+)`)

	// settingNounRegex は場所を示す名詞を単語境界付きで検出します。
	settingNounRegex = regexp.MustCompile(`\b(room|house|forest|city|street|park|school|office|kitchen|bedroom|garden|village|castle|mountain|river|beach|cave|library)\b`)

	// timeCueRegex は時刻・季節のキューを単語境界付きで検出します。
	timeCueRegex = regexp.MustCompile(`\b(morning|afternoon|evening|night|dawn|dusk|sunset|sunrise|winter|spring|summer|autumn)\b`)

	// locationPhraseRegex は前置詞に続く短い場所フレーズをキャプチャします。
	locationPhraseRegex = regexp.MustCompile(`\b(?:in|at|inside|outside|near|by)\s+(?:the\s+|a\s+|an\s+)?([a-z]+(?:['’]s)?(?:\s+[a-z]+)?)`)
)
