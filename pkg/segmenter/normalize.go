package segmenter

import "strings"

// Normalize は物語テキストを分割処理向けに正規化します。
// 行末ハイフンの連結、段落内ホワイトスペースの単一スペース化を行い、
// 段落区切りだけを空行として保持します。
func Normalize(text string) string {
	t := hyphenBreakRegex.ReplaceAllString(text, "$1$2")

	paragraphs := paragraphBreakRegex.Split(t, -1)
	kept := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		fields := strings.Fields(p)
		if len(fields) == 0 {
			continue
		}
		kept = append(kept, strings.Join(fields, " "))
	}

	return strings.Join(kept, "\n\n")
}

// Flatten は段落区切りも含めた完全なホワイトスペース正規化を行います。
// シーン本文の連結と原文の一致検証はこの形で比較します。
func Flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
