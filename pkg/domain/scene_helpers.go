package domain

import (
	"sort"
	"strings"
)

// Scenes は Index 順に整列したシーンのスライスです。
type Scenes []Scene

// JoinedText は全シーンの本文を半角スペースで連結して返します。
// 正規化済みの原文との一致検証に使用します。
func (ss Scenes) JoinedText() string {
	parts := make([]string, 0, len(ss))
	for _, s := range ss {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

// UniqueCharacterNames は全シーンから重複しないキャラクター名を抽出します。
func (ss Scenes) UniqueCharacterNames() []string {
	set := make(map[string]struct{})
	for _, s := range ss {
		for _, name := range s.Characters {
			if name != "" {
				set[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// DialogueCount は全シーンのセリフ総数を返します。
func (ss Scenes) DialogueCount() int {
	total := 0
	for _, s := range ss {
		total += len(s.DialogueLines)
	}
	return total
}
