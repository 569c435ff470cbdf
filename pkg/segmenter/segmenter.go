// Package segmenter は平文の物語テキストをシーン列へ分割する語り分割エンジンです。
// 外部I/Oを一切行わず、同じ入力からは常に同じシーン列を生成します。
package segmenter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shouni/go-manga-weaver/pkg/domain"
)

// DefaultMaxParagraphs は1シーンに取り込む段落数の既定上限です。
const DefaultMaxParagraphs = 4

// Segmenter は文境界検出・シーン蓄積・セリフ抽出を担う分割エンジンです。
type Segmenter struct {
	detector      NameDetector
	maxParagraphs int
}

// Option は Segmenter の生成時設定です。
type Option func(*Segmenter)

// WithNameDetector は名前検出器を差し替えます。NLPタガー等の高度な実装を
// 注入する場合でも、キャラクター同一性の契約は変わりません。
func WithNameDetector(d NameDetector) Option {
	return func(s *Segmenter) {
		if d != nil {
			s.detector = d
		}
	}
}

// WithMaxParagraphs は1シーンの段落数上限を変更します。0 を渡すと無効化します。
func WithMaxParagraphs(n int) Option {
	return func(s *Segmenter) { s.maxParagraphs = n }
}

// New は既定のヒューリスティック検出器を備えた Segmenter を生成します。
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		detector:      NewHeuristicNameDetector(),
		maxParagraphs: DefaultMaxParagraphs,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment はテキストを [minLen, maxLen] の長さ制約に従うシーン列へ分割します。
// 最終シーンのみ minLen を下回ることがあります。reg が nil の場合は
// この呼び出し専用の台帳を内部で生成します。
func (s *Segmenter) Segment(text string, maxLen, minLen int, reg *domain.CharacterRegistry) (domain.Scenes, error) {
	if maxLen <= 0 || minLen <= 0 || minLen >= maxLen {
		return nil, fmt.Errorf("シーン長の境界が不正です (min=%d, max=%d): %w", minLen, maxLen, domain.ErrInvalidInput)
	}

	normalized := Normalize(text)
	if normalized == "" {
		return nil, fmt.Errorf("正規化後のテキストが空です: %w", domain.ErrInvalidInput)
	}
	if reg == nil {
		reg = domain.NewCharacterRegistry()
	}

	sceneTexts := s.accumulate(splitSentences(normalized), maxLen, minLen)

	// 文書全体で2回以上言及された名前だけをキャラクター候補として扱う
	recurring := s.recurringNames(normalized)

	scenes := make(domain.Scenes, 0, len(sceneTexts))
	for i, st := range sceneTexts {
		lines := s.extractDialogue(st)
		scenes = append(scenes, domain.Scene{
			Index:         i,
			Text:          st,
			DialogueLines: lines,
			Characters:    s.collectCharacters(st, lines, recurring, i, reg),
			Mood:          classifyMood(st),
			Setting:       inferSetting(st),
		})
	}

	return scenes, nil
}

// accumulate は文スパンを貪欲にシーンへ詰めます。
// 次の文を足すと maxLen を超える場合、または段落頭に場面転換キューが
// ある場合に区切りますが、minLen 未満では決して閉じません。
// 末尾の残りは長さを問わず最終シーンになります。
func (s *Segmenter) accumulate(sentences []sentence, maxLen, minLen int) []string {
	var out []string
	var buf strings.Builder
	paragraphs := 0

	flush := func() {
		if buf.Len() > 0 {
			out = append(out, buf.String())
			buf.Reset()
			paragraphs = 0
		}
	}

	for _, sent := range sentences {
		if buf.Len() > 0 {
			overflow := buf.Len()+1+len(sent.text) > maxLen
			breakCue := sent.paraStart &&
				(sceneTransitionRegex.MatchString(sent.text) ||
					(s.maxParagraphs > 0 && paragraphs >= s.maxParagraphs))
			if (overflow || breakCue) && buf.Len() >= minLen {
				flush()
			}
		}

		if sent.paraStart {
			paragraphs++
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(sent.text)
	}

	flush()
	return out
}

// recurringNames は文書全体を走査し、2回以上出現した名前候補を
// 正規化キー→初出表記のマップとして返します。
func (s *Segmenter) recurringNames(text string) map[string]string {
	counts := make(map[string]int)
	display := make(map[string]string)

	for _, name := range s.detector.DetectNames(text) {
		key := domain.NormalizeName(name)
		counts[key]++
		if _, ok := display[key]; !ok {
			display[key] = name
		}
	}

	recurring := make(map[string]string)
	for key, c := range counts {
		if c >= 2 {
			recurring[key] = display[key]
		}
	}
	return recurring
}

// collectCharacters は話者と本文中の言及からシーンのキャラクター集合を構築し、
// 台帳へ初出情報を記録します。重複は正規化済みの同一性で排除します。
func (s *Segmenter) collectCharacters(sceneText string, lines []domain.DialogueLine, recurring map[string]string, sceneIndex int, reg *domain.CharacterRegistry) []string {
	seen := make(map[string]struct{})
	var names []string

	add := func(name string) {
		c := reg.Resolve(name, sceneIndex)
		if c == nil {
			return
		}
		key := domain.NormalizeName(c.Name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		names = append(names, c.Name)
	}

	for _, line := range lines {
		if line.Speaker != domain.NarratorName {
			add(line.Speaker)
		}
	}

	// マップの走査順に依存しないよう、キーをソートしてから照合する
	keys := make([]string, 0, len(recurring))
	for key := range recurring {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lower := strings.ToLower(sceneText)
	for _, key := range keys {
		if strings.Contains(lower, strings.ToLower(recurring[key])) {
			add(recurring[key])
		}
	}

	return names
}
