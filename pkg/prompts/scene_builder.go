// Package prompts はシーン解析結果から画像生成用プロンプトを組み立てます。
package prompts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shouni/go-manga-weaver/pkg/domain"
)

// maxPromptCharacters はプロンプトに列挙するキャラクター数の上限です。
const maxPromptCharacters = 3

// maxSummaryLength はシーン本文から切り出す要約の最大文字数です。
const maxSummaryLength = 100

var quotedSpanRegex = regexp.MustCompile(`"[^"“”]*"|“[^"“”]*”`)

// ScenePromptBuilder は、キャラクター台帳を考慮してシーン画像のプロンプトを構築します。
type ScenePromptBuilder struct {
	registry    *domain.CharacterRegistry
	styleSuffix string
}

// NewScenePromptBuilder は新しい ScenePromptBuilder を生成します。
// suffix が空の場合は既定の画風サフィックスを使用します。
func NewScenePromptBuilder(reg *domain.CharacterRegistry, suffix string) *ScenePromptBuilder {
	if suffix == "" {
		suffix = DefaultStyleSuffix
	}
	return &ScenePromptBuilder{registry: reg, styleSuffix: suffix}
}

// BuildScenePrompt は、UserPrompt（具体的内容）、SystemPrompt（役割・画風）、
// および決定論的なシード値を生成します。同じシーンからは常に同じ結果が得られます。
func (pb *ScenePromptBuilder) BuildScenePrompt(scene domain.Scene) (string, string, int64) {
	// --- 1. System Prompt の構築 ---
	var ss strings.Builder
	ss.WriteString(sceneSystemInstruction)
	ss.WriteString("\n\n")
	ss.WriteString(fmt.Sprintf("### GLOBAL VISUAL STYLE ###\n%s", pb.styleSuffix))
	systemPrompt := ss.String()

	// --- 2. シーン要素の収集 (User Prompt) ---
	var parts []string

	if len(scene.Characters) > 0 {
		names := scene.Characters
		if len(names) > maxPromptCharacters {
			names = names[:maxPromptCharacters]
		}
		parts = append(parts, "featuring "+strings.Join(names, ", "))
	}

	for _, cue := range pb.visualCues(scene) {
		parts = append(parts, cue)
	}

	if scene.Setting != "" {
		parts = append(parts, "set in "+scene.Setting)
	}

	if fragment, ok := moodFragments[scene.Mood]; ok {
		parts = append(parts, fragment)
	} else {
		parts = append(parts, "atmospheric setting")
	}

	if summary := extractSceneSummary(scene.Text); summary != "" {
		parts = append(parts, summary)
	}

	parts = append(parts, QualityTags)

	// --- 3. クリーンな結合 ---
	var clean []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			clean = append(clean, s)
		}
	}

	return strings.Join(clean, ", "), systemPrompt, pb.sceneSeed(scene)
}

// LeadCharacter はシーンの筆頭キャラクターを台帳から引きます。不在なら nil を返します。
func (pb *ScenePromptBuilder) LeadCharacter(scene domain.Scene) *domain.Character {
	if pb.registry == nil || len(scene.Characters) == 0 {
		return nil
	}
	return pb.registry.Find(scene.Characters[0])
}

// visualCues は台帳に登録された登場キャラクターの外見特徴を集めます。
func (pb *ScenePromptBuilder) visualCues(scene domain.Scene) []string {
	if pb.registry == nil {
		return nil
	}
	var cues []string
	for i, name := range scene.Characters {
		if i >= maxPromptCharacters {
			break
		}
		if c := pb.registry.Find(name); c != nil {
			cues = append(cues, c.VisualCues...)
		}
	}
	return cues
}

// sceneSeed はシーンの決定論的なシード値を返します。
// 筆頭キャラクターの Seed を継承し、キャラクター不在なら舞台説明から導出します。
func (pb *ScenePromptBuilder) sceneSeed(scene domain.Scene) int64 {
	if c := pb.LeadCharacter(scene); c != nil {
		return c.Seed
	}
	if len(scene.Characters) > 0 {
		return domain.GetSeedFromName(scene.Characters[0])
	}
	return domain.GetSeedFromName(scene.Setting)
}

// extractSceneSummary はシーン本文からセリフを除いた冒頭の描写を切り出します。
func extractSceneSummary(text string) string {
	withoutDialogue := quotedSpanRegex.ReplaceAllString(text, "")

	summary := withoutDialogue
	if idx := strings.Index(withoutDialogue, "."); idx >= 0 {
		summary = withoutDialogue[:idx]
	}
	summary = strings.TrimSpace(summary)

	if len(summary) > maxSummaryLength {
		cut := summary[:maxSummaryLength]
		if sp := strings.LastIndex(cut, " "); sp > 0 {
			cut = cut[:sp]
		}
		summary = cut + "..."
	}
	return summary
}
