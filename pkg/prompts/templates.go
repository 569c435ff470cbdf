package prompts

import "github.com/shouni/go-manga-weaver/pkg/domain"

// DefaultStyleSuffix はシーン画像の既定の画風サフィックスです。
const DefaultStyleSuffix = "Studio Ghibli style, anime art, detailed background, soft colors, magical atmosphere"

// sceneSystemInstruction はシーン画像生成におけるAIの役割定義です。
const sceneSystemInstruction = "You are a professional anime background illustrator. Create a single high-quality cinematic scene."

// QualityTags はプロンプト末尾に付与するクオリティ向上タグです。
const QualityTags = "high quality, detailed illustration, anime style, manga panel"

// NegativeScenePrompt はシーン画像生成で common に除外する要素です。
const NegativeScenePrompt = "text, watermark, signature, speech bubble, photorealistic, 3D render, low quality, blurry, extra fingers, distorted anatomy"

// moodFragments は雰囲気タグ→プロンプト断片の不変マップです。
var moodFragments = map[domain.Mood]string{
	domain.MoodHappy:      "bright and cheerful atmosphere",
	domain.MoodSad:        "melancholic and somber atmosphere",
	domain.MoodTense:      "tense and dramatic atmosphere",
	domain.MoodPeaceful:   "peaceful and serene environment",
	domain.MoodMysterious: "mysterious and enchanting mood",
	domain.MoodNeutral:    "calm and balanced atmosphere",
}
