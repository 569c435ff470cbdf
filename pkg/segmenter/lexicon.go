package segmenter

import (
	"strings"

	"github.com/shouni/go-manga-weaver/pkg/domain"
)

// moodLexicon は雰囲気タグ→トリガー語の対応表です。
// 分岐に散らさず一箇所の不変マップとして持ち、単体で検証できるようにします。
var moodLexicon = map[domain.Mood][]string{
	domain.MoodHappy:      {"bright", "sunny", "cheerful", "laugh", "smile", "joy", "radiant", "delight", "wonderful"},
	domain.MoodSad:        {"sad", "gloomy", "tears", "cried", "sorrow", "weep", "mourn", "lonely"},
	domain.MoodTense:      {"tense", "nervous", "anxious", "worried", "afraid", "fear", "danger", "threat"},
	domain.MoodPeaceful:   {"peaceful", "calm", "serene", "quiet", "tranquil", "gentle"},
	domain.MoodMysterious: {"mysterious", "strange", "odd", "peculiar", "eerie", "shadow", "mist", "magic", "magical"},
}

// emotionLexicon はセリフの感情タグ→トリガー語の対応表です。
var emotionLexicon = map[domain.Emotion][]string{
	domain.EmotionAngry:     {"angry", "mad", "furious", "hate", "rage"},
	domain.EmotionSurprised: {"wow", "amazing", "incredible", "unbelievable", "gasp"},
	domain.EmotionSad:       {"sad", "sorry", "terrible", "awful"},
	domain.EmotionHappy:     {"happy", "joy", "great", "fantastic", "glad", "love"},
}

// classifyMood はシーン本文に対するキーワード投票で雰囲気を決定します。
// 同点は domain.Moods の定義順で先勝ちし、無得点なら neutral に倒します。
func classifyMood(text string) domain.Mood {
	lower := strings.ToLower(text)

	best := domain.MoodNeutral
	bestVotes := 0
	for _, mood := range domain.Moods {
		votes := 0
		for _, kw := range moodLexicon[mood] {
			votes += strings.Count(lower, kw)
		}
		if votes > bestVotes {
			best = mood
			bestVotes = votes
		}
	}
	return best
}

// classifyEmotion はセリフ1つの感情タグを句読点とキーワードから決定します。
// どの分岐にも該当しなければ neutral を返し、決して失敗しません。
func classifyEmotion(text string) domain.Emotion {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, emotionLexicon[domain.EmotionAngry]):
		return domain.EmotionAngry
	case containsAny(lower, emotionLexicon[domain.EmotionSurprised]):
		return domain.EmotionSurprised
	case containsAny(lower, emotionLexicon[domain.EmotionSad]):
		return domain.EmotionSad
	case strings.Contains(text, "!") || containsAny(lower, emotionLexicon[domain.EmotionHappy]):
		return domain.EmotionHappy
	case strings.Contains(text, "?"):
		return domain.EmotionQuestion
	default:
		return domain.EmotionNeutral
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
