package domain

import "errors"

// ErrInvalidInput は、空のテキストや不正な寸法など、処理を開始できない入力を示す番兵エラーです。
var ErrInvalidInput = errors.New("入力が不正です")

// NarratorName は、話者を特定できなかったセリフに割り当てる既定の話者名です。
const NarratorName = "Narrator"

// Mood はシーン全体の雰囲気を表す閉じた列挙です。
type Mood string

const (
	MoodHappy      Mood = "happy"
	MoodSad        Mood = "sad"
	MoodTense      Mood = "tense"
	MoodPeaceful   Mood = "peaceful"
	MoodMysterious Mood = "mysterious"
	MoodNeutral    Mood = "neutral"
)

// Moods は定義順の一覧です。雰囲気投票の同点時はこの順で先勝ちします。
var Moods = []Mood{MoodHappy, MoodSad, MoodTense, MoodPeaceful, MoodMysterious, MoodNeutral}

// Emotion はセリフ単位の感情タグです。
type Emotion string

const (
	EmotionNeutral   Emotion = "neutral"
	EmotionHappy     Emotion = "happy"
	EmotionSad       Emotion = "sad"
	EmotionAngry     Emotion = "angry"
	EmotionSurprised Emotion = "surprised"
	EmotionQuestion  Emotion = "question"
)

// DialogueLine はシーン内の1つの発話を保持します。
// Order はシーン内での初出順で、厳密に単調増加します。
type DialogueLine struct {
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
	Emotion Emotion `json:"emotion"`
	Order   int     `json:"order"`
}

// Scene は物語の連続した一区切りで、画像生成に渡す最小単位です。
// Index は 0 始まりで安定しており、Text はホワイトスペース正規化済みの抜粋です。
type Scene struct {
	Index         int            `json:"index"`
	Text          string         `json:"text"`
	DialogueLines []DialogueLine `json:"dialogue_lines"`
	Characters    []string       `json:"characters"`
	Mood          Mood           `json:"mood"`
	Setting       string         `json:"setting"`
}

// Story は解析済みの物語全体を表します。
type Story struct {
	Title  string `json:"title"`
	Scenes Scenes `json:"scenes"`
}
