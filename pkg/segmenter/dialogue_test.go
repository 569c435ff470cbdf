package segmenter

import (
	"testing"

	"github.com/shouni/go-manga-weaver/pkg/domain"
)

func TestExtractDialogue_SpeakerAttribution(t *testing.T) {
	s := New()

	cases := []struct {
		name        string
		in          string
		wantText    string
		wantSpeaker string
	}{
		{
			name:        "後続の動詞+名前",
			in:          `"Where are we going?" asked Ben.`,
			wantText:    "Where are we going?",
			wantSpeaker: "Ben",
		},
		{
			name:        "後続の名前+動詞",
			in:          `"It is late," Tom whispered.`,
			wantText:    "It is late",
			wantSpeaker: "Tom",
		},
		{
			name:        "先行の名前+動詞",
			in:          `Ann replied, "Of course."`,
			wantText:    "Of course.",
			wantSpeaker: "Ann",
		},
		{
			name:        "台本調のコロン形式",
			in:          `Tom: "Run faster!"`,
			wantText:    "Run faster!",
			wantSpeaker: "Tom",
		},
		{
			name:        "代名詞越しの最近傍の名前",
			in:          `Mary looked at him sadly. "I understand how you feel," she replied.`,
			wantText:    "I understand how you feel",
			wantSpeaker: "Mary",
		},
		{
			name:        "帰属できない場合は地の文の話者に倒す",
			in:          `"The end is near." A bell tolled in the distance.`,
			wantText:    "The end is near.",
			wantSpeaker: domain.NarratorName,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lines := s.extractDialogue(tc.in)
			if len(lines) != 1 {
				t.Fatalf("セリフの数が想定と異なります: got %d, want 1", len(lines))
			}
			if lines[0].Text != tc.wantText {
				t.Errorf("Text = %q, want %q", lines[0].Text, tc.wantText)
			}
			if lines[0].Speaker != tc.wantSpeaker {
				t.Errorf("Speaker = %q, want %q", lines[0].Speaker, tc.wantSpeaker)
			}
		})
	}
}

func TestExtractDialogue_OrderAndSmartQuotes(t *testing.T) {
	s := New()
	in := `Tom said, "First." Ann said, “Second.” Tom added, "Third."`

	lines := s.extractDialogue(in)
	if len(lines) != 3 {
		t.Fatalf("セリフの数が想定と異なります: got %d, want 3", len(lines))
	}
	wantTexts := []string{"First.", "Second.", "Third."}
	for i, line := range lines {
		if line.Order != i {
			t.Errorf("セリフ%d の Order = %d, want %d", i, line.Order, i)
		}
		if line.Text != wantTexts[i] {
			t.Errorf("セリフ%d の Text = %q, want %q", i, line.Text, wantTexts[i])
		}
	}
	if lines[1].Speaker != "Ann" {
		t.Errorf("スマート引用符のセリフの Speaker = %q, want %q", lines[1].Speaker, "Ann")
	}
}

func TestExtractDialogue_EmptyQuoteSkipped(t *testing.T) {
	s := New()
	lines := s.extractDialogue(`Tom stared. "" Then he spoke: "Enough."`)

	if len(lines) != 1 {
		t.Fatalf("空の引用が除外されていません: got %d, want 1", len(lines))
	}
	if lines[0].Text != "Enough." {
		t.Errorf("Text = %q, want %q", lines[0].Text, "Enough.")
	}
}

func TestClassifyEmotion(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Emotion
	}{
		{"I hate this place!", domain.EmotionAngry},
		{"Wow, look at that!", domain.EmotionSurprised},
		{"I am so sorry.", domain.EmotionSad},
		{"Hi!", domain.EmotionHappy},
		{"What a glad day.", domain.EmotionHappy},
		{"Where are we?", domain.EmotionQuestion},
		{"It is raining.", domain.EmotionNeutral},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := classifyEmotion(tc.in); got != tc.want {
				t.Errorf("classifyEmotion(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClassifyMood(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want domain.Mood
	}{
		{"明るい語彙", "The sunny garden was full of laugh and joy.", domain.MoodHappy},
		{"不穏な語彙", "A strange mist crept over the eerie shadow.", domain.MoodMysterious},
		{"該当なしは neutral", "He put the cup on the table.", domain.MoodNeutral},
		{"同点は定義順で先勝ち", "A sunny yet gloomy afternoon.", domain.MoodHappy},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyMood(tc.in); got != tc.want {
				t.Errorf("classifyMood() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInferSetting(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"前置詞フレーズ", "They met in the old library after dark.", "old library"},
		{"場所名詞のみ", "The forest was silent.", "forest"},
		{"時刻キューのみ", "It happened that morning without warning.", "morning"},
		{"キューなしは既定値", "Nothing much was said.", DefaultSetting},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := inferSetting(tc.in); got != tc.want {
				t.Errorf("inferSetting(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
