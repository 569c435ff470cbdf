package segmenter

import (
	"errors"
	"strings"
	"testing"

	"github.com/shouni/go-manga-weaver/pkg/domain"
)

func TestSegment_DialogueExample(t *testing.T) {
	s := New()
	scenes, err := s.Segment(`Tom said, "Hello," and Ann replied, "Hi!"`, 500, 10, nil)
	if err != nil {
		t.Fatalf("Segment() が失敗しました: %v", err)
	}
	if len(scenes) != 1 {
		t.Fatalf("シーン数 = %d, want 1", len(scenes))
	}

	lines := scenes[0].DialogueLines
	if len(lines) != 2 {
		t.Fatalf("セリフ数 = %d, want 2", len(lines))
	}

	want := []domain.DialogueLine{
		{Speaker: "Tom", Text: "Hello", Emotion: domain.EmotionNeutral, Order: 0},
		{Speaker: "Ann", Text: "Hi!", Emotion: domain.EmotionHappy, Order: 1},
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("セリフ%d = %+v, want %+v", i, lines[i], w)
		}
	}

	wantChars := []string{"Tom", "Ann"}
	if len(scenes[0].Characters) != len(wantChars) {
		t.Fatalf("Characters = %v, want %v", scenes[0].Characters, wantChars)
	}
	for i, name := range wantChars {
		if scenes[0].Characters[i] != name {
			t.Errorf("Characters[%d] = %q, want %q", i, scenes[0].Characters[i], name)
		}
	}
}

func TestSegment_ShortInputBecomesSingleScene(t *testing.T) {
	s := New()
	in := "The cat sat quietly on the warm mat"
	if len(in) >= 50 {
		t.Fatalf("テスト入力は minLen 未満でなければなりません: len=%d", len(in))
	}

	scenes, err := s.Segment(in, 500, 50, nil)
	if err != nil {
		t.Fatalf("Segment() が失敗しました: %v", err)
	}
	if len(scenes) != 1 {
		t.Fatalf("シーン数 = %d, want 1", len(scenes))
	}
	if scenes[0].Text != in {
		t.Errorf("Text = %q, want %q", scenes[0].Text, in)
	}
	if len(scenes[0].DialogueLines) != 0 {
		t.Errorf("セリフのないシーンで DialogueLines = %v", scenes[0].DialogueLines)
	}
}

func TestSegment_CoverageAndBounds(t *testing.T) {
	s := New()
	unit := "The lantern glowed softly beside the stone wall."
	var b strings.Builder
	for i := 0; i < 12; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(unit)
	}
	in := b.String()

	const (
		maxLen = 120
		minLen = 20
	)
	scenes, err := s.Segment(in, maxLen, minLen, nil)
	if err != nil {
		t.Fatalf("Segment() が失敗しました: %v", err)
	}
	if len(scenes) < 2 {
		t.Fatalf("複数シーンに分割されていません: %d", len(scenes))
	}

	t.Run("連結するとテキスト全体を復元できる", func(t *testing.T) {
		if got, want := scenes.JoinedText(), Flatten(in); got != want {
			t.Errorf("JoinedText() = %q, want %q", got, want)
		}
	})

	t.Run("各シーンが長さ制約を満たす", func(t *testing.T) {
		for i, sc := range scenes {
			if len(sc.Text) > maxLen {
				t.Errorf("シーン%d が maxLen を超えています: %d", i, len(sc.Text))
			}
			if i < len(scenes)-1 && len(sc.Text) < minLen {
				t.Errorf("末尾以外のシーン%d が minLen 未満です: %d", i, len(sc.Text))
			}
		}
	})

	t.Run("Index は 0 からの連番になる", func(t *testing.T) {
		for i, sc := range scenes {
			if sc.Index != i {
				t.Errorf("シーン%d の Index = %d", i, sc.Index)
			}
		}
	})
}

func TestSegment_SceneTransitionCue(t *testing.T) {
	s := New()
	in := "Tom walked along the river for a while.\n\nMeanwhile, Ann waited at the village gate."

	scenes, err := s.Segment(in, 500, 10, nil)
	if err != nil {
		t.Fatalf("Segment() が失敗しました: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("場面転換キューで分割されていません: シーン数 = %d", len(scenes))
	}
	if !strings.HasPrefix(scenes[1].Text, "Meanwhile") {
		t.Errorf("シーン1 の先頭 = %q", scenes[1].Text)
	}
}

func TestSegment_RecurringNarrationNames(t *testing.T) {
	s := New()
	in := "Tom opened the door slowly. Tom stepped inside the dark room."

	scenes, err := s.Segment(in, 500, 10, nil)
	if err != nil {
		t.Fatalf("Segment() が失敗しました: %v", err)
	}
	if len(scenes) != 1 {
		t.Fatalf("シーン数 = %d, want 1", len(scenes))
	}
	if got := scenes[0].Characters; len(got) != 1 || got[0] != "Tom" {
		t.Errorf("地の文の反復名が登場人物になっていません: %v", got)
	}
}

func TestSegment_RegistryRecordsFirstSeen(t *testing.T) {
	s := New()
	reg := domain.NewCharacterRegistry()
	in := `Tom said, "Hello there, friend."` + "\n\nMeanwhile, Ann whispered, " + `"Is anyone here?"`

	scenes, err := s.Segment(in, 500, 10, reg)
	if err != nil {
		t.Fatalf("Segment() が失敗しました: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("シーン数 = %d, want 2", len(scenes))
	}

	tom := reg.Find("Tom")
	if tom == nil || tom.FirstSeenSceneIndex != 0 {
		t.Errorf("Tom の初出情報が不正です: %+v", tom)
	}
	ann := reg.Find("Ann")
	if ann == nil || ann.FirstSeenSceneIndex != 1 {
		t.Errorf("Ann の初出情報が不正です: %+v", ann)
	}
}

func TestSegment_Determinism(t *testing.T) {
	s := New()
	in := `Tom said, "Hello," and Ann replied, "Hi!"` + "\n\nMeanwhile, the forest grew quiet. Tom and Ann walked on."

	first, err := s.Segment(in, 500, 10, nil)
	if err != nil {
		t.Fatalf("Segment() が失敗しました: %v", err)
	}
	second, err := s.Segment(in, 500, 10, nil)
	if err != nil {
		t.Fatalf("Segment() が失敗しました: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("シーン数が一致しません: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text || first[i].Mood != second[i].Mood || first[i].Setting != second[i].Setting {
			t.Errorf("シーン%d が決定的ではありません", i)
		}
		if len(first[i].Characters) != len(second[i].Characters) {
			t.Errorf("シーン%d の Characters が決定的ではありません", i)
			continue
		}
		for j := range first[i].Characters {
			if first[i].Characters[j] != second[i].Characters[j] {
				t.Errorf("シーン%d の Characters[%d] が一致しません", i, j)
			}
		}
	}
}

func TestSegment_InvalidInput(t *testing.T) {
	s := New()

	cases := []struct {
		name   string
		text   string
		maxLen int
		minLen int
	}{
		{"空文字列", "", 500, 50},
		{"空白のみ", "  \n\n\t ", 500, 50},
		{"minLen が maxLen 以上", "some story text", 50, 50},
		{"負の境界", "some story text", -1, -2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Segment(tc.text, tc.maxLen, tc.minLen, nil)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
