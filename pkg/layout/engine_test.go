package layout

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shouni/go-manga-weaver/pkg/domain"
)

func sampleLines() []domain.DialogueLine {
	return []domain.DialogueLine{
		{Speaker: "Tom", Text: "Hello there, how are you today?", Emotion: domain.EmotionNeutral, Order: 0},
		{Speaker: "Ann", Text: "I am fine!", Emotion: domain.EmotionHappy, Order: 1},
		{Speaker: "Tom", Text: "Where shall we go next?", Emotion: domain.EmotionQuestion, Order: 2},
		{Speaker: "Ann", Text: "I hate waiting around!", Emotion: domain.EmotionAngry, Order: 3},
	}
}

func assertInvariants(t *testing.T, res *Result, canvasW, canvasH, margin int) {
	t.Helper()
	usable := domain.Rect{X: margin, Y: margin, W: canvasW - 2*margin, H: canvasH - 2*margin}

	for i, p := range res.Placements {
		if !p.Rect.Within(usable) {
			t.Errorf("配置%d がキャンバス外にはみ出しています: %+v", i, p.Rect)
		}
		for j := i + 1; j < len(res.Placements); j++ {
			if p.Rect.Intersects(res.Placements[j].Rect) {
				t.Errorf("配置%d と %d が重なっています: %+v / %+v", i, j, p.Rect, res.Placements[j].Rect)
			}
		}
	}
}

func TestLayout_FeasiblePlacement(t *testing.T) {
	e := New()
	lines := sampleLines()

	res, err := e.Layout(lines, 1024, 768, 20)
	if err != nil {
		t.Fatalf("Layout() が失敗しました: %v", err)
	}
	if !res.Feasible {
		t.Fatal("広いキャンバスで Feasible = false になりました")
	}
	if len(res.Placements) != len(lines) {
		t.Fatalf("配置数 = %d, want %d", len(res.Placements), len(lines))
	}
	assertInvariants(t, res, 1024, 768, 20)

	wantShapes := []domain.BubbleShape{domain.ShapeOval, domain.ShapeOval, domain.ShapeCloud, domain.ShapeJagged}
	for i, p := range res.Placements {
		if p.LineOrder != i {
			t.Errorf("配置%d の LineOrder = %d", i, p.LineOrder)
		}
		if p.Shape != wantShapes[i] {
			t.Errorf("配置%d の Shape = %q, want %q", i, p.Shape, wantShapes[i])
		}
		if p.FontSizeHint != DefaultFontSize {
			t.Errorf("配置%d の FontSizeHint = %d, want %d", i, p.FontSizeHint, DefaultFontSize)
		}
	}
}

func TestLayout_Deterministic(t *testing.T) {
	e := New()
	lines := sampleLines()

	first, err := e.Layout(lines, 1024, 768, 20)
	if err != nil {
		t.Fatalf("Layout() が失敗しました: %v", err)
	}
	second, err := e.Layout(lines, 1024, 768, 20)
	if err != nil {
		t.Fatalf("Layout() が失敗しました: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("同じ入力から異なる配置が生成されました:\n%+v\n%+v", first, second)
	}
}

func TestLayout_InputOrderIndependent(t *testing.T) {
	e := New()
	lines := sampleLines()
	shuffled := []domain.DialogueLine{lines[2], lines[0], lines[3], lines[1]}

	a, err := e.Layout(lines, 1024, 768, 20)
	if err != nil {
		t.Fatalf("Layout() が失敗しました: %v", err)
	}
	b, err := e.Layout(shuffled, 1024, 768, 20)
	if err != nil {
		t.Fatalf("Layout() が失敗しました: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("入力順を変えると配置が変わってしまいます")
	}
}

func TestLayout_InfeasibleFallsBackToGrid(t *testing.T) {
	e := New()
	lines := make([]domain.DialogueLine, 6)
	for i := range lines {
		lines[i] = domain.DialogueLine{
			Speaker: "Tom",
			Text:    "This line will not fit on such a small canvas.",
			Emotion: domain.EmotionNeutral,
			Order:   i,
		}
	}

	res, err := e.Layout(lines, 200, 150, 10)
	if err != nil {
		t.Fatalf("Layout() が失敗しました: %v", err)
	}
	if res.Feasible {
		t.Error("狭いキャンバスで Feasible = true になりました")
	}
	if len(res.Placements) != len(lines) {
		t.Fatalf("収容不能でも全セリフ分の配置が必要です: %d", len(res.Placements))
	}
	assertInvariants(t, res, 200, 150, 10)
}

func TestLayout_TailTargetUsesCharacterAnchor(t *testing.T) {
	anchor := domain.Point{X: 100, Y: 700}
	e := New(WithCharacterAnchors(map[string]domain.Point{"Tom": anchor}))

	lines := []domain.DialogueLine{
		{Speaker: "Tom.", Text: "Follow me.", Emotion: domain.EmotionNeutral, Order: 0},
		{Speaker: "Ann", Text: "Right behind you.", Emotion: domain.EmotionNeutral, Order: 1},
	}

	res, err := e.Layout(lines, 1024, 768, 20)
	if err != nil {
		t.Fatalf("Layout() が失敗しました: %v", err)
	}

	if res.Placements[0].TailTarget != anchor {
		t.Errorf("表記ゆれのある話者がアンカーに解決されていません: %+v", res.Placements[0].TailTarget)
	}
	if res.Placements[1].TailTarget == anchor {
		t.Error("アンカー未登録の話者が他人のアンカーを指しています")
	}
}

func TestLayout_EmptyLines(t *testing.T) {
	e := New()
	res, err := e.Layout(nil, 1024, 768, 20)
	if err != nil {
		t.Fatalf("Layout() が失敗しました: %v", err)
	}
	if !res.Feasible || len(res.Placements) != 0 {
		t.Errorf("空入力の結果が不正です: %+v", res)
	}
}

func TestLayout_InvalidInput(t *testing.T) {
	e := New()

	cases := []struct {
		name    string
		w, h    int
		margin  int
	}{
		{"幅ゼロ", 0, 768, 20},
		{"高さが負", 1024, -1, 20},
		{"マージンが負", 1024, 768, -5},
		{"マージンがキャンバスを食い潰す", 1024, 768, 384},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Layout(sampleLines(), tc.w, tc.h, tc.margin)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestEstimateSize(t *testing.T) {
	e := New()

	t.Run("短文は最小寸法にクランプされる", func(t *testing.T) {
		w, h := e.estimateSize("Hi!")
		if w != DefaultMinBubbleWidth || h != DefaultMinBubbleHeight {
			t.Errorf("estimateSize() = (%d, %d)", w, h)
		}
	})

	t.Run("長文は最大寸法を超えない", func(t *testing.T) {
		long := make([]byte, 0, 600)
		for i := 0; i < 100; i++ {
			long = append(long, "word! "...)
		}
		w, h := e.estimateSize(string(long))
		if w > DefaultMaxBubbleWidth || h > DefaultMaxBubbleHeight {
			t.Errorf("estimateSize() = (%d, %d)", w, h)
		}
	})

	t.Run("文が長いほど寸法は単調に増える", func(t *testing.T) {
		w1, h1 := e.estimateSize("A short line of dialogue here now.")
		w2, h2 := e.estimateSize("A much longer line of dialogue that will certainly wrap across multiple rows in the bubble.")
		if w2 < w1 || h2 < h1 {
			t.Errorf("寸法が単調ではありません: (%d,%d) -> (%d,%d)", w1, h1, w2, h2)
		}
	})
}
