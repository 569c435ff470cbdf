package domain

import "testing"

func TestRect_Intersects(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 100, H: 50}

	cases := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"完全に重なる場合", Rect{X: 10, Y: 10, W: 100, H: 50}, true},
		{"部分的に重なる場合", Rect{X: 100, Y: 40, W: 50, H: 50}, true},
		{"離れている場合", Rect{X: 200, Y: 200, W: 10, H: 10}, false},
		{"辺が接するだけの場合", Rect{X: 110, Y: 10, W: 50, H: 50}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Intersects(tc.other); got != tc.want {
				t.Errorf("期待値 %v, 実際の値 %v", tc.want, got)
			}
		})
	}
}

func TestRect_Within(t *testing.T) {
	outer := Rect{X: 20, Y: 20, W: 984, H: 728}

	if !(Rect{X: 20, Y: 20, W: 100, H: 60}).Within(outer) {
		t.Error("境界上の矩形が内側と判定されませんでした")
	}
	if (Rect{X: 0, Y: 20, W: 100, H: 60}).Within(outer) {
		t.Error("はみ出した矩形が内側と判定されました")
	}
}

func TestRect_Expand(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}.Expand(5)
	want := Rect{X: 5, Y: 5, W: 30, H: 30}
	if r != want {
		t.Errorf("期待値 %+v, 実際の値 %+v", want, r)
	}
}

func TestShapeForEmotion(t *testing.T) {
	cases := map[Emotion]BubbleShape{
		EmotionAngry:     ShapeJagged,
		EmotionSurprised: ShapeJagged,
		EmotionQuestion:  ShapeCloud,
		EmotionHappy:     ShapeOval,
		EmotionSad:       ShapeOval,
		EmotionNeutral:   ShapeOval,
	}

	for emotion, want := range cases {
		if got := ShapeForEmotion(emotion); got != want {
			t.Errorf("%s: 期待値 %s, 実際の値 %s", emotion, want, got)
		}
	}
}
