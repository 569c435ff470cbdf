package domain

// Point はキャンバス上の座標です。
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect はキャンバス上の矩形領域です。X, Y は左上隅を指します。
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Intersects は2つの矩形が重なるかを判定します。辺が接するだけの場合は重なりとみなしません。
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Expand は矩形を四辺それぞれ g だけ押し広げた矩形を返します。
func (r Rect) Expand(g int) Rect {
	return Rect{X: r.X - g, Y: r.Y - g, W: r.W + 2*g, H: r.H + 2*g}
}

// Within は矩形が outer に完全に収まっているかを判定します。
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.X+r.W <= outer.X+outer.W && r.Y+r.H <= outer.Y+outer.H
}

// Center は矩形の中心座標を返します。
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// BubbleShape は吹き出しの形状です。セリフの感情タグから一意に決まります。
type BubbleShape string

const (
	ShapeOval   BubbleShape = "oval"
	ShapeJagged BubbleShape = "jagged"
	ShapeCloud  BubbleShape = "cloud"
)

// ShapeForEmotion は感情タグから吹き出し形状への固定の対応を返します。
func ShapeForEmotion(e Emotion) BubbleShape {
	switch e {
	case EmotionAngry, EmotionSurprised:
		return ShapeJagged
	case EmotionQuestion:
		return ShapeCloud
	default:
		return ShapeOval
	}
}

// BubblePlacement は1つのセリフ吹き出しの配置結果です。
// 同一シーン内の Rect は互いに重ならず、マージンを除いたキャンバス内に収まります。
// ページ描画後は破棄され、永続化されません。
type BubblePlacement struct {
	LineOrder    int         `json:"line_order"` // 対応する DialogueLine の Order
	Shape        BubbleShape `json:"shape"`
	Rect         Rect        `json:"rect"`
	TailTarget   Point       `json:"tail_target"`
	FontSizeHint int         `json:"font_size_hint"`
}
