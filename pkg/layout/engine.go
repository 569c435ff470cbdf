// Package layout はシーンのセリフ群から吹き出し配置を計算する決定的なレイアウトエンジンです。
// 外部I/Oを行わず、同じ入力からは常に同じ配置を生成します。
package layout

import (
	"fmt"
	"sort"

	"github.com/shouni/go-manga-weaver/pkg/domain"
)

// 吹き出し寸法とフォントの既定値です。ページ描画側の定数と揃えています。
const (
	DefaultMinBubbleWidth  = 120
	DefaultMinBubbleHeight = 60
	DefaultMaxBubbleWidth  = 360
	DefaultMaxBubbleHeight = 240
	DefaultGutter          = 8
	DefaultFontSize        = 16
	DefaultPadding         = 15
)

// Engine は吹き出し配置エンジンです。ゼロ値では使えず、New で生成します。
type Engine struct {
	minBubbleW int
	minBubbleH int
	maxBubbleW int
	maxBubbleH int
	gutter     int
	fontSize   int
	padding    int
	anchors    map[string]domain.Point
}

// Option は Engine の生成時設定です。
type Option func(*Engine)

// WithCharacterAnchors は話者名→キャンバス座標の対応を設定します。
// キーは正規化済みの同一性で照合されるため、表記ゆれは呼び出し側が気にする必要はありません。
func WithCharacterAnchors(anchors map[string]domain.Point) Option {
	return func(e *Engine) {
		e.anchors = make(map[string]domain.Point, len(anchors))
		for name, p := range anchors {
			e.anchors[domain.NormalizeName(name)] = p
		}
	}
}

// WithGutter は吹き出し同士の最小間隔を変更します。
func WithGutter(g int) Option {
	return func(e *Engine) {
		if g >= 0 {
			e.gutter = g
		}
	}
}

// WithFontSize はセリフの基準フォントサイズを変更します。
func WithFontSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.fontSize = size
		}
	}
}

// New は既定の寸法定数を備えた Engine を生成します。
func New(opts ...Option) *Engine {
	e := &Engine{
		minBubbleW: DefaultMinBubbleWidth,
		minBubbleH: DefaultMinBubbleHeight,
		maxBubbleW: DefaultMaxBubbleWidth,
		maxBubbleH: DefaultMaxBubbleHeight,
		gutter:     DefaultGutter,
		fontSize:   DefaultFontSize,
		padding:    DefaultPadding,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result は1シーン分の配置結果です。Feasible が false の場合でも
// Placements は全セリフ分あり、非重複とキャンバス内包の不変条件を満たします。
type Result struct {
	Placements []domain.BubblePlacement `json:"placements"`
	Feasible   bool                     `json:"feasible"`
}

// Layout はセリフ群に対する吹き出し配置を計算します。
// まず走査による先着配置を試し、全セリフを収容できない場合は
// 均等グリッドへ切り替えて Feasible=false を報告します。
func (e *Engine) Layout(lines []domain.DialogueLine, canvasW, canvasH, margin int) (*Result, error) {
	if canvasW <= 0 || canvasH <= 0 {
		return nil, fmt.Errorf("キャンバス寸法が不正です (w=%d, h=%d): %w", canvasW, canvasH, domain.ErrInvalidInput)
	}
	if margin < 0 || 2*margin >= canvasW || 2*margin >= canvasH {
		return nil, fmt.Errorf("マージンが不正です (margin=%d): %w", margin, domain.ErrInvalidInput)
	}

	usable := domain.Rect{X: margin, Y: margin, W: canvasW - 2*margin, H: canvasH - 2*margin}

	if len(lines) == 0 {
		return &Result{Placements: []domain.BubblePlacement{}, Feasible: true}, nil
	}

	// 入力順に依存しないよう Order で安定化してから配置する
	ordered := make([]domain.DialogueLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	rects, feasible := e.placeFirstFit(ordered, usable)
	if !feasible {
		rects = e.placeFallbackGrid(len(ordered), usable)
	}

	placements := make([]domain.BubblePlacement, len(ordered))
	for i, line := range ordered {
		hint := e.fontSize
		if rects[i].W < e.minBubbleW || rects[i].H < e.minBubbleH {
			hint = e.fontSize * 3 / 4
		}
		placements[i] = domain.BubblePlacement{
			LineOrder:    line.Order,
			Shape:        domain.ShapeForEmotion(line.Emotion),
			Rect:         rects[i],
			TailTarget:   e.tailTarget(line.Speaker, rects[i], usable),
			FontSizeHint: hint,
		}
	}

	return &Result{Placements: placements, Feasible: feasible}, nil
}

// tailTarget は吹き出しの尻尾が指す座標を決めます。話者のアンカーが
// 登録されていればそこへ、無ければ最寄りのキャンバス辺の中点へ向けます。
func (e *Engine) tailTarget(speaker string, r domain.Rect, usable domain.Rect) domain.Point {
	if p, ok := e.anchors[domain.NormalizeName(speaker)]; ok {
		return p
	}

	c := r.Center()
	dTop := c.Y - usable.Y
	dBottom := usable.Y + usable.H - c.Y
	dLeft := c.X - usable.X
	dRight := usable.X + usable.W - c.X

	best := dTop
	target := domain.Point{X: c.X, Y: usable.Y}
	if dBottom < best {
		best = dBottom
		target = domain.Point{X: c.X, Y: usable.Y + usable.H}
	}
	if dLeft < best {
		best = dLeft
		target = domain.Point{X: usable.X, Y: c.Y}
	}
	if dRight < best {
		target = domain.Point{X: usable.X + usable.W, Y: c.Y}
	}
	return target
}
