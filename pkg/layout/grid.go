package layout

import (
	"math"

	"github.com/shouni/go-manga-weaver/pkg/domain"
)

// scanStep は先着配置の候補走査の刻み幅です。
const scanStep = 20

// placeFirstFit はラスタ走査による先着配置を試みます。
// 左上から右下へ候補位置を走査し、既存の吹き出しとガター込みで
// 重ならない最初の位置に置きます。1つでも置けないセリフがあれば
// feasible=false を返し、部分的な結果は破棄されます。
func (e *Engine) placeFirstFit(lines []domain.DialogueLine, usable domain.Rect) ([]domain.Rect, bool) {
	rects := make([]domain.Rect, 0, len(lines))

	for _, line := range lines {
		w, h := e.estimateSize(line.Text)
		placed := false

	scan:
		for y := usable.Y; y+h <= usable.Y+usable.H; y += scanStep {
			for x := usable.X; x+w <= usable.X+usable.W; x += scanStep {
				cand := domain.Rect{X: x, Y: y, W: w, H: h}
				if e.collides(cand, rects) {
					continue
				}
				rects = append(rects, cand)
				placed = true
				break scan
			}
		}

		if !placed {
			return nil, false
		}
	}

	return rects, true
}

// collides は候補矩形がガター分の余白込みで既存矩形と重なるかを判定します。
func (e *Engine) collides(cand domain.Rect, placed []domain.Rect) bool {
	expanded := cand.Expand(e.gutter)
	for _, r := range placed {
		if expanded.Intersects(r) {
			return true
		}
	}
	return false
}

// placeFallbackGrid は使用可能領域を ceil(sqrt(n)) 列の均等グリッドへ分割し、
// 各セルの内側へ1つずつ吹き出しを割り当てます。セルが互いに素であるため、
// 収容不能と判定した後でも非重複と領域内包の不変条件は保たれます。
func (e *Engine) placeFallbackGrid(n int, usable domain.Rect) []domain.Rect {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols

	cellW := usable.W / cols
	cellH := usable.H / rows
	inset := e.gutter / 2

	rects := make([]domain.Rect, n)
	for i := 0; i < n; i++ {
		col := i % cols
		row := i / cols
		r := domain.Rect{
			X: usable.X + col*cellW + inset,
			Y: usable.Y + row*cellH + inset,
			W: cellW - 2*inset,
			H: cellH - 2*inset,
		}
		if r.W < 1 {
			r.W = 1
		}
		if r.H < 1 {
			r.H = 1
		}
		rects[i] = r
	}
	return rects
}
