package layout

// estimateSize はセリフ本文から吹き出しの矩形寸法を見積もります。
// 等幅近似（文字幅はフォントサイズの3/5）で折り返し行数を求め、
// min/max の寸法制約へクランプします。
func (e *Engine) estimateSize(text string) (w, h int) {
	charW := e.fontSize * 3 / 5
	lineH := e.fontSize + 4

	maxLineChars := (e.maxBubbleW - 2*e.padding) / charW
	if maxLineChars < 1 {
		maxLineChars = 1
	}

	n := len([]rune(text))
	if n < 1 {
		n = 1
	}
	rows := (n + maxLineChars - 1) / maxLineChars

	if rows == 1 {
		w = n*charW + 2*e.padding
	} else {
		w = e.maxBubbleW
	}
	h = rows*lineH + 2*e.padding

	return clamp(w, e.minBubbleW, e.maxBubbleW), clamp(h, e.minBubbleH, e.maxBubbleH)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
