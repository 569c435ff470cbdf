package publisher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/layout"
)

const (
	placeholderImage     = "placeholder.png"
	defaultNarrationName = "narration"
)

// BuildMarkdown は、シーン列と吹き出し配置から go-text-format が解釈可能な
// Markdown 文字列を構築します。吹き出しの向きと位置は実際の配置結果から算出します。
func (p *MangaPublisher) BuildMarkdown(story *domain.Story, layouts []*layout.Result, imagePaths []string, opts Options) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", story.Title))

	for i, scene := range story.Scenes {
		img := placeholderImage
		if i < len(imagePaths) {
			img = imagePaths[i]
		}

		sb.WriteString(fmt.Sprintf("## Panel: %s\n", img))
		sb.WriteString(fmt.Sprintf("- layout: %s\n", panelLayoutName(layouts, i)))
		sb.WriteString(fmt.Sprintf("- mood: %s\n", scene.Mood))
		sb.WriteString(fmt.Sprintf("- setting: %s\n", scene.Setting))

		if len(scene.DialogueLines) == 0 {
			sb.WriteString("- type: none\n\n")
			continue
		}

		for _, line := range scene.DialogueLines {
			sb.WriteString(fmt.Sprintf("- speaker: %s\n", speakerClass(line.Speaker)))
			sb.WriteString(fmt.Sprintf("- text: %s\n", strings.TrimSpace(line.Text)))
			sb.WriteString(bubbleAttrs(placementFor(layouts, i, line.Order), opts))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// speakerClass は話者名を CSS 安全なクラス名へハッシュ化します。
func speakerClass(speaker string) string {
	if speaker == "" {
		speaker = defaultNarrationName
	}
	sum := sha256.Sum256([]byte(speaker))
	return "speaker-" + hex.EncodeToString(sum[:])[:10]
}

// panelLayoutName は配置結果の状態からパネルのレイアウト名を決めます。
func panelLayoutName(layouts []*layout.Result, sceneIndex int) string {
	if sceneIndex < len(layouts) && layouts[sceneIndex] != nil && !layouts[sceneIndex].Feasible {
		return "overflow"
	}
	return "standard"
}

// placementFor は対象セリフの配置を Order で検索します。見つからなければ nil を返します。
func placementFor(layouts []*layout.Result, sceneIndex, order int) *domain.BubblePlacement {
	if sceneIndex >= len(layouts) || layouts[sceneIndex] == nil {
		return nil
	}
	for i := range layouts[sceneIndex].Placements {
		if layouts[sceneIndex].Placements[i].LineOrder == order {
			return &layouts[sceneIndex].Placements[i]
		}
	}
	return nil
}

// bubbleAttrs は吹き出しの形状・向き・位置を Markdown 属性として出力します。
// 位置はキャンバス寸法に対する百分率で表現します。
func bubbleAttrs(placement *domain.BubblePlacement, opts Options) string {
	if placement == nil || opts.CanvasWidth <= 0 || opts.CanvasHeight <= 0 {
		// 配置情報がない場合のフォールバック
		return "- tail: bottom\n- top: 10%\n- left: 10%\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("- shape: %s\n", placement.Shape))
	sb.WriteString(fmt.Sprintf("- tail: %s\n", tailDirection(placement)))
	sb.WriteString(fmt.Sprintf("- top: %d%%\n", placement.Rect.Y*100/opts.CanvasHeight))
	sb.WriteString(fmt.Sprintf("- left: %d%%\n", placement.Rect.X*100/opts.CanvasWidth))
	return sb.String()
}

// tailDirection は尻尾の指す先を吹き出し中心と比較し、支配的な軸の向きを返します。
func tailDirection(placement *domain.BubblePlacement) string {
	c := placement.Rect.Center()
	dx := placement.TailTarget.X - c.X
	dy := placement.TailTarget.Y - c.Y

	if abs(dy) >= abs(dx) {
		if dy < 0 {
			return "top"
		}
		return "bottom"
	}
	if dx < 0 {
		return "left"
	}
	return "right"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
