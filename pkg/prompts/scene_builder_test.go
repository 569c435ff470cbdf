package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-manga-weaver/pkg/domain"
)

func testScene() domain.Scene {
	return domain.Scene{
		Index:      0,
		Text:       `Tom walked into the garden at dawn. "Beautiful," he whispered.`,
		Characters: []string{"Tom"},
		Mood:       domain.MoodPeaceful,
		Setting:    "garden",
	}
}

func TestBuildScenePrompt(t *testing.T) {
	reg := domain.NewCharacterRegistry()
	tom := reg.Resolve("Tom", 0)
	tom.VisualCues = []string{"short brown hair", "green jacket"}

	pb := NewScenePromptBuilder(reg, "")
	user, system, seed := pb.BuildScenePrompt(testScene())

	t.Run("キャラクターと舞台がプロンプトに含まれる", func(t *testing.T) {
		for _, want := range []string{"featuring Tom", "set in garden", "peaceful and serene environment", "short brown hair", QualityTags} {
			if !strings.Contains(user, want) {
				t.Errorf("UserPrompt に %q が含まれていません: %q", want, user)
			}
		}
	})

	t.Run("セリフは要約から除去される", func(t *testing.T) {
		if strings.Contains(user, "Beautiful") {
			t.Errorf("UserPrompt にセリフが混入しています: %q", user)
		}
	})

	t.Run("SystemPrompt に既定の画風が入る", func(t *testing.T) {
		if !strings.Contains(system, DefaultStyleSuffix) {
			t.Errorf("SystemPrompt = %q", system)
		}
	})

	t.Run("シードは筆頭キャラクターを継承する", func(t *testing.T) {
		if seed != tom.Seed {
			t.Errorf("seed = %d, want %d", seed, tom.Seed)
		}
	})
}

func TestBuildScenePrompt_Deterministic(t *testing.T) {
	reg := domain.NewCharacterRegistry()
	reg.Resolve("Tom", 0)
	pb := NewScenePromptBuilder(reg, "custom style")

	u1, s1, seed1 := pb.BuildScenePrompt(testScene())
	u2, s2, seed2 := pb.BuildScenePrompt(testScene())

	if u1 != u2 || s1 != s2 || seed1 != seed2 {
		t.Error("同じシーンから異なるプロンプトが生成されました")
	}
	if !strings.Contains(s1, "custom style") {
		t.Errorf("画風サフィックスが反映されていません: %q", s1)
	}
}

func TestBuildScenePrompt_NoCharacters(t *testing.T) {
	pb := NewScenePromptBuilder(domain.NewCharacterRegistry(), "")
	scene := domain.Scene{
		Index:   2,
		Text:    "The empty forest stretched on and on.",
		Mood:    domain.MoodMysterious,
		Setting: "forest",
	}

	user, _, seed := pb.BuildScenePrompt(scene)

	if strings.Contains(user, "featuring") {
		t.Errorf("キャラクター不在のシーンに featuring 句があります: %q", user)
	}
	if seed != domain.GetSeedFromName("forest") {
		t.Errorf("舞台由来のシードになっていません: %d", seed)
	}
}

func TestExtractSceneSummary_Truncates(t *testing.T) {
	long := strings.Repeat("very long narrative without punctuation ", 5)
	got := extractSceneSummary(long)

	if len(got) > maxSummaryLength+4 {
		t.Errorf("要約が切り詰められていません: len=%d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("切り詰めの省略記号がありません: %q", got)
	}
}
