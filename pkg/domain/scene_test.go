package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestScene_JSON(t *testing.T) {
	t.Run("Scene構造体が正しくJSON変換できること", func(t *testing.T) {
		scene := Scene{
			Index: 0,
			Text:  `"Hello," said Tom.`,
			DialogueLines: []DialogueLine{
				{Speaker: "Tom", Text: "Hello", Emotion: EmotionNeutral, Order: 0},
			},
			Characters: []string{"Tom"},
			Mood:       MoodPeaceful,
			Setting:    "garden",
		}

		data, err := json.Marshal(scene)
		if err != nil {
			t.Fatalf("Marshal失敗: %v", err)
		}

		var decoded Scene
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal失敗: %v", err)
		}

		if !reflect.DeepEqual(scene, decoded) {
			t.Errorf("変換前後でデータが一致しません。期待: %+v, 実際: %+v", scene, decoded)
		}
	})
}

func TestScenes_JoinedText(t *testing.T) {
	ss := Scenes{
		{Index: 0, Text: "First scene."},
		{Index: 1, Text: "Second scene."},
	}
	want := "First scene. Second scene."
	if got := ss.JoinedText(); got != want {
		t.Errorf("期待値 '%s', 実際の値 '%s'", want, got)
	}
}

func TestScenes_UniqueCharacterNames(t *testing.T) {
	ss := Scenes{
		{Characters: []string{"Tom", "Ann"}},
		{Characters: []string{"Ann", "Luna"}},
	}
	want := []string{"Ann", "Luna", "Tom"}
	if got := ss.UniqueCharacterNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("期待値 %v, 実際の値 %v", want, got)
	}
}
