package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Character は物語に登場するキャラクターの定義を保持します。
// 同一性は正規化済みの名前（小文字化・約物除去）で判定します。
type Character struct {
	Name                string   `json:"name"`
	FirstSeenSceneIndex int      `json:"first_seen_scene_index"`
	VisualCues          []string `json:"visual_cues,omitempty"`   // 生成プロンプトに注入する外見上の特徴
	ReferenceURL        string   `json:"reference_url,omitempty"` // 一貫性保持のための参照画像URL
	Seed                int64    `json:"seed,omitempty"`
}

// String はキャラクターの情報を文字列で返します。
func (c *Character) String() string {
	return fmt.Sprintf("%s (scene %d)", c.Name, c.FirstSeenSceneIndex)
}

// CharacterDNA はキャラクターの視覚情報（DNA）定義ファイルの1エントリです。
type CharacterDNA struct {
	Name         string   `json:"name"`
	VisualCues   []string `json:"visual_cues"`
	ReferenceURL string   `json:"reference_url"`
	Seed         int64    `json:"seed"`
}

// ParseCharacterDNA はJSONバイト列からキャラクターDNAマップをパースして返します。
// この関数はステートレスであり、キャッシュを行いません。
func ParseCharacterDNA(data []byte) (map[string]CharacterDNA, error) {
	var dna map[string]CharacterDNA
	if err := json.Unmarshal(data, &dna); err != nil {
		return nil, fmt.Errorf("キャラクターDNAのJSONパースに失敗しました: %w", err)
	}
	return dna, nil
}

// NormalizeName はキャラクター名を同一性判定用のキーへ正規化します。
// 大文字小文字と約物の差異（"Tom." と "tom" 等）は同一キャラクターに解決されます。
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// GetSeedFromName は正規化済みの名前から決定論的なシード値を生成します。
func GetSeedFromName(name string) int64 {
	hash := sha256.Sum256([]byte(NormalizeName(name)))
	seed := int32(binary.BigEndian.Uint32(hash[:4]))
	// シード値は正の数が望ましいため、最上位ビットを落とします
	return int64(seed & 0x7FFFFFFF)
}

// CharacterRegistry は1つの文書処理に紐づくキャラクター台帳です。
// 追記専用で、初出時にのみ FirstSeenSceneIndex を記録します。
// プロセス全体のシングルトンではなく、呼び出し側が両コンポーネントへ引き渡します。
type CharacterRegistry struct {
	byKey map[string]*Character
	order []string // 初出順のキー一覧
}

// NewCharacterRegistry は空のキャラクター台帳を生成します。
func NewCharacterRegistry() *CharacterRegistry {
	return &CharacterRegistry{byKey: make(map[string]*Character)}
}

// Resolve は名前を正規化して既存エントリを返すか、初出なら新規登録します。
// 表示名は最初に解決された表記（約物を除去したもの）を採用します。
func (r *CharacterRegistry) Resolve(name string, sceneIndex int) *Character {
	key := NormalizeName(name)
	if key == "" {
		return nil
	}
	if c, ok := r.byKey[key]; ok {
		return c
	}

	c := &Character{
		Name:                displayName(name),
		FirstSeenSceneIndex: sceneIndex,
		Seed:                GetSeedFromName(name),
	}
	r.byKey[key] = c
	r.order = append(r.order, key)
	return c
}

// Find は正規化済みの同一性で既存キャラクターを検索します。未登録なら nil を返します。
func (r *CharacterRegistry) Find(name string) *Character {
	return r.byKey[NormalizeName(name)]
}

// All は初出順に全キャラクターを返します。
func (r *CharacterRegistry) All() []*Character {
	chars := make([]*Character, 0, len(r.order))
	for _, key := range r.order {
		chars = append(chars, r.byKey[key])
	}
	return chars
}

// Len は登録済みキャラクター数を返します。
func (r *CharacterRegistry) Len() int {
	return len(r.byKey)
}

// ApplyDNA は外部定義の視覚情報を既存エントリへ統合します。
// 台帳に存在しない名前のDNAは無視します。
func (r *CharacterRegistry) ApplyDNA(dna map[string]CharacterDNA) {
	for name, d := range dna {
		c := r.Find(name)
		if c == nil && d.Name != "" {
			c = r.Find(d.Name)
		}
		if c == nil {
			continue
		}
		if len(d.VisualCues) > 0 {
			c.VisualCues = append([]string(nil), d.VisualCues...)
		}
		if d.ReferenceURL != "" {
			c.ReferenceURL = d.ReferenceURL
		}
		if d.Seed != 0 {
			c.Seed = d.Seed
		}
	}
}

// displayName は表示用に先頭末尾の約物と空白を取り除きます。
func displayName(name string) string {
	return strings.TrimFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
