// Package generator は、シーン解析結果からの画像生成を並列に統括します。
package generator

import (
	"context"
	"fmt"
	"sync"

	"github.com/shouni/go-manga-weaver/pkg/domain"
	"github.com/shouni/go-manga-weaver/pkg/prompts"

	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// SceneAspectRatio はシーン画像のアスペクト比です。キャンバス 1024x768 に合わせています。
const SceneAspectRatio = "4:3"

// SceneComposer は、キャラクターの一貫性を保つための共有リソースを束ねます。
type SceneComposer struct {
	AssetManager   imagekit.AssetManager
	ImageGenerator imagekit.ImageGenerator
	PromptBuilder  *prompts.ScenePromptBuilder
	Registry       *domain.CharacterRegistry
	RateLimiter    *rate.Limiter

	mu               sync.RWMutex
	characterAssets  map[string]string // 正規化済みキャラクター名 -> FileAPI URI
	uploadGroup      singleflight.Group
}

// NewSceneComposer は SceneComposer を初期化済みの状態で生成します。
func NewSceneComposer(
	assetMgr imagekit.AssetManager,
	imgGen imagekit.ImageGenerator,
	pb *prompts.ScenePromptBuilder,
	reg *domain.CharacterRegistry,
	limiter *rate.Limiter,
) *SceneComposer {
	return &SceneComposer{
		AssetManager:    assetMgr,
		ImageGenerator:  imgGen,
		PromptBuilder:   pb,
		Registry:        reg,
		RateLimiter:     limiter,
		characterAssets: make(map[string]string),
	}
}

// PrepareCharacterAssets は、シーン群に登場する参照画像付きキャラクターを
// File API へ事前アップロードします。アップロードは errgroup で並列化し、
// 同一キャラクターの重複アップロードは singleflight で抑止します。
func (sc *SceneComposer) PrepareCharacterAssets(ctx context.Context, scenes domain.Scenes) error {
	eg, egCtx := errgroup.WithContext(ctx)

	for _, name := range scenes.UniqueCharacterNames() {
		name := name
		eg.Go(func() error {
			char := sc.Registry.Find(name)
			if char == nil || char.ReferenceURL == "" {
				return nil
			}

			if _, err := sc.getOrUploadAsset(egCtx, char); err != nil {
				return fmt.Errorf("キャラクター %s の参照画像の準備に失敗しました: %w", char.Name, err)
			}
			return nil
		})
	}

	return eg.Wait()
}

// AssetURI は事前アップロード済みの FileAPI URI を返します。未登録なら空文字列です。
func (sc *SceneComposer) AssetURI(name string) string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.characterAssets[domain.NormalizeName(name)]
}

// getOrUploadAsset は内部キャッシュを確認し、必要な場合のみアップロードを実行します。
func (sc *SceneComposer) getOrUploadAsset(ctx context.Context, char *domain.Character) (string, error) {
	key := domain.NormalizeName(char.Name)

	sc.mu.RLock()
	uri, ok := sc.characterAssets[key]
	sc.mu.RUnlock()
	if ok {
		return uri, nil
	}

	val, err, _ := sc.uploadGroup.Do(key, func() (interface{}, error) {
		// singleflight 待機中に別ゴルーチンが完了している可能性があるため再確認する
		sc.mu.RLock()
		existing, ok := sc.characterAssets[key]
		sc.mu.RUnlock()
		if ok {
			return existing, nil
		}

		uploaded, uploadErr := sc.AssetManager.UploadFile(ctx, char.ReferenceURL)
		if uploadErr != nil {
			return nil, uploadErr
		}

		sc.mu.Lock()
		sc.characterAssets[key] = uploaded
		sc.mu.Unlock()

		return uploaded, nil
	})
	if err != nil {
		return "", err
	}

	uri, ok = val.(string)
	if !ok {
		return "", fmt.Errorf("singleflight から想定外の型が返されました: %T", val)
	}
	return uri, nil
}
