package job

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/pkg/consts"
	"Meridian/internal/pkg/redis"
	"Meridian/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

// pendingExpiration 上传后超过该时长仍未落库的资产视为孤儿
const pendingExpiration = 24 * 60 * 60

// AssetCleanupJob 清理已上传但始终未被任何内容引用的外部资产
type AssetCleanupJob struct {
	store service.AssetStore
}

func NewAssetCleanupJob(store service.AssetStore) *AssetCleanupJob {
	return &AssetCleanupJob{
		store: store,
	}
}

func (s *AssetCleanupJob) Run() {
	ctx := context.Background()
	log.Info("start asset cleanup job")

	pending, err := redis.HGetAll(ctx, consts.MediaPendingKey)
	if err != nil {
		log.Error("failed to get pending asset ledger", "err", err)
		return
	}

	now := time.Now().Unix()
	count := 0

	for objectKey, val := range pending {
		var meta dto.PendingAssetMeta
		if err := json.Unmarshal([]byte(val), &meta); err != nil {
			log.Warn("invalid pending asset meta format", "objectKey", objectKey)
			continue
		}

		if now-meta.CreatedAt > pendingExpiration {
			if err = s.store.Remove(ctx, objectKey); err != nil {
				log.Error("failed to delete orphan asset from store", "objectKey", objectKey, "err", err)
				continue
			}

			if err = redis.HDel(ctx, consts.MediaPendingKey, objectKey); err != nil {
				log.Error("failed to remove asset from pending ledger", "objectKey", objectKey, "err", err)
			}

			count++
			log.Info("cleanup orphan asset", "objectKey", objectKey, "mime", meta.MimeType)
		}
	}

	if count > 0 {
		log.Info("asset cleanup job finished", "cleaned_count", count)
	}
}
