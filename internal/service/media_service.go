package service

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/model"
	"Meridian/internal/pkg/consts"
	"Meridian/internal/pkg/redis"
	"Meridian/internal/pkg/util"
	"context"
	"io"
	log "log/slog"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// AssetStore 外部资产存储的窄接口, 生产实现为 pkg/minio.Store
type AssetStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
	ObjectKey(rawURL string) string
}

type MediaService interface {
	UploadGallery(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
	UploadPrimary(ctx context.Context, file *multipart.FileHeader) (string, error)
	ReplaceGallerySlot(ctx context.Context, existing []string, index int, file *multipart.FileHeader) ([]string, error)
	DeleteAssets(ctx context.Context, urls []string)
	CommitAssets(ctx context.Context, urls []string)
}

type mediaServiceImpl struct {
	store AssetStore
}

func NewMediaService(store AssetStore) MediaService {
	return &mediaServiceImpl{
		store: store,
	}
}

// UploadGallery 按输入顺序逐张上传图集, 超过容量上限时不产生任何副作用
func (s *mediaServiceImpl) UploadGallery(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > model.MaxGalleryImages {
		return nil, ErrGalleryLimitExceeded
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := s.uploadOne(ctx, file)
		if err != nil {
			// 已上传部分留存于存储端, 由待确认账本的清理任务兜底
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// UploadPrimary 上传头图, file 为 nil 时无副作用
func (s *mediaServiceImpl) UploadPrimary(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", nil
	}
	return s.uploadOne(ctx, file)
}

// ReplaceGallerySlot 替换图集中指定下标的图片, 返回新切片, 不改动调用方持有的切片
func (s *mediaServiceImpl) ReplaceGallerySlot(ctx context.Context, existing []string, index int, file *multipart.FileHeader) ([]string, error) {
	if index < 0 || index >= len(existing) {
		return nil, ErrGalleryIndexInvalid
	}

	url, err := s.uploadOne(ctx, file)
	if err != nil {
		return nil, err
	}

	updated := make([]string, len(existing))
	copy(updated, existing)
	updated[index] = url
	return updated, nil
}

// DeleteAssets 尽力而为地逐个删除资产, 单个失败只记录日志, 不影响其余删除与调用方
func (s *mediaServiceImpl) DeleteAssets(ctx context.Context, urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		key := s.store.ObjectKey(url)
		if err := s.store.Remove(ctx, key); err != nil {
			log.WarnContext(ctx, "failed to delete asset from store", "objectKey", key, "err", err)
			continue
		}
		_ = redis.HDel(ctx, consts.MediaPendingKey, key)
		log.InfoContext(ctx, "asset deleted from store", "objectKey", key)
	}
}

// CommitAssets 文档落库成功后将对象移出待确认账本
func (s *mediaServiceImpl) CommitAssets(ctx context.Context, urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := redis.HDel(ctx, consts.MediaPendingKey, s.store.ObjectKey(url)); err != nil {
			log.WarnContext(ctx, "failed to commit asset in pending ledger", "url", url, "err", err)
		}
	}
}

func (s *mediaServiceImpl) uploadOne(ctx context.Context, file *multipart.FileHeader) (string, error) {
	reader, err := file.Open()
	if err != nil {
		return "", ErrParamInvalid
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return "", ErrFileNotSupported
	}

	// 对象键不含路径分隔符, 保证 URL 最后一个分段即对象键
	objectName := time.Now().Format("20060102") + "-" + uuid.NewString() + path.Ext(file.Filename)

	url, err := s.store.Upload(ctx, objectName, reader, file.Size, contentType)
	if err != nil {
		return "", err
	}

	s.markPending(ctx, objectName, contentType)
	return url, nil
}

// markPending 记入待确认账本, 账本故障不阻断上传
func (s *mediaServiceImpl) markPending(ctx context.Context, objectKey, contentType string) {
	meta := dto.PendingAssetMeta{
		MimeType:  contentType,
		CreatedAt: time.Now().Unix(),
	}
	metaBytes, _ := json.Marshal(meta)
	if err := redis.HSet(ctx, consts.MediaPendingKey, objectKey, string(metaBytes)); err != nil {
		log.WarnContext(ctx, "failed to record pending asset", "objectKey", objectKey, "err", err)
	}
}
