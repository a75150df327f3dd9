package service

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/model"
	"Meridian/internal/pkg/consts"
	"Meridian/internal/pkg/redis"
	"Meridian/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ContentService interface {
	GetContent(ctx context.Context, contentID string) (*dto.ContentDTO, error)
	CreateContent(ctx context.Context, req *dto.ContentCreateDTO, gallery []*multipart.FileHeader, primary *multipart.FileHeader) (*dto.ContentDTO, error)
	UpdateContent(ctx context.Context, req *dto.ContentUpdateDTO, gallery *multipart.FileHeader, primary *multipart.FileHeader) (*dto.ContentDTO, error)
	DeclineContent(ctx context.Context, contentID string) error
}

type contentServiceImpl struct {
	contentRepo repository.ContentRepo
	mediaSvc    MediaService
}

func NewContentService(contentRepo repository.ContentRepo, mediaSvc MediaService) ContentService {
	return &contentServiceImpl{
		contentRepo: contentRepo,
		mediaSvc:    mediaSvc,
	}
}

// GetContent 按 ID 查询, 不存在与查询失败是两种不同的结果
func (s *contentServiceImpl) GetContent(ctx context.Context, contentID string) (*dto.ContentDTO, error) {
	id, err := primitive.ObjectIDFromHex(contentID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	content, err := s.contentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return toContentDTO(content, nil), nil
}

// CreateContent 校验图集数量 -> 上传图集 -> 上传头图 -> 落库
// 落库失败时已上传的资产留在待确认账本中, 由清理任务兜底
func (s *contentServiceImpl) CreateContent(ctx context.Context, req *dto.ContentCreateDTO, gallery []*multipart.FileHeader, primary *multipart.FileHeader) (*dto.ContentDTO, error) {
	if len(gallery) > model.MaxGalleryImages {
		return nil, ErrGalleryLimitExceeded
	}

	pair, err := parseCategoryPair(req.Category, req.Subcategory)
	if err != nil {
		return nil, err
	}

	galleryURLs, err := s.mediaSvc.UploadGallery(ctx, gallery)
	if err != nil {
		return nil, err
	}

	primaryURL, err := s.mediaSvc.UploadPrimary(ctx, primary)
	if err != nil {
		return nil, err
	}

	content := &model.Content{
		Title:                  req.Title,
		Description:            req.Description,
		Video:                  req.Video,
		PrimaryImage:           primaryURL,
		GalleryImages:          galleryURLs,
		CategoryAndSubCategory: pair,
	}

	persisted, err := s.contentRepo.Insert(ctx, content)
	if err != nil {
		log.ErrorContext(ctx, "content insert failed, uploaded assets left pending", "err", err)
		return nil, err
	}

	s.mediaSvc.CommitAssets(ctx, append(append([]string{}, galleryURLs...), primaryURL))
	_ = redis.DeleteKey(ctx, consts.HomeFeedCacheKey)

	// 返回落库后的文档, 携带服务端生成的 ID 与时间戳
	return toContentDTO(persisted, nil), nil
}

// UpdateContent 部分更新: 未提供的字段不修改
// 图集分支与字段分支相互独立, 各自写库一次; 下标校验针对当前已落库的图集
func (s *contentServiceImpl) UpdateContent(ctx context.Context, req *dto.ContentUpdateDTO, gallery *multipart.FileHeader, primary *multipart.FileHeader) (*dto.ContentDTO, error) {
	id, err := primitive.ObjectIDFromHex(req.ContentID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Video != nil {
		set["video"] = *req.Video
	}

	var uploaded []string

	// 头图整体替换, 旧资产不删除
	if primary != nil {
		primaryURL, err := s.mediaSvc.UploadPrimary(ctx, primary)
		if err != nil {
			return nil, err
		}
		set["primary_image"] = primaryURL
		uploaded = append(uploaded, primaryURL)
	}

	galleryTouched := false
	if req.GalleryImageIndex != nil && gallery != nil {
		existing, err := s.contentRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrContentNotFound
			}
			return nil, err
		}

		updatedGallery, err := s.mediaSvc.ReplaceGallerySlot(ctx, existing.GalleryImages, *req.GalleryImageIndex, gallery)
		if err != nil {
			return nil, err
		}

		if _, err = s.contentRepo.UpdateByID(ctx, id, bson.M{"gallery_images": updatedGallery}); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrContentNotFound
			}
			return nil, err
		}
		uploaded = append(uploaded, updatedGallery[*req.GalleryImageIndex])
		galleryTouched = true
	}

	// 无任何修改时退化为读取, 返回当前文档
	if len(set) == 0 && !galleryTouched {
		current, err := s.contentRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrContentNotFound
			}
			return nil, err
		}
		return toContentDTO(current, nil), nil
	}

	updated, err := s.contentRepo.UpdateByID(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	s.mediaSvc.CommitAssets(ctx, uploaded)
	_ = redis.DeleteKey(ctx, consts.HomeFeedCacheKey)

	return toContentDTO(updated, nil), nil
}

// DeclineContent 删除内容, 随后尽力而为地清理头图与图集前两张的外部资产
// 资产清理失败不回滚也不上抛, 文档删除本身已经成功
func (s *contentServiceImpl) DeclineContent(ctx context.Context, contentID string) error {
	id, err := primitive.ObjectIDFromHex(contentID)
	if err != nil {
		return ErrParamInvalid
	}

	deleted, err := s.contentRepo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrContentNotFound
		}
		return err
	}

	urls := make([]string, 0, model.MaxGalleryImages+1)
	if deleted.PrimaryImage != "" {
		urls = append(urls, deleted.PrimaryImage)
	}
	galleryCount := len(deleted.GalleryImages)
	if galleryCount > model.MaxGalleryImages {
		galleryCount = model.MaxGalleryImages
	}
	urls = append(urls, deleted.GalleryImages[:galleryCount]...)

	s.mediaSvc.DeleteAssets(ctx, urls)
	_ = redis.DeleteKey(ctx, consts.HomeFeedCacheKey)

	return nil
}

func parseCategoryPair(category, subcategory string) (model.CategoryPair, error) {
	var pair model.CategoryPair
	if category != "" {
		id, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			return pair, ErrParamInvalid
		}
		pair.Category = id
	}
	if subcategory != "" {
		id, err := primitive.ObjectIDFromHex(subcategory)
		if err != nil {
			return pair, ErrParamInvalid
		}
		pair.Subcategory = id
	}
	return pair, nil
}
