package service

import (
	"Meridian/internal/api/config"
	"Meridian/internal/api/dto"
	"Meridian/internal/model"
	"Meridian/internal/pkg/consts"
	"Meridian/internal/pkg/redis"
	"Meridian/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListingService interface {
	GetAllContent(ctx context.Context) (*dto.ContentCollectionDTO, error)
	GetCategoryContent(ctx context.Context, query *dto.ContentListDTO) (*dto.ContentPageDTO, error)
	GetHomeContent(ctx context.Context) (*dto.HomeFeedDTO, error)
}

type listingServiceImpl struct {
	contentRepo  repository.ContentRepo
	categoryRepo repository.CategoryRepo

	excludedCategories []primitive.ObjectID
	podcastCategories  []primitive.ObjectID
	homeCacheTTL       time.Duration
}

func NewListingService(contentRepo repository.ContentRepo, categoryRepo repository.CategoryRepo, feedCfg config.FeedConfig) ListingService {
	ttl := time.Duration(feedCfg.HomeCacheSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &listingServiceImpl{
		contentRepo:        contentRepo,
		categoryRepo:       categoryRepo,
		excludedCategories: parseCategoryIDs(feedCfg.ExcludedCategories),
		podcastCategories:  parseCategoryIDs(feedCfg.PodcastCategories),
		homeCacheTTL:       ttl,
	}
}

// GetAllContent 全量列表, 最新在前, 分类引用解析为 {id, name}
func (s *listingServiceImpl) GetAllContent(ctx context.Context) (*dto.ContentCollectionDTO, error) {
	contents, err := s.contentRepo.Find(ctx, repository.ContentQuery{})
	if err != nil {
		return nil, err
	}

	refs, err := s.populate(ctx, contents)
	if err != nil {
		return nil, err
	}

	return &dto.ContentCollectionDTO{
		Content: toContentDTOs(contents, refs),
		Count:   len(contents),
	}, nil
}

// GetCategoryContent 分页列表, 判定顺序:
//  1. 未传分页参数 (pageNumber=0 且 limit=10 哨兵) -> 固定返回最新 5 条, 忽略分类
//  2. 传了 categoryId -> category 或 subcategory 命中, 窗口分页
//  3. 其余 -> 无过滤窗口分页
func (s *listingServiceImpl) GetCategoryContent(ctx context.Context, query *dto.ContentListDTO) (*dto.ContentPageDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = consts.DefaultPageLimit
	}

	if query.PageNumber == 0 && limit == consts.DefaultPageLimit {
		latest, err := s.contentRepo.Find(ctx, repository.ContentQuery{Limit: consts.CuratedLatestSize})
		if err != nil {
			return nil, err
		}
		// 固定视图: 不足 5 条也算成功
		return &dto.ContentPageDTO{
			Content: toContentDTOs(latest, nil),
			Count:   len(latest),
			Limit:   consts.CuratedLatestSize,
		}, nil
	}

	// skip = pageNumber*limit - limit (页码从 1 起), 负值按第一页处理
	skip := int64(query.PageNumber*limit - limit)
	if skip < 0 {
		skip = 0
	}

	q := repository.ContentQuery{Skip: skip, Limit: int64(limit)}
	if query.CategoryID != "" {
		cid, err := primitive.ObjectIDFromHex(query.CategoryID)
		if err != nil {
			return nil, ErrParamInvalid
		}
		q.CategoryID = &cid
	}

	contents, err := s.contentRepo.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		if q.CategoryID != nil {
			return nil, ErrNoCategoryContent
		}
		return nil, ErrNoContent
	}

	return &dto.ContentPageDTO{
		Content: toContentDTOs(contents, nil),
		Count:   len(contents),
		Limit:   limit,
	}, nil
}

// GetHomeContent 首页聚合流: 排除集以外的最新 5 条 + 播客分类最新 3 条
// 分类 ID 集合来自配置, 结果短暂缓存, 内容变更时失效
func (s *listingServiceImpl) GetHomeContent(ctx context.Context) (*dto.HomeFeedDTO, error) {
	if cached, err := redis.GetValue(ctx, consts.HomeFeedCacheKey); err == nil && cached != "" {
		var feed dto.HomeFeedDTO
		if err = json.Unmarshal([]byte(cached), &feed); err == nil {
			return &feed, nil
		}
		log.WarnContext(ctx, "invalid home feed cache, rebuilding", "err", err)
	}

	latest, err := s.contentRepo.Find(ctx, repository.ContentQuery{
		ExcludeCategories: s.excludedCategories,
		Limit:             consts.HomeFeedLatestSize,
	})
	if err != nil {
		return nil, err
	}

	podcasts, err := s.contentRepo.Find(ctx, repository.ContentQuery{
		IncludeCategories: s.podcastCategories,
		Limit:             consts.HomeFeedPodcastSize,
	})
	if err != nil {
		return nil, err
	}

	refs, err := s.populate(ctx, append(append([]*model.Content{}, latest...), podcasts...))
	if err != nil {
		return nil, err
	}

	feed := &dto.HomeFeedDTO{
		FiveLatestContents: toContentDTOs(latest, refs),
		PodCasts:           toContentDTOs(podcasts, refs),
	}

	if data, err := json.Marshal(feed); err == nil {
		if err = redis.SetWithExpiration(ctx, consts.HomeFeedCacheKey, string(data), s.homeCacheTTL); err != nil {
			log.WarnContext(ctx, "failed to cache home feed", "err", err)
		}
	}

	return feed, nil
}

// populate 批量解析列表中出现的分类与子分类引用
func (s *listingServiceImpl) populate(ctx context.Context, contents []*model.Content) (map[primitive.ObjectID]*model.CategoryRef, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, content := range contents {
		for _, id := range []primitive.ObjectID{content.CategoryAndSubCategory.Category, content.CategoryAndSubCategory.Subcategory} {
			if id.IsZero() {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return s.categoryRepo.FindRefsByIDs(ctx, ids)
}

func parseCategoryIDs(raw []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			log.Warn("invalid category id in feed config, skipped", "id", r)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
