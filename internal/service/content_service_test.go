package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Meridian/internal/api/dto"
	"Meridian/internal/service"
)

func setupContentService() (service.ContentService, *fakeContentRepo, *fakeAssetStore) {
	repo := newFakeContentRepo()
	store := &fakeAssetStore{}
	mediaSvc := service.NewMediaService(store)
	return service.NewContentService(repo, mediaSvc), repo, store
}

func TestContentService_CreateContent_NoFiles(t *testing.T) {
	svc, repo, store := setupContentService()
	ctx := context.Background()

	created, err := svc.CreateContent(ctx, &dto.ContentCreateDTO{Title: "A"}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, created)

	// 返回落库后的文档: 服务端生成的 ID 与时间戳
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, "A", created.Title)
	assert.Empty(t, created.PrimaryImage)
	require.NotNil(t, created.GalleryImages)
	assert.Empty(t, created.GalleryImages)
	assert.Equal(t, 0, store.uploadCount())

	// 创建后立即可查
	found, err := svc.GetContent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "A", found.Title)

	id, err := primitive.ObjectIDFromHex(created.ID)
	require.NoError(t, err)
	require.NotNil(t, repo.stored(id))
}

func TestContentService_CreateContent_WithFiles(t *testing.T) {
	svc, _, store := setupContentService()
	ctx := context.Background()

	gallery := makePNGFiles(t, 2)
	primary := makePNGFiles(t, 1)[0]

	created, err := svc.CreateContent(ctx, &dto.ContentCreateDTO{Title: "with media"}, gallery, primary)
	require.NoError(t, err)

	require.Len(t, created.GalleryImages, 2)
	assert.NotEmpty(t, created.PrimaryImage)
	// 图集先传, 头图后传, 顺序与输入一致
	require.Equal(t, 3, store.uploadCount())
	assert.Equal(t, "https://media.test/content/"+store.uploads[0], created.GalleryImages[0])
	assert.Equal(t, "https://media.test/content/"+store.uploads[1], created.GalleryImages[1])
	assert.Equal(t, "https://media.test/content/"+store.uploads[2], created.PrimaryImage)
}

func TestContentService_CreateContent_GalleryLimit(t *testing.T) {
	svc, _, store := setupContentService()

	_, err := svc.CreateContent(context.Background(), &dto.ContentCreateDTO{}, makePNGFiles(t, 3), nil)
	assert.ErrorIs(t, err, service.ErrGalleryLimitExceeded)
	assert.Equal(t, 0, store.uploadCount())
}

func TestContentService_GetContent_NotFound(t *testing.T) {
	svc, _, _ := setupContentService()
	ctx := context.Background()

	_, err := svc.GetContent(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, service.ErrContentNotFound)

	_, err = svc.GetContent(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, service.ErrParamInvalid)
}

func TestContentService_UpdateContent_Noop(t *testing.T) {
	svc, repo, _ := setupContentService()
	ctx := context.Background()

	created, err := svc.CreateContent(ctx, &dto.ContentCreateDTO{Title: "unchanged"}, nil, nil)
	require.NoError(t, err)

	current, err := svc.UpdateContent(ctx, &dto.ContentUpdateDTO{ContentID: created.ID}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "unchanged", current.Title)
	// 空更新退化为读取, 不写库
	assert.Equal(t, 0, repo.updateCalls)
}

func TestContentService_UpdateContent_Fields(t *testing.T) {
	svc, _, _ := setupContentService()
	ctx := context.Background()

	created, err := svc.CreateContent(ctx, &dto.ContentCreateDTO{Title: "old", Description: "keep"}, nil, nil)
	require.NoError(t, err)

	title := "new"
	video := "https://video.test/v1"
	updated, err := svc.UpdateContent(ctx, &dto.ContentUpdateDTO{
		ContentID: created.ID,
		Title:     &title,
		Video:     &video,
	}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, video, updated.Video)
	// 未提供的字段不修改
	assert.Equal(t, "keep", updated.Description)
}

func TestContentService_UpdateContent_GallerySlot(t *testing.T) {
	svc, repo, store := setupContentService()
	ctx := context.Background()

	created, err := svc.CreateContent(ctx, &dto.ContentCreateDTO{Title: "g"}, makePNGFiles(t, 1), nil)
	require.NoError(t, err)
	require.Len(t, created.GalleryImages, 1)
	oldURL := created.GalleryImages[0]

	index := 0
	updated, err := svc.UpdateContent(ctx, &dto.ContentUpdateDTO{
		ContentID:         created.ID,
		GalleryImageIndex: &index,
	}, makePNGFiles(t, 1)[0], nil)
	require.NoError(t, err)

	// 替换后长度不变, 槽位指向新资产
	require.Len(t, updated.GalleryImages, 1)
	assert.NotEqual(t, oldURL, updated.GalleryImages[0])
	assert.Equal(t, "https://media.test/content/"+store.uploads[1], updated.GalleryImages[0])

	// 图集分支与字段分支各写库一次
	assert.Equal(t, 2, repo.updateCalls)
}

func TestContentService_UpdateContent_InvalidGalleryIndex(t *testing.T) {
	svc, repo, _ := setupContentService()
	ctx := context.Background()

	created, err := svc.CreateContent(ctx, &dto.ContentCreateDTO{Title: "g"}, makePNGFiles(t, 1), nil)
	require.NoError(t, err)

	index := 1
	_, err = svc.UpdateContent(ctx, &dto.ContentUpdateDTO{
		ContentID:         created.ID,
		GalleryImageIndex: &index,
	}, makePNGFiles(t, 1)[0], nil)
	assert.ErrorIs(t, err, service.ErrGalleryIndexInvalid)

	// 越界时已落库的图集保持原样
	id, _ := primitive.ObjectIDFromHex(created.ID)
	stored := repo.stored(id)
	require.NotNil(t, stored)
	assert.Equal(t, created.GalleryImages, stored.GalleryImages)
}

func TestContentService_UpdateContent_PrimaryOverwrite(t *testing.T) {
	svc, _, store := setupContentService()
	ctx := context.Background()

	created, err := svc.CreateContent(ctx, &dto.ContentCreateDTO{Title: "p"}, nil, makePNGFiles(t, 1)[0])
	require.NoError(t, err)
	oldPrimary := created.PrimaryImage

	updated, err := svc.UpdateContent(ctx, &dto.ContentUpdateDTO{ContentID: created.ID}, nil, makePNGFiles(t, 1)[0])
	require.NoError(t, err)

	assert.NotEqual(t, oldPrimary, updated.PrimaryImage)
	// 头图整体替换, 旧资产不删除
	assert.Equal(t, 0, store.removeCount())
}

func TestContentService_UpdateContent_NotFound(t *testing.T) {
	svc, _, _ := setupContentService()

	title := "x"
	_, err := svc.UpdateContent(context.Background(), &dto.ContentUpdateDTO{
		ContentID: primitive.NewObjectID().Hex(),
		Title:     &title,
	}, nil, nil)
	assert.ErrorIs(t, err, service.ErrContentNotFound)
}

func TestContentService_DeclineContent(t *testing.T) {
	svc, repo, store := setupContentService()
	ctx := context.Background()

	created, err := svc.CreateContent(ctx, &dto.ContentCreateDTO{Title: "doomed"}, makePNGFiles(t, 2), makePNGFiles(t, 1)[0])
	require.NoError(t, err)

	// 删除失败也不影响记录删除本身
	store.failRemove = true

	require.NoError(t, svc.DeclineContent(ctx, created.ID))

	// 头图 + 前两张图集 = 恰好 3 次删除尝试
	assert.Equal(t, 3, store.removeCount())

	id, _ := primitive.ObjectIDFromHex(created.ID)
	assert.Nil(t, repo.stored(id))

	_, err = svc.GetContent(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrContentNotFound)
}

func TestContentService_DeclineContent_NotFound(t *testing.T) {
	svc, _, _ := setupContentService()

	err := svc.DeclineContent(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, service.ErrContentNotFound)
}
