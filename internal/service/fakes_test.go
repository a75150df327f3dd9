package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"Meridian/internal/model"
	"Meridian/internal/repository"
)

// pngBytes 最小 PNG 文件头, 足以被嗅探为 image/png
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

// makeFileHeaders 构造携带给定内容的 multipart 文件头
func makeFileHeaders(t *testing.T, contents ...[]byte) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i := range contents {
		fw, err := w.CreateFormFile("galleryImages", "image.png")
		require.NoError(t, err)
		_, err = fw.Write(contents[i])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["galleryImages"]
}

func makePNGFiles(t *testing.T, n int) []*multipart.FileHeader {
	t.Helper()
	contents := make([][]byte, n)
	for i := range contents {
		contents[i] = pngBytes
	}
	return makeFileHeaders(t, contents...)
}

// fakeAssetStore 内存资产存储
type fakeAssetStore struct {
	mu         sync.Mutex
	uploads    []string // 对象键, 按上传顺序
	removed    []string
	failUpload bool
	failRemove bool
}

func (f *fakeAssetStore) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return "", errors.New("upload transport failure")
	}
	if _, err := io.ReadAll(reader); err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, objectName)
	return "https://media.test/content/" + objectName, nil
}

func (f *fakeAssetStore) Remove(_ context.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, objectName)
	if f.failRemove {
		return errors.New("remove transport failure")
	}
	return nil
}

func (f *fakeAssetStore) ObjectKey(rawURL string) string {
	if idx := strings.LastIndex(rawURL, "/"); idx >= 0 {
		return rawURL[idx+1:]
	}
	return rawURL
}

func (f *fakeAssetStore) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

func (f *fakeAssetStore) removeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.removed)
}

// fakeContentRepo 内存内容仓储, 插入顺序即时间顺序, Find 恒最新在前
type fakeContentRepo struct {
	mu          sync.Mutex
	docs        []*model.Content
	updateCalls int
	insertErr   error
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{}
}

func (f *fakeContentRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, doc := range f.docs {
		if doc.ID == id {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeContentRepo) Find(_ context.Context, q repository.ContentQuery) ([]*model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*model.Content
	for i := len(f.docs) - 1; i >= 0; i-- {
		doc := f.docs[i]
		if !matchQuery(doc, q) {
			continue
		}
		matched = append(matched, doc)
	}

	if q.Skip > 0 {
		if q.Skip >= int64(len(matched)) {
			matched = nil
		} else {
			matched = matched[q.Skip:]
		}
	}
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}

	out := make([]*model.Content, 0, len(matched))
	for _, doc := range matched {
		cp := *doc
		out = append(out, &cp)
	}
	return out, nil
}

func matchQuery(doc *model.Content, q repository.ContentQuery) bool {
	pair := doc.CategoryAndSubCategory
	if q.CategoryID != nil && pair.Category != *q.CategoryID && pair.Subcategory != *q.CategoryID {
		return false
	}
	for _, id := range q.ExcludeCategories {
		if pair.Category == id {
			return false
		}
	}
	if len(q.IncludeCategories) > 0 {
		found := false
		for _, id := range q.IncludeCategories {
			if pair.Category == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeContentRepo) Insert(_ context.Context, content *model.Content) (*model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}

	now := time.Now()
	content.ID = primitive.NewObjectID()
	content.CreatedAt = now
	content.UpdatedAt = now
	if content.GalleryImages == nil {
		content.GalleryImages = []string{}
	}

	cp := *content
	f.docs = append(f.docs, &cp)
	return content, nil
}

func (f *fakeContentRepo) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (*model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++

	for _, doc := range f.docs {
		if doc.ID != id {
			continue
		}
		if v, ok := set["title"].(string); ok {
			doc.Title = v
		}
		if v, ok := set["description"].(string); ok {
			doc.Description = v
		}
		if v, ok := set["video"].(string); ok {
			doc.Video = v
		}
		if v, ok := set["primary_image"].(string); ok {
			doc.PrimaryImage = v
		}
		if v, ok := set["gallery_images"].([]string); ok {
			doc.GalleryImages = append([]string{}, v...)
		}
		doc.UpdatedAt = time.Now()

		cp := *doc
		return &cp, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeContentRepo) DeleteByID(_ context.Context, id primitive.ObjectID) (*model.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, doc := range f.docs {
		if doc.ID == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return doc, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeContentRepo) stored(id primitive.ObjectID) *model.Content {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, doc := range f.docs {
		if doc.ID == id {
			cp := *doc
			return &cp
		}
	}
	return nil
}

// fakeCategoryRepo 内存分类引用解析
type fakeCategoryRepo struct {
	refs map[primitive.ObjectID]*model.CategoryRef
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{refs: make(map[primitive.ObjectID]*model.CategoryRef)}
}

func (f *fakeCategoryRepo) add(name string) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.refs[id] = &model.CategoryRef{ID: id, CategoryName: name}
	return id
}

func (f *fakeCategoryRepo) FindRefsByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*model.CategoryRef, error) {
	out := make(map[primitive.ObjectID]*model.CategoryRef)
	for _, id := range ids {
		if ref, ok := f.refs[id]; ok {
			out[id] = ref
		}
	}
	return out, nil
}
