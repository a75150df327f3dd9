package repository

import (
	"Meridian/internal/model"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentQuery 内容查询条件, 零值表示无过滤
type ContentQuery struct {
	CategoryID        *primitive.ObjectID  // 匹配 category 或 subcategory
	ExcludeCategories []primitive.ObjectID // category 不在集合内
	IncludeCategories []primitive.ObjectID // category 在集合内
	Skip              int64
	Limit             int64
}

type ContentRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Content, error)
	Find(ctx context.Context, q ContentQuery) ([]*model.Content, error)
	Insert(ctx context.Context, content *model.Content) (*model.Content, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Content, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*model.Content, error)
}

type contentRepoImpl struct {
	col *mongo.Collection
}

func NewContentRepo(db *mongo.Database) ContentRepo {
	return &contentRepoImpl{
		col: db.Collection("contents"),
	}
}

// FindByID 根据 ID 获取内容, 不存在时返回 mongo.ErrNoDocuments
func (s *contentRepoImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Content, error) {
	var content model.Content
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

// Find 按条件查询, 恒按 _id 倒序 (最新在前)
func (s *contentRepoImpl) Find(ctx context.Context, q ContentQuery) ([]*model.Content, error) {
	filter := bson.M{}
	if q.CategoryID != nil {
		filter["$or"] = bson.A{
			bson.M{"category_and_sub_category.category": *q.CategoryID},
			bson.M{"category_and_sub_category.subcategory": *q.CategoryID},
		}
	}
	if len(q.ExcludeCategories) > 0 {
		filter["category_and_sub_category.category"] = bson.M{"$nin": q.ExcludeCategories}
	}
	if len(q.IncludeCategories) > 0 {
		filter["category_and_sub_category.category"] = bson.M{"$in": q.IncludeCategories}
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*model.Content
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Insert 插入新内容并回填服务端生成的 ID 与时间戳
func (s *contentRepoImpl) Insert(ctx context.Context, content *model.Content) (*model.Content, error) {
	now := time.Now()
	content.CreatedAt = now
	content.UpdatedAt = now
	if content.GalleryImages == nil {
		content.GalleryImages = []string{}
	}

	result, err := s.col.InsertOne(ctx, content)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		content.ID = oid
	}
	return content, nil
}

// UpdateByID 部分更新并返回更新后的文档, 不存在时返回 mongo.ErrNoDocuments
func (s *contentRepoImpl) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Content, error) {
	set["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Content
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteByID 删除并返回被删除的文档, 不存在时返回 mongo.ErrNoDocuments
func (s *contentRepoImpl) DeleteByID(ctx context.Context, id primitive.ObjectID) (*model.Content, error) {
	var deleted model.Content
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return nil, err
	}
	return &deleted, nil
}
