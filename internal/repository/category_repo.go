package repository

import (
	"Meridian/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryRepo 分类引用解析 (populate), 分类本身由独立子系统维护
type CategoryRepo interface {
	FindRefsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*model.CategoryRef, error)
}

type categoryRepoImpl struct {
	col *mongo.Collection
}

func NewCategoryRepo(db *mongo.Database) CategoryRepo {
	return &categoryRepoImpl{
		col: db.Collection("categories"),
	}
}

// FindRefsByIDs 批量解析分类引用为 {id, name} 投影, 未知 ID 直接缺席
func (s *categoryRepoImpl) FindRefsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*model.CategoryRef, error) {
	refs := make(map[primitive.ObjectID]*model.CategoryRef)
	if len(ids) == 0 {
		return refs, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1, "category_name": 1})
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*model.CategoryRef
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	for _, ref := range list {
		refs[ref.ID] = ref
	}
	return refs, nil
}
