package service

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/model"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// toContentDTO 模型转 DTO, refs 为 populate 结果, 传 nil 时分类引用仅携带 ID
func toContentDTO(content *model.Content, refs map[primitive.ObjectID]*model.CategoryRef) *dto.ContentDTO {
	var out dto.ContentDTO
	_ = copier.Copy(&out, content)

	out.ID = content.ID.Hex()
	out.CreatedAt = content.CreatedAt.Format(time.RFC3339)
	out.UpdatedAt = content.UpdatedAt.Format(time.RFC3339)
	if out.GalleryImages == nil {
		out.GalleryImages = []string{}
	}
	out.CategoryAndSubCategory = dto.CategoryPairDTO{
		Category:    toCategoryRefDTO(content.CategoryAndSubCategory.Category, refs),
		Subcategory: toCategoryRefDTO(content.CategoryAndSubCategory.Subcategory, refs),
	}
	return &out
}

func toCategoryRefDTO(id primitive.ObjectID, refs map[primitive.ObjectID]*model.CategoryRef) *dto.CategoryRefDTO {
	if id.IsZero() {
		return nil
	}
	if ref, ok := refs[id]; ok {
		return &dto.CategoryRefDTO{ID: ref.ID.Hex(), CategoryName: ref.CategoryName}
	}
	return &dto.CategoryRefDTO{ID: id.Hex()}
}

func toContentDTOs(contents []*model.Content, refs map[primitive.ObjectID]*model.CategoryRef) []*dto.ContentDTO {
	out := make([]*dto.ContentDTO, 0, len(contents))
	for _, content := range contents {
		out = append(out, toContentDTO(content, refs))
	}
	return out
}
