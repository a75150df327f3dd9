package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxGalleryImages 图集容量上限
const MaxGalleryImages = 2

// Content 内容模型 (collection: contents)
type Content struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                  string             `bson:"title,omitempty" json:"title"`
	Description            string             `bson:"description,omitempty" json:"description"`
	Video                  string             `bson:"video,omitempty" json:"video"`                 // 视频链接 (可选)
	PrimaryImage           string             `bson:"primary_image,omitempty" json:"primaryImage"`  // 头图, 整体替换, 不做下标操作
	GalleryImages          []string           `bson:"gallery_images" json:"galleryImages"`          // 图集, 创建时最多 2 张
	CategoryAndSubCategory CategoryPair       `bson:"category_and_sub_category" json:"categoryAndSubCategory"`
	CreatedAt              time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CategoryPair 分类引用对, 弱引用, 本服务不校验其存在性
type CategoryPair struct {
	Category    primitive.ObjectID `bson:"category,omitempty" json:"category"`
	Subcategory primitive.ObjectID `bson:"subcategory,omitempty" json:"subcategory"`
}

// CategoryRef 分类引用的展示投影 (collection: categories)
type CategoryRef struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	CategoryName string             `bson:"category_name" json:"categoryName"`
}
