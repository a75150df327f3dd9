package dto

// ContentDTO 内容详情
type ContentDTO struct {
	ID                     string          `json:"id"`
	Title                  string          `json:"title"`
	Description            string          `json:"description"`
	Video                  string          `json:"video"`
	PrimaryImage           string          `json:"primaryImage"`
	GalleryImages          []string        `json:"galleryImages"`
	CategoryAndSubCategory CategoryPairDTO `json:"categoryAndSubCategory"`
	CreatedAt              string          `json:"createdAt"`
	UpdatedAt              string          `json:"updatedAt"`
}

// CategoryRefDTO 分类引用, populate 后携带名称
type CategoryRefDTO struct {
	ID           string `json:"id"`
	CategoryName string `json:"categoryName,omitempty"`
}

// CategoryPairDTO 分类与子分类引用对
type CategoryPairDTO struct {
	Category    *CategoryRefDTO `json:"category,omitempty"`
	Subcategory *CategoryRefDTO `json:"subcategory,omitempty"`
}

// ContentCreateDTO 内容 - 新增 (multipart 表单字段)
type ContentCreateDTO struct {
	Title       string `form:"title" validate:"max=255"`
	Description string `form:"description" validate:"max=5000"`
	Video       string `form:"video" validate:"max=512"`
	Category    string `form:"category"`
	Subcategory string `form:"subcategory"`
}

// ContentUpdateDTO 内容 - 部分更新, 指针为 nil 表示该字段不修改
type ContentUpdateDTO struct {
	ContentID         string  `form:"contentId" binding:"required"`
	Title             *string `form:"title"`
	Description       *string `form:"description"`
	Video             *string `form:"video"`
	GalleryImageIndex *int    `form:"galleryImageIndex"`
}

// ContentListDTO 分页查询参数
type ContentListDTO struct {
	PageNumber int    `form:"pageNumber"`
	Limit      int    `form:"limit,default=10"`
	CategoryID string `form:"categoryId"`
}

// ContentCollectionDTO 全量列表结果
type ContentCollectionDTO struct {
	Content []*ContentDTO `json:"Content"`
	Count   int           `json:"count"`
}

// ContentPageDTO 分页列表结果
type ContentPageDTO struct {
	Content []*ContentDTO `json:"Content"`
	Count   int           `json:"count"`
	Limit   int           `json:"limit"`
}

// HomeFeedDTO 首页聚合流
type HomeFeedDTO struct {
	FiveLatestContents []*ContentDTO `json:"fiveLatestContents"`
	PodCasts           []*ContentDTO `json:"podCasts"`
}

// PendingAssetMeta 待确认资产的账本元数据
type PendingAssetMeta struct {
	MimeType  string `json:"mimeType"`
	CreatedAt int64  `json:"createdAt"`
}
