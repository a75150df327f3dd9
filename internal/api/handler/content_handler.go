package handler

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/pkg/response"
	"Meridian/internal/service"
	"mime/multipart"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentSvc service.ContentService
}

func NewContentHandler(contentSvc service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

func (s *ContentHandler) GetContent(c *gin.Context) {
	contentID := c.Param("id")

	content, err := s.contentSvc.GetContent(c.Request.Context(), contentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "ContentId found successfully", content)
}

func (s *ContentHandler) CreateContent(c *gin.Context) {
	var req dto.ContentCreateDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	gallery, primary := extractFiles(c)

	content, err := s.contentSvc.CreateContent(c.Request.Context(), &req, gallery, primary)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "Content created successfully", content)
}

func (s *ContentHandler) UpdateContent(c *gin.Context) {
	var req dto.ContentUpdateDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	gallery, primary := extractFiles(c)

	// 图集槽位替换只取第一张图
	var galleryFile *multipart.FileHeader
	if len(gallery) > 0 {
		galleryFile = gallery[0]
	}

	content, err := s.contentSvc.UpdateContent(c.Request.Context(), &req, galleryFile, primary)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "Content status updated successfully", content)
}

func (s *ContentHandler) DeclineContent(c *gin.Context) {
	contentID := c.Param("id")

	if err := s.contentSvc.DeclineContent(c.Request.Context(), contentID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "Content deleted successfully", nil)
}

// extractFiles 从 multipart 表单取出图集与头图附件, 非 multipart 请求返回空
func extractFiles(c *gin.Context) ([]*multipart.FileHeader, *multipart.FileHeader) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	gallery := form.File["galleryImages"]

	var primary *multipart.FileHeader
	if files := form.File["primaryImage"]; len(files) > 0 {
		primary = files[0]
	}

	return gallery, primary
}
