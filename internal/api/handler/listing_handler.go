package handler

import (
	"Meridian/internal/api/dto"
	"Meridian/internal/pkg/consts"
	"Meridian/internal/pkg/response"
	"Meridian/internal/service"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listingSvc service.ListingService
}

func NewListingHandler(listingSvc service.ListingService) *ListingHandler {
	return &ListingHandler{
		listingSvc: listingSvc,
	}
}

func (s *ListingHandler) GetAllContent(c *gin.Context) {
	result, err := s.listingSvc.GetAllContent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "Content details found successfully", result)
}

func (s *ListingHandler) GetCategoryContent(c *gin.Context) {
	var query dto.ContentListDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.listingSvc.GetCategoryContent(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Content details found successfully"
	if result.Limit == consts.CuratedLatestSize && query.PageNumber == 0 {
		message = "Latest 5 content posts found successfully"
	}
	response.Success(c, message, result)
}

func (s *ListingHandler) GetHomeContent(c *gin.Context) {
	feed, err := s.listingSvc.GetHomeContent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "posts found successfully", feed)
}
