package api

import "Meridian/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ContentHandler *handler.ContentHandler
	ListingHandler *handler.ListingHandler
}
