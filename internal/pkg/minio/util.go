package minio

import (
	"Meridian/internal/api/config"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Store 对象存储客户端封装, 实现 service.AssetStore
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Upload 上传文件并返回公共访问URL
func (s *Store) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return PublicURL(uploadInfo.Key), nil
}

// Remove 删除对象, objectName 为对象键
func (s *Store) Remove(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, Bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// ObjectKey 从公共URL还原对象键, 取最后一个路径分段
func (s *Store) ObjectKey(rawURL string) string {
	return ObjectKeyFromURL(rawURL)
}

// PublicURL 获取文件的公共访问URL
func PublicURL(objectName string) string {
	cfg := config.Cfg.MinIO

	protocol := "http"
	if cfg.InternalEndpoint == "" || cfg.InternalUseSSL {
		protocol = "https"
	}
	endpoint := cfg.ExternalEndpoint
	if endpoint == "" {
		endpoint = cfg.InternalEndpoint
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, Bucket, objectName)
}

// ObjectKeyFromURL 资产标识派生规则: URL 最后一个分隔符之后的分段
func ObjectKeyFromURL(rawURL string) string {
	if idx := strings.LastIndex(rawURL, "/"); idx >= 0 {
		return rawURL[idx+1:]
	}
	return rawURL
}
