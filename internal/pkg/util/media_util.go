package util

import (
	"fmt"
	"io"
	"net/http"
)

// GetSafeContentType 基于文件头嗅探真实的 MIME 类型, 不信任客户端声明
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file header: %w", err)
	}

	// 嗅探后重置读取位置, 后续上传需要完整内容
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}

	return http.DetectContentType(buf[:n]), nil
}
