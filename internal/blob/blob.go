// File: internal/blob/blob.go
package blob

import (
	"context"
	"io"
)

// Storage 定義圖片物件儲存介面
// Upload 以產生的 key 儲存內容並回傳公開 URL
// Remove 依先前回傳的 URL 刪除物件

type Storage interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

type FakeStorage struct {
	UploadFn func(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	RemoveFn func(ctx context.Context, url string) error
}

// Upload 執行 Fake 設定或 panic
func (f *FakeStorage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if f.UploadFn != nil {
		return f.UploadFn(ctx, filename, contentType, body)
	}
	panic("unexpected Upload")
}

// Remove 執行 Fake 設定或 no-op
func (f *FakeStorage) Remove(ctx context.Context, url string) error {
	if f.RemoveFn != nil {
		return f.RemoveFn(ctx, url)
	}
	return nil
}
