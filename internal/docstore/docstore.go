// File: internal/docstore/docstore.go
package docstore

import "context"

// Document 單一文件，Data 為 schemaless 欄位內容
type Document struct {
	ID   string
	Data map[string]any
}

// Collection 定義文件集合操作介面
// Query 的條件為等值比對且彼此 AND，空 map 等同 Scan
// 找不到文件時回傳 apperr.ErrNotFound
type Collection interface {
	Add(ctx context.Context, fields map[string]any) (string, error)
	Get(ctx context.Context, id string) (*Document, error)
	Query(ctx context.Context, eq map[string]any) ([]Document, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	Scan(ctx context.Context) ([]Document, error)
}

// Store 依名稱取得集合
type Store interface {
	Collection(name string) Collection
}
