// File: internal/model/report.go
package model

import "time"

// 通報狀態固定集合
const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// ValidStatus 回報 status 是否屬於固定集合
func ValidStatus(status string) bool {
	switch status {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Location 通報座標，統一使用 lat/lng 欄位
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Report struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Urgency     string    `json:"urgency"`
	Status      string    `json:"status"`
	Location    *Location `json:"location,omitempty"`
	Images      []string  `json:"images"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}
