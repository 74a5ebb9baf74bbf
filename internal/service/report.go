// File: internal/service/report.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"civic-reports/internal/apperr"
	"civic-reports/internal/blob"
	"civic-reports/internal/cache"
	"civic-reports/internal/model"
	"civic-reports/internal/repository"
	"civic-reports/internal/worker"
)

// statsCacheKey 管理端彙總統計的快取鍵
const statsCacheKey = "reports:stats"

// statsCacheTTL 統計快取有效期間
const statsCacheTTL = 30 * time.Second

// SubmitInput 建立通報的必要欄位
type SubmitInput struct {
	Title       string
	Description string
	Category    string
	Urgency     string
	Lat         float64
	Lng         float64
}

// ImageFile 待上傳的附件，Body 由 handler 開啟並負責關閉
type ImageFile struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// MapPoint 地圖檢視的單筆資料
type MapPoint struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Urgency  string  `json:"urgency"`
	Status   string  `json:"status"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// ReportService 組合身份、儲存層、授權規則與圖片上傳實作各用例
type ReportService struct {
	reports *repository.Reports
	blobs   blob.Storage
	cache   cache.Cache
	pool    worker.Pool
}

func NewReportService(reports *repository.Reports, blobs blob.Storage, c cache.Cache, pool worker.Pool) *ReportService {
	return &ReportService{reports: reports, blobs: blobs, cache: c, pool: pool}
}

// Submit 建立通報
// 附件逐一上傳，任一失敗即中止，不寫入半完成的通報紀錄
// content type 非 image/* 的檔案直接略過
func (s *ReportService) Submit(ctx context.Context, caller *model.User, in SubmitInput, files []ImageFile) (string, error) {
	if err := validateSubmit(in); err != nil {
		return "", err
	}

	var urls []string
	for _, f := range files {
		if !strings.HasPrefix(f.ContentType, "image/") {
			continue
		}
		url, err := s.blobs.Upload(ctx, f.Filename, f.ContentType, f.Body)
		if err != nil {
			return "", fmt.Errorf("upload image %s: %w", f.Filename, err)
		}
		urls = append(urls, url)
	}

	report := &model.Report{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Urgency:     in.Urgency,
		Status:      model.StatusNotStarted,
		Location:    &model.Location{Lat: in.Lat, Lng: in.Lng},
		Images:      urls,
		UserID:      caller.ID,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.reports.Create(ctx, report)
	if err != nil {
		return "", err
	}
	s.invalidateStats(ctx)
	return id, nil
}

func validateSubmit(in SubmitInput) error {
	for field, v := range map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"category":    in.Category,
		"urgency":     in.Urgency,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: missing %s", apperr.ErrInvalidArgument, field)
		}
	}
	return nil
}

// Mine 回傳呼叫者自己的通報
func (s *ReportService) Mine(ctx context.Context, caller *model.User) ([]model.Report, error) {
	return s.reports.ListByUser(ctx, caller.ID)
}

// Detail 依 id 查看通報明細，依授權規則為公開操作
func (s *ReportService) Detail(ctx context.Context, id string) (*model.Report, error) {
	return s.reports.GetByID(ctx, id)
}

// Remove 刪除通報，非擁有者且非管理員回傳 ErrForbidden
// 附件物件與統計快取在背景清理
func (s *ReportService) Remove(ctx context.Context, caller *model.User, id string) error {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanDelete(caller, report) {
		return apperr.ErrForbidden
	}
	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}

	images := report.Images
	s.pool.Submit(func() {
		ctx := context.Background()
		for _, url := range images {
			_ = s.blobs.Remove(ctx, url)
		}
		s.invalidateStats(ctx)
	})
	return nil
}

// SetStatus 變更通報狀態，僅接受固定集合內的值
// 管理員權限由路由層 middleware 把關
func (s *ReportService) SetStatus(ctx context.Context, id, status string) error {
	if !model.ValidStatus(status) {
		return fmt.Errorf("%w: status %q", apperr.ErrInvalidArgument, status)
	}
	if err := s.reports.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// AdminAll 管理端完整列表
func (s *ReportService) AdminAll(ctx context.Context) ([]model.Report, error) {
	return s.reports.ListAll(ctx)
}

// AdminFilter 管理端等值過濾
func (s *ReportService) AdminFilter(ctx context.Context, f repository.ReportFilter) ([]model.Report, error) {
	return s.reports.Filter(ctx, f)
}

// AdminMap 地圖檢視，缺少可用座標的通報靜默略過
func (s *ReportService) AdminMap(ctx context.Context) ([]MapPoint, error) {
	reports, err := s.reports.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	points := make([]MapPoint, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		if r.Location == nil {
			continue
		}
		points = append(points, MapPoint{
			ID:       r.ID,
			Title:    r.Title,
			Category: r.Category,
			Urgency:  r.Urgency,
			Status:   r.Status,
			Lat:      r.Location.Lat,
			Lng:      r.Location.Lng,
		})
	}
	return points, nil
}

// AdminStats 彙總統計，結果以短 TTL 快取於 Redis
// 快取讀寫失敗時退回重新計算，不影響回應
func (s *ReportService) AdminStats(ctx context.Context) (*repository.ReportStats, error) {
	if cached, err := s.cache.Get(ctx, statsCacheKey).Result(); err == nil {
		var stats repository.ReportStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.reports.AggregateCounts(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(stats); err == nil {
		s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL)
	}
	return stats, nil
}

func (s *ReportService) invalidateStats(ctx context.Context) {
	s.cache.Del(ctx, statsCacheKey)
}
