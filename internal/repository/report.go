// File: internal/repository/report.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"civic-reports/internal/apperr"
	"civic-reports/internal/docstore"
	"civic-reports/internal/model"
)

const reportsCollection = "reports"

// 聚合統計中缺漏欄位歸入的桶名
const unknownBucket = "Unknown"

// ReportFilter 等值過濾條件，空字串表示不限制
type ReportFilter struct {
	Category string
	Urgency  string
	Status   string
}

// ReportStats 全集合掃描的彙總結果
type ReportStats struct {
	StatusSummary   map[string]int `json:"status_summary"`
	CategorySummary map[string]int `json:"category_summary"`
}

// Reports 通報儲存層
type Reports struct {
	col docstore.Collection
}

func NewReports(store docstore.Store) *Reports {
	return &Reports{col: store.Collection(reportsCollection)}
}

func (r *Reports) Create(ctx context.Context, report *model.Report) (string, error) {
	fields := map[string]any{
		"title":       report.Title,
		"description": report.Description,
		"category":    report.Category,
		"urgency":     report.Urgency,
		"status":      report.Status,
		"images":      report.Images,
		"user_id":     report.UserID,
		"created_at":  report.CreatedAt.UTC().Format(time.RFC3339),
	}
	if report.Location != nil {
		fields["location"] = map[string]any{"lat": report.Location.Lat, "lng": report.Location.Lng}
	}
	id, err := r.col.Add(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("CreateReport: %w", err)
	}
	return id, nil
}

func (r *Reports) GetByID(ctx context.Context, id string) (*model.Report, error) {
	doc, err := r.col.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetReportByID: %w", err)
	}
	return decodeReport(doc), nil
}

func (r *Reports) ListAll(ctx context.Context) ([]model.Report, error) {
	docs, err := r.col.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListAllReports: %w", err)
	}
	return decodeReports(docs), nil
}

func (r *Reports) ListByUser(ctx context.Context, userID string) ([]model.Report, error) {
	docs, err := r.col.Query(ctx, map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("ListReportsByUser: %w", err)
	}
	return decodeReports(docs), nil
}

func (r *Reports) Filter(ctx context.Context, f ReportFilter) ([]model.Report, error) {
	eq := map[string]any{}
	if f.Category != "" {
		eq["category"] = f.Category
	}
	if f.Urgency != "" {
		eq["urgency"] = f.Urgency
	}
	if f.Status != "" {
		eq["status"] = f.Status
	}
	docs, err := r.col.Query(ctx, eq)
	if err != nil {
		return nil, fmt.Errorf("FilterReports: %w", err)
	}
	return decodeReports(docs), nil
}

func (r *Reports) UpdateStatus(ctx context.Context, id, status string) error {
	if !model.ValidStatus(status) {
		return fmt.Errorf("%w: status %q", apperr.ErrInvalidArgument, status)
	}
	if err := r.col.Update(ctx, id, map[string]any{"status": status}); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("UpdateReportStatus: %w", err)
	}
	return nil
}

func (r *Reports) Delete(ctx context.Context, id string) error {
	if err := r.col.Delete(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("DeleteReport: %w", err)
	}
	return nil
}

// AggregateCounts 全集合掃描後依 status 與 category 計數
// 缺漏或空白欄位計入 Unknown，零筆資料回傳空 map
func (r *Reports) AggregateCounts(ctx context.Context) (*ReportStats, error) {
	docs, err := r.col.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("AggregateCounts: %w", err)
	}
	stats := &ReportStats{
		StatusSummary:   make(map[string]int),
		CategorySummary: make(map[string]int),
	}
	for i := range docs {
		stats.StatusSummary[bucket(docs[i].Data["status"])]++
		stats.CategorySummary[bucket(docs[i].Data["category"])]++
	}
	return stats, nil
}

func bucket(v any) string {
	s, _ := v.(string)
	if s == "" {
		return unknownBucket
	}
	return s
}

func decodeReports(docs []docstore.Document) []model.Report {
	out := make([]model.Report, 0, len(docs))
	for i := range docs {
		out = append(out, *decodeReport(&docs[i]))
	}
	return out
}

func decodeReport(doc *docstore.Document) *model.Report {
	rp := &model.Report{ID: doc.ID}
	rp.Title, _ = doc.Data["title"].(string)
	rp.Description, _ = doc.Data["description"].(string)
	rp.Category, _ = doc.Data["category"].(string)
	rp.Urgency, _ = doc.Data["urgency"].(string)
	rp.Status, _ = doc.Data["status"].(string)
	rp.UserID, _ = doc.Data["user_id"].(string)
	if raw, ok := doc.Data["created_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			rp.CreatedAt = t
		}
	}
	if imgs, ok := doc.Data["images"].([]any); ok {
		for _, v := range imgs {
			if s, ok := v.(string); ok {
				rp.Images = append(rp.Images, s)
			}
		}
	}
	rp.Location = decodeLocation(doc.Data)
	return rp
}

// decodeLocation 正規化歷史資料中並存的三種座標寫法：
// 巢狀 location{lat,lng}、巢狀 location{latitude,longitude}、頂層 lat/lng
func decodeLocation(data map[string]any) *model.Location {
	if loc, ok := data["location"].(map[string]any); ok {
		if lat, lng, ok := coords(loc, "lat", "lng"); ok {
			return &model.Location{Lat: lat, Lng: lng}
		}
		if lat, lng, ok := coords(loc, "latitude", "longitude"); ok {
			return &model.Location{Lat: lat, Lng: lng}
		}
	}
	if lat, lng, ok := coords(data, "lat", "lng"); ok {
		return &model.Location{Lat: lat, Lng: lng}
	}
	return nil
}

func coords(m map[string]any, latKey, lngKey string) (float64, float64, bool) {
	lat, ok1 := m[latKey].(float64)
	lng, ok2 := m[lngKey].(float64)
	return lat, lng, ok1 && ok2
}
