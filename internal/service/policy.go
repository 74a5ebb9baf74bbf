// File: internal/service/policy.go
//
// 通報資源的授權規則：
//   - 刪除：擁有者或管理員
//   - 變更狀態：僅管理員
//   - 查看明細：公開（依來源產品決策保留）
package service

import "civic-reports/internal/model"

// CanDelete 擁有者或管理員可刪除通報
func CanDelete(caller *model.User, report *model.Report) bool {
	return caller.ID == report.UserID || caller.IsAdmin
}

// CanUpdateStatus 僅管理員可變更狀態
func CanUpdateStatus(caller *model.User, _ *model.Report) bool {
	return caller.IsAdmin
}

// CanReadDetail 依 id 查看明細為公開操作，caller 可為 nil
func CanReadDetail(_ *model.User, _ *model.Report) bool {
	return true
}
