// File: internal/handler/ping.go
package handler

import (
	"errors"
	"net/http"

	"civic-reports/internal/cache"
	"civic-reports/internal/database"
	"civic-reports/internal/dto"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /ping [get]
func PingHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "database unhealthy"})
		}
		if err := rdb.Get(ctx, "ping").Err(); err != nil && !errors.Is(err, redis.Nil) {
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
