// Copyright 2025 Alibaba Group Holding Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devsync/syncd/pkg/log"
	"github.com/devsync/syncd/pkg/web/controller"
	"github.com/devsync/syncd/pkg/web/model"
)

// NewRouter builds a Gin engine with all syncd routes.
func NewRouter(accessToken, corsOrigin string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logMiddleware(), corsMiddleware(corsOrigin), accessTokenMiddleware(accessToken))

	r.GET("/ping", controller.PingHandler)

	api := r.Group("/api")
	{
		api.POST("/scan", withScan(func(c *controller.ScanController) { c.Scan() }))
		api.POST("/transfer", withTransfer(func(c *controller.TransferController) { c.Transfer() }))
		api.POST("/transfer/stream", withTransfer(func(c *controller.TransferController) { c.TransferStream() }))
		api.POST("/plan", withPlan(func(c *controller.PlanController) { c.Plan() }))
		api.GET("/plan/preview", withPlan(func(c *controller.PlanController) { c.Preview() }))
		api.GET("/transfers", withHistory(func(c *controller.HistoryController) { c.ListTransfers() }))
	}

	sessions := api.Group("/sessions")
	{
		sessions.POST("", withSession(func(c *controller.SessionController) { c.CreateSession() }))
		sessions.GET("/:sessionId", withSession(func(c *controller.SessionController) { c.GetSession() }))
		sessions.DELETE("/:sessionId", withSession(func(c *controller.SessionController) { c.DeleteSession() }))
		sessions.POST("/:sessionId/scan", withSession(func(c *controller.SessionController) { c.Scan() }))
		sessions.GET("/:sessionId/tree", withSession(func(c *controller.SessionController) { c.GetTree() }))
		sessions.POST("/:sessionId/toggle", withSession(func(c *controller.SessionController) { c.ToggleFile() }))
		sessions.POST("/:sessionId/toggle-subtree", withSession(func(c *controller.SessionController) { c.ToggleSubtree() }))
		sessions.GET("/:sessionId/selection", withSession(func(c *controller.SessionController) { c.GetSelection() }))
		sessions.DELETE("/:sessionId/selection", withSession(func(c *controller.SessionController) { c.ClearSelection() }))
		sessions.POST("/:sessionId/selection/prune", withSession(func(c *controller.SessionController) { c.PruneSelection() }))
		sessions.POST("/:sessionId/transfer", withSession(func(c *controller.SessionController) { c.Transfer() }))
		sessions.POST("/:sessionId/transfer/stream", withSession(func(c *controller.SessionController) { c.TransferStream() }))
	}

	metric := r.Group("/metrics")
	{
		metric.GET("", withMetric(func(c *controller.MetricController) { c.GetMetrics() }))
		metric.GET("/watch", withMetric(func(c *controller.MetricController) { c.WatchMetrics() }))
	}

	return r
}

func withScan(fn func(*controller.ScanController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewScanController(ctx))
	}
}

func withTransfer(fn func(*controller.TransferController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewTransferController(ctx))
	}
}

func withPlan(fn func(*controller.PlanController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewPlanController(ctx))
	}
}

func withHistory(fn func(*controller.HistoryController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewHistoryController(ctx))
	}
}

func withSession(fn func(*controller.SessionController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewSessionController(ctx))
	}
}

func withMetric(fn func(*controller.MetricController)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		fn(controller.NewMetricController(ctx))
	}
}

// corsMiddleware admits a single browser origin. Preflight requests end here.
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if origin == "" {
			ctx.Next()
			return
		}

		header := ctx.Writer.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type, "+model.ApiAccessTokenHeader)

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusOK)
			return
		}
		ctx.Next()
	}
}

func accessTokenMiddleware(token string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token == "" || ctx.Request.URL.Path == "/ping" {
			ctx.Next()
			return
		}

		requestedToken := ctx.GetHeader(model.ApiAccessTokenHeader)
		if requestedToken == "" || requestedToken != token {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Code:    model.ErrorCodeUnauthorized,
				Message: "Unauthorized: invalid or missing header " + model.ApiAccessTokenHeader,
			})
			return
		}

		ctx.Next()
	}
}

func logMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		log.Info("Requested: %v - %v", ctx.Request.Method, ctx.Request.URL.String())
		ctx.Next()
	}
}
