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

package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/devsync/syncd/pkg/web/model"
)

const watchInterval = time.Second

// MetricController reports host usage next to scan and transfer counters.
type MetricController struct {
	*basicController
}

func NewMetricController(ctx *gin.Context) *MetricController {
	return &MetricController{basicController: newBasicController(ctx)}
}

// GetMetrics returns the current metrics.
func (c *MetricController) GetMetrics() {
	metrics, err := c.readMetrics()
	if err != nil {
		c.RespondError(
			http.StatusInternalServerError,
			model.ErrorCodeRuntimeError,
			fmt.Sprintf("error reading runtime metrics. %v", err),
		)
		return
	}

	c.RespondSuccess(metrics)
}

// WatchMetrics streams one metrics frame per interval until the client goes
// away. Read failures are sent as {"error": ...} frames.
func (c *MetricController) WatchMetrics() {
	c.setupSSEResponse()

	wait.Until(func() {
		var frame []byte
		metrics, err := c.readMetrics()
		if err != nil {
			frame, _ = json.Marshal(map[string]string{"error": err.Error()}) //nolint:errchkjson
		} else {
			frame, _ = json.Marshal(metrics) //nolint:errchkjson
		}
		c.writeFrame("WatchMetrics", frame, false)
	}, watchInterval, c.ctx.Request.Context().Done())
}

func (c *MetricController) readMetrics() (*model.Metrics, error) {
	metric := model.NewMetrics()
	readServiceMetrics(metric)
	if err := readHostMetrics(metric); err != nil {
		return nil, err
	}
	return metric, nil
}

// readServiceMetrics is a no-op before InitServices.
func readServiceMetrics(metric *model.Metrics) {
	if counters != nil {
		metric.Service = counters.Snapshot()
	}
	if sessions != nil {
		metric.ActiveSessions = sessions.Len()
	}
}

func readHostMetrics(metric *model.Metrics) error {
	metric.CpuCount = float64(runtime.GOMAXPROCS(-1))
	cpuPercent, err := cpu.Percent(time.Second, false)
	if err != nil {
		return fmt.Errorf("failed to get CPU percent: %w", err)
	}
	if len(cpuPercent) > 0 {
		metric.CpuUsedPct = cpuPercent[0]
	}

	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Errorf("failed to get memory info: %w", err)
	}
	metric.MemTotalMiB = float64(vmStat.Total) / 1024 / 1024
	metric.MemUsedMiB = float64(vmStat.Used) / 1024 / 1024
	return nil
}
