package service

import (
	"time"

	"github.com/MarcosLesca/dashboard-api/config"
	"github.com/MarcosLesca/dashboard-api/logger"
	"github.com/MarcosLesca/dashboard-api/web/middleware"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

var startTime = time.Now()

// Status is a point-in-time snapshot of the host and the process.
type Status struct {
	Cpu float64 `json:"cpu"`
	Mem struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Uptime    uint64 `json:"uptime"`
	AppUptime uint64 `json:"app_uptime"`
	Requests  int64  `json:"requests"`
	Version   string `json:"version"`
}

// ServerService reports host metrics for the status endpoint.
type ServerService struct{}

// GetStatus collects cpu, memory and uptime readings. Individual probe
// failures are logged and leave the corresponding field zeroed.
func (s *ServerService) GetStatus() *Status {
	status := &Status{
		AppUptime: uint64(time.Since(startTime).Seconds()),
		Requests:  middleware.RequestCount(),
		Version:   config.GetVersion(),
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	return status
}
