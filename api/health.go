package api

import (
	"net/http"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	Messages      int     `json:"messages"`
	Subscribers   int     `json:"subscribers"`
	RSSBytes      uint64  `json:"rss_bytes"`
	CPUPercent    float64 `json:"cpu_percent"`
}

// HandleHealth reports liveness plus basic self stats. Process metrics
// are best effort; the endpoint never fails because of them.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Messages:      len(h.chat.History()),
		Subscribers:   h.chat.Subscribers(),
	}

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := p.MemoryInfo(); err == nil {
			resp.RSSBytes = mem.RSS
		}
		if cpu, err := p.CPUPercent(); err == nil {
			resp.CPUPercent = cpu
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}
