package redisx

import "time"

const (
	// Tablero del día: dashboard:stats:{YYYY-MM-DD} -> JSON de DashboardStatsResponse
	KeyDashboardStats = "dashboard:stats:%s"
)

var TTLDashboardStats = 30 * time.Second
