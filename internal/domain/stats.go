// File: internal/domain/stats.go
package domain

import "time"

// SessionStats aggregates session counts for the dashboard.
type SessionStats struct {
    Total                         int                  `json:"total"`
    ByState                       map[SessionState]int `json:"byState"`
    ActiveConversations           int                  `json:"activeConversations"`
    AverageBotResponseTimeMinutes float64              `json:"averageBotResponseTimeMinutes"`
}

// HandoffStats aggregates handoff counts and timing for the dashboard.
type HandoffStats struct {
    Total                        int                   `json:"total"`
    ByStatus                     map[HandoffStatus]int `json:"byStatus"`
    AverageWaitTimeMinutes       float64               `json:"averageWaitTimeMinutes"`
    AverageResolutionTimeMinutes float64               `json:"averageResolutionTimeMinutes"`
    CrisisRate                   float64               `json:"crisisRate"`
}

// DepartmentDistribution is one slice of the routing breakdown.
type DepartmentDistribution struct {
    DepartmentID   string  `json:"departmentId"`
    DepartmentName string  `json:"departmentName"`
    Count          int     `json:"count"`
    Percentage     float64 `json:"percentage"`
}

// DailyActivity is one day of session/handoff volume.
type DailyActivity struct {
    Date     string `json:"date"`
    Sessions int    `json:"sessions"`
    Handoffs int    `json:"handoffs"`
}

// DashboardStats is the full payload of the backend stats endpoint.
type DashboardStats struct {
    Sessions               SessionStats             `json:"sessions"`
    Handoffs               HandoffStats             `json:"handoffs"`
    DepartmentDistribution []DepartmentDistribution `json:"departmentDistribution"`
    DailyActivity          []DailyActivity          `json:"dailyActivity"`
    LastUpdated            time.Time                `json:"lastUpdated"`
}
