package controllers

import (
	"net/http"

	"eservices-api/config"
	"eservices-api/workflow"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns per-module application counts grouped by status.
func GetDashboardStats(c *gin.Context) {
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}

	stats := gin.H{}
	for _, module := range workflow.Modules {
		var counts []statusCount
		if err := config.DB.Table(module.Table).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&counts).Error; err != nil {
			respondServiceError(c, err)
			return
		}

		byStatus := make(map[string]int64, len(counts))
		var total int64
		for _, row := range counts {
			byStatus[row.Status] = row.Count
			total += row.Count
		}
		stats[module.Name] = gin.H{"total": total, "by_status": byStatus}
	}

	c.JSON(http.StatusOK, gin.H{"modules": stats})
}
