package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// upcomingView 即将到期的保养条目
type upcomingView struct {
	Equipment string  `json:"equipment"`
	Owner     string  `json:"owner"`
	Date      string  `json:"date"` // DD/MM/YYYY，沿用原系统的展示格式
	DaysLeft  int     `json:"daysLeft"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"` // danger/warning/success
}

// GetDashboard 首页汇总：总数与即将到期的保养
// GET /api/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	totalEquipments, err := h.store.CountEquipments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	totalJobs, err := h.store.CountJobs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	services, err := h.store.ListUpcomingServices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	today := time.Now().Truncate(24 * time.Hour)
	upcoming := make([]upcomingView, 0, len(services))
	totalUpcoming := 0
	overdue := 0

	for _, s := range services {
		daysLeft := int(s.NextService.Sub(today).Hours() / 24)

		// 30 天内到期计入提醒
		if daysLeft <= 30 {
			totalUpcoming++
		}
		if daysLeft < 0 {
			overdue++
		}

		status := "success"
		switch {
		case daysLeft < 0:
			status = "danger"
		case daysLeft < 7:
			status = "warning"
		}

		upcoming = append(upcoming, upcomingView{
			Equipment: s.Equipment,
			Owner:     s.Owner,
			Date:      s.NextService.Format("02/01/2006"),
			DaysLeft:  daysLeft,
			Amount:    s.LastJobAmount,
			Status:    status,
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DaysLeft < upcoming[j].DaysLeft
	})
	if len(upcoming) > 10 {
		upcoming = upcoming[:10]
	}

	c.JSON(http.StatusOK, gin.H{
		"totalEquipments":  totalEquipments,
		"totalJobs":        totalJobs,
		"totalUpcoming":    totalUpcoming,
		"overdueServices":  overdue,
		"upcomingServices": upcoming,
	})
}

// monthlySpend 月度支出条目
type monthlySpend struct {
	Month string  `json:"month"` // Jan 2026
	Total float64 `json:"total"`
}

// GetStatistics 统计视图：总量、排名与趋势
// GET /api/statistics
func (h *Handler) GetStatistics(c *gin.Context) {
	totalEquipments, err := h.store.CountEquipments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	totalJobs, err := h.store.CountJobs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	totalAmount, err := h.store.SumAllJobAmounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var avgAmount float64
	if totalJobs > 0 {
		avgAmount = totalAmount / float64(totalJobs)
	}

	topEquipments, err := h.store.ListTopEquipments(10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 近 12 个月的月度支出
	now := time.Now()
	months := make([]monthlySpend, 0, 12)
	for i := 11; i >= 0; i-- {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		last := first.AddDate(0, 1, -1)

		total, err := h.store.SumJobAmounts(first, last)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		months = append(months, monthlySpend{
			Month: first.Format("Jan 2006"),
			Total: total,
		})
	}

	brands, err := h.store.ListBrandDistribution()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalEquipments": totalEquipments,
		"totalJobs":       totalJobs,
		"totalAmount":     totalAmount,
		"averageAmount":   avgAmount,
		"topEquipments":   topEquipments,
		"monthlySpend":    months,
		"brands":          brands,
	})
}
