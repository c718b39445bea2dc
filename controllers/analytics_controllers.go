package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pedidopronto/delivery-app/services"
	"github.com/pedidopronto/delivery-app/utils"
)

type AnalyticsController struct {
	DB        *gorm.DB
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(db *gorm.DB, analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{DB: db, Analytics: analytics}
}

// GetDashboard -> aggregated numbers for the analytics dashboard.
// ?from=2006-01-02&to=2006-01-02 (inclusive); defaults to the last 7 days.
func (ac *AnalyticsController) GetDashboard(c *gin.Context) {
	period := services.LastDays(7, time.Now())

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid from date"))
			return
		}
		to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid to date"))
			return
		}
		if to.Before(from) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("to must not precede from"))
			return
		}
		period = services.Period{From: from, To: to.AddDate(0, 0, 1)}
	}

	report, err := ac.Analytics.Compute(period)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard analytics", report)
}
