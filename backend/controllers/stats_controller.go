package controllers

import (
	"time"
	"wellness/backend/config"
	"wellness/backend/models"
	"wellness/backend/services"
	"wellness/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewStatsController(db *gorm.DB, cfg *config.Config) *StatsController {
	return &StatsController{DB: db, Cfg: cfg}
}

// GetSummary godoc
// @Summary Get summary statistics
// @Description Rolls the caller's habits, moods and goals into window-scoped aggregates
// @Tags stats
// @Accept json
// @Produce json
// @Param period query string false "week, month or year" default(week)
// @Success 200 {object} models.SummaryStats
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /stats/summary [get]
func (sc *StatsController) GetSummary(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	now := time.Now().UTC()
	_, days := services.WindowDays(c.Query("period"))
	cutoff := services.StartOfDay(now).AddDate(0, 0, -days)

	var habits []models.Habit
	sc.DB.Where("user_id = ?", userID).Order("id").Find(&habits)

	var entries []models.HabitEntry
	sc.DB.Where("user_id = ? AND day >= ?", userID, cutoff).Find(&entries)

	var moods []models.MoodEntry
	sc.DB.Where("user_id = ? AND day >= ?", userID, cutoff).Find(&moods)

	var goals []models.Goal
	sc.DB.Where("user_id = ?", userID).Find(&goals)

	stats := services.Summarize(habits, entries, moods, goals, c.Query("period"), now)

	return utils.Success(c, fiber.StatusOK, stats)
}
