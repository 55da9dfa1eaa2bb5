package controllers

import (
	"errors"
	"log"
	"strconv"
	"time"
	"wellness/backend/config"
	"wellness/backend/models"
	"wellness/backend/services"
	"wellness/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HabitController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewHabitController(db *gorm.DB, cfg *config.Config) *HabitController {
	return &HabitController{DB: db, Cfg: cfg}
}

// findOwnedHabit loads a habit only if it belongs to the caller. A
// habit owned by someone else is reported the same way as a missing
// one.
func (hc *HabitController) findOwnedHabit(userID uint, habitID int) (*models.Habit, error) {
	var habit models.Habit
	if err := hc.DB.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &habit, nil
}

func (hc *HabitController) GetHabits(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var habits []models.Habit
	hc.DB.Where("user_id = ?", userID).Order("id").Find(&habits)

	return utils.Success(c, fiber.StatusOK, habits)
}

func (hc *HabitController) CreateHabit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type HabitInput struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Target      int    `json:"target"`
	}

	var input HabitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name == "" {
		return utils.ValidationError(c, map[string]string{"name": "required"})
	}
	if input.Target < 1 {
		input.Target = 1
	}

	habit := models.Habit{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Target:      input.Target,
	}
	if err := hc.DB.Create(&habit).Error; err != nil {
		return utils.InternalServerError(c, "Could not create habit")
	}

	return utils.Success(c, fiber.StatusCreated, habit)
}

func (hc *HabitController) GetHabitDetails(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid habit ID")
	}

	habit, err := hc.findOwnedHabit(userID, habitID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Habit not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// Последние 30 записей для карточки привычки
	var entries []models.HabitEntry
	hc.DB.Where("habit_id = ?", habit.ID).Order("day DESC").Limit(30).Find(&entries)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"habit":   habit,
		"entries": entries,
	})
}

func (hc *HabitController) UpdateHabit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid habit ID")
	}

	habit, err := hc.findOwnedHabit(userID, habitID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Habit not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	type HabitUpdate struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Target      *int    `json:"target"`
	}

	var input HabitUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name != nil {
		habit.Name = *input.Name
	}
	if input.Description != nil {
		habit.Description = *input.Description
	}
	if input.Category != nil {
		habit.Category = *input.Category
	}
	if input.Target != nil {
		if *input.Target < 1 {
			return utils.ValidationError(c, map[string]string{"target": "must be at least 1"})
		}
		habit.Target = *input.Target
	}

	if err := hc.DB.Save(habit).Error; err != nil {
		return utils.InternalServerError(c, "Could not update habit")
	}

	return utils.Success(c, fiber.StatusOK, habit)
}

func (hc *HabitController) DeleteHabit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid habit ID")
	}

	habit, err := hc.findOwnedHabit(userID, habitID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Habit not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// Записи удаляются вместе с привычкой
	hc.DB.Where("habit_id = ?", habit.ID).Delete(&models.HabitEntry{})
	if err := hc.DB.Delete(habit).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete habit")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": habit.ID})
}

// LogEntry godoc
// @Summary Log today's habit entry
// @Description Upserts the single entry for (habit, day) and updates cached streak stats on completion
// @Tags habits
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /habits/{id}/log [post]
func (hc *HabitController) LogEntry(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid habit ID")
	}

	habit, err := hc.findOwnedHabit(userID, habitID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Habit not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	type LogInput struct {
		Day       string  `json:"day"` // YYYY-MM-DD, defaults to today
		Completed *bool   `json:"completed"`
		Value     *int    `json:"value"`
		Notes     *string `json:"notes"`
	}

	var input LogInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	now := time.Now().UTC()
	day := now
	if input.Day != "" {
		day, err = time.Parse("2006-01-02", input.Day)
		if err != nil {
			return utils.BadRequest(c, "Invalid day format. Use YYYY-MM-DD")
		}
	}

	patch := services.HabitEntryPatch{
		Completed: input.Completed,
		Value:     input.Value,
		Notes:     input.Notes,
	}
	entry, err := services.UpsertDailyHabitEntry(hc.DB, userID, habit.ID, day, patch)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return utils.ValidationError(c, map[string]string{verr.Field: verr.Message})
		}
		return utils.InternalServerError(c, "Could not log entry")
	}

	// Статистика обновляется после коммита записи; при сбое она может
	// слегка отстать, но никогда не применяется дважды за день.
	if input.Completed != nil && *input.Completed {
		if err := services.ApplyCompletion(hc.DB, habit, day); err != nil {
			log.Printf("streak update failed for habit %d: %v", habit.ID, err)
		} else if err := services.CheckHabitAchievements(hc.DB, habit, now); err != nil {
			log.Printf("achievement check failed for user %d: %v", userID, err)
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"entry": entry,
		"stats": fiber.Map{
			"total_completions": habit.TotalCompletions,
			"current_streak":    habit.CurrentStreak,
			"longest_streak":    habit.LongestStreak,
			"last_completed":    habit.LastCompleted,
		},
	})
}

func (hc *HabitController) GetEntries(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, hc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid habit ID")
	}

	if _, err := hc.findOwnedHabit(userID, habitID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Habit not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	_, days := services.WindowDays(c.Query("period"))
	cutoff := services.StartOfDay(time.Now().UTC()).AddDate(0, 0, -days)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size", "31"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 31
	}

	query := hc.DB.Model(&models.HabitEntry{}).
		Where("habit_id = ? AND day >= ?", habitID, cutoff)

	var total int64
	query.Count(&total)

	var entries []models.HabitEntry
	query.Order("day DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&entries)

	return utils.Paginate(c, entries, total, page, pageSize)
}
