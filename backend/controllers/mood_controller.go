package controllers

import (
	"errors"
	"time"
	"wellness/backend/config"
	"wellness/backend/models"
	"wellness/backend/services"
	"wellness/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MoodController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMoodController(db *gorm.DB, cfg *config.Config) *MoodController {
	return &MoodController{DB: db, Cfg: cfg}
}

// LogMood godoc
// @Summary Log today's mood
// @Description Upserts the single mood entry for (user, day)
// @Tags moods
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /moods [post]
func (mc *MoodController) LogMood(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type MoodInput struct {
		Day    string   `json:"day"` // YYYY-MM-DD, defaults to today
		Mood   *string  `json:"mood"`
		Energy *int     `json:"energy"`
		Stress *int     `json:"stress"`
		Sleep  *float64 `json:"sleep"`
		Notes  *string  `json:"notes"`
	}

	var input MoodInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	day := time.Now().UTC()
	if input.Day != "" {
		day, err = time.Parse("2006-01-02", input.Day)
		if err != nil {
			return utils.BadRequest(c, "Invalid day format. Use YYYY-MM-DD")
		}
	}

	patch := services.MoodEntryPatch{
		Mood:   input.Mood,
		Energy: input.Energy,
		Stress: input.Stress,
		Sleep:  input.Sleep,
		Notes:  input.Notes,
	}
	entry, err := services.UpsertDailyMoodEntry(mc.DB, userID, day, patch)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return utils.ValidationError(c, map[string]string{verr.Field: verr.Message})
		}
		return utils.InternalServerError(c, "Could not log mood")
	}

	return utils.Success(c, fiber.StatusOK, entry)
}

func (mc *MoodController) GetMoods(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	_, days := services.WindowDays(c.Query("period"))
	cutoff := services.StartOfDay(time.Now().UTC()).AddDate(0, 0, -days)

	var moods []models.MoodEntry
	mc.DB.Where("user_id = ? AND day >= ?", userID, cutoff).
		Order("day DESC").Find(&moods)

	return utils.Success(c, fiber.StatusOK, moods)
}
