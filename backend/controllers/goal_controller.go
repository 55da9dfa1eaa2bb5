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

type GoalController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewGoalController(db *gorm.DB, cfg *config.Config) *GoalController {
	return &GoalController{DB: db, Cfg: cfg}
}

func (gc *GoalController) findOwnedGoal(userID uint, goalID int, preload bool) (*models.Goal, error) {
	query := gc.DB.Where("id = ? AND user_id = ?", goalID, userID)
	if preload {
		query = query.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).Preload("ProgressLog", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		})
	}

	var goal models.Goal
	if err := query.First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (gc *GoalController) GetGoals(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var goals []models.Goal
	gc.DB.Where("user_id = ?", userID).Order("id").Find(&goals)

	now := time.Now().UTC()
	views := make([]models.GoalView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, services.GoalProgressView(goal, now))
	}

	return utils.Success(c, fiber.StatusOK, views)
}

func (gc *GoalController) CreateGoal(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type MilestoneInput struct {
		Title       string `json:"title"`
		TargetValue int    `json:"target_value"`
	}
	type GoalInput struct {
		Title       string           `json:"title"`
		Description string           `json:"description"`
		Category    string           `json:"category"`
		TargetValue int              `json:"target_value"`
		Unit        string           `json:"unit"`
		Deadline    string           `json:"deadline"` // YYYY-MM-DD
		Milestones  []MilestoneInput `json:"milestones"`
	}

	var input GoalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fieldErrors := map[string]string{}
	if input.Title == "" {
		fieldErrors["title"] = "required"
	}
	if input.TargetValue < 1 {
		fieldErrors["target_value"] = "must be at least 1"
	}
	deadline, err := time.Parse("2006-01-02", input.Deadline)
	if err != nil {
		fieldErrors["deadline"] = "must be a YYYY-MM-DD date"
	}
	if len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	goal := models.Goal{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		TargetValue: input.TargetValue,
		Unit:        input.Unit,
		Deadline:    deadline,
		Status:      models.GoalStatusActive,
	}
	for i, m := range input.Milestones {
		goal.Milestones = append(goal.Milestones, models.Milestone{
			Position:    i,
			Title:       m.Title,
			TargetValue: m.TargetValue,
		})
	}

	if err := gc.DB.Create(&goal).Error; err != nil {
		return utils.InternalServerError(c, "Could not create goal")
	}

	return utils.Success(c, fiber.StatusCreated, services.GoalProgressView(goal, time.Now().UTC()))
}

func (gc *GoalController) GetGoalDetails(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	goalID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	goal, err := gc.findOwnedGoal(userID, goalID, true)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Goal not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, services.GoalProgressView(*goal, time.Now().UTC()))
}

func (gc *GoalController) UpdateGoal(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	goalID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	goal, err := gc.findOwnedGoal(userID, goalID, false)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Goal not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	type GoalUpdate struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Unit        *string `json:"unit"`
		Deadline    *string `json:"deadline"`
		Status      *string `json:"status"`
	}

	var input GoalUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != nil {
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.Category != nil {
		goal.Category = *input.Category
	}
	if input.Unit != nil {
		goal.Unit = *input.Unit
	}
	if input.Deadline != nil {
		deadline, err := time.Parse("2006-01-02", *input.Deadline)
		if err != nil {
			return utils.ValidationError(c, map[string]string{"deadline": "must be a YYYY-MM-DD date"})
		}
		goal.Deadline = deadline
	}
	if input.Status != nil {
		if !models.ValidGoalStatus(*input.Status) {
			return utils.ValidationError(c, map[string]string{"status": "unknown status value"})
		}
		// Завершение цели происходит только через прогресс,
		// вручную его не выставить и не снять.
		if *input.Status == models.GoalStatusCompleted || goal.Status == models.GoalStatusCompleted {
			return utils.ValidationError(c, map[string]string{"status": "completed is set by progress only"})
		}
		goal.Status = *input.Status
	}

	if err := gc.DB.Save(goal).Error; err != nil {
		return utils.InternalServerError(c, "Could not update goal")
	}

	return utils.Success(c, fiber.StatusOK, services.GoalProgressView(*goal, time.Now().UTC()))
}

func (gc *GoalController) DeleteGoal(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	goalID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	goal, err := gc.findOwnedGoal(userID, goalID, false)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Goal not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	gc.DB.Where("goal_id = ?", goal.ID).Delete(&models.Milestone{})
	gc.DB.Where("goal_id = ?", goal.ID).Delete(&models.GoalProgress{})
	if err := gc.DB.Delete(goal).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete goal")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": goal.ID})
}

// AddProgress godoc
// @Summary Append goal progress
// @Description Adds a progress record, advances the counter and flips reached milestones
// @Tags goals
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /goals/{id}/progress [post]
func (gc *GoalController) AddProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	goalID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	goal, err := gc.findOwnedGoal(userID, goalID, true)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFound(c, "Goal not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	type ProgressInput struct {
		Value *int   `json:"value"`
		Notes string `json:"notes"`
	}

	var input ProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Value == nil {
		return utils.ValidationError(c, map[string]string{"value": "required"})
	}

	now := time.Now().UTC()
	wasCompleted := goal.Status == models.GoalStatusCompleted

	if err := services.ApplyProgress(gc.DB, goal, *input.Value, input.Notes, now); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return utils.ValidationError(c, map[string]string{verr.Field: verr.Message})
		}
		return utils.InternalServerError(c, "Could not update progress")
	}

	if !wasCompleted && goal.Status == models.GoalStatusCompleted {
		if err := services.GrantAchievement(gc.DB, userID, services.AchievementGoalCompleted,
			"Goal Getter", "Completed a goal", now); err != nil {
			log.Printf("achievement grant failed for user %d: %v", userID, err)
		}
	}

	return utils.Success(c, fiber.StatusOK, services.GoalProgressView(*goal, now))
}
