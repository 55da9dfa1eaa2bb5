package controllers

import (
	"errors"
	"log"
	"sort"
	"strconv"
	"wellness/backend/config"
	"wellness/backend/models"
	"wellness/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FriendController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewFriendController(db *gorm.DB, cfg *config.Config) *FriendController {
	return &FriendController{DB: db, Cfg: cfg}
}

func (fc *FriendController) GetFriends(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var friends []models.User
	fc.DB.Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Find(&friends)

	result := make([]fiber.Map, 0, len(friends))
	for _, friend := range friends {
		result = append(result, fiber.Map{
			"id":       friend.ID,
			"username": friend.Username,
			"bio":      friend.Bio,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// AddFriend creates both sides of the relationship. The link is
// symmetric: if only the first row lands, the relationship is reported
// with a consistency warning and left for manual repair.
func (fc *FriendController) AddFriend(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type FriendInput struct {
		FriendCode string `json:"friend_code"`
	}

	var input FriendInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.FriendCode == "" {
		return utils.ValidationError(c, map[string]string{"friend_code": "required"})
	}

	var friend models.User
	if err := fc.DB.Where("friend_code = ?", input.FriendCode).First(&friend).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "No user with that friend code")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if friend.ID == userID {
		return utils.BadRequest(c, "Cannot add yourself as a friend")
	}

	// Обе стороны пишутся идемпотентно: повторное добавление — no-op.
	forward := models.Friendship{UserID: userID, FriendID: friend.ID}
	if err := fc.DB.Where("user_id = ? AND friend_id = ?", userID, friend.ID).
		FirstOrCreate(&forward).Error; err != nil {
		return utils.InternalServerError(c, "Could not add friend")
	}

	warning := ""
	backward := models.Friendship{UserID: friend.ID, FriendID: userID}
	if err := fc.DB.Where("user_id = ? AND friend_id = ?", friend.ID, userID).
		FirstOrCreate(&backward).Error; err != nil {
		// Односторонняя связь: фиксируем, но не откатываем.
		warning = "friendship is one-sided, reverse link failed"
		log.Printf("consistency warning: friendship %d->%d created without reverse: %v",
			userID, friend.ID, err)
	}

	resp := fiber.Map{
		"friend": fiber.Map{
			"id":       friend.ID,
			"username": friend.Username,
		},
	}
	if warning != "" {
		resp["warning"] = warning
	}
	return utils.Success(c, fiber.StatusOK, resp)
}

func (fc *FriendController) RemoveFriend(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	friendID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid friend ID")
	}

	result := fc.DB.Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&models.Friendship{})
	if result.Error != nil {
		return utils.InternalServerError(c, "Could not remove friend")
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "Friend not found")
	}

	if err := fc.DB.Where("user_id = ? AND friend_id = ?", friendID, userID).
		Delete(&models.Friendship{}).Error; err != nil {
		log.Printf("consistency warning: friendship %d->%d removed without reverse: %v",
			userID, friendID, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"removed": friendID})
}

// GetLeaderboard ranks the caller and their friends by habit streaks.
// The score is the user's best current streak plus total completions;
// the whole list is already in memory, so this is a plain sort.
func (fc *FriendController) GetLeaderboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var friendIDs []uint
	fc.DB.Model(&models.Friendship{}).Where("user_id = ?", userID).
		Pluck("friend_id", &friendIDs)
	memberIDs := append(friendIDs, userID)

	var members []models.User
	fc.DB.Where("id IN ?", memberIDs).Find(&members)

	rows := make([]models.LeaderboardRow, 0, len(members))
	for _, member := range members {
		var habits []models.Habit
		fc.DB.Where("user_id = ?", member.ID).Find(&habits)

		best, total := 0, 0
		for _, h := range habits {
			if h.CurrentStreak > best {
				best = h.CurrentStreak
			}
			total += h.TotalCompletions
		}

		rows = append(rows, models.LeaderboardRow{
			UserID:           member.ID,
			Username:         member.Username,
			BestStreak:       best,
			TotalCompletions: total,
			Score:            best + total,
			IsMe:             member.ID == userID,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	return utils.Success(c, fiber.StatusOK, rows)
}
