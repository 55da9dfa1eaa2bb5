package tests

import (
	"fmt"
	"testing"
	"wellness/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func createFriendUser(t *testing.T, username string) models.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	assert.NoError(t, db.Create(&user).Error)
	return user
}

func TestAddFriendSymmetric(t *testing.T) {
	friend := createFriendUser(t, "buddy")

	resp, result := doJSON(t, "POST", "/api/friends", map[string]string{
		"friend_code": friend.FriendCode,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "buddy", data(result)["friend"].(map[string]interface{})["username"])
	assert.NotContains(t, data(result), "warning")

	// Обе стороны связи на месте
	var forward, backward int64
	db.Model(&models.Friendship{}).Where("user_id = ? AND friend_id = ?", testUser.ID, friend.ID).Count(&forward)
	db.Model(&models.Friendship{}).Where("user_id = ? AND friend_id = ?", friend.ID, testUser.ID).Count(&backward)
	assert.Equal(t, int64(1), forward)
	assert.Equal(t, int64(1), backward)

	// Повторное добавление идемпотентно
	resp, _ = doJSON(t, "POST", "/api/friends", map[string]string{
		"friend_code": friend.FriendCode,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	db.Model(&models.Friendship{}).Where("user_id = ? AND friend_id = ?", testUser.ID, friend.ID).Count(&forward)
	assert.Equal(t, int64(1), forward)
}

func TestAddFriendErrors(t *testing.T) {
	resp, _ := doJSON(t, "POST", "/api/friends", map[string]string{
		"friend_code": "no-such-code",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, "POST", "/api/friends", map[string]string{
		"friend_code": testUser.FriendCode,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetFriends(t *testing.T) {
	resp, result := doJSON(t, "GET", "/api/friends", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	friends := result["data"].([]interface{})
	assert.NotEmpty(t, friends)
}

func TestLeaderboard(t *testing.T) {
	rival := createFriendUser(t, "rival")
	doJSON(t, "POST", "/api/friends", map[string]string{"friend_code": rival.FriendCode})

	// У соперника серия длиннее
	db.Create(&models.Habit{UserID: rival.ID, Name: "Cold shower", CurrentStreak: 50, TotalCompletions: 120})

	resp, result := doJSON(t, "GET", "/api/friends/leaderboard", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	rows := result["data"].([]interface{})
	assert.GreaterOrEqual(t, len(rows), 2)

	topRow := rows[0].(map[string]interface{})
	assert.Equal(t, "rival", topRow["username"])
	assert.Equal(t, float64(50), topRow["best_streak"])

	// Сам пользователь тоже в таблице
	foundMe := false
	for _, r := range rows {
		if r.(map[string]interface{})["is_me"] == true {
			foundMe = true
		}
	}
	assert.True(t, foundMe)
}

func TestRemoveFriend(t *testing.T) {
	gone := createFriendUser(t, "goner")
	doJSON(t, "POST", "/api/friends", map[string]string{"friend_code": gone.FriendCode})

	resp, _ := doJSON(t, "DELETE", fmt.Sprintf("/api/friends/%d", gone.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var forward, backward int64
	db.Model(&models.Friendship{}).Where("user_id = ? AND friend_id = ?", testUser.ID, gone.ID).Count(&forward)
	db.Model(&models.Friendship{}).Where("user_id = ? AND friend_id = ?", gone.ID, testUser.ID).Count(&backward)
	assert.Equal(t, int64(0), forward)
	assert.Equal(t, int64(0), backward)

	resp, _ = doJSON(t, "DELETE", fmt.Sprintf("/api/friends/%d", gone.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
