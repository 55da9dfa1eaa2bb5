package tests

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"
	"wellness/backend/models"
	"wellness/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestSummaryEmptyCollections(t *testing.T) {
	// Свежий пользователь без единой записи
	empty := createFriendUser(t, "emptystats")
	token, err := utils.GenerateJWTToken(empty.ID, cfg)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/stats/summary?period=month", nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	stats := result["data"].(map[string]interface{})

	assert.Equal(t, "month", stats["period"])
	assert.Equal(t, float64(30), stats["days"])
	assert.Equal(t, float64(0), stats["total_habits"])
	assert.Equal(t, float64(0), stats["moods_logged"])
	assert.Equal(t, float64(0), stats["avg_energy"])
	assert.Equal(t, float64(0), stats["habit_completion_rate"])
	assert.Empty(t, stats["mood_distribution"])
}

func TestSummaryUnknownPeriodFallsBackToWeek(t *testing.T) {
	resp, result := doJSON(t, "GET", "/api/stats/summary?period=decade", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats := data(result)
	assert.Equal(t, "week", stats["period"])
	assert.Equal(t, float64(7), stats["days"])
}

func TestSummaryAggregates(t *testing.T) {
	// Отдельный пользователь с собственными данными: тест не зависит
	// от порядка остальных тестов сьюта
	owner := createFriendUser(t, "statsowner")
	token, err := utils.GenerateJWTToken(owner.ID, cfg)
	assert.NoError(t, err)

	run := models.Habit{UserID: owner.ID, Name: "Run", Category: "fitness", CurrentStreak: 4}
	meditate := models.Habit{UserID: owner.ID, Name: "Meditate", Category: "mindfulness", CurrentStreak: 2}
	db.Create(&run)
	db.Create(&meditate)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	db.Create(&models.HabitEntry{HabitID: run.ID, UserID: owner.ID, Day: today, Completed: true})
	db.Create(&models.HabitEntry{HabitID: run.ID, UserID: owner.ID, Day: today.AddDate(0, 0, -1), Completed: true})
	db.Create(&models.HabitEntry{HabitID: meditate.ID, UserID: owner.ID, Day: today, Completed: false})

	db.Create(&models.MoodEntry{UserID: owner.ID, Day: today, Mood: "good", Energy: 8, Stress: 2})
	db.Create(&models.MoodEntry{UserID: owner.ID, Day: today.AddDate(0, 0, -1), Mood: "okay", Energy: 6, Stress: 4})

	db.Create(&models.Goal{UserID: owner.ID, Title: "Swim", TargetValue: 10, Status: "active", Deadline: today.AddDate(0, 1, 0)})

	req := httptest.NewRequest("GET", "/api/stats/summary?period=week", nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	stats := result["data"].(map[string]interface{})

	assert.Equal(t, float64(2), stats["total_habits"])
	assert.Equal(t, float64(3), stats["entries_logged"])
	assert.Equal(t, float64(2), stats["entries_completed"])
	assert.Equal(t, float64(67), stats["habit_completion_rate"])

	assert.Equal(t, float64(2), stats["moods_logged"])
	assert.Equal(t, float64(7), stats["avg_energy"])
	assert.Equal(t, float64(3), stats["avg_stress"])
	distribution := stats["mood_distribution"].(map[string]interface{})
	assert.Equal(t, float64(1), distribution["good"])
	assert.Equal(t, float64(1), distribution["okay"])

	assert.Equal(t, float64(1), stats["total_goals"])

	top := stats["top_habits"].([]interface{})
	assert.Len(t, top, 2)
	assert.Equal(t, "Run", top[0].(map[string]interface{})["name"])
}
