package routes

import (
	"wellness/backend/config"
	"wellness/backend/controllers"
	"wellness/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Habit routes
	habitController := controllers.NewHabitController(db, cfg)
	habits := app.Group("/api/habits", authMiddleware)
	habits.Get("/", habitController.GetHabits)
	habits.Post("/", habitController.CreateHabit)
	habits.Get("/:id", habitController.GetHabitDetails)
	habits.Put("/:id", habitController.UpdateHabit)
	habits.Delete("/:id", habitController.DeleteHabit)
	habits.Post("/:id/log", habitController.LogEntry)
	habits.Get("/:id/entries", habitController.GetEntries)

	// Mood routes
	moodController := controllers.NewMoodController(db, cfg)
	app.Post("/api/moods", authMiddleware, moodController.LogMood)
	app.Get("/api/moods", authMiddleware, moodController.GetMoods)

	// Goal routes
	goalController := controllers.NewGoalController(db, cfg)
	goals := app.Group("/api/goals", authMiddleware)
	goals.Get("/", goalController.GetGoals)
	goals.Post("/", goalController.CreateGoal)
	goals.Get("/:id", goalController.GetGoalDetails)
	goals.Put("/:id", goalController.UpdateGoal)
	goals.Delete("/:id", goalController.DeleteGoal)
	goals.Post("/:id/progress", goalController.AddProgress)

	// Stats routes
	statsController := controllers.NewStatsController(db, cfg)
	app.Get("/api/stats/summary", authMiddleware, statsController.GetSummary)

	// Friend routes
	friendController := controllers.NewFriendController(db, cfg)
	friends := app.Group("/api/friends", authMiddleware)
	friends.Get("/", friendController.GetFriends)
	friends.Post("/", friendController.AddFriend)
	friends.Get("/leaderboard", friendController.GetLeaderboard)
	friends.Delete("/:id", friendController.RemoveFriend)
}
