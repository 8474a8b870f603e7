package main

import (
	"log"
	"time"

	"arena-app/config"
	"arena-app/database"
	authRoutes "arena-app/routers/authRoutes"
	roomRoutes "arena-app/routers/roomRoutes"
	teamRoutes "arena-app/routers/teamRoutes"
	tournamentRoutes "arena-app/routers/tournamentRoutes"
	walletRoutes "arena-app/routers/walletRoutes"
	"arena-app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Per-IP request limiter with expiry. Limits are per process; put a
	// shared store behind this when running multiple instances.
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	walletRoutes.SetupWalletRoutes(app)
	roomRoutes.SetupRoomRoutes(app)
	teamRoutes.SetupTeamRoutes(app)
	tournamentRoutes.SetupTournamentRoutes(app)

	utils.StartTournamentScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
