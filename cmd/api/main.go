package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	config "github.com/wunderfolk/studio_booking/configs"
	"github.com/wunderfolk/studio_booking/database"
	"github.com/wunderfolk/studio_booking/handlers"
	"github.com/wunderfolk/studio_booking/jobs"
	"github.com/wunderfolk/studio_booking/notifications"
	"github.com/wunderfolk/studio_booking/routes"
	"github.com/wunderfolk/studio_booking/services"
	"github.com/wunderfolk/studio_booking/store"
	"github.com/wunderfolk/studio_booking/websocket"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	schedule, err := config.LoadSchedule()
	if err != nil {
		log.Fatalf("🔥 Invalid schedule configuration: %v", err)
	}

	bookingStore := store.NewBookingStore(database.DB)
	leadStore := store.NewLeadStore(database.DB)
	calculator := services.NewAvailabilityCalculator(bookingStore, schedule)
	coordinator := services.NewReservationCoordinator(bookingStore, leadStore, schedule)

	bookingHandler := handlers.NewBookingHandler(coordinator, bookingStore, schedule)
	availabilityHandler := handlers.NewAvailabilityHandler(calculator)
	adminHandler := handlers.NewAdminHandler(bookingStore)

	c := cron.New()
	c.AddFunc("0 * * * *", jobs.SendMeetingReminders)
	go c.Start()
	log.Println("✅ Cron job for meeting reminders scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Studio Booking",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Europe/Berlin",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.BookingRoutes(app, bookingHandler, availabilityHandler)
	routes.AdminRoutes(app, adminHandler)
	routes.RealtimeRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
