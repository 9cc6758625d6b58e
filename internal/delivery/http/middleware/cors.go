package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - middleware для фронтенда карты
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  "http://localhost:3000,http://localhost:5173",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Content-Type,Accept,X-Request-ID",
		ExposeHeaders: "X-Request-ID",
	})
}
