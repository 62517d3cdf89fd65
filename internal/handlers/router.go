package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes навешивает все маршруты: публичная часть бронирования
// и закрытая админская группа.
func RegisterRoutes(e *echo.Echo, bh *BookingHandler, ah *AdminHandler, auth *AuthHandler, jwtSecret string) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/ping", bh.Ping)
	e.POST("/book", bh.Book)
	e.GET("/booking/:id", bh.Get)
	e.GET("/receipt/:id", bh.Receipt)

	e.POST("/login", auth.Login)
	e.GET("/logout", auth.Logout)

	admin := e.Group("", JWTAuthMiddleware(jwtSecret))
	admin.GET("/api/bookings", ah.List)
	admin.GET("/export_csv", ah.ExportCSV)
	admin.POST("/confirm/:id", ah.Confirm)
	admin.POST("/reject/:id", ah.Reject)
	admin.POST("/delete/:id", ah.Delete)
}
