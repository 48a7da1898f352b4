package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tutor-crm/backend/internal/controller/handlers"
	"github.com/tutor-crm/backend/internal/service"
)

// Handlers собирает все обработчики, которые нужны роутеру
type Handlers struct {
	Auth       *handlers.AuthHandler
	Student    *handlers.StudentHandler
	Category   *handlers.CategoryHandler
	Status     *handlers.StatusHandler
	Book       *handlers.BookHandler
	Lesson     *handlers.LessonHandler
	Calendar   *handlers.CalendarHandler
	Statistics *handlers.StatisticsHandler
}

// NewRouter настраивает gin со всеми маршрутами приложения.
// Всё под /api/v1 закрыто bearer-токеном.
// corsOrigins — список разрешённых origin'ов через запятую, "*" = все.
func NewRouter(h Handlers, auth *service.AuthService, corsOrigins string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(corsOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/login_check", h.Auth.Login)
	r.POST("/api/refresh", h.Auth.Refresh)
	r.POST("/api/register", h.Auth.Register)
	r.POST("/logout", h.Auth.Logout)

	v1 := r.Group("/api/v1", AuthRequired(auth))

	student := v1.Group("/student")
	student.GET("/get", h.Student.List)
	student.GET("/get/:id", h.Student.Get)
	student.POST("/create", h.Student.Create)
	student.PUT("/update/:id", h.Student.Update)
	student.DELETE("/delete/:id", h.Student.Delete)

	category := v1.Group("/category")
	category.GET("/get", h.Category.List)
	category.GET("/get/:id", h.Category.Get)
	category.POST("/create", h.Category.Create)
	category.PUT("/update/:id", h.Category.Update)
	category.DELETE("/delete/:id", h.Category.Delete)

	status := v1.Group("/status")
	status.GET("/get", h.Status.List)
	status.GET("/get/:id", h.Status.Get)
	status.POST("/create", h.Status.Create)
	status.PUT("/update/:id", h.Status.Update)
	status.DELETE("/delete/:id", h.Status.Delete)

	book := v1.Group("/book")
	book.GET("/get", h.Book.List)
	book.GET("/get/:id", h.Book.Get)
	book.POST("/create", h.Book.Create)
	book.PUT("/update/:id", h.Book.Update)
	book.DELETE("/delete/:id", h.Book.Delete)

	lesson := v1.Group("/lesson")
	lesson.GET("/get", h.Lesson.List)
	lesson.GET("/get/:id", h.Lesson.Get)
	lesson.POST("/create", h.Lesson.Create)
	lesson.PUT("/update/:id", h.Lesson.Update)
	lesson.DELETE("/delete/:id", h.Lesson.Delete)

	calendar := v1.Group("/calendar")
	calendar.GET("/", h.Calendar.Events)
	calendar.GET("/income", h.Calendar.Income)
	calendar.GET("/slot", h.Calendar.Slot)
	calendar.GET("/week.png", h.Calendar.WeekImage)

	v1.GET("/statistics/full", h.Statistics.Full)

	return r
}
