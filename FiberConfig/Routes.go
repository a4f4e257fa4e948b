package FiberConfig

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"Sanitrack/Controllers"
	"Sanitrack/Engine"
	"Sanitrack/Models"
	"Sanitrack/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	engine := Engine.NewTaskEngine(db, &Engine.GormAuditRecorder{DB: db})

	// Initialize handlers
	taskController := Controllers.NewTaskController(db, engine)
	photoController := Controllers.NewPhotoController(db, engine)
	areaController := Controllers.NewAreaController(db)
	employeeController := Controllers.NewEmployeeController(db)
	materialController := Controllers.NewMaterialController(db)
	reportController := Controllers.NewReportController(db)
	auditController := Controllers.NewAuditController(db)

	// API group
	api := app.Group("/api")

	// Task routes. Report before :id so the route matcher picks it up.
	tasks := api.Group("/tasks", middleware.Verify(1))
	tasks.Get("/report", middleware.Verify(2), reportController.TasksReport)
	tasks.Get("/", taskController.GetTasks)
	tasks.Post("/", middleware.Verify(2), taskController.CreateTask)
	tasks.Get("/:id", taskController.GetTask)
	tasks.Put("/:id", middleware.Verify(2), taskController.UpdateTask)
	tasks.Delete("/:id", middleware.Verify(2), taskController.DeleteTask)

	// Lifecycle transitions
	tasks.Post("/:id/start", taskController.StartTask)
	tasks.Post("/:id/request-review", taskController.RequestReview)
	tasks.Post("/:id/approve", middleware.Verify(2), taskController.ApproveTask)
	tasks.Post("/:id/reject", middleware.Verify(2), taskController.RejectTask)

	// Photo ledger
	tasks.Get("/:id/photos", photoController.GetTaskPhotos)
	tasks.Post("/:id/photos", photoController.UploadPhoto)
	tasks.Post("/:id/photos/register", photoController.RegisterPhoto)

	// Compliance trail
	tasks.Get("/:id/audit", middleware.Verify(2), auditController.GetTaskAudit)

	// Area routes
	areas := api.Group("/areas", middleware.Verify(1))
	areas.Get("/", areaController.GetAreas)
	areas.Post("/", middleware.Verify(2), areaController.CreateArea)
	areas.Get("/:id", areaController.GetArea)
	areas.Put("/:id", middleware.Verify(2), areaController.UpdateArea)
	areas.Delete("/:id", middleware.Verify(2), areaController.DeleteArea)

	// Employee routes
	employees := api.Group("/employees", middleware.Verify(2))
	employees.Get("/", employeeController.GetEmployees)
	employees.Post("/", employeeController.CreateEmployee)
	employees.Get("/:id", employeeController.GetEmployee)
	employees.Put("/:id", employeeController.UpdateEmployee)
	employees.Delete("/:id", employeeController.DeleteEmployee)

	// Material routes
	materials := api.Group("/materials", middleware.Verify(1))
	materials.Get("/", materialController.GetMaterials)
	materials.Post("/", middleware.Verify(2), materialController.CreateMaterial)
	materials.Get("/:id", materialController.GetMaterial)
	materials.Put("/:id", middleware.Verify(2), materialController.UpdateMaterial)
	materials.Delete("/:id", middleware.Verify(2), materialController.DeleteMaterial)

	// Auth
	app.Post("/api/RegisterUser", middleware.Verify(4), Controllers.RegisterUser)
	app.Post("/api/Login", Controllers.Login)
	app.Post("/api/Logout", Controllers.Logout)
	app.Get("/api/User", middleware.Verify(1), Controllers.CurrentUser)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Static("/TaskPhotos", "./TaskPhotos", fiber.Static{Compress: true, CacheDuration: time.Second * 10})

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
