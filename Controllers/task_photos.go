package Controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Sanitrack/Engine"
	"Sanitrack/Models"
)

const photoDir = "TaskPhotos"
const thumbWidth = 320

// PhotoController handles the proof-of-work photo ledger. Uploaded files land
// under ./TaskPhotos and are served statically; the engine only sees their
// URL and storage key.
type PhotoController struct {
	DB     *gorm.DB
	Engine *Engine.TaskEngine
}

// NewPhotoController creates a new PhotoController
func NewPhotoController(db *gorm.DB, engine *Engine.TaskEngine) *PhotoController {
	return &PhotoController{DB: db, Engine: engine}
}

// GetTaskPhotos lists the photo ledger for a task
func (c *PhotoController) GetTaskPhotos(ctx *fiber.Ctx) error {
	taskID, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.Task
	if result := c.DB.First(&task, taskID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var photos []Models.TaskPhoto
	if result := c.DB.Where("task_id = ?", taskID).Order("created_at ASC").Find(&photos); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve photos"})
	}
	return ctx.JSON(photos)
}

// UploadPhoto accepts a multipart photo upload, stores the original plus a
// thumbnail, and appends the photo to the task's ledger.
func (c *PhotoController) UploadPhoto(ctx *fiber.Ctx) error {
	taskID, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	photoType := strings.ToUpper(ctx.FormValue("type"))
	if photoType != Models.PhotoTypeBefore && photoType != Models.PhotoTypeAfter {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Photo type must be BEFORE or AFTER"})
	}

	file, err := ctx.FormFile("photo")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A photo file is required"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only .jpg, .jpeg and .png photos are accepted"})
	}

	if err := os.MkdirAll(photoDir, 0755); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store photo"})
	}

	storageKey := fmt.Sprintf("task_%d_%s_%d%s", taskID, strings.ToLower(photoType), time.Now().UnixNano(), ext)
	fullPath := filepath.Join(photoDir, storageKey)
	if err := ctx.SaveFile(file, fullPath); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store photo"})
	}

	// Thumbnail for the list views; not fatal if it fails.
	if img, err := imaging.Open(fullPath); err == nil {
		thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
		thumbPath := filepath.Join(photoDir, "thumb_"+storageKey)
		if err := imaging.Save(thumb, thumbPath); err != nil {
			fmt.Printf("Failed to save thumbnail for %s: %v\n", storageKey, err)
		}
	}

	photo, err := c.Engine.AddPhoto(taskID, photoType, "/TaskPhotos/"+storageKey, storageKey)
	if err != nil {
		// The record is the source of truth; drop the orphaned file.
		os.Remove(fullPath)
		os.Remove(filepath.Join(photoDir, "thumb_"+storageKey))
		return engineError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(photo)
}

// RegisterPhoto appends a photo whose file already lives in an external
// store; the client supplies the URL and storage key it got from the store.
func (c *PhotoController) RegisterPhoto(ctx *fiber.Ctx) error {
	taskID, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var input struct {
		Type       string `json:"type" validate:"required"`
		URL        string `json:"url" validate:"required"`
		StorageKey string `json:"storage_key" validate:"required"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	photo, err := c.Engine.AddPhoto(taskID, strings.ToUpper(input.Type), input.URL, input.StorageKey)
	if err != nil {
		return engineError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(photo)
}
