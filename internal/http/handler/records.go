package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"healthvault/internal/http/middleware"
	"healthvault/internal/model"
	"healthvault/internal/service"
)

// recordResponse decorates a stored record with the preview URL returned
// on upload.
type recordResponse struct {
	model.MedicalRecord
	PreviewURL string `json:"previewUrl"`
}

// UploadRecord handles POST /api/medical-records (multipart/form-data,
// field name: file). Type and size limits are enforced by the service
// before anything is stored.
func UploadRecord(recSvc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "No file uploaded")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		rec, err := recSvc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size, user.ID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrFileTooLarge):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "File exceeds the 5 MB limit")
			case errors.Is(err, service.ErrFileTypeNotAllowed):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Only PDF and JPG files are allowed")
			case errors.Is(err, service.ErrFileEmpty):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "No file uploaded")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Upload failed")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "File uploaded successfully",
			"record":  recordResponse{MedicalRecord: *rec, PreviewURL: rec.DownloadURL},
		})
	}
}

// ListRecords handles GET /api/medical-records for the authenticated user.
func ListRecords(recSvc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)

		records, err := recSvc.List(c.UserContext(), user.ID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch records")
		}
		return c.JSON(fiber.Map{"records": records})
	}
}

// DeleteRecord handles DELETE /api/medical-records/:id. A record that does
// not exist and a record owned by another user yield the same 404.
func DeleteRecord(recSvc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		id := c.Params("id")

		if err := recSvc.Delete(c.UserContext(), id, user.ID); err != nil {
			if errors.Is(err, service.ErrRecordNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "Record not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete record")
		}
		return c.JSON(fiber.Map{"message": "Record deleted successfully"})
	}
}

// DownloadRecord handles GET /uploads/:fileName, streaming the stored file.
// File names are storage-assigned UUIDs.
func DownloadRecord(recSvc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileName := c.Params("fileName")

		body, info, err := recSvc.Open(c.UserContext(), fileName)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "File not found")
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		if info.Size > 0 {
			return c.SendStream(body, int(info.Size))
		}
		return c.SendStream(body)
	}
}
