package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/franck-yvetot/expenses2/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxAttachmentSize = 5 * 1024 * 1024

var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/jpg":       true,
}

// uploadAttachmentHandler stores a receipt file on disk and records its
// metadata against an existing expense.
func uploadAttachmentHandler(c *gin.Context) {
	expenseID := c.Param("id")
	if _, err := findExpense(expenseID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	if file.Size > maxAttachmentSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large (max 5MB)"})
		return
	}
	mimeType := file.Header.Get("Content-Type")
	if !allowedMimeTypes[mimeType] {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "invalid file type (allowed: pdf, png, jpeg)"})
		return
	}

	// Stored name is unique per upload; the client's name is kept as metadata.
	storedName := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(file.Filename))
	fullPath := filepath.Join(receiptsDir(), storedName)
	if err := os.MkdirAll(receiptsDir(), 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
		return
	}
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	attachment := models.Attachment{
		ExpenseID:    expenseID,
		FileName:     storedName,
		OriginalName: file.Filename,
		MimeType:     mimeType,
		FileSize:     file.Size,
		FilePath:     fullPath,
	}
	if err := db.Create(&attachment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"attachmentId": attachment.ID,
			"fileName":     attachment.FileName,
			"fileSize":     attachment.FileSize,
		},
	})
}

func findAttachment(id string, preloads ...string) (*models.Attachment, error) {
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var attachment models.Attachment
	if err := q.First(&attachment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func getAttachmentHandler(c *gin.Context) {
	attachment, err := findAttachment(c.Param("id"), "Expense")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attachment not found"})
		return
	}
	c.JSON(http.StatusOK, attachment)
}

func downloadAttachmentHandler(c *gin.Context) {
	attachment, err := findAttachment(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attachment not found"})
		return
	}
	c.FileAttachment(attachment.FilePath, attachment.OriginalName)
}

// deleteAttachmentHandler removes the blob and the record. A failed blob
// removal is logged and never blocks the record deletion.
func deleteAttachmentHandler(c *gin.Context) {
	attachment, err := findAttachment(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attachment not found"})
		return
	}
	if err := os.Remove(attachment.FilePath); err != nil {
		log.Printf("failed to delete file %s: %v", attachment.FilePath, err)
	}
	if err := db.Delete(attachment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
