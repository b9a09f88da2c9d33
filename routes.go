package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func setupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(identityMiddleware())

	api.GET("/hello", helloHandler)

	api.POST("/expense-reports", createReportHandler)
	api.GET("/expense-reports", listReportsHandler)
	api.GET("/expense-reports/:id", getReportHandler)
	api.PATCH("/expense-reports/:id", updateReportHandler)
	api.DELETE("/expense-reports/:id", deleteReportHandler)
	api.POST("/expense-reports/:id/submit", submitReportHandler)

	api.POST("/expenses", createExpenseHandler)
	api.GET("/expenses", listExpensesHandler)
	api.GET("/expenses/:id", getExpenseHandler)
	api.PATCH("/expenses/:id", updateExpenseHandler)
	api.DELETE("/expenses/:id", deleteExpenseHandler)

	api.POST("/expenses/:id/attachments", uploadAttachmentHandler)
	api.GET("/attachments/:id", getAttachmentHandler)
	api.GET("/attachments/:id/download", downloadAttachmentHandler)
	api.DELETE("/attachments/:id", deleteAttachmentHandler)
}

func helloHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Hello World from expenses2!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
