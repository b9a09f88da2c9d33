package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var jwtSecret []byte // loaded from env AUTH_JWT_SECRET; empty disables token parsing

func main() {
	// Auto-load ./.env if present before reading vars. Existing env wins.
	_ = godotenv.Load()
	jwtSecret = []byte(os.Getenv("AUTH_JWT_SECRET"))

	// Support a lightweight migrate command: `./expenses2 migrate`
	// It runs AutoMigrate then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration completed")
		return
	}

	initDB()

	r := gin.Default()

	setupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
