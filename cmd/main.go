package main

import (
	"os"

	"github.com/IditAvrahami/TabBuddy/config"
	"github.com/IditAvrahami/TabBuddy/routes"
)

func main() {
	config.InitLogger()
	config.InitDB()
	r := routes.SetupRouter()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
