package main

import (
	"os"

	"campusmatch/config"
	"campusmatch/routes"
	"campusmatch/utils"
)

func main() {
	config.InitDB()
	config.InitRedis()
	utils.InitS3()
	utils.InitSES()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
