package main

import (
	"log"

	"clinic-api/internal/config"
	"clinic-api/internal/database"
	"clinic-api/internal/handlers"
	"clinic-api/internal/middleware"
	"clinic-api/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	if err := utils.EnsureJWTReady(); err != nil {
		log.Fatal("JWT configuration error: ", err)
	}

	database.InitDB()
	defer database.CloseDB()
	database.CreateTables()

	router := gin.Default()
	router.Use(middleware.RequestIDMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.ListEnvOrDefault("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"})
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", handlers.HealthCheck)
	router.GET("/api/status", handlers.Status)

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	api := router.Group("/api", middleware.AuthMiddleware())
	{
		api.POST("/doctors", handlers.CreateDoctor)
		api.GET("/doctors", handlers.GetDoctors)
		api.GET("/doctors/:id", handlers.GetDoctor)
		api.PUT("/doctors/:id", handlers.UpdateDoctor)
		api.DELETE("/doctors/:id", handlers.DeleteDoctor)

		api.POST("/patients", handlers.CreatePatient)
		api.GET("/patients", handlers.GetPatients)
		api.GET("/patients/:id", handlers.GetPatient)
		api.PUT("/patients/:id", handlers.UpdatePatient)
		api.DELETE("/patients/:id", handlers.DeletePatient)

		api.POST("/mappings", handlers.CreateMapping)
		api.GET("/mappings", handlers.GetMappings)
		api.GET("/mappings/:patientId", handlers.GetPatientMappings)
		api.DELETE("/mappings/:id", handlers.DeleteMapping)
	}

	port := config.EnvOrDefault("PORT", "8080")
	log.Printf("Clinic API starting on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
