package main

import (
	"log"

	"github.com/joho/godotenv"

	"Sanitrack/CronJobs"
	"Sanitrack/Engine"
	"Sanitrack/FiberConfig"
	"Sanitrack/Models"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	Models.Connect()

	engine := Engine.NewTaskEngine(Models.DB, &Engine.GormAuditRecorder{DB: Models.DB})
	checker := CronJobs.NewStalenessChecker(engine, true)
	if err := checker.Start(); err != nil {
		log.Fatalf("Failed to start staleness checker: %v", err)
	}
	defer checker.Stop()

	FiberConfig.FiberConfig()
}
