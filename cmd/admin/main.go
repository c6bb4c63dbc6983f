package main

import (
	"fmt"
	"log"
	"os"

	"fixitfast/backend/internal/config"
	"fixitfast/backend/internal/dashboard"
	"fixitfast/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI
	dash := dashboard.NewService(storageSvc)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin promote <email>")
			os.Exit(1)
		}
		email := os.Args[2]
		if err := storageSvc.PromoteUser(email); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s is now an administrator.\n", email)
	case "recompute":
		if len(os.Args) > 2 {
			ownerID := os.Args[2]
			d, err := dash.Recompute(ownerID)
			if err != nil {
				log.Fatalf("Error recomputing dashboard: %v", err)
			}
			fmt.Printf("Dashboard for %s: total=%d pending=%d inProgress=%d resolved=%d rejected=%d\n",
				ownerID, d.Total, d.Pending, d.InProgress, d.Resolved, d.Rejected)
		} else {
			if err := dash.RecomputeAll(); err != nil {
				log.Fatalf("Error recomputing dashboards: %v", err)
			}
			fmt.Println("All dashboards recomputed.")
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}
