package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"jobcore/backend/internal/models"
	"jobcore/backend/internal/report"
	"jobcore/backend/internal/storage"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewService(db, nil, "", zap.NewNop()) // No redis needed for admin CLI
	reportSvc := report.NewService(storageSvc, nil, 0, zap.NewNop())
	ctx := context.Background()

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "resolve-report":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin resolve-report <report_id>")
			os.Exit(1)
		}
		reportID := os.Args[2]
		if err := reportSvc.Resolve(ctx, reportID, models.StatusResolved); err != nil {
			log.Fatalf("Error resolving report: %v", err)
		}
		fmt.Printf("Report %s has been resolved.\n", reportID)
	case "list-reports":
		status := models.StatusNew
		if len(os.Args) > 2 {
			status = models.SystemStatus(os.Args[2])
		}
		if err := listReports(ctx, storageSvc, status); err != nil {
			log.Fatalf("Error listing reports: %v", err)
		}
	case "add-category":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin add-category <name> <description>")
			os.Exit(1)
		}
		cat := &models.Category{Name: os.Args[2], Description: os.Args[3]}
		if err := storageSvc.SaveCategory(ctx, cat); err != nil {
			log.Fatalf("Error creating category: %v", err)
		}
		fmt.Printf("Category %s created with id %s.\n", cat.Name, cat.ID)
	case "disable-vacancy":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin disable-vacancy <vacancy_id>")
			os.Exit(1)
		}
		vacancyID := os.Args[2]
		if err := disableVacancy(ctx, storageSvc, vacancyID); err != nil {
			log.Fatalf("Error disabling vacancy: %v", err)
		}
		fmt.Printf("Vacancy %s has been disabled.\n", vacancyID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func listReports(ctx context.Context, s storage.Storage, status models.SystemStatus) error {
	reports, total, err := s.ListReportsByStatus(ctx, status, 0, 100)
	if err != nil {
		return err
	}
	fmt.Printf("%d report(s) with status %s:\n", total, status)
	for _, r := range reports {
		fmt.Printf("  %s  vacancy=%s  user=%s  reason=%s  at=%s\n",
			r.ID, r.VacancyID, r.UserID, r.Reason, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func disableVacancy(ctx context.Context, s storage.Storage, vacancyID string) error {
	v, err := s.GetVacancyByID(ctx, vacancyID)
	if err != nil {
		return err
	}
	v.Status = models.VacancyDisabled
	return s.SaveVacancy(ctx, v)
}
