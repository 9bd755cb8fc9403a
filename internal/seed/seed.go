package seed

import (
	"log"

	"gorm.io/gorm"

	"taskguard/internal/models"
)

// DemoTasks inserts a handful of tasks for a demo owner so a fresh
// install has something to list. Idempotent via FirstOrCreate.
func DemoTasks(db *gorm.DB) error {
	const demoOwner = "demo-user"

	tasks := []models.Task{
		{OwnerID: demoOwner, Title: "Set up the project board", Description: "Create columns for pending, in progress and done", Status: models.TaskInProgress},
		{OwnerID: demoOwner, Title: "Write the onboarding doc", Description: "Cover local setup and the auth configuration", Status: models.TaskPending},
		{OwnerID: demoOwner, Title: "Review Q3 access policies", Status: models.TaskPending},
	}

	for _, t := range tasks {
		tmp := t
		if err := db.Where("owner_id = ? AND title = ?", tmp.OwnerID, tmp.Title).
			FirstOrCreate(&tmp).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seed OK | owner=%s tasks=%d", demoOwner, len(tasks))
	return nil
}
