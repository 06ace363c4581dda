package archive

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:archive_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Video{}, &Comment{}, &Reply{}, &Modified{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	service, err := NewService(ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to construct archive service: %v", err)
	}
	return service, db
}

func seedVideo(t *testing.T, db *gorm.DB, video Video) {
	t.Helper()
	if err := db.Create(&video).Error; err != nil {
		t.Fatalf("failed to seed video %s: %v", video.ID, err)
	}
}

func seedComment(t *testing.T, db *gorm.DB, comment Comment) {
	t.Helper()
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("failed to seed comment %s: %v", comment.ID, err)
	}
}

func seedReply(t *testing.T, db *gorm.DB, reply Reply) {
	t.Helper()
	if err := db.Create(&reply).Error; err != nil {
		t.Fatalf("failed to seed reply %s: %v", reply.ID, err)
	}
}

func floatPtr(value float64) *float64 {
	return &value
}
