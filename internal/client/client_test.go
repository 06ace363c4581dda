package client

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/tubevault/tubevault/internal/archive"
	"github.com/tubevault/tubevault/internal/dumps"
	"github.com/tubevault/tubevault/internal/server"
	"gorm.io/gorm"
)

// newArchiveServer spins up the real router over a seeded in-memory dump,
// so client tests exercise the same wire contract the pages do.
func newArchiveServer(t *testing.T) (*Client, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:client_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&archive.Video{}, &archive.Comment{}, &archive.Reply{}, &archive.Modified{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	archiveService, err := archive.NewService(archive.ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to construct archive service: %v", err)
	}
	handler, err := server.NewHTTPHandler(server.Dependencies{
		ArchiveService: archiveService,
		DumpService:    dumps.NewService(dumps.ServiceConfig{Dir: t.TempDir(), HrefPrefix: "/downloads"}),
	})
	if err != nil {
		t.Fatalf("failed to construct handler: %v", err)
	}

	testServer := httptest.NewServer(handler)
	t.Cleanup(testServer.Close)
	return NewClient(testServer.URL, testServer.Client()), db
}

func seedArchive(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []any{
		&archive.Video{ID: "v1", Title: "march protest coverage", PlayCount: 500, LikeCount: 10, CreatedAt: "2023-01-01T10:00:00.000Z", CommentCount: 2},
		&archive.Video{ID: "v2", Title: "city hall protest", PlayCount: 100, LikeCount: 40, CreatedAt: "2023-02-01T10:00:00.000Z"},
		&archive.Comment{ID: "c1", VideoID: "v1", UserID: "u1", Username: "alice", Content: "great upload", PosVotes: 9, CreatedAt: "2023-01-02T10:00:00.000Z", ReplyCount: 1},
		&archive.Comment{ID: "c2", VideoID: "v2", UserID: "u2", Username: "bob", Content: "not convinced", PosVotes: 1, CreatedAt: "2023-02-02T10:00:00.000Z"},
		&archive.Reply{ID: "r1", ReplyTo: "c1", UserID: "u2", UserName: "bob", Content: "agreed", CreatedAt: "2023-01-02T11:00:00.000Z"},
		&archive.Modified{Updated: "2023-06-01T00:00:00.000Z"},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("failed to seed row: %v", err)
		}
	}
}

func TestClientFetchesVideosAndScalars(t *testing.T) {
	api, db := newArchiveServer(t)
	seedArchive(t, db)
	ctx := context.Background()

	videos, err := api.Videos(ctx, ListParams{Limit: 10, Sort: SortState{OrderBy: "Views", Descending: true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(videos) != 2 || videos[0].ID != "v1" {
		t.Fatalf("unexpected videos: %#v", videos)
	}

	count, err := api.VideoCount(ctx)
	if err != nil || count != 2 {
		t.Fatalf("unexpected video count %d err=%v", count, err)
	}

	title, err := api.VideoTitle(ctx, "v2")
	if err != nil || title != "city hall protest" {
		t.Fatalf("unexpected title %q err=%v", title, err)
	}

	video, err := api.Video(ctx, "v1")
	if err != nil || video.CommentCount != 2 {
		t.Fatalf("unexpected video %#v err=%v", video, err)
	}
}

func TestClientCommentsAndReplies(t *testing.T) {
	api, db := newArchiveServer(t)
	seedArchive(t, db)
	ctx := context.Background()

	comments, err := api.Comments(ctx, CommentScope{VideoID: "v1"}, ListParams{Limit: 10, Sort: SortState{OrderBy: "Date", Descending: true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 1 || comments[0].ID != "c1" {
		t.Fatalf("unexpected comments: %#v", comments)
	}

	unscoped, err := api.Comments(ctx, CommentScope{}, ListParams{Limit: 10, Sort: SortState{OrderBy: "Date", Descending: true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unscoped) != 2 || unscoped[0].Video == nil {
		t.Fatalf("expected embedded parent video in unscoped listing: %#v", unscoped)
	}

	commentCount, err := api.CommentCount(ctx, CommentScope{UserID: "u1"})
	if err != nil || commentCount != 1 {
		t.Fatalf("unexpected comment count %d err=%v", commentCount, err)
	}

	replies, err := api.Replies(ctx, "c1")
	if err != nil || len(replies) != 1 {
		t.Fatalf("unexpected replies %#v err=%v", replies, err)
	}

	reply, err := api.Reply(ctx, "r1")
	if err != nil || reply.UserName != "bob" {
		t.Fatalf("unexpected reply %#v err=%v", reply, err)
	}

	replyCount, err := api.ReplyCount(ctx)
	if err != nil || replyCount != 1 {
		t.Fatalf("unexpected reply count %d err=%v", replyCount, err)
	}

	username, err := api.Username(ctx, "u2")
	if err != nil || username != "bob" {
		t.Fatalf("unexpected username %q err=%v", username, err)
	}
}

func TestClientReportsNotFound(t *testing.T) {
	api, db := newArchiveServer(t)
	seedArchive(t, db)
	ctx := context.Background()

	if _, err := api.Video(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := api.Videos(ctx, ListParams{Search: "nomatch", Limit: 10}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty listing, got %v", err)
	}
	if _, err := api.Username(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientLastUpdated(t *testing.T) {
	api, db := newArchiveServer(t)
	seedArchive(t, db)

	updated, err := api.LastUpdated(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != "2023-06-01T00:00:00.000Z" {
		t.Fatalf("unexpected timestamp %q", updated)
	}
}

func TestClientLastUpdatedEmptyArchive(t *testing.T) {
	api, _ := newArchiveServer(t)

	updated, err := api.LastUpdated(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != "" {
		t.Fatalf("expected empty timestamp, got %q", updated)
	}
}

func TestClientDumpFiles(t *testing.T) {
	api, _ := newArchiveServer(t)

	files, err := api.DumpFiles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected empty listing, got %#v", files)
	}
}
