package archive

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matched no rows or a list
	// query produced an empty result. The two conditions are deliberately
	// indistinguishable: the archive surfaces only what the dump contains.
	ErrNotFound = errors.New("archive: not found")

	errMissingDatabase = errors.New("database handle is required")
	noOpLogger         = zap.NewNop()
)

// ServiceError wraps a failure with a dot-separated operation code.
type ServiceError struct {
	code string
	err  error
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

func (e *ServiceError) Code() string {
	return e.code
}

const (
	opServiceNew    = "archive.service.new"
	opListVideos    = "archive.list_videos"
	opCountVideos   = "archive.count_videos"
	opVideoByID     = "archive.video_by_id"
	opListComments  = "archive.list_comments"
	opCountComments = "archive.count_comments"
	opCommentByID   = "archive.comment_by_id"
	opUsername      = "archive.username_for_user"
	opListReplies   = "archive.replies_for_comment"
	opReplyByID     = "archive.reply_by_id"
	opCountReplies  = "archive.count_replies"
	opLastUpdated   = "archive.last_updated"
)

func newServiceError(operation, reason string, cause error) error {
	code := fmt.Sprintf("%s.%s", operation, reason)
	return &ServiceError{code: code, err: cause}
}

// ServiceConfig collects the dependencies of the archive query service.
type ServiceConfig struct {
	Database *gorm.DB
	Logger   *zap.Logger
}

// Service exposes filtered, sorted, paginated read access to the archive.
// Every operation issues at most one read query and has no side effects.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService validates dependencies and constructs a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, newServiceError(opServiceNew, "missing_database", errMissingDatabase)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &Service{db: cfg.Database, logger: logger}, nil
}

// SQLite requires a LIMIT clause whenever OFFSET is present, so an offset
// without a page size pairs with a limit no dump will ever reach.
const unboundedLimit = 1<<31 - 1

// paginate applies offset/limit semantics: non-positive values degrade to
// "unset".
func paginate(tx *gorm.DB, start, limit int) *gorm.DB {
	if start > 0 {
		if limit <= 0 {
			limit = unboundedLimit
		}
		return tx.Offset(start).Limit(limit)
	}
	if limit > 0 {
		return tx.Limit(limit)
	}
	return tx
}

// ListVideos returns the videos matching the query, sliced to its page.
// An empty result reports ErrNotFound.
func (s *Service) ListVideos(ctx context.Context, query ListQuery) ([]Video, error) {
	column, _ := VideoSortColumn(query.OrderBy)
	tx := s.db.WithContext(ctx).Model(&Video{}).
		Order(fmt.Sprintf("%s %s", column, query.direction()))
	if query.Search != "" {
		tx = tx.Where("title LIKE ?", "%"+query.Search+"%")
	}

	var videos []Video
	if err := paginate(tx, query.Start, query.Limit).Find(&videos).Error; err != nil {
		return nil, newServiceError(opListVideos, "query_failed", err)
	}
	if len(videos) == 0 {
		return nil, ErrNotFound
	}
	return videos, nil
}

// CountVideos returns the total number of archived videos.
func (s *Service) CountVideos(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Video{}).Count(&count).Error; err != nil {
		return 0, newServiceError(opCountVideos, "query_failed", err)
	}
	return count, nil
}

// VideoByID returns one video or ErrNotFound.
func (s *Service) VideoByID(ctx context.Context, videoID string) (Video, error) {
	var video Video
	err := s.db.WithContext(ctx).Where("id = ?", videoID).Take(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Video{}, ErrNotFound
	}
	if err != nil {
		return Video{}, newServiceError(opVideoByID, "query_failed", err)
	}
	return video, nil
}

// VideoTitle returns just the title of one video or ErrNotFound.
func (s *Service) VideoTitle(ctx context.Context, videoID string) (string, error) {
	video, err := s.VideoByID(ctx, videoID)
	if err != nil {
		return "", err
	}
	return video.Title, nil
}

// ListComments returns the comments matching the query. Scoping precedence:
// a video id wins over a user id; listings without a video scope carry the
// parent video on each row. Search is always ANDed on the content field.
// An empty result reports ErrNotFound.
func (s *Service) ListComments(ctx context.Context, query CommentQuery) ([]Comment, error) {
	column, _ := CommentSortColumn(query.OrderBy)
	tx := s.db.WithContext(ctx).Model(&Comment{}).
		Order(fmt.Sprintf("%s %s", column, query.direction()))

	switch {
	case query.VideoID != "":
		tx = tx.Where("videoId = ?", query.VideoID)
	case query.UserID != "":
		tx = tx.Where("userId = ?", query.UserID).Preload("Video")
	default:
		tx = tx.Preload("Video")
	}
	if query.Search != "" {
		tx = tx.Where("content LIKE ?", "%"+query.Search+"%")
	}

	var comments []Comment
	if err := paginate(tx, query.Start, query.Limit).Find(&comments).Error; err != nil {
		return nil, newServiceError(opListComments, "query_failed", err)
	}
	if len(comments) == 0 {
		return nil, ErrNotFound
	}
	return comments, nil
}

// CountComments returns the number of comments under the optional video or
// user scope, with the same precedence as ListComments.
func (s *Service) CountComments(ctx context.Context, videoID, userID string) (int64, error) {
	tx := s.db.WithContext(ctx).Model(&Comment{})
	switch {
	case videoID != "":
		tx = tx.Where("videoId = ?", videoID)
	case userID != "":
		tx = tx.Where("userId = ?", userID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, newServiceError(opCountComments, "query_failed", err)
	}
	return count, nil
}

// CommentByID returns one comment or ErrNotFound.
func (s *Service) CommentByID(ctx context.Context, commentID string) (Comment, error) {
	var comment Comment
	err := s.db.WithContext(ctx).Where("id = ?", commentID).Take(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Comment{}, ErrNotFound
	}
	if err != nil {
		return Comment{}, newServiceError(opCommentByID, "query_failed", err)
	}
	return comment, nil
}

// UsernameForUser derives a display name for a user id from any comment the
// user posted. The dump has no user table, so a user with no comments is
// indistinguishable from an unknown user.
func (s *Service) UsernameForUser(ctx context.Context, userID string) (string, error) {
	var comment Comment
	err := s.db.WithContext(ctx).Where("userId = ?", userID).Take(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", newServiceError(opUsername, "query_failed", err)
	}
	return comment.Username, nil
}

// RepliesForComment returns every reply to one comment. A comment with no
// replies yields an empty slice, not ErrNotFound: absence of children is a
// valid state the client suppresses by way of the denormalized reply count.
func (s *Service) RepliesForComment(ctx context.Context, commentID string) ([]Reply, error) {
	replies := make([]Reply, 0)
	err := s.db.WithContext(ctx).Where("replyTo = ?", commentID).Find(&replies).Error
	if err != nil {
		return nil, newServiceError(opListReplies, "query_failed", err)
	}
	return replies, nil
}

// ReplyByID returns one reply or ErrNotFound.
func (s *Service) ReplyByID(ctx context.Context, replyID string) (Reply, error) {
	var reply Reply
	err := s.db.WithContext(ctx).Where("id = ?", replyID).Take(&reply).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Reply{}, ErrNotFound
	}
	if err != nil {
		return Reply{}, newServiceError(opReplyByID, "query_failed", err)
	}
	return reply, nil
}

// CountReplies returns the total number of archived replies.
func (s *Service) CountReplies(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Reply{}).Count(&count).Error; err != nil {
		return 0, newServiceError(opCountReplies, "query_failed", err)
	}
	return count, nil
}

// LastUpdated returns the refresh timestamp of the newest Modified marker,
// or ErrNotFound when the dump carries no markers at all.
func (s *Service) LastUpdated(ctx context.Context) (string, error) {
	var marker Modified
	err := s.db.WithContext(ctx).Order("id desc").Limit(1).Take(&marker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", newServiceError(opLastUpdated, "query_failed", err)
	}
	return marker.Updated, nil
}
