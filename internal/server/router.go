package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tubevault/tubevault/internal/archive"
	"github.com/tubevault/tubevault/internal/dumps"
	"go.uber.org/zap"
)

var (
	errMissingArchiveService = errors.New("archive service dependency required")
	errMissingDumpService    = errors.New("dump service dependency required")
)

// Dependencies collects everything the HTTP layer needs.
type Dependencies struct {
	ArchiveService *archive.Service
	DumpService    *dumps.Service
	Logger         *zap.Logger
}

// NewHTTPHandler wires the read-only query surface onto a gin router.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.ArchiveService == nil {
		return nil, errMissingArchiveService
	}
	if deps.DumpService == nil {
		return nil, errMissingDumpService
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		archive: deps.ArchiveService,
		dumps:   deps.DumpService,
		logger:  logger,
	}

	api := router.Group("/api")
	api.GET("/videos", handler.handleListVideos)
	api.GET("/videos/count", handler.handleVideoCount)
	api.GET("/videos/name", handler.handleVideoName)
	api.GET("/videos/:videoId", handler.handleVideoByID)
	api.GET("/videos/:videoId/comments", handler.handleVideoComments)
	api.GET("/comments", handler.handleListComments)
	api.GET("/comments/count", handler.handleCommentCount)
	api.GET("/comments/:commentId", handler.handleCommentByID)
	api.GET("/comments/:commentId/replies", handler.handleCommentReplies)
	api.GET("/replies/count", handler.handleReplyCount)
	api.GET("/replies/:replyId", handler.handleReplyByID)
	api.GET("/users/:userId/username", handler.handleUsername)
	api.GET("/archive/last-updated", handler.handleLastUpdated)
	api.GET("/archive/files", handler.handleDumpFiles)

	return router, nil
}

type httpHandler struct {
	archive *archive.Service
	dumps   *dumps.Service
	logger  *zap.Logger
}

// intParam coerces an optional numeric query parameter. Missing or
// malformed values degrade to zero, which the service treats as unset.
func intParam(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// listQuery reads the shared list parameters. The desc literal "false"
// selects ascending order; anything else, including absence, descending.
func listQuery(c *gin.Context) archive.ListQuery {
	return archive.ListQuery{
		Start:      intParam(c, "start"),
		Limit:      intParam(c, "limit"),
		Search:     c.Query("search"),
		OrderBy:    c.Query("orderBy"),
		Descending: c.Query("desc") != "false",
	}
}

func (h *httpHandler) respondError(c *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, archive.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
		return
	}
	h.logger.Error("archive query failed",
		zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
}

func (h *httpHandler) handleListVideos(c *gin.Context) {
	videos, err := h.archive.ListVideos(c.Request.Context(), listQuery(c))
	if err != nil {
		h.respondError(c, err, "no videos found")
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *httpHandler) handleVideoCount(c *gin.Context) {
	count, err := h.archive.CountVideos(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "no videos found")
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *httpHandler) handleVideoName(c *gin.Context) {
	title, err := h.archive.VideoTitle(c.Request.Context(), c.Query("videoId"))
	if err != nil {
		h.respondError(c, err, "title not found")
		return
	}
	c.JSON(http.StatusOK, title)
}

func (h *httpHandler) handleVideoByID(c *gin.Context) {
	video, err := h.archive.VideoByID(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		h.respondError(c, err, "video not found")
		return
	}
	c.JSON(http.StatusOK, video)
}

// handleVideoComments is the fixed per-video thread view: newest comments
// first, no search or sort selection, pagination only.
func (h *httpHandler) handleVideoComments(c *gin.Context) {
	query := archive.CommentQuery{
		ListQuery: archive.ListQuery{
			Start:      intParam(c, "start"),
			Limit:      intParam(c, "limit"),
			Descending: true,
		},
		VideoID: c.Param("videoId"),
	}
	comments, err := h.archive.ListComments(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err, "no comments found")
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *httpHandler) handleListComments(c *gin.Context) {
	query := archive.CommentQuery{
		ListQuery: listQuery(c),
		VideoID:   c.Query("videoId"),
		UserID:    c.Query("userId"),
	}
	comments, err := h.archive.ListComments(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err, "no comments found")
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *httpHandler) handleCommentCount(c *gin.Context) {
	count, err := h.archive.CountComments(c.Request.Context(), c.Query("videoId"), c.Query("userId"))
	if err != nil {
		h.respondError(c, err, "no comments found")
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *httpHandler) handleCommentByID(c *gin.Context) {
	comment, err := h.archive.CommentByID(c.Request.Context(), c.Param("commentId"))
	if err != nil {
		h.respondError(c, err, "comment not found")
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *httpHandler) handleCommentReplies(c *gin.Context) {
	replies, err := h.archive.RepliesForComment(c.Request.Context(), c.Param("commentId"))
	if err != nil {
		h.respondError(c, err, "no replies found")
		return
	}
	c.JSON(http.StatusOK, replies)
}

func (h *httpHandler) handleReplyByID(c *gin.Context) {
	reply, err := h.archive.ReplyByID(c.Request.Context(), c.Param("replyId"))
	if err != nil {
		h.respondError(c, err, "reply not found")
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *httpHandler) handleReplyCount(c *gin.Context) {
	count, err := h.archive.CountReplies(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "no replies found")
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *httpHandler) handleUsername(c *gin.Context) {
	username, err := h.archive.UsernameForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err, "username not found")
		return
	}
	c.JSON(http.StatusOK, username)
}

// handleLastUpdated reports the newest refresh marker, or JSON null when
// the dump carries none.
func (h *httpHandler) handleLastUpdated(c *gin.Context) {
	updated, err := h.archive.LastUpdated(c.Request.Context())
	if errors.Is(err, archive.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		h.respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *httpHandler) handleDumpFiles(c *gin.Context) {
	files, err := h.dumps.List()
	if err != nil {
		h.logger.Error("dump listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}
	c.JSON(http.StatusOK, files)
}
