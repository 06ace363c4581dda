// Package client is the browsing front-end's data layer: a typed client
// over the query API plus the pagination/search/sort state machines the
// archive pages hold.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tubevault/tubevault/internal/archive"
	"github.com/tubevault/tubevault/internal/dumps"
)

// ErrNotFound mirrors the API's 404 contract: an empty list result and an
// absent entity are reported identically.
var ErrNotFound = errors.New("client: not found")

// Client is a thin typed HTTP client over the archive query API. The
// injected http.Client controls timeouts; the Client itself adds none.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client for the API at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case response.StatusCode != http.StatusOK:
		return fmt.Errorf("client: unexpected status %d for %s", response.StatusCode, path)
	}
	return json.NewDecoder(response.Body).Decode(out)
}

// SortState is the symbolic sort selection shared by the list views.
type SortState struct {
	OrderBy    string
	Descending bool
}

// ListParams carries pagination, search, and sort for a list request.
type ListParams struct {
	Start  int
	Limit  int
	Search string
	Sort   SortState
}

func (p ListParams) values() url.Values {
	values := url.Values{}
	values.Set("start", strconv.Itoa(p.Start))
	values.Set("limit", strconv.Itoa(p.Limit))
	values.Set("orderBy", p.Sort.OrderBy)
	values.Set("desc", strconv.FormatBool(p.Sort.Descending))
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	return values
}

// Videos fetches one page of the video listing.
func (c *Client) Videos(ctx context.Context, params ListParams) ([]archive.Video, error) {
	var videos []archive.Video
	if err := c.get(ctx, "/api/videos", params.values(), &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// VideoCount fetches the total number of archived videos.
func (c *Client) VideoCount(ctx context.Context) (int64, error) {
	var count int64
	if err := c.get(ctx, "/api/videos/count", nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// Video fetches one video by id.
func (c *Client) Video(ctx context.Context, videoID string) (archive.Video, error) {
	var video archive.Video
	if err := c.get(ctx, "/api/videos/"+url.PathEscape(videoID), nil, &video); err != nil {
		return archive.Video{}, err
	}
	return video, nil
}

// VideoTitle fetches just the title of one video.
func (c *Client) VideoTitle(ctx context.Context, videoID string) (string, error) {
	var title string
	values := url.Values{"videoId": []string{videoID}}
	if err := c.get(ctx, "/api/videos/name", values, &title); err != nil {
		return "", err
	}
	return title, nil
}

// CommentScope narrows a comment listing to one video or one user.
type CommentScope struct {
	VideoID string
	UserID  string
}

// Comments fetches one page of the comment listing under the given scope.
func (c *Client) Comments(ctx context.Context, scope CommentScope, params ListParams) ([]archive.Comment, error) {
	values := params.values()
	if scope.VideoID != "" {
		values.Set("videoId", scope.VideoID)
	}
	if scope.UserID != "" {
		values.Set("userId", scope.UserID)
	}

	var comments []archive.Comment
	if err := c.get(ctx, "/api/comments", values, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CommentCount fetches the number of comments under the given scope.
func (c *Client) CommentCount(ctx context.Context, scope CommentScope) (int64, error) {
	values := url.Values{}
	if scope.VideoID != "" {
		values.Set("videoId", scope.VideoID)
	}
	if scope.UserID != "" {
		values.Set("userId", scope.UserID)
	}

	var count int64
	if err := c.get(ctx, "/api/comments/count", values, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// Comment fetches one comment by id.
func (c *Client) Comment(ctx context.Context, commentID string) (archive.Comment, error) {
	var comment archive.Comment
	if err := c.get(ctx, "/api/comments/"+url.PathEscape(commentID), nil, &comment); err != nil {
		return archive.Comment{}, err
	}
	return comment, nil
}

// Username fetches the display name derived for a user id.
func (c *Client) Username(ctx context.Context, userID string) (string, error) {
	var username string
	if err := c.get(ctx, "/api/users/"+url.PathEscape(userID)+"/username", nil, &username); err != nil {
		return "", err
	}
	return username, nil
}

// Replies fetches the full reply list for one comment.
func (c *Client) Replies(ctx context.Context, commentID string) ([]archive.Reply, error) {
	var replies []archive.Reply
	if err := c.get(ctx, "/api/comments/"+url.PathEscape(commentID)+"/replies", nil, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// Reply fetches one reply by id.
func (c *Client) Reply(ctx context.Context, replyID string) (archive.Reply, error) {
	var reply archive.Reply
	if err := c.get(ctx, "/api/replies/"+url.PathEscape(replyID), nil, &reply); err != nil {
		return archive.Reply{}, err
	}
	return reply, nil
}

// ReplyCount fetches the total number of archived replies.
func (c *Client) ReplyCount(ctx context.Context) (int64, error) {
	var count int64
	if err := c.get(ctx, "/api/replies/count", nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// LastUpdated fetches the archive's newest refresh timestamp. An archive
// without markers reports an empty string, rendered as an empty state.
func (c *Client) LastUpdated(ctx context.Context) (string, error) {
	var updated *string
	if err := c.get(ctx, "/api/archive/last-updated", nil, &updated); err != nil {
		return "", err
	}
	if updated == nil {
		return "", nil
	}
	return *updated, nil
}

// DumpFiles fetches the downloadable dump file listing.
func (c *Client) DumpFiles(ctx context.Context) ([]dumps.File, error) {
	var files []dumps.File
	if err := c.get(ctx, "/api/archive/files", nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}
