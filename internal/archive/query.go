package archive

// Sort labels are the human-facing names exposed by the browsing client.
// The allowlist keeps storage column names out of the query contract and
// makes string interpolation into ORDER BY safe.

const defaultSortColumn = "createdAt"

// VideoSortColumn resolves a symbolic video sort label to its physical
// column. Unrecognized labels resolve to creation time; the second return
// reports whether the label was part of the allowlist.
func VideoSortColumn(label string) (string, bool) {
	switch label {
	case "Date":
		return "createdAt", true
	case "Likes":
		return "likeCount", true
	case "Anger":
		return "angerCount", true
	case "Comments":
		return "commentCount", true
	case "Runtime":
		return "duration", true
	case "Views":
		return "playCount", true
	default:
		return defaultSortColumn, false
	}
}

// CommentSortColumn resolves a symbolic comment sort label to its physical
// column, falling back to creation time for unrecognized labels.
func CommentSortColumn(label string) (string, bool) {
	switch label {
	case "Date":
		return "createdAt", true
	case "Likes":
		return "posVotes", true
	case "Replies":
		return "replyCount", true
	default:
		return defaultSortColumn, false
	}
}

// ListQuery carries the shared pagination/search/sort parameters of the
// list endpoints. A Start or Limit that is zero or negative degrades to
// "unset": fetch from the beginning, or fetch without a page bound.
type ListQuery struct {
	Start      int
	Limit      int
	Search     string
	OrderBy    string
	Descending bool
}

func (q ListQuery) direction() string {
	if q.Descending {
		return "desc"
	}
	return "asc"
}

// CommentQuery narrows a comment listing to one video or one user. VideoID
// takes precedence over UserID; listings without a VideoID carry the parent
// video on each row for display.
type CommentQuery struct {
	ListQuery
	VideoID string
	UserID  string
}
