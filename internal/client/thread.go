package client

import (
	"context"

	"github.com/tubevault/tubevault/internal/archive"
)

// Thread is the reply drawer's view model: the parent comment plus its
// full reply list, each reply optionally carrying an @-mention target.
type Thread struct {
	Parent  archive.Comment
	Replies []archive.Reply
}

// OfferDrawer reports whether the reply drawer should be offered for a
// comment. The decision rides on the denormalized reply count alone, so no
// request is made for comments without replies.
func OfferDrawer(comment archive.Comment) bool {
	return comment.ReplyCount > 0
}

// LoadThread fetches the reply list for one comment on demand.
func (c *Client) LoadThread(ctx context.Context, parent archive.Comment) (Thread, error) {
	replies, err := c.Replies(ctx, parent.ID)
	if err != nil {
		return Thread{}, err
	}
	return Thread{Parent: parent, Replies: replies}, nil
}
