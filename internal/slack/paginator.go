package slack

import (
	"context"
	"iter"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/slack-tools/slackdump/internal/message"
)

// pageSize is the per-request message count for conversations.history.
const pageSize = 200

// FetchRequest describes one channel history fetch.
type FetchRequest struct {
	Channel string // channel ID (required)
	Limit   int    // >0 caps the yield; 0 yields nothing; <0 is unlimited
	Cursor  string // resume point from a previous run (optional)
	Oldest  string // server-side lower time bound, Slack ts format, inclusive (optional)
	Latest  string // server-side upper time bound, Slack ts format, inclusive (optional)
}

// History returns the channel's messages as a lazy sequence in API order
// (newest first), fetching pages on demand. The sequence is finite and
// non-restartable: iterate it once, call History again to re-fetch.
//
// Rate limits are waited out internally and never surface unless the retry
// policy gives up. Any other API error is yielded as the final element;
// messages yielded before it remain valid and the caller decides whether
// to keep them. Pages are fetched strictly in order since each cursor
// comes from the previous response.
func (c *Client) History(ctx context.Context, req FetchRequest) iter.Seq2[message.Message, error] {
	return func(yield func(message.Message, error) bool) {
		if req.Limit == 0 {
			return
		}

		cursor := req.Cursor
		yielded := 0
		for {
			var history *slack.GetConversationHistoryResponse
			err := withRetry(ctx, c.logger, c.retry, func() error {
				var e error
				history, e = c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
					ChannelID: req.Channel,
					Cursor:    cursor,
					Oldest:    req.Oldest,
					Latest:    req.Latest,
					Inclusive: req.Oldest != "" || req.Latest != "",
					Limit:     pageSize,
				})
				return e
			})
			if err != nil {
				yield(message.Message{}, wrapAPIError("conversations.history", err))
				return
			}

			c.logger.Debug("Fetched history page",
				zap.String("channel", req.Channel),
				zap.Int("page_messages", len(history.Messages)),
				zap.Int("fetched", yielded+len(history.Messages)))

			for _, raw := range history.Messages {
				if !yield(message.FromSlack(raw, req.Channel), nil) {
					return
				}
				yielded++
				if req.Limit > 0 && yielded >= req.Limit {
					return
				}
			}

			if !history.HasMore || history.ResponseMetaData.NextCursor == "" {
				return
			}
			cursor = history.ResponseMetaData.NextCursor
		}
	}
}

// CollectHistory drains History into a slice. On error the messages
// fetched so far are returned alongside it so the caller can choose to
// keep a partial result.
func (c *Client) CollectHistory(ctx context.Context, req FetchRequest) ([]message.Message, error) {
	var msgs []message.Message
	for msg, err := range c.History(ctx, req) {
		if err != nil {
			return msgs, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// ResolveUserNames fills in display names for the distinct authors of msgs.
// Lookups are memoized per user; a failed lookup leaves the name empty
// rather than failing the dump.
func (c *Client) ResolveUserNames(ctx context.Context, msgs []message.Message) {
	names := make(map[string]string)

	for i := range msgs {
		id := msgs[i].User
		if id == "" {
			continue
		}

		name, seen := names[id]
		if !seen {
			var user *slack.User
			err := withRetry(ctx, c.logger, c.retry, func() error {
				var e error
				user, e = c.api.GetUserInfoContext(ctx, id)
				return e
			})
			if err != nil {
				c.logger.Warn("Failed to resolve user name",
					zap.String("user", id),
					zap.Error(err))
			} else {
				name = user.Name
			}
			names[id] = name
		}
		msgs[i].UserName = name
	}
}
