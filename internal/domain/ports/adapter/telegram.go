package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// Membership is the explicit three-valued outcome of a channel membership
// lookup. A failed lookup is kept distinct from a confirmed non-member even
// though the gate currently blocks both.
type Membership int

const (
	MembershipUnknown Membership = iota // lookup failed; gate fails closed
	MembershipNotMember
	MembershipMember
)

func (m Membership) Subscribed() bool { return m == MembershipMember }

// TelegramBotAdapter is everything the use cases need from the messaging
// transport: direct messages, keyboards, membership lookup in the gate
// channel, and one-time invite link minting for the reward group.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error
	// SendMenu shows a persistent reply keyboard, one label per row.
	SendMenu(ctx context.Context, chatID int64, text string, labels []string) error
	// MemberStatus returns the raw chat-member status ("member",
	// "administrator", "creator", "left", ...) of userID in the channel.
	MemberStatus(ctx context.Context, channel string, userID int64) (string, error)
	// CreateInviteLink mints an invite link for the group capped at
	// memberLimit redemptions.
	CreateInviteLink(ctx context.Context, chatID int64, memberLimit int) (string, error)
}
