package model

import (
	"telegram-referral-gate/internal/domain"
)

// User is one Telegram account that has ever issued /start.
// ID is externally assigned (the Telegram account id) and immutable once
// inserted. ReferredBy is set at creation and never changed. Points only
// grows; InviteSent transitions false->true at most once.
type User struct {
	ID         int64
	Username   string
	ReferredBy *int64
	Points     int
	InviteSent bool
}

func NewUser(id int64, username string, referredBy *int64) (*User, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		ID:         id,
		Username:   username,
		ReferredBy: referredBy,
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == 0 }
