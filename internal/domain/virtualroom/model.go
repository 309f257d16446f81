package virtualroom

import (
	"time"

	"github.com/google/uuid"
)

// Room maps to the virtual_rooms table: a named video-call room staff share
// with patients for remote sessions.
type Room struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	TenantID       uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	CreatorUserID  string     `db:"creator_user_id" json:"creator_user_id"`
	Code           string     `db:"code" json:"code"`
	Title          *string    `db:"title" json:"title,omitempty"`
	Description    *string    `db:"description" json:"description,omitempty"`
	ScheduledStart *time.Time `db:"scheduled_start" json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time `db:"scheduled_end" json:"scheduled_end,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
