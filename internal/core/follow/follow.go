package follow

import (
	"time"

	"github.com/gofrs/uuid"

	"plume/internal/core/user"
)

// Follow is a directed edge: follower receives author's posts in their
// following feed. The composite unique index makes the (follower, author)
// pair the authority under concurrent duplicate creates.
type Follow struct {
	ID         uuid.UUID `gorm:"primary_key;type:char(36)"`
	FollowerID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_follow_pair"`
	Follower   user.User `gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_follow_pair"`
	Author     user.User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
