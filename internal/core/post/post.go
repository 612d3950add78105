package post

import (
	"time"

	"github.com/gofrs/uuid"

	"plume/internal/core/group"
	"plume/internal/core/user"
)

// Post uses an auto-increment primary key: feeds order by created_at
// descending with id as the tie-break, which keeps pagination stable
// when several posts share a timestamp.
type Post struct {
	ID        uint         `gorm:"primaryKey"`
	Text      string       `gorm:"type:text;not null"`
	GroupID   *uint        `gorm:"index"`
	Group     *group.Group `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	AuthorID  uuid.UUID    `gorm:"type:char(36);not null;index"`
	Author    user.User    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Image     string       `gorm:"size:255"`
	CreatedAt time.Time    `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime"`
}
