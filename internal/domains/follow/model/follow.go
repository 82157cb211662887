package model

import (
	"time"

	"github.com/google/uuid"
)

// Follow is one directed edge in the follow graph.
type Follow struct {
	FollowerID uuid.UUID `json:"follower_id" db:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id" db:"followee_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// FollowCounts is the follower/following pair shown on profiles.
type FollowCounts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}
