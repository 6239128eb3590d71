package response

import (
	"time"

	"reelrate/internal/data/entity"
)

type AuthResponse struct {
	User      UserSummary `json:"user"`
	Token     string      `json:"token,omitempty"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
}

func NewAuthResponse(user *entity.User, session *entity.Session) *AuthResponse {
	resp := &AuthResponse{
		User: UserToSummary(user),
	}

	if session != nil {
		resp.Token = session.Token.String()
		expires := session.ExpiresAt
		resp.ExpiresAt = &expires
	}

	return resp
}
