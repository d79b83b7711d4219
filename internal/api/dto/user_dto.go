package dto

import (
	"time"

	"github.com/spec-kit/freelance-directory/internal/domain"
)

// CodeLabel pairs a stored code with its display label.
type CodeLabel struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// UserResponse is the public view of a profile.
type UserResponse struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name,omitempty"`
	Skill            CodeLabel `json:"skill"`
	Area             CodeLabel `json:"area"`
	RequestFee       CodeLabel `json:"request_fee"`
	Portfolio        string    `json:"portfolio,omitempty"`
	SelfIntroduction string    `json:"self_introduction,omitempty"`
	Twitter          string    `json:"twitter,omitempty"`
	Instagram        string    `json:"instagram,omitempty"`
	TopImage         string    `json:"top_image,omitempty"`
	Like             int       `json:"like"`
	CreatedAt        time.Time `json:"created_at"`
}

// AccountResponse adds the private fields only the owner may see.
type AccountResponse struct {
	UserResponse
	Email    string              `json:"email"`
	State    domain.AccountState `json:"state"`
	IsStaff  bool                `json:"is_staff"`
	IsActive bool                `json:"is_active"`
}

// PageResponse describes a page of a listing.
type PageResponse struct {
	Number   int  `json:"number"`
	Size     int  `json:"size"`
	Total    int  `json:"total"`
	NumPages int  `json:"num_pages"`
	HasNext  bool `json:"has_next"`
	HasPrev  bool `json:"has_prev"`
}

// LikeResponse is returned by the like API.
type LikeResponse struct {
	Like int `json:"like"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		FullName:         u.FullName(),
		Skill:            CodeLabel{Code: string(u.Skill), Label: u.Skill.Label()},
		Area:             CodeLabel{Code: string(u.Area), Label: u.Area.Label()},
		RequestFee:       CodeLabel{Code: string(u.RequestFee), Label: u.RequestFee.Label()},
		Portfolio:        u.Portfolio,
		SelfIntroduction: u.SelfIntroduction,
		Twitter:          u.Twitter,
		Instagram:        u.Instagram,
		TopImage:         u.TopImage,
		Like:             u.Like,
		CreatedAt:        u.CreatedAt,
	}
}

// NewAccountResponse maps a domain user to the owner's view.
func NewAccountResponse(u *domain.User) AccountResponse {
	return AccountResponse{
		UserResponse: NewUserResponse(u),
		Email:        u.Email,
		State:        u.State(),
		IsStaff:      u.IsStaff,
		IsActive:     u.IsActive,
	}
}

// NewUserList maps a slice, never returning nil.
func NewUserList(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
