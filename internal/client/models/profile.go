// Package models defines client-side data models used by the photoshare client.
package models

// Profile is a user's public profile as returned by the API.
type Profile struct {
	// ID is assigned by the server; zero means "no profile yet".
	ID int64 `json:"id"`

	NickName string `json:"nickName"`

	// OwnerUserID is the id of the account owning the profile.
	OwnerUserID int64 `json:"userProfile"`

	// CreatedAt is kept as the server-formatted string.
	CreatedAt string `json:"created_on"`

	// AvatarImage is the avatar URL, empty when none was uploaded.
	AvatarImage string `json:"img"`
}

// IsZero reports whether p denotes "no authenticated profile".
func (p Profile) IsZero() bool {
	return p.ID == 0
}

// ProfileImage is an avatar upload attached to a profile update.
type ProfileImage struct {
	FileName string
	Data     []byte
}
