package entity

// Identity is the backend's answer to "who am I".
type Identity struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

func (i Identity) Valid() bool {
	return i.UserID != ""
}
