package model

type User struct {
	ID          string
	Username    string
	DisplayName string
	Avatar      string
}

// Name returns the best display value for the user.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
