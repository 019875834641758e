package schema

type (
	// BaseEntity represents fields shared by every API document
	BaseEntity struct {
		ID      string `json:"_id"`
		Version int    `json:"__v"`
	}

	// User represents a user account
	User struct {
		BaseEntity
		Username  string `json:"username"`
		Password  string `json:"password,omitempty"`
		Role      Role   `json:"role"`
		CreatedAt string `json:"createdAt,omitempty"`
		UpdatedAt string `json:"updatedAt,omitempty"`
	}

	ProfileResult struct {
		Profile User `json:"profile"`
	}

	UsersResult struct {
		Users []*User `json:"users"`
		Count int     `json:"count"`
	}

	UserResult struct {
		User User `json:"user"`
	}

	UpdatedUserResult struct {
		UpdatedUser User `json:"updatedUser"`
	}

	// UpdateMyAccount represents self service account update
	UpdateMyAccount struct {
		Username    string `json:"username,omitempty"`
		NewPassword string `json:"newPassword,omitempty"`
		OldPassword string `json:"oldPassword,omitempty"`
	}

	// UpdateUsersAccount represents administrative account update
	UpdateUsersAccount struct {
		ID       string `json:"_id"`
		Username string `json:"username,omitempty"`
		Password string `json:"password,omitempty"`
		Role     Role   `json:"role,omitempty"`
	}
)

// EntityID returns document id
func (b BaseEntity) EntityID() string { return b.ID }
