package schema

type (
	// Post represents a user post
	Post struct {
		BaseEntity
		Title   string `json:"title"`
		Content string `json:"content"`
		UserID  string `json:"userId,omitempty"`
		Author  string `json:"author,omitempty"`
	}

	CreatePost struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}

	UpdateMyPost struct {
		PostID  string `json:"postId"`
		Title   string `json:"title,omitempty"`
		Content string `json:"content,omitempty"`
	}

	DeleteMyPost struct {
		PostID string `json:"postId"`
	}

	PostResult struct {
		Message string `json:"message,omitempty"`
		Post    Post   `json:"post"`
	}

	PostsResult struct {
		Message string  `json:"message,omitempty"`
		Posts   []*Post `json:"posts"`
		Count   int     `json:"count"`
	}

	UpdatedPostResult struct {
		Message     string `json:"message,omitempty"`
		UpdatedPost Post   `json:"updatedPost"`
	}
)
