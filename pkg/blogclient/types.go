// Package blogclient is a typed Go client for the Quill API. It mirrors the
// behavior of the web frontend: a reducer-style session store, paginated
// list loading, route guards, and mutation flows that only reconcile local
// state after the server confirms a change.
package blogclient

import "time"

// User is the API's account representation. Password hashes are never
// present in responses.
type User struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture"`
	IsAdmin        bool      `json:"isAdmin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Post is a published article.
type Post struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment carries its like set so clients can render counts and the acting
// user's like state without extra requests.
type Comment struct {
	ID            uint      `json:"id"`
	PostID        uint      `json:"postId"`
	UserID        uint      `json:"userId"`
	Content       string    `json:"content"`
	Likes         []uint    `json:"likes"`
	NumberOfLikes int       `json:"numberOfLikes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PostsPage is the GET /api/post/getposts response.
type PostsPage struct {
	Posts          []Post `json:"posts"`
	TotalPosts     int64  `json:"totalPosts"`
	LastMonthPosts int64  `json:"lastMonthPosts"`
}

// CommentsPage is the GET /api/comment/getcomments response.
type CommentsPage struct {
	Comments          []Comment `json:"comments"`
	TotalComments     int64     `json:"totalComments"`
	LastMonthComments int64     `json:"lastMonthComments"`
}

// UsersPage is the GET /api/user/getusers response.
type UsersPage struct {
	Users          []User `json:"users"`
	TotalUsers     int64  `json:"totalUsers"`
	LastMonthUsers int64  `json:"lastMonthUsers"`
}

// SignUpRequest is the POST /api/auth/signup payload.
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the POST /api/auth/signin payload.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleSignInRequest is the POST /api/auth/google payload, carrying the
// verified profile from the client-side OAuth exchange.
type GoogleSignInRequest struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	GooglePhotoURL string `json:"googlePhotoUrl"`
}

// CreatePostRequest is the POST /api/post/create payload.
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`
}

// UpdatePostRequest is the PUT /api/post/updatepost payload. Empty fields
// are left unchanged.
type UpdatePostRequest struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`
}

// CreateCommentRequest is the POST /api/comment/create payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
	PostID  uint   `json:"postId"`
	UserID  uint   `json:"userId"`
}

// UpdateUserRequest is the PUT /api/user/update payload. Empty fields are
// left unchanged.
type UpdateUserRequest struct {
	Username       string `json:"username,omitempty"`
	Email          string `json:"email,omitempty"`
	Password       string `json:"password,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// PostQuery filters GET /api/post/getposts.
type PostQuery struct {
	UserID     uint
	PostID     uint
	Category   string
	Slug       string
	SearchTerm string
	StartIndex int
	Limit      int
	Order      string
}
