package user

// CreateUserRequest represents the request payload for creating a new user.
// Both fields are optional; absent fields default to the empty string.
type CreateUserRequest struct {
	Name  string
	Email string
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	User User
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	ID    int64
	Name  string
	Email string
}

// ListUsersResponse represents the response payload for user listing.
// Users are returned in insertion order, the full collection every time.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    int64
	Name  string
	Email string
}
