package user

// Seed returns the user records present at process start, before any create.
// IDs are assigned 1..3 so the store's next id starts at 4.
func Seed() []User {
	return []User{
		{ID: 1, Name: "Alice", Email: "alice@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
		{ID: 3, Name: "Charlie", Email: "charlie@example.com"},
	}
}
