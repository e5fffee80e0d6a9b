package domain

type User struct {
	ID        int64  `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	Username  string `json:"username" db:"username"`
	Password  string `json:"-" db:"password"`
	CreatedAt string `json:"created_at,omitempty" db:"created_at"`
}
