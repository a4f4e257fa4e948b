package Models

import "time"

// User is an account on the supervisor/worker apps. Permission levels:
// 1 = field worker, 2 = supervisor, 4 = admin.
type User struct {
	Id         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name"`
	Username   string    `json:"username" gorm:"unique"`
	Password   []byte    `json:"-"`
	Permission int       `json:"permission"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
