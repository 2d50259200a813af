package domain

import "time"

type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	PhoneHash string
	CreatedAt time.Time
}
