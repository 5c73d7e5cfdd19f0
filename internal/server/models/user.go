package models

import "time"

// TimestampLayout is the ISO-8601 form used for User.Timestamp: UTC with
// millisecond precision and a literal Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// User is one persisted signup. Password is stored verbatim.
type User struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Timestamp string `json:"timestamp"`
}

func NewUser(email, password string, now time.Time) User {
	return User{
		Email:     email,
		Password:  password,
		Timestamp: FormatTimestamp(now),
	}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
