package models

import "time"

// Photo is a picture taken on the camera screen.
// RemoteKey is empty until the photo has been uploaded.
type Photo struct {
	ID        string
	LocalPath string
	RemoteKey string
	TakenAt   time.Time
}

// Quote is an item of the quotes feed.
type Quote struct {
	ID     int    `json:"id"`
	Text   string `json:"quotes"`
	Author string `json:"author"`
}
