package domain

import "time"

// Record field names shared by the retrieval normalizer and the index mappings.
const (
	FieldID          = "id"
	FieldUserID      = "userid"
	FieldUsername    = "username"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldURL         = "url"
	FieldMediaURL    = "mediaurl"
	FieldTimestamp   = "timestamp"
)

var DocumentFields = []string{
	FieldID, FieldUserID, FieldUsername, FieldTitle, FieldDescription, FieldURL, FieldMediaURL, FieldTimestamp,
}

// DocumentRecord is a retrieval hit normalized to fixed string fields.
// Absent fields are empty strings.
type DocumentRecord struct {
	ID          string `json:"id"`
	UserID      string `json:"userid"`
	Username    string `json:"username"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	MediaURL    string `json:"mediaurl"`
	Timestamp   string `json:"timestamp"`
}

// Field returns the value of a named record field.
func (d DocumentRecord) Field(name string) string {
	switch name {
	case FieldID:
		return d.ID
	case FieldUserID:
		return d.UserID
	case FieldUsername:
		return d.Username
	case FieldTitle:
		return d.Title
	case FieldDescription:
		return d.Description
	case FieldURL:
		return d.URL
	case FieldMediaURL:
		return d.MediaURL
	case FieldTimestamp:
		return d.Timestamp
	default:
		return ""
	}
}

// SetField assigns a named record field. Unknown names are ignored.
func (d *DocumentRecord) SetField(name, value string) {
	switch name {
	case FieldID:
		d.ID = value
	case FieldUserID:
		d.UserID = value
	case FieldUsername:
		d.Username = value
	case FieldTitle:
		d.Title = value
	case FieldDescription:
		d.Description = value
	case FieldURL:
		d.URL = value
	case FieldMediaURL:
		d.MediaURL = value
	case FieldTimestamp:
		d.Timestamp = value
	}
}

// Post is a media item as stored in the search index.
type Post struct {
	ID          string    `json:"id" yaml:"id"`
	UserID      string    `json:"userid" yaml:"userid"`
	Username    string    `json:"username" yaml:"username"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	URL         string    `json:"url" yaml:"url"`
	MediaURL    string    `json:"mediaurl" yaml:"mediaurl"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
}
