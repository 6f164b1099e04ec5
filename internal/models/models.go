// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import (
	"time"
)

// Info represents general information about the service.
type Info struct {
	ServiceName   string    `json:"service_name"`
	Version       string    `json:"version"`
	UptimeSince   time.Time `json:"uptime_since"`
	StorageModel  string    `json:"storage_model"`
	PendingDelete bool      `json:"pending_delete"`
	APILevel      int       `json:"api_level"`
}

// SaveResult is the reply of every save operation. On failure ErrorMessage is
// set (possibly empty) and FilePath is nil. On success ErrorMessage is nil.
type SaveResult struct {
	IsSuccess    bool    `json:"isSuccess"`
	FilePath     *string `json:"filePath"`
	ErrorMessage *string `json:"errorMessage"`
}

// Succeeded builds a success result. filePath may be nil.
func Succeeded(filePath *string) SaveResult {
	return SaveResult{IsSuccess: true, FilePath: filePath}
}

// Failed builds a failure result carrying message.
func Failed(message string) SaveResult {
	return SaveResult{IsSuccess: false, ErrorMessage: &message}
}

// SaveImageArgs are the arguments of the saveImageToGallery method.
type SaveImageArgs struct {
	ImageBytes []byte  `json:"imageBytes" swaggertype:"string" format:"base64"`
	Quality    *int    `json:"quality" validate:"omitempty,min=0,max=100"`
	Name       *string `json:"name" validate:"omitempty,max=255"`
	Folder     *string `json:"folder" validate:"omitempty,max=255"`
}

// SaveFileArgs are the arguments of the saveFileToGallery method.
type SaveFileArgs struct {
	File    *string `json:"file" validate:"omitempty,max=4096"`
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Folder  *string `json:"folder" validate:"omitempty,max=255"`
	IsImage *bool   `json:"isImage"`
}

// MediaEntry is one row of the media registry.
type MediaEntry struct {
	ID           string     `json:"id"`
	Locator      string     `json:"locator"`
	Collection   string     `json:"collection"`
	DisplayName  string     `json:"display_name"`
	RelativePath string     `json:"relative_path"`
	MimeType     *string    `json:"mime_type"`
	BlobKey      string     `json:"blob_key"`
	Size         int64      `json:"size"`
	DateAdded    time.Time  `json:"date_added"`
	DateModified time.Time  `json:"date_modified"`
	DateExpires  *time.Time `json:"date_expires"`
	IsPending    bool       `json:"is_pending"`
}

// EntryValues are the column values supplied when a registry entry is inserted.
type EntryValues struct {
	Collection   string
	DisplayName  string
	RelativePath string
	MimeType     *string
	DateAdded    time.Time
	DateModified time.Time
	DateExpires  *time.Time
	IsPending    bool
}

// EntryUpdate describes a partial update of a registry entry.
type EntryUpdate struct {
	IsPending    *bool
	ClearExpires bool
	DateModified *time.Time
}

// HousekeepingReport summarizes the results of a housekeeping run.
type HousekeepingReport struct {
	EntriesFound    int    `json:"entries_found"`
	EntriesDeleted  int    `json:"entries_deleted"`
	SpaceFreedBytes int64  `json:"space_freed_bytes"`
	DryRun          bool   `json:"dry_run"`
	Message         string `json:"message"`
}

// Registry collections.
const (
	CollectionImages = "images"
	CollectionVideo  = "video"
)
