package models

import (
	"errors"
	"time"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	PlatformTiktok    = "tiktok"
	PlatformInstagram = "instagram"
	PlatformYoutube   = "youtube"
	PlatformTwitter   = "twitter"
)

const DownloadTypeBulk = "bulk"

var (
	ErrNotFound   = errors.New("download not found")
	ErrValidation = errors.New("invalid download request")
)

// Download is one tracked batch request. Status only moves forward:
// pending -> processing -> completed/failed.
type Download struct {
	Id             string    `json:"id"`
	Platform       string    `json:"platform"`
	DownloadType   string    `json:"downloadType"`
	Value          string    `json:"value"`
	Limit          int       `json:"limit"`
	Status         string    `json:"status"`
	Progress       int       `json:"progress"`
	TotalFiles     int       `json:"totalFiles"`
	CompletedFiles int       `json:"completedFiles"`
	ZipUrl         *string   `json:"zipUrl"`
	ExcelUrl       *string   `json:"excelUrl"`
	CreatedAt      time.Time `json:"createdAt"`
}

// DownloadFile is one produced artifact belonging to a download.
type DownloadFile struct {
	Id         string `json:"id"`
	DownloadId string `json:"downloadId"`
	Filename   string `json:"filename"`
	Url        string `json:"url"`
	Size       string `json:"size"`
	Views      int    `json:"views"`
	Likes      int    `json:"likes"`
	Comments   int    `json:"comments"`
	Metadata   string `json:"metadata"`
}

// InsertDownloadFile holds the fields a fetch produces before the store
// assigns an id.
type InsertDownloadFile struct {
	DownloadId string
	Filename   string
	Url        string
	Size       string
	Views      int
	Likes      int
	Comments   int
	Metadata   string
}

// FileMetadata is the auxiliary blob serialized into DownloadFile.Metadata.
type FileMetadata struct {
	Duration   string   `json:"duration"`
	Quality    string   `json:"quality"`
	UploadDate string   `json:"uploadDate"`
	Hashtags   []string `json:"hashtags"`
}

// StatusSnapshot is the joined download + file-list view served to
// polling clients.
type StatusSnapshot struct {
	Download Download
	Files    []DownloadFile
}
