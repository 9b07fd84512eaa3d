package model

import "time"

// MedicalRecord is the metadata for an uploaded document. The file content
// itself lives in object storage under StoragePath; FileName is the
// storage-assigned name, OriginalName the user-supplied one.
type MedicalRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	FileName     string    `json:"fileName"`
	OriginalName string    `json:"originalName"`
	FileType     string    `json:"fileType"`
	FileSize     int64     `json:"fileSize"`
	StoragePath  string    `json:"-"`
	DownloadURL  string    `json:"downloadUrl"`
	UploadedAt   time.Time `json:"uploadedAt"`
}
