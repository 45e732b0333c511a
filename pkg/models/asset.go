package models

// AssetKind names one of the single-value asset tables
type AssetKind string

const (
	AssetPhoto  AssetKind = "photos"
	AssetResume AssetKind = "resume"
)

// Represents the body of POST /upload-photo
type PhotoUpload struct {
	Photo string `json:"photo"`
}

// Represents the body of POST /upload-resume
type ResumeUpload struct {
	Resume string `json:"resume"`
}
