package dto

// UploadResponse returns the stored image location and its provider id, which
// submissions keep as the image proof reference.
type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}
