package dto

// PublishVideoRequest carries the text fields of the multipart video upload
// form; the video and thumbnail files are read from the form separately.
type PublishVideoRequest struct {
	Title           string  `form:"title" binding:"required"`
	Description     string  `form:"description"`
	DurationSeconds float64 `form:"duration"`
}
