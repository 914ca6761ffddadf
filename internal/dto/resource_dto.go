package dto

// ResourceUploadRequest accompanies a shared resource file upload as
// multipart form fields.
type ResourceUploadRequest struct {
	Title       string `form:"title" validate:"required,min=2,max=255"`
	Description string `form:"description"`
}
