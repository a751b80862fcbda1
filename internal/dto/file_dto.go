package dto

import "github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"

// UploadFileForm holds the non-file fields of a multipart upload.
type UploadFileForm struct {
	Visibility models.Visibility `form:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	Kind       models.FileKind   `form:"kind" validate:"omitempty,oneof=IMAGE DOCUMENT OTHER"`
}
