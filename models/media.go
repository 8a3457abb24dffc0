package models

// ImagesRequest adds already uploaded images to a package or the gallery.
type ImagesRequest struct {
	URLs []string `json:"urls" binding:"required,min=1,dive,required"`
}

// ImageRequest names one image to remove.
type ImageRequest struct {
	URL string `json:"url" binding:"required"`
}

// UploadResult is the public address of an uploaded file.
type UploadResult struct {
	URL    string `json:"url"`
	Folder string `json:"folder"`
}
