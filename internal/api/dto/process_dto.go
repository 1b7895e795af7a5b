package dto

// VideoReadyRequest is the transcoder's completion callback. ObjKey is
// the original upload key (video id plus ".mp4").
type VideoReadyRequest struct {
	Secret     string            `json:"secretKey" binding:"required"`
	ObjKey     string            `json:"objKey" binding:"required"`
	StreamURLs map[string]string `json:"streamUrls" binding:"required"`
	CaptionURL string            `json:"captionUrl"`
	MasterURL  string            `json:"masterUrl"`
	Duration   float64           `json:"duration" binding:"gte=0"`
}

// ImageReadyRequest is the image pipeline's completion callback. The
// ObjKey prefix selects the target: "uid-avatar", "uid-bg",
// "communityId-", or a bare video id for thumbnails.
type ImageReadyRequest struct {
	Secret string `json:"secretKey" binding:"required"`
	ObjKey string `json:"objKey" binding:"required"`
	URL    string `json:"url" binding:"required"`
}

// ProcessErrorRequest cancels a video after a transcoding failure.
type ProcessErrorRequest struct {
	Secret  string `json:"secretKey" binding:"required"`
	ObjKey  string `json:"objKey" binding:"required"`
	Message string `json:"message"`
}
