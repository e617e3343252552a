package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// UploadService pushes product images to Cloudinary. The admin panel uploads
// an image first, then references the returned URL from the product form.
type UploadService struct {
	cld *cloudinary.Cloudinary
}

// NewUploadService builds the service from a CLOUDINARY_URL connection
// string. An empty URL returns a nil service; callers treat that as uploads
// being unconfigured.
func NewUploadService(cloudinaryURL string) (*UploadService, error) {
	if cloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &UploadService{cld: cld}, nil
}

// UploadProductImage stores one image under the products folder and returns
// its delivery URL. Images are capped to 1800px on the longest side at
// delivery time.
func (s *UploadService) UploadProductImage(ctx context.Context, file io.Reader) (string, error) {
	publicID := fmt.Sprintf("product_%d_%s", time.Now().UnixMilli(), uuid.NewString())

	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         "products",
		PublicID:       publicID,
		Overwrite:      api.Bool(false),
		Transformation: "c_limit,w_1800,h_1800",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}
