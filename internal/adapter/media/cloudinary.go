package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary stores images on the Cloudinary media host. Sources may be data
// URIs or remote URLs; the returned value is the asset's public id.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, source string) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, source, uploader.UploadParams{Folder: c.folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	if resp.PublicID == "" {
		return "", errors.New("cloudinary upload: empty public id")
	}
	return resp.PublicID, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, resp.Error.Message)
	}
	return nil
}

var _ usecase.MediaStore = (*Cloudinary)(nil)
