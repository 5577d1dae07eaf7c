package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	portmedia "petplus/internal/ports/media"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	ErrNotConfigured = errors.New("cloudinary not configured")
	ErrUpstream      = errors.New("cloudinary upstream error")
)

type Config struct {
	CloudName string
	APIKey    string
	APISecret string

	// Opcional: prefijo de carpetas; default "petplus".
	FolderRoot string
}

// profile es carpeta + transformación por tipo de imagen (el host redimensiona y normaliza).
type profile struct {
	Folder         string
	Transformation string
}

func profileFor(root string, kind portmedia.Kind) (profile, error) {
	switch kind {
	case portmedia.KindPet:
		return profile{Folder: root + "/pets", Transformation: "c_limit,h_800,w_800"}, nil
	case portmedia.KindPost:
		return profile{Folder: root + "/posts", Transformation: "c_limit,h_1200,w_1200"}, nil
	case portmedia.KindUser:
		return profile{Folder: root + "/users", Transformation: "c_fill,g_face,h_400,w_400"}, nil
	default:
		return profile{}, fmt.Errorf("cloudinary: unknown media kind %q", kind)
	}
}

// Uploader implementa media.Uploader contra Cloudinary.
type Uploader struct {
	client *cld.Cloudinary
	root   string
}

func New(cfg Config) (*Uploader, error) {
	if strings.TrimSpace(cfg.CloudName) == "" || strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.APISecret) == "" {
		return nil, ErrNotConfigured
	}

	client, err := cld.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: init: %w", err)
	}

	root := strings.Trim(strings.TrimSpace(cfg.FolderRoot), "/")
	if root == "" {
		root = "petplus"
	}

	return &Uploader{client: client, root: root}, nil
}

func (u *Uploader) Upload(ctx context.Context, in portmedia.Upload) (string, error) {
	if u == nil || u.client == nil {
		return "", ErrNotConfigured
	}

	p, err := profileFor(u.root, in.Kind)
	if err != nil {
		return "", err
	}

	resp, err := u.client.Upload.Upload(ctx, in.Body, uploader.UploadParams{
		PublicID:       in.PublicID,
		Folder:         p.Folder,
		Transformation: p.Transformation,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: empty response", ErrUpstream)
	}
	if msg := strings.TrimSpace(resp.Error.Message); msg != "" {
		return "", fmt.Errorf("%w: %s", ErrUpstream, msg)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("%w: response without secure_url", ErrUpstream)
	}
	return resp.SecureURL, nil
}
