package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/corteexpress/barberia-api/internal/config"
)

const maxImageWidth = 800

// ImageStore guarda imágenes de servicios en S3, normalizadas a WebP.
type ImageStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewImageStore devuelve nil cuando el bucket no está configurado; los
// handlers tratan nil como "uploads deshabilitados".
func NewImageStore(cfg *config.Config) *ImageStore {
	if cfg.S3Bucket == "" {
		return nil
	}

	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	})

	baseURL := cfg.S3BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &ImageStore{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SaveServiceImage reescala a un ancho máximo, codifica WebP y sube el
// objeto. Devuelve la URL pública.
func (s *ImageStore) SaveServiceImage(
	ctx context.Context,
	serviceID uint,
	img image.Image,
) (string, error) {

	img = scaleDown(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 85}); err != nil {
		return "", err
	}

	key := fmt.Sprintf("services/%d.webp", serviceID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", err
	}

	return s.baseURL + "/" + key, nil
}

func scaleDown(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxImageWidth {
		return img
	}

	h := b.Dy() * maxImageWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
