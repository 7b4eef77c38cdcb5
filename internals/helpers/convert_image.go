package helper

import (
	"bytes"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	maxImageWidth = 1280
	webpQuality   = 80
)

// ConvertToWebP decodes an uploaded image, scales it down to maxImageWidth
// when wider, and re-encodes it as WebP.
func ConvertToWebP(fileHeader *multipart.FileHeader) (*bytes.Buffer, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf, nil
}

// UploadImage converts an upload to WebP and pushes it to object storage,
// returning the public URL.
func UploadImage(folder string, fileHeader *multipart.FileHeader) (string, error) {
	buf, err := ConvertToWebP(fileHeader)
	if err != nil {
		return "", err
	}

	filename := GenerateUniqueFilename(folder, fileHeader.Filename) + ".webp"
	if err := UploadToStorage("image", filename, "image/webp", buf); err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/image/%s",
		os.Getenv("SUPABASE_PROJECT_URL"),
		url.PathEscape(filename),
	)
	return publicURL, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilenameChars.ReplaceAllString(filename, "_")
}

func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}

// UploadToStorage writes an object to Supabase-compatible storage.
func UploadToStorage(bucket, filename, contentType string, data *bytes.Buffer) error {
	storageURL := os.Getenv("SUPABASE_PROJECT_URL")
	storageKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if storageURL == "" || storageKey == "" {
		return fmt.Errorf("object storage is not configured")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", storageURL, bucket, url.PathEscape(filename))
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(data.Bytes()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+storageKey)
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("storage responded with status %d", resp.StatusCode)
	}
	return nil
}
