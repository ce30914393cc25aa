package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// MaxImageFileSize caps uploads at 2MB, same limit the upload form applies.
const MaxImageFileSize = 2 * 1024 * 1024

var acceptedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var (
	ErrNotDataURI       = errors.New("not a base64 data-URI")
	ErrUnsupportedImage = errors.New("only .jpg, .jpeg, .png and .webp formats are supported")
	ErrImageTooLarge    = errors.New("file size exceeds 2MB")
)

// Client talks to the media host: multipart upload returning
// {secure_url, public_id}, delete by public_id.
type Client struct {
	HTTPClient *http.Client
	UploadURL  string
	DeleteURL  string
}

func NewClient(uploadURL, deleteURL string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		UploadURL:  uploadURL,
		DeleteURL:  deleteURL,
	}
}

// Configured reports whether a media host is wired up at all. Without one,
// products keep their data-URI images (pending upload) in the catalog.
func (c *Client) Configured() bool {
	return c.UploadURL != ""
}

type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Upload sends the file as multipart form data.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (UploadResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, err
	}
	if _, err := part.Write(data); err != nil {
		return UploadResult{}, err
	}
	if err := w.Close(); err != nil {
		return UploadResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL, &body)
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return UploadResult{}, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return UploadResult{}, fmt.Errorf("media upload failed: %s", resp.Status)
	}

	var result UploadResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return UploadResult{}, fmt.Errorf("failed to parse upload response: %v", err)
	}
	return result, nil
}

// Delete removes a previously uploaded image by its public id.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	payload, _ := json.Marshal(map[string]string{"public_id": publicID})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.DeleteURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("media delete failed: %s", resp.Status)
	}
	return nil
}

// IsDataURI reports whether the image value is a pending base64 upload
// rather than a resolved media host URL.
func IsDataURI(image string) bool {
	return strings.HasPrefix(image, "data:")
}

// DecodeDataURI converts a data-URI back to raw file bytes, enforcing the
// form's type allow-list and size cap.
func DecodeDataURI(dataURI string) (mimeType string, data []byte, err error) {
	head, b64, found := strings.Cut(dataURI, ";base64,")
	if !found || !strings.HasPrefix(head, "data:") {
		return "", nil, ErrNotDataURI
	}

	mimeType = strings.TrimPrefix(head, "data:")
	if !acceptedImageTypes[mimeType] {
		return "", nil, ErrUnsupportedImage
	}

	data, err = base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", nil, ErrNotDataURI
	}
	if len(data) > MaxImageFileSize {
		return "", nil, ErrImageTooLarge
	}
	return mimeType, data, nil
}
