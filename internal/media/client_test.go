package media

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func TestDecodeDataURI(t *testing.T) {
	t.Run("valid png round trips", func(t *testing.T) {
		raw := []byte{0x89, 'P', 'N', 'G'}
		mimeType, data, err := DecodeDataURI(dataURI("image/png", raw))
		require.NoError(t, err)
		assert.Equal(t, "image/png", mimeType)
		assert.Equal(t, raw, data)
	})

	t.Run("plain url is not a data uri", func(t *testing.T) {
		_, _, err := DecodeDataURI("https://img/cap.png")
		assert.ErrorIs(t, err, ErrNotDataURI)
	})

	t.Run("unsupported type is rejected", func(t *testing.T) {
		_, _, err := DecodeDataURI(dataURI("image/gif", []byte("GIF89a")))
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	})

	t.Run("oversized payload is rejected", func(t *testing.T) {
		big := make([]byte, MaxImageFileSize+1)
		_, _, err := DecodeDataURI(dataURI("image/jpeg", big))
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})

	t.Run("broken base64 is rejected", func(t *testing.T) {
		_, _, err := DecodeDataURI("data:image/png;base64,!!!")
		assert.ErrorIs(t, err, ErrNotDataURI)
	})
}

func TestIsDataURI(t *testing.T) {
	assert.True(t, IsDataURI("data:image/png;base64,AAAA"))
	assert.False(t, IsDataURI("https://media.host/cap.png"))
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("posts multipart and parses the result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(MaxImageFileSize))
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "cap.png", header.Filename)

			json.NewEncoder(w).Encode(UploadResult{
				SecureURL: "https://media.host/cap.png",
				PublicID:  "cap-123",
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, srv.URL)
		result, err := client.Upload(ctx, "cap.png", []byte("png-bytes"))
		require.NoError(t, err)
		assert.Equal(t, "https://media.host/cap.png", result.SecureURL)
		assert.Equal(t, "cap-123", result.PublicID)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, srv.URL).Upload(ctx, "cap.png", []byte("x"))
		assert.Error(t, err)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cap-123", body["public_id"])
		w.Write([]byte(`{"result": "ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL)
	assert.NoError(t, client.Delete(ctx, "cap-123"))
}

func TestConfigured(t *testing.T) {
	assert.False(t, NewClient("", "").Configured())
	assert.True(t, NewClient("https://media.host/upload", "https://media.host/delete").Configured())
}
