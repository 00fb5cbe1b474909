package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// HostUploadClient posts one file per request to the external media host: a
// multipart form with the file and the account's upload key, answered with a
// JSON body carrying either a public URL or a human-readable error message.
type HostUploadClient struct {
	endpoint string
	key      string
	client   *http.Client
}

func NewHostUploadClient(endpoint, key string) *HostUploadClient {
	return &HostUploadClient{
		endpoint: endpoint,
		key:      key,
		client:   &http.Client{},
	}
}

func (c *HostUploadClient) Upload(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if c.key != "" {
		if err := writer.WriteField("key", c.key); err != nil {
			return "", fmt.Errorf("build upload form: %w", err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("read upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			URL string `json:"url"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("media host returned unreadable response (%s)", resp.Status)
	}

	if !payload.Success || payload.Data.URL == "" {
		message := payload.Error.Message
		if message == "" {
			message = fmt.Sprintf("media host rejected upload (%s)", resp.Status)
		}
		// The host's message travels to the admin user verbatim.
		return "", fmt.Errorf("%s", message)
	}

	return payload.Data.URL, nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
