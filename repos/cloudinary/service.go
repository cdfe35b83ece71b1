// Package cloudinary uploads player photos through Cloudinary's unsigned
// upload endpoint and hands back the stable hosted URL stored on the player
// document.
package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

type Service struct {
	httpClient   *http.Client
	cloudName    string
	uploadPreset string
	log          zerolog.Logger
}

func NewService(cloudName, uploadPreset string, log zerolog.Logger) *Service {
	return &Service{
		httpClient:   &http.Client{},
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		log:          log.With().Str("component", "cloudinary").Logger(),
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends one image and returns its hosted URL. No retry policy: the
// caller surfaces the failure and the user tries again.
func (s *Service) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	body, contentType, err := buildForm(s.uploadPreset, filename, file)
	if err != nil {
		return "", err
	}

	apiURL := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	response, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Error().Err(err).Msg("Upload request failed")
		return "", err
	}
	defer response.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return "", xerrors.Errorf("failed to parse upload response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		s.log.Error().Int("status", response.StatusCode).Str("message", parsed.Error.Message).Msg("Upload rejected")
		return "", xerrors.Errorf("upload rejected: %s", parsed.Error.Message)
	}
	if parsed.SecureURL == "" {
		return "", xerrors.New("upload response missing secure_url")
	}

	s.log.Info().Str("url", parsed.SecureURL).Msg("Photo uploaded")
	return parsed.SecureURL, nil
}

func buildForm(preset, filename string, file io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("upload_preset", preset); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}
