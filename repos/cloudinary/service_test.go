package cloudinary

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildForm(t *testing.T) {
	body, contentType, err := buildForm("minifoot_players", "player_1.jpg", strings.NewReader("fake-jpeg-bytes"))
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(body, params["boundary"])

	filePart, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", filePart.FormName())
	assert.Equal(t, "player_1.jpg", filePart.FileName())
	content, err := io.ReadAll(filePart)
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg-bytes", string(content))

	presetPart, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "upload_preset", presetPart.FormName())
	preset, err := io.ReadAll(presetPart)
	require.NoError(t, err)
	assert.Equal(t, "minifoot_players", string(preset))
}
