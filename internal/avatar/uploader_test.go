package avatar

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/chatauth/internal/config"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

func pngDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func testAvatarConfig() config.Avatar {
	return config.Avatar{
		Bucket:   "avatars",
		Region:   "eu-west-1",
		MaxBytes: config.DefaultAvatarMaxBytes,
	}
}

func TestDecodePayload_DataURL(t *testing.T) {
	img, err := DecodePayload(pngDataURL(), 1024)
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, ".png", img.Extension)
	assert.Equal(t, pngBytes, img.Data)
}

func TestDecodePayload_BareBase64(t *testing.T) {
	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")
	img, err := DecodePayload(base64.StdEncoding.EncodeToString(gif), 1024)
	require.NoError(t, err)

	assert.Equal(t, "image/gif", img.ContentType)
}

func TestDecodePayload_SniffsInsteadOfTrustingHeader(t *testing.T) {
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("just some text, not an image"))

	_, err := DecodePayload(payload, 1024)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestDecodePayload_Invalid(t *testing.T) {
	tests := map[string]string{
		"not base64":        "data:image/png;base64,!!!",
		"not base64 bare":   "%%%%",
		"url encoded":       "data:image/png,rawbytes",
		"missing comma":     "data:image/png;base64",
		"empty after comma": "data:image/png;base64,",
		"http url":          "https://example.com/a.png",
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePayload(payload, 1024)
			assert.ErrorIs(t, err, ErrInvalidImage)
		})
	}
}

func TestDecodePayload_TooLarge(t *testing.T) {
	big := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 4096)...)
	payload := base64.StdEncoding.EncodeToString(big)

	_, err := DecodePayload(payload, 1024)
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = DecodePayload(payload, 0)
	assert.NoError(t, err, "zero disables the size limit")
}

func TestS3Uploader_Upload(t *testing.T) {
	client := &fakeS3{}
	uploader := NewS3UploaderWithClient(client, testAvatarConfig())

	url, err := uploader.Upload(context.Background(), "user-1", pngDataURL())
	require.NoError(t, err)

	require.NotNil(t, client.input)
	key := aws.ToString(client.input.Key)
	assert.True(t, strings.HasPrefix(key, "avatars/user-1/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
	assert.Equal(t, "avatars", aws.ToString(client.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(client.input.ContentType))
	assert.Equal(t, int64(len(pngBytes)), aws.ToInt64(client.input.ContentLength))
	assert.Equal(t, pngBytes, client.body)

	assert.Equal(t, "https://avatars.s3.eu-west-1.amazonaws.com/"+key, url)
}

func TestS3Uploader_UniqueKeys(t *testing.T) {
	client := &fakeS3{}
	uploader := NewS3UploaderWithClient(client, testAvatarConfig())

	first, err := uploader.Upload(context.Background(), "user-1", pngDataURL())
	require.NoError(t, err)
	second, err := uploader.Upload(context.Background(), "user-1", pngDataURL())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestS3Uploader_InvalidPayloadSkipsUpload(t *testing.T) {
	client := &fakeS3{}
	uploader := NewS3UploaderWithClient(client, testAvatarConfig())

	_, err := uploader.Upload(context.Background(), "user-1", "data:text/plain;base64,aGVsbG8=")
	assert.ErrorIs(t, err, ErrInvalidImage)
	assert.Nil(t, client.input)
}

func TestS3Uploader_PutObjectFailure(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	uploader := NewS3UploaderWithClient(client, testAvatarConfig())

	_, err := uploader.Upload(context.Background(), "user-1", pngDataURL())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidImage)
}

func TestS3Uploader_PublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Avatar
		want string
	}{
		{
			name: "aws virtual hosted",
			cfg:  config.Avatar{Bucket: "pics", Region: "us-east-1"},
			want: "https://pics.s3.us-east-1.amazonaws.com/avatars/u/k.png",
		},
		{
			name: "custom endpoint",
			cfg:  config.Avatar{Bucket: "pics", Endpoint: "http://localhost:9000/"},
			want: "http://localhost:9000/pics/avatars/u/k.png",
		},
		{
			name: "public base url wins",
			cfg:  config.Avatar{Bucket: "pics", Endpoint: "http://localhost:9000", PublicBaseURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/avatars/u/k.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := NewS3UploaderWithClient(&fakeS3{}, tt.cfg)
			assert.Equal(t, tt.want, uploader.PublicURL("avatars/u/k.png"))
		})
	}
}

func TestNewS3Uploader_StaticCredentials(t *testing.T) {
	cfg := testAvatarConfig()
	cfg.Endpoint = "http://localhost:9000"
	cfg.AccessKeyID = "minio"
	cfg.SecretAccessKey = "minio-secret"
	cfg.UsePathStyle = true

	uploader, err := NewS3Uploader(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/avatars/avatars/u/k.png", uploader.PublicURL("avatars/u/k.png"))
}
