package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeProofStorage struct {
	lastName string
	payload  []byte
	fail     error
}

func (f *fakeProofStorage) Upload(_ context.Context, name string, reader io.Reader) (string, string, error) {
	if f.fail != nil {
		return "", "", f.fail
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", "", err
	}

	f.lastName = name
	f.payload = data

	return "https://cdn.example.com/" + name, "olahraga/proof/" + name, nil
}

func makeFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("file")
	require.NoError(t, err)

	return header
}

func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
}

func TestUploadStoresValidImage(t *testing.T) {
	storage := &fakeProofStorage{}
	svc := NewUploadService(storage, 5, zerolog.New(io.Discard))

	header := makeFileHeader(t, "bukti push up!.png", pngBytes())

	result, err := svc.Upload(context.Background(), header)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/bukti-push-up.png", result.URL)
	require.Equal(t, "olahraga/proof/bukti-push-up.png", result.PublicID)
	require.Equal(t, "image/png", result.MimeType)
	require.Equal(t, int64(len(storage.payload)), result.Size)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	storage := &fakeProofStorage{}
	svc := NewUploadService(storage, 1, zerolog.New(io.Discard))

	big := append(pngBytes(), bytes.Repeat([]byte{1}, 2*1024*1024)...)
	header := makeFileHeader(t, "big.png", big)

	_, err := svc.Upload(context.Background(), header)
	require.ErrorIs(t, err, ErrUploadTooLarge)
	require.Empty(t, storage.payload)
}

func TestUploadRejectsNonImage(t *testing.T) {
	storage := &fakeProofStorage{}
	svc := NewUploadService(storage, 5, zerolog.New(io.Discard))

	header := makeFileHeader(t, "report.pdf", []byte("%PDF-1.7 not an image"))

	_, err := svc.Upload(context.Background(), header)
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadRequiresFile(t *testing.T) {
	svc := NewUploadService(&fakeProofStorage{}, 5, zerolog.New(io.Discard))

	_, err := svc.Upload(context.Background(), nil)
	require.ErrorIs(t, err, ErrUploadFileRequired)
}
