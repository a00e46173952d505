package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-account-keeper/models"
)

const profilePictureField = "profilePicture"

// parseForm parses a multipart body limited to h.maxUploadSize. A body that
// is not multipart is accepted as an url-encoded form.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (int, error) {
	if r.ContentLength > h.maxUploadSize {
		return http.StatusRequestEntityTooLarge, &http.MaxBytesError{Limit: h.maxUploadSize}
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	err := r.ParseMultipartForm(h.maxUploadSize)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return 0, nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge, err
	}

	return http.StatusBadRequest, err
}

// formValue returns the trimmed value of field and whether the client sent
// it at all.
func formValue(r *http.Request, field string) (string, bool) {
	values, ok := r.PostForm[field]
	if !ok || len(values) == 0 {
		return "", false
	}

	return strings.TrimSpace(values[0]), true
}

// readPicture returns the uploaded profile picture, or nil when the form
// carries no file under profilePictureField.
func readPicture(r *http.Request) (*models.Picture, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile(profilePictureField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening uploaded picture: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("error reading uploaded picture: %w", err)
	}

	return &models.Picture{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func writePicture(w http.ResponseWriter, picture models.Picture) {
	contentType := picture.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(picture.Data)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprint(len(picture.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(picture.Data)
}
