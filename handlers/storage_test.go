package handlers

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, path, filename string) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newUploadRouter(svc *MockStorage) *gin.Engine {
	r := newRouter()
	r.POST("/uploads/:folder", NewStorageHandler(svc).UploadFileHandler)
	return r
}

func TestUploadFile(t *testing.T) {
	svc := new(MockStorage)
	svc.On("UploadFile", mock.Anything, mock.Anything, "bromo.jpg", "packages").Return("https://cdn.example/packages/bromo.jpg", nil)

	w := httptest.NewRecorder()
	newUploadRouter(svc).ServeHTTP(w, uploadRequest(t, "/uploads/packages", "bromo.jpg"))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"url":"https://cdn.example/packages/bromo.jpg","folder":"packages"}`, w.Body.String())
}

func TestUploadUnknownFolder(t *testing.T) {
	svc := new(MockStorage)
	w := httptest.NewRecorder()
	newUploadRouter(svc).ServeHTTP(w, uploadRequest(t, "/uploads/secrets", "bromo.jpg"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc := new(MockStorage)
	w := httptest.NewRecorder()
	newUploadRouter(svc).ServeHTTP(w, uploadRequest(t, "/uploads/blog", "notes.exe"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadMissingFile(t *testing.T) {
	svc := new(MockStorage)
	w := httptest.NewRecorder()
	newUploadRouter(svc).ServeHTTP(w, uploadRequest(t, "/uploads/blog", ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadStorageFailure(t *testing.T) {
	svc := new(MockStorage)
	svc.On("UploadFile", mock.Anything, mock.Anything, "hero.png", "landing").Return("", errors.New("bucket unavailable"))

	w := httptest.NewRecorder()
	newUploadRouter(svc).ServeHTTP(w, uploadRequest(t, "/uploads/landing", "hero.png"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
