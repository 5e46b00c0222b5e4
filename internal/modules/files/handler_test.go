package files

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic/internal/pkg/storage"
)

// smallest valid PNG header, enough for content sniffing
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newRouter(t *testing.T) (*gin.Engine, *storage.LocalStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st, err := storage.NewLocalStorage(t.TempDir(), "/static/uploads")
	require.NoError(t, err)

	r := gin.New()
	NewHandler(NewService(st)).RegisterRoutes(r.Group("/api/v1"))
	return r, st
}

func upload(t *testing.T, r *gin.Engine, folder, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if folder != "" {
		require.NoError(t, mw.WriteField("folder", folder))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadListDelete(t *testing.T) {
	r, _ := newRouter(t)

	w := upload(t, r, "doctors", "ali.png", pngBytes)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			File storage.Object `json:"file"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	obj := created.Data.File
	assert.True(t, strings.HasPrefix(obj.Path, "doctors/"))
	assert.True(t, strings.HasSuffix(obj.Path, ".png"))
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, "/static/uploads/"+obj.Path, obj.URL)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/files?prefix=doctors", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), obj.Path)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+obj.Path, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+obj.Path, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadRejections(t *testing.T) {
	r, _ := newRouter(t)

	w := upload(t, r, "", "script.sh", []byte("#!/bin/sh\necho hi\n"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file type is not allowed")

	w = upload(t, r, "../outside", "a.png", pngBytes)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload(t, r, "", "empty.png", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
