package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes caps the in-memory multipart buffer.
const maxUploadBytes = 32 << 20

type uploadResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type listEntry struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// handleUpload reads the multipart "file" field and stores it. Per the route
// contract every failure, including the empty-file case, is a 500 with the
// error message in the body.
func (rt *Router) handleUpload(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
	file, header, err := req.FormFile("file")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	obj, err := rt.files.Upload(req.Context(), data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{Name: obj.Name, URL: obj.URL, Size: obj.Size})
}

func (rt *Router) handleListFiles(w http.ResponseWriter, req *http.Request) {
	objs, err := rt.files.List(req.Context())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	entries := make([]listEntry, 0, len(objs))
	for _, obj := range objs {
		entries = append(entries, listEntry{Name: obj.Name, URL: obj.URL, CreatedAt: obj.CreatedAt})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (rt *Router) handleDeleteFile(w http.ResponseWriter, req *http.Request) {
	key := chi.URLParam(req, "*")
	if err := rt.files.Delete(req.Context(), key); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
