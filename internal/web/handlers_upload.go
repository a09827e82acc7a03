package web

// handlers_upload.go accepts document images as multipart form data. Files
// are stored under the configured upload directory with a UUID prefix so
// colliding client filenames never overwrite each other, and a pending
// document record is created for review.

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/taxdesk/taxdesk/internal/document"
	"github.com/taxdesk/taxdesk/internal/logging"
)

// allowedExtensions are the accepted upload file types.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".pdf":  true,
}

// handleUpload stores an uploaded document image and creates its pending
// record. Expects multipart form data with a "file" part and a "type" field.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		badRequest(w, "file too large or malformed form data")
		return
	}

	typ, err := document.ParseType(r.FormValue("type"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "no file provided")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		badRequest(w, "unsupported file type "+ext)
		return
	}

	stored := uuid.NewString() + ext
	path := filepath.Join(s.cfg.Upload.Dir, stored)

	if err := saveFile(path, file); err != nil {
		s.respondError(w, r, err)
		return
	}

	doc, err := s.service.CreatePending(r.Context(), typ, path)
	if err != nil {
		// The record is the source of truth; an orphaned file is cleaned
		// up rather than left dangling.
		os.Remove(path)
		s.respondError(w, r, err)
		return
	}

	b, err := document.MarshalDocument(doc)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.WithFields(r.Context(), "document_id", doc.ID(), "type", string(typ)).
		Info("document uploaded", "file", stored)
	writeJSON(w, http.StatusCreated, json.RawMessage(b))
}

func saveFile(path string, content io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, content); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
