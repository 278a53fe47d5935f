package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"snapvote/internal/api"
	"snapvote/internal/blobstore"
	"snapvote/internal/models"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.acquireLimiter(s.uploadLimiter, w, r, "upload") {
		return
	}
	defer s.releaseLimiter(s.uploadLimiter)

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MultipartMaxMemory); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, classifyMultipartError(err))
		return
	}

	file, _, err := r.FormFile("content")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("content is required"), ErrCodeMissingRequired))
		return
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	if err := s.checkMediaType(buffered); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	name, err := models.NormalizeDisplayName(r.FormValue("display_name"))
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(err))
		return
	}

	record, err := s.service.Upload(r.Context(), name, buffered)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, record)
}

// checkMediaType sniffs the leading bytes and rejects media types outside
// the configured allow list. An empty list allows everything; the
// consumer infers the type when decoding.
func (s *Server) checkMediaType(buffered *bufio.Reader) error {
	if s.allowedMediaTypes == nil {
		return nil
	}
	peek, _ := buffered.Peek(512)
	detected := http.DetectContentType(peek)
	mediaType, _, err := mime.ParseMediaType(detected)
	if err != nil {
		mediaType = detected
	}
	if _, ok := s.allowedMediaTypes[strings.ToLower(mediaType)]; !ok {
		return badRequestCode(fmt.Errorf("media type %s is not allowed", mediaType), ErrCodeInvalidMedia)
	}
	return nil
}

func classifyMultipartError(err error) error {
	if err == nil {
		return nil
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return badRequestCode(fmt.Errorf("upload too large"), ErrCodeRequestTooLarge)
	}
	return badRequestCode(fmt.Errorf("invalid multipart payload"), ErrCodeInvalidArgument)
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	images := s.service.List(r.Context())
	if images == nil {
		images = []models.ImageRecord{}
	}
	s.writeJSON(w, http.StatusOK, images)
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	record, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleImageContent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	rc, err := s.service.OpenImage(r.Context(), id)
	if err != nil {
		// A record whose blob is missing is a per-item failure; the
		// caller skips this image and renders the rest.
		if errors.Is(err, blobstore.ErrNotFound) {
			s.writeErrorReq(w, r, http.StatusNotFound, notFoundCode(err, ErrCodeBlobNotFound))
			return
		}
		s.writeServiceError(w, r, err)
		return
	}
	defer rc.Close()

	buffered := bufio.NewReader(rc)
	peek, _ := buffered.Peek(512)
	w.Header().Set("Content-Type", http.DetectContentType(peek))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, buffered); err != nil {
		s.log().Error("stream image content", "id", id, "error", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	records := s.service.List(r.Context())
	// Export preserves upload order, oldest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if records == nil {
		records = []models.ImageRecord{}
	}
	s.writeJSON(w, http.StatusOK, api.ExportResponse{Records: records})
}
