package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"github.com/omkar-s8203/pune-home-circle/internal/catalog"
	"github.com/omkar-s8203/pune-home-circle/internal/service"
)

type submitResponse struct {
	Property         interface{} `json:"property"`
	ImagesUploaded   int         `json:"imagesUploaded"`
	ImagesIncomplete bool        `json:"imagesIncomplete"`
	ImageError       string      `json:"imageError,omitempty"`
}

type reportPayload struct {
	Reason        string `json:"reason" validate:"required"`
	ReporterEmail string `json:"reporterEmail" validate:"omitempty,email"`
}

// ListApproved is the public catalog. All filters arrive as query parameters
// and absent ones disable that criterion.
func (h *Handlers) ListApproved(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	properties, err := h.Property.ListApproved(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, properties, http.StatusOK)
}

func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	property, err := h.Property.Get(r.Context(), identityFrom(r), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, property, http.StatusOK)
}

func (h *Handlers) ListMyProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Property.ListMine(r.Context(), identityFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, properties, http.StatusOK)
}

// SubmitProperty handles the two-phase create: listing fields plus the image
// batch in one multipart request. A partial image failure still returns 201
// with imagesIncomplete set, because the pending listing was saved.
func (h *Handlers) SubmitProperty(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		writeError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	rent, err := strconv.Atoi(r.FormValue("rent"))
	if err != nil {
		writeError(w, "rent must be a number", http.StatusBadRequest)
		return
	}

	req := service.SubmitRequest{
		Title:        r.FormValue("title"),
		PropertyType: r.FormValue("propertyType"),
		Rent:         rent,
		Area:         r.FormValue("area"),
		Description:  r.FormValue("description"),
		MapLink:      r.FormValue("mapLink"),
		Phone:        r.FormValue("phone"),
	}

	files, cleanup, err := imageFiles(r.MultipartForm.File["images"])
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer cleanup()

	result, err := h.Property.Submit(r.Context(), identityFrom(r), req, files)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, submitResult(result), http.StatusCreated)
}

// ResumePropertyImages retries the image phase for a listing whose first
// upload batch failed partway.
func (h *Handlers) ResumePropertyImages(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		writeError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files, cleanup, err := imageFiles(r.MultipartForm.File["images"])
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer cleanup()

	result, err := h.Property.ResumeImages(r.Context(), identityFrom(r), id, files)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, submitResult(result), http.StatusOK)
}

func (h *Handlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Property.Delete(r.Context(), identityFrom(r), id); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "property deleted"}, http.StatusOK)
}

// FileReport accepts reports from anyone, logged in or not.
func (h *Handlers) FileReport(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["id"]

	var payload reportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	reporterEmail := payload.ReporterEmail
	if ident := identityFrom(r); reporterEmail == "" && ident.IsAuthenticated() {
		reporterEmail = ident.Email
	}

	report, err := h.Report.File(r.Context(), propertyID, payload.Reason, reporterEmail)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, report, http.StatusCreated)
}

func submitResult(result *service.SubmitResult) submitResponse {
	resp := submitResponse{
		Property:       result.Property,
		ImagesUploaded: result.ImagesUploaded,
	}
	if result.ImageErr != nil {
		resp.ImagesIncomplete = true
		resp.ImageError = result.ImageErr.Error()
	}
	return resp
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// imageFiles opens each uploaded part and sniffs its real content type; the
// client-declared header is not trusted. The returned cleanup closes every
// opened file and must be called even on the error path of the service call.
func imageFiles(headers []*multipart.FileHeader) ([]service.ImageFile, func(), error) {
	files := make([]service.ImageFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	cleanup := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("could not read uploaded file %q", fh.Filename)
		}
		opened = append(opened, f)

		mtype, err := mimetype.DetectReader(f)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("could not inspect uploaded file %q", fh.Filename)
		}
		if !allowedImageTypes[mtype.String()] {
			cleanup()
			return nil, func() {}, fmt.Errorf("file %q is %s, only jpeg, png, gif and webp are accepted", fh.Filename, mtype.String())
		}
		if _, err := f.Seek(0, 0); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("could not rewind uploaded file %q", fh.Filename)
		}

		files = append(files, service.ImageFile{
			Name:   fh.Filename,
			Reader: f,
			Size:   fh.Size,
		})
	}

	return files, cleanup, nil
}

func filterFromQuery(r *http.Request) catalog.Filter {
	q := r.URL.Query()
	minRent, _ := strconv.Atoi(q.Get("minRent"))
	maxRent, _ := strconv.Atoi(q.Get("maxRent"))

	propertyType := q.Get("type")
	if propertyType == "" {
		propertyType = q.Get("propertyType")
	}

	return catalog.Filter{
		Area:         q.Get("area"),
		PropertyType: propertyType,
		MinRent:      minRent,
		MaxRent:      maxRent,
		Query:        q.Get("q"),
	}
}
