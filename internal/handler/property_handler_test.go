package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/omkar-s8203/pune-home-circle/internal/apperr"
	"github.com/omkar-s8203/pune-home-circle/internal/catalog"
	"github.com/omkar-s8203/pune-home-circle/internal/config"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
	"github.com/omkar-s8203/pune-home-circle/internal/service"
)

// minimal valid PNG header plus filler, enough for content sniffing
var pngBytes = append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, bytes.Repeat([]byte{0}, 64)...)

func newTestHandlers(property *MockPropertyService, report *MockReportService) *Handlers {
	return &Handlers{
		Property: property,
		Report:   report,
		Cfg: &config.Config{
			JWTSecretKey:  "test-secret",
			MaxUploadSize: 10 << 20,
		},
		Validate: validator.New(),
	}
}

func withIdentity(r *http.Request, ident service.Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, ident))
}

func ownerIdentity() service.Identity {
	return service.Identity{UserID: "owner-1", Email: "owner@example.com", Role: models.RoleOwner}
}

func multipartSubmitBody(t *testing.T, images int) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"title":        "Sunny 1BHK near metro",
		"propertyType": "1bhk",
		"rent":         "14000",
		"area":         "Wakad",
		"description":  "east facing",
		"phone":        "9876543210",
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}

	for i := 0; i < images; i++ {
		part, err := writer.CreateFormFile("images", fmt.Sprintf("photo-%d.png", i))
		require.NoError(t, err)
		_, err = part.Write(pngBytes)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSubmitProperty_Success(t *testing.T) {
	propertySvc := &MockPropertyService{}
	h := newTestHandlers(propertySvc, &MockReportService{})

	propertySvc.On("Submit", mock.Anything, ownerIdentity(),
		mock.MatchedBy(func(req service.SubmitRequest) bool {
			return req.Title == "Sunny 1BHK near metro" && req.Rent == 14000
		}),
		mock.MatchedBy(func(files []service.ImageFile) bool { return len(files) == 2 })).
		Return(&service.SubmitResult{
			Property:       &models.Property{ID: "prop-1", Status: models.PropertyStatusPending},
			ImagesUploaded: 2,
		}, nil)

	body, contentType := multipartSubmitBody(t, 2)
	req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.SubmitProperty(rr, withIdentity(req, ownerIdentity()))

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp submitResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.ImagesUploaded)
	assert.False(t, resp.ImagesIncomplete)
}

func TestSubmitProperty_PartialImageFailureStillCreated(t *testing.T) {
	propertySvc := &MockPropertyService{}
	h := newTestHandlers(propertySvc, &MockReportService{})

	propertySvc.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&service.SubmitResult{
			Property:       &models.Property{ID: "prop-1", Status: models.PropertyStatusPending},
			ImagesUploaded: 1,
			ImageErr:       fmt.Errorf("image 1: %w", apperr.ErrStorageFailure),
		}, nil)

	body, contentType := multipartSubmitBody(t, 2)
	req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.SubmitProperty(rr, withIdentity(req, ownerIdentity()))

	// the listing exists, so this is still a create
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp submitResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.ImagesIncomplete)
	assert.Equal(t, 1, resp.ImagesUploaded)
	assert.NotEmpty(t, resp.ImageError)
}

func TestSubmitProperty_RejectsNonImageUpload(t *testing.T) {
	propertySvc := &MockPropertyService{}
	h := newTestHandlers(propertySvc, &MockReportService{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", "x"))
	require.NoError(t, writer.WriteField("rent", "14000"))
	part, err := writer.CreateFormFile("images", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("just some plain text, definitely not pixels"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()

	h.SubmitProperty(rr, withIdentity(req, ownerIdentity()))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	propertySvc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// SVG sniffs as an image but can carry scripts, so it never reaches storage.
func TestSubmitProperty_RejectsSVGUpload(t *testing.T) {
	propertySvc := &MockPropertyService{}
	h := newTestHandlers(propertySvc, &MockReportService{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", "x"))
	require.NoError(t, writer.WriteField("rent", "14000"))
	part, err := writer.CreateFormFile("images", "photo.svg")
	require.NoError(t, err)
	_, err = part.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()

	h.SubmitProperty(rr, withIdentity(req, ownerIdentity()))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	propertySvc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitProperty_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"blocked contact", fmt.Errorf("blocked: %w", apperr.ErrBlocked), http.StatusForbidden},
		{"quota exceeded", fmt.Errorf("quota: %w", apperr.ErrQuotaExceeded), http.StatusConflict},
		{"invalid draft", fmt.Errorf("area: %w", apperr.ErrInvalidArgument), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			propertySvc := &MockPropertyService{}
			h := newTestHandlers(propertySvc, &MockReportService{})

			propertySvc.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.serviceErr)

			body, contentType := multipartSubmitBody(t, 2)
			req := httptest.NewRequest(http.MethodPost, "/api/properties", body)
			req.Header.Set("Content-Type", contentType)
			rr := httptest.NewRecorder()

			h.SubmitProperty(rr, withIdentity(req, ownerIdentity()))

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestListApproved_ParsesFilterFromQuery(t *testing.T) {
	propertySvc := &MockPropertyService{}
	h := newTestHandlers(propertySvc, &MockReportService{})

	propertySvc.On("ListApproved", mock.Anything, catalog.Filter{
		Area:         "Baner",
		PropertyType: "2bhk",
		MinRent:      10000,
		MaxRent:      30000,
		Query:        "metro",
	}).Return([]models.Property{{ID: "p1"}}, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/properties?area=Baner&type=2bhk&minRent=10000&maxRent=30000&q=metro", nil)
	rr := httptest.NewRecorder()

	h.ListApproved(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	propertySvc.AssertExpectations(t)
}

func TestListApproved_AcceptsLegacyPropertyTypeParam(t *testing.T) {
	propertySvc := &MockPropertyService{}
	h := newTestHandlers(propertySvc, &MockReportService{})

	propertySvc.On("ListApproved", mock.Anything, catalog.Filter{PropertyType: "1bhk"}).
		Return([]models.Property{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/properties?propertyType=1bhk", nil)
	rr := httptest.NewRecorder()

	h.ListApproved(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	propertySvc.AssertExpectations(t)
}

func TestGetProperty_NotFound(t *testing.T) {
	propertySvc := &MockPropertyService{}
	h := newTestHandlers(propertySvc, &MockReportService{})

	propertySvc.On("Get", mock.Anything, service.Anonymous, "ghost").
		Return(nil, fmt.Errorf("property ghost: %w", apperr.ErrNotFound))

	req := httptest.NewRequest(http.MethodGet, "/api/properties/ghost", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "ghost"})
	rr := httptest.NewRecorder()

	h.GetProperty(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Code)
}

func TestFileReport_UsesSignedInEmailWhenMissing(t *testing.T) {
	reportSvc := &MockReportService{}
	h := newTestHandlers(&MockPropertyService{}, reportSvc)

	reportSvc.On("File", mock.Anything, "prop-1", "fake listing", "owner@example.com").
		Return(&models.Report{ID: "r1", Status: models.ReportStatusOpen}, nil)

	payload := `{"reason":"fake listing"}`
	req := httptest.NewRequest(http.MethodPost, "/api/properties/prop-1/report", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"id": "prop-1"})
	rr := httptest.NewRecorder()

	h.FileReport(rr, withIdentity(req, ownerIdentity()))

	assert.Equal(t, http.StatusCreated, rr.Code)
	reportSvc.AssertExpectations(t)
}

func TestFileReport_AnonymousWithoutEmail(t *testing.T) {
	reportSvc := &MockReportService{}
	h := newTestHandlers(&MockPropertyService{}, reportSvc)

	reportSvc.On("File", mock.Anything, "prop-1", "spam", "").
		Return(&models.Report{ID: "r1", Status: models.ReportStatusOpen}, nil)

	payload := `{"reason":"spam"}`
	req := httptest.NewRequest(http.MethodPost, "/api/properties/prop-1/report", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"id": "prop-1"})
	rr := httptest.NewRecorder()

	h.FileReport(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestRequireAuth_BlocksAnonymous(t *testing.T) {
	called := false
	wrapped := RequireAuth(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/api/my/properties", nil)
	rr := httptest.NewRecorder()

	wrapped(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)

	rr = httptest.NewRecorder()
	wrapped(rr, withIdentity(req, ownerIdentity()))
	assert.True(t, called)
}
