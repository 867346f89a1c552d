package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/omkar-s8203/pune-home-circle/internal/models"
	"github.com/omkar-s8203/pune-home-circle/internal/service"
)

func adminIdentity() service.Identity {
	return service.Identity{UserID: "admin-1", Email: "admin@example.com", Role: models.RoleAdmin}
}

func TestResolveReport_EmptyBodyResolvesWithoutNotes(t *testing.T) {
	reportSvc := &MockReportService{}
	h := newTestHandlers(&MockPropertyService{}, reportSvc)

	reportSvc.On("Resolve", mock.Anything, adminIdentity(), "r1", "").Return(nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/reports/r1/resolve", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "r1"})
	rr := httptest.NewRecorder()

	h.ResolveReport(rr, withIdentity(req, adminIdentity()))

	assert.Equal(t, http.StatusOK, rr.Code)
	reportSvc.AssertExpectations(t)
}

func TestResolveReport_PassesAdminNotes(t *testing.T) {
	reportSvc := &MockReportService{}
	h := newTestHandlers(&MockPropertyService{}, reportSvc)

	reportSvc.On("Resolve", mock.Anything, adminIdentity(), "r1", "owner warned").Return(nil)

	payload := `{"adminNotes":"owner warned"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/reports/r1/resolve", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"id": "r1"})
	rr := httptest.NewRecorder()

	h.ResolveReport(rr, withIdentity(req, adminIdentity()))

	assert.Equal(t, http.StatusOK, rr.Code)
	reportSvc.AssertExpectations(t)
}

func TestResolveReport_MalformedBodyRejected(t *testing.T) {
	reportSvc := &MockReportService{}
	h := newTestHandlers(&MockPropertyService{}, reportSvc)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/reports/r1/resolve", strings.NewReader(`{"adminNotes":`))
	req = mux.SetURLVars(req, map[string]string{"id": "r1"})
	rr := httptest.NewRecorder()

	h.ResolveReport(rr, withIdentity(req, adminIdentity()))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	reportSvc.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
