package export_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/export"
	exporthttp "github.com/MrJamesThe3rd/khusela/internal/http/export"
)

func serve(repo application.Repository, role auth.Role, path string) *httptest.ResponseRecorder {
	svc := application.NewService(repo, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{Role: role})))
		})
	})
	r.Route("/api/applications", exporthttp.NewHandler(export.NewService(svc)).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestHandler_Download(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	status := application.StatusApproved

	repo := application.NewMockRepository(ctrl)
	repo.EXPECT().
		ListApplications(gomock.Any(), application.ListFilter{Status: &status}).
		Return([]*application.Application{
			{Status: application.StatusApproved, Client: &application.Client{FirstName: "Jane", LastName: "Doe"}},
		}, nil)
	repo.EXPECT().CountByStatus(gomock.Any()).Return(map[application.Status]int{application.StatusApproved: 1}, nil)

	rec := serve(repo, auth.RoleHR, "/api/applications/export.xlsx?status=Approved")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "applications_")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetApplications)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jane Doe", rows[1][1])
}

func TestHandler_DownloadRejects(t *testing.T) {
	type testCase struct {
		name       string
		role       auth.Role
		path       string
		wantStatus int
	}

	tests := []testCase{
		{name: "ConsultantForbidden", role: auth.RoleConsultant, path: "/api/applications/export.xlsx", wantStatus: http.StatusForbidden},
		{name: "BadStatus", role: auth.RoleAdmin, path: "/api/applications/export.xlsx?status=Closed", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			rec := serve(application.NewMockRepository(ctrl), tt.role, tt.path)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
