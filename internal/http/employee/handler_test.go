package employee_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/khusela/internal/auth"
	"github.com/MrJamesThe3rd/khusela/internal/employee"
	employeehttp "github.com/MrJamesThe3rd/khusela/internal/http/employee"
)

func serve(repo employee.Repository, role auth.Role, method, path, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{Role: role})))
		})
	})
	r.Route("/api/employees", employeehttp.NewHandler(employee.NewService(repo)).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	return rec
}

func TestHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := employee.NewMockRepository(ctrl)
	repo.EXPECT().CreateEmployee(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			require.NotNil(t, e.BirthDate)
			assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), *e.BirthDate)
			assert.Equal(t, "Brother", e.Emergency.Relationship)
			assert.Equal(t, "250655", e.Banking.BranchCode)
			e.ID = uuid.New()

			return nil
		})

	body := `{"first_name":"Naledi","last_name":"Mokoena","birth_date":"1990-01-01",
		"ec_relationship":"Brother","branch_code":"250655"}`

	rec := serve(repo, auth.RoleHR, http.MethodPost, "/api/employees/", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"birth_date":"1990-01-01"`)
}

func TestHandler_Errors(t *testing.T) {
	type testCase struct {
		name       string
		role       auth.Role
		method     string
		path       string
		body       string
		setupMock  func(m *employee.MockRepository)
		wantStatus int
		wantBody   string
	}

	id := uuid.New()

	tests := []testCase{
		{
			name:       "NameRequired",
			role:       auth.RoleAdmin,
			method:     http.MethodPost,
			path:       "/api/employees/",
			body:       `{"first_name":"Naledi"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"First name and last name are required."}`,
		},
		{
			name:       "BadBirthDate",
			role:       auth.RoleAdmin,
			method:     http.MethodPost,
			path:       "/api/employees/",
			body:       `{"first_name":"Naledi","last_name":"Mokoena","birth_date":"01/01/1990"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"birth_date must be YYYY-MM-DD."}`,
		},
		{
			name:       "ConsultantForbidden",
			role:       auth.RoleConsultant,
			method:     http.MethodGet,
			path:       "/api/employees/",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "HRCannotDelete",
			role:       auth.RoleHR,
			method:     http.MethodDelete,
			path:       "/api/employees/" + id.String(),
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "GetNotFound",
			role:   auth.RoleHR,
			method: http.MethodGet,
			path:   "/api/employees/" + id.String(),
			setupMock: func(m *employee.MockRepository) {
				m.EXPECT().GetEmployee(gomock.Any(), id).Return(nil, employee.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Employee not found."}`,
		},
		{
			name:   "AdminDeletes",
			role:   auth.RoleAdmin,
			method: http.MethodDelete,
			path:   "/api/employees/" + id.String(),
			setupMock: func(m *employee.MockRepository) {
				m.EXPECT().DeleteEmployee(gomock.Any(), id).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Employee deleted successfully."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := employee.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := serve(repo, tt.role, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
