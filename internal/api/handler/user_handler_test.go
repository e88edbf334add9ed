package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fintrust/auth-service/internal/core/domain"
)

type stubUserService struct {
	users map[string]domain.User
	roles map[string]domain.Role
}

func (s *stubUserService) FindByIDDocument(_ context.Context, idDocument string) (*domain.User, error) {
	for _, u := range s.users {
		if u.IDDocument == idDocument {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrEntityNotFound
}

func (s *stubUserService) FindByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubUserService) FindRoleByID(_ context.Context, id string) (*domain.Role, error) {
	if r, ok := s.roles[id]; ok {
		found := r
		return &found, nil
	}
	return nil, domain.ErrEntityNotFound
}

func newUserStub() *stubUserService {
	return &stubUserService{
		users: map[string]domain.User{
			"user_1": {
				ID:         "user_1",
				FirstName:  "Ana",
				LastName:   "Lopez",
				Email:      "ana@test.com",
				IDDocument: "12345678",
				BaseSalary: 2500,
				RoleID:     "role_client",
			},
			"user_2": {
				ID:         "user_2",
				FirstName:  "Beto",
				LastName:   "Diaz",
				Email:      "beto@test.com",
				IDDocument: "87654321",
				BaseSalary: 4000,
				RoleID:     "role_admin",
			},
		},
		roles: map[string]domain.Role{
			"role_client": {ID: "role_client", Name: domain.RoleClient},
			"role_admin":  {ID: "role_admin", Name: domain.RoleAdmin},
		},
	}
}

func TestUserHandler_FindByDocument_OK(t *testing.T) {
	h := NewUserHandler(newUserStub())
	c, rec := newContext(t, `{"idDocument":"12345678"}`)

	if err := h.FindByDocument(c); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["email"] != "ana@test.com" || resp["role"] != domain.RoleClient {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestUserHandler_FindByDocument_NotFoundPropagated(t *testing.T) {
	h := NewUserHandler(newUserStub())
	c, _ := newContext(t, `{"idDocument":"99999999"}`)

	err := h.FindByDocument(c)
	if !errors.Is(err, domain.ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestUserHandler_FindByDocument_RoleMissingPropagated(t *testing.T) {
	stub := newUserStub()
	delete(stub.roles, "role_client")
	h := NewUserHandler(stub)
	c, _ := newContext(t, `{"idDocument":"12345678"}`)

	err := h.FindByDocument(c)
	if !errors.Is(err, domain.ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestUserHandler_FindByDocument_InvalidDocument(t *testing.T) {
	h := NewUserHandler(newUserStub())
	c, _ := newContext(t, `{"idDocument":"12ab"}`)

	err := h.FindByDocument(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_FindByIDs_SkipsUnknown(t *testing.T) {
	h := NewUserHandler(newUserStub())
	c, rec := newContext(t, `{"userIds":["user_1","ghost","user_2"]}`)

	if err := h.FindByIDs(c); err != nil {
		t.Fatalf("batch lookup failed: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}
	if resp[0]["email"] != "ana@test.com" || resp[1]["email"] != "beto@test.com" {
		t.Fatalf("unexpected batch: %v", resp)
	}
}

func TestUserHandler_FindByIDs_EmptyResultIsArray(t *testing.T) {
	h := NewUserHandler(newUserStub())
	c, rec := newContext(t, `{"userIds":["ghost"]}`)

	if err := h.FindByIDs(c); err != nil {
		t.Fatalf("batch lookup failed: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestUserHandler_FindByIDs_MissingIDs(t *testing.T) {
	h := NewUserHandler(newUserStub())
	c, _ := newContext(t, `{}`)

	err := h.FindByIDs(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
