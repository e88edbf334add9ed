package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fintrust/auth-service/internal/core/domain"
)

type stubAuthService struct {
	registered *domain.User
	registerFn func(*domain.User) (*domain.User, error)
	loginFn    func(email, password string) (*domain.Token, error)
}

func (s *stubAuthService) Register(_ context.Context, candidate *domain.User) (*domain.User, error) {
	s.registered = candidate
	if s.registerFn != nil {
		return s.registerFn(candidate)
	}
	saved := *candidate
	saved.ID = "user_1"
	saved.Email = strings.ToLower(saved.Email)
	saved.Password = "hashed"
	saved.RoleID = "role_client"
	return &saved, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*domain.Token, error) {
	if s.loginFn != nil {
		return s.loginFn(email, password)
	}
	return &domain.Token{AccessToken: "signed", ExpiresIn: 3600}, nil
}

func newContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validRegisterBody = `{
	"firstName": "Ana",
	"lastName": "Lopez",
	"email": "Ana@Test.com",
	"idDocument": "12345678",
	"phoneNumber": "987654321",
	"baseSalary": 2500.50,
	"password": "pw"
}`

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)
	c, rec := newContext(t, validRegisterBody)

	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "user_1" || resp.Email != "ana@test.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "hashed") {
		t.Fatalf("password must never appear in the response: %s", rec.Body.String())
	}
	if svc.registered.BaseSalary != 2500.50 {
		t.Fatalf("salary not forwarded: %+v", svc.registered)
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	bodies := map[string]string{
		"missing email":     `{"firstName":"A","lastName":"B","idDocument":"12345678","phoneNumber":"1","baseSalary":1,"password":"pw"}`,
		"bad email":         `{"firstName":"A","lastName":"B","email":"nope","idDocument":"12345678","phoneNumber":"1","baseSalary":1,"password":"pw"}`,
		"short id document": `{"firstName":"A","lastName":"B","email":"a@test.com","idDocument":"123","phoneNumber":"1","baseSalary":1,"password":"pw"}`,
		"alpha id document": `{"firstName":"A","lastName":"B","email":"a@test.com","idDocument":"1234567a","phoneNumber":"1","baseSalary":1,"password":"pw"}`,
		"negative salary":   `{"firstName":"A","lastName":"B","email":"a@test.com","idDocument":"12345678","phoneNumber":"1","baseSalary":-1,"password":"pw"}`,
		"huge salary":       `{"firstName":"A","lastName":"B","email":"a@test.com","idDocument":"12345678","phoneNumber":"1","baseSalary":15000001,"password":"pw"}`,
	}

	for name, body := range bodies {
		c, _ := newContext(t, body)
		err := h.Register(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 HTTPError, got %v", name, err)
		}
	}
}

func TestAuthHandler_Register_ConflictPropagated(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(*domain.User) (*domain.User, error) {
			return nil, domain.ErrEmailAlreadyExists
		},
	}
	h := NewAuthHandler(svc)
	c, _ := newContext(t, validRegisterBody)

	err := h.Register(c)
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("domain error must reach the boundary unchanged, got %v", err)
	}
}

func TestAuthHandler_Login_OK(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newContext(t, `{"email":"ana@test.com","password":"pw"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.Token
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken != "signed" || resp.ExpiresIn != 3600 {
		t.Fatalf("unexpected token response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentialsPropagated(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(string, string) (*domain.Token, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)
	c, _ := newContext(t, `{"email":"ana@test.com","password":"bad"}`)

	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newContext(t, `{"email":"ana@test.com"}`)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
