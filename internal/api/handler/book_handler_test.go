package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/bookstore-api/internal/core/domain"
	"github.com/bookvault/bookstore-api/internal/core/ports"
)

type stubBookService struct {
	createFn func(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error)
	getFn    func(ctx context.Context, id string) (*domain.Book, error)
	updateFn func(ctx context.Context, in ports.UpdateBookInput) (*domain.Book, error)
	deleteFn func(ctx context.Context, id, actorID string) error
	listFn   func(ctx context.Context, page, limit int) (*ports.ListBooksResult, error)
}

func (s *stubBookService) Create(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error) {
	return s.createFn(ctx, in)
}

func (s *stubBookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookService) List(ctx context.Context, page, limit int) (*ports.ListBooksResult, error) {
	return s.listFn(ctx, page, limit)
}

func (s *stubBookService) Update(ctx context.Context, in ports.UpdateBookInput) (*domain.Book, error) {
	return s.updateFn(ctx, in)
}

func (s *stubBookService) Delete(ctx context.Context, id, actorID string) error {
	return s.deleteFn(ctx, id, actorID)
}

func TestBookHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		createFn: func(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error) {
			if in.ActorID != "alice@example.com" {
				t.Fatalf("actor not forwarded: %q", in.ActorID)
			}
			if in.ISBN != "978-0-13-419044-0" {
				t.Fatalf("isbn not forwarded raw: %q", in.ISBN)
			}
			return &domain.Book{ID: "b1", Title: in.Title, ISBN: "9780134190440", CreatedBy: in.ActorID}, nil
		},
	}
	handler := NewBookHandler(stub)

	body := strings.NewReader(`{"title":"The Go Programming Language","author":"Donovan","isbn":"978-0-13-419044-0","published_date":"2015-10-26T00:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/books", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", "alice@example.com")
	c.Set("role", "standard")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["isbn"] != "9780134190440" {
		t.Fatalf("expected normalized isbn in response, got %v", resp["isbn"])
	}
	if resp["created_by"] != "alice@example.com" {
		t.Fatalf("expected created_by in response, got %v", resp["created_by"])
	}
}

func TestBookHandler_Create_MissingClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewBookHandler(&stubBookService{
		createFn: func(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"title":"T","author":"A","isbn":"9780134190440","published_date":"2015-10-26T00:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/books", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestBookHandler_Create_MissingFields(t *testing.T) {
	e := newTestEcho()
	handler := NewBookHandler(&stubBookService{
		createFn: func(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/books", strings.NewReader(`{"title":"Only a title"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", "alice@example.com")
	c.Set("role", "standard")

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestBookHandler_Update_ForwardsActorRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookService{
		updateFn: func(ctx context.Context, in ports.UpdateBookInput) (*domain.Book, error) {
			if in.ID != "b1" {
				t.Fatalf("id not forwarded: %q", in.ID)
			}
			if in.ActorRole != domain.RoleAdmin {
				t.Fatalf("role not forwarded: %q", in.ActorRole)
			}
			if in.Title == nil || *in.Title != "Revised" {
				t.Fatalf("title not forwarded: %+v", in.Title)
			}
			if in.Author != nil {
				t.Fatalf("omitted field should stay nil")
			}
			return &domain.Book{ID: in.ID, Title: *in.Title}, nil
		},
	}
	handler := NewBookHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/v1/books/b1", strings.NewReader(`{"title":"Revised"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("b1")
	c.Set("identity", "root@example.com")
	c.Set("role", "admin")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	handler := NewBookHandler(&stubBookService{
		getFn: func(ctx context.Context, id string) (*domain.Book, error) {
			return nil, domain.ErrBookNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/books/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Get(c); err != domain.ErrBookNotFound {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookHandler_Delete(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	handler := NewBookHandler(&stubBookService{
		deleteFn: func(ctx context.Context, id, actorID string) error {
			deleted = id + "/" + actorID
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/v1/books/b1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("b1")
	c.Set("identity", "root@example.com")
	c.Set("role", "admin")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "b1/root@example.com" {
		t.Fatalf("unexpected delete args: %s", deleted)
	}
}

func TestBookHandler_List(t *testing.T) {
	e := newTestEcho()
	handler := NewBookHandler(&stubBookService{
		listFn: func(ctx context.Context, page, limit int) (*ports.ListBooksResult, error) {
			if page != 2 || limit != 10 {
				t.Fatalf("paging not forwarded: page=%d limit=%d", page, limit)
			}
			return &ports.ListBooksResult{
				Items:      []domain.Book{{ID: "b1", Title: "One"}},
				Total:      11,
				Page:       2,
				Limit:      10,
				TotalPages: 2,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/books?page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listBooksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 11 || resp.TotalPages != 2 || len(resp.Items) != 1 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
