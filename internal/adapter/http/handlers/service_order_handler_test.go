package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"os_service_api/internal/adapter/http/handlers/mocks"
	"os_service_api/internal/domain/entities"
	"os_service_api/internal/usecase"
	"os_service_api/internal/usecase/interfaces"
	"os_service_api/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func serviceOrderRouter(t *testing.T) (*mocks.MockIServiceOrderUseCase, *gin.Engine) {
	t.Helper()
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIServiceOrderUseCase(ctrl)
	h := NewServiceOrderHandler(uc)

	r := gin.New()
	r.POST("/v1/service-orders", h.Create)
	r.GET("/v1/service-orders", h.List)
	r.GET("/v1/service-orders/:id", h.GetByID)
	r.PUT("/v1/service-orders/:id", h.Update)
	r.DELETE("/v1/service-orders/:id", h.Delete)
	return uc, r
}

func decodeHTTPError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	return body
}

func TestServiceOrderHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		_, r := serviceOrderRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeHTTPError(t, w); body.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %s", body.Code)
		}
	})

	t.Run("missing client id", func(t *testing.T) {
		_, r := serviceOrderRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders", bytes.NewBufferString(`{"brand":"Dell"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid arrival date", func(t *testing.T) {
		_, r := serviceOrderRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders",
			bytes.NewBufferString(`{"clientId":"client-1","arrivalDate":"yesterday"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeHTTPError(t, w)
		if len(body.Details) != 1 {
			t.Fatalf("expected one detail, got %v", body.Details)
		}
	})

	t.Run("unknown client maps to 400", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(usecase.ServiceOrderDetails{}, usecase.ErrClientNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders",
			bytes.NewBufferString(`{"clientId":"ghost"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeHTTPError(t, w); body.Code != "CLIENT_NOT_FOUND" {
			t.Fatalf("expected CLIENT_NOT_FOUND, got %s", body.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, cmd usecase.CreateOrderCommand) (usecase.ServiceOrderDetails, error) {
				if cmd.ClientID != "client-1" {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return usecase.ServiceOrderDetails{
					Order: entities.ServiceOrder{
						ID:          "order-1",
						OrderNumber: "OS-2025-42",
						ClientID:    "client-1",
						Status:      entities.OrderStatusSemVer,
					},
					Client: entities.Client{ID: "client-1", Name: "Maria"},
				}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders",
			bytes.NewBufferString(`{"clientId":"client-1","equipmentType":"Notebook"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if body["orderNumber"] != "OS-2025-42" {
			t.Fatalf("unexpected body: %v", body)
		}
		if body["status"] != "SEM_VER" || body["statusLabel"] != "Sem ver" {
			t.Fatalf("unexpected status fields: %v", body)
		}
	})
}

func TestServiceOrderHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		uc.EXPECT().GetByID(gomock.Any(), "missing").
			Return(usecase.ServiceOrderDetails{}, usecase.ErrOrderNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/service-orders/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if body := decodeHTTPError(t, w); body.Code != "ORDER_NOT_FOUND" {
			t.Fatalf("expected ORDER_NOT_FOUND, got %s", body.Code)
		}
	})

	t.Run("success includes rounded budget totals", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		price := 14.956
		uc.EXPECT().GetByID(gomock.Any(), "order-1").
			Return(usecase.ServiceOrderDetails{
				Order: entities.ServiceOrder{
					ID:          "order-1",
					OrderNumber: "OS-2025-7",
					ClientID:    "client-1",
					Status:      entities.OrderStatusOrcamentar,
					BudgetItems: []entities.BudgetItem{
						{Type: "PECA", Title: "Tela", Quantity: 1, UnitCost: 10, UnitPrice: &price},
					},
				},
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/service-orders/order-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			BudgetTotals struct {
				TotalPrice float64 `json:"totalPrice"`
				Profit     float64 `json:"profit"`
			} `json:"budgetTotals"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if body.BudgetTotals.TotalPrice != 14.96 {
			t.Fatalf("expected rounded total 14.96, got %v", body.BudgetTotals.TotalPrice)
		}
		if body.BudgetTotals.Profit != 4.96 {
			t.Fatalf("expected rounded profit 4.96, got %v", body.BudgetTotals.Profit)
		}
	})
}

func TestServiceOrderHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns an empty array", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		uc.EXPECT().List(gomock.Any()).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/service-orders", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != "[]" {
			t.Fatalf("expected empty JSON array, got %s", w.Body.String())
		}
	})
}

func TestServiceOrderHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("budgetItems must be an array", func(t *testing.T) {
		_, r := serviceOrderRouter(t)

		req := httptest.NewRequest(http.MethodPut, "/v1/service-orders/order-1",
			bytes.NewBufferString(`{"budgetItems":"not-a-list"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeHTTPError(t, w); body.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %s", body.Code)
		}
	})

	t.Run("unknown status maps to 400", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		uc.EXPECT().Update(gomock.Any(), "order-1", gomock.Any()).
			Return(usecase.ServiceOrderDetails{}, usecase.ErrUnknownStatus)

		req := httptest.NewRequest(http.MethodPut, "/v1/service-orders/order-1",
			bytes.NewBufferString(`{"status":"APPROVED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeHTTPError(t, w); body.Code != "UNKNOWN_STATUS" {
			t.Fatalf("expected UNKNOWN_STATUS, got %s", body.Code)
		}
	})

	t.Run("business rule violations carry the rule wording", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		uc.EXPECT().Update(gomock.Any(), "order-1", gomock.Any()).
			Return(usecase.ServiceOrderDetails{}, &usecase.BusinessRuleError{
				Message: "Para mover para Aprovado é necessário atribuir um técnico.",
			})

		req := httptest.NewRequest(http.MethodPut, "/v1/service-orders/order-1",
			bytes.NewBufferString(`{"status":"APROVADO"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeHTTPError(t, w)
		if body.Code != "BUSINESS_RULE_VIOLATION" {
			t.Fatalf("expected BUSINESS_RULE_VIOLATION, got %s", body.Code)
		}
		if body.Message != "Para mover para Aprovado é necessário atribuir um técnico." {
			t.Fatalf("expected rule wording passed through, got %q", body.Message)
		}
	})

	t.Run("version conflicts map to 409", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		uc.EXPECT().Update(gomock.Any(), "order-1", gomock.Any()).
			Return(usecase.ServiceOrderDetails{}, interfaces.ErrVersionConflict)

		req := httptest.NewRequest(http.MethodPut, "/v1/service-orders/order-1",
			bytes.NewBufferString(`{"brand":"Dell"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if body := decodeHTTPError(t, w); body.Code != "CONFLICT" {
			t.Fatalf("expected CONFLICT, got %s", body.Code)
		}
	})

	t.Run("invalid completion date", func(t *testing.T) {
		_, r := serviceOrderRouter(t)

		req := httptest.NewRequest(http.MethodPut, "/v1/service-orders/order-1",
			bytes.NewBufferString(`{"completionDate":"03/14/2025"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		completion := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
		uc.EXPECT().Update(gomock.Any(), "order-1", gomock.Any()).
			DoAndReturn(func(_ any, _ string, cmd usecase.UpdateOrderCommand) (usecase.ServiceOrderDetails, error) {
				if cmd.Status == nil || *cmd.Status != "TERMINADO" {
					t.Fatalf("expected status in command, got %+v", cmd)
				}
				return usecase.ServiceOrderDetails{
					Order: entities.ServiceOrder{
						ID:             "order-1",
						OrderNumber:    "OS-2025-7",
						ClientID:       "client-1",
						Status:         entities.OrderStatusTerminado,
						CompletionDate: &completion,
					},
				}, nil
			})

		req := httptest.NewRequest(http.MethodPut, "/v1/service-orders/order-1",
			bytes.NewBufferString(`{"status":"TERMINADO"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if body["status"] != "TERMINADO" || body["completionDate"] == nil {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestServiceOrderHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		uc.EXPECT().Delete(gomock.Any(), "order-1").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/service-orders/order-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("finished orders are protected", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		uc.EXPECT().Delete(gomock.Any(), "order-1").
			Return(&usecase.BusinessRuleError{Message: "Uma OS terminada não pode ser excluída."})

		req := httptest.NewRequest(http.MethodDelete, "/v1/service-orders/order-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeHTTPError(t, w); body.Code != "BUSINESS_RULE_VIOLATION" {
			t.Fatalf("expected BUSINESS_RULE_VIOLATION, got %s", body.Code)
		}
	})

	t.Run("unexpected errors map to 500", func(t *testing.T) {
		uc, r := serviceOrderRouter(t)

		uc.EXPECT().Delete(gomock.Any(), "order-1").Return(errors.New("dynamodb down"))

		req := httptest.NewRequest(http.MethodDelete, "/v1/service-orders/order-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if body := decodeHTTPError(t, w); body.Code != "INTERNAL_ERROR" {
			t.Fatalf("expected INTERNAL_ERROR, got %s", body.Code)
		}
	})
}
