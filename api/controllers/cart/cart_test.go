package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdto "github.com/angelmondragon/bulkmart-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/bulkmart-backend/api/middleware"
	cartsvc "github.com/angelmondragon/bulkmart-backend/internal/cart"
	"github.com/angelmondragon/bulkmart-backend/internal/pricing"
	"github.com/angelmondragon/bulkmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bulkmart-backend/pkg/errors"
)

type stubCartService struct {
	view         *cartsvc.View
	calc         *pricing.CartCalculation
	err          error
	lastUserID   uuid.UUID
	lastProduct  uuid.UUID
	lastQuantity int
	lastCodes    []string
	lastInput    cartsvc.CalculateInput
	cleared      bool
}

func (s *stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cartsvc.View, error) {
	s.lastUserID = userID
	return s.view, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*cartsvc.View, error) {
	s.lastUserID, s.lastProduct, s.lastQuantity = userID, productID, quantity
	return s.view, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*cartsvc.View, error) {
	s.lastUserID, s.lastProduct, s.lastQuantity = userID, productID, quantity
	return s.view, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*cartsvc.View, error) {
	s.lastUserID, s.lastProduct = userID, productID
	return s.view, s.err
}

func (s *stubCartService) SetCoupons(ctx context.Context, userID uuid.UUID, codes []string) (*cartsvc.View, error) {
	s.lastUserID, s.lastCodes = userID, codes
	return s.view, s.err
}

func (s *stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	s.lastUserID = userID
	s.cleared = true
	return s.err
}

func (s *stubCartService) Calculate(ctx context.Context, input cartsvc.CalculateInput) (*pricing.CartCalculation, error) {
	s.lastInput = input
	return s.calc, s.err
}

func sampleView(userID uuid.UUID) *cartsvc.View {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	productID := uuid.New()
	return &cartsvc.View{
		Session: &cartsvc.Session{
			UserID: userID,
			Lines: []cartsvc.Line{{
				ProductID: productID,
				Name:      "Paper towels",
				Quantity:  3,
				UnitPrice: decimal.RequireFromString("4.99"),
			}},
			CouponCodes: []string{"SAVE10"},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Totals: pricing.CartCalculation{
			Subtotal: decimal.RequireFromString("14.97"),
			AppliedCoupons: []pricing.AppliedCoupon{{
				Code:           "SAVE10",
				Kind:           enums.DiscountKindPercentage,
				Value:          decimal.NewFromInt(10),
				DiscountAmount: decimal.RequireFromString("1.50"),
			}},
			TotalDiscount:     decimal.RequireFromString("1.50"),
			FinalTotal:        decimal.RequireFromString("13.47"),
			CanAddMoreCoupons: true,
		},
	}
}

func withUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func withProductParam(req *http.Request, productID string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", productID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartdto.Cart {
	t.Helper()
	var envelope struct {
		Data cartdto.Cart `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Data
}

func TestCartFetchRequiresUser(t *testing.T) {
	rec := httptest.NewRecorder()
	CartFetch(&stubCartService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartFetchSuccess(t *testing.T) {
	userID := uuid.New()
	stub := &stubCartService{view: sampleView(userID)}

	rec := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), userID)
	CartFetch(stub, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, stub.lastUserID)

	cart := decodeCart(t, rec)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "14.97", cart.Lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, "13.47", cart.Totals.FinalTotal.StringFixed(2))
	require.Len(t, cart.Totals.AppliedCoupons, 1)
	assert.Equal(t, enums.DiscountKindPercentage, cart.Totals.AppliedCoupons[0].DiscountType)
	assert.NotNil(t, cart.Totals.RejectedCodes)
	assert.True(t, cart.Totals.CanAddMoreCoupons)
}

func TestCartAddItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	stub := &stubCartService{view: sampleView(userID)}

	body := `{"product_id":"` + productID.String() + `","quantity":12}`
	rec := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), userID)
	CartAddItem(stub, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, productID, stub.lastProduct)
	assert.Equal(t, 12, stub.lastQuantity)
}

func TestCartAddItemValidation(t *testing.T) {
	userID := uuid.New()
	stub := &stubCartService{view: sampleView(userID)}

	body := `{"product_id":"` + uuid.NewString() + `","quantity":0}`
	rec := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), userID)
	CartAddItem(stub, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, uuid.Nil, stub.lastProduct)

	body = `{"product_id":"` + uuid.NewString() + `","quantity":9223372036854775807}`
	rec = httptest.NewRecorder()
	req = withUser(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), userID)
	CartAddItem(stub, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "quantity")
	assert.Equal(t, uuid.Nil, stub.lastProduct)
}

func TestCartAddItemStockConflict(t *testing.T) {
	userID := uuid.New()
	stub := &stubCartService{err: pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").WithDetails(map[string]any{"available": 2})}

	body := `{"product_id":"` + uuid.NewString() + `","quantity":5}`
	rec := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), userID)
	CartAddItem(stub, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available":2`)
}

func TestCartUpdateItemInvalidProduct(t *testing.T) {
	userID := uuid.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/nope", strings.NewReader(`{"quantity":2}`))
	req = withProductParam(withUser(req, userID), "nope")
	CartUpdateItem(&stubCartService{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartUpdateItemZeroQuantityPassesThrough(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	stub := &stubCartService{view: sampleView(userID), lastQuantity: -1}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/"+productID.String(), strings.NewReader(`{"quantity":0}`))
	req = withProductParam(withUser(req, userID), productID.String())
	CartUpdateItem(stub, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, productID, stub.lastProduct)
	assert.Equal(t, 0, stub.lastQuantity)
}

func TestCartRemoveItemNotFound(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	stub := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/"+productID.String(), nil)
	req = withProductParam(withUser(req, userID), productID.String())
	CartRemoveItem(stub, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartSetCoupons(t *testing.T) {
	userID := uuid.New()
	stub := &stubCartService{view: sampleView(userID)}

	rec := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodPut, "/api/v1/cart/coupons", strings.NewReader(`{"codes":["SAVE10","FREESHIP"]}`)), userID)
	CartSetCoupons(stub, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"SAVE10", "FREESHIP"}, stub.lastCodes)
}

func TestCartClear(t *testing.T) {
	userID := uuid.New()
	stub := &stubCartService{}

	rec := httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), userID)
	CartClear(stub, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, stub.cleared)
}

func TestCartCalculate(t *testing.T) {
	productID := uuid.New()
	stub := &stubCartService{calc: &pricing.CartCalculation{
		Subtotal:      decimal.RequireFromString("100.00"),
		TotalDiscount: decimal.RequireFromString("100.00"),
		FinalTotal:    decimal.Zero,
		AppliedCoupons: []pricing.AppliedCoupon{{
			Code:           "FREEBIE",
			MakesFree:      true,
			DiscountAmount: decimal.RequireFromString("100.00"),
		}},
		RejectedCodes: []pricing.RejectedCode{{Code: "NOPE", Reason: enums.CouponRejectionUnknown}},
	}}

	body := `{"items":[{"product_id":"` + productID.String() + `","name":"  Napkins  ","quantity":10,"unit_price":"10.00"}],"coupon_codes":["FREEBIE","NOPE"]}`
	rec := httptest.NewRecorder()
	CartCalculate(stub, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/calculate", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, stub.lastInput.Lines, 1)
	assert.Equal(t, "Napkins", stub.lastInput.Lines[0].Name)
	assert.True(t, decimal.RequireFromString("10").Equal(stub.lastInput.Lines[0].UnitPrice))
	assert.Equal(t, []string{"FREEBIE", "NOPE"}, stub.lastInput.CouponCodes)

	var envelope struct {
		Data cartdto.Totals `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.True(t, envelope.Data.FinalTotal.IsZero())
	assert.False(t, envelope.Data.CanAddMoreCoupons)
	require.Len(t, envelope.Data.RejectedCodes, 1)
	assert.Equal(t, enums.CouponRejectionUnknown, envelope.Data.RejectedCodes[0].Reason)
}

func TestCartCalculateRejectsUnknownFields(t *testing.T) {
	rec := httptest.NewRecorder()
	CartCalculate(&stubCartService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/calculate", strings.NewReader(`{"lines":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
