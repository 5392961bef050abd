package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wuwei-shop/storefront/internal/config"
	"github.com/wuwei-shop/storefront/internal/domain"
	"github.com/wuwei-shop/storefront/internal/port"
	"github.com/wuwei-shop/storefront/internal/service"
)

type App struct {
	Cfg      config.Config
	Catalog  port.CatalogRepository
	Cart     *service.CartService
	Checkout *service.CheckoutService
	started  time.Time
}

func NewApp(cfg config.Config, catalog port.CatalogRepository, cart *service.CartService, checkout *service.CheckoutService) *App {
	return &App{Cfg: cfg, Catalog: catalog, Cart: cart, Checkout: checkout, started: time.Now()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// cartItemResponse is a cart line with its resolved product embedded, the
// shape the storefront client expects.
type cartItemResponse struct {
	domain.CartItem
	Product *domain.Product `json:"product,omitempty"`
}

type cartResponse struct {
	SessionID string             `json:"sessionId"`
	Items     []cartItemResponse `json:"items"`
	ItemCount int                `json:"itemCount"`
	Subtotal  string             `json:"subtotal"`
	Tax       string             `json:"tax"`
	Shipping  string             `json:"shipping"`
	Total     string             `json:"total"`
}

type orderResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	PaymentRef string `json:"paymentReference"`
	Total      string `json:"total"`
	Items      string `json:"items"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:         o.ID,
		Email:      o.Email,
		PaymentRef: o.PaymentRef,
		Total:      o.Total.String(),
		Items:      o.Items,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := a.Catalog.ListProducts(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (a *App) listFeaturedHandler(w http.ResponseWriter, r *http.Request) {
	products, err := a.Catalog.ListFeatured(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	product, err := a.Catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (a *App) getCartHandler(w http.ResponseWriter, r *http.Request) {
	view, err := a.Cart.Get(r.Context(), r.PathValue("sessionId"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(view))
}

func toCartResponse(view service.CartView) cartResponse {
	items := make([]cartItemResponse, 0, len(view.Items))
	for _, line := range view.Items {
		items = append(items, cartItemResponse{CartItem: line.CartItem, Product: line.Product})
	}
	return cartResponse{
		SessionID: view.SessionID,
		Items:     items,
		ItemCount: view.Quote.ItemCount,
		Subtotal:  view.Quote.Subtotal.String(),
		Tax:       view.Quote.Tax.String(),
		Shipping:  view.Quote.Shipping.String(),
		Total:     view.Quote.Total.String(),
	}
}

type addToCartRequest struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (a *App) addToCartHandler(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := a.Cart.Add(r.Context(), req.SessionID, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	resp := cartItemResponse{CartItem: item}
	if product, err := a.Catalog.GetProduct(r.Context(), item.ProductID); err == nil {
		resp.Product = &product
	}
	writeJSON(w, http.StatusOK, resp)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (a *App) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, removed, err := a.Cart.UpdateQuantity(r.Context(), r.PathValue("id"), req.Quantity)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if removed {
		writeJSON(w, http.StatusOK, map[string]bool{"success": true, "removed": true})
		return
	}

	resp := cartItemResponse{CartItem: item}
	if product, err := a.Catalog.GetProduct(r.Context(), item.ProductID); err == nil {
		resp.Product = &product
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	ok, err := a.Cart.Remove(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "not_found", "cart item not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *App) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Cart.Clear(r.Context(), r.PathValue("sessionId")); err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type createPaymentLinkRequest struct {
	ProductID string `json:"productId"`
	Email     string `json:"email"`
}

func (a *App) createPaymentLinkHandler(w http.ResponseWriter, r *http.Request) {
	var req createPaymentLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	link, err := a.Checkout.CreatePaymentLink(r.Context(), req.ProductID, req.Email)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

type createOrderRequest struct {
	SessionID     string `json:"sessionId"`
	Email         string `json:"email"`
	PaymentLinkID string `json:"paymentLinkId"`
	Total         string `json:"total"`
}

func (a *App) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := a.Checkout.Complete(r.Context(), req.SessionID, req.Email, req.PaymentLinkID, req.Total)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (a *App) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := a.Checkout.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (a *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"uptime_sec": time.Since(a.started).Seconds(),
	})
}
