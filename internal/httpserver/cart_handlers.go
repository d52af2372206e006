package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cartsvc "expomall/internal/cart"
	checkoutsvc "expomall/internal/checkout"
	"expomall/internal/domain"
)

type handlers struct {
	carts    *cartsvc.Service
	checkout *checkoutsvc.Service
}

type addItemRequest struct {
	ProductID int             `json:"productId" binding:"required,min=1"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Variant   int             `json:"variant"`
	OptionID  *int            `json:"optionId"`
	StoreID   *int            `json:"storeId"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Lines      []domain.CartLine `json:"lines"`
	TotalItems int               `json:"totalItems"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
	StoreIDs   []int             `json:"storeIds"`
}

func (h *handlers) cartView(c *gin.Context) cartResponse {
	ctx := c.Request.Context()
	sess := sessionID(c)
	lines := h.carts.Lines(ctx, sess)
	if lines == nil {
		lines = []domain.CartLine{}
	}
	storeIDs := h.carts.UniqueStoreIDs(ctx, sess)
	if storeIDs == nil {
		storeIDs = []int{}
	}
	return cartResponse{
		Lines:      lines,
		TotalItems: h.carts.TotalItems(ctx, sess),
		TotalPrice: h.carts.TotalPrice(ctx, sess),
		StoreIDs:   storeIDs,
	}
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartView(c))
}

func (h *handlers) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	line := domain.CartLine{
		ProductID: req.ProductID,
		Title:     req.Title,
		Image:     req.Image,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Variant:   req.Variant,
		OptionID:  req.OptionID,
		StoreID:   req.StoreID,
	}
	if _, err := h.carts.Add(c.Request.Context(), sessionID(c), line); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "add to cart failed"})
		return
	}
	c.JSON(http.StatusOK, h.cartView(c))
}

func (h *handlers) updateQuantity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	if _, err := h.carts.SetQuantity(c.Request.Context(), sessionID(c), id, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update quantity failed"})
		return
	}
	c.JSON(http.StatusOK, h.cartView(c))
}

func (h *handlers) removeItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line id"})
		return
	}
	if _, err := h.carts.Remove(c.Request.Context(), sessionID(c), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "remove from cart failed"})
		return
	}
	c.JSON(http.StatusOK, h.cartView(c))
}

func (h *handlers) clearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), sessionID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clear cart failed"})
		return
	}
	c.JSON(http.StatusOK, h.cartView(c))
}

func (h *handlers) deliveryQuote(c *gin.Context) {
	quote := h.checkout.DeliveryQuote(c.Request.Context(), sessionID(c))
	c.JSON(http.StatusOK, gin.H{"deliveryPrice": quote})
}
