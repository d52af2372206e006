package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	checkoutsvc "expomall/internal/checkout"
	"expomall/internal/domain"
)

type checkoutRequest struct {
	Name    string             `json:"name" binding:"required"`
	Phone   string             `json:"phone" binding:"required"`
	Address string             `json:"address" binding:"required"`
	Notes   string             `json:"notes"`
	Items   []checkoutItemOver `json:"items"`
}

// checkoutItemOver is a buy-now item that bypasses the session cart.
type checkoutItemOver struct {
	ProductID int             `json:"productId" binding:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Variant   int             `json:"variant"`
	OptionID  *int            `json:"optionId"`
	StoreID   *int            `json:"storeId"`
}

func (h *handlers) checkoutOrder(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	in := checkoutsvc.Input{
		Contact: domain.Contact{Name: req.Name, Phone: req.Phone, Address: req.Address},
		Notes:   req.Notes,
	}
	for _, it := range req.Items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		in.Items = append(in.Items, domain.CartLine{
			ProductID: it.ProductID,
			Price:     it.Price,
			Quantity:  qty,
			Variant:   it.Variant,
			OptionID:  it.OptionID,
			StoreID:   it.StoreID,
		})
	}

	result, err := h.checkout.Checkout(c.Request.Context(), sessionID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "message": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "order creation failed", "message": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
