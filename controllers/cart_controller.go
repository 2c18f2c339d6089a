package controllers

import (
	"context"
	"net/http"

	"github.com/alexandru1c/refeelv2/pkg/cart"
	"github.com/alexandru1c/refeelv2/pkg/resp"
	"github.com/alexandru1c/refeelv2/services"
	"github.com/alexandru1c/refeelv2/utils"

	"github.com/gin-gonic/gin"
)

type BalanceReader interface {
	CoinBalance(ctx context.Context, userID uint) (int64, error)
}

// CartController ใช้ได้ทั้งตะกร้าอาหารและตะกร้ารางวัล แยกด้วย Kind
type CartController struct {
	Svc      *services.CartService
	Kind     cart.Kind
	Balances BalanceReader // ใช้เฉพาะตะกร้ารางวัล
}

func NewCartController(s *services.CartService, kind cart.Kind, balances BalanceReader) *CartController {
	return &CartController{Svc: s, Kind: kind, Balances: balances}
}

func (h *CartController) render(c *gin.Context, status int, ct *cart.Cart) {
	v := services.View(h.Kind, ct)
	if h.Kind == cart.Reward && h.Balances != nil {
		bal, err := h.Balances.CoinBalance(c.Request.Context(), utils.CurrentUserID(c))
		if err != nil {
			writeError(c, &services.TransientIOError{Op: "read coin balance", Err: err})
			return
		}
		a := services.CheckBalance(bal, v.TotalCoins)
		v.Balance = &a
	}
	c.JSON(status, gin.H{"ok": true, "data": v})
}

func productParam(c *gin.Context) (uint, bool) {
	id, ok := utils.ParamUint(c, "productId")
	if !ok {
		resp.BadRequest(c, "invalid product id")
	}
	return id, ok
}

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	h.render(c, http.StatusOK, h.Svc.Cart(utils.CurrentUserID(c), h.Kind))
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ct, err := h.Svc.Add(utils.CurrentUserID(c), h.Kind, req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, http.StatusCreated, ct)
}

// PATCH /cart/items/:productId/increase
func (h *CartController) Increase(c *gin.Context) {
	id, ok := productParam(c)
	if !ok {
		return
	}
	ct, err := h.Svc.Increase(utils.CurrentUserID(c), h.Kind, id)
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, http.StatusOK, ct)
}

// PATCH /cart/items/:productId/decrease
func (h *CartController) Decrease(c *gin.Context) {
	id, ok := productParam(c)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, h.Svc.Decrease(utils.CurrentUserID(c), h.Kind, id))
}

// PUT /cart/items/:productId  {"qty": n}
func (h *CartController) SetQuantity(c *gin.Context) {
	id, ok := productParam(c)
	if !ok {
		return
	}
	var body services.SetQtyIn
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	ct, err := h.Svc.SetQuantity(utils.CurrentUserID(c), h.Kind, id, *body.Qty)
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, http.StatusOK, ct)
}

// DELETE /cart/items/:productId
func (h *CartController) RemoveItem(c *gin.Context) {
	id, ok := productParam(c)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, h.Svc.RemoveItem(utils.CurrentUserID(c), h.Kind, id))
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	h.Svc.Clear(uid, h.Kind)
	h.render(c, http.StatusOK, h.Svc.Cart(uid, h.Kind))
}
