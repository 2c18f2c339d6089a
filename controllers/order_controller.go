package controllers

import (
	"fmt"

	"github.com/alexandru1c/refeelv2/pkg/cart"
	"github.com/alexandru1c/refeelv2/pkg/render"
	"github.com/alexandru1c/refeelv2/pkg/resp"
	"github.com/alexandru1c/refeelv2/services"
	"github.com/alexandru1c/refeelv2/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Checkout *services.CheckoutService
	History  services.HistoryReader
	Carts    *services.CartService
}

func NewOrderController(co *services.CheckoutService, h services.HistoryReader, carts *services.CartService) *OrderController {
	return &OrderController{Checkout: co, History: h, Carts: carts}
}

// ===== Create Order =====

// POST /orders (สั่งจากตะกร้าอาหารของ user)
func (oc *OrderController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	rc, err := oc.Checkout.PlaceFoodOrder(c.Request.Context(), uid, oc.Carts.Cart(uid, cart.Food))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, rc)
}

// ===== My Orders =====

// GET /orders
func (oc *OrderController) ListForMe(c *gin.Context) {
	items, err := oc.History.ListOrders(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /orders/:id (เฉพาะเจ้าของออเดอร์)
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	o, err := oc.History.GetOrder(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /orders/:id/qr.png
func (oc *OrderController) QRCode(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	o, err := oc.History.GetOrder(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	sendQR(c, o)
}

func sendQR(c *gin.Context, o *services.OrderView) {
	png, err := render.QRCodePNG(o.QRCode, render.DefaultQRSize)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.File(c, "image/png", fmt.Sprintf("%s-%d.png", o.Kind, o.ID), png)
}
