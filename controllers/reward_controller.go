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

type RewardController struct {
	Checkout *services.CheckoutService
	History  services.HistoryReader
	Carts    *services.CartService
}

func NewRewardController(co *services.CheckoutService, h services.HistoryReader, carts *services.CartService) *RewardController {
	return &RewardController{Checkout: co, History: h, Carts: carts}
}

// POST /rewards/redeem
func (rc *RewardController) Redeem(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	receipt, err := rc.Checkout.RedeemReward(c.Request.Context(), uid, rc.Carts.Cart(uid, cart.Reward))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, receipt)
}

// GET /rewards/orders
func (rc *RewardController) ListForMe(c *gin.Context) {
	items, err := rc.History.ListRewardOrders(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

func (rc *RewardController) load(c *gin.Context) (*services.OrderView, bool) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid reward order id")
		return nil, false
	}
	o, err := rc.History.GetRewardOrder(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return o, true
}

// GET /rewards/orders/:id
func (rc *RewardController) Detail(c *gin.Context) {
	if o, ok := rc.load(c); ok {
		resp.OK(c, o)
	}
}

// GET /rewards/orders/:id/qr.png
func (rc *RewardController) QRCode(c *gin.Context) {
	if o, ok := rc.load(c); ok {
		sendQR(c, o)
	}
}

// GET /rewards/orders/:id/voucher.pdf
func (rc *RewardController) Voucher(c *gin.Context) {
	o, ok := rc.load(c)
	if !ok {
		return
	}

	v := render.Voucher{
		OrderID:        o.ID,
		Token:          o.QRCode,
		RestaurantName: o.RestaurantName,
		StatusLabel:    o.Badge.Label,
		CoinsTotal:     o.CoinsTotal,
		CreatedAt:      o.CreatedAt,
	}
	for _, l := range o.Lines {
		v.Lines = append(v.Lines, render.VoucherLine{Name: l.Name, Quantity: l.Quantity, Coins: l.UnitCoins})
	}

	pdf, err := render.VoucherPDF(v)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.File(c, "application/pdf", fmt.Sprintf("voucher-%d.pdf", o.ID), pdf)
}
