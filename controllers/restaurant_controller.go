// controllers/restaurant_controller.go
package controllers

import (
	"github.com/alexandru1c/refeelv2/entity"
	"github.com/alexandru1c/refeelv2/pkg/resp"
	"github.com/alexandru1c/refeelv2/services"
	"github.com/alexandru1c/refeelv2/utils"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	Service *services.RestaurantService
}

func NewRestaurantController(s *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Service: s}
}

// ====== Response DTO ======
type RestaurantResponse struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"displayName"`
	Address     string `json:"address"`
	LogoURL     string `json:"logoUrl"`
}

func mapToRestaurantResponse(r *entity.Restaurant) RestaurantResponse {
	return RestaurantResponse{ID: r.ID, DisplayName: r.DisplayName, Address: r.Address, LogoURL: r.LogoURL}
}

// GET /restaurants
func (ctl *RestaurantController) List(c *gin.Context) {
	rests, err := ctl.Service.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	out := make([]RestaurantResponse, 0, len(rests))
	for i := range rests {
		out = append(out, mapToRestaurantResponse(&rests[i]))
	}
	resp.OK(c, out)
}

// GET /restaurants/:id
func (ctl *RestaurantController) Detail(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	rest, err := ctl.Service.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, mapToRestaurantResponse(rest))
}

// GET /restaurants/:id/products
func (ctl *RestaurantController) Products(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	products, err := ctl.Service.Products(id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, products)
}

// GET /restaurants/:id/rewards
func (ctl *RestaurantController) Rewards(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	rewards, err := ctl.Service.Rewards(id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, rewards)
}
