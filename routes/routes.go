package routes

import (
	"github.com/alexandru1c/refeelv2/configs"
	"github.com/alexandru1c/refeelv2/controllers"
	"github.com/alexandru1c/refeelv2/middlewares"
	"github.com/alexandru1c/refeelv2/pkg/cart"
	"github.com/alexandru1c/refeelv2/pkg/guard"
	"github.com/alexandru1c/refeelv2/pkg/identity"
	"github.com/alexandru1c/refeelv2/repository"
	"github.com/alexandru1c/refeelv2/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Config   *configs.Config
	Log      *zap.Logger
	Verifier identity.Verifier
	// nil เมื่อใช้ OIDC; register/login จะไม่ถูกเปิด
	Issuer   *identity.HMACVerifier
	Guard    guard.Guard
	Sessions *cart.Sessions
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.CORSMiddleware(d.Config.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	restRepo := repository.NewRestaurantRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	historyRepo := repository.NewHistoryRepository(d.DB)

	// Services
	restSvc := services.NewRestaurantService(restRepo)
	cartSvc := services.NewCartService(d.Sessions, restRepo)
	checkoutSvc := services.NewCheckoutService(orderRepo, d.Guard, d.Log)
	historySvc := services.NewHistoryService(historyRepo)

	// Controllers
	restCtrl := controllers.NewRestaurantController(restSvc)
	foodCart := controllers.NewCartController(cartSvc, cart.Food, nil)
	rewardCart := controllers.NewCartController(cartSvc, cart.Reward, orderRepo)
	orderCtrl := controllers.NewOrderController(checkoutSvc, historySvc, cartSvc)
	rewardCtrl := controllers.NewRewardController(checkoutSvc, historySvc, cartSvc)

	auth := middlewares.AuthMiddleware(d.Verifier, &services.UserResolver{Repo: userRepo}, d.Log)
	limiter := middlewares.NewRateLimiter(d.Config.CheckoutRatePerMin, 2)
	timeout := middlewares.Timeout(d.Config.CheckoutTimeout)

	// Auth
	authCtrl := controllers.NewAuthController(
		services.NewAuthService(userRepo, d.Issuer, d.Config.SignupBonusCoins, d.Log))
	a := r.Group("/auth")
	if d.Issuer != nil {
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", auth, authCtrl.Me)

	// Public
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/restaurants/:id/products", restCtrl.Products)
	r.GET("/restaurants/:id/rewards", restCtrl.Rewards)

	u := r.Group("/", auth, timeout)
	{
		registerCart(u.Group("/cart"), foodCart)

		u.POST("/orders", limiter.Limit(), orderCtrl.Create)
		u.GET("/orders", orderCtrl.ListForMe)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.GET("/orders/:id/qr.png", orderCtrl.QRCode)
	}

	rw := r.Group("/rewards", auth, timeout)
	{
		registerCart(rw.Group("/cart"), rewardCart)

		rw.POST("/redeem", limiter.Limit(), rewardCtrl.Redeem)
		rw.GET("/orders", rewardCtrl.ListForMe)
		rw.GET("/orders/:id", rewardCtrl.Detail)
		rw.GET("/orders/:id/qr.png", rewardCtrl.QRCode)
		rw.GET("/orders/:id/voucher.pdf", rewardCtrl.Voucher)
	}
}

func registerCart(g *gin.RouterGroup, h *controllers.CartController) {
	g.GET("", h.Get)
	g.DELETE("", h.Clear)
	g.POST("/items", h.Add)
	g.PUT("/items/:productId", h.SetQuantity)
	g.DELETE("/items/:productId", h.RemoveItem)
	g.PATCH("/items/:productId/increase", h.Increase)
	g.PATCH("/items/:productId/decrease", h.Decrease)
}
