package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/service"
)

type Server struct {
	engine   *gin.Engine
	sessions *service.Sessions
	log      *zap.Logger
}

func NewServer(sessions *service.Sessions, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	// c.Done/c.Err/c.Value follow the request context, outbound calls stop with the client
	r.ContextWithFallback = true
	r.Use(requestLogger(log), gin.Recovery())
	s := &Server{engine: r, sessions: sessions, log: log}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	v1 := s.engine.Group("/api/v1", s.withSession)
	{
		cart := v1.Group("/cart")
		cart.GET("", s.getCart)
		cart.DELETE("", s.clearCart)
		cart.POST("/items", s.addItem)
		cart.PUT("/items/:id", s.setQuantity)
		cart.DELETE("/items/:id", s.removeItem)

		v1.GET("/checkout", s.enterCheckout)
		v1.POST("/checkout", s.submitCheckout)

		v1.GET("/regions", s.listRegions)
		v1.POST("/regions/load", s.loadRegions)

		v1.POST("/session/logout", s.logout)
	}
}

// Cart handlers
type totalsDisplay struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
}

// cartResponse снимок корзины: точные значения и строки с двумя знаками
type cartResponse struct {
	domain.CartSnapshot
	Display totalsDisplay `json:"display"`
}

func newCartResponse(snap domain.CartSnapshot) cartResponse {
	return cartResponse{
		CartSnapshot: snap,
		Display: totalsDisplay{
			Subtotal: snap.Subtotal.StringFixed(2),
			Discount: snap.Discount.StringFixed(2),
			Total:    snap.Total.StringFixed(2),
		},
	}
}

// @Summary Get cart snapshot
// @Tags cart
// @Produce json
// @Success 200 {object} cartResponse
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	s.respondCart(c, http.StatusOK)
}

func (s *Server) respondCart(c *gin.Context, status int) {
	snap, err := session(c).Cart.Snapshot(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(status, newCartResponse(snap))
}

type addItemReq struct {
	ID        string          `json:"id" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

// @Summary Add item to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param input body addItemReq true "Item"
// @Success 200 {object} cartResponse
// @Failure 400 {object} map[string]string
// @Router /cart/items [post]
func (s *Server) addItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	item := domain.CartItem{ID: req.ID, Name: req.Name, UnitPrice: req.UnitPrice, Quantity: req.Quantity}
	if err := session(c).Cart.AddItem(c, item); err != nil {
		s.fail(c, err)
		return
	}
	s.respondCart(c, http.StatusOK)
}

type setQuantityReq struct {
	Quantity int64 `json:"quantity"`
}

// @Summary Set item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param input body setQuantityReq true "Quantity"
// @Success 200 {object} cartResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items/{id} [put]
func (s *Server) setQuantity(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := session(c).Cart.SetQuantity(c, c.Param("id"), req.Quantity); err != nil {
		s.fail(c, err)
		return
	}
	s.respondCart(c, http.StatusOK)
}

// @Summary Remove item from cart
// @Tags cart
// @Param id path string true "Item ID"
// @Success 204
// @Router /cart/items/{id} [delete]
func (s *Server) removeItem(c *gin.Context) {
	if err := session(c).Cart.RemoveItem(c, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Clear cart
// @Tags cart
// @Success 204
// @Router /cart [delete]
func (s *Server) clearCart(c *gin.Context) {
	if err := session(c).Cart.Clear(c); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout handlers
type checkoutViewResponse struct {
	Cart        cartResponse    `json:"cart"`
	Regions     []domain.Region `json:"regions"`
	RegionError string          `json:"region_error,omitempty"`
}

// @Summary Enter checkout page
// @Description Redirects to the storefront root when the cart is empty.
// @Tags checkout
// @Produce json
// @Success 200 {object} checkoutViewResponse
// @Success 302
// @Router /checkout [get]
func (s *Server) enterCheckout(c *gin.Context) {
	sess := session(c)
	snap, err := sess.Cart.Snapshot(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if snap.Empty() {
		c.Redirect(http.StatusFound, "/")
		return
	}

	regions := s.sessions.Visit(sess)
	resp := checkoutViewResponse{Cart: newCartResponse(snap)}
	if err := regions.EnsureLoaded(c); err != nil {
		resp.RegionError = err.Error()
	}
	resp.Regions = regions.Regions()
	c.JSON(http.StatusOK, resp)
}

type fieldErrorDTO struct {
	Field string `json:"field,omitempty"`
	Code  string `json:"code"`
}

// @Summary Submit order
// @Tags checkout
// @Accept json
// @Produce json
// @Param input body domain.CheckoutFields true "Checkout form"
// @Success 201 {object} domain.OrderPayload
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]any
// @Failure 502 {object} map[string]string
// @Router /checkout [post]
func (s *Server) submitCheckout(c *gin.Context) {
	var fields domain.CheckoutFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess := session(c)
	sess.Form.Fill(fields)

	payload, err := sess.Composer.Submit(c)
	if err != nil {
		var vf *service.ValidationFailedError
		if errors.As(err, &vf) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  service.ErrValidationFailed.Error(),
				"errors": toFieldErrors(vf.Errors),
			})
			return
		}
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, payload)
}

func toFieldErrors(errs service.ValidationErrors) []fieldErrorDTO {
	out := make([]fieldErrorDTO, 0, len(errs))
	for _, err := range errs {
		var fe *service.FieldError
		if errors.As(err, &fe) {
			out = append(out, fieldErrorDTO{Field: string(fe.Field), Code: errorCode(fe.Err)})
			continue
		}
		out = append(out, fieldErrorDTO{Code: errorCode(err)})
	}
	return out
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrRequiredFieldMissing):
		return "required"
	case errors.Is(err, service.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, service.ErrEmptyCart):
		return "empty_cart"
	default:
		return "invalid"
	}
}

// Region handlers
type regionsResponse struct {
	State   service.RegionState `json:"state"`
	Regions []domain.Region     `json:"regions"`
	Error   string              `json:"error,omitempty"`
}

func newRegionsResponse(p *service.RegionProvider) regionsResponse {
	if p == nil {
		return regionsResponse{State: service.RegionsIdle, Regions: []domain.Region{}}
	}
	resp := regionsResponse{State: p.State(), Regions: p.Regions()}
	if err := p.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// @Summary Regions of the current checkout visit
// @Tags regions
// @Produce json
// @Success 200 {object} regionsResponse
// @Router /regions [get]
func (s *Server) listRegions(c *gin.Context) {
	c.JSON(http.StatusOK, newRegionsResponse(session(c).Regions()))
}

// @Summary Reload regions
// @Description Explicit retry after a failed load; never retried automatically.
// @Tags regions
// @Produce json
// @Success 200 {object} regionsResponse
// @Failure 502 {object} regionsResponse
// @Router /regions/load [post]
func (s *Server) loadRegions(c *gin.Context) {
	sess := session(c)
	p := sess.Regions()
	if p == nil {
		p = s.sessions.Visit(sess)
	}
	if err := p.Load(c); err != nil {
		c.JSON(http.StatusBadGateway, newRegionsResponse(p))
		return
	}
	c.JSON(http.StatusOK, newRegionsResponse(p))
}

// @Summary Logout
// @Description Ends the session and clears its cart.
// @Tags session
// @Success 204
// @Router /session/logout [post]
func (s *Server) logout(c *gin.Context) {
	if err := s.sessions.Close(c, session(c).ID); err != nil {
		s.fail(c, err)
		return
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidItem), errors.Is(err, service.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSubmitInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrValidationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrSubmissionFailed), errors.Is(err, service.ErrRegionLoadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
