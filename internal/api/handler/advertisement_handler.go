package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adsboard/marketplace-api/internal/api/metrics"
	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"
)

type AdvertisementHandler struct {
	adService ports.AdvertisementService
}

func NewAdvertisementHandler(adService ports.AdvertisementService) *AdvertisementHandler {
	return &AdvertisementHandler{adService: adService}
}

// Create publishes a new advertisement owned by the caller.
//
// @Summary      Create advertisement
// @Tags         advertisements
// @Accept       json
// @Produce      json
// @Param        body  body      createAdvertisementRequest  true  "Advertisement"
// @Success      201   {object}  domain.Advertisement
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /advertisement [post]
func (h *AdvertisementHandler) Create(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req createAdvertisementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ad, err := h.adService.Create(c.Request().Context(), caller, ports.CreateAdvertisementInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
	})
	if err != nil {
		return err
	}
	metrics.AdvertisementsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, ad)
}

// Get returns a single advertisement.
//
// @Summary      Get advertisement
// @Tags         advertisements
// @Produce      json
// @Param        id   path      int  true  "Advertisement ID"
// @Success      200  {object}  domain.Advertisement
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /advertisement/{id} [get]
func (h *AdvertisementHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ad, err := h.adService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ad)
}

// Update changes title, description or price.
//
// @Summary      Update advertisement
// @Tags         advertisements
// @Accept       json
// @Produce      json
// @Param        id    path      int                         true  "Advertisement ID"
// @Param        body  body      updateAdvertisementRequest  true  "Fields to change"
// @Success      200   {object}  domain.Advertisement
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /advertisement/{id} [patch]
func (h *AdvertisementHandler) Update(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req updateAdvertisementRequest
	if err := c.Bind(&req); err != nil {
		return domain.InvalidInputf("invalid payload")
	}

	ad, err := h.adService.Update(c.Request().Context(), caller, id, ports.UpdateAdvertisementInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ad)
}

// Delete removes an advertisement.
//
// @Summary      Delete advertisement
// @Tags         advertisements
// @Param        id   path  int  true  "Advertisement ID"
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /advertisement/{id} [delete]
func (h *AdvertisementHandler) Delete(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adService.Delete(c.Request().Context(), caller, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "advertisement deleted"})
}

// Search lists advertisements matching every given filter, ordered by id.
//
// @Summary      Search advertisements
// @Tags         advertisements
// @Produce      json
// @Param        title        query     string  false  "Case-insensitive title substring"
// @Param        description  query     string  false  "Case-insensitive description substring"
// @Param        min_price    query     number  false  "Minimum price (inclusive)"
// @Param        max_price    query     number  false  "Maximum price (inclusive)"
// @Param        author_id    query     int     false  "Owner user ID"
// @Success      200          {array}   domain.Advertisement
// @Failure      400          {object}  ErrorResponse
// @Router       /advertisement [get]
func (h *AdvertisementHandler) Search(c echo.Context) error {
	var req searchAdvertisementsRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return domain.InvalidInputf("invalid query parameters")
	}

	ads, err := h.adService.Search(c.Request().Context(), req.filter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ads)
}
