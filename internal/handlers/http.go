package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/umalmyha/customer-records/internal/errors"
	"github.com/umalmyha/customer-records/internal/model"
	"github.com/umalmyha/customer-records/internal/service"
)

type pageQuery struct {
	Page int `query:"page" validate:"omitempty,min=1"`
}

type searchQuery struct {
	Term string `query:"q" validate:"required,max=100"`
}

// CustomerHTTPHandler is http handler for customer endpoint
type CustomerHTTPHandler struct {
	customerSvc service.CustomerService
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(customerSvc service.CustomerService) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{customerSvc: customerSvc}
}

// GetPage gets page of customers
// @Summary     Get page of customers
// @Description Returns customers ordered from newest to oldest, 12 per page by default
// @Tags        customers
// @Produce     json
// @Param       page   query    int false "Page number" minimum(1)
// @Success     200    {object} model.CustomerPage
// @Failure     400    {object} validation.PayloadError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/customers [get]
func (h *CustomerHTTPHandler) GetPage(c echo.Context) error {
	var q pageQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&q); err != nil {
		return err
	}

	p, err := h.customerSvc.FindPage(c.Request().Context(), q.Page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Search searches customers by name
// @Summary     Search customers
// @Description Returns customers whose first or last name contains the term, case insensitive
// @Tags        customers
// @Produce     json
// @Param       q      query    string true "Search term"
// @Success     200    {array}  model.Customer
// @Failure     400    {object} validation.PayloadError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/customers/search [get]
func (h *CustomerHTTPHandler) Search(c echo.Context) error {
	var q searchQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&q); err != nil {
		return err
	}

	customers, err := h.customerSvc.Search(c.Request().Context(), q.Term)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Get gets customer
// @Summary     Get single customer by id
// @Description Returns single customer with provided id
// @Tags        customers
// @Produce     json
// @Param       id     path     string true "Customer id"
// @Success     200    {object} model.Customer
// @Failure     400    {object} validation.PayloadError
// @Failure     404    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/customers/{id} [get]
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	customer, err := h.customerSvc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Post creates new customer
// @Summary     New Customer
// @Description Creates new customer
// @Tags        customers
// @Accept		json
// @Produce     json
// @Param 		newCustomer body	 model.NewCustomer true "Data for new customer"
// @Success     201    		{object} model.Customer
// @Failure     400    		{object} apperrors.BusinessErr
// @Failure     409    		{object} apperrors.BusinessErr
// @Failure     500    		{object} echo.HTTPError
// @Router      /api/customers [post]
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var nc model.NewCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.customerSvc.Create(c.Request().Context(), &nc)
	if err != nil {
		return rejectionJSON(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

// Put replaces customer
// @Summary     Update Customer
// @Description Replaces editable fields of existing customer
// @Tags        customers
// @Accept		json
// @Produce     json
// @Param       id     		path 	 string 		   true "Customer id"
// @Param 		newCustomer body	 model.NewCustomer true "Customer data"
// @Success     200    		{object} model.Customer
// @Failure     400    		{object} apperrors.BusinessErr
// @Failure     404    		{object} echo.HTTPError
// @Failure     409    		{object} apperrors.BusinessErr
// @Failure     500    		{object} echo.HTTPError
// @Router      /api/customers/{id} [put]
func (h *CustomerHTTPHandler) Put(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	var nc model.NewCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.customerSvc.Update(c.Request().Context(), id, &nc)
	if err != nil {
		return rejectionJSON(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// DeleteByID deletes customer
// @Summary     Delete customer by id
// @Description Deletes customer with provided id
// @Tags        customers
// @Param       id     path     string true "Customer id"
// @Success     204    "Successful status code"
// @Failure     400    {object} validation.PayloadError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/customers/{id} [delete]
func (h *CustomerHTTPHandler) DeleteByID(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	if err := h.customerSvc.DeleteByID(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// rejectionJSON responds with rejection body, other errors are passed on
func rejectionJSON(c echo.Context, err error) error {
	var bErr *apperrors.BusinessErr
	if !errors.As(err, &bErr) {
		return err
	}

	status := http.StatusBadRequest
	if bErr.Reason() == apperrors.ReasonEmailInUse {
		status = http.StatusConflict
	}
	return c.JSON(status, bErr)
}
