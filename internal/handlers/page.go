package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apperrors "github.com/umalmyha/customer-records/internal/errors"
	"github.com/umalmyha/customer-records/internal/flash"
	"github.com/umalmyha/customer-records/internal/model"
	"github.com/umalmyha/customer-records/internal/service"
)

const pageDescription = "Customer records management"

// Flash messages of successful writes
const (
	MsgCustomerAdded   = "New customer has been added."
	MsgCustomerUpdated = "Customer has been updated."
	MsgCustomerDeleted = "Customer has been deleted."
)

const msgCreateFailed = "Error creating new customer"

type identifier struct {
	ID string `json:"id" validate:"required,mongodb"`
}

// CustomerPageHandler serves server-rendered customer pages
type CustomerPageHandler struct {
	customerSvc service.CustomerService
	flasher     *flash.Flasher
}

// NewCustomerPageHandler builds new CustomerPageHandler
func NewCustomerPageHandler(customerSvc service.CustomerService, flasher *flash.Flasher) *CustomerPageHandler {
	return &CustomerPageHandler{
		customerSvc: customerSvc,
		flasher:     flasher,
	}
}

// Index renders customers listing
func (h *CustomerPageHandler) Index(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}

	p, err := h.customerSvc.FindPage(c.Request().Context(), page)
	if err != nil {
		return err
	}

	messages, err := h.flasher.Drain(c, flash.KindInfo)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "index", map[string]any{
		"Title":       "Customers",
		"Description": pageDescription,
		"Page":        p,
		"Messages":    messages,
	})
}

// About renders about page
func (h *CustomerPageHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about", map[string]any{
		"Title":       "About",
		"Description": pageDescription,
	})
}

// Add renders new customer form with the first queued error
func (h *CustomerPageHandler) Add(c echo.Context) error {
	errs, err := h.flasher.Drain(c, flash.KindError)
	if err != nil {
		return err
	}

	var errMsg string
	if len(errs) > 0 {
		errMsg = errs[0]
	}

	return c.Render(http.StatusOK, "add", map[string]any{
		"Title":        "Add New Customer",
		"Description":  pageDescription,
		"ErrorMessage": errMsg,
	})
}

// Create handles new customer form submission
func (h *CustomerPageHandler) Create(c echo.Context) error {
	var nc model.NewCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.customerSvc.Create(c.Request().Context(), &nc); err != nil {
		var bErr *apperrors.BusinessErr
		if !errors.As(err, &bErr) {
			return echo.NewHTTPError(http.StatusInternalServerError, msgCreateFailed).SetInternal(err)
		}

		if bErr.Reason() == apperrors.ReasonMissingFields {
			return c.String(http.StatusBadRequest, bErr.Error())
		}
		return h.flashAndRedirect(c, flash.KindError, bErr.Error(), "/add")
	}

	return h.flashAndRedirect(c, flash.KindInfo, MsgCustomerAdded, "/")
}

// View renders customer details
func (h *CustomerPageHandler) View(c echo.Context) error {
	customer, err := h.findCustomer(c)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "view", map[string]any{
		"Title":       "View Customer Data",
		"Description": pageDescription,
		"Customer":    customer,
	})
}

// Edit renders customer edit form with queued errors
func (h *CustomerPageHandler) Edit(c echo.Context) error {
	customer, err := h.findCustomer(c)
	if err != nil {
		return err
	}

	errs, err := h.flasher.Drain(c, flash.KindError)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "edit", map[string]any{
		"Title":       "Edit Customer Data",
		"Description": pageDescription,
		"Customer":    customer,
		"Errors":      errs,
	})
}

// Update handles customer edit form submission
func (h *CustomerPageHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	var nc model.NewCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.customerSvc.Update(c.Request().Context(), id, &nc); err != nil {
		var bErr *apperrors.BusinessErr
		if errors.As(err, &bErr) {
			return h.flashAndRedirect(c, flash.KindError, bErr.Error(), "/edit/"+id)
		}
		return err
	}

	return h.flashAndRedirect(c, flash.KindInfo, MsgCustomerUpdated, "/")
}

// Delete removes customer
func (h *CustomerPageHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	if err := h.customerSvc.DeleteByID(c.Request().Context(), id); err != nil {
		return err
	}

	return h.flashAndRedirect(c, flash.KindInfo, MsgCustomerDeleted, "/")
}

// Search renders customers matching submitted term
func (h *CustomerPageHandler) Search(c echo.Context) error {
	customers, err := h.customerSvc.Search(c.Request().Context(), c.FormValue("searchTerm"))
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "search", map[string]any{
		"Title":       "Search Customer Data",
		"Description": pageDescription,
		"Customers":   customers,
	})
}

func (h *CustomerPageHandler) findCustomer(c echo.Context) (*model.Customer, error) {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return nil, err
	}
	return h.customerSvc.FindByID(c.Request().Context(), id)
}

func (h *CustomerPageHandler) flashAndRedirect(c echo.Context, kind flash.Kind, text string, location string) error {
	if err := h.flasher.Add(c, kind, text); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, location)
}
