package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/form"
)

// ConsoleHandler serves the generic staff CRUD pages. Every registered
// resource gets the same list/new/edit/delete surface; the per-resource
// schema and form descriptor supply everything that differs.
type ConsoleHandler struct {
	registry *Registry
}

func NewConsoleHandler(registry *Registry) *ConsoleHandler {
	return &ConsoleHandler{registry: registry}
}

type consoleListPage struct {
	Resource string
	Title    string
	IDField  string
	Fields   []form.Field
	Rows     []map[string]any
	Loading  bool
}

type consoleFormPage struct {
	Resource string
	Title    string
	Action   string
	IsEdit   bool
	Fields   []form.Field
	Values   form.Draft
	Errors   map[string]string
}

func (h *ConsoleHandler) lookup(c echo.Context) (*ConsoleResource, error) {
	res, ok := h.registry.Lookup(c.Param("resource"))
	if !ok {
		return nil, domain.ErrUnknownResource
	}
	return res, nil
}

// List re-fetches the collection and renders the table. A failed fetch still
// renders, with the store's message and an empty collection; a dead token is
// the one failure that escapes, so the session teardown can run.
func (h *ConsoleHandler) List(c echo.Context) error {
	res, err := h.lookup(c)
	if err != nil {
		return err
	}

	if err := res.Store.Load(c.Request().Context()); err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return err
		}
	}

	p := newPage(c, res.Title, consoleListPage{
		Resource: res.Name,
		Title:    res.Title,
		IDField:  res.Schema.IDField,
		Fields:   res.Form.Fields,
		Rows:     res.Store.Items(),
		Loading:  res.Store.Loading(),
	})
	p.Error = res.Store.Error()
	p.Success = res.Store.Success()
	return c.Render(http.StatusOK, "console_list", p)
}

// NewForm renders an empty create form.
func (h *ConsoleHandler) NewForm(c echo.Context) error {
	res, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "console_form", newPage(c, res.Title, consoleFormPage{
		Resource: res.Name,
		Title:    res.Title,
		Action:   "/console/" + res.Name,
		Fields:   res.Form.Fields,
		Values:   res.Form.Defaults(nil),
		Errors:   map[string]string{},
	}))
}

// Create validates the submission and posts it; the record comes back with
// its server-assigned id and joins the end of the collection.
func (h *ConsoleHandler) Create(c echo.Context) error {
	res, err := h.lookup(c)
	if err != nil {
		return err
	}

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	draft, err := res.Form.Bind(values)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form values")
	}

	if fieldErrs := res.Form.Validate(draft); len(fieldErrs) > 0 {
		return h.rerenderForm(c, res, "/console/"+res.Name, false, draft, fieldErrs, "")
	}

	if _, err := res.Store.Create(c.Request().Context(), map[string]any(draft)); err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return err
		}
		return h.rerenderForm(c, res, "/console/"+res.Name, false, draft, nil, res.Store.Error())
	}
	return c.Redirect(http.StatusSeeOther, "/console/"+res.Name)
}

// EditForm renders the edit form prefilled from the mirrored record.
func (h *ConsoleHandler) EditForm(c echo.Context) error {
	res, err := h.lookup(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if !res.Store.Loaded() {
		if err := res.Store.Load(c.Request().Context()); err != nil {
			return err
		}
	}
	rec, ok := res.Store.Find(id)
	if !ok {
		return domain.ErrNotFound
	}

	return c.Render(http.StatusOK, "console_form", newPage(c, res.Title, consoleFormPage{
		Resource: res.Name,
		Title:    res.Title,
		Action:   "/console/" + res.Name + "/" + c.Param("id"),
		IsEdit:   true,
		Fields:   res.Form.Fields,
		Values:   res.Form.Defaults(form.Draft(rec)),
		Errors:   map[string]string{},
	}))
}

// Update validates and puts a full record replacement.
func (h *ConsoleHandler) Update(c echo.Context) error {
	res, err := h.lookup(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	draft, err := res.Form.Bind(values)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form values")
	}

	action := "/console/" + res.Name + "/" + c.Param("id")
	if fieldErrs := res.Form.Validate(draft); len(fieldErrs) > 0 {
		return h.rerenderForm(c, res, action, true, draft, fieldErrs, "")
	}

	rec := map[string]any(draft)
	rec[res.Schema.IDField] = id
	if _, err := res.Store.Update(c.Request().Context(), id, rec); err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return err
		}
		return h.rerenderForm(c, res, action, true, draft, nil, res.Store.Error())
	}
	return c.Redirect(http.StatusSeeOther, "/console/"+res.Name)
}

// Delete removes a record and returns to the list.
func (h *ConsoleHandler) Delete(c echo.Context) error {
	res, err := h.lookup(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := res.Store.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return err
		}
	}
	return c.Redirect(http.StatusSeeOther, "/console/"+res.Name)
}

func (h *ConsoleHandler) rerenderForm(c echo.Context, res *ConsoleResource, action string, isEdit bool, draft form.Draft, fieldErrs []form.FieldError, errMsg string) error {
	errMap := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		errMap[fe.Field] = fe.Message
	}
	p := newPage(c, res.Title, consoleFormPage{
		Resource: res.Name,
		Title:    res.Title,
		Action:   action,
		IsEdit:   isEdit,
		Fields:   res.Form.Fields,
		Values:   draft,
		Errors:   errMap,
	})
	p.Error = errMsg
	return c.Render(http.StatusUnprocessableEntity, "console_form", p)
}
