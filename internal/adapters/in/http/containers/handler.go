// Package containers implements the HTTP adapter for the container inventory API.
package containers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/containerlens/containerlens/internal/adapters/dto"
	"github.com/containerlens/containerlens/internal/boundaries/in"
	"github.com/containerlens/containerlens/internal/domain"
	"github.com/containerlens/containerlens/internal/logging"
)

// Handler serves the container inventory API.
type Handler struct {
	containers in.ContainerService
	access     in.AccessService
}

// NewHandler creates a new container API handler.
func NewHandler(containers in.ContainerService, access in.AccessService) *Handler {
	return &Handler{
		containers: containers,
		access:     access,
	}
}

// RegisterRoutes registers the API routes on the given echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.health)

	api := e.Group("/api")
	api.GET("/capabilities", h.capabilities)

	devices := api.Group("/devices/:id")
	devices.GET("/containers", h.listContainers)
	devices.GET("/groups", h.listGroups)
	devices.GET("/overview", h.overview)
	devices.GET("/access", h.listAccess)

	services := api.Group("/services/:id")
	services.GET("", h.getContainer)
	services.GET("/access", h.tabAccess)
	services.POST("/stop", h.stop)
	services.POST("/remove", h.remove)
}

func (h *Handler) health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (h *Handler) capabilities(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.FromCapabilities(h.containers.Capabilities()))
}

func (h *Handler) listContainers(c echo.Context) error {
	ctx := h.requestContext(c, "listContainers")
	deviceID := c.Param("id")

	includeGroups, err := parseBool(c.QueryParam("groups"))
	if err != nil {
		return sendError(c, http.StatusBadRequest, "invalid groups parameter")
	}

	containers, err := h.containers.Search(ctx, deviceID, in.SearchOptions{
		Query:         c.QueryParam("q"),
		IncludeGroups: includeGroups,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto.FromContainers(containers))
}

func (h *Handler) listGroups(c echo.Context) error {
	ctx := h.requestContext(c, "listGroups")

	groups, err := h.containers.SearchGroups(ctx, c.Param("id"), c.QueryParam("q"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto.FromGroups(groups))
}

// overview fetches the standalone containers and the groups concurrently.
func (h *Handler) overview(c echo.Context) error {
	ctx := h.requestContext(c, "overview")
	deviceID := c.Param("id")
	query := c.QueryParam("q")

	var (
		containers []domain.Container
		groups     []domain.ContainerGroup
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		containers, err = h.containers.Search(gctx, deviceID, in.SearchOptions{Query: query})
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = h.containers.SearchGroups(gctx, deviceID, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, dto.Overview{
		Containers: dto.FromContainers(containers),
		Groups:     dto.FromGroups(groups),
	})
}

func (h *Handler) listAccess(c echo.Context) error {
	ctx := h.requestContext(c, "listAccess")

	allowed, err := h.access.CanViewContainerList(ctx, c.Param("id"))
	if err != nil {
		return h.deny(c, err)
	}
	return c.JSON(http.StatusOK, dto.AccessResponse{Allowed: allowed})
}

func (h *Handler) tabAccess(c echo.Context) error {
	ctx := h.requestContext(c, "tabAccess")
	objectID := c.Param("id")

	chain := []domain.ViewContext{{ID: objectID, ServiceType: c.QueryParam("serviceType")}}
	if chain[0].ServiceType == "" {
		loaded, err := h.access.LoadViewChain(ctx, objectID)
		if err != nil {
			return h.deny(c, err)
		}
		chain = loaded
	}

	view := h.access.ResolveViewContext(chain...)
	return c.JSON(http.StatusOK, dto.AccessResponse{Allowed: h.access.CanViewContainerTab(view.ServiceType)})
}

func (h *Handler) getContainer(c echo.Context) error {
	ctx := h.requestContext(c, "getContainer")

	container, parent, err := h.containers.Container(ctx, c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto.FromDetail(container, parent))
}

func (h *Handler) stop(c echo.Context) error {
	ctx := h.requestContext(c, "stop")
	if err := h.containers.Stop(ctx, domain.Container{ID: c.Param("id")}); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) remove(c echo.Context) error {
	ctx := h.requestContext(c, "remove")
	if err := h.containers.Remove(ctx, domain.Container{ID: c.Param("id")}); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// requestContext decorates the request context logger with handler fields.
func (h *Handler) requestContext(c echo.Context, action string) context.Context {
	req := c.Request()
	ctx := logging.CtxWithFields(req.Context(), map[string]any{
		logging.FieldLayer:   "adapter",
		logging.FieldAdapter: "http",
		logging.FieldHandler: "containers",
		logging.FieldAction:  action,
	})
	c.SetRequest(req.WithContext(ctx))
	return ctx
}

func (h *Handler) fail(c echo.Context, err error) error {
	status, message := statusFor(err)
	log := logging.FromCtx(c.Request().Context())
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		log.Error().Err(err).Int(logging.FieldStatus, status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int(logging.FieldStatus, status).Msg("request rejected")
	}
	return sendError(c, status, message)
}

// deny answers a failed access check. Access is never granted on error.
func (h *Handler) deny(c echo.Context, err error) error {
	status, message := statusFor(err)
	logging.FromCtx(c.Request().Context()).Warn().Err(err).Msg("access check failed, denying")
	return c.JSON(status, dto.AccessErrorResponse{Allowed: false, Error: message})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusBadGateway, "inventory unavailable"
	case errors.Is(err, domain.ErrMalformedResult):
		return http.StatusUnprocessableEntity, "malformed inventory object"
	case errors.Is(err, domain.ErrUnsupported):
		return http.StatusNotImplemented, "operation not supported"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func sendError(c echo.Context, status int, message string) error {
	return c.JSON(status, dto.ErrorResponse{Error: message})
}

func parseBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
