package http

import (
	"fmt"
	"net/http"

	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/entry"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func badParam(name string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s parameter: %s", name, err))
}

func pathID(c echo.Context) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, badParam("id", err)
	}
	return id, nil
}

func queryInt(c echo.Context, name string) (*int64, error) {
	var v *int64
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &v); err != nil {
		return nil, badParam(name, err)
	}
	return v, nil
}

func queryVisibility(c echo.Context) (queries.Visibility, error) {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, "visibility", c.QueryParams(), &raw); err != nil {
		return queries.Live, badParam("visibility", err)
	}
	if raw == nil {
		return queries.Live, nil
	}
	return queries.ParseVisibility(*raw)
}

func queryPage(c echo.Context) (kernel.Page, error) {
	var number, size *int
	if err := runtime.BindQueryParameter("form", true, false, "page", c.QueryParams(), &number); err != nil {
		return kernel.Page{}, badParam("page", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "pageSize", c.QueryParams(), &size); err != nil {
		return kernel.Page{}, badParam("pageSize", err)
	}
	var n, s int
	if number != nil {
		n = *number
	}
	if size != nil {
		s = *size
	}
	return kernel.NewPage(n, s)
}

// queryStatuses reads repeated status parameters: ?status=Waiting&status=Processing.
func queryStatuses(c echo.Context) (entry.StatusFilter, error) {
	var raw []string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &raw); err != nil {
		return nil, badParam("status", err)
	}
	filter := make(entry.StatusFilter, 0, len(raw))
	for _, s := range raw {
		status, err := entry.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		filter = append(filter, status)
	}
	return filter, nil
}

// bind decodes the JSON body into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
