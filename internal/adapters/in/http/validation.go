package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"fablab/internal/adapters/in/http/docs"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// NewRequestValidator builds a router over the Swagger document served on
// /swagger so that requests are checked against the same contract.
func NewRequestValidator() (*RequestValidator, error) {
	var doc2 openapi2.T
	if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc2); err != nil {
		return nil, fmt.Errorf("failed to parse swagger document: %w", err)
	}

	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("failed to convert swagger document: %w", err)
	}

	router, err := legacy.NewRouter(doc3)
	if err != nil {
		return nil, fmt.Errorf("failed to build validation router: %w", err)
	}
	return &RequestValidator{router: router}, nil
}

// RequestValidator checks parameters and JSON bodies against the API
// document. Requests for undocumented routes pass through untouched.
type RequestValidator struct {
	router routers.Router
}

func (v *RequestValidator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := v.router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
					// multipart uploads are checked by the handler
					ExcludeRequestBody: strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm),
				},
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, validationError(err))
			}
			return next(c)
		}
	}
}

func validationError(err error) Error {
	key := "body"
	if reqErr, ok := err.(*openapi3filter.RequestError); ok && reqErr.Parameter != nil {
		key = reqErr.Parameter.Name
	}
	return Error{
		Code:    http.StatusBadRequest,
		Message: "request does not match the API contract",
		Fields:  map[string]string{key: err.Error()},
	}
}
