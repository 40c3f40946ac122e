package server

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/logintheme/errors"
)

type (
	// ResponseErrorHandler response error handing
	ResponseErrorHandler func(re *errors.Response)
	// InternalErrorHandler internal error handing
	InternalErrorHandler func(err error) (re *errors.Response)
)

// ParseRequest decode the query of a GET or the body of a POST into T
func ParseRequest[T any](ctx *fiber.Ctx) (T, error) {
	var t T
	var err error
	if ctx.Method() == fiber.MethodGet {
		err = ctx.QueryParser(&t)
	} else if ctx.Method() == fiber.MethodPost {
		if len(ctx.Body()) == 0 {
			return t, errors.ErrMissingContext
		}
		err = ctx.BodyParser(&t)
	}
	if err != nil {
		return t, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	return t, nil
}

// GetErrorData the error response body, status and headers of err
func (s *Server) GetErrorData(err error) (map[string]interface{}, int, http.Header) {
	var re errors.Response
	if known, ok := errors.Lookup(err); ok {
		re.Error = known
		re.Description = errors.Descriptions[known]
		re.StatusCode = errors.StatusCodes[known]
	} else {
		if fn := s.InternalErrorHandler; fn != nil {
			if v := fn(err); v != nil {
				re = *v
			}
		}
		if re.Error == nil {
			re.Error = errors.ErrServerError
			re.Description = errors.Descriptions[errors.ErrServerError]
			re.StatusCode = errors.StatusCodes[errors.ErrServerError]
		}
	}
	if fn := s.ResponseErrorHandler; fn != nil {
		fn(&re)
	}
	data := make(map[string]interface{})
	if v := re.Error; v != nil {
		data["error"] = v.Error()
		if v != err && v != errors.ErrServerError {
			data["error_detail"] = err.Error()
		}
	}
	if v := re.ErrorCode; v != 0 {
		data["error_code"] = v
	}
	if v := re.Description; v != "" {
		data["error_description"] = v
	}
	if v := re.URI; v != "" {
		data["error_uri"] = v
	}
	statusCode := fiber.StatusInternalServerError
	if v := re.StatusCode; v > 0 {
		statusCode = v
	}
	return data, statusCode, re.Header
}

// ErrorHandler fiber error handler writing errors as JSON
func (s *Server) ErrorHandler(ctx *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ctx.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	data, statusCode, header := s.GetErrorData(err)
	for key := range header {
		ctx.Set(key, header.Get(key))
	}
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	return ctx.Status(statusCode).JSON(data)
}
