package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/middleware"
	"cafe-ordering-api/pricing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the phone10 binding tag and reports field errors
// under their JSON names. Safe to call more than once.
func RegisterValidators() (err error) {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		err = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
			return len(pricing.Digits(fl.Field().String())) == pricing.PhoneDigits
		})
	})
	return err
}

// writeError renders err as {"error","kind","violations"} with the mapped status.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	kind := apperr.Kind(err)
	body := gin.H{"error": err.Error(), "kind": kind}

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		body["violations"] = ve.Violations
	}
	var se *apperr.SelectionError
	if errors.As(err, &se) {
		body["table_number"] = se.TableNumber
		body["table_status"] = se.Status
	}
	if kind == "empty_cart" {
		body["redirect"] = "/api/menu"
	}

	if status >= http.StatusInternalServerError {
		h.Log.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", middleware.GetRequestID(c),
			"error", err.Error())
		if kind == "internal" {
			body["error"] = "internal server error"
		}
	}
	c.AbortWithStatusJSON(status, body)
}

// bindJSON binds the body and converts binding failures into a ValidationError.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.writeError(c, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) error {
	ve := &apperr.ValidationError{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			field := fe.Field()
			switch fe.Tag() {
			case "required":
				ve.Add(field, apperr.InvalidRequest, field+" is required")
			case "phone10":
				ve.Add(field, apperr.InvalidPhone, "please enter a valid 10-digit phone number")
			default:
				ve.Add(field, apperr.InvalidRequest, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
			}
		}
		return ve
	}
	ve.Add("body", apperr.InvalidRequest, err.Error())
	return ve
}
