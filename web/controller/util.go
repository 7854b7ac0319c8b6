package controller

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"strings"

	"github.com/MarcosLesca/dashboard-api/database"
	"github.com/MarcosLesca/dashboard-api/logger"
	"github.com/MarcosLesca/dashboard-api/web/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonDetail sends a single-detail error payload with the given status code.
func jsonDetail(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, gin.H{"detail": detail})
}

func notFound(c *gin.Context) {
	jsonDetail(c, http.StatusNotFound, "Not found.")
}

func forbidden(c *gin.Context) {
	jsonDetail(c, http.StatusForbidden, "You do not have permission to perform this action.")
}

// jsonServiceError translates a service-layer error into the matching HTTP
// response: field-keyed 400 for validation errors, 403 for ownership
// violations, 404 for missing or scoped-out rows, 500 otherwise.
func jsonServiceError(c *gin.Context, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, ve.Fields)
		return
	}
	if errors.Is(err, service.ErrNotOwner) {
		forbidden(c)
		return
	}
	if database.IsNotFound(err) {
		notFound(c)
		return
	}
	logger.Warning("request failed:", err)
	jsonDetail(c, http.StatusInternalServerError, "Internal server error.")
}

// jsonBindingErrors renders a request-body binding failure as field-keyed
// messages, resolving struct fields to their json names.
func jsonBindingErrors(c *gin.Context, form any, err error) {
	out := make(map[string][]string)

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		t := reflect.TypeOf(form)
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		for _, fe := range ves {
			name := strings.ToLower(fe.Field())
			if f, ok := t.FieldByName(fe.StructField()); ok {
				if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
					name = tag
				}
			}
			out[name] = append(out[name], validationMessage(fe))
		}
	} else {
		out["non_field_errors"] = []string{"Invalid request body."}
	}

	c.JSON(http.StatusBadRequest, out)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	default:
		return "This value is not valid."
	}
}
