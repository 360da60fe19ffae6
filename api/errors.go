package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func respondError(c *gin.Context, code int, message string, details any) {
	c.AbortWithStatusJSON(code, errorResponse{Error: errorBody{Code: code, Message: message, Errors: details}})
}

// writeError is the single place where domain errors become HTTP statuses.
func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(c, http.StatusBadRequest, "Invalid input.", ve.Fields)
	case errors.Is(err, domain.ErrValidation):
		respondError(c, http.StatusBadRequest, capitalize(strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")), nil)
	case errors.Is(err, domain.ErrFlightNotFound):
		respondError(c, http.StatusNotFound, "Flight not found", nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "Not found.", nil)
	case errors.Is(err, domain.ErrNoSeatsAvailable):
		respondError(c, http.StatusBadRequest, "No seats available", nil)
	case errors.Is(err, domain.ErrDuplicateBooking):
		respondError(c, http.StatusBadRequest, "Flight already booked by this user", nil)
	case errors.Is(err, domain.ErrEmailTaken):
		respondError(c, http.StatusBadRequest, "Invalid input.", map[string][]string{"email": {domain.ErrEmailTaken.Error() + "."}})
	case domain.IsConflict(err):
		respondError(c, http.StatusBadRequest, capitalize(err.Error()), nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Login failed"})
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(c, http.StatusUnauthorized, "Authentication credentials were not provided.", nil)
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

// bindError reports malformed bodies and failed binding tags as a 400 with per-field details.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			name := jsonFieldName(fe)
			fields[name] = append(fields[name], fieldMessage(fe))
		}
		respondError(c, http.StatusBadRequest, "Invalid input.", fields)
		return
	}
	respondError(c, http.StatusBadRequest, "Malformed request body.", err.Error())
}

// jsonFieldName relies on the tag name func registered in init.
func jsonFieldName(fe validator.FieldError) string {
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min", "gte":
		return fmt.Sprintf("Ensure this value is at least %s.", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("Ensure this value is at most %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusNotFound, "Not found.", nil)
		return 0, false
	}
	return id, true
}

func parseDate(field, value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, domain.Validation(field, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
