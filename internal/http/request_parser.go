package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"wealth/internal/core"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	enum := func(valid func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool { return valid(fl.Field().String()) }
	}
	must(v.RegisterValidation("currency", enum(func(s string) bool { return core.Currency(s).Validate() == nil })))
	must(v.RegisterValidation("income_type", enum(func(s string) bool { return core.IncomeType(s).Valid() })))
	must(v.RegisterValidation("expense_category", enum(func(s string) bool { return core.ExpenseCategory(s).Valid() })))
	must(v.RegisterValidation("payment_method", enum(func(s string) bool { return core.PaymentMethod(s).Valid() })))
	must(v.RegisterValidation("frequency", enum(func(s string) bool { return core.Frequency(s).Valid() })))
	must(v.RegisterValidation("loan_status", enum(func(s string) bool { return core.LoanStatus(s).Valid() })))

	// Nullable patch fields validate their inner value; null skips omitempty rules.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if o, ok := f.Interface().(interface{ Interface() any }); ok {
			return o.Interface()
		}
		return nil
	}, core.Optional[core.Frequency]{}, core.Optional[core.PaymentMethod]{})
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// decodeBody reads a JSON object into dst and validates it. On failure the
// 400 response is already written and false is returned.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "Request body is required")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "currency":
		return fe.Field() + " must be one of " + joinEnum(core.Currencies())
	case "income_type", "expense_category", "payment_method", "frequency", "loan_status":
		return fmt.Sprintf("%s has invalid value %v", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string) (*int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", core.ErrInvalidInput, key)
	}
	return &n, nil
}

// queryDate parses an optional date query parameter; absent yields zero time.
func queryDate(r *http.Request, key string) (time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return time.Time{}, nil
	}
	t, err := core.ParseDate(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}

// queryEnum checks an optional enum query parameter.
func queryEnum[T ~string](r *http.Request, key string, valid func(T) bool) (T, error) {
	v := T(strings.TrimSpace(r.URL.Query().Get(key)))
	if v == "" || valid(v) {
		return v, nil
	}
	return "", fmt.Errorf("%w: unknown %s %q", core.ErrInvalidInput, key, string(v))
}

// MonthParams is the optional month/year pair of the monthly summaries.
// Month is one-based as sent by clients.
type MonthParams struct {
	Month *int
	Year  *int
}

func ParseMonthParams(r *http.Request) (MonthParams, error) {
	month, err := queryInt(r, "month")
	if err != nil {
		return MonthParams{}, err
	}
	year, err := queryInt(r, "year")
	if err != nil {
		return MonthParams{}, err
	}
	return MonthParams{Month: month, Year: year}, nil
}
