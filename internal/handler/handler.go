package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/integrations/cbr"
	"github.com/Dan9191/finance-tracker/internal/middleware"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/repository"
	"github.com/Dan9191/finance-tracker/internal/service"
	"github.com/Dan9191/finance-tracker/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// KeyRateSource reports the central bank key rate.
type KeyRateSource interface {
	KeyRate(ctx context.Context) (*cbr.KeyRate, error)
}

type Handler struct {
	svc         *service.Service
	repo        *repository.Repository
	market      KeyRateSource
	log         *logrus.Logger
	validate    *validator.Validate
	frontendURL string

	Incomes     *Resource[models.Income, models.IncomePatch, models.IncomeInput]
	Expenses    *Resource[models.Expense, models.ExpensePatch, models.ExpenseInput]
	Assets      *Resource[models.Asset, models.AssetPatch, models.AssetInput]
	Liabilities *Resource[models.Liability, models.LiabilityPatch, models.LiabilityInput]
	Goals       *Resource[models.Goal, models.GoalPatch, models.GoalInput]
}

func NewHandler(svc *service.Service, repo *repository.Repository, market KeyRateSource, log *logrus.Logger, frontendURL string) *Handler {
	h := &Handler{
		svc:         svc,
		repo:        repo,
		market:      market,
		log:         log,
		validate:    newValidator(),
		frontendURL: frontendURL,
	}
	h.Incomes = newResource[models.Income, models.IncomePatch, models.IncomeInput](h, "income", repo.Incomes)
	h.Expenses = newResource[models.Expense, models.ExpensePatch, models.ExpenseInput](h, "expense", repo.Expenses)
	h.Assets = newResource[models.Asset, models.AssetPatch, models.AssetInput](h, "asset", repo.Assets)
	h.Liabilities = newResource[models.Liability, models.LiabilityPatch, models.LiabilityInput](h, "liability", repo.Liabilities)
	h.Goals = newResource[models.Goal, models.GoalPatch, models.GoalInput](h, "goal", repo.Goals)
	return h
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationError is returned for request bodies that fail validation.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d fields", len(e.Errors))
}

var errBadBody = errors.New("invalid request body")

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// decode reads exactly one JSON value from the body of r into dst.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON value", errBadBody)
	}
	return nil
}

// check validates v and prefixes every failing field with prefix.
func (h *Handler) check(v any, prefix string) []FieldError {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: prefix, Tag: "invalid", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		out = append(out, FieldError{
			Field:   prefix + field,
			Tag:     fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// decodeAndValidate decodes the body into dst and validates it.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decode(w, r, dst); err != nil {
		return err
	}
	if errs := h.check(dst, ""); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}

// writeError maps err onto a status code and a client-safe message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteJSON(w, http.StatusBadRequest, verr)
	case errors.Is(err, errBadBody):
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, repository.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrUserExists):
		utils.WriteError(w, http.StatusBadRequest, "Username or email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrTokenExpired):
		utils.WriteError(w, http.StatusUnauthorized, "Token expired")
	case errors.Is(err, service.ErrInvalidToken):
		utils.WriteError(w, http.StatusForbidden, "Invalid token")
	case errors.Is(err, service.ErrInvalidState):
		utils.WriteError(w, http.StatusBadRequest, "Invalid or expired sign-in state")
	case errors.Is(err, service.ErrNotConfigured):
		utils.WriteError(w, http.StatusServiceUnavailable, "Service not configured")
	default:
		h.log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("Request failed")
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// userID returns the caller set by the auth middleware.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return id, ok
}
