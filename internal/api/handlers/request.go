package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

var (
	// ErrEmptyBody тело запроса отсутствует
	ErrEmptyBody = errors.New("handlers: empty request body")

	// ErrValidation тело запроса не прошло валидацию
	ErrValidation = errors.New("handlers: validation failed")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON декодирует тело запроса и валидирует его по тегам `validate`
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}

	return ValidateStruct(dst)
}

// ValidateStruct проверяет структуру по тегам `validate`
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, fmt.Sprintf("%s:%s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
	}

	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

// ParseOptionalDate разбирает необязательный query-параметр даты
func ParseOptionalDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// ParseOptionalInt разбирает необязательный целочисленный query-параметр
func ParseOptionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseOptionalString возвращает необязательный строковый query-параметр
func ParseOptionalString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

// ParseID разбирает положительный идентификатор из пути
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive: %d", id)
	}
	return id, nil
}
