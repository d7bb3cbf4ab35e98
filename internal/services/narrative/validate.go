package narrative

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/storyteller/internal/models"
)

// ErrInvalidPayload is matched by every PayloadError
var ErrInvalidPayload = errors.New("invalid event payload")

// PayloadError names the payload field that a template needed but could not use
type PayloadError struct {
	EventType models.EventType
	Field     string
	Reason    string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid %s payload: field %q %s", e.EventType, e.Field, e.Reason)
}

// Is reports ErrInvalidPayload so callers can use errors.Is
func (e *PayloadError) Is(target error) bool {
	return target == ErrInvalidPayload
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// payloadValidator reports fields by their json names (eps_estimate rather than EPSEstimate)
func payloadValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// validatePayload returns a PayloadError for the first missing required field
func validatePayload(eventType models.EventType, payload any) error {
	err := payloadValidator().Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		reason := "is missing"
		if fe.Tag() != "required" {
			reason = fmt.Sprintf("failed %s", fe.Tag())
		}
		return &PayloadError{EventType: eventType, Field: fe.Field(), Reason: reason}
	}

	return &PayloadError{EventType: eventType, Field: "event_data", Reason: err.Error()}
}
