package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/studyplan-backend/internal/domain/schedule"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Validator returns the shared validator with the project's custom tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			_, ok := schedule.CanonicalWeekday(fl.Field().String())
			return ok
		})
	})
	return v
}

// Struct validates s and flattens field errors into one readable error.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}
