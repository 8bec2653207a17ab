package web

import (
	"reflect"

	"github.com/Zachkp/folio/internal/domain"
)

// structValidator plugs domain.Validate into gin binding, so ShouldBind
// reports problems as *domain.ValidationError.
type structValidator struct{}

func (structValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return domain.Validate(v.Interface())
}

func (structValidator) Engine() any {
	return domain.Engine()
}
