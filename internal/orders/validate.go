package orders

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrInvalidOrder = errors.New("invalid order")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks an order against its struct tags. Field failures are
// joined into one ErrInvalidOrder so a log line shows all of them.
func Validate(o *Order) error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Namespace()+" ("+fe.Tag()+")")
	}
	return fmt.Errorf("%w: %s", ErrInvalidOrder, strings.Join(fields, ", "))
}

// Parse decodes one order message and validates it.
func Parse(b []byte) (*Order, error) {
	var o Order
	if err := json.Unmarshal(b, &o); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidOrder, err)
	}
	if err := Validate(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ParseMany accepts either a single order object or a JSON array of them.
func ParseMany(b []byte) ([]*Order, error) {
	trimmed := strings.TrimSpace(string(b))
	if !strings.HasPrefix(trimmed, "[") {
		o, err := Parse(b)
		if err != nil {
			return nil, err
		}
		return []*Order{o}, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidOrder, err)
	}
	out := make([]*Order, 0, len(raw))
	for i, r := range raw {
		o, err := Parse(r)
		if err != nil {
			return nil, fmt.Errorf("order #%d: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}
