package response

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/careerfit/internal/catalog"
)

// Parse converts a loosely typed answer, as decoded from YAML or JSON, into
// a Value for q. Scale answers accept numbers or option labels, boolean
// answers accept bools or yes/no/true/false strings.
func Parse(q catalog.Question, raw any) (Value, error) {
	switch q.Kind {
	case catalog.KindScale:
		switch x := raw.(type) {
		case int:
			return Scale(float64(x)), nil
		case int64:
			return Scale(float64(x)), nil
		case float64:
			return Scale(x), nil
		case string:
			for _, o := range q.Options {
				if strings.EqualFold(o.Label, x) {
					return Scale(o.Value), nil
				}
			}
			if n, err := strconv.ParseFloat(x, 64); err == nil {
				return Scale(n), nil
			}
		}
	case catalog.KindSingleChoice:
		switch x := raw.(type) {
		case string:
			return Choice(x), nil
		case int:
			return Choice(strconv.Itoa(x)), nil
		case float64:
			return Choice(strconv.FormatFloat(x, 'f', -1, 64)), nil
		}
	case catalog.KindBoolean:
		switch x := raw.(type) {
		case bool:
			return Bool(x), nil
		case string:
			switch strings.ToLower(x) {
			case "true", "yes", "y":
				return Bool(true), nil
			case "false", "no", "n":
				return Bool(false), nil
			}
		}
	}
	return Value{}, fmt.Errorf("%w: cannot use %v as %s answer for %q", ErrInvalidValue, raw, q.Kind, q.ID)
}

// ParseAll builds a store from raw answers keyed by question ID.
func ParseAll(a *catalog.Assessment, raw map[string]any) (*Store, error) {
	s := NewStore(a)
	for id, v := range raw {
		q, ok := a.Question(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
		}
		val, err := Parse(q, v)
		if err != nil {
			return nil, err
		}
		if err := s.Record(id, val); err != nil {
			return nil, err
		}
	}
	return s, nil
}
