package settings

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	deckerrors "github.com/alexisbeaulieu97/settingsdeck/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("item_kind", func(fl validator.FieldLevel) bool {
			return Kind(fl.Field().String()).Valid()
		})

		// Keys are embedded into control ids, so they must not contain whitespace.
		_ = v.RegisterValidation("control_key", func(fl validator.FieldLevel) bool {
			key := fl.Field().String()
			return key != "" && strings.IndexFunc(key, unicode.IsSpace) < 0
		})

		validateInst = v
	})
	return validateInst
}

// Lint checks the registered groups for problems that registration itself
// tolerates: invalid kinds, malformed keys, duplicate group names, duplicate
// value keys and defaults whose variant does not fit the item kind. It
// returns every issue found as a *errors.ValidationError.
func (r *Registry) Lint() []error {
	var issues []error

	names := make(map[string]int)
	keys := make(map[string]string)

	for gi, group := range r.Groups() {
		prefix := fmt.Sprintf("groups[%d]", gi)

		if err := validatorInstance().Struct(group); err != nil {
			issues = append(issues, convertValidationError(prefix, err)...)
		}

		if first, dup := names[group.Name]; dup {
			issues = append(issues, deckerrors.NewValidationError(prefix+".name",
				fmt.Sprintf("duplicate group name %q (first at groups[%d])", group.Name, first), nil))
		} else {
			names[group.Name] = gi
		}

		for ii, item := range group.Items {
			field := fmt.Sprintf("%s.items[%d]", prefix, ii)
			if item.Kind.HasValue() {
				if owner, dup := keys[item.Key]; dup {
					issues = append(issues, deckerrors.NewValidationError(field+".key",
						fmt.Sprintf("duplicate key %q (also in group %q)", item.Key, owner), nil))
				} else {
					keys[item.Key] = group.Name
				}
			}
			if item.Default != nil && !DefaultFits(item.Kind, item.Default) {
				issues = append(issues, deckerrors.NewValidationError(field+".default",
					fmt.Sprintf("default %T does not fit kind %s", item.Default, item.Kind), nil))
			}
		}
	}

	return issues
}

// DefaultFits reports whether v is the Value variant expected for kind.
func DefaultFits(kind Kind, v Value) bool {
	switch v.(type) {
	case Text:
		return kind == KindText || kind == KindTextarea
	case Bool:
		return kind == KindCheckbox
	case Choice:
		return kind == KindSelect
	case Composite:
		return kind == KindTextWithSwitch
	default:
		return false
	}
}

func convertValidationError(prefix string, err error) []error {
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return []error{deckerrors.NewValidationError(prefix, err.Error(), err)}
	}

	out := make([]error, 0, len(ves))
	for _, fe := range ves {
		field := prefix + fieldPath(fe)
		out = append(out, deckerrors.NewValidationError(field,
			fmt.Sprintf("failed validation for tag '%s'", fe.Tag()), fe))
	}
	return out
}

// fieldPath turns "Group.Items[2].Key" into ".items[2].key".
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) <= 1 {
		return ""
	}
	lowered := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		lowered = append(lowered, strings.ToLower(part))
	}
	return "." + strings.Join(lowered, ".")
}
