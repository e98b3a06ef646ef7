package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/MKhiriev/go-mobile-messaging/models"
)

// Field names accepted by ModelsValidator.
const (
	FieldGender           = "gender"
	FieldBirthday         = "birthday"
	FieldEmails           = "emails"
	FieldPhones           = "phones"
	FieldTags             = "tags"
	FieldCustomAttributes = "custom_attributes"
	FieldText             = "text"
	FieldMessages         = "messages"
	FieldManagedFields    = "managed_fields"
)

// BirthdayLayout is the date format the backend expects for birthdays.
const BirthdayLayout = time.DateOnly

var allowedGenders = []string{"Male", "Female"}

// ModelsValidator validates user data, installation patches and mobile
// originated messages.
type ModelsValidator struct {
}

func NewModelsValidator() Validator {
	return &ModelsValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms
// are accepted.
func (v *ModelsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserData:
		return v.validateUserData(ctx, value, fields...)
	case *models.UserData:
		if value == nil {
			return nil
		}
		return v.validateUserData(ctx, *value, fields...)

	case models.Installation:
		return v.validateInstallation(ctx, value, fields...)
	case *models.Installation:
		return v.validateInstallation(ctx, *value, fields...)

	case models.MOMessage:
		return v.validateMOMessage(ctx, value, fields...)
	case *models.MOMessage:
		return v.validateMOMessage(ctx, *value, fields...)
	case []models.MOMessage:
		return v.validateMOMessages(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ModelsValidator) validateUserData(_ context.Context, data models.UserData, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldGender, FieldBirthday, FieldEmails, FieldPhones, FieldTags, FieldCustomAttributes}
	}

	for _, f := range fields {
		switch f {
		case FieldGender:
			if data.Gender != nil && !isAllowedGender(*data.Gender) {
				return fmt.Errorf("%w: %q", ErrInvalidGender, *data.Gender)
			}
		case FieldBirthday:
			if data.Birthday != nil {
				if _, err := time.Parse(BirthdayLayout, *data.Birthday); err != nil {
					return fmt.Errorf("%w: %q", ErrInvalidBirthday, *data.Birthday)
				}
			}
		case FieldEmails:
			for _, email := range data.Emails {
				if _, err := mail.ParseAddress(email); err != nil {
					return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
				}
			}
		case FieldPhones:
			for _, phone := range data.Phones {
				if !isPhone(phone) {
					return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
				}
			}
		case FieldTags:
			for _, tag := range data.Tags {
				if strings.TrimSpace(tag) == "" {
					return ErrEmptyTag
				}
			}
		case FieldCustomAttributes:
			if err := validateAttributes(data.CustomAttributes); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateInstallation checks a patch supplied by the host application.
// Identity and system data fields are owned by the client.
func (v *ModelsValidator) validateInstallation(_ context.Context, inst models.Installation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldManagedFields, FieldCustomAttributes}
	}

	for _, f := range fields {
		switch f {
		case FieldManagedFields:
			if inst.PushRegID != "" || inst.PushServiceToken != "" || inst.PushServiceType != "" {
				return ErrInvalidInstallation
			}
		case FieldCustomAttributes:
			if err := validateAttributes(inst.CustomAttributes); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ModelsValidator) validateMOMessage(_ context.Context, msg models.MOMessage, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldText, FieldCustomAttributes}
	}

	for _, f := range fields {
		switch f {
		case FieldText:
			if strings.TrimSpace(msg.Text) == "" {
				return ErrEmptyMOText
			}
		case FieldCustomAttributes:
			if err := validateAttributes(msg.CustomPayload); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ModelsValidator) validateMOMessages(ctx context.Context, messages []models.MOMessage, fields ...string) error {
	if len(messages) == 0 {
		return ErrEmptyMOMessages
	}
	for i, msg := range messages {
		if err := v.validateMOMessage(ctx, msg, fields...); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
	}
	return nil
}

func isAllowedGender(g string) bool {
	for _, allowed := range allowedGenders {
		if g == allowed {
			return true
		}
	}
	return false
}

// isPhone accepts digits with an optional leading '+'.
func isPhone(phone string) bool {
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < 3 || len(digits) > 20 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateAttributes allows the value types the backend stores: strings,
// numbers, booleans and nil, which deletes the attribute.
func validateAttributes(attrs map[string]any) error {
	for key, value := range attrs {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: empty key", ErrInvalidCustomAttribute)
		}
		switch value.(type) {
		case nil, string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
		default:
			return fmt.Errorf("%w: %q has unsupported type %T", ErrInvalidCustomAttribute, key, value)
		}
	}
	return nil
}
