package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/classcheck/classcheck-api/internal/pkg/clock"
)

// Validator instance
var validate *validator.Validate

// Fixed vocabularies shared by validation and the intent prompt.
var (
	Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

	RoomTypes = []string{
		"Lecture Hall", "Laboratory", "Seminar Room", "Computer Lab",
		"Auditorium", "Study Hall", "Conference Room",
	}

	RoomStatuses = []string{"Available", "Maintenance", "Reserved"}
)

// IsWeekday reports whether day is one of the seven weekday names.
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if day == d {
			return true
		}
	}
	return false
}

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		day := fl.Field().String()
		for _, d := range Weekdays {
			if day == d {
				return true
			}
		}
		return false
	})

	validate.RegisterValidation("roomtype", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		for _, rt := range RoomTypes {
			if t == rt {
				return true
			}
		}
		return false
	})

	validate.RegisterValidation("roomstatus", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, rs := range RoomStatuses {
			if s == rs {
				return true
			}
		}
		return false
	})

	// 12-hour clock string, e.g. "9:00 AM". Empty passes; pair with
	// required when the field is mandatory.
	validate.RegisterValidation("clock12", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := clock.ParseClock(s)
		return err == nil
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "weekday":
			errors[field] = "Invalid day. Must be Monday through Sunday"
		case "roomtype":
			errors[field] = "Invalid room type. Must be one of: " + strings.Join(RoomTypes, ", ")
		case "roomstatus":
			errors[field] = "Invalid status. Must be: Available, Maintenance, or Reserved"
		case "clock12":
			errors[field] = "Invalid time. Use the form \"9:00 AM\""
		default:
			errors[field] = "Invalid value"
		}
	}
	return errors
}
