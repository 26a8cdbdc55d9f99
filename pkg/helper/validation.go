package helper

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	apperrors "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	})
	return validate
}

// ValidateStruct returns a ValidationError naming the first failing field.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.ErrValidation(err.Error())
	}

	fe := verrs[0]
	field := fe.Field()
	if ns := fe.Namespace(); strings.Contains(ns, "[") {
		if idx := strings.Index(ns, "."); idx >= 0 {
			field = ns[idx+1:]
		}
	}

	switch fe.Tag() {
	case "required":
		return apperrors.ErrValidation(fmt.Sprintf("%s is required", field))
	case "max":
		return apperrors.ErrValidation(fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	case "gt", "gte":
		return apperrors.ErrValidation(fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
	case "url", "http_url":
		return apperrors.ErrValidation(fmt.Sprintf("%s must be a valid URL", field))
	default:
		return apperrors.ErrValidation(fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
	}
}

func GetMimeTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	case ".avi":
		return "video/x-msvideo"
	case ".mkv":
		return "video/x-matroska"
	default:
		return "application/octet-stream"
	}
}
