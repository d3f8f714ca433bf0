package service

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"corrlog/internal/model"
	apperrors "corrlog/pkg/errors"
)

// requestValidator 请求 DTO 校验器，错误统一转换为 ErrValidation
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 字段名取 json tag，与界面层提交的字段一致
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("count", func(fl validator.FieldLevel) bool {
		_, err := parseCount(fl.Field().String())
		return err == nil
	})
	for tag, values := range model.Catalog {
		values := values
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return model.Contains(values, fl.Field().String())
		})
	}

	return &requestValidator{v: v}
}

// check 校验请求；只报告第一个失败字段
func (rv *requestValidator) check(op string, req interface{}) error {
	err := rv.v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.Validation(op, fe.Field(), validationMessage(fe))
	}
	return apperrors.Validation(op, "", err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return "不能为空"
	case "datetime":
		return "日期格式应为 YYYY-MM-DD"
	case "count":
		return "应为非负整数"
	case "gt":
		return "未指定"
	case "rank", "corr_type", "urgency", "period":
		return "不在可选范围内: " + fe.Value().(string)
	default:
		return "校验失败: " + fe.Tag()
	}
}

// parseCount 解析收发数量（非负整数）
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
