package errors

import (
	"errors"
	"fmt"
)

// ── 错误类别 ──
// 调用方通过 errors.Is(err, ErrValidation) 等判断类别

var (
	ErrValidation = errors.New("输入校验失败")
	ErrStorage    = errors.New("数据库访问失败")
	ErrIO         = errors.New("文件写入失败")
	ErrConflict   = errors.New("数据冲突")
)

// Error 带类别与上下文的业务错误
type Error struct {
	Kind  error  // ErrValidation / ErrStorage / ErrIO / ErrConflict
	Op    string // 出错的操作，如 "officer.create"
	Field string // 校验失败的字段，可为空
	Msg   string
	Err   error // 底层原因，可为空
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg = e.Msg
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap 同时暴露类别与底层原因
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Validation 构造字段校验错误
func Validation(op, field, msg string) error {
	return &Error{Kind: ErrValidation, Op: op, Field: field, Msg: msg}
}

// Storage 包装数据库错误
func Storage(op string, err error) error {
	return &Error{Kind: ErrStorage, Op: op, Err: err}
}

// IO 包装文件写入错误
func IO(op string, err error) error {
	return &Error{Kind: ErrIO, Op: op, Err: err}
}

// Conflict 构造数据冲突错误，cause 通常为调用方定义的哨兵错误
func Conflict(op string, cause error) error {
	return &Error{Kind: ErrConflict, Op: op, Err: cause}
}

// KindOf 返回错误类别，无法识别时返回 nil
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrStorage, ErrIO, ErrConflict} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
