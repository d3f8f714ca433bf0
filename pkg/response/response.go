package response

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	apperrors "corrlog/pkg/errors"
)

// ── 输出格式 ──

type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
)

// ParseFormat 解析 --format 参数
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHuman, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("不支持的输出格式: %s（可选 human、json）", s)
	}
}

// Response 统一响应结构，json 格式下原样输出
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// Table 人类可读格式下的表格
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Empty   string // 无数据时输出的提示
}

// ── 错误码 ──
// 与 HTTP 状态码同段，便于脚本按前三位判断

const (
	CodeOK         = 0
	CodeValidation = 40001
	CodeConflict   = 40901
	CodeInternal   = 50000
	CodeStorage    = 50001
	CodeIO         = 50002
)

// Writer 命令行输出器：结果写 out，错误写 errOut
type Writer struct {
	out    io.Writer
	errOut io.Writer
	format Format
}

// NewWriter 创建输出器
func NewWriter(out, errOut io.Writer, format Format) *Writer {
	return &Writer{out: out, errOut: errOut, format: format}
}

// ── 成功响应 ──

// OK 输出数据；human 格式下依次打印各表格
func (w *Writer) OK(data interface{}, tables ...Table) error {
	if w.format == FormatJSON {
		return w.writeJSON(w.out, Response{Code: CodeOK, Message: "success", Data: data})
	}
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w.out)
		}
		if err := writeTable(w.out, t); err != nil {
			return err
		}
	}
	return nil
}

// Message 输出一行提示，json 格式下附带 data
func (w *Writer) Message(msg string, data interface{}) error {
	if w.format == FormatJSON {
		return w.writeJSON(w.out, Response{Code: CodeOK, Message: msg, Data: data})
	}
	_, err := fmt.Fprintln(w.out, msg)
	return err
}

// ── 错误响应 ──

// Error 按错误类别输出带前缀的错误信息
func (w *Writer) Error(err error) {
	code := CodeOf(err)
	if w.format == FormatJSON {
		_ = w.writeJSON(w.errOut, Response{Code: code, Message: Prefix(err), Details: err.Error()})
		return
	}
	fmt.Fprintf(w.errOut, "%s: %v\n", Prefix(err), err)
}

// CodeOf 错误类别 → 错误码
func CodeOf(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.ErrValidation:
		return CodeValidation
	case apperrors.ErrConflict:
		return CodeConflict
	case apperrors.ErrStorage:
		return CodeStorage
	case apperrors.ErrIO:
		return CodeIO
	default:
		return CodeInternal
	}
}

// Prefix 错误类别 → 面向用户的前缀
func Prefix(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.ErrValidation:
		return "输入错误"
	case apperrors.ErrConflict:
		return "操作被拒绝"
	case apperrors.ErrStorage:
		return "数据库错误"
	case apperrors.ErrIO:
		return "文件错误"
	default:
		return "错误"
	}
}

// ── 内部方法 ──

func (w *Writer) writeJSON(dst io.Writer, resp Response) error {
	enc := json.NewEncoder(dst)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}

func writeTable(dst io.Writer, t Table) error {
	if t.Title != "" {
		fmt.Fprintln(dst, t.Title)
	}
	if len(t.Rows) == 0 {
		if t.Empty != "" {
			_, err := fmt.Fprintln(dst, t.Empty)
			return err
		}
		return nil
	}
	tw := tabwriter.NewWriter(dst, 0, 0, 2, ' ', 0)
	if len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
