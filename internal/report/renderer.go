package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"corrlog/config"
	"corrlog/internal/model"
	apperrors "corrlog/pkg/errors"
)

// ── 版式常量 ──

const (
	pageMargin   = 10.0 // mm
	footerHeight = 8.0
	rowHeight    = 7.0 // 单行数据行的最小高度
	lineHeight   = 5.0 // 单元格内折行的行距
	cellPaddingY = 1.0
)

// 各区块列宽（mm），固定值，不随数据变化
var (
	SearchColumnWidths = []float64{25, 25, 30, 20, 20, 35, 40}
	TotalsColumnWidths = []float64{40, 30, 20, 20}
)

var (
	searchHeaders = []string{"Дата", "Тип", "Срочность", "Входящая", "Исходящая", "Период", "ДУС"}
	searchAligns  = []string{"C", "L", "L", "R", "R", "L", "L"}
	totalsHeaders = []string{"Тип", "Срочность", "Входящих", "Исходящих"}
	totalsAligns  = []string{"L", "L", "R", "R"}
)

// ErrNoUnicodeFont 未找到可显示西里尔字符的字体
var ErrNoUnicodeFont = errors.New("未找到 UTF-8 TrueType 字体，请配置 report.font_path")

// Document 一份报表的全部输入
type Document struct {
	From        model.Date
	To          model.Date
	ShowRows    bool              // false 时省略检索明细，仅输出分类汇总
	Rows        []model.SearchRow // 检索明细
	Totals      []model.CategoryTotal
	IssuedBy    string // 原样输出，不做缩写
	GeneratedAt time.Time
}

// Renderer 将检索结果排版为 PDF
// 渲染不校验行数据，上游已保证数据合法
type Renderer struct {
	cfg     config.ReportConfig
	regular []byte // UTF-8 TrueType，nil 时只能使用内置字体
	bold    []byte
	logger  *zap.Logger
}

// NewRenderer 按配置加载字体并创建 Renderer
func NewRenderer(cfg config.ReportConfig, logger *zap.Logger) (*Renderer, error) {
	regular, bold, err := loadFonts(cfg.FontPath, cfg.BoldFontPath, logger)
	if err != nil {
		return nil, err
	}
	return &Renderer{cfg: cfg, regular: regular, bold: bold, logger: logger}, nil
}

// Render 生成 PDF 并写入 w；写入失败返回 IO 类错误
// 没有 UTF-8 字体且未开启 report.allow_core_font 时拒绝生成
func (r *Renderer) Render(w io.Writer, doc *Document) error {
	if r.regular == nil && !r.cfg.AllowCoreFont {
		return apperrors.IO("report.render", ErrNoUnicodeFont)
	}
	pdf, err := r.build(doc)
	if err != nil {
		return apperrors.IO("report.render", err)
	}
	if err := pdf.Output(w); err != nil {
		return apperrors.IO("report.render", err)
	}
	r.logger.Debug("报表已生成",
		zap.Int("pages", pdf.PageCount()),
		zap.Int("rows", len(doc.Rows)),
		zap.Int("groups", len(doc.Totals)),
	)
	return nil
}

// ── 排版 ──

type builder struct {
	pdf      *fpdf.Fpdf
	family   string
	bold     string // 粗体样式，未注册粗体时为空
	size     float64
	tr       func(string) string
	pageH    float64
	tsLayout string
}

// newBuilder 创建文档、注册字体与页脚并添加首页
func (r *Renderer) newBuilder(doc *Document) *builder {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	// 手动分页，以便在新页重复表头
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetModificationDate(doc.GeneratedAt)
	pdf.SetCreator("corrlog", false)
	pdf.SetAuthor(doc.IssuedBy, true)
	pdf.SetTitle("Результаты поиска корреспонденции", true)
	pdf.AliasNbPages("{nb}")

	b := &builder{pdf: pdf, size: r.cfg.FontSize, tsLayout: r.cfg.TimestampLayout}
	if b.size <= 0 {
		b.size = 10
	}
	if b.tsLayout == "" {
		b.tsLayout = "02.01.2006 15:04"
	}
	r.setupFonts(b)
	_, b.pageH = pdf.GetPageSize()

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont(b.family, "", b.size-2)
		pdf.CellFormat(0, 5, b.tr(fmt.Sprintf("Стр. %d из {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(b.family, "", b.size)
	return b
}

func (r *Renderer) build(doc *Document) (*fpdf.Fpdf, error) {
	b := r.newBuilder(doc)
	pdf := b.pdf

	b.title(fmt.Sprintf("Результаты поиска корреспонденции с %s по %s", doc.From, doc.To))

	if doc.ShowRows {
		b.table(searchHeaders, SearchColumnWidths, searchAligns, searchCells(doc.Rows))
		pdf.Ln(rowHeight)
	}

	b.subtitle("Итоги по категориям")
	b.table(totalsHeaders, TotalsColumnWidths, totalsAligns, totalsCells(doc.Totals))

	b.footer(doc)

	if pdf.Err() {
		return nil, pdf.Error()
	}
	return pdf, nil
}

func (r *Renderer) setupFonts(b *builder) {
	if r.regular == nil {
		b.family, b.bold = "Helvetica", "B"
		b.tr = b.pdf.UnicodeTranslatorFromDescriptor("")
		return
	}
	b.family = "body"
	b.pdf.AddUTF8FontFromBytes(b.family, "", r.regular)
	if r.bold != nil {
		b.pdf.AddUTF8FontFromBytes(b.family, "B", r.bold)
		b.bold = "B"
	}
	b.tr = func(s string) string { return s }
}

func (b *builder) title(text string) {
	b.pdf.SetFont(b.family, b.bold, b.size+4)
	b.pdf.CellFormat(0, 10, b.tr(text), "", 1, "C", false, 0, "")
	b.pdf.Ln(2)
}

func (b *builder) subtitle(text string) {
	b.ensureSpace(rowHeight * 3)
	b.pdf.SetFont(b.family, b.bold, b.size+2)
	b.pdf.CellFormat(0, rowHeight+1, b.tr(text), "", 1, "L", false, 0, "")
}

// ensureSpace 剩余高度不足 h 时换页
func (b *builder) ensureSpace(h float64) bool {
	if b.pdf.GetY()+h <= b.pageH-pageMargin-footerHeight {
		return false
	}
	b.pdf.AddPage()
	return true
}

func (b *builder) header(headers []string, widths []float64) {
	b.pdf.SetFont(b.family, b.bold, b.size)
	b.pdf.SetFillColor(230, 230, 230)
	aligns := make([]string, len(headers))
	for i := range aligns {
		aligns[i] = "C"
	}
	lines, h := b.measure(headers, widths)
	b.row(lines, h, widths, aligns, true)
	b.pdf.SetFont(b.family, "", b.size)
}

// table 输出表头与数据行，跨页时在新页重复表头
func (b *builder) table(headers []string, widths []float64, aligns []string, rows [][]string) {
	b.ensureSpace(rowHeight * 2)
	b.header(headers, widths)

	if len(rows) == 0 {
		var total float64
		for _, w := range widths {
			total += w
		}
		b.pdf.CellFormat(total, rowHeight, b.tr("Нет записей за период"), "1", 1, "C", false, 0, "")
		return
	}

	for _, cells := range rows {
		lines, h := b.measure(cells, widths)
		if b.ensureSpace(h) {
			b.header(headers, widths)
		}
		b.row(lines, h, widths, aligns, false)
	}
}

// measure 按列宽折行，行高取行数最多的单元格
func (b *builder) measure(cells []string, widths []float64) ([][]string, float64) {
	lines := make([][]string, len(cells))
	h := rowHeight
	for i, cell := range cells {
		lines[i] = b.wrap(cell, widths[i])
		if ch := float64(len(lines[i]))*lineHeight + 2*cellPaddingY; ch > h {
			h = ch
		}
	}
	return lines, h
}

// row 绘制一行等高单元格，文本在单元格内垂直居中；结束后光标位于下一行行首
func (b *builder) row(lines [][]string, h float64, widths []float64, aligns []string, fill bool) {
	style := "D"
	if fill {
		style = "FD"
	}
	x0, y := b.pdf.GetX(), b.pdf.GetY()
	x := x0
	for i, cellLines := range lines {
		b.pdf.Rect(x, y, widths[i], h, style)
		top := y + (h-float64(len(cellLines))*lineHeight)/2
		for j, line := range cellLines {
			b.pdf.SetXY(x, top+float64(j)*lineHeight)
			b.pdf.CellFormat(widths[i], lineHeight, line, "", 0, aligns[i], false, 0, "")
		}
		x += widths[i]
	}
	b.pdf.SetXY(x0, y+h)
}

// wrap 将文本折成不超过列宽的若干行，优先在空格处断开，单个词超宽时按字符断开
// 返回的行已经过字体编码转换
func (b *builder) wrap(text string, width float64) []string {
	limit := width - 2*b.pdf.GetCellMargin()
	fits := func(s string) bool {
		return b.pdf.GetStringWidth(b.tr(s)) <= limit
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if fits(candidate) {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		for len([]rune(word)) > 1 && !fits(word) {
			runes := []rune(word)
			n := len(runes) - 1
			for n > 1 && !fits(string(runes[:n])) {
				n--
			}
			lines = append(lines, string(runes[:n]))
			word = string(runes[n:])
		}
		line = word
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}

	for i := range lines {
		lines[i] = b.tr(lines[i])
	}
	return lines
}

func (b *builder) footer(doc *Document) {
	b.ensureSpace(rowHeight * 3)
	b.pdf.Ln(rowHeight)
	b.pdf.SetFont(b.family, "", b.size)
	b.pdf.CellFormat(0, rowHeight, b.tr("Дата формирования: "+doc.GeneratedAt.Format(b.tsLayout)), "", 1, "L", false, 0, "")
	b.pdf.CellFormat(0, rowHeight, b.tr("Отчет выдал: "+doc.IssuedBy), "", 1, "L", false, 0, "")
}

// ── 行数据 ──

func searchCells(rows []model.SearchRow) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Date.String(),
			r.CorrType,
			r.Urgency,
			strconv.Itoa(r.Incoming),
			strconv.Itoa(r.Outgoing),
			r.Period,
			OfficerLabel(r.Rank, r.FirstName, r.LastName, r.Patronymic),
		})
	}
	return cells
}

func totalsCells(totals []model.CategoryTotal) [][]string {
	cells := make([][]string, 0, len(totals))
	for _, t := range totals {
		cells = append(cells, []string{
			t.CorrType,
			t.Urgency,
			strconv.FormatInt(t.IncomingSum, 10),
			strconv.FormatInt(t.OutgoingSum, 10),
		})
	}
	return cells
}
