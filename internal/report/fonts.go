package report

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// 常见系统字体位置（常规, 粗体），按顺序探测第一个存在的常规字体
var systemFonts = [][2]string{
	{"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf", "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"},
	{"/usr/share/fonts/TTF/DejaVuSans.ttf", "/usr/share/fonts/TTF/DejaVuSans-Bold.ttf"},
	{"/usr/share/fonts/dejavu/DejaVuSans.ttf", "/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf"},
	{"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf", "/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf"},
	{"/Library/Fonts/Arial Unicode.ttf", ""},
	{`C:\Windows\Fonts\arial.ttf`, `C:\Windows\Fonts\arialbd.ttf`},
}

// loadFonts 读取配置的 TrueType 字体；未配置时探测系统字体
// 配置了但无法读取的字体视为错误；探测不到时返回 nil，由调用方决定拒绝导出或回退到内置字体
func loadFonts(regularPath, boldPath string, logger *zap.Logger) (regular, bold []byte, err error) {
	if regularPath == "" {
		regularPath, boldPath = findSystemFont()
		if regularPath == "" {
			logger.Warn("未找到 UTF-8 字体，除非开启 report.allow_core_font，否则无法导出报表")
			return nil, nil, nil
		}
		logger.Debug("使用系统字体", zap.String("font", regularPath))
	}

	regular, err = os.ReadFile(regularPath)
	if err != nil {
		return nil, nil, fmt.Errorf("读取字体失败: %w", err)
	}

	if boldPath != "" {
		bold, err = os.ReadFile(boldPath)
		if err != nil {
			return nil, nil, fmt.Errorf("读取粗体字体失败: %w", err)
		}
	}
	return regular, bold, nil
}

func findSystemFont() (regular, bold string) {
	for _, pair := range systemFonts {
		if !fileExists(pair[0]) {
			continue
		}
		if pair[1] != "" && fileExists(pair[1]) {
			return pair[0], pair[1]
		}
		return pair[0], ""
	}
	return "", ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
