package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"corrlog/internal/dto"
)

func newExportCmd(a *app) *cobra.Command {
	var req dto.ExportRequest

	cmd := &cobra.Command{
		Use:   "export",
		Short: "导出 PDF 报表",
		Long: `将区间内的检索结果与分类汇总导出为 PDF（A4 横向）。
--rows=false 时仅输出分类汇总。`,
		Example: `  corrlog export --from 2024-03-01 --to 2024-03-31 --out march.pdf --issued-by "ст. л-т Петров И.С."`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defaultRange(cmd, &req.DateRangeRequest)

			result, err := a.svc.Export.Export(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return a.out.Message(fmt.Sprintf("报表已导出: %s（明细 %d 条，汇总 %d 组）",
				result.Path, result.Rows, result.Groups), result)
		},
	}

	addRangeFlags(cmd, &req.DateRangeRequest)
	cmd.Flags().StringVarP(&req.OutputPath, "out", "o", "", "输出文件路径，缺少 .pdf 时自动补全")
	cmd.Flags().StringVar(&req.IssuedBy, "issued-by", "", "报表签发人，原样写入页脚")
	cmd.Flags().BoolVar(&req.ShowRows, "rows", true, "是否输出检索明细")
	return cmd
}
