package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"corrlog/internal/dto"
	"corrlog/internal/model"
	"corrlog/pkg/response"
)

// searchResult json 格式下的输出结构
type searchResult struct {
	From   string                      `json:"from"`
	To     string                      `json:"to"`
	Rows   []dto.SearchResultResponse  `json:"rows"`
	Totals []dto.CategoryTotalResponse `json:"totals"`
}

func newSearchCmd(a *app) *cobra.Command {
	var rng dto.DateRangeRequest

	cmd := &cobra.Command{
		Use:   "search",
		Short: "按日期区间检索并汇总",
		Long:  "检索闭区间 [--from, --to] 内的通信记录，并按 (类型, 紧急程度) 汇总收发数量。",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defaultRange(cmd, &rng)

			rows, err := a.svc.Correspondence.Search(cmd.Context(), &rng)
			if err != nil {
				return err
			}
			totals, err := a.svc.Correspondence.Aggregate(cmd.Context(), &rng)
			if err != nil {
				return err
			}

			return a.out.OK(
				searchResult{From: rng.From, To: rng.To, Rows: rows, Totals: totals},
				rowsTable(rng, rows),
				totalsTable(totals),
			)
		},
	}

	addRangeFlags(cmd, &rng)
	return cmd
}

// ── 共用辅助 ──

func addRangeFlags(cmd *cobra.Command, rng *dto.DateRangeRequest) {
	cmd.Flags().StringVar(&rng.From, "from", "", "起始日期 YYYY-MM-DD（默认今天）")
	cmd.Flags().StringVar(&rng.To, "to", "", "结束日期 YYYY-MM-DD（默认今天）")
}

// defaultRange 未指定的端点取今天
func defaultRange(cmd *cobra.Command, rng *dto.DateRangeRequest) {
	today := model.Today().String()
	if !cmd.Flags().Changed("from") {
		rng.From = today
	}
	if !cmd.Flags().Changed("to") {
		rng.To = today
	}
}

func rowsTable(rng dto.DateRangeRequest, rows []dto.SearchResultResponse) response.Table {
	t := response.Table{
		Title:   fmt.Sprintf("%s ~ %s 共 %d 条记录", rng.From, rng.To, len(rows)),
		Headers: []string{"日期", "类型", "紧急程度", "收", "发", "时段", "值班员"},
		Empty:   "该区间内没有记录",
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Date, r.CorrType, r.Urgency,
			strconv.Itoa(r.Incoming), strconv.Itoa(r.Outgoing),
			r.Period, r.Officer,
		})
	}
	return t
}

func totalsTable(totals []dto.CategoryTotalResponse) response.Table {
	t := response.Table{
		Title:   "分类汇总",
		Headers: []string{"类型", "紧急程度", "收", "发"},
		Empty:   "无",
	}
	for _, g := range totals {
		t.Rows = append(t.Rows, []string{
			g.CorrType, g.Urgency,
			strconv.FormatInt(g.IncomingSum, 10), strconv.FormatInt(g.OutgoingSum, 10),
		})
	}
	return t
}
