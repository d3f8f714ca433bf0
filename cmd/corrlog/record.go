package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"corrlog/internal/dto"
	"corrlog/internal/model"
)

func newRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "通信记录登记",
	}
	cmd.AddCommand(newRecordAddCmd(a))
	return cmd
}

// ────────────────────── record add ──────────────────────

func newRecordAddCmd(a *app) *cobra.Command {
	var req dto.CreateRecordRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "登记一条通信记录",
		Example: `  corrlog record add --type "Телефонные переговоры" --urgency "Срочная" \
    --incoming 12 --outgoing 3 --period "С 10:00 по 22:00" --officer 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("date") {
				req.Date = model.Today().String()
			}

			rec, err := a.svc.Correspondence.Create(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return a.out.Message(fmt.Sprintf("记录已添加: #%d %s %s / %s 收 %d 发 %d",
				rec.ID, rec.Date, rec.CorrType, rec.Urgency, rec.Incoming, rec.Outgoing), rec)
		},
	}

	cmd.Flags().StringVar(&req.Date, "date", "", "日期 YYYY-MM-DD（默认今天）")
	cmd.Flags().StringVar(&req.CorrType, "type", "", "通信类型")
	cmd.Flags().StringVar(&req.Urgency, "urgency", "", "紧急程度")
	cmd.Flags().StringVar(&req.Incoming, "incoming", "", "收到数量（必填）")
	cmd.Flags().StringVar(&req.Outgoing, "outgoing", "", "发出数量（必填）")
	cmd.Flags().StringVar(&req.Period, "period", "", "值班时段")
	cmd.Flags().Int64Var(&req.OfficerID, "officer", 0, "值班员 ID（见 corrlog officer list）")
	return cmd
}
