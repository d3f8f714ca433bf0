package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"corrlog/internal/model"
	"corrlog/pkg/response"
)

// catalogEntry 枚举名称与取值，保持展示顺序
type catalogEntry struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "catalog",
		Short:       "列出可选的军衔、通信类型、紧急程度与值班时段",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoDB: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := []catalogEntry{
				{Name: "rank", Values: model.Ranks},
				{Name: "corr_type", Values: model.CorrTypes},
				{Name: "urgency", Values: model.UrgencyLevels},
				{Name: "period", Values: model.Periods},
			}

			tables := make([]response.Table, 0, len(entries))
			for _, e := range entries {
				t := response.Table{Title: e.Name}
				for i, v := range e.Values {
					t.Rows = append(t.Rows, []string{"  " + strconv.Itoa(i+1), v})
				}
				tables = append(tables, t)
			}
			return a.out.OK(entries, tables...)
		},
	}
}
