package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"corrlog/internal/dto"
	apperrors "corrlog/pkg/errors"
	"corrlog/pkg/response"
)

func newOfficerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "officer",
		Short: "值班员管理",
	}
	cmd.AddCommand(
		newOfficerAddCmd(a),
		newOfficerListCmd(a),
		newOfficerDeleteCmd(a),
	)
	return cmd
}

// ────────────────────── officer add ──────────────────────

func newOfficerAddCmd(a *app) *cobra.Command {
	var req dto.CreateOfficerRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "新增值班员",
		Example: `  corrlog officer add --rank "ст. л-т" --first Иван --last Петров --patronymic Сергеевич`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			officer, err := a.svc.Officer.Create(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return a.out.Message(fmt.Sprintf("值班员已添加: #%d %s", officer.ID, officer.Label), officer)
		},
	}

	cmd.Flags().StringVar(&req.Rank, "rank", "", "军衔（见 corrlog catalog）")
	cmd.Flags().StringVar(&req.FirstName, "first", "", "名")
	cmd.Flags().StringVar(&req.LastName, "last", "", "姓")
	cmd.Flags().StringVar(&req.Patronymic, "patronymic", "", "父称")
	return cmd
}

// ────────────────────── officer list ──────────────────────

func newOfficerListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出全部值班员",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			officers, err := a.svc.Officer.List(cmd.Context())
			if err != nil {
				return err
			}

			table := response.Table{
				Headers: []string{"ID", "全称", "缩写"},
				Empty:   "暂无值班员",
			}
			for _, o := range officers {
				table.Rows = append(table.Rows, []string{strconv.FormatInt(o.ID, 10), o.FullName, o.Label})
			}
			return a.out.OK(officers, table)
		},
	}
}

// ────────────────────── officer delete ──────────────────────

func newOfficerDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "删除值班员",
		Long: `删除值班员。默认拒绝删除仍有通信记录的值班员，
配置 feature.allow_orphan_delete=true 后放行（相关记录将不再出现在检索与汇总中）。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return apperrors.Validation("officer.delete", "id", "应为整数")
			}

			confirmed := yes
			if !confirmed {
				confirmed, err = a.confirm(fmt.Sprintf("确认删除值班员 #%d？[y/N] ", id))
				if err != nil {
					return err
				}
				if !confirmed {
					return a.out.Message("已取消", nil)
				}
			}

			if err := a.svc.Officer.Delete(cmd.Context(), &dto.DeleteOfficerRequest{ID: id, Confirmed: confirmed}); err != nil {
				return err
			}
			return a.out.Message(fmt.Sprintf("值班员 #%d 已删除", id), map[string]int64{"id": id})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "跳过确认提示")
	return cmd
}

// confirm 在 stderr 输出提示并从 stdin 读取一行回答
func (a *app) confirm(prompt string) (bool, error) {
	fmt.Fprint(a.stderr, prompt)

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		// 无输入（如管道已关闭）按拒绝处理
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return true, nil
	default:
		return false, nil
	}
}
