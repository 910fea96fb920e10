package cmd

import (
	"encoding/json"

	"employee-datahub/service"

	"github.com/spf13/cobra"
)

type cleanOptions struct {
	input  string
	output string
	policy string
}

func newCleanCmd(root *rootOptions) *cobra.Command {
	var opts cleanOptions

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "清洗原始员工数据并写出清洗结果",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			policy, err := resolvePolicy(opts.policy, cfg)
			if err != nil {
				return err
			}

			app, err := service.NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.RunCleaning(cmd.Context(),
				valueOr(opts.input, cfg.Cleaning.RawDataFile),
				valueOr(opts.output, cfg.Cleaning.CleanedDataFile),
				policy)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "原始数据文件 (默认读取RAW_DATA_FILE)")
	cmd.Flags().StringVar(&opts.output, "output", "", "清洗结果文件 (默认读取CLEANED_DATA_FILE)")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "异常值处理策略 global_drop|per_department_replace")
	return cmd
}
