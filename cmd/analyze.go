package cmd

import (
	"fmt"
	"io"

	"employee-datahub/service/analyzer"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var (
		file string
		top  int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "输出部门平均薪资、最高薪员工和部门人数报告",
		RunE: func(cmd *cobra.Command, args []string) error {
			an, err := analyzer.LoadEmployeeAnalyzer(cmd.Context(), valueOr(file, root.cfg.Cleaning.CleanedDataFile))
			if err != nil {
				return err
			}
			return printAnalysis(cmd.OutOrStdout(), an, top)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "清洗结果文件 (默认读取CLEANED_DATA_FILE)")
	cmd.Flags().IntVar(&top, "top", 3, "最高薪员工人数")
	return cmd
}

// printAnalysis 按固定格式输出三份报告，金额带千分位
func printAnalysis(w io.Writer, an *analyzer.EmployeeAnalyzer, top int) error {
	p := message.NewPrinter(language.English)

	p.Fprintln(w, "Average Salary per Department:")
	for _, item := range an.AverageSalaryPerDepartment() {
		p.Fprintf(w, "  Department: %s, Average Salary: $%.2f\n", item.Department, item.AverageSalary)
	}

	paid, err := an.TopNHighestPaid(top)
	if err != nil {
		return err
	}
	p.Fprintf(w, "\nTop %d Highest Paid Employees:\n", top)
	for i, item := range paid {
		p.Fprintf(w, "  %d. Name: %s, Salary: $%.2f, Department: %s\n", i+1, item.Name, item.Salary, item.Department)
	}

	p.Fprintln(w, "\nNumber of Employees per Department:")
	for _, item := range an.CountPerDepartment() {
		// 人数不加千分位
		fmt.Fprintf(w, "  Department: %s, Number of Employees: %d\n", item.Department, item.NumberOfEmployees)
	}
	return nil
}
