package main

import "employee-datahub/cmd"

// @title 员工数据服务 API
// @version 1.0
// @description 员工数据清洗与查询服务，提供薪资排名、部门人数和平均薪资统计
// @BasePath /
func main() {
	cmd.Execute()
}
