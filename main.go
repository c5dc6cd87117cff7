// jackfield 命令行：把 .strip 快速录入文件或 .jlp 工程排版成 PDF/PNG，或直接在终端预览。
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
