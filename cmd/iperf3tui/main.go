package main

import (
	"log"
	"os"
)

func main() {
	// 错误信息只输出一行，不带时间前缀
	log.SetFlags(0)
	log.SetPrefix(AppName + ": ")

	// 创建CLI应用并运行
	if err := createCliApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
