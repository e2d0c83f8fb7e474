// 压测入口：-stage a|b|c|d
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ic-timon/blockfile/bench/metrics"
	"github.com/ic-timon/blockfile/blockstore"
)

type stageOpts struct {
	dir     string
	records int
	sync    blockstore.SyncMode
	json    bool
}

func main() {
	stage := flag.String("stage", "", "压测阶段: a(blockSize 扫描) | b(并发混合读写) | c(块文件 vs badger) | d(pread vs mmap)")
	dir := flag.String("dir", os.TempDir(), "存储文件所在目录")
	records := flag.Int("n", 2000, "每轮写入的记录数")
	syncMode := flag.String("sync", "full", "每次写入后的刷盘方式: full(fsync) | data(fdatasync)")
	jsonOut := flag.Bool("json", false, "同时输出 JSON 报告")
	flag.Parse()
	mode, err := blockstore.ParseSyncMode(*syncMode)
	if err != nil {
		log.Fatalf("非法 -sync: %v", err)
	}
	if *records <= 0 {
		log.Fatalf("-n 必须为正数")
	}
	opts := stageOpts{dir: *dir, records: *records, sync: mode, json: *jsonOut}
	switch *stage {
	case "a":
		runStageA(opts)
	case "b":
		runStageB(opts)
	case "c":
		runStageC(opts)
	case "d":
		runStageD(opts)
	default:
		log.Fatalf("请指定 -stage a|b|c|d")
	}
	fmt.Println("压测完成")
}

// writeReport 写入 CSV 报告，opts.json 时另写一份 JSON
func writeReport[R metrics.Row](opts stageOpts, prefix string, rows []R) {
	path := metrics.ReportPath(prefix, ".csv")
	if err := metrics.WriteCSV(rows, path); err != nil {
		panic(err)
	}
	fmt.Printf("报告已写入 %s\n", path)
	if opts.json {
		jsonPath := metrics.ReportPath(prefix, ".json")
		if err := metrics.WriteJSON(rows, jsonPath); err != nil {
			panic(err)
		}
		fmt.Printf("报告已写入 %s\n", jsonPath)
	}
}

// stageDir 为单轮压测创建独立子目录，结束后由调用方删除
func stageDir(opts stageOpts, name string) string {
	d, err := os.MkdirTemp(opts.dir, "blockfile-"+name+"-")
	if err != nil {
		panic(err)
	}
	return d
}
