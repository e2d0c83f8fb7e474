package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LatencyStats 延迟统计
type LatencyStats struct {
	P50Ms float64
	P95Ms float64
	P99Ms float64
	AvgMs float64
	N     int
}

// Row 报告中的一行，Header 与 Record 字段一一对应
type Row interface {
	Header() []string
	Record() []string
}

// StageARow 阶段 A：不同 blockSize 下的顺序写、随机读延迟
type StageARow struct {
	BlockSize  int
	Records    int
	PutP50Ms   float64
	PutP99Ms   float64
	GetP50Ms   float64
	GetP99Ms   float64
	WriteMBps  float64
	FileSizeMB float64
}

func (r StageARow) Header() []string {
	return []string{"BlockSize", "Records", "PutP50Ms", "PutP99Ms", "GetP50Ms", "GetP99Ms", "WriteMBps", "FileSizeMB"}
}

func (r StageARow) Record() []string {
	return []string{
		fmt.Sprintf("%d", r.BlockSize),
		fmt.Sprintf("%d", r.Records),
		fmt.Sprintf("%.3f", r.PutP50Ms),
		fmt.Sprintf("%.3f", r.PutP99Ms),
		fmt.Sprintf("%.3f", r.GetP50Ms),
		fmt.Sprintf("%.3f", r.GetP99Ms),
		fmt.Sprintf("%.2f", r.WriteMBps),
		fmt.Sprintf("%.2f", r.FileSizeMB),
	}
}

// StageBRow 阶段 B：并发混合读写
type StageBRow struct {
	Concurrency  int
	Ops          int
	OpsPerSec    float64
	P50Ms        float64
	P99Ms        float64
	NumGoroutine int
	P99P50Ratio  float64
}

func (r StageBRow) Header() []string {
	return []string{"Concurrency", "Ops", "OpsPerSec", "P50Ms", "P99Ms", "NumGoroutine", "P99P50Ratio"}
}

func (r StageBRow) Record() []string {
	return []string{
		fmt.Sprintf("%d", r.Concurrency),
		fmt.Sprintf("%d", r.Ops),
		fmt.Sprintf("%.2f", r.OpsPerSec),
		fmt.Sprintf("%.3f", r.P50Ms),
		fmt.Sprintf("%.3f", r.P99Ms),
		fmt.Sprintf("%d", r.NumGoroutine),
		fmt.Sprintf("%.2f", r.P99P50Ratio),
	}
}

// StageCRow 阶段 C：不同后端同负载对比
type StageCRow struct {
	Backend   string
	Records   int
	PutP50Ms  float64
	PutP99Ms  float64
	GetP50Ms  float64
	GetP99Ms  float64
	AllocMBps float64
	GCCount   uint32
}

func (r StageCRow) Header() []string {
	return []string{"Backend", "Records", "PutP50Ms", "PutP99Ms", "GetP50Ms", "GetP99Ms", "AllocMBps", "GCCount"}
}

func (r StageCRow) Record() []string {
	return []string{
		r.Backend,
		fmt.Sprintf("%d", r.Records),
		fmt.Sprintf("%.3f", r.PutP50Ms),
		fmt.Sprintf("%.3f", r.PutP99Ms),
		fmt.Sprintf("%.3f", r.GetP50Ms),
		fmt.Sprintf("%.3f", r.GetP99Ms),
		fmt.Sprintf("%.2f", r.AllocMBps),
		fmt.Sprintf("%d", r.GCCount),
	}
}

// StageDRow 阶段 D：pread 逐条读取 vs mmap 扫描
type StageDRow struct {
	Mode        string
	Slots       int64
	DurMs       float64
	SlotsPerSec float64
}

func (r StageDRow) Header() []string {
	return []string{"Mode", "Slots", "DurMs", "SlotsPerSec"}
}

func (r StageDRow) Record() []string {
	return []string{
		r.Mode,
		fmt.Sprintf("%d", r.Slots),
		fmt.Sprintf("%.2f", r.DurMs),
		fmt.Sprintf("%.0f", r.SlotsPerSec),
	}
}

// Percentile 计算切片中第 p 百分位（0-100），输入需已排序
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// LatencyStatsFromDurations 从耗时列表计算 P50/P95/P99
func LatencyStatsFromDurations(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}
	ms := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		ms[i] = float64(d.Nanoseconds()) / 1e6
		sum += ms[i]
	}
	sort.Float64s(ms)
	return LatencyStats{
		P50Ms: Percentile(ms, 50),
		P95Ms: Percentile(ms, 95),
		P99Ms: Percentile(ms, 99),
		AvgMs: sum / float64(len(ms)),
		N:     len(ms),
	}
}

// WriteCSV 写入 CSV 报告，表头取第一行的 Header
func WriteCSV[R Row](rows []R, path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if len(rows) > 0 {
		if err := w.Write(rows[0].Header()); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if err := w.Write(r.Record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReportDir 报告输出目录
const ReportDir = "report"

// ReportPath 生成 report/ 目录下带日期的报告路径，ext 如 ".csv"
func ReportPath(prefix, ext string) string {
	return filepath.Join(ReportDir, prefix+time.Now().Format("20060102")+ext)
}

// WriteJSON 写入 JSON 报告（通用）
func WriteJSON(v interface{}, path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
