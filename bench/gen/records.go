// Package gen 提供压测用记录与访问序列生成
package gen

import (
	"math/rand"

	"github.com/ic-timon/blockfile/blockstore/layout"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Record 压测记录，序列化为 JSON 后写入槽位
type Record struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

// envelopeOverhead 返回 Body 为空时记录封装后的字节数
func envelopeOverhead(id int64) int {
	b, err := layout.EncodeEnvelope(Record{ID: id})
	if err != nil {
		panic(err)
	}
	return len(b)
}

// Records 生成 n 条记录，每条封装后的长度恰为 envelopeBytes；
// envelopeBytes 小于空记录开销时 Body 为空
func Records(n, envelopeBytes int, seed int64) []Record {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Record, n)
	for i := 0; i < n; i++ {
		id := int64(i)
		bodyLen := envelopeBytes - envelopeOverhead(id)
		if bodyLen < 0 {
			bodyLen = 0
		}
		body := make([]byte, bodyLen)
		for j := range body {
			body[j] = alphabet[rng.Intn(len(alphabet))]
		}
		out[i] = Record{ID: id, Body: string(body)}
	}
	return out
}

// Indices 生成 n 个 [0, max) 内的随机下标，用于随机读负载
func Indices(n int, max int64, seed int64) []int64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]int64, n)
	if max <= 0 {
		return out
	}
	for i := range out {
		out[i] = rng.Int63n(max)
	}
	return out
}
