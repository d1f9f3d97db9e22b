package token

import (
	"strings"
	"testing"
)

func BenchmarkScan(b *testing.B) {
	text := strings.Repeat(`host=@host@ port=$port:{"padLeft":"0"}$ plain text here`+"\n", 100)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if len(Scan(text)) != 200 {
			b.Fatal("unexpected token count")
		}
	}
}
